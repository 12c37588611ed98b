package nodes

import (
	"context"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/quality"
	logx "github.com/shneydor/jeff-the-langgraph-chef/pkg/logger"
)

// QualityValidator scores the generated content and appends the result to the
// quality history. When the latest check failed and the regeneration budget
// is not exhausted it increments the counter and rewinds the stage so the
// gate routes back to generation; counting happens here, nowhere else.
type QualityValidator struct{}

func NewQualityValidator() *QualityValidator { return &QualityValidator{} }

func (n *QualityValidator) Name() string { return NodeQualityValidator }

func (n *QualityValidator) Transform(_ context.Context, st *model.WorkflowState) error {
	// A failed generation already set the error sentinel; scoring the absent
	// draft would pollute the quality history and the counter.
	if st.IsError() {
		return nil
	}

	result := quality.Evaluate(st.GeneratedContent, st.Persona, st.Config)
	st.AddQualityCheck(result)

	logx.Debug().
		Str("session_id", st.SessionID).
		Float64("score", result.Score).
		Bool("passed", result.Passed).
		Int("regeneration_count", st.RegenerationCount).
		Msg("Quality checked")

	if st.Flags.QualityGateRequired && st.RegenerationNeeded() {
		st.RegenerationCount++
		st.AdvanceStage(model.StageProcessing)
		return nil
	}

	st.AdvanceStage(model.StageOutputFormatted)
	return nil
}
