package nodes

import (
	"context"
	"time"

	"github.com/cloudwego/eino/compose"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
	errx "github.com/shneydor/jeff-the-langgraph-chef/internal/core/error"
	logx "github.com/shneydor/jeff-the-langgraph-chef/pkg/logger"
)

// Node name constants for graph wiring
const (
	NodeInputProcessor    = "input_processor"
	NodePersonalityFilter = "personality_filter"
	NodeContentRouter     = "content_router"
	NodeResponseGenerator = "response_generator"
	NodeImageGenerator    = "image_generator"
	NodeQualityValidator  = "quality_validator"
	NodeOutputFormatter   = "output_formatter"
)

// Stage is the capability every workflow node implements. Transform mutates
// the state in place; returning an error signals failure to the Run wrapper,
// which converts it into a recorded error on the state.
type Stage interface {
	Name() string
	Transform(ctx context.Context, st *model.WorkflowState) error
}

// Run wraps a Stage into a graph lambda implementing the uniform execution
// contract: timestamps and duration are always recorded, a Transform error is
// classified, logged and appended to the state's error log with the error
// sentinel stage set, and the state is returned without propagating the
// error. A stage failure never crashes a run; downstream routing observes it
// through the state.
func Run(s Stage) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, st *model.WorkflowState) (*model.WorkflowState, error) {
		started := time.Now().UTC()
		err := s.Transform(ctx, st)
		ended := time.Now().UTC()

		exec := model.NodeExecution{
			Node:      s.Name(),
			StartedAt: started,
			EndedAt:   ended,
			Duration:  ended.Sub(started),
			Success:   err == nil,
		}

		if err != nil {
			kind := errx.Classify(err)
			st.AddError(model.WorkflowError{
				Kind:        kind,
				Message:     err.Error(),
				Node:        s.Name(),
				Recoverable: kind.Recoverable(),
				At:          ended,
			})
			logx.Error().
				Err(err).
				Str("session_id", st.SessionID).
				Str("node", s.Name()).
				Str("kind", string(kind)).
				Bool("recoverable", kind.Recoverable()).
				Msg("Stage failed")
		} else {
			logx.Debug().
				Str("session_id", st.SessionID).
				Str("node", s.Name()).
				Dur("duration", exec.Duration).
				Msg("Stage completed")
		}

		st.RecordExecution(exec)
		return st, nil
	})
}
