package nodes

import (
	"context"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/persona"
	logx "github.com/shneydor/jeff-the-langgraph-chef/pkg/logger"
)

// PersonalityFilter updates Jeff's mood from trigger keywords in the input
// and records an intermediate in-voice commentary. The stage is linear; it
// never gates routing.
type PersonalityFilter struct {
	engine *persona.Engine
}

func NewPersonalityFilter(engine *persona.Engine) *PersonalityFilter {
	return &PersonalityFilter{engine: engine}
}

func (n *PersonalityFilter) Name() string { return NodePersonalityFilter }

func (n *PersonalityFilter) Transform(_ context.Context, st *model.WorkflowState) error {
	// Work on a copy so a failed stage never leaves the state half-mutated.
	p := st.Persona.Clone()

	changed := n.engine.UpdateMood(&p, st.ProcessedInput)
	st.PersonaCommentary = n.engine.Commentary(p, st.ProcessedInput)
	st.Persona = p

	logx.Debug().
		Str("session_id", st.SessionID).
		Str("mood", string(p.CurrentMood)).
		Bool("mood_changed", changed).
		Msg("Personality applied")

	st.AdvanceStage(model.StageContentRouted)
	return nil
}
