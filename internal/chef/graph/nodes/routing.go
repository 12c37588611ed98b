package nodes

import (
	"context"
	"fmt"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
	logx "github.com/shneydor/jeff-the-langgraph-chef/pkg/logger"
)

// DecideRoute maps the routing state to a closed edge label. The error
// sentinel is checked first and short-circuits to error handling.
func DecideRoute(st *model.WorkflowState) model.Route {
	if st.IsError() {
		return model.RouteError
	}
	return st.Routing.Route
}

// DecideVerdict maps the quality state to a closed edge label. The quality
// validator has already updated the counter and rewound the stage when a
// retry is due, so the verdict only has to read the stage.
func DecideVerdict(st *model.WorkflowState) model.Verdict {
	if st.IsError() {
		return model.VerdictError
	}
	if st.Stage == model.StageProcessing {
		return model.VerdictRegenerate
	}
	return model.VerdictFormatOutput
}

// NewRouteCondition maps route labels to node names for the content router
// branch. Every label is matched explicitly; an unknown label is a wiring
// bug surfaced as an error, not a silent default.
func NewRouteCondition() func(context.Context, *model.WorkflowState) (string, error) {
	return func(_ context.Context, st *model.WorkflowState) (string, error) {
		route := DecideRoute(st)
		switch route {
		case model.RouteError:
			logx.Debug().Str("session_id", st.SessionID).Msg("Error sentinel active, routing to formatter")
			return NodeOutputFormatter, nil
		case model.RouteImage:
			return NodeImageGenerator, nil
		case model.RouteRecipeGeneration, model.RouteKnowledge, model.RouteIngredient,
			model.RoutePairing, model.RouteGeneral:
			return NodeResponseGenerator, nil
		default:
			return "", fmt.Errorf("unmapped route label %q", route)
		}
	}
}

// NewVerdictCondition maps quality gate verdicts to node names. Regenerate
// loops back to the generator; everything else proceeds to formatting,
// including exhausted-budget degraded success.
func NewVerdictCondition() func(context.Context, *model.WorkflowState) (string, error) {
	return func(_ context.Context, st *model.WorkflowState) (string, error) {
		verdict := DecideVerdict(st)
		switch verdict {
		case model.VerdictRegenerate:
			logx.Debug().
				Str("session_id", st.SessionID).
				Int("regeneration_count", st.RegenerationCount).
				Msg("Quality gate failed, regenerating")
			return NodeResponseGenerator, nil
		case model.VerdictError, model.VerdictFormatOutput:
			return NodeOutputFormatter, nil
		default:
			return "", fmt.Errorf("unmapped verdict label %q", verdict)
		}
	}
}
