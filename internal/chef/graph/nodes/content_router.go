package nodes

import (
	"context"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
	logx "github.com/shneydor/jeff-the-langgraph-chef/pkg/logger"
)

// ContentRouter derives the routing decision and processing flags from the
// classified content type. The decision's route label is what the graph
// branch consumes; next-node annotations are informational.
type ContentRouter struct{}

func NewContentRouter() *ContentRouter { return &ContentRouter{} }

func (n *ContentRouter) Name() string { return NodeContentRouter }

func (n *ContentRouter) Transform(_ context.Context, st *model.WorkflowState) error {
	st.Routing = makeRoutingDecision(st.ContentType, st.Confidence)
	st.Flags = makeProcessingFlags(st.ContentType, st.Persona.Dimensions, st.Config)

	logx.Debug().
		Str("session_id", st.SessionID).
		Str("route", string(st.Routing.Route)).
		Bool("needs_clarification", st.Routing.NeedsClarification).
		Msg("Content routed")

	st.AdvanceStage(model.StageProcessing)
	return nil
}

func makeRoutingDecision(contentType model.ContentType, confidence float64) model.RoutingDecision {
	decision := model.RoutingDecision{
		Route:     model.RouteGeneral,
		NextNodes: []string{NodeResponseGenerator},
	}

	switch contentType {
	case model.ContentRecipeRequest:
		decision.Route = model.RouteRecipeGeneration
		decision.NextNodes = []string{NodeResponseGenerator}
		decision.RequiresRecipe = true
		decision.RequiresKnowledge = true

	case model.ContentCookingQuestion, model.ContentTechniqueQuestion:
		decision.Route = model.RouteKnowledge
		decision.NextNodes = []string{NodeResponseGenerator}
		decision.RequiresKnowledge = true

	case model.ContentIngredientInquiry:
		decision.Route = model.RouteIngredient
		decision.NextNodes = []string{NodeResponseGenerator}
		decision.RequiresKnowledge = true
		decision.TomatoEnhancer = true

	case model.ContentFoodPairing:
		decision.Route = model.RoutePairing
		decision.NextNodes = []string{NodeResponseGenerator}
		decision.RequiresKnowledge = true
		decision.TomatoEnhancer = true

	case model.ContentImageRequest:
		decision.Route = model.RouteImage
		decision.NextNodes = []string{NodeImageGenerator}
	}

	// Low confidence annotates a clarification follow-up; the primary route
	// taken by the graph does not change.
	if confidence < clarificationThreshold {
		decision.NeedsClarification = true
		decision.NextNodes = append(decision.NextNodes, "clarification_generator")
	}

	return decision
}

func makeProcessingFlags(contentType model.ContentType, dims model.PersonaDimensions, cfg model.WorkflowConfig) model.ProcessingFlags {
	flags := model.ProcessingFlags{
		ApplyRomanticWriting: cfg.EnableRomanticWriting,
		IntegrateTomatoes:    cfg.EnableTomatoIntegration,
		QualityGateRequired:  cfg.EnableQualityGates,
	}

	switch contentType {
	case model.ContentRecipeRequest:
		flags.ApplyRomanticWriting = true
		flags.IntegrateTomatoes = true
		flags.GenerateImages = cfg.EnableImageGeneration
	case model.ContentImageRequest:
		flags.GenerateImages = cfg.EnableImageGeneration
	case model.ContentGeneralChat:
		flags.IntegrateTomatoes = cfg.EnableTomatoIntegration && dims.TomatoObsession >= 7
	}

	return flags
}
