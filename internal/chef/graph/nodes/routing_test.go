package nodes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
)

func TestMakeRoutingDecision(t *testing.T) {
	tests := []struct {
		name          string
		contentType   model.ContentType
		confidence    float64
		wantRoute     model.Route
		wantKnowledge bool
		wantTomato    bool
	}{
		{
			name:          "recipe request",
			contentType:   model.ContentRecipeRequest,
			confidence:    0.8,
			wantRoute:     model.RouteRecipeGeneration,
			wantKnowledge: true,
		},
		{
			name:          "cooking question",
			contentType:   model.ContentCookingQuestion,
			confidence:    0.8,
			wantRoute:     model.RouteKnowledge,
			wantKnowledge: true,
		},
		{
			name:          "technique question",
			contentType:   model.ContentTechniqueQuestion,
			confidence:    0.8,
			wantRoute:     model.RouteKnowledge,
			wantKnowledge: true,
		},
		{
			name:          "ingredient inquiry",
			contentType:   model.ContentIngredientInquiry,
			confidence:    0.8,
			wantRoute:     model.RouteIngredient,
			wantKnowledge: true,
			wantTomato:    true,
		},
		{
			name:          "food pairing",
			contentType:   model.ContentFoodPairing,
			confidence:    0.8,
			wantRoute:     model.RoutePairing,
			wantKnowledge: true,
			wantTomato:    true,
		},
		{
			name:        "image request",
			contentType: model.ContentImageRequest,
			confidence:  0.8,
			wantRoute:   model.RouteImage,
		},
		{
			name:        "general chat",
			contentType: model.ContentGeneralChat,
			confidence:  0.8,
			wantRoute:   model.RouteGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := makeRoutingDecision(tt.contentType, tt.confidence)
			assert.Equal(t, tt.wantRoute, decision.Route)
			assert.Equal(t, tt.wantKnowledge, decision.RequiresKnowledge)
			assert.Equal(t, tt.wantTomato, decision.TomatoEnhancer)
			assert.False(t, decision.NeedsClarification)
		})
	}
}

func TestLowConfidenceAnnotatesClarification(t *testing.T) {
	decision := makeRoutingDecision(model.ContentRecipeRequest, 0.3)

	assert.True(t, decision.NeedsClarification)
	assert.Contains(t, decision.NextNodes, "clarification_generator")
	// Primary route is unchanged.
	assert.Equal(t, model.RouteRecipeGeneration, decision.Route)
}

func TestDecideRouteErrorSentinelWins(t *testing.T) {
	st := newTestState("recipe for soup")
	st.Routing.Route = model.RouteRecipeGeneration
	st.AddError(model.WorkflowError{Kind: "api", Message: "boom", Node: "input_processor"})

	assert.Equal(t, model.RouteError, DecideRoute(st))

	next, err := NewRouteCondition()(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, NodeOutputFormatter, next)
}

func TestRouteConditionMapping(t *testing.T) {
	cond := NewRouteCondition()

	for route, wantNode := range map[model.Route]string{
		model.RouteRecipeGeneration: NodeResponseGenerator,
		model.RouteKnowledge:        NodeResponseGenerator,
		model.RouteIngredient:       NodeResponseGenerator,
		model.RoutePairing:          NodeResponseGenerator,
		model.RouteGeneral:          NodeResponseGenerator,
		model.RouteImage:            NodeImageGenerator,
	} {
		st := newTestState("x")
		st.Routing.Route = route
		next, err := cond(context.Background(), st)
		require.NoError(t, err)
		assert.Equal(t, wantNode, next, "route %s", route)
	}
}

func TestQualityGateRegenerateThenExhaust(t *testing.T) {
	cfg := model.DefaultWorkflowConfig()
	cfg.MaxRegenerationAttempts = 2
	cfg.QualityThreshold = 1.5 // unreachable, every check fails
	st := model.NewWorkflowState("x", "s1", cfg, model.NewPersonaState(), nil)
	st.Flags.QualityGateRequired = true
	st.GeneratedContent = "bland text"

	validator := NewQualityValidator()
	cond := NewVerdictCondition()

	// First two failed checks regenerate and bump the counter by one each.
	for want := 1; want <= 2; want++ {
		st.AdvanceStage(model.StageQualityChecked)
		require.NoError(t, validator.Transform(context.Background(), st))
		assert.Equal(t, want, st.RegenerationCount)

		next, err := cond(context.Background(), st)
		require.NoError(t, err)
		assert.Equal(t, NodeResponseGenerator, next)
	}

	// Budget exhausted: proceed to formatting as degraded success.
	st.AdvanceStage(model.StageQualityChecked)
	require.NoError(t, validator.Transform(context.Background(), st))
	assert.Equal(t, 2, st.RegenerationCount)

	next, err := cond(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, NodeOutputFormatter, next)
	assert.Len(t, st.QualityChecks, 3)
	assert.False(t, st.QualityPassed)
}

func TestQualityGatePassesFirstTry(t *testing.T) {
	cfg := model.DefaultWorkflowConfig()
	cfg.QualityThreshold = 0.0
	st := model.NewWorkflowState("x", "s1", cfg, model.NewPersonaState(), nil)
	st.Flags.QualityGateRequired = true
	st.GeneratedContent = "anything"

	require.NoError(t, NewQualityValidator().Transform(context.Background(), st))
	assert.Zero(t, st.RegenerationCount)
	assert.True(t, st.QualityPassed)

	next, err := NewVerdictCondition()(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, NodeOutputFormatter, next)
}

func TestQualityValidatorSkipsErrorRuns(t *testing.T) {
	st := newTestState("x")
	st.AddError(model.WorkflowError{Kind: "connection", Message: "boom", Node: "response_generator"})

	require.NoError(t, NewQualityValidator().Transform(context.Background(), st))
	assert.Empty(t, st.QualityChecks)
	assert.Zero(t, st.RegenerationCount)

	next, err := NewVerdictCondition()(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, NodeOutputFormatter, next)
}

func TestOutputFormatterPrecedence(t *testing.T) {
	formatter := NewOutputFormatter()

	st := newTestState("x")
	st.SelectedVariation = "variation"
	st.GeneratedContent = "draft"
	require.NoError(t, formatter.Transform(context.Background(), st))
	assert.Contains(t, st.FinalOutput, "variation")
	assert.NotContains(t, st.FinalOutput, "draft")

	st = newTestState("x")
	st.GeneratedContent = "draft"
	require.NoError(t, formatter.Transform(context.Background(), st))
	assert.Contains(t, st.FinalOutput, "draft")

	st = newTestState("x")
	st.Image = &model.ImageArtifact{Commentary: "what a vision"}
	require.NoError(t, formatter.Transform(context.Background(), st))
	assert.Contains(t, st.FinalOutput, "what a vision")

	st = newTestState("x")
	require.NoError(t, formatter.Transform(context.Background(), st))
	assert.Contains(t, st.FinalOutput, "lost in the kitchen")
}

func TestOutputFormatterSignatureToggle(t *testing.T) {
	formatter := NewOutputFormatter()

	st := newTestState("x")
	st.GeneratedContent = "draft"
	require.NoError(t, formatter.Transform(context.Background(), st))
	assert.Contains(t, st.FinalOutput, "Chef Jeff")

	prefs := model.FormatPreferences{IncludeSignature: false}
	st = model.NewWorkflowState("x", "s1", model.DefaultWorkflowConfig(), model.NewPersonaState(), &prefs)
	st.GeneratedContent = "draft"
	require.NoError(t, formatter.Transform(context.Background(), st))
	assert.NotContains(t, st.FinalOutput, "Chef Jeff")
	assert.True(t, st.Complete)
}
