package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
)

func TestTomatoScore(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		obsession int
		want      float64
	}{
		{
			name:      "direct mention",
			content:   "fresh tomato sauce",
			obsession: 5,
			want:      0.5,
		},
		{
			name:      "direct mention plus adjacent terms",
			content:   "ruby red tomatoes from the vine",
			obsession: 5,
			want:      0.8,
		},
		{
			name:      "nothing at high obsession gets the floor",
			content:   "plain boiled eggs",
			obsession: 9,
			want:      0.2,
		},
		{
			name:      "nothing at low obsession",
			content:   "plain boiled eggs",
			obsession: 3,
			want:      0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TomatoScore(tt.content, tt.obsession), 1e-9)
		})
	}
}

func TestConsistencyScoreEmptyContent(t *testing.T) {
	assert.Zero(t, ConsistencyScore("", model.DefaultPersonaDimensions()))
}

func TestConsistencyScoreLowObsessionGetsTomatoCharacteristicFree(t *testing.T) {
	dims := model.DefaultPersonaDimensions()
	dims.TomatoObsession = 3

	content := "I love this recipe, it speaks to the heart! *imagine the flavor*"
	assert.InDelta(t, 1.0, ConsistencyScore(content, dims), 1e-9)
}

func TestRomanticElements(t *testing.T) {
	found := RomanticElements("love blooms in the heart and soul of every kitchen")
	assert.ElementsMatch(t, []string{"love", "heart", "soul"}, found)

	assert.Empty(t, RomanticElements(""))
	assert.NotNil(t, RomanticElements(""))
}

func TestEvaluateWeightsAppliedAsGiven(t *testing.T) {
	cfg := model.DefaultWorkflowConfig()
	cfg.PersonaWeight = 1.0
	cfg.TomatoWeight = 0.0
	cfg.RomanticWeight = 0.0
	cfg.QualityThreshold = 0.5

	p := model.NewPersonaState()
	result := Evaluate("I love cooking tomato recipes with passion! *winks*", p, cfg)

	require.InDelta(t, result.PersonaConsistency, result.Score, 1e-9)
	assert.True(t, result.Passed)
}

func TestEvaluateReportsIssuesBelowThresholds(t *testing.T) {
	p := model.NewPersonaState() // obsession 9, intensity 8
	result := Evaluate("boil water", p, model.DefaultWorkflowConfig())

	assert.False(t, result.Passed)
	assert.Contains(t, result.Issues, "low personality consistency")
	assert.Contains(t, result.Issues, "insufficient tomato integration for obsession level")
	assert.Contains(t, result.Issues, "insufficient romantic language")
	assert.Len(t, result.Suggestions, 3)
}

func TestEvaluateDeterministic(t *testing.T) {
	p := model.NewPersonaState()
	cfg := model.DefaultWorkflowConfig()
	content := "A romantic tomato dance of love and flavor!"

	first := Evaluate(content, p, cfg)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Evaluate(content, p, cfg))
	}
}
