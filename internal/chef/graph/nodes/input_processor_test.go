package nodes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
)

func newTestState(input string) *model.WorkflowState {
	return model.NewWorkflowState(input, "session-1", model.DefaultWorkflowConfig(), model.NewPersonaState(), nil)
}

func TestInputProcessorRecipeRequest(t *testing.T) {
	st := newTestState("recipe for pasta with tomatoes")
	require.NoError(t, NewInputProcessor().Transform(context.Background(), st))

	assert.Equal(t, model.ContentRecipeRequest, st.ContentType)
	assert.Greater(t, st.Confidence, 0.5)
	assert.Contains(t, st.Entities.Ingredients, "tomato")
	assert.Contains(t, st.Entities.Ingredients, "tomatoes")
	assert.Contains(t, st.Entities.Ingredients, "pasta")
	assert.Equal(t, model.PriorityHigh, st.Priority)
	assert.Equal(t, model.StagePersonalityApplied, st.Stage)
}

func TestInputProcessorAmbiguousInput(t *testing.T) {
	st := newTestState("hello")
	require.NoError(t, NewInputProcessor().Transform(context.Background(), st))

	assert.Equal(t, model.ContentGeneralChat, st.ContentType)
	assert.Equal(t, 0.3, st.Confidence)
	assert.Equal(t, model.PriorityNormal, st.Priority)
}

func TestInputProcessorImageRequest(t *testing.T) {
	st := newTestState("create an image of romantic pasta with tomatoes")
	require.NoError(t, NewInputProcessor().Transform(context.Background(), st))

	assert.Equal(t, model.ContentImageRequest, st.ContentType)
	assert.Equal(t, "romantic pasta with tomatoes", st.Entities.ImageDescription)
	assert.Equal(t, model.StyleRomanticDinner, st.Entities.ImageStyle)
}

func TestInputProcessorImageRequestWithoutStyleKeyword(t *testing.T) {
	st := newTestState("picture of a bowl of pasta")
	require.NoError(t, NewInputProcessor().Transform(context.Background(), st))

	assert.Equal(t, model.ContentImageRequest, st.ContentType)
	assert.Equal(t, "a bowl of pasta", st.Entities.ImageDescription)
	assert.Empty(t, st.Entities.ImageStyle)
}

func TestInputProcessorUrgentPriority(t *testing.T) {
	st := newTestState("urgent: how long should i cook this chicken")
	require.NoError(t, NewInputProcessor().Transform(context.Background(), st))

	assert.Equal(t, model.PriorityUrgent, st.Priority)
}

func TestClassificationDeterminism(t *testing.T) {
	p := NewInputProcessor()
	firstType, firstConf := p.classify("recipe for pasta with tomatoes")
	for i := 0; i < 10; i++ {
		ct, conf := p.classify("recipe for pasta with tomatoes")
		assert.Equal(t, firstType, ct)
		assert.Equal(t, firstConf, conf)
	}
}

func TestEntityExtractionNoKeywords(t *testing.T) {
	entities := extractEntities("completely unrelated text")

	assert.NotNil(t, entities.Ingredients)
	assert.NotNil(t, entities.Techniques)
	assert.NotNil(t, entities.Cuisines)
	assert.NotNil(t, entities.Dietary)
	assert.Empty(t, entities.Ingredients)
	assert.Empty(t, entities.Techniques)
	assert.Empty(t, entities.Cuisines)
	assert.Empty(t, entities.Dietary)
}

func TestEntityExtractionVocabularies(t *testing.T) {
	entities := extractEntities("braise the mushroom in an italian vegetarian style")

	assert.Contains(t, entities.Ingredients, "mushroom")
	assert.Contains(t, entities.Techniques, "braise")
	assert.Contains(t, entities.Cuisines, "italian")
	assert.Contains(t, entities.Dietary, "vegetarian")
}

func TestParseImageRequestPrefixStripping(t *testing.T) {
	tests := []struct {
		input    string
		wantDesc string
	}{
		{"create an image of a rustic loaf", "a rustic loaf"},
		{"Generate an image of soup", "soup"},
		{"photo of elegant plating", "elegant plating"},
		{"a lovely dish", "a lovely dish"},
	}

	for _, tt := range tests {
		desc, _ := parseImageRequest(tt.input)
		assert.Equal(t, tt.wantDesc, desc, "input %q", tt.input)
	}
}
