package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
)

func TestMemoryRepositoryTurns(t *testing.T) {
	ctx := context.Background()
	r := NewMemorySessionRepository()

	history, err := r.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)

	require.NoError(t, r.AppendTurn(ctx, "s1", model.Turn{Role: model.RoleUser, Content: "hello", At: time.Now()}))
	require.NoError(t, r.AppendTurn(ctx, "s1", model.Turn{Role: model.RoleAssistant, Content: "bonjour", At: time.Now()}))

	history, err = r.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.RoleUser, history[0].Role)
	assert.Equal(t, "bonjour", history[1].Content)

	// Sessions are isolated.
	other, err := r.History(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, r.ClearHistory(ctx, "s1"))
	history, err = r.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestMemoryRepositoryPreferences(t *testing.T) {
	ctx := context.Background()
	r := NewMemorySessionRepository()

	prefs, err := r.Preferences(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, prefs.DietaryRestrictions)

	require.NoError(t, r.MergePreferences(ctx, "s1", model.Preferences{
		DietaryRestrictions: []string{"vegan"},
		SkillLevel:          "beginner",
	}))
	require.NoError(t, r.MergePreferences(ctx, "s1", model.Preferences{
		DietaryRestrictions: []string{"gluten-free"},
	}))

	prefs, err = r.Preferences(ctx, "s1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"vegan", "gluten-free"}, prefs.DietaryRestrictions)
	assert.Equal(t, "beginner", prefs.SkillLevel)
}
