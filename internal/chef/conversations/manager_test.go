package conversations

import (
	"context"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/repo"
)

func newTestManager(maxTurns int) *Manager {
	return NewManager(repo.NewMemorySessionRepository(), model.SessionConfig{TTL: "15m", MaxTurns: maxTurns})
}

func TestBuildContextIncludesSystemAndHistory(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(10)

	require.NoError(t, m.RecordUser(ctx, "s1", "hello"))
	require.NoError(t, m.RecordAssistant(ctx, "s1", "bonjour"))

	messages, err := m.BuildContext(ctx, "s1", "you are a chef")
	require.NoError(t, err)
	require.Len(t, messages, 3)

	assert.Equal(t, schema.System, messages[0].Role)
	assert.Equal(t, "you are a chef", messages[0].Content)
	assert.Equal(t, schema.User, messages[1].Role)
	assert.Equal(t, schema.Assistant, messages[2].Role)
}

func TestBuildContextTrimsToWindow(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(4)

	for i := 0; i < 10; i++ {
		require.NoError(t, m.RecordUser(ctx, "s1", fmt.Sprintf("question %d", i)))
		require.NoError(t, m.RecordAssistant(ctx, "s1", fmt.Sprintf("answer %d", i)))
	}

	messages, err := m.BuildContext(ctx, "s1", "system")
	require.NoError(t, err)
	// System message plus the four most recent turns.
	require.Len(t, messages, 5)
	assert.Equal(t, "question 8", messages[1].Content)
	assert.Equal(t, "answer 9", messages[4].Content)
}

func TestBuildContextEmptySession(t *testing.T) {
	m := newTestManager(10)

	messages, err := m.BuildContext(context.Background(), "fresh", "system")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, schema.System, messages[0].Role)
}
