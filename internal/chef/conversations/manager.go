package conversations

import (
	"context"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
)

// Manager mediates between the workflow and session persistence: it records
// exchanged turns and assembles model message context from recent history.
type Manager struct {
	sessions model.SessionRepository
	maxTurns int
}

func NewManager(sessions model.SessionRepository, cfg model.SessionConfig) *Manager {
	return &Manager{
		sessions: sessions,
		maxTurns: cfg.MaxTurns,
	}
}

// RecordUser appends a user turn to the session.
func (m *Manager) RecordUser(ctx context.Context, sessionID, content string) error {
	return m.sessions.AppendTurn(ctx, sessionID, model.Turn{
		Role:    model.RoleUser,
		Content: content,
		At:      time.Now().UTC(),
	})
}

// RecordAssistant appends an assistant turn to the session.
func (m *Manager) RecordAssistant(ctx context.Context, sessionID, content string) error {
	return m.sessions.AppendTurn(ctx, sessionID, model.Turn{
		Role:    model.RoleAssistant,
		Content: content,
		At:      time.Now().UTC(),
	})
}

// History returns the full ordered history for a session.
func (m *Manager) History(ctx context.Context, sessionID string) ([]model.Turn, error) {
	return m.sessions.History(ctx, sessionID)
}

// Preferences returns the session's preference record.
func (m *Manager) Preferences(ctx context.Context, sessionID string) (model.Preferences, error) {
	return m.sessions.Preferences(ctx, sessionID)
}

// MergePreferences folds a partial preferences update into the session.
func (m *Manager) MergePreferences(ctx context.Context, sessionID string, update model.Preferences) error {
	return m.sessions.MergePreferences(ctx, sessionID, update)
}

// BuildContext assembles the model message list: system prompt first, then
// the most recent turns up to the configured window.
func (m *Manager) BuildContext(ctx context.Context, sessionID, systemPrompt string) ([]*schema.Message, error) {
	history, err := m.sessions.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	recent := trimTail(history, m.maxTurns)

	messages := make([]*schema.Message, 0, len(recent)+1)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	for _, turn := range recent {
		if turn.Content == "" {
			continue
		}
		switch turn.Role {
		case model.RoleUser:
			messages = append(messages, schema.UserMessage(turn.Content))
		case model.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(turn.Content, nil))
		}
	}
	return messages, nil
}

func trimTail(turns []model.Turn, maxTurns int) []model.Turn {
	if maxTurns <= 0 || len(turns) <= maxTurns {
		return turns
	}
	return turns[len(turns)-maxTurns:]
}
