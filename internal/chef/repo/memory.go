package repo

import (
	"context"
	"sync"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
)

// MemorySessionRepository keeps session data in process memory. Used by
// tests and keyless demo runs; safe for concurrent use.
type MemorySessionRepository struct {
	mu    sync.RWMutex
	turns map[string][]model.Turn
	prefs map[string]model.Preferences
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		turns: make(map[string][]model.Turn),
		prefs: make(map[string]model.Preferences),
	}
}

func (r *MemorySessionRepository) AppendTurn(_ context.Context, sessionID string, turn model.Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns[sessionID] = append(r.turns[sessionID], turn)
	return nil
}

func (r *MemorySessionRepository) History(_ context.Context, sessionID string) ([]model.Turn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Turn, len(r.turns[sessionID]))
	copy(out, r.turns[sessionID])
	return out, nil
}

func (r *MemorySessionRepository) ClearHistory(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.turns, sessionID)
	return nil
}

func (r *MemorySessionRepository) Preferences(_ context.Context, sessionID string) (model.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.prefs[sessionID], nil
}

func (r *MemorySessionRepository) MergePreferences(_ context.Context, sessionID string, update model.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prefs := r.prefs[sessionID]
	prefs.Merge(update)
	r.prefs[sessionID] = prefs
	return nil
}

var _ model.SessionRepository = (*MemorySessionRepository)(nil)
