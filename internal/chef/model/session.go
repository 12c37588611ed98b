package model

import (
	"context"
	"time"
)

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of a session's conversation history.
type Turn struct {
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Preferences is the long-lived session-scoped record stages may read.
// Updates are additive merges, never replacements.
type Preferences struct {
	DietaryRestrictions  []string           `json:"dietary_restrictions,omitempty"`
	SkillLevel           string             `json:"skill_level,omitempty"`
	FavoriteCuisines     []string           `json:"favorite_cuisines,omitempty"`
	IngredientAffinities map[string]float64 `json:"ingredient_affinities,omitempty"`
}

// Merge folds update into p with additive semantics: lists are unioned, the
// skill level is overwritten only when the update carries one, and affinity
// entries overwrite per ingredient.
func (p *Preferences) Merge(update Preferences) {
	p.DietaryRestrictions = unionStrings(p.DietaryRestrictions, update.DietaryRestrictions)
	p.FavoriteCuisines = unionStrings(p.FavoriteCuisines, update.FavoriteCuisines)
	if update.SkillLevel != "" {
		p.SkillLevel = update.SkillLevel
	}
	if len(update.IngredientAffinities) > 0 {
		if p.IngredientAffinities == nil {
			p.IngredientAffinities = make(map[string]float64, len(update.IngredientAffinities))
		}
		for k, v := range update.IngredientAffinities {
			p.IngredientAffinities[k] = v
		}
	}
}

func unionStrings(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	seen := make(map[string]bool, len(base))
	for _, v := range base {
		seen[v] = true
	}
	for _, v := range extra {
		if !seen[v] {
			base = append(base, v)
			seen[v] = true
		}
	}
	return base
}

// SessionRepository persists per-session conversation history and
// preferences. Implementations must be safe for concurrent use; per-request
// workflow state never passes through here.
type SessionRepository interface {
	// AppendTurn appends one conversation turn to the session history.
	AppendTurn(ctx context.Context, sessionID string, turn Turn) error

	// History returns the ordered conversation history for a session.
	History(ctx context.Context, sessionID string) ([]Turn, error)

	// ClearHistory removes all turns for a session.
	ClearHistory(ctx context.Context, sessionID string) error

	// Preferences returns the session's preference record, zero-valued when
	// none has been stored.
	Preferences(ctx context.Context, sessionID string) (Preferences, error)

	// MergePreferences folds a partial update into the stored preferences.
	MergePreferences(ctx context.Context, sessionID string, update Preferences) error
}
