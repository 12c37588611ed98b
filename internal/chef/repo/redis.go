package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
	errx "github.com/shneydor/jeff-the-langgraph-chef/internal/core/error"
	logx "github.com/shneydor/jeff-the-langgraph-chef/pkg/logger"
)

// RedisSessionRepository persists session turns and preferences in Redis
// with a sliding TTL.
type RedisSessionRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSessionRepository(rdb redis.Cmdable, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisSessionRepository) turnsKey(sessionID string) string {
	return fmt.Sprintf("chef:session:%s:turns", sessionID)
}

func (r *RedisSessionRepository) prefsKey(sessionID string) string {
	return fmt.Sprintf("chef:session:%s:prefs", sessionID)
}

func (r *RedisSessionRepository) touch(ctx context.Context, key string) {
	if r.ttl <= 0 {
		return
	}
	if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
	} else if !ok {
		logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on session key")
	}
}

func (r *RedisSessionRepository) AppendTurn(ctx context.Context, sessionID string, turn model.Turn) error {
	b, err := json.Marshal(turn)
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to marshal turn")
		return fmt.Errorf("marshal turn: %w", err)
	}
	key := r.turnsKey(sessionID)

	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push turn to redis")
		return errx.WrapRedis(err)
	}
	r.touch(ctx, key)
	return nil
}

func (r *RedisSessionRepository) History(ctx context.Context, sessionID string) ([]model.Turn, error) {
	key := r.turnsKey(sessionID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []model.Turn{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session history from redis")
		return nil, errx.WrapRedis(err)
	}

	turns := make([]model.Turn, 0, len(rows))
	for i, row := range rows {
		var t model.Turn
		if err := json.Unmarshal([]byte(row), &t); err != nil {
			logx.Error().Err(err).Str("session_id", sessionID).Int("index", i).Msg("failed to unmarshal turn")
			return nil, fmt.Errorf("unmarshal turn at index %d: %w", i, err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (r *RedisSessionRepository) ClearHistory(ctx context.Context, sessionID string) error {
	key := r.turnsKey(sessionID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete session history from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisSessionRepository) Preferences(ctx context.Context, sessionID string) (model.Preferences, error) {
	key := r.prefsKey(sessionID)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return model.Preferences{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load preferences from redis")
		return model.Preferences{}, errx.WrapRedis(err)
	}

	var prefs model.Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return model.Preferences{}, fmt.Errorf("unmarshal preferences: %w", err)
	}
	return prefs, nil
}

func (r *RedisSessionRepository) MergePreferences(ctx context.Context, sessionID string, update model.Preferences) error {
	prefs, err := r.Preferences(ctx, sessionID)
	if err != nil {
		return err
	}
	prefs.Merge(update)

	b, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	key := r.prefsKey(sessionID)
	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to store preferences in redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.SessionRepository = (*RedisSessionRepository)(nil)
