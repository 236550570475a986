package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/outbreakrpg/engine/pkg/storage"
	"github.com/redis/go-redis/v9"
)

// Session operations (Redis-backed)

func (r *RedisStorage) SaveSession(ctx context.Context, id uuid.UUID, rec *storage.SessionRecord) error {
	rec.UpdatedAt = time.Now().Unix()

	data, err := json.Marshal(rec)
	if err != nil {
		r.logger.Error("failed to marshal session record", "id", id, "error", err)
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	key := "session:" + id.String()
	if err := r.client.Set(ctx, key, data, r.sessionTTL).Err(); err != nil {
		r.logger.Error("failed to save session", "id", id, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *RedisStorage) LoadSession(ctx context.Context, id uuid.UUID) (*storage.SessionRecord, error) {
	key := "session:" + id.String()
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			r.logger.Warn("session not found", "id", id)
			return nil, nil
		}
		r.logger.Error("failed to load session", "id", id, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var rec storage.SessionRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		r.logger.Error("failed to unmarshal session record", "id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal session record: %w", err)
	}

	return &rec, nil
}

func (r *RedisStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	key := "session:" + id.String()
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("failed to delete session", "id", id, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
