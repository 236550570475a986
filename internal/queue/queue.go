package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionQueue manages the deferred-work FIFO for each game session,
// keyed by session id, mirroring the teacher's per-game story event queue.
type SessionQueue struct {
	client *Client
	logger *slog.Logger
}

// NewSessionQueue creates a SessionQueue bound to client.
func NewSessionQueue(client *Client, logger *slog.Logger) *SessionQueue {
	return &SessionQueue{client: client, logger: logger}
}

func (q *SessionQueue) key(sessionID uuid.UUID) string {
	return fmt.Sprintf("session-queue:%s", sessionID)
}

// Enqueue appends req to the end of sessionID's queue.
func (q *SessionQueue) Enqueue(ctx context.Context, sessionID uuid.UUID, req *Request) error {
	data, err := req.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal queued request: %w", err)
	}
	if err := q.client.rdb.RPush(ctx, q.key(sessionID), data).Err(); err != nil {
		q.logger.Error("failed to enqueue request", "error", err, "session_id", sessionID, "type", req.Type)
		return fmt.Errorf("failed to enqueue request: %w", err)
	}
	return nil
}

// DequeueAll removes and returns every pending request for sessionID, in
// FIFO order, so the pipeline can replay them at the start of its next turn.
func (q *SessionQueue) DequeueAll(ctx context.Context, sessionID uuid.UUID) ([]*Request, error) {
	key := q.key(sessionID)

	raw, err := q.client.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil && err != redis.Nil {
		q.logger.Error("failed to dequeue requests", "error", err, "session_id", sessionID)
		return nil, fmt.Errorf("failed to dequeue requests: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	if err := q.client.rdb.Del(ctx, key).Err(); err != nil {
		q.logger.Error("failed to clear drained queue", "error", err, "session_id", sessionID)
		return nil, fmt.Errorf("failed to clear drained queue: %w", err)
	}

	out := make([]*Request, 0, len(raw))
	for _, item := range raw {
		req, err := FromJSON([]byte(item))
		if err != nil {
			q.logger.Warn("dropping malformed queued request", "error", err, "session_id", sessionID)
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

// Depth reports how many requests are currently queued for sessionID.
func (q *SessionQueue) Depth(ctx context.Context, sessionID uuid.UUID) (int, error) {
	count, err := q.client.rdb.LLen(ctx, q.key(sessionID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue depth: %w", err)
	}
	return int(count), nil
}

// Clear drops all pending requests for sessionID without returning them.
func (q *SessionQueue) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := q.client.rdb.Del(ctx, q.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}
	return nil
}
