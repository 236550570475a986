// Package queue is a Redis-backed FIFO of work that must survive a turn
// boundary: failed turn executions queued for a retry pass rather than
// dropped silently, plus an envelope for party-follower cascade steps
// (§4.7's group-join/group-move origins) that no code path enqueues at
// present.
package queue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/turn"
)

// RequestType identifies what kind of deferred work a Request carries.
type RequestType string

const (
	// RequestTypeCascade carries a turn.Step for one actor. Nothing enqueues
	// it at present (turn.Handler runs every cascade within its own round),
	// and internal/handlers.TurnHandler discards such entries when it drains
	// a session's queue.
	RequestTypeCascade RequestType = "cascade"

	// RequestTypeTurnRetry is a raw player input whose RunTurn call panicked;
	// internal/handlers.TurnHandler enqueues it and re-drives it through the
	// pipeline at the start of the session's next turn request.
	RequestTypeTurnRetry RequestType = "turn_retry"
)

// Request is the unified envelope queued for one game session.
type Request struct {
	RequestID string      `json:"request_id"`
	Type      RequestType `json:"type"`
	SessionID uuid.UUID   `json:"session_id"`

	// Cascade-specific fields.
	CascadeActor  string         `json:"cascade_actor,omitempty"`
	CascadeEnv    action.Envelope `json:"cascade_env,omitempty"`
	CascadeOrigin turn.Origin    `json:"cascade_origin,omitempty"`

	// Turn-retry-specific fields.
	RawInput string `json:"raw_input,omitempty"`

	EnqueuedAt time.Time `json:"enqueued_at"`
}

// ToJSON converts the request to JSON bytes for Redis storage.
func (r *Request) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

// FromJSON parses a request from JSON bytes read back out of Redis.
func FromJSON(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
