// Package storage defines the persistence boundary every storage backend
// (Redis-backed, in-memory mock) satisfies: GameSession state round-trips
// through Redis, while world definitions are static filesystem JSON.
package storage

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/outbreakrpg/engine/pkg/world"
)

// SessionRecord is everything needed to resume a GameSession: the live
// world, the player's uid, and the undo stack's snapshots (§6.2), the
// latter kept as raw JSON so this package need not import pkg/undo just to
// round-trip its Snapshot shape. The pending-confirmation phase and
// suggestion counter are not persisted — they reset on reload, which only
// affects in-flight confirmation UX, not any world-state invariant.
type SessionRecord struct {
	ID        uuid.UUID       `json:"id"`
	PlayerUID world.UID       `json:"player_uid"`
	World     *world.World    `json:"world"`
	Snapshots json.RawMessage `json:"snapshots"`
	CreatedAt int64           `json:"created_at"`
	UpdatedAt int64           `json:"updated_at"`
}

// Storage is the unified interface for session persistence (Redis-backed)
// and world-definition loading (filesystem-backed).
type Storage interface {
	Ping(ctx context.Context) error
	Close() error

	SaveSession(ctx context.Context, id uuid.UUID, rec *SessionRecord) error
	LoadSession(ctx context.Context, id uuid.UUID) (*SessionRecord, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error

	ListWorldDefs(ctx context.Context) ([]string, error)
	GetWorldDef(ctx context.Context, filename string) (*world.World, error)
}
