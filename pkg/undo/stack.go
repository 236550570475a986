// Package undo maintains the append-only (until truncated) stack of world
// snapshots the pipeline pushes every turn and restores from on confirmed
// undo (§5, §6.2).
package undo

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/outbreakrpg/engine/pkg/world"
)

// Meta records the context a snapshot was taken under.
type Meta struct {
	PlayerInput string `json:"player_input"`
	PlayerArea  string `json:"player_area"`
}

// Snapshot is one immutable point-in-time copy of world state plus its
// originating context, per §6.2's `{state, meta}` shape.
type Snapshot struct {
	State json.RawMessage `json:"state"`
	Meta  Meta            `json:"meta"`
}

// Stack is the append-only (until a confirmed undo truncates it) list of
// snapshots for one game session.
type Stack struct {
	snapshots []Snapshot
}

// NewStack creates an empty undo stack.
func NewStack() *Stack { return &Stack{} }

// Len reports how many snapshots are currently on the stack.
func (s *Stack) Len() int { return len(s.snapshots) }

// Take builds a Snapshot from the current world state and the given
// context; it does not push it.
func Take(w *world.World, playerInput, playerArea string) (Snapshot, error) {
	raw, err := json.Marshal(w)
	if err != nil {
		return Snapshot{}, fmt.Errorf("undo: marshal world: %w", err)
	}
	return Snapshot{State: raw, Meta: Meta{PlayerInput: playerInput, PlayerArea: playerArea}}, nil
}

// Push appends a snapshot unconditionally.
func (s *Stack) Push(snap Snapshot) {
	s.snapshots = append(s.snapshots, snap)
}

// PushIfChanged appends snap unless it is structurally identical to the
// top of the stack (§4.8 step 11): equality is a byte-compare of the
// state's JSON, which is sound because encoding/json serializes map keys
// in sorted order, giving a canonical structural form for free.
func (s *Stack) PushIfChanged(snap Snapshot) bool {
	if len(s.snapshots) > 0 && bytes.Equal(s.snapshots[len(s.snapshots)-1].State, snap.State) {
		return false
	}
	s.Push(snap)
	return true
}

// At returns the 1-indexed snapshot (1 = oldest, Len() = newest), matching
// the Undo Selector's `k ∈ {1..N}` contract.
func (s *Stack) At(k int) (Snapshot, bool) {
	if k < 1 || k > len(s.snapshots) {
		return Snapshot{}, false
	}
	return s.snapshots[k-1], true
}

// MarshalJSON exposes the snapshot list for persistence (pkg/storage's
// SessionRecord keeps it as opaque raw JSON rather than importing this
// package for its Snapshot type).
func (s *Stack) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.snapshots)
}

// UnmarshalJSON restores a stack previously serialized by MarshalJSON.
func (s *Stack) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &s.snapshots)
}

// TruncateTo keeps snapshots 1..k (1-indexed) and drops everything after,
// per the "truncate stack to chosen index" undo-apply rule.
func (s *Stack) TruncateTo(k int) {
	if k < 0 {
		k = 0
	}
	if k > len(s.snapshots) {
		k = len(s.snapshots)
	}
	s.snapshots = s.snapshots[:k]
}

// Apply decodes a snapshot's state back into a fresh World. Knowledge
// snapshot payloads nested inside character KnowledgeEntry.Snapshot decode
// to generic maps rather than their original typed shape; the pipeline is
// expected to call knowledge.RefreshKnownState for the player immediately
// after apply (per §4.8 step 2), which rebuilds the player's own entries
// fresh and makes this an acceptable, spec-sanctioned approximation for
// any NPC entries that remain generic until next refreshed.
func Apply(snap Snapshot) (*world.World, error) {
	w := &world.World{}
	if err := json.Unmarshal(snap.State, w); err != nil {
		return nil, fmt.Errorf("undo: unmarshal world: %w", err)
	}
	return w, nil
}
