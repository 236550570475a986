// Package pipeline implements the Turn Pipeline orchestrator (§4.8): the
// single entry point that threads one raw player input through precheck,
// confirmation gates, parsing, chain validation, execution, knowledge
// refresh, undo snapshotting, and storytelling. All state for one player's
// game lives on a GameSession value — no package-level globals — per §9's
// "encapsulate as a GameSession value threaded through the pipeline".
package pipeline

import (
	"github.com/google/uuid"
	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/event"
	"github.com/outbreakrpg/engine/pkg/narrate"
	"github.com/outbreakrpg/engine/pkg/undo"
	"github.com/outbreakrpg/engine/pkg/world"
)

// pendingKind names which confirmation/correction phase, if any, is
// currently awaiting the player's next input (§4.8 steps 2-4, §7 item 2).
type pendingKind string

const (
	pendingNone       pendingKind = ""
	pendingUndo       pendingKind = "undo"
	pendingRisky      pendingKind = "risky"
	pendingCorrection pendingKind = "correction"
)

// pendingUndoState is stashed while waiting for an undo confirmation.
type pendingUndoState struct {
	Index int
}

// pendingRiskyState is stashed while waiting for a risky-action confirmation.
type pendingRiskyState struct {
	Envs          []action.Envelope
	OriginalInput string
}

// pendingCorrectionState is stashed while waiting for the player to supply
// the missing detail a single-step validation failure asked for (§7 item 2).
type pendingCorrectionState struct {
	Envs          []action.Envelope
	FailedIndex   int
	OriginalInput string
	BaseError     string
}

// GameSession is the complete, self-contained state for one player's game:
// the live world, its event manager, the undo stack, and whatever
// confirmation/correction phase is in flight. A GameSession is constructed
// once per game and threaded through every Pipeline.RunTurn call by the
// caller (HTTP handler, console) — it replaces the original's module-level
// globals (§9).
type GameSession struct {
	ID uuid.UUID

	World     *world.World
	Events    *event.Manager
	Undo      *undo.Stack
	PlayerUID world.UID

	Suggestions narrate.Counter

	pending           pendingKind
	pendingUndo       pendingUndoState
	pendingRisky      pendingRiskyState
	pendingCorrection pendingCorrectionState
}

// NewGameSession constructs a session bound to an already-built world, event
// manager, and player character.
func NewGameSession(w *world.World, em *event.Manager, playerUID world.UID) *GameSession {
	return &GameSession{
		ID:        uuid.New(),
		World:     w,
		Events:    em,
		Undo:      undo.NewStack(),
		PlayerUID: playerUID,
	}
}

func (s *GameSession) clearPending() {
	s.pending = pendingNone
	s.pendingUndo = pendingUndoState{}
	s.pendingRisky = pendingRiskyState{}
	s.pendingCorrection = pendingCorrectionState{}
}
