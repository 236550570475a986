// Package event implements in-world events — fights, blockades, and
// conversations — that gate or react to actions and produce automatic
// cascades, coordinated by an EventManager.
package event

import "github.com/outbreakrpg/engine/pkg/world"

// Event is the common interface every concrete event type implements, so
// the validator/executor/manager can dispatch without type-switching on
// concrete structs.
type Event interface {
	UID() world.UID
	Name() string
	Description() string
	Location() world.UID
	Participants() []world.UID
	IsActive() bool

	// IsActiveAllowed reports whether the given action kind may proceed
	// while this event is active in its location. Non-blocking events
	// (fights, conversations) allow everything; an active, blocking blockade
	// denies every "move" (the per-edge check is BlockadeEvent.IsMoveAllowed).
	IsActiveAllowed(actionKind string) bool

	// HandleAction offers the event a chance to react to an action. It
	// returns a non-empty narration fragment if it reacted (e.g. a
	// blockade resolving on "use_item"), or "" if indifferent.
	HandleAction(w *world.World, actionKind string, args []string, actor world.UID) string

	// ResolveIfNeeded checks the event's own resolution condition and
	// resolves it if met, returning true if it resolved on this call.
	ResolveIfNeeded(w *world.World) bool

	// Resolve forcibly ends the event.
	Resolve(w *world.World)
}

// detach removes the event from its area's active list. Shared by all
// concrete Resolve implementations; the Manager drops the now-inactive event
// from its own list on its next CheckForEventTriggersAfterAction pass.
func detach(w *world.World, areaUID, eventUID world.UID) {
	if a, ok := w.Area(areaUID); ok {
		a.RemoveActiveEvent(eventUID)
	}
}
