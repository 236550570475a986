package event

import "github.com/outbreakrpg/engine/pkg/world"

// Manager coordinates the lifecycle of every active event: spawning fights,
// gating movement through blockades, and routing item-use reactions.
type Manager struct {
	active map[world.UID]Event
}

// NewManager creates an empty event manager.
func NewManager() *Manager {
	return &Manager{active: make(map[world.UID]Event)}
}

// Add registers an event as active and attaches it to its anchor area.
func (m *Manager) Add(w *world.World, e Event) {
	m.active[e.UID()] = e
	if a, ok := w.Area(e.Location()); ok {
		a.AddActiveEvent(e.UID())
	}
}

// Get returns the active event with the given uid, if any.
func (m *Manager) Get(uid world.UID) (Event, bool) {
	e, ok := m.active[uid]
	return e, ok
}

// InArea returns every active event anchored in the given area.
func (m *Manager) InArea(areaUID world.UID) []Event {
	var out []Event
	for _, e := range m.active {
		if e.Location() == areaUID {
			out = append(out, e)
		}
	}
	return out
}

// FightsInArea returns active FightEvents anchored in the given area.
func (m *Manager) FightsInArea(areaUID world.UID) []*FightEvent {
	var out []*FightEvent
	for _, e := range m.InArea(areaUID) {
		if f, ok := e.(*FightEvent); ok {
			out = append(out, f)
		}
	}
	return out
}

// ValidateMovement returns a blocking description for the from->to edge, or
// "" if movement is currently permitted. The first active, unresolved
// blockade whose IsMoveAllowed denies the edge wins.
func (m *Manager) ValidateMovement(from, to world.UID) string {
	for _, e := range m.active {
		b, ok := e.(*BlockadeEvent)
		if !ok || !b.IsActive() {
			continue
		}
		if !b.IsMoveAllowed(from, to) {
			return b.Description()
		}
	}
	return ""
}

// HandleItemUse dispatches use_item to every active event in the actor's
// area plus every other active event globally (deduplicated by identity),
// returning the concatenation of non-empty reactions.
func (m *Manager) HandleItemUse(w *world.World, actor world.UID, itemName string) string {
	ch, ok := w.Character(actor)
	if !ok {
		return ""
	}
	seen := make(map[world.UID]struct{})
	var out string
	for _, e := range m.InArea(ch.CurrentArea) {
		seen[e.UID()] = struct{}{}
		if resp := e.HandleAction(w, "use_item", []string{itemName}, actor); resp != "" {
			out += resp
		}
	}
	for _, e := range m.active {
		if _, already := seen[e.UID()]; already {
			continue
		}
		if resp := e.HandleAction(w, "use_item", []string{itemName}, actor); resp != "" {
			out += resp
		}
	}
	return out
}

// isHostileTo reports whether candidate is hostile toward actor by any of
// the spec's hostility signals: mutual friendship floor, explicit hostile
// flag analog (state tag), or friendship in either direction at or below 1.
func isHostileTo(w *world.World, candidate, actor *world.Character) bool {
	if candidate.IsHostileState() {
		return true
	}
	if candidate.FriendshipWith(actor.UID) <= 1 {
		return true
	}
	if actor.FriendshipWith(candidate.UID) <= 1 {
		return true
	}
	return false
}

// IsHostile reports whether candidate is hostile toward actor, per the same
// signals isHostileTo uses internally. Exported so the confirmation-gate
// logic in pkg/pipeline (§4.8 step 7's hostile-bypass rule) shares exactly
// one hostility definition with fight-trigger detection instead of
// re-deriving it.
func IsHostile(w *world.World, candidateUID, actorUID world.UID) bool {
	candidate, ok := w.Character(candidateUID)
	if !ok {
		return false
	}
	actor, ok := w.Character(actorUID)
	if !ok {
		return false
	}
	return isHostileTo(w, candidate, actor)
}

// CheckForEventTriggersAfterAction drops every event that is no longer
// active, resolves any fight that has dropped below two alive co-located
// participants, then spawns a new FightEvent in the actor's area if a
// hostile character is now co-located with the actor and no fight is
// already active there.
func (m *Manager) CheckForEventTriggersAfterAction(w *world.World, actorUID world.UID) {
	for uid, e := range m.active {
		if !e.IsActive() {
			delete(m.active, uid)
			continue
		}
		if f, ok := e.(*FightEvent); ok {
			if f.ResolveIfNeeded(w) {
				delete(m.active, uid)
			}
		}
	}

	actor, ok := w.Character(actorUID)
	if !ok || !actor.Alive {
		return
	}
	area, ok := w.Area(actor.CurrentArea)
	if !ok {
		return
	}
	if len(m.FightsInArea(area.UID)) > 0 {
		return
	}
	for _, residentUID := range area.Residents {
		if residentUID == actorUID {
			continue
		}
		resident, ok := w.Character(residentUID)
		if !ok || !resident.Alive {
			continue
		}
		if isHostileTo(w, resident, actor) {
			f := NewFightEvent(area.UID, actorUID, residentUID)
			m.Add(w, f)
			return
		}
	}
}

// InitializeEvents seeds any required world-setup events, such as a
// barricaded door that needs a specific item to resolve. Scenario-specific
// wiring is left to the caller via the seeds parameter so pkg/event has no
// dependency on a scenario-loading package.
func (m *Manager) InitializeEvents(w *world.World, seeds ...Event) {
	for _, e := range seeds {
		m.Add(w, e)
	}
}

// EnsureFight guarantees a non-blocking FightEvent exists in areaUID
// covering every given participant, creating one if none is active there
// yet and otherwise drawing any missing participants into the existing
// fight. Used by harm execution (§4.4) independent of the automatic
// hostile-co-location trigger.
func (m *Manager) EnsureFight(w *world.World, areaUID world.UID, participants ...world.UID) *FightEvent {
	fights := m.FightsInArea(areaUID)
	var f *FightEvent
	if len(fights) > 0 {
		f = fights[0]
	} else {
		f = NewFightEvent(areaUID, participants...)
		m.Add(w, f)
		return f
	}
	for _, p := range participants {
		f.AddParticipant(p)
	}
	return f
}

// EventsInvolving returns every active event that lists actorUID among its
// participants, used by stop_event validation (§4.3).
func (m *Manager) EventsInvolving(actorUID world.UID) []Event {
	var out []Event
	for _, e := range m.active {
		for _, p := range e.Participants() {
			if p == actorUID {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// ResolveAll runs ResolveIfNeeded across every active event once, removing
// any that resolved.
func (m *Manager) ResolveAll(w *world.World) {
	for uid, e := range m.active {
		if e.ResolveIfNeeded(w) {
			delete(m.active, uid)
		}
	}
}
