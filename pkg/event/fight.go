package event

import "github.com/outbreakrpg/engine/pkg/world"

// FightEvent marks an area as host to active violence. It never blocks any
// action (players and NPCs can still move, talk, search, etc. during a
// fight) and exists mainly so the manager can avoid double-spawning fights
// and so storytelling/validator code can ask "is this area fighting".
type FightEvent struct {
	uid          world.UID
	name         string
	description  string
	location     world.UID
	participants map[world.UID]struct{}
	active       bool
}

// NewFightEvent creates an active fight in location seeded with the given participants.
func NewFightEvent(location world.UID, participants ...world.UID) *FightEvent {
	f := &FightEvent{
		uid:          world.NewEventUID(),
		name:         "Fight",
		description:  "A fight has broken out.",
		location:     location,
		participants: make(map[world.UID]struct{}),
		active:       true,
	}
	for _, p := range participants {
		f.participants[p] = struct{}{}
	}
	return f
}

func (f *FightEvent) UID() world.UID         { return f.uid }
func (f *FightEvent) Name() string           { return f.name }
func (f *FightEvent) Description() string    { return f.description }
func (f *FightEvent) Location() world.UID    { return f.location }
func (f *FightEvent) IsActive() bool         { return f.active }
func (f *FightEvent) IsActiveAllowed(string) bool { return true }

// Participants returns the uids of everyone drawn into this fight.
func (f *FightEvent) Participants() []world.UID {
	out := make([]world.UID, 0, len(f.participants))
	for p := range f.participants {
		out = append(out, p)
	}
	return out
}

// AddParticipant draws another character into the fight.
func (f *FightEvent) AddParticipant(charUID world.UID) {
	f.participants[charUID] = struct{}{}
}

// HasParticipant reports whether charUID is already drawn into this fight.
func (f *FightEvent) HasParticipant(charUID world.UID) bool {
	_, ok := f.participants[charUID]
	return ok
}

// HandleAction is a no-op: fights do not intercept actions, they only track them.
func (f *FightEvent) HandleAction(*world.World, string, []string, world.UID) string { return "" }

// ResolveIfNeeded ends the fight once fewer than two alive participants
// remain in it, or the remaining participants have split across areas.
func (f *FightEvent) ResolveIfNeeded(w *world.World) bool {
	if !f.active {
		return false
	}
	aliveInLocation := 0
	for p := range f.participants {
		ch, ok := w.Character(p)
		if !ok || !ch.Alive {
			continue
		}
		if ch.CurrentArea != f.location {
			// Participants have split across areas; the standoff is over.
			f.Resolve(w)
			return true
		}
		aliveInLocation++
	}
	if aliveInLocation < 2 {
		f.Resolve(w)
		return true
	}
	return false
}

// Resolve ends the fight and detaches it from its area.
func (f *FightEvent) Resolve(w *world.World) {
	f.active = false
	detach(w, f.location, f.uid)
}
