// Package validate checks a parsed action sequence against world state
// before the executor is allowed to touch it for real.
package validate

import "github.com/outbreakrpg/engine/pkg/world"

// phantomState is the minimal mutable snapshot the chain validator plays
// approximate effects against (§4.3.1): character location, inventory,
// party membership, and area floor items. It is a plain copy of the live
// world rather than a mutate-then-restore of the real objects, which
// avoids ever touching live state during validation and needs no restore
// step once the copy goes out of scope.
type phantomState struct {
	area       map[world.UID]world.UID            // character -> current area
	alive      map[world.UID]bool                  // character -> alive
	inventory  map[world.UID]map[world.UID]struct{} // character -> held item uids
	holder     map[world.UID]world.UID            // item -> holding character ("" if on floor)
	floor      map[world.UID]map[world.UID]struct{} // area -> floor item uids
	party      map[world.UID]map[world.UID]struct{} // character -> party member uids
}

func newPhantomState(w *world.World) *phantomState {
	ps := &phantomState{
		area:      make(map[world.UID]world.UID),
		alive:     make(map[world.UID]bool),
		inventory: make(map[world.UID]map[world.UID]struct{}),
		holder:    make(map[world.UID]world.UID),
		floor:     make(map[world.UID]map[world.UID]struct{}),
		party:     make(map[world.UID]map[world.UID]struct{}),
	}
	for uid, c := range w.Characters {
		ps.area[uid] = c.CurrentArea
		ps.alive[uid] = c.Alive
		items := make(map[world.UID]struct{}, len(c.Inventory))
		for _, itemUID := range c.Inventory {
			items[itemUID] = struct{}{}
		}
		ps.inventory[uid] = items
		members := make(map[world.UID]struct{}, len(c.Party))
		for member := range c.Party {
			members[member] = struct{}{}
		}
		ps.party[uid] = members
	}
	for uid, it := range w.Items {
		ps.holder[uid] = it.Holder()
	}
	for uid, a := range w.Areas {
		items := make(map[world.UID]struct{}, len(a.FloorItems))
		for _, itemUID := range a.FloorItems {
			items[itemUID] = struct{}{}
		}
		ps.floor[uid] = items
	}
	return ps
}

func (ps *phantomState) currentArea(charUID world.UID) world.UID { return ps.area[charUID] }

func (ps *phantomState) isAlive(charUID world.UID) bool { return ps.alive[charUID] }

func (ps *phantomState) hasItem(charUID, itemUID world.UID) bool {
	_, ok := ps.inventory[charUID][itemUID]
	return ok
}

func (ps *phantomState) itemOnFloorOf(areaUID, itemUID world.UID) bool {
	_, ok := ps.floor[areaUID][itemUID]
	return ok
}

func (ps *phantomState) inParty(a, b world.UID) bool {
	_, ok := ps.party[a][b]
	return ok
}

func (ps *phantomState) coPresentOrParty(actor, other world.UID) bool {
	if ps.area[actor] != "" && ps.area[actor] == ps.area[other] {
		return true
	}
	return ps.inParty(actor, other)
}

// applyMove records the actor's new current area.
func (ps *phantomState) applyMove(actor, dest world.UID) {
	ps.area[actor] = dest
}

func (ps *phantomState) removeFromFloor(areaUID, itemUID world.UID) {
	if set := ps.floor[areaUID]; set != nil {
		delete(set, itemUID)
	}
}

func (ps *phantomState) addToFloor(areaUID, itemUID world.UID) {
	if ps.floor[areaUID] == nil {
		ps.floor[areaUID] = make(map[world.UID]struct{})
	}
	ps.floor[areaUID][itemUID] = struct{}{}
}

func (ps *phantomState) removeFromInventory(charUID, itemUID world.UID) {
	if set := ps.inventory[charUID]; set != nil {
		delete(set, itemUID)
	}
}

func (ps *phantomState) addToInventory(charUID, itemUID world.UID) {
	if ps.inventory[charUID] == nil {
		ps.inventory[charUID] = make(map[world.UID]struct{})
	}
	ps.inventory[charUID][itemUID] = struct{}{}
	ps.holder[itemUID] = charUID
}

// applyPickUp moves an item from the actor's current area floor to their inventory.
func (ps *phantomState) applyPickUp(actor, itemUID world.UID) {
	ps.removeFromFloor(ps.area[actor], itemUID)
	ps.addToInventory(actor, itemUID)
}

// applyDrop moves an item from the actor's inventory to their current area floor.
func (ps *phantomState) applyDrop(actor, itemUID world.UID) {
	ps.removeFromInventory(actor, itemUID)
	ps.addToFloor(ps.area[actor], itemUID)
	ps.holder[itemUID] = ""
}

// applyTransfer moves an item from one character's inventory to another's,
// used for both give_item (actor->recipient) and steal (victim->thief).
func (ps *phantomState) applyTransfer(from, to, itemUID world.UID) {
	ps.removeFromInventory(from, itemUID)
	ps.addToInventory(to, itemUID)
}

// applyJoinParty links a and b (and transitively their existing parties)
// into one party, mirroring World.JoinParty's symmetry.
func (ps *phantomState) applyJoinParty(a, b world.UID) {
	allMembers := func(start world.UID) map[world.UID]struct{} {
		out := map[world.UID]struct{}{start: {}}
		for m := range ps.party[start] {
			out[m] = struct{}{}
		}
		return out
	}
	group := map[world.UID]struct{}{}
	for m := range allMembers(a) {
		group[m] = struct{}{}
	}
	for m := range allMembers(b) {
		group[m] = struct{}{}
	}
	for m := range group {
		if ps.party[m] == nil {
			ps.party[m] = make(map[world.UID]struct{})
		}
		for other := range group {
			if other != m {
				ps.party[m][other] = struct{}{}
			}
		}
	}
}

// applyQuitParty severs a from every current party member.
func (ps *phantomState) applyQuitParty(a world.UID) {
	for other := range ps.party[a] {
		delete(ps.party[other], a)
	}
	ps.party[a] = make(map[world.UID]struct{})
}
