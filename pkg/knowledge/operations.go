package knowledge

import "github.com/outbreakrpg/engine/pkg/world"

// Reasons used when tagging a KnowledgeEntry.
const (
	ReasonPossession = "possession"
	ReasonParty      = "party"
	ReasonPresence   = "presence"
	ReasonCoPresent  = "co_present"
	ReasonInRoom     = "in_room"
	ReasonInform     = "inform"
	ReasonPeek       = "peek"
	ReasonSearch     = "search"
)

// RememberItem inserts or updates a character's knowledge entry for an item,
// marking it fresh (not outdated), and records the character on the item's
// known-by set.
func RememberItem(w *world.World, observer *world.Character, it *world.Item, reason string) {
	if observer == nil || it == nil {
		return
	}
	observer.Knowledge[it.UID] = &world.KnowledgeEntry{
		EntityType: "item",
		UID:        it.UID,
		Name:       it.Name,
		Reason:     reason,
		Snapshot:   BuildItemSnapshot(w, it),
		IsOutdated: false,
	}
	observer.KnownItems[it.UID] = struct{}{}
	it.MarkKnownBy(observer.UID)
}

// RememberCharacter inserts or updates a character's knowledge entry for
// another character.
func RememberCharacter(w *world.World, observer, subject *world.Character, reason string) {
	if observer == nil || subject == nil {
		return
	}
	observer.Knowledge[subject.UID] = &world.KnowledgeEntry{
		EntityType: "character",
		UID:        subject.UID,
		Name:       subject.Name,
		Reason:     reason,
		Snapshot:   BuildCharacterSnapshot(w, subject),
		IsOutdated: false,
	}
	observer.KnownPeople[subject.UID] = struct{}{}
}

// RememberArea inserts or updates a character's knowledge entry for an area.
// outdated should be true for adjacent-area peeks per spec (always marked
// outdated even if still current), false for a direct search of the current area.
func RememberArea(w *world.World, observer *world.Character, a *world.Area, reason string, outdated bool) {
	if observer == nil || a == nil {
		return
	}
	observer.Knowledge[a.UID] = &world.KnowledgeEntry{
		EntityType: "area",
		UID:        a.UID,
		Name:       a.Name,
		Reason:     reason,
		Snapshot:   BuildAreaSnapshot(w, a),
		IsOutdated: outdated,
	}
	observer.KnownAreas[a.UID] = struct{}{}
	a.MarkKnownBy(observer.UID)
}

// RefreshKnownState remembers a character's own inventory, party, current
// area, and all co-present characters and floor items. Called at the start
// and end of every turn for the player.
func RefreshKnownState(w *world.World, observer *world.Character) {
	if observer == nil {
		return
	}
	for _, itemUID := range observer.Inventory {
		if it, ok := w.Item(itemUID); ok {
			RememberItem(w, observer, it, ReasonPossession)
		}
	}
	for memberUID := range observer.Party {
		if member, ok := w.Character(memberUID); ok {
			RememberCharacter(w, observer, member, ReasonParty)
		}
	}
	area, ok := w.Area(observer.CurrentArea)
	if !ok {
		return
	}
	RememberArea(w, observer, area, ReasonPresence, false)
	for _, charUID := range area.Residents {
		if charUID == observer.UID {
			continue
		}
		if other, ok := w.Character(charUID); ok {
			RememberCharacter(w, observer, other, ReasonCoPresent)
		}
	}
	for _, itemUID := range area.FloorItems {
		if it, ok := w.Item(itemUID); ok {
			RememberItem(w, observer, it, ReasonInRoom)
		}
	}
}

// ForgetItem removes an item from a character's known-items set but keeps
// the last snapshot for historical reads.
func ForgetItem(observer *world.Character, itemUID world.UID) {
	if observer == nil {
		return
	}
	delete(observer.KnownItems, itemUID)
}

// ForgetArea removes an area from a character's known-areas set but keeps
// the last snapshot for historical reads.
func ForgetArea(observer *world.Character, areaUID world.UID) {
	if observer == nil {
		return
	}
	delete(observer.KnownAreas, areaUID)
}

// ForgetCharacter removes a character from a character's known-people set
// but keeps the last snapshot for historical reads.
func ForgetCharacter(observer *world.Character, subjectUID world.UID) {
	if observer == nil {
		return
	}
	delete(observer.KnownPeople, subjectUID)
}

// CanSeeArea reports whether observer has direct visibility of an area: it
// is their own current area, or an area known by uid.
func CanSeeArea(observer *world.Character, areaUID world.UID) bool {
	if observer == nil {
		return false
	}
	if observer.CurrentArea == areaUID {
		return true
	}
	_, known := observer.KnownAreas[areaUID]
	return known
}

// CanSeeCharacter reports whether observer has direct visibility of subject:
// self, party member, same room, or already known by uid.
func CanSeeCharacter(w *world.World, observer *world.Character, subjectUID world.UID) bool {
	if observer == nil {
		return false
	}
	if observer.UID == subjectUID {
		return true
	}
	if observer.InParty(subjectUID) {
		return true
	}
	if subject, ok := w.Character(subjectUID); ok && subject.CurrentArea == observer.CurrentArea {
		return true
	}
	_, known := observer.KnownPeople[subjectUID]
	return known
}

// CanSeeItem reports whether observer has direct visibility of an item:
// held by them, on the floor of their current room, held by a party
// member, or already known by uid.
func CanSeeItem(w *world.World, observer *world.Character, itemUID world.UID) bool {
	if observer == nil {
		return false
	}
	it, ok := w.Item(itemUID)
	if !ok {
		_, known := observer.KnownItems[itemUID]
		return known
	}
	if it.Holder() == observer.UID {
		return true
	}
	if it.Position() == observer.CurrentArea {
		return true
	}
	if holderUID := it.Holder(); holderUID != "" && observer.InParty(holderUID) {
		return true
	}
	_, known := observer.KnownItems[itemUID]
	return known
}

// HasTruthView reports whether observer currently has first-hand visibility
// of the given entity (used by inform/talk to decide whether to mark the
// receiver's copied knowledge entry outdated): a character sharing the
// observer's room, the observer's own room, or an item held by the observer
// or a party member or lying on the observer's floor. Knowing a uid alone
// is not a truth view.
func HasTruthView(w *world.World, observer *world.Character, entityType string, uid world.UID) bool {
	if observer == nil {
		return false
	}
	switch entityType {
	case "character":
		subject, ok := w.Character(uid)
		return ok && observer.CurrentArea != "" && subject.CurrentArea == observer.CurrentArea
	case "area":
		return observer.CurrentArea == uid
	case "item":
		it, ok := w.Item(uid)
		if !ok {
			return false
		}
		holder := it.Holder()
		return holder == observer.UID || (holder != "" && observer.InParty(holder)) ||
			(observer.CurrentArea != "" && it.Position() == observer.CurrentArea)
	default:
		return false
	}
}

// CopyKnowledge copies giver's knowledge entry for an entity to receiver. If
// either party has a truth view of the entity, both entries are refreshed
// to a fresh snapshot (is_outdated=false); otherwise the giver's existing
// entry is copied as-is and both entries are marked outdated.
func CopyKnowledge(w *world.World, giver, receiver *world.Character, entityType string, uid world.UID) {
	if giver == nil || receiver == nil {
		return
	}
	giverHasTruth := HasTruthView(w, giver, entityType, uid)
	receiverHasTruth := HasTruthView(w, receiver, entityType, uid)

	if giverHasTruth || receiverHasTruth {
		refreshEntryFromWorld(w, giver, entityType, uid, false)
		refreshEntryFromWorld(w, receiver, entityType, uid, false)
		return
	}

	entry, ok := giver.Knowledge[uid]
	if !ok {
		return
	}
	copied := *entry
	copied.IsOutdated = true
	giver.Knowledge[uid].IsOutdated = true
	receiver.Knowledge[uid] = &copied
	markKnownSet(receiver, entityType, uid)
}

func refreshEntryFromWorld(w *world.World, observer *world.Character, entityType string, uid world.UID, outdated bool) {
	switch entityType {
	case "character":
		if subject, ok := w.Character(uid); ok {
			RememberCharacter(w, observer, subject, ReasonInform)
			observer.Knowledge[uid].IsOutdated = outdated
		}
	case "area":
		if a, ok := w.Area(uid); ok {
			RememberArea(w, observer, a, ReasonInform, outdated)
		}
	case "item":
		if it, ok := w.Item(uid); ok {
			RememberItem(w, observer, it, ReasonInform)
			observer.Knowledge[uid].IsOutdated = outdated
		}
	}
}

func markKnownSet(observer *world.Character, entityType string, uid world.UID) {
	switch entityType {
	case "character":
		observer.KnownPeople[uid] = struct{}{}
	case "area":
		observer.KnownAreas[uid] = struct{}{}
	case "item":
		observer.KnownItems[uid] = struct{}{}
	}
}
