package world

import "encoding/json"

// Item is a world object that is always exactly one of: on an Area floor,
// held by a Character, or unreferenced (just created, not yet placed).
// Equipped items are always held.
type Item struct {
	UID         UID
	Name        string
	Description string
	Damage      int // >= 0
	Robustness  int // 0..100
	Abilities   map[string]struct{}
	KnownBy     map[UID]struct{} // characters who have seen this item

	position UID // Area uid, empty if not on a floor
	holder   UID // Character uid, empty if not held
	equipped bool
}

// NewItem constructs an unreferenced item (caller must place or hand it off).
func NewItem(name, description string, damage, robustness int) *Item {
	return &Item{
		UID:         NewItemUID(),
		Name:        name,
		Description: description,
		Damage:      damage,
		Robustness:  robustness,
		Abilities:   make(map[string]struct{}),
		KnownBy:     make(map[UID]struct{}),
	}
}

// HasAbility reports whether the item carries the named ability (e.g. "Medicate").
func (it *Item) HasAbility(name string) bool {
	if it == nil {
		return false
	}
	_, ok := it.Abilities[name]
	return ok
}

// Position returns the Area uid holding this item on the floor, or "" if none.
func (it *Item) Position() UID { return it.position }

// Holder returns the Character uid holding this item, or "" if none.
func (it *Item) Holder() UID { return it.holder }

// Equipped reports whether the item is currently equipped by its holder.
func (it *Item) Equipped() bool { return it.equipped }

// IsOnFloor reports whether the item currently sits in an Area's floor items.
func (it *Item) IsOnFloor() bool { return it.position != "" }

// IsHeld reports whether a Character currently holds the item.
func (it *Item) IsHeld() bool { return it.holder != "" }

// clearLocation detaches the item from wherever it currently is. Internal:
// callers go through World methods so the area/character side of the
// relationship stays consistent.
func (it *Item) clearLocation() {
	it.position = ""
	it.holder = ""
	it.equipped = false
}

// setPosition places the item on an Area floor.
func (it *Item) setPosition(areaUID UID) {
	it.clearLocation()
	it.position = areaUID
}

// setHolder assigns the item to a Character's inventory.
func (it *Item) setHolder(charUID UID) {
	it.clearLocation()
	it.holder = charUID
}

// MarkKnownBy records that a character has observed this item.
func (it *Item) MarkKnownBy(charUID UID) {
	if it.KnownBy == nil {
		it.KnownBy = make(map[UID]struct{})
	}
	it.KnownBy[charUID] = struct{}{}
}

// itemJSON exposes Item's unexported location fields for snapshotting; the
// undo stack round-trips world state through JSON (§6.2), so the exactly-
// one-of-three location invariant must survive marshal/unmarshal.
type itemJSON struct {
	UID         UID                 `json:"uid"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Damage      int                 `json:"damage"`
	Robustness  int                 `json:"robustness"`
	Abilities   map[string]struct{} `json:"abilities"`
	KnownBy     map[UID]struct{}    `json:"known_by"`
	Position    UID                 `json:"position"`
	Holder      UID                 `json:"holder"`
	Equipped    bool                `json:"equipped"`
}

// MarshalJSON serializes the item including its private location fields.
func (it *Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{
		UID:         it.UID,
		Name:        it.Name,
		Description: it.Description,
		Damage:      it.Damage,
		Robustness:  it.Robustness,
		Abilities:   it.Abilities,
		KnownBy:     it.KnownBy,
		Position:    it.position,
		Holder:      it.holder,
		Equipped:    it.equipped,
	})
}

// UnmarshalJSON restores an item including its private location fields.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw itemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	it.UID = raw.UID
	it.Name = raw.Name
	it.Description = raw.Description
	it.Damage = raw.Damage
	it.Robustness = raw.Robustness
	it.Abilities = raw.Abilities
	it.KnownBy = raw.KnownBy
	it.position = raw.Position
	it.holder = raw.Holder
	it.equipped = raw.Equipped
	return nil
}
