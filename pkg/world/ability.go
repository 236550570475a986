package world

// Ability is a named capability that an Item or Character can carry, e.g.
// "Medicate" (used by use_item to heal) or a combat perk. The catalog lives
// on World so scenario authors can define abilities once and reference them
// by name from items and characters.
type Ability struct {
	Name        string
	Description string
}
