package knowledge

import "github.com/outbreakrpg/engine/pkg/world"

// BuildItemSnapshot captures the current state of an item.
func BuildItemSnapshot(w *world.World, it *world.Item) *ItemSnapshot {
	if it == nil {
		return nil
	}
	snap := &ItemSnapshot{
		UID:         string(it.UID),
		Name:        it.Name,
		Damage:      it.Damage,
		Robustness:  it.Robustness,
		Description: it.Description,
		Equipped:    it.Equipped(),
	}
	for ability := range it.Abilities {
		snap.Abilities = append(snap.Abilities, ability)
	}
	if holderUID := it.Holder(); holderUID != "" {
		snap.Holder = string(holderUID)
		if holder, ok := w.Character(holderUID); ok {
			snap.Holder = holder.Name
			if slot, found := holder.EquippedSlotOf(it.UID); found {
				snap.EquippedSlot = string(slot)
			}
		}
	}
	if posUID := it.Position(); posUID != "" {
		snap.Position = string(posUID)
		if area, ok := w.Area(posUID); ok {
			snap.Position = area.Name
		}
	}
	return snap
}

// BuildCharacterSnapshot captures the current state of a character.
func BuildCharacterSnapshot(w *world.World, ch *world.Character) *CharacterSnapshot {
	if ch == nil {
		return nil
	}
	snap := &CharacterSnapshot{
		UID:         string(ch.UID),
		Name:        ch.Name,
		Health:      ch.Health,
		Alive:       ch.Alive,
		CurrentArea: string(ch.CurrentArea),
		Equipment:   make(map[string]string),
		Stats: [5]int{
			ch.Stats.Strength, ch.Stats.Intelligence, ch.Stats.Skill,
			ch.Stats.Speed, ch.Stats.Endurance,
		},
	}
	if area, ok := w.Area(ch.CurrentArea); ok {
		snap.CurrentArea = area.Name
	}
	for slot, itemUID := range ch.Equipment {
		name := string(itemUID)
		if it, ok := w.Item(itemUID); ok {
			name = it.Name
		}
		snap.Equipment[string(slot)] = name
	}
	for _, itemUID := range ch.Inventory {
		entry := InventoryEntry{UID: string(itemUID)}
		if it, ok := w.Item(itemUID); ok {
			entry.Name = it.Name
			entry.Equipped = it.Equipped()
		}
		snap.Inventory = append(snap.Inventory, entry)
	}
	for memberUID := range ch.Party {
		name := string(memberUID)
		if member, ok := w.Character(memberUID); ok {
			name = member.Name
		}
		snap.Party = append(snap.Party, name)
	}
	return snap
}

// BuildAreaSnapshot captures the current state of an area.
func BuildAreaSnapshot(w *world.World, a *world.Area) *AreaSnapshot {
	if a == nil {
		return nil
	}
	snap := &AreaSnapshot{
		UID:         string(a.UID),
		Name:        a.Name,
		Description: a.Description,
	}
	for _, charUID := range a.Residents {
		ref := CharacterRef{UID: string(charUID)}
		if ch, ok := w.Character(charUID); ok {
			ref.Name = ch.Name
			ref.Alive = ch.Alive
		}
		snap.Characters = append(snap.Characters, ref)
	}
	for _, itemUID := range a.FloorItems {
		ref := ItemRef{UID: string(itemUID)}
		if it, ok := w.Item(itemUID); ok {
			ref.Name = it.Name
		}
		snap.FloorItems = append(snap.FloorItems, ref)
	}
	for _, adjUID := range w.AdjacentAreas(a.UID) {
		ref := ItemRef{UID: string(adjUID)}
		if adj, ok := w.Area(adjUID); ok {
			ref.Name = adj.Name
		}
		snap.LinkedAreas = append(snap.LinkedAreas, ref)
	}
	return snap
}
