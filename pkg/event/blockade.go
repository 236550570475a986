package event

import "github.com/outbreakrpg/engine/pkg/world"

// blockedPair is a directed area-to-area edge a blockade currently gates.
type blockedPair struct {
	from world.UID
	to   world.UID
}

// BlockadeEvent ties to a LinkingPoint and denies "move" across one or both
// of its directions until resolved by using a specific required item.
type BlockadeEvent struct {
	uid         world.UID
	name        string
	description string

	linkingPoint        world.UID
	location             world.UID // anchor area this event is tracked active in
	blockedPairs         []blockedPair
	requiredItemName     string
	resolvedDescription  string

	active     bool
	isBlocking bool
	resolved   bool
}

// NewBlockadeEvent gates both directions of the given linking point's
// endpoints until requiredItemName is used in its location.
func NewBlockadeEvent(name, description string, linkingPoint world.UID, anchorArea, otherArea world.UID, requiredItemName, resolvedDescription string) *BlockadeEvent {
	return &BlockadeEvent{
		uid:                 world.NewEventUID(),
		name:                name,
		description:         description,
		linkingPoint:        linkingPoint,
		location:            anchorArea,
		requiredItemName:    requiredItemName,
		resolvedDescription: resolvedDescription,
		active:              true,
		isBlocking:          true,
		blockedPairs: []blockedPair{
			{from: anchorArea, to: otherArea},
			{from: otherArea, to: anchorArea},
		},
	}
}

func (b *BlockadeEvent) UID() world.UID      { return b.uid }
func (b *BlockadeEvent) Name() string        { return b.name }
func (b *BlockadeEvent) Description() string { return b.description }
func (b *BlockadeEvent) Location() world.UID { return b.location }
func (b *BlockadeEvent) IsActive() bool      { return b.active }
func (b *BlockadeEvent) Participants() []world.UID { return nil }

// IsActiveAllowed denies "move" while the blockade is active and blocking;
// every other action kind passes through.
func (b *BlockadeEvent) IsActiveAllowed(actionKind string) bool {
	if actionKind == "move" && b.active && b.isBlocking {
		return false
	}
	return true
}

// IsMoveAllowed reports whether movement across the given directed edge is
// currently permitted by this blockade.
func (b *BlockadeEvent) IsMoveAllowed(from, to world.UID) bool {
	if !b.active || !b.isBlocking {
		return true
	}
	for _, p := range b.blockedPairs {
		if p.from == from && p.to == to {
			return false
		}
	}
	return true
}

// HandleAction resolves the blockade when the actor uses the required item
// while co-located with it; the tool breaks (is removed) if its robustness
// is 20 or lower.
func (b *BlockadeEvent) HandleAction(w *world.World, actionKind string, args []string, actor world.UID) string {
	if actionKind != "use_item" || !b.active || len(args) == 0 {
		return ""
	}
	if args[0] != b.requiredItemName {
		return ""
	}
	ch, ok := w.Character(actor)
	if !ok || ch.CurrentArea != b.location {
		return ""
	}

	var usedItemUID world.UID
	for _, itemUID := range ch.Inventory {
		if it, ok := w.Item(itemUID); ok && it.Name == b.requiredItemName {
			usedItemUID = itemUID
			break
		}
	}
	if usedItemUID == "" {
		return ""
	}

	b.active = false
	b.isBlocking = false
	b.resolved = true
	b.description = b.resolvedDescription
	if lp, ok := w.LinkingPoint(b.linkingPoint); ok {
		lp.Blocked = false
	}
	detach(w, b.location, b.uid)

	msg := ch.Name + " dismantles the blockade with the " + b.requiredItemName + "."
	if it, ok := w.Item(usedItemUID); ok && it.Robustness <= 20 {
		w.RemoveItem(usedItemUID)
		msg += " The " + b.requiredItemName + " breaks in the process."
	}
	return msg
}

// ResolveIfNeeded finishes resolving a blockade that is marked resolved but
// still active, returning true in that case and false otherwise (including
// for a blockade that is already inactive); it has no independent
// time-based resolution condition beyond HandleAction.
func (b *BlockadeEvent) ResolveIfNeeded(w *world.World) bool {
	if b.resolved && b.active {
		b.Resolve(w)
		return true
	}
	return false
}

// Resolve forcibly ends the blockade.
func (b *BlockadeEvent) Resolve(w *world.World) {
	b.active = false
	b.isBlocking = false
	b.resolved = true
	if lp, ok := w.LinkingPoint(b.linkingPoint); ok {
		lp.Blocked = false
	}
	detach(w, b.location, b.uid)
}

// IsResolved reports whether the blockade has been resolved.
func (b *BlockadeEvent) IsResolved() bool { return b.resolved }
