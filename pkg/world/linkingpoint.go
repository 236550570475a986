package world

// LinkingPoint is a bidirectional connector between two Areas. Blocked is a
// flag that world setup may set and that resolving a pkg/event.BlockadeEvent
// clears; movement itself is gated by the blockade's direction pairs via
// pkg/event.Manager.ValidateMovement, not by this flag.
type LinkingPoint struct {
	UID         UID
	Description string
	AreaA       UID
	AreaB       UID
	Blocked     bool
}

// NewLinkingPoint connects two areas.
func NewLinkingPoint(description string, areaA, areaB UID) *LinkingPoint {
	return &LinkingPoint{
		UID:         NewLinkingPointUID(),
		Description: description,
		AreaA:       areaA,
		AreaB:       areaB,
	}
}

// Other returns the area on the far side of the link from the given area.
func (lp *LinkingPoint) Other(from UID) (UID, bool) {
	switch from {
	case lp.AreaA:
		return lp.AreaB, true
	case lp.AreaB:
		return lp.AreaA, true
	default:
		return "", false
	}
}

// Connects reports whether this link joins the two given areas (either direction).
func (lp *LinkingPoint) Connects(a, b UID) bool {
	return (lp.AreaA == a && lp.AreaB == b) || (lp.AreaA == b && lp.AreaB == a)
}
