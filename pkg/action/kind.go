// Package action defines the closed catalog of action kinds, the envelope
// used to carry a parsed action's slots, and entity-token resolution.
package action

// Kind is one of the closed set of action kinds the engine understands.
type Kind string

const (
	KindMove        Kind = "move"
	KindTalk        Kind = "talk"
	KindSearch      Kind = "search"
	KindPickUp      Kind = "pick_up"
	KindUseItem     Kind = "use_item"
	KindGiveItem    Kind = "give_item"
	KindEquipItem   Kind = "equip_item"
	KindUnequipItem Kind = "unequip_item"
	KindHarm        Kind = "harm"
	KindAskAction   Kind = "ask_action"
	KindSteal       Kind = "steal"
	KindJoinParty   Kind = "join_party"
	KindQuitParty   Kind = "quit_party"
	KindDropItem    Kind = "drop_item"
	KindDoNothing   Kind = "do_nothing"
	KindStopEvent   Kind = "stop_event"
	KindExamine     Kind = "examine"
	KindInform      Kind = "inform"
)

// AllKinds enumerates the closed action catalog.
var AllKinds = []Kind{
	KindMove, KindTalk, KindSearch, KindPickUp, KindUseItem, KindGiveItem,
	KindEquipItem, KindUnequipItem, KindHarm, KindAskAction, KindSteal,
	KindJoinParty, KindQuitParty, KindDropItem, KindDoNothing, KindStopEvent,
	KindExamine, KindInform,
}

// Valid reports whether k is one of the catalog's recognized kinds.
func (k Kind) Valid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}
