package validate

import (
	"fmt"
	"strings"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/event"
	"github.com/outbreakrpg/engine/pkg/world"
)

// normalizeSentence ensures a blocking reason reads as polite prose ending
// in ., !, or ? per §4.3.
func normalizeSentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	default:
		return s + "."
	}
}

func reasonf(format string, args ...any) string {
	return normalizeSentence(fmt.Sprintf(format, args...))
}

// ValidateSequence validates a chain of actions for the same actor per
// §4.3.1: it plays each step's approximate effect against a phantom copy
// of world state before validating the next one, so later steps see the
// consequences of earlier ones. It returns the first blocking reason
// (prefixed "Action k:" for k > 1 step sequences) or "" if the whole
// sequence is valid. inform actions that resolve to nothing are rewritten
// to talk in place, matching §4.3's silent-degrade rule.
func ValidateSequence(w *world.World, em *event.Manager, actor world.UID, envs []action.Envelope) string {
	ps := newPhantomState(w)
	for i := range envs {
		if reason := validateOne(w, em, ps, actor, &envs[i]); reason != "" {
			if len(envs) == 1 {
				return reason
			}
			return fmt.Sprintf("Action %d: %s", i+1, reason)
		}
		applyEffect(ps, actor, envs[i])
	}
	return ""
}

// applyEffect plays a validated step's approximate state change onto the
// phantom snapshot. ask_action applies the effect as if asked were the
// actor, mirroring the executor's slot remapping.
func applyEffect(ps *phantomState, actingAs world.UID, env action.Envelope) {
	kind := env.Kind
	who := actingAs
	if env.Kind == action.KindAskAction {
		who = env.Target.UID
		kind = env.RequestedAction
	}
	switch kind {
	case action.KindMove:
		ps.applyMove(who, env.Location.UID)
	case action.KindPickUp:
		ps.applyPickUp(who, env.Item.UID)
	case action.KindDropItem:
		ps.applyDrop(who, env.Item.UID)
	case action.KindGiveItem:
		ps.applyTransfer(who, env.Target.UID, env.Item.UID)
	case action.KindSteal:
		ps.applyTransfer(env.Target.UID, who, env.Item.UID)
	case action.KindJoinParty:
		ps.applyJoinParty(who, env.Target.UID)
	case action.KindQuitParty:
		ps.applyQuitParty(who)
	}
}

// validateOne validates a single envelope against live world data (for
// entity existence/eligibility) and the phantom state (for location,
// inventory, and party membership as affected by earlier steps in the
// same chain).
func validateOne(w *world.World, em *event.Manager, ps *phantomState, actor world.UID, env *action.Envelope) string {
	actingChar, ok := w.Character(actor)
	if !ok {
		return reasonf("the actor no longer exists")
	}

	switch env.Kind {
	case action.KindMove:
		if !env.Location.Resolved() {
			return reasonf("there is no such place to go")
		}

	case action.KindTalk, action.KindHarm, action.KindSteal, action.KindGiveItem,
		action.KindJoinParty, action.KindQuitParty:
		if !env.Target.Resolved() {
			return reasonf("there is no one by that name here")
		}
		if !ps.coPresentOrParty(actor, env.Target.UID) {
			return reasonf("%s is not here", targetName(w, env.Target.UID))
		}
		if env.Kind == action.KindHarm && !ps.isAlive(env.Target.UID) {
			return reasonf("%s is already dead", targetName(w, env.Target.UID))
		}

	case action.KindPickUp:
		if !env.Item.Resolved() {
			return reasonf("there is no such item here")
		}
		if !ps.itemOnFloorOf(ps.currentArea(actor), env.Item.UID) {
			return reasonf("%s is not on the ground here", itemName(w, env.Item.UID))
		}
		if _, known := actingChar.KnownItems[env.Item.UID]; !known {
			return reasonf("you have not noticed %s", itemName(w, env.Item.UID))
		}

	case action.KindUseItem:
		if !env.Item.Resolved() || !ps.hasItem(actor, env.Item.UID) {
			return reasonf("you are not carrying that item")
		}
		if env.Target.Raw != "" {
			if !env.Target.Resolved() {
				return reasonf("there is no one by that name here")
			}
			if !ps.coPresentOrParty(actor, env.Target.UID) {
				return reasonf("%s is not here", targetName(w, env.Target.UID))
			}
		}

	case action.KindEquipItem:
		if !env.Item.Resolved() || !ps.hasItem(actor, env.Item.UID) {
			return reasonf("you are not carrying that item")
		}

	case action.KindUnequipItem:
		if !env.Item.Resolved() || !ps.hasItem(actor, env.Item.UID) {
			return reasonf("you are not carrying that item")
		}
		it, _ := w.Item(env.Item.UID)
		if !it.Equipped() {
			return reasonf("%s is not equipped", itemName(w, env.Item.UID))
		}

	case action.KindSearch:
		if !env.Target.Resolved() && !env.Location.Resolved() {
			return reasonf("there is nothing specific to search here")
		}
		if env.Target.Resolved() && !ps.coPresentOrParty(actor, env.Target.UID) {
			return reasonf("%s is not here", targetName(w, env.Target.UID))
		}

	case action.KindInform:
		subjectRaw, subjectResolved := informSubject(env)
		if !subjectResolved {
			topic := "asking about " + subjectRaw
			*env = action.Envelope{
				Actor:    env.Actor,
				Kind:     action.KindTalk,
				Target:   env.Target,
				Location: env.Location,
				Topic:    topic,
			}
			return validateOne(w, em, ps, actor, env)
		}
		if !env.Target.Resolved() {
			return reasonf("there is no one by that name here")
		}
		if !ps.coPresentOrParty(actor, env.Target.UID) {
			return reasonf("%s is not here", targetName(w, env.Target.UID))
		}

	case action.KindAskAction:
		if !env.Target.Resolved() {
			return reasonf("there is no one by that name here")
		}
		if !ps.coPresentOrParty(actor, env.Target.UID) {
			return reasonf("%s is not here", targetName(w, env.Target.UID))
		}
		if !ps.isAlive(env.Target.UID) {
			return reasonf("%s is not able to act", targetName(w, env.Target.UID))
		}
		if !env.RequestedAction.Valid() {
			return reasonf("that is not something %s can be asked to do", targetName(w, env.Target.UID))
		}
		nested := *env
		nested.Kind = env.RequestedAction
		if reason := validateOne(w, em, ps, env.Target.UID, &nested); reason != "" {
			return reason
		}

	case action.KindStopEvent:
		if len(em.EventsInvolving(actor)) == 0 {
			return reasonf("there is no event to stop")
		}

	case action.KindExamine, action.KindDropItem, action.KindDoNothing:
		if env.Kind == action.KindDropItem {
			if !env.Item.Resolved() || !ps.hasItem(actor, env.Item.UID) {
				return reasonf("you are not carrying that item")
			}
		}
	}
	return ""
}

// informSubject returns the raw text and resolution state of an inform
// action's subject, checked across whichever of target/item/location was
// supplied (the subject may be a person, item, or area).
func informSubject(env *action.Envelope) (raw string, resolved bool) {
	if env.Target.Raw != "" {
		return env.Target.Raw, env.Target.Resolved()
	}
	if env.Item.Raw != "" {
		return env.Item.Raw, env.Item.Resolved()
	}
	if env.Location.Raw != "" {
		return env.Location.Raw, env.Location.Resolved()
	}
	return "", false
}

func targetName(w *world.World, uid world.UID) string {
	if ch, ok := w.Character(uid); ok {
		return ch.Name
	}
	return "that person"
}

func itemName(w *world.World, uid world.UID) string {
	if it, ok := w.Item(uid); ok {
		return it.Name
	}
	return "that item"
}
