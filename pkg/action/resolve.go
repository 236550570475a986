package action

import (
	"strings"

	"github.com/outbreakrpg/engine/pkg/world"
)

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func hasUIDPrefix(token, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(token), strings.ToLower(prefix)+"_")
}

// ResolveCharacter resolves a raw token to a live Character uid, searching
// in the order: current-area residents -> actor's party -> all world
// characters. A token matching the Char_ uid prefix convention is looked
// up directly rather than by name.
func ResolveCharacter(w *world.World, actor *world.Character, raw string) (world.UID, bool) {
	raw = NormalizeRaw(raw)
	if raw == "" {
		return "", false
	}
	if hasUIDPrefix(raw, "Char") {
		if _, ok := w.Character(world.UID(raw)); ok {
			return world.UID(raw), true
		}
	}
	key := normalizeKey(raw)

	if area, ok := w.Area(actor.CurrentArea); ok {
		for _, uid := range area.Residents {
			if ch, ok := w.Character(uid); ok && normalizeKey(ch.Name) == key {
				return uid, true
			}
		}
	}
	for uid := range actor.Party {
		if ch, ok := w.Character(uid); ok && normalizeKey(ch.Name) == key {
			return uid, true
		}
	}
	for uid, ch := range w.Characters {
		if normalizeKey(ch.Name) == key {
			return uid, true
		}
	}
	return "", false
}

// ResolveItem resolves a raw token to a live Item uid, searching in the
// order: current-area floor items -> actor's inventory -> all world items.
func ResolveItem(w *world.World, actor *world.Character, raw string) (world.UID, bool) {
	raw = NormalizeRaw(raw)
	if raw == "" {
		return "", false
	}
	if hasUIDPrefix(raw, "Item") {
		if _, ok := w.Item(world.UID(raw)); ok {
			return world.UID(raw), true
		}
	}
	key := normalizeKey(raw)

	if area, ok := w.Area(actor.CurrentArea); ok {
		for _, uid := range area.FloorItems {
			if it, ok := w.Item(uid); ok && normalizeKey(it.Name) == key {
				return uid, true
			}
		}
	}
	for _, uid := range actor.Inventory {
		if it, ok := w.Item(uid); ok && normalizeKey(it.Name) == key {
			return uid, true
		}
	}
	for uid, it := range w.Items {
		if normalizeKey(it.Name) == key {
			return uid, true
		}
	}
	return "", false
}

// ResolveArea resolves a raw token to a live Area uid by uid prefix or name.
func ResolveArea(w *world.World, raw string) (world.UID, bool) {
	raw = NormalizeRaw(raw)
	if raw == "" {
		return "", false
	}
	if hasUIDPrefix(raw, "Area") {
		if _, ok := w.Area(world.UID(raw)); ok {
			return world.UID(raw), true
		}
	}
	key := normalizeKey(raw)
	for uid, a := range w.Areas {
		if normalizeKey(a.Name) == key {
			return uid, true
		}
	}
	return "", false
}

// ResolveEnvelope fills in the UID field of every slot on env that carries a
// raw token, using actor's position in the world for the search order.
func ResolveEnvelope(w *world.World, actor *world.Character, env *Envelope) {
	if uid, ok := ResolveCharacter(w, actor, env.Target.Raw); ok {
		env.Target.UID = uid
	}
	if uid, ok := ResolveCharacter(w, actor, env.IndirectTarget.Raw); ok {
		env.IndirectTarget.UID = uid
	}
	if uid, ok := ResolveItem(w, actor, env.Item.Raw); ok {
		env.Item.UID = uid
	}
	if uid, ok := ResolveArea(w, env.Location.Raw); ok {
		env.Location.UID = uid
	}
}
