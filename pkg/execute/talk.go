package execute

import (
	"fmt"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/knowledge"
	"github.com/outbreakrpg/engine/pkg/world"
)

// execTalk is the unified talk/inform handler (§4.4): when a subject entity
// is carried in the envelope (item, area, or a person other than the
// receiver), its knowledge is transferred from actor to the receiver,
// fresh if either side has a truth view, outdated-copy otherwise.
func execTalk(ctx *Context, actor world.UID, env action.Envelope) Result {
	speaker, ok := ctx.World.Character(actor)
	if !ok {
		return Result{}
	}
	receiver, ok := ctx.World.Character(env.Target.UID)
	if !ok {
		return Result{}
	}

	subjectType, subjectUID := talkSubject(env)
	if subjectType != "" {
		knowledge.CopyKnowledge(ctx.World, speaker, receiver, subjectType, subjectUID)
		subjectName := subjectDisplayName(ctx.World, subjectType, subjectUID)
		return Result{Text: fmt.Sprintf("%s tells %s about %s.", speaker.Name, receiver.Name, subjectName)}
	}

	if env.Topic != "" {
		return Result{Text: fmt.Sprintf("%s talks to %s about %s.", speaker.Name, receiver.Name, env.Topic)}
	}
	return Result{Text: fmt.Sprintf("%s talks to %s.", speaker.Name, receiver.Name)}
}

func talkSubject(env action.Envelope) (entityType string, uid world.UID) {
	if env.IndirectTarget.Resolved() {
		return "character", env.IndirectTarget.UID
	}
	if env.Item.Resolved() {
		return "item", env.Item.UID
	}
	if env.Location.Resolved() {
		return "area", env.Location.UID
	}
	return "", ""
}

func subjectDisplayName(w *world.World, entityType string, uid world.UID) string {
	switch entityType {
	case "character":
		if c, ok := w.Character(uid); ok {
			return c.Name
		}
	case "item":
		if it, ok := w.Item(uid); ok {
			return it.Name
		}
	case "area":
		if a, ok := w.Area(uid); ok {
			return a.Name
		}
	}
	return "something"
}
