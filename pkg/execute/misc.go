package execute

import (
	"fmt"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/knowledge"
	"github.com/outbreakrpg/engine/pkg/world"
)

func execPickUp(ctx *Context, actor world.UID, env action.Envelope) Result {
	ch, ok := ctx.World.Character(actor)
	if !ok {
		return Result{}
	}
	it, ok := ctx.World.Item(env.Item.UID)
	if !ok {
		return Result{}
	}
	if err := ctx.World.GiveItemToCharacter(it.UID, actor); err != nil {
		return Result{Text: fmt.Sprintf("%s can't pick up %s.", ch.Name, it.Name)}
	}
	knowledge.RememberItem(ctx.World, ch, it, knowledge.ReasonPossession)
	return Result{Text: fmt.Sprintf("%s picks up %s.", ch.Name, it.Name)}
}

func execDropItem(ctx *Context, actor world.UID, env action.Envelope) Result {
	ch, ok := ctx.World.Character(actor)
	if !ok {
		return Result{}
	}
	it, ok := ctx.World.Item(env.Item.UID)
	if !ok {
		return Result{}
	}
	if err := ctx.World.PlaceItemInArea(it.UID, ch.CurrentArea); err != nil {
		return Result{Text: fmt.Sprintf("%s can't drop %s.", ch.Name, it.Name)}
	}
	return Result{Text: fmt.Sprintf("%s drops %s.", ch.Name, it.Name)}
}

func execExamine(ctx *Context, actor world.UID, env action.Envelope) Result {
	ch, ok := ctx.World.Character(actor)
	if !ok {
		return Result{}
	}
	if env.Item.Resolved() {
		if it, ok := ctx.World.Item(env.Item.UID); ok {
			knowledge.RememberItem(ctx.World, ch, it, knowledge.ReasonSearch)
			return Result{Text: fmt.Sprintf("%s examines %s. %s", ch.Name, it.Name, it.Description)}
		}
	}
	if env.Target.Resolved() {
		if other, ok := ctx.World.Character(env.Target.UID); ok {
			knowledge.RememberCharacter(ctx.World, ch, other, knowledge.ReasonSearch)
			return Result{Text: fmt.Sprintf("%s examines %s. %s", ch.Name, other.Name, other.Description)}
		}
	}
	if area, ok := ctx.World.Area(ch.CurrentArea); ok {
		return Result{Text: area.Description}
	}
	return Result{}
}
