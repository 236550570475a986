package execute

import (
	"fmt"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/world"
)

func execSteal(ctx *Context, actor world.UID, env action.Envelope) Result {
	thief, ok := ctx.World.Character(actor)
	if !ok {
		return Result{}
	}
	victim, ok := ctx.World.Character(env.Target.UID)
	if !ok {
		return Result{}
	}
	it, ok := ctx.World.Item(env.Item.UID)
	if !ok {
		return Result{}
	}

	_ = ctx.World.GiveItemToCharacter(it.UID, thief.UID)
	victim.UpdateFriendshipWith(thief.UID, -1)
	tryAutoEquip(ctx, thief.UID, it.UID)

	return Result{Text: fmt.Sprintf("%s steals %s from %s.", thief.Name, it.Name, victim.Name)}
}
