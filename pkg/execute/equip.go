package execute

import (
	"fmt"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/world"
)

func execEquipItem(ctx *Context, actor world.UID, env action.Envelope) Result {
	ch, ok := ctx.World.Character(actor)
	if !ok {
		return Result{}
	}
	it, ok := ctx.World.Item(env.Item.UID)
	if !ok {
		return Result{}
	}
	if err := ctx.World.EquipItem(actor, it.UID, ""); err != nil {
		return Result{Text: fmt.Sprintf("%s can't equip %s.", ch.Name, it.Name)}
	}
	return Result{Text: fmt.Sprintf("%s equips %s.", ch.Name, it.Name)}
}

func execUnequipItem(ctx *Context, actor world.UID, env action.Envelope) Result {
	ch, ok := ctx.World.Character(actor)
	if !ok {
		return Result{}
	}
	it, ok := ctx.World.Item(env.Item.UID)
	if !ok {
		return Result{}
	}
	if err := ctx.World.UnequipItem(actor, it.UID); err != nil {
		return Result{Text: fmt.Sprintf("%s can't unequip %s.", ch.Name, it.Name)}
	}
	return Result{Text: fmt.Sprintf("%s unequips %s.", ch.Name, it.Name)}
}
