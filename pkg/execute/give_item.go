package execute

import (
	"fmt"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/world"
)

func tryAutoEquip(ctx *Context, charUID, itemUID world.UID) {
	ch, ok := ctx.World.Character(charUID)
	if !ok {
		return
	}
	it, ok := ctx.World.Item(itemUID)
	if !ok {
		return
	}
	slot := world.SlotExtra
	if it.Damage > 0 {
		if _, occupied := ch.Equipment[world.SlotRightHand]; !occupied {
			slot = world.SlotRightHand
		} else if _, occupied := ch.Equipment[world.SlotLeftHand]; !occupied {
			slot = world.SlotLeftHand
		} else {
			return
		}
	} else if _, occupied := ch.Equipment[world.SlotExtra]; occupied {
		return
	}
	_ = ctx.World.EquipItem(charUID, itemUID, slot)
}

func execGiveItem(ctx *Context, actor world.UID, env action.Envelope) Result {
	giver, ok := ctx.World.Character(actor)
	if !ok {
		return Result{}
	}
	recipient, ok := ctx.World.Character(env.Target.UID)
	if !ok {
		return Result{}
	}
	it, ok := ctx.World.Item(env.Item.UID)
	if !ok {
		return Result{}
	}

	friendship := recipient.FriendshipWith(giver.UID)
	switch {
	case friendship >= 3:
		_ = ctx.World.GiveItemToCharacter(it.UID, recipient.UID)
		recipient.UpdateFriendshipWith(giver.UID, 1)
		tryAutoEquip(ctx, recipient.UID, it.UID)
		return Result{Text: fmt.Sprintf("%s gives %s to %s.", giver.Name, it.Name, recipient.Name)}
	case recipient.Health <= 40:
		_ = ctx.World.GiveItemToCharacter(it.UID, recipient.UID)
		tryAutoEquip(ctx, recipient.UID, it.UID)
		return Result{Text: fmt.Sprintf("%s reluctantly accepts %s from %s.", recipient.Name, it.Name, giver.Name)}
	default:
		return Result{Text: fmt.Sprintf("%s refuses to accept %s.", recipient.Name, it.Name)}
	}
}
