package execute

import (
	"fmt"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/knowledge"
	"github.com/outbreakrpg/engine/pkg/world"
)

const joinPartyFriendshipThreshold = 5
const joinPartyHealthFloor = 30

func execJoinParty(ctx *Context, actor world.UID, env action.Envelope) Result {
	a, ok := ctx.World.Character(actor)
	if !ok {
		return Result{}
	}
	b, ok := ctx.World.Character(env.Target.UID)
	if !ok {
		return Result{}
	}

	if a.FriendshipWith(b.UID) < joinPartyFriendshipThreshold || b.FriendshipWith(a.UID) < joinPartyFriendshipThreshold {
		return Result{Text: fmt.Sprintf("%s is not ready to join %s's party.", b.Name, a.Name)}
	}
	if a.Health <= joinPartyHealthFloor || b.Health <= joinPartyHealthFloor {
		return Result{Text: fmt.Sprintf("%s is too hurt to join a party right now.", b.Name)}
	}

	var membersA, membersB []world.UID
	for m := range a.Party {
		membersA = append(membersA, m)
	}
	for m := range b.Party {
		membersB = append(membersB, m)
	}

	if err := ctx.World.JoinParty(a.UID, b.UID); err != nil {
		return Result{Text: fmt.Sprintf("%s can't join %s's party.", b.Name, a.Name)}
	}

	introduce := func(x, y *world.Character) {
		knowledge.RememberCharacter(ctx.World, x, y, knowledge.ReasonParty)
		for _, itemUID := range y.Inventory {
			if it, ok := ctx.World.Item(itemUID); ok {
				knowledge.RememberItem(ctx.World, x, it, knowledge.ReasonParty)
			}
		}
	}
	introduce(a, b)
	introduce(b, a)
	for _, memberUID := range membersA {
		if member, ok := ctx.World.Character(memberUID); ok {
			introduce(member, b)
			introduce(b, member)
		}
	}
	for _, memberUID := range membersB {
		if member, ok := ctx.World.Character(memberUID); ok {
			introduce(member, a)
			introduce(a, member)
		}
	}

	return Result{Text: fmt.Sprintf("%s joins %s's party.", b.Name, a.Name)}
}

func execQuitParty(ctx *Context, actor world.UID, env action.Envelope) Result {
	a, ok := ctx.World.Character(actor)
	if !ok {
		return Result{}
	}
	b, ok := ctx.World.Character(env.Target.UID)
	if !ok {
		return Result{}
	}
	_ = ctx.World.QuitParty(a.UID, b.UID)
	return Result{Text: fmt.Sprintf("%s leaves %s's party.", b.Name, a.Name)}
}
