package execute

import (
	"fmt"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/knowledge"
	"github.com/outbreakrpg/engine/pkg/world"
)

func execMove(ctx *Context, actor world.UID, env action.Envelope) Result {
	ch, ok := ctx.World.Character(actor)
	if !ok {
		return Result{Text: ""}
	}
	start := ch.CurrentArea
	dest := env.Location.UID

	followers := ctx.World.PartyMembersInArea(actor, start)
	var cascades []CascadeStep
	for _, followerUID := range followers {
		cascades = append(cascades, CascadeStep{
			Actor: followerUID,
			Env: action.Envelope{
				Actor:    followerUID,
				Kind:     action.KindMove,
				Location: action.Token{Raw: env.Location.Raw, UID: dest},
			},
		})
	}

	path, ok := ctx.World.BFSPath(start, dest, func(from, to world.UID) bool {
		return ctx.Events.ValidateMovement(from, to) != ""
	})
	if !ok {
		return Result{Text: fmt.Sprintf("%s can't find a way through.", ch.Name), Cascades: cascades}
	}

	var text string
	for i := 1; i < len(path); i++ {
		from, to := path[i-1], path[i]
		if err := ctx.World.MoveCharacterToArea(actor, to); err != nil {
			break
		}
		fromArea, _ := ctx.World.Area(from)
		toArea, _ := ctx.World.Area(to)
		if text != "" {
			text += " "
		}
		text += fmt.Sprintf("%s moves from %s to %s.", ch.Name, fromArea.Name, toArea.Name)

		knowledge.RememberArea(ctx.World, ch, toArea, knowledge.ReasonPresence, false)
		for _, residentUID := range toArea.Residents {
			if residentUID == actor {
				continue
			}
			if resident, ok := ctx.World.Character(residentUID); ok {
				knowledge.RememberCharacter(ctx.World, ch, resident, knowledge.ReasonCoPresent)
			}
		}
		ctx.Events.CheckForEventTriggersAfterAction(ctx.World, actor)

		if i == len(path)-1 && ch.Controllable && toArea.Description != "" {
			text += " " + toArea.Description
		}
	}
	return Result{Text: text, Cascades: cascades}
}
