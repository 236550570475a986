package execute

import (
	"fmt"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/world"
)

const healAmount = 30

func execUseItem(ctx *Context, actor world.UID, env action.Envelope) Result {
	user, ok := ctx.World.Character(actor)
	if !ok {
		return Result{}
	}
	it, ok := ctx.World.Item(env.Item.UID)
	if !ok {
		return Result{}
	}

	if resp := ctx.Events.HandleItemUse(ctx.World, actor, it.Name); resp != "" {
		return Result{Text: resp}
	}

	if it.HasAbility("Medicate") && env.Target.Resolved() {
		target, ok := ctx.World.Character(env.Target.UID)
		if ok && target.Alive {
			target.Health += healAmount
			if target.Health > 100 {
				target.Health = 100
			}
			return Result{Text: fmt.Sprintf("%s uses %s on %s, healing them to %d health.", user.Name, it.Name, target.Name, target.Health)}
		}
	}

	return Result{Text: fmt.Sprintf("%s uses %s.", user.Name, it.Name)}
}
