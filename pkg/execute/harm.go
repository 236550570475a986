package execute

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/world"
)

const defaultWeaponDamage = 5

func weaponDamage(w *world.World, attacker *world.Character) int {
	if attacker.Weapon == "" {
		return defaultWeaponDamage
	}
	it, ok := w.Item(attacker.Weapon)
	if !ok {
		return defaultWeaponDamage
	}
	return it.Damage
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func execHarm(ctx *Context, actor world.UID, env action.Envelope) Result {
	attacker, ok := ctx.World.Character(actor)
	if !ok {
		return Result{}
	}
	victim, ok := ctx.World.Character(env.Target.UID)
	if !ok {
		return Result{}
	}

	base := weaponDamage(ctx.World, attacker)
	damage := int(math.Round(float64(base) * (1 + float64(attacker.Stats.Strength+attacker.Stats.Skill)/20)))
	if damage < 1 {
		damage = 1
	}

	victim.Health -= damage
	killed := false
	if victim.Health <= 0 {
		victim.Health = 0
		ctx.World.Kill(victim.UID)
		killed = true
	}

	text := fmt.Sprintf("%s hits %s for %d damage.", attacker.Name, victim.Name, damage)
	if killed {
		text += fmt.Sprintf(" %s falls dead.", victim.Name)
		if area, ok := ctx.World.Area(victim.CurrentArea); ok {
			area.Description += fmt.Sprintf(" %s's body lies here.", victim.Name)
		}
	}

	if victim.FriendshipWith(attacker.UID) > 0 {
		victim.SetFriendship(attacker.UID, 0)
	}

	area, _ := ctx.World.Area(attacker.CurrentArea)
	if area != nil {
		severity := clamp01(float64(damage) / 100)
		severityBase := 1 + int(math.Round(4*severity))
		killBonus := 0
		if killed {
			killBonus = 3
		}
		for _, residentUID := range area.Residents {
			if residentUID == actor || residentUID == victim.UID {
				continue
			}
			witness, ok := ctx.World.Character(residentUID)
			if !ok || !witness.Alive {
				continue
			}
			affinity := clamp01(float64(witness.FriendshipWith(victim.UID)) / 10)
			penalty := int(math.Round(float64(severityBase)*affinity)) + int(math.Round(float64(killBonus)*affinity))
			if witness.FriendshipWith(victim.UID) <= 3 {
				penalty -= 2
			}
			if penalty < 0 {
				penalty = 0
			}
			witness.UpdateFriendshipWith(attacker.UID, -penalty)
		}
	}

	ctx.Events.EnsureFight(ctx.World, attacker.CurrentArea, actor, victim.UID)

	var cascades []CascadeStep
	if area != nil {
		defenders := ctx.World.PartyMembersInArea(victim.UID, victim.CurrentArea)
		if len(defenders) == 0 {
			defenders = []world.UID{victim.UID}
		}
		for _, allyUID := range ctx.World.PartyMembersInArea(actor, attacker.CurrentArea) {
			ally, ok := ctx.World.Character(allyUID)
			if !ok || !ally.Alive {
				continue
			}
			defender := defenders[rand.Intn(len(defenders))]
			cascades = append(cascades, CascadeStep{
				Actor: allyUID,
				Env: action.Envelope{
					Actor:  allyUID,
					Kind:   action.KindHarm,
					Target: action.Token{UID: defender},
				},
			})
		}
	}

	return Result{Text: text, Cascades: cascades}
}
