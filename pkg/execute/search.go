package execute

import (
	"fmt"
	"strings"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/knowledge"
	"github.com/outbreakrpg/engine/pkg/world"
)

func execSearch(ctx *Context, actor world.UID, env action.Envelope) Result {
	searcher, ok := ctx.World.Character(actor)
	if !ok {
		return Result{}
	}
	if env.Target.Resolved() {
		return searchPerson(ctx, searcher, env.Target.UID)
	}
	return searchArea(ctx, searcher, env.Location.UID)
}

func searchArea(ctx *Context, searcher *world.Character, areaUID world.UID) Result {
	area, ok := ctx.World.Area(areaUID)
	if !ok {
		return Result{}
	}
	adjacent := areaUID != searcher.CurrentArea

	var itemNames, peopleNames []string
	for _, itemUID := range area.FloorItems {
		it, ok := ctx.World.Item(itemUID)
		if !ok {
			continue
		}
		knowledge.RememberItem(ctx.World, searcher, it, knowledge.ReasonSearch)
		itemNames = append(itemNames, fmt.Sprintf("%s (damage %d, robustness %d)", it.Name, it.Damage, it.Robustness))
	}
	for _, charUID := range area.Residents {
		if charUID == searcher.UID {
			continue
		}
		if other, ok := ctx.World.Character(charUID); ok {
			peopleNames = append(peopleNames, other.Name)
		}
	}

	knowledge.RememberArea(ctx.World, searcher, area, knowledge.ReasonSearch, adjacent)
	if adjacent {
		for _, charUID := range area.Residents {
			if other, ok := ctx.World.Character(charUID); ok {
				knowledge.RememberCharacter(ctx.World, searcher, other, knowledge.ReasonPeek)
				searcher.Knowledge[other.UID].IsOutdated = true
			}
		}
	}

	text := fmt.Sprintf("%s searches %s.", searcher.Name, area.Name)
	if len(itemNames) > 0 {
		text += " Items: " + strings.Join(itemNames, ", ") + "."
	}
	if len(peopleNames) > 0 {
		text += " Others present: " + strings.Join(peopleNames, ", ") + "."
	}
	return Result{Text: text}
}

func searchPerson(ctx *Context, searcher *world.Character, targetUID world.UID) Result {
	target, ok := ctx.World.Character(targetUID)
	if !ok {
		return Result{}
	}
	knowledge.RememberCharacter(ctx.World, searcher, target, knowledge.ReasonSearch)

	var inventory []string
	for _, itemUID := range target.Inventory {
		it, ok := ctx.World.Item(itemUID)
		if !ok {
			continue
		}
		knowledge.RememberItem(ctx.World, searcher, it, knowledge.ReasonSearch)
		label := it.Name
		if it.Equipped() {
			label += " (equipped)"
		}
		inventory = append(inventory, label)
	}

	if target.Alive {
		target.UpdateFriendshipWith(searcher.UID, -1)
	}

	text := fmt.Sprintf("%s searches %s. Health: %d.", searcher.Name, target.Name, target.Health)
	if len(inventory) > 0 {
		text += " Carrying: " + strings.Join(inventory, ", ") + "."
	} else {
		text += " Carrying nothing."
	}
	return Result{Text: text}
}
