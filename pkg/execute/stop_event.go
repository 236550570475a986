package execute

import (
	"fmt"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/world"
)

func execStopEvent(ctx *Context, actor world.UID, env action.Envelope) Result {
	ch, ok := ctx.World.Character(actor)
	if !ok {
		return Result{}
	}
	events := ctx.Events.EventsInvolving(actor)
	if len(events) == 0 {
		return Result{Text: fmt.Sprintf("%s has nothing to stop.", ch.Name)}
	}
	for _, e := range events {
		e.Resolve(ctx.World)
	}
	return Result{Text: fmt.Sprintf("%s puts a stop to %s.", ch.Name, events[0].Name())}
}
