// Package execute carries out validated actions against live world state,
// producing the narration text the storytelling layer renders.
package execute

import (
	"fmt"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/event"
	"github.com/outbreakrpg/engine/pkg/world"
)

// Context bundles the live dependencies every executor needs.
type Context struct {
	World  *world.World
	Events *event.Manager
}

// CascadeStep is a follow-on action queued mid-execution for another actor
// to run later in the same round (party-move followers, harm group
// cascades). The turn handler (§4.7) is responsible for stamping the
// appropriate origin tag and enqueueing it.
type CascadeStep struct {
	Actor world.UID
	Env   action.Envelope
}

// Result is what one executed action produces: narration text plus any
// steps it queues for other actors this round.
type Result struct {
	Text     string
	Cascades []CascadeStep
}

// Execute dispatches env to its per-kind handler and runs it against ctx.
// The envelope's Kind is assumed already validated (§4.3). A panic inside a
// handler is recovered and reported as "(Internal execution error: …)"
// narration, so the other actions of the sequence still run (§7.3).
func Execute(ctx *Context, actor world.UID, env action.Envelope) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Text: fmt.Sprintf("(Internal execution error: %v)", r)}
		}
	}()
	switch env.Kind {
	case action.KindMove:
		return execMove(ctx, actor, env)
	case action.KindHarm:
		return execHarm(ctx, actor, env)
	case action.KindGiveItem:
		return execGiveItem(ctx, actor, env)
	case action.KindSteal:
		return execSteal(ctx, actor, env)
	case action.KindSearch:
		return execSearch(ctx, actor, env)
	case action.KindUseItem:
		return execUseItem(ctx, actor, env)
	case action.KindEquipItem:
		return execEquipItem(ctx, actor, env)
	case action.KindUnequipItem:
		return execUnequipItem(ctx, actor, env)
	case action.KindJoinParty:
		return execJoinParty(ctx, actor, env)
	case action.KindQuitParty:
		return execQuitParty(ctx, actor, env)
	case action.KindTalk, action.KindInform:
		return execTalk(ctx, actor, env)
	case action.KindAskAction:
		return execAskAction(ctx, actor, env)
	case action.KindStopEvent:
		return execStopEvent(ctx, actor, env)
	case action.KindPickUp:
		return execPickUp(ctx, actor, env)
	case action.KindDropItem:
		return execDropItem(ctx, actor, env)
	case action.KindExamine:
		return execExamine(ctx, actor, env)
	case action.KindDoNothing:
		return Result{Text: ""}
	default:
		return Result{Text: fmt.Sprintf("nothing happens (unknown action %q)", env.Kind)}
	}
}
