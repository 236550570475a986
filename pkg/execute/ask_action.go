package execute

import (
	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/world"
)

// execAskAction executes the requested_action with the asked character as
// the effective actor, defaulting an unresolved receiver of talk/give_item
// to the asker and an unresolved harm victim to the asker, per §4.4.
func execAskAction(ctx *Context, actor world.UID, env action.Envelope) Result {
	asked := env.Target.UID

	nested := action.Envelope{
		Actor:          asked,
		Kind:           env.RequestedAction,
		Target:         env.IndirectTarget,
		IndirectTarget: action.Token{},
		Item:           env.Item,
		Location:       env.Location,
		Topic:          env.Topic,
	}

	switch env.RequestedAction {
	case action.KindTalk, action.KindGiveItem:
		if !nested.Target.Resolved() {
			nested.Target = action.Token{UID: actor}
		}
	case action.KindHarm:
		if !nested.Target.Resolved() {
			nested.Target = action.Token{UID: actor}
		}
	}

	return Execute(ctx, asked, nested)
}
