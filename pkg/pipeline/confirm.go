package pipeline

import (
	"context"
	"strings"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/collab"
	"github.com/outbreakrpg/engine/pkg/event"
	"github.com/outbreakrpg/engine/pkg/knowledge"
	"github.com/outbreakrpg/engine/pkg/undo"
	"github.com/outbreakrpg/engine/pkg/validate"
	"github.com/outbreakrpg/engine/pkg/world"
)

var affirmatives = map[string]struct{}{
	"yes": {}, "y": {}, "yeah": {}, "yep": {}, "sure": {}, "ok": {}, "okay": {}, "confirm": {},
}

var negatives = map[string]struct{}{
	"no": {}, "n": {}, "nah": {}, "cancel": {}, "stop": {}, "never mind": {}, "nevermind": {},
}

func isAffirmative(text string) bool {
	_, ok := affirmatives[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

func isNegative(text string) bool {
	_, ok := negatives[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

// beginUndo asks the Undo Selector to pick a snapshot and stores the choice
// pending the player's yes/no confirmation (§4.8 step 5's undo branch).
func (p *Pipeline) beginUndo(ctx context.Context, s *GameSession, rawInput string) TurnResult {
	k, err := p.UndoSelector.SelectUndo(ctx, rawInput, snapshotsOf(s.Undo))
	if err != nil {
		return TurnResult{Narration: "I couldn't figure out which moment to undo to.", Outcome: OutcomeContinue}
	}
	if k <= 0 {
		return TurnResult{Narration: "Okay, never mind.", Outcome: OutcomeContinue}
	}
	if k > s.Undo.Len() {
		k = s.Undo.Len()
	}
	s.pending = pendingUndo
	s.pendingUndo = pendingUndoState{Index: k}
	return TurnResult{Narration: "Do I understand correctly that you want to undo to that point? Write yes to continue, anything else to cancel.", Outcome: OutcomeContinue}
}

// resumeUndoConfirmation implements §4.8 step 2.
func (p *Pipeline) resumeUndoConfirmation(s *GameSession, player *world.Character, rawInput string) TurnResult {
	k := s.pendingUndo.Index
	s.clearPending()

	if !isAffirmative(rawInput) {
		return TurnResult{Narration: "Okay, never mind.", Outcome: OutcomeContinue}
	}

	snap, ok := s.Undo.At(k)
	if !ok {
		return TurnResult{Narration: "That moment no longer exists; nothing changed.", Outcome: OutcomeContinue}
	}
	restored, err := undo.Apply(snap)
	if err != nil {
		return TurnResult{Narration: "I couldn't restore that moment; nothing changed.", Outcome: OutcomeContinue}
	}
	*s.World = *restored
	s.Undo.TruncateTo(k)
	if refreshedPlayer, ok := s.World.Character(s.PlayerUID); ok {
		refreshKnowledgeAfterUndo(s.World, refreshedPlayer)
	}
	return TurnResult{Narration: "Done. The world rewinds to that point.", Outcome: OutcomeContinue}
}

// resumeRiskyConfirmation implements §4.8 step 4.
func (p *Pipeline) resumeRiskyConfirmation(ctx context.Context, s *GameSession, player *world.Character, rawInput string) TurnResult {
	envs := s.pendingRisky.Envs
	originalInput := s.pendingRisky.OriginalInput
	s.clearPending()

	if !isAffirmative(rawInput) {
		return TurnResult{Narration: "Okay, never mind.", Outcome: OutcomeContinue}
	}
	return p.validateExecuteAndNarrate(ctx, s, player, envs, originalInput)
}

// resumeCorrection implements §7 item 2's correction phase: the original
// input is merged with the player's supplied detail by re-parsing their
// concatenation, since the Parser is the only component that understands
// natural-language slot filling. For the literal parser-contract format
// (§4.1) a comma join folds the patch's fields into the same block; an
// LLM-backed Parser is free to do its own prose-level merging instead since
// it receives both halves regardless of how they are joined.
func (p *Pipeline) resumeCorrection(ctx context.Context, s *GameSession, player *world.Character, rawInput string) TurnResult {
	pending := s.pendingCorrection
	s.clearPending()

	merged := strings.TrimRight(pending.OriginalInput, ",") + "," + rawInput
	envs, err := p.Parser.ParseIntent(ctx, merged, buildWorldView(s.World, player))
	if err != nil || len(envs) == 0 {
		return TurnResult{Narration: "I still don't have enough to go on: " + pending.BaseError, Outcome: OutcomeContinue}
	}
	for i := range envs {
		if envs[i].Actor == "" {
			envs[i].Actor = s.PlayerUID
		}
		action.ResolveEnvelope(s.World, player, &envs[i])
	}

	// A second failure surfaces a conversation line rather than re-entering
	// correction mode (§7 item 2); validateExecuteAndNarrate would otherwise
	// loop back into correction, so check here first.
	if reason := validate.ValidateSequence(s.World, s.Events, s.PlayerUID, envs); reason != "" {
		reply, rerr := p.Conversation.Reply(ctx, reason, collab.LabelImpossible, map[string]string{"purpose": "correction-failed"})
		if rerr != nil || strings.TrimSpace(reply) == "" {
			reply = "That still doesn't work: " + reason
		}
		return TurnResult{Narration: reply, Outcome: OutcomeContinue}
	}

	return p.validateExecuteAndNarrate(ctx, s, player, envs, merged)
}

func snapshotsOf(stack *undo.Stack) []undo.Snapshot {
	out := make([]undo.Snapshot, 0, stack.Len())
	for i := 1; i <= stack.Len(); i++ {
		snap, ok := stack.At(i)
		if ok {
			out = append(out, snap)
		}
	}
	return out
}

// refreshKnowledgeAfterUndo rebuilds the player's own knowledge after an
// undo apply (§4.8 step 2); NPC knowledge entries may keep the generic
// shape undo.Apply's doc comment describes until next queried (pkg/undo's
// accepted approximation).
func refreshKnowledgeAfterUndo(w *world.World, player *world.Character) {
	knowledge.RefreshKnownState(w, player)
}

// isRisky reports whether env matches one of §4.8 step 7's risky patterns:
// harm toward a friendly character or self, a no-op move to the actor's own
// area, search/steal against a friendly living NPC, or do_nothing. Hostile
// targets bypass the harm/search/steal checks. ask_action is evaluated
// recursively against the asked character and the nested requested action.
func isRisky(w *world.World, actorUID world.UID, env action.Envelope) bool {
	switch env.Kind {
	case action.KindDoNothing:
		return true
	case action.KindMove:
		actor, ok := w.Character(actorUID)
		return ok && env.Location.Resolved() && env.Location.UID == actor.CurrentArea
	case action.KindHarm:
		if env.Target.UID == actorUID {
			return true
		}
		return isFriendlyAlive(w, actorUID, env.Target.UID)
	case action.KindSearch, action.KindSteal:
		return isFriendlyAlive(w, actorUID, env.Target.UID)
	case action.KindAskAction:
		if !env.Target.Resolved() {
			return false
		}
		nested := action.Envelope{Kind: env.RequestedAction, Target: env.IndirectTarget}
		return isRisky(w, env.Target.UID, nested)
	default:
		return false
	}
}

func isFriendlyAlive(w *world.World, actorUID, targetUID world.UID) bool {
	target, ok := w.Character(targetUID)
	if !ok || !target.Alive {
		return false
	}
	return !event.IsHostile(w, targetUID, actorUID)
}

// riskyTargetName and riskyVerbPhrase build the confirmation prompt's
// action description, e.g. "harm Kenny" or "do nothing".
func riskyTargetName(w *world.World, env action.Envelope) string {
	if env.Target.Resolved() {
		if ch, ok := w.Character(env.Target.UID); ok {
			return ch.Name
		}
	}
	return env.Target.Raw
}

func riskyVerbPhrase(env action.Envelope, target string) string {
	switch env.Kind {
	case action.KindHarm:
		return "harm " + target
	case action.KindMove:
		return "stay right where you are"
	case action.KindSearch:
		return "search " + target
	case action.KindSteal:
		return "steal from " + target
	case action.KindDoNothing:
		return "do nothing"
	case action.KindAskAction:
		return "ask " + target + " to " + string(env.RequestedAction)
	default:
		return string(env.Kind)
	}
}
