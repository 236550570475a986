package pipeline

import (
	"context"
	"strings"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/collab"
	"github.com/outbreakrpg/engine/pkg/knowledge"
	"github.com/outbreakrpg/engine/pkg/narrate"
	"github.com/outbreakrpg/engine/pkg/turn"
	"github.com/outbreakrpg/engine/pkg/undo"
	"github.com/outbreakrpg/engine/pkg/validate"
	"github.com/outbreakrpg/engine/pkg/world"
)

// Outcome is the end-of-turn game state computed at step 13 of §4.8.
type Outcome string

const (
	OutcomeContinue Outcome = "continue"
	OutcomeWin      Outcome = "win"
	OutcomeLoss     Outcome = "loss"
)

// TurnResult is everything RunTurn hands back to its caller.
type TurnResult struct {
	Narration string
	Outcome   Outcome
}

// Pipeline bundles the collaborators (§6.1) a GameSession's turns are run
// through. Any LLM-backed or stub implementation of each interface works.
type Pipeline struct {
	Precheck     collab.Precheck
	Parser       collab.IntentParser
	UndoSelector collab.UndoSelector
	Conversation collab.Conversation
	Storytelling collab.Storytelling
	Validator    collab.OutputValidator
}

// NewStubPipeline wires every collaborator to its deterministic stub
// implementation, usable without any network dependency (console client,
// tests).
func NewStubPipeline() *Pipeline {
	return &Pipeline{
		Precheck:     collab.NewStubPrecheck(),
		Parser:       collab.NewStubIntentParser(),
		UndoSelector: collab.NewStubUndoSelector(),
		Conversation: collab.NewStubConversation(),
		Storytelling: collab.NewStubStorytelling(),
		Validator:    collab.NewStubOutputValidator(),
	}
}

// RunTurn drives one raw player input through the full pipeline (§4.8).
func (p *Pipeline) RunTurn(ctx context.Context, s *GameSession, rawInput string) TurnResult {
	player, ok := s.World.Character(s.PlayerUID)
	if !ok {
		return TurnResult{Narration: "(Internal execution error: unknown player character.)", Outcome: OutcomeContinue}
	}

	// Step 1: start-of-turn knowledge refresh; seed the undo stack.
	knowledge.RefreshKnownState(s.World, player)
	if s.Undo.Len() == 0 {
		if snap, err := undo.Take(s.World, "(start)", string(player.CurrentArea)); err == nil {
			s.Undo.Push(snap)
		}
	}

	// Step 2: pending undo confirmation.
	if s.pending == pendingUndo {
		return p.resumeUndoConfirmation(s, player, rawInput)
	}

	// Step 3: pending correction reply.
	if s.pending == pendingCorrection {
		return p.resumeCorrection(ctx, s, player, rawInput)
	}

	// Step 4: pending risky-action confirmation.
	if s.pending == pendingRisky {
		return p.resumeRiskyConfirmation(ctx, s, player, rawInput)
	}

	// Step 5: precheck.
	label, err := p.Precheck.Precheck(ctx, rawInput)
	if err != nil {
		label = collab.LabelClear // fail-open (§5).
	}

	switch label {
	case collab.LabelUndo:
		return p.beginUndo(ctx, s, rawInput)
	case collab.LabelQuestion, collab.LabelLong, collab.LabelInsufficient, collab.LabelImpossible:
		reply, err := p.Conversation.Reply(ctx, rawInput, label, nil)
		if err == nil && strings.TrimSpace(reply) != "" {
			return TurnResult{Narration: reply, Outcome: OutcomeContinue}
		}
		// Falls through to parsing on empty/failed conversational reply.
	}

	return p.parseValidateExecute(ctx, s, player, rawInput, rawInput)
}

// parseValidateExecute covers §4.8 steps 6-13: parse, confirmation gate,
// validate, execute, refresh, snapshot, narrate, compute outcome.
func (p *Pipeline) parseValidateExecute(ctx context.Context, s *GameSession, player *world.Character, rawInput, narrationInput string) TurnResult {
	envs, err := p.Parser.ParseIntent(ctx, rawInput, buildWorldView(s.World, player))
	if err != nil || len(envs) == 0 {
		envs = []action.Envelope{{Kind: action.KindDoNothing}} // fail-open (§5).
	}
	for i := range envs {
		if envs[i].Actor == "" {
			envs[i].Actor = s.PlayerUID
		}
		action.ResolveEnvelope(s.World, player, &envs[i])
	}

	// Step 7: confirmation gate on the first action.
	if isRisky(s.World, s.PlayerUID, envs[0]) {
		s.pending = pendingRisky
		s.pendingRisky = pendingRiskyState{Envs: envs, OriginalInput: narrationInput}
		target := riskyTargetName(s.World, envs[0])
		prompt := "Do I understand correctly that you want to " + riskyVerbPhrase(envs[0], target) +
			"? Write yes to continue, anything else to cancel."
		return TurnResult{Narration: prompt, Outcome: computeOutcome(s.World, player)}
	}

	return p.validateExecuteAndNarrate(ctx, s, player, envs, narrationInput)
}

// validateExecuteAndNarrate covers §4.8 steps 8-13 once a confirmed or
// non-risky action list is in hand.
func (p *Pipeline) validateExecuteAndNarrate(ctx context.Context, s *GameSession, player *world.Character, envs []action.Envelope, narrationInput string) TurnResult {
	if reason := validate.ValidateSequence(s.World, s.Events, s.PlayerUID, envs); reason != "" {
		if len(envs) == 1 {
			s.pending = pendingCorrection
			s.pendingCorrection = pendingCorrectionState{
				Envs:          envs,
				FailedIndex:   0,
				OriginalInput: narrationInput,
				BaseError:     reason,
			}
			return TurnResult{Narration: reason, Outcome: OutcomeContinue}
		}
		reply, err := p.Conversation.Reply(ctx, reason, collab.LabelImpossible, map[string]string{"purpose": "retry"})
		if err != nil || strings.TrimSpace(reply) == "" {
			reply = "That doesn't quite work. " + reason
		}
		return TurnResult{Narration: reply, Outcome: OutcomeContinue}
	}

	worldResult := p.executeAll(s, envs)

	// Step 10: end-of-turn knowledge refresh.
	knowledge.RefreshKnownState(s.World, player)

	// Step 11: push a new snapshot unless unchanged.
	if snap, err := undo.Take(s.World, narrationInput, string(player.CurrentArea)); err == nil {
		s.Undo.PushIfChanged(snap)
	}

	narration := p.narrateResult(ctx, s, narrationInput, envs, worldResult)

	return TurnResult{Narration: narration, Outcome: computeOutcome(s.World, player)}
}

// executeAll drives validated envs through the turn handler, which owns
// speed ordering, engagement, and mid-round cascades (§4.7).
func (p *Pipeline) executeAll(s *GameSession, envs []action.Envelope) string {
	h := turn.NewHandler(s.World, s.Events)
	for _, env := range envs {
		h.QueueStep(s.PlayerUID, env, turn.OriginPlayer)
	}
	var parts []string
	for _, line := range h.RunOneRound() {
		if line.Text != "" {
			parts = append(parts, line.Text)
		}
	}
	return strings.Join(parts, " ")
}

// narrateResult runs the Storytelling collaborator (retrying against
// OutputValidator up to 3 times per §7 item 6), scrubs the player's true
// name, and appends a periodic suggestion (§6.1, §9).
func (p *Pipeline) narrateResult(ctx context.Context, s *GameSession, playerInput string, envs []action.Envelope, worldResult string) string {
	recognized := string(envs[0].Kind)
	var narration string
	for attempt := 0; attempt < 3; attempt++ {
		candidate, err := p.Storytelling.Narrate(ctx, playerInput, recognized, worldResult)
		if err != nil {
			continue
		}
		ok, verr := p.Validator.Validate(ctx, collab.ModeStory, candidate)
		if verr == nil && ok {
			narration = candidate
			break
		}
	}
	if narration == "" {
		narration = worldResult // fall back to the raw world response text (§7 item 6).
	}

	if player, ok := s.World.Character(s.PlayerUID); ok {
		narration = narrate.ScrubName(narration, player.Name)
	}

	if s.Suggestions.Advance() {
		narration = narrate.AppendSuggestion(ctx, p.Conversation, narration, playerInput, worldResult)
	}
	return narration
}

// computeOutcome implements §6.3's exit conditions.
func computeOutcome(w *world.World, player *world.Character) Outcome {
	return ComputeOutcome(w, player)
}

// ComputeOutcome is the exported form of computeOutcome (§6.3), usable by
// callers that need a session's current win/loss/continue state without
// running a turn.
func ComputeOutcome(w *world.World, player *world.Character) Outcome {
	if !player.Alive || player.Health <= 0 {
		return OutcomeLoss
	}
	if area, ok := w.Area(player.CurrentArea); ok && area.Exit {
		return OutcomeWin
	}
	if w.WinNPC != "" {
		if npc, ok := w.Character(w.WinNPC); ok && npc.Health >= w.WinHealthThreshold {
			return OutcomeWin
		}
	}
	return OutcomeContinue
}

// buildWorldView assembles the read-only snapshot the Intent Parser grounds
// its output in: the player's current area, its residents and floor items,
// plus everything else the player already knows about (§6.1).
func buildWorldView(w *world.World, player *world.Character) collab.WorldView {
	return BuildWorldView(w, player)
}

// BuildWorldView is the exported form of buildWorldView, usable by callers
// outside the pipeline (internal/handlers, cmd/console) that need to show a
// player's own view of the world without running a turn.
func BuildWorldView(w *world.World, player *world.Character) collab.WorldView {
	view := collab.WorldView{PlayerUID: string(player.UID), PlayerArea: string(player.CurrentArea)}

	seenAreas := map[world.UID]struct{}{}
	addArea := func(uid world.UID) {
		if _, done := seenAreas[uid]; done {
			return
		}
		seenAreas[uid] = struct{}{}
		if a, ok := w.Area(uid); ok {
			view.Areas = append(view.Areas, collab.EntityRef{UID: string(a.UID), Name: a.Name})
		}
	}
	addArea(player.CurrentArea)
	for areaUID := range player.KnownAreas {
		addArea(areaUID)
	}

	seenChars := map[world.UID]struct{}{}
	addChar := func(uid world.UID) {
		if _, done := seenChars[uid]; done {
			return
		}
		seenChars[uid] = struct{}{}
		if c, ok := w.Character(uid); ok {
			view.Characters = append(view.Characters, collab.EntityRef{UID: string(c.UID), Name: c.Name})
		}
	}
	if area, ok := w.Area(player.CurrentArea); ok {
		for _, uid := range area.Residents {
			addChar(uid)
		}
	}
	for uid := range player.KnownPeople {
		addChar(uid)
	}

	seenItems := map[world.UID]struct{}{}
	addItem := func(uid world.UID) {
		if _, done := seenItems[uid]; done {
			return
		}
		seenItems[uid] = struct{}{}
		if it, ok := w.Item(uid); ok {
			view.Items = append(view.Items, collab.EntityRef{UID: string(it.UID), Name: it.Name})
		}
	}
	for _, uid := range player.Inventory {
		addItem(uid)
	}
	if area, ok := w.Area(player.CurrentArea); ok {
		for _, uid := range area.FloorItems {
			addItem(uid)
		}
	}
	for uid := range player.KnownItems {
		addItem(uid)
	}

	return view
}
