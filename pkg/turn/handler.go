// Package turn drives one round of queued actions: speed ordering,
// engagement/interruption rules, and mid-round cascade re-scanning (§4.7).
package turn

import (
	"fmt"
	"sort"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/event"
	"github.com/outbreakrpg/engine/pkg/execute"
	"github.com/outbreakrpg/engine/pkg/validate"
	"github.com/outbreakrpg/engine/pkg/world"
)

// Origin tags where a queued step came from.
type Origin string

const (
	OriginPlayer    Origin = "player"
	OriginGoodAI    Origin = "goodAI"
	OriginEvilAI    Origin = "evilAI"
	OriginGroupJoin Origin = "group-join"
	OriginGroupMove Origin = "group-move"
	// OriginGroupHarm tags a harm step a party member is cascaded into
	// against a random defender (§4.4's group-cascade rule); the spec's
	// worked origin list only names group-join/group-move for follower
	// moves, so this extends that set rather than overloading group-move
	// for an unrelated action kind.
	OriginGroupHarm Origin = "group-harm"
)

// Step is one actor's planned action for the current round.
type Step struct {
	Actor  world.UID
	Env    action.Envelope
	Origin Origin
}

// Handler queues at most one step per actor per round and drives the
// speed-ordered, engagement-aware round loop.
type Handler struct {
	world  *world.World
	events *event.Manager

	steps    map[world.UID]Step
	hasActed map[world.UID]bool
	engaged  map[world.UID]map[world.UID]struct{}
}

// NewHandler creates a Handler bound to the given world and event manager.
func NewHandler(w *world.World, em *event.Manager) *Handler {
	return &Handler{
		world:    w,
		events:   em,
		steps:    make(map[world.UID]Step),
		hasActed: make(map[world.UID]bool),
		engaged:  make(map[world.UID]map[world.UID]struct{}),
	}
}

// QueueStep overwrites actor's planned step for this round.
func (h *Handler) QueueStep(actor world.UID, env action.Envelope, origin Origin) {
	h.steps[actor] = Step{Actor: actor, Env: env, Origin: origin}
}

// QueueControllerActions batch-queues one step per actor from the mapping.
func (h *Handler) QueueControllerActions(mapping map[world.UID]action.Envelope, origin Origin) {
	for actor, env := range mapping {
		h.QueueStep(actor, env, origin)
	}
}

// Pending reports whether actor currently has a queued, not-yet-acted step.
func (h *Handler) Pending(actor world.UID) bool {
	_, ok := h.steps[actor]
	return ok && !h.hasActed[actor]
}

func (h *Handler) sortedActors() []world.UID {
	actors := make([]world.UID, 0, len(h.steps))
	for actor := range h.steps {
		actors = append(actors, actor)
	}
	sort.SliceStable(actors, func(i, j int) bool {
		ci, okI := h.world.Character(actors[i])
		cj, okJ := h.world.Character(actors[j])
		if !okI || !okJ {
			return false
		}
		if ci.Stats.Speed != cj.Stats.Speed {
			return ci.Stats.Speed > cj.Stats.Speed
		}
		return ci.Name < cj.Name
	})
	return actors
}

func partnersOf(env action.Envelope) []world.UID {
	var out []world.UID
	if env.Target.Resolved() {
		out = append(out, env.Target.UID)
	}
	if env.IndirectTarget.Resolved() {
		out = append(out, env.IndirectTarget.UID)
	}
	return out
}

func (h *Handler) isEngagedWith(a, b world.UID) bool {
	_, ok := h.engaged[a][b]
	return ok
}

func (h *Handler) markEngaged(a, b world.UID) {
	if h.engaged[a] == nil {
		h.engaged[a] = make(map[world.UID]struct{})
	}
	if h.engaged[b] == nil {
		h.engaged[b] = make(map[world.UID]struct{})
	}
	h.engaged[a][b] = struct{}{}
	h.engaged[b][a] = struct{}{}
}

// Line is one piece of narration produced during the round, tagged with
// the actor it came from so the pipeline/storytelling layer can attribute it.
type Line struct {
	Actor world.UID
	Text  string
}

// RunOneRound drives every queued step to completion (§4.7): actors act in
// descending speed order (stable tiebreak by name), engagement rules gate
// or interrupt steps, validated steps execute and may queue cascades that
// are re-scanned in the same pass. It returns the narration produced, in
// execution order, and clears all remaining plans before returning.
func (h *Handler) RunOneRound() []Line {
	h.hasActed = make(map[world.UID]bool)
	h.engaged = make(map[world.UID]map[world.UID]struct{})

	var lines []Line
	for {
		progress := false
		for _, actor := range h.sortedActors() {
			if h.hasActed[actor] {
				continue
			}
			step, ok := h.steps[actor]
			if !ok {
				continue
			}
			progress = true

			actorChar, ok := h.world.Character(actor)
			if !ok {
				h.consume(actor)
				continue
			}

			partners := partnersOf(step.Env)

			if len(h.engaged[actor]) > 0 {
				involved := false
				for _, p := range partners {
					if h.isEngagedWith(actor, p) {
						involved = true
						break
					}
				}
				if !involved {
					lines = append(lines, Line{Actor: actor, Text: fmt.Sprintf("%s is interrupted.", actorChar.Name)})
					h.consume(actor)
					continue
				}
			}

			blocked := false
			for _, p := range partners {
				if len(h.engaged[p]) == 0 {
					continue
				}
				if h.isEngagedWith(p, actor) {
					continue
				}
				if actorChar.InParty(p) {
					continue
				}
				blocked = true
				break
			}
			if blocked {
				lines = append(lines, Line{Actor: actor, Text: fmt.Sprintf("%s's action is blocked.", actorChar.Name)})
				h.consume(actor)
				continue
			}

			if reason := validate.ValidateSequence(h.world, h.events, actor, []action.Envelope{step.Env}); reason != "" {
				lines = append(lines, Line{Actor: actor, Text: reason})
				h.consume(actor)
				continue
			}

			res := execute.Execute(&execute.Context{World: h.world, Events: h.events}, actor, step.Env)
			text := res.Text
			if step.Origin == OriginGroupMove && step.Env.Kind == action.KindMove {
				if dest, ok := h.world.Area(step.Env.Location.UID); ok {
					text = fmt.Sprintf("%s follows to %s.", actorChar.Name, dest.Name)
				}
			}
			if text != "" {
				lines = append(lines, Line{Actor: actor, Text: text})
			}

			for _, p := range partners {
				h.markEngaged(actor, p)
			}
			h.events.CheckForEventTriggersAfterAction(h.world, actor)

			for _, cascade := range res.Cascades {
				origin := OriginGroupMove
				if cascade.Env.Kind == action.KindHarm {
					origin = OriginGroupHarm
				}
				if !h.hasActed[cascade.Actor] {
					h.QueueStep(cascade.Actor, cascade.Env, origin)
				}
			}

			h.consume(actor)
		}
		if !progress {
			break
		}
	}

	h.steps = make(map[world.UID]Step)
	return lines
}

func (h *Handler) consume(actor world.UID) {
	h.hasActed[actor] = true
	delete(h.steps, actor)
}
