package event

import "github.com/outbreakrpg/engine/pkg/world"

// ConversationPhase names a turn-gated conversation's current stage.
type ConversationPhase string

const (
	PhaseNeedTopic          ConversationPhase = "need_topic"
	PhaseWaitingForResponse ConversationPhase = "waiting_for_player_response"
	PhaseNPCResponses       ConversationPhase = "npc_responses"
)

// ConversationEvent is turn-gated dialogue between a controllable character
// and one or more NPCs. Only a controllable participant may introduce a
// topic; each NPC responds at most once per round.
type ConversationEvent struct {
	uid          world.UID
	name         string
	description  string
	location     world.UID
	initiator    world.UID
	participants map[world.UID]struct{}
	topic        string
	phase        ConversationPhase
	active       bool

	respondedThisRound map[world.UID]struct{}
}

// NewConversationEvent starts a conversation anchored on initiator's location.
func NewConversationEvent(location, initiator world.UID, participants ...world.UID) *ConversationEvent {
	c := &ConversationEvent{
		uid:                world.NewEventUID(),
		name:               "Conversation",
		description:        "A conversation is underway.",
		location:           location,
		initiator:          initiator,
		participants:       make(map[world.UID]struct{}),
		phase:              PhaseNeedTopic,
		active:             true,
		respondedThisRound: make(map[world.UID]struct{}),
	}
	c.participants[initiator] = struct{}{}
	for _, p := range participants {
		c.participants[p] = struct{}{}
	}
	return c
}

func (c *ConversationEvent) UID() world.UID         { return c.uid }
func (c *ConversationEvent) Name() string           { return c.name }
func (c *ConversationEvent) Description() string    { return c.description }
func (c *ConversationEvent) Location() world.UID    { return c.location }
func (c *ConversationEvent) IsActive() bool         { return c.active }
func (c *ConversationEvent) IsActiveAllowed(string) bool { return true }

// Phase returns the conversation's current stage.
func (c *ConversationEvent) Phase() ConversationPhase { return c.phase }

// Topic returns the current topic of conversation, if one has been introduced.
func (c *ConversationEvent) Topic() string { return c.topic }

// Participants returns every character uid drawn into this conversation.
func (c *ConversationEvent) Participants() []world.UID {
	out := make([]world.UID, 0, len(c.participants))
	for p := range c.participants {
		out = append(out, p)
	}
	return out
}

// IntroduceTopic sets the conversation's topic. Only a controllable
// character may do this; callers enforce that via world.Character.Controllable
// before calling.
func (c *ConversationEvent) IntroduceTopic(topic string) {
	c.topic = topic
	c.phase = PhaseNPCResponses
	c.respondedThisRound = make(map[world.UID]struct{})
}

// HasResponded reports whether the given NPC has already spoken this round.
func (c *ConversationEvent) HasResponded(npcUID world.UID) bool {
	_, ok := c.respondedThisRound[npcUID]
	return ok
}

// MarkResponded records that the given NPC has spoken this round.
func (c *ConversationEvent) MarkResponded(npcUID world.UID) {
	c.respondedThisRound[npcUID] = struct{}{}
}

// StartNewRound clears the per-round responded set and returns to waiting
// for the player's next line.
func (c *ConversationEvent) StartNewRound() {
	c.respondedThisRound = make(map[world.UID]struct{})
	c.phase = PhaseWaitingForResponse
}

// HandleAction is a no-op: conversations are driven by the pipeline's talk
// handler directly, not by generic action dispatch.
func (c *ConversationEvent) HandleAction(*world.World, string, []string, world.UID) string {
	return ""
}

// ResolveIfNeeded resolves the conversation, returning true, when the
// initiator is no longer in its location; otherwise a conversation ends
// only via stop_event.
func (c *ConversationEvent) ResolveIfNeeded(w *world.World) bool {
	if !c.active {
		return false
	}
	if ch, ok := w.Character(c.initiator); ok && ch.CurrentArea != c.location {
		c.Resolve(w)
		return true
	}
	return false
}

// Resolve ends the conversation.
func (c *ConversationEvent) Resolve(w *world.World) {
	c.active = false
	detach(w, c.location, c.uid)
}
