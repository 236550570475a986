// Package collab defines the narrow, request/response interfaces the Turn
// Pipeline delegates natural-language work to (§6.1): Precheck, IntentParser,
// UndoSelector, Conversation, Storytelling, OutputValidator. All of them are
// pure from the pipeline's point of view — no collaborator reaches back into
// world state or the undo stack on its own. Implementations may be LLM-backed
// or, as here, deterministic stubs usable in tests and the console client
// without a network dependency.
package collab

import (
	"context"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/undo"
)

// Label classifies a player's raw input before parsing (§4.8, §6.1).
type Label string

const (
	LabelClear        Label = "clear"
	LabelLong         Label = "long"
	LabelInsufficient Label = "insufficient"
	LabelImpossible   Label = "impossible"
	LabelQuestion     Label = "question"
	LabelUndo         Label = "undo"
)

// EntityRef is a name+uid pair exposed to collaborators that need to resolve
// or cite world entities without holding a live reference.
type EntityRef struct {
	UID  string
	Name string
}

// WorldView is the read-only snapshot of areas, characters, and items (names
// plus uids) and recent narration that IntentParser and Conversation ground
// their output in, per §6.1's "world_view is a read-only snapshot".
type WorldView struct {
	PlayerUID     string
	PlayerArea    string
	Areas         []EntityRef
	Characters    []EntityRef
	Items         []EntityRef
	LastNarration string
}

// Precheck classifies raw player text before any parsing is attempted.
type Precheck interface {
	Precheck(ctx context.Context, text string) (Label, error)
}

// IntentParser turns raw player text plus a world view into zero or more
// action records (§4.1). The returned envelopes carry raw token text; slot
// resolution to live uids happens downstream in pkg/action.
type IntentParser interface {
	ParseIntent(ctx context.Context, text string, view WorldView) ([]action.Envelope, error)
}

// UndoSelector maps free text plus the visible snapshot list to a 1-indexed
// stack position, or 0 to cancel (§6.1).
type UndoSelector interface {
	SelectUndo(ctx context.Context, text string, snapshots []undo.Snapshot) (int, error)
}

// Conversation answers in-world questions and confirmation prompts with a
// short, entity-grounded reply. An empty reply signals rejection after
// internal retries (§6.1).
type Conversation interface {
	Reply(ctx context.Context, text string, label Label, extras map[string]string) (string, error)
}

// Storytelling narrates the outcome of a recognized action in second person,
// never naming the player's true character, within the length bounds in §6.1.
type Storytelling interface {
	Narrate(ctx context.Context, playerInput, recognizedAction, worldResult string) (string, error)
}

// OutputValidator accepts or rejects a generated candidate for a given mode
// before it reaches the player (§6.1, §7 taxonomy item 6).
type OutputValidator interface {
	Validate(ctx context.Context, mode string, payload string) (bool, error)
}

// Mode values for OutputValidator.
const (
	ModeStory        = "story"
	ModeConversation = "conversation"
)

// labelSynonyms maps tolerant precheck-label variants an NL collaborator
// might emit to the canonical label set (§4.8 step 5, §9 design note
// "fail-open collaborators": encode synonym tolerance explicitly here
// rather than leaving it to each Precheck implementation).
var labelSynonyms = map[string]Label{
	"clear":        LabelClear,
	"long":         LabelLong,
	"insufficient": LabelInsufficient,
	"impossible":   LabelImpossible,
	"question":     LabelQuestion,
	"undo":         LabelUndo,
	"redo":         LabelUndo,
	"unrelated":    LabelImpossible,
	"irrelevant":   LabelImpossible,
	"unknown":      LabelInsufficient,
}

// NormalizeLabel maps a raw label string (as a collaborator might phrase it)
// to the canonical Label set, falling back to LabelClear for anything
// unrecognized (fail-open, per §5's "precheck fail-open -> clear").
func NormalizeLabel(raw string) Label {
	if l, ok := labelSynonyms[raw]; ok {
		return l
	}
	return LabelClear
}
