package collab

import (
	"context"
	"strings"
	"sync"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/undo"
)

// The Stub* types below follow the teacher's MockLLMAPI shape: an overridable
// Func field per method, call tracking for assertions, and a sensible
// built-in default so a test (or the console client) can use the stub
// unconfigured. They are not test doubles confined to _test.go files — per
// §6.1 "Implementations may be LLM-backed or stubs", these ARE a legitimate,
// shippable no-network collaborator set.

// StubPrecheck classifies input by simple keyword/length heuristics.
type StubPrecheck struct {
	PrecheckFunc func(ctx context.Context, text string) (Label, error)

	Calls []string
	mu    sync.Mutex
}

func NewStubPrecheck() *StubPrecheck { return &StubPrecheck{} }

func (s *StubPrecheck) Precheck(ctx context.Context, text string) (Label, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, text)
	s.mu.Unlock()

	if s.PrecheckFunc != nil {
		return s.PrecheckFunc(ctx, text)
	}

	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)
	switch {
	case trimmed == "":
		return LabelInsufficient, nil
	case strings.Contains(lower, "undo"):
		return LabelUndo, nil
	case strings.HasSuffix(trimmed, "?"):
		return LabelQuestion, nil
	case len(strings.Fields(trimmed)) > 40:
		return LabelLong, nil
	default:
		return LabelClear, nil
	}
}

// StubIntentParser delegates to the literal parser-block contract (§4.1) and
// fails open to zero actions on malformed input (§7 item 1) rather than
// surfacing a parse error to the pipeline.
type StubIntentParser struct {
	ParseIntentFunc func(ctx context.Context, text string, view WorldView) ([]action.Envelope, error)

	Calls []string
	mu    sync.Mutex
}

func NewStubIntentParser() *StubIntentParser { return &StubIntentParser{} }

func (s *StubIntentParser) ParseIntent(ctx context.Context, text string, view WorldView) ([]action.Envelope, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, text)
	s.mu.Unlock()

	if s.ParseIntentFunc != nil {
		return s.ParseIntentFunc(ctx, text, view)
	}

	envs, err := action.ParseBlocks(text)
	if err != nil {
		return nil, nil
	}
	// Actor is left zero-valued; the pipeline assigns it to the player uid
	// (or the asked character's uid, for a nested ask_action) before validation.
	return envs, nil
}

// StubUndoSelector maps "beginning"/"start" to the oldest snapshot, "cancel"
// and its synonyms to 0, and otherwise defaults to the most recent snapshot.
type StubUndoSelector struct {
	SelectUndoFunc func(ctx context.Context, text string, snapshots []undo.Snapshot) (int, error)

	Calls []string
	mu    sync.Mutex
}

func NewStubUndoSelector() *StubUndoSelector { return &StubUndoSelector{} }

func (s *StubUndoSelector) SelectUndo(ctx context.Context, text string, snapshots []undo.Snapshot) (int, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, text)
	s.mu.Unlock()

	if s.SelectUndoFunc != nil {
		return s.SelectUndoFunc(ctx, text, snapshots)
	}

	lower := strings.ToLower(text)
	n := len(snapshots)
	switch {
	case n == 0:
		return 0, nil
	case strings.Contains(lower, "cancel") || strings.Contains(lower, "never mind") || strings.Contains(lower, "stop"):
		return 0, nil
	case strings.Contains(lower, "beginning") || strings.Contains(lower, "start") || strings.Contains(lower, "first"):
		return 1, nil
	default:
		return n, nil
	}
}

// StubConversation returns a short, generic acknowledgement; callers needing
// entity-grounded replies should set ReplyFunc.
type StubConversation struct {
	ReplyFunc func(ctx context.Context, text string, label Label, extras map[string]string) (string, error)

	Calls []string
	mu    sync.Mutex
}

func NewStubConversation() *StubConversation { return &StubConversation{} }

func (s *StubConversation) Reply(ctx context.Context, text string, label Label, extras map[string]string) (string, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, text)
	s.mu.Unlock()

	if s.ReplyFunc != nil {
		return s.ReplyFunc(ctx, text, label, extras)
	}
	return "I don't have anything more to say about that.", nil
}

// StubStorytelling renders the raw world result, trimmed to the §6.1 length
// bound (one sentence or 70 words, whichever is reached first). Name-scrubbing
// of the player's true character name is the caller's responsibility
// (pkg/narrate), since this stub has no access to that name.
type StubStorytelling struct {
	NarrateFunc func(ctx context.Context, playerInput, recognizedAction, worldResult string) (string, error)

	Calls []string
	mu    sync.Mutex
}

func NewStubStorytelling() *StubStorytelling { return &StubStorytelling{} }

func (s *StubStorytelling) Narrate(ctx context.Context, playerInput, recognizedAction, worldResult string) (string, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, playerInput)
	s.mu.Unlock()

	if s.NarrateFunc != nil {
		return s.NarrateFunc(ctx, playerInput, recognizedAction, worldResult)
	}

	return truncateNarration(worldResult), nil
}

func truncateNarration(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexAny(text, ".!?"); idx >= 0 {
		text = text[:idx+1]
	}
	words := strings.Fields(text)
	if len(words) > 70 {
		words = words[:70]
	}
	return strings.Join(words, " ")
}

// StubOutputValidator by default accepts any non-empty payload and rejects
// an empty one; ValidateFunc lets a
// test exercise the §7 item 6 retry-then-fallback path.
type StubOutputValidator struct {
	ValidateFunc func(ctx context.Context, mode, payload string) (bool, error)

	Calls []string
	mu    sync.Mutex
}

func NewStubOutputValidator() *StubOutputValidator { return &StubOutputValidator{} }

func (s *StubOutputValidator) Validate(ctx context.Context, mode, payload string) (bool, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, payload)
	s.mu.Unlock()

	if s.ValidateFunc != nil {
		return s.ValidateFunc(ctx, mode, payload)
	}
	return payload != "", nil
}
