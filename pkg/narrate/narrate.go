// Package narrate applies the storytelling constraints the Turn Pipeline
// requires on top of a raw Storytelling reply (§6.1, §6.3, §9): the player's
// true character name is never surfaced, and an in-world, situationally
// relevant suggestion is appended every second turn that reaches
// storytelling (§9 open question: the counter only increments on turns that
// complete, never on turns that stall in a confirmation or correction phase).
package narrate

import (
	"context"
	"regexp"
	"strings"

	"github.com/outbreakrpg/engine/pkg/collab"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// ScrubName removes whole-word occurrences of name from text, replacing them
// with "you" (second person, matching the narration voice). Matching is
// case-insensitive and word-bounded so a name that is a substring of another
// word (e.g. "Lee" inside "sleeve") is left alone, per §9's open question.
func ScrubName(text, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return text
	}
	pattern := `(?i)\b` + regexp.QuoteMeta(name) + `\b`
	re := regexp.MustCompile(pattern)
	return re.ReplaceAllStringFunc(text, func(match string) string {
		return matchReplacementCase(match, "you")
	})
}

// matchReplacementCase mirrors the teacher's textfilter.preserveCase idiom:
// an all-caps match gets an all-caps replacement, a capitalized match gets a
// capitalized replacement, otherwise lowercase.
func matchReplacementCase(match, replacement string) string {
	switch {
	case match == strings.ToUpper(match):
		return strings.ToUpper(replacement)
	case match == titleCaser.String(strings.ToLower(match)):
		return titleCaser.String(replacement)
	default:
		return strings.ToLower(replacement)
	}
}

// Counter tracks how many action-turns have fully completed (reached
// storytelling) for one session, per §9's suggestion-cadence open question.
type Counter struct {
	completedTurns int
}

// Advance records one completed turn and reports whether a suggestion is due
// this turn (every second completed turn, matching the original's
// `completed_action_turns % 2 == 0`).
func (c *Counter) Advance() bool {
	c.completedTurns++
	return c.completedTurns%2 == 0
}

// Completed returns the number of turns recorded so far.
func (c *Counter) Completed() int { return c.completedTurns }

// AppendSuggestion asks the Conversation collaborator for one concrete,
// in-world next-step suggestion and appends it to story on its own line,
// mirroring the original's `story.rstrip() + "\n\n" + tip.strip()` join. A
// collaborator error or empty reply leaves story untouched rather than
// failing the turn.
func AppendSuggestion(ctx context.Context, conv collab.Conversation, story, playerInput, worldResult string) string {
	prompt := "Player just did: " + playerInput + "\nWorld result: " + worldResult +
		"\nGive one concrete, in-world suggestion for what the player could do next."
	tip, err := conv.Reply(ctx, prompt, collab.LabelQuestion, map[string]string{"purpose": "suggestion"})
	if err != nil || strings.TrimSpace(tip) == "" {
		return story
	}
	return strings.TrimRight(story, " \t\n") + "\n\n" + strings.TrimSpace(tip)
}

// WithinBounds reports whether narration satisfies §6.1's Storytelling
// length bound, checked as at most one sentence terminator and at most 70
// words; both limits apply to every text.
func WithinBounds(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	sentences := 0
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			sentences++
		}
	}
	if sentences > 1 {
		return false
	}
	return len(strings.Fields(text)) <= 70
}
