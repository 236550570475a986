package action

import "github.com/outbreakrpg/engine/pkg/world"

// Token is a semantic slot that starts life as raw parser text (a uid or a
// name) and is resolved to a live entity uid before validation.
type Token struct {
	Raw string
	UID world.UID
}

// Resolved reports whether this token resolved to a live entity.
func (t Token) Resolved() bool { return t.UID != "" }

// sentinel parser tokens that mean "no value" per §4.1 / §9.
var sentinels = map[string]struct{}{
	"0": {}, "": {}, "none": {}, "null": {}, "nothing": {},
}

// NormalizeRaw folds a parser-supplied sentinel to the empty string; any
// other text is lower-cased-trimmed for matching but the original casing
// is preserved in Token.Raw for narration use.
func NormalizeRaw(raw string) string {
	if _, sentinel := sentinels[normalizeKey(raw)]; sentinel {
		return ""
	}
	return raw
}

// NewToken builds a Token from raw parser text, applying sentinel normalization.
func NewToken(raw string) Token {
	return Token{Raw: NormalizeRaw(raw)}
}

// Envelope is the neutral, validator/executor-facing representation of a
// single parsed action: one actor performing one kind with resolved (or
// still-unresolved) slots.
type Envelope struct {
	Actor world.UID

	Kind            Kind
	RequestedAction Kind // only meaningful for ask_action

	Target         Token
	IndirectTarget Token
	Item           Token
	Location       Token
	Topic          string
}
