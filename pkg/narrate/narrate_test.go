package narrate

import (
	"context"
	"strings"
	"testing"

	"github.com/outbreakrpg/engine/pkg/collab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrubNameWholeWordOnly(t *testing.T) {
	out := ScrubName("Lee grabs his sleeve and looks at Lee's boots.", "Lee")
	assert.Equal(t, "You grabs his sleeve and looks at You's boots.", out)
}

func TestScrubNamePreservesCase(t *testing.T) {
	assert.Equal(t, "YOU shout.", ScrubName("LEE shout.", "Lee"))
	assert.Equal(t, "You shout.", ScrubName("Lee shout.", "Lee"))
}

func TestScrubNameNoOpWhenAbsent(t *testing.T) {
	out := ScrubName("Clementine grabs her boots.", "Lee")
	assert.Equal(t, "Clementine grabs her boots.", out)
}

func TestCounterFiresEveryOtherCompletedTurn(t *testing.T) {
	c := &Counter{}
	assert.False(t, c.Advance())
	assert.True(t, c.Advance())
	assert.False(t, c.Advance())
	assert.True(t, c.Advance())
	assert.Equal(t, 4, c.Completed())
}

func TestAppendSuggestionJoinsOnBlankLine(t *testing.T) {
	conv := collab.NewStubConversation()
	conv.ReplyFunc = func(ctx context.Context, text string, label collab.Label, extras map[string]string) (string, error) {
		return "Try searching the pharmacy.", nil
	}
	out := AppendSuggestion(context.Background(), conv, "You arrive at the storage room.", "go to storage room", "You arrive.")
	assert.Equal(t, "You arrive at the storage room.\n\nTry searching the pharmacy.", out)
}

func TestAppendSuggestionLeavesStoryUntouchedOnEmptyReply(t *testing.T) {
	conv := collab.NewStubConversation()
	conv.ReplyFunc = func(ctx context.Context, text string, label collab.Label, extras map[string]string) (string, error) {
		return "", nil
	}
	out := AppendSuggestion(context.Background(), conv, "You arrive.", "go", "You arrive.")
	assert.Equal(t, "You arrive.", out)
}

func TestWithinBoundsRejectsMultipleSentences(t *testing.T) {
	assert.True(t, WithinBounds("You move north."))
	assert.False(t, WithinBounds("You move north. Then you stop."))
	assert.False(t, WithinBounds(strings.Repeat("word ", 71)))
}
