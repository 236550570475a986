package turn

import (
	"strings"
	"testing"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/event"
	"github.com/outbreakrpg/engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTurnWorld(t *testing.T) (*world.World, *event.Manager, *world.Area, *world.Area, *world.Character, *world.Character) {
	t.Helper()
	w := world.New("Test")
	storage := world.NewArea("Storage Room", "")
	pharmacy := world.NewArea("Pharmacy", "")
	w.AddArea(storage)
	w.AddArea(pharmacy)
	lp := world.NewLinkingPoint("door", storage.UID, pharmacy.UID)
	w.AddLinkingPoint(lp)

	lee := world.NewCharacter("Lee", "", true)
	lee.Stats.Speed = 8
	clem := world.NewCharacter("Clementine", "", true)
	clem.Stats.Speed = 3
	w.AddCharacter(lee)
	w.AddCharacter(clem)
	require.NoError(t, w.MoveCharacterToArea(lee.UID, storage.UID))
	require.NoError(t, w.MoveCharacterToArea(clem.UID, storage.UID))

	return w, event.NewManager(), storage, pharmacy, lee, clem
}

func TestRunOneRoundOrdersBySpeedDescending(t *testing.T) {
	w, em, _, pharmacy, lee, clem := setupTurnWorld(t)
	h := NewHandler(w, em)
	h.QueueStep(clem.UID, action.Envelope{Actor: clem.UID, Kind: action.KindMove, Location: action.Token{UID: pharmacy.UID}}, OriginPlayer)
	h.QueueStep(lee.UID, action.Envelope{Actor: lee.UID, Kind: action.KindMove, Location: action.Token{UID: pharmacy.UID}}, OriginPlayer)

	lines := h.RunOneRound()
	require.Len(t, lines, 2)
	assert.Equal(t, lee.UID, lines[0].Actor)
	assert.Equal(t, clem.UID, lines[1].Actor)
}

func TestRunOneRoundCascadesPartyFollowersSameRound(t *testing.T) {
	w, em, storage, pharmacy, lee, clem := setupTurnWorld(t)
	require.NoError(t, w.JoinParty(lee.UID, clem.UID))
	h := NewHandler(w, em)
	h.QueueStep(lee.UID, action.Envelope{Actor: lee.UID, Kind: action.KindMove, Location: action.Token{UID: pharmacy.UID}}, OriginPlayer)

	lines := h.RunOneRound()

	var followText string
	for _, l := range lines {
		if l.Actor == clem.UID {
			followText = l.Text
		}
	}
	assert.Contains(t, followText, "follows to Pharmacy")
	cc, _ := w.Character(clem.UID)
	assert.Equal(t, pharmacy.UID, cc.CurrentArea)
	_ = storage
}

func TestRunOneRoundClearsPlansAfterCompletion(t *testing.T) {
	w, em, _, pharmacy, lee, _ := setupTurnWorld(t)
	h := NewHandler(w, em)
	h.QueueStep(lee.UID, action.Envelope{Actor: lee.UID, Kind: action.KindMove, Location: action.Token{UID: pharmacy.UID}}, OriginPlayer)
	h.RunOneRound()
	assert.False(t, h.Pending(lee.UID))
}

func TestRunOneRoundInterruptsUnengagedFollowUp(t *testing.T) {
	w, em, storage, pharmacy, lee, clem := setupTurnWorld(t)
	h := NewHandler(w, em)
	// Lee harms Clem first (fast), engaging both; Clem's queued move (unrelated
	// to the engagement) should be interrupted rather than executed.
	h.QueueStep(lee.UID, action.Envelope{Actor: lee.UID, Kind: action.KindHarm, Target: action.Token{UID: clem.UID}}, OriginPlayer)
	h.QueueStep(clem.UID, action.Envelope{Actor: clem.UID, Kind: action.KindMove, Location: action.Token{UID: pharmacy.UID}}, OriginPlayer)

	lines := h.RunOneRound()
	var clemText string
	for _, l := range lines {
		if l.Actor == clem.UID {
			clemText = l.Text
		}
	}
	assert.Contains(t, strings.ToLower(clemText), "interrupted")
	cc, _ := w.Character(clem.UID)
	assert.Equal(t, storage.UID, cc.CurrentArea)
}
