package pipeline

import (
	"context"
	"testing"

	"github.com/outbreakrpg/engine/pkg/collab"
	"github.com/outbreakrpg/engine/pkg/event"
	"github.com/outbreakrpg/engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupPipelineWorld builds a small two-area world with a player and one
// NPC, wired into a fresh GameSession ready for RunTurn.
func setupPipelineWorld(t *testing.T) (*GameSession, *world.Area, *world.Area, *world.Character, *world.Character) {
	t.Helper()
	w := world.New("Test")
	storage := world.NewArea("Storage Room", "")
	pharmacy := world.NewArea("Pharmacy", "")
	w.AddArea(storage)
	w.AddArea(pharmacy)
	lp := world.NewLinkingPoint("door", storage.UID, pharmacy.UID)
	w.AddLinkingPoint(lp)

	player := world.NewCharacter("Lee", "", true)
	player.Stats.Speed = 5
	larry := world.NewCharacter("Larry", "", true)
	larry.Stats.Speed = 5
	w.AddCharacter(player)
	w.AddCharacter(larry)
	require.NoError(t, w.MoveCharacterToArea(player.UID, storage.UID))
	require.NoError(t, w.MoveCharacterToArea(larry.UID, storage.UID))

	em := event.NewManager()
	s := NewGameSession(w, em, player.UID)
	return s, storage, pharmacy, player, larry
}

func TestRunTurnSimpleMove(t *testing.T) {
	s, _, pharmacy, player, _ := setupPipelineWorld(t)
	p := NewStubPipeline()

	result := p.RunTurn(context.Background(), s, "action:move,location:"+string(pharmacy.UID))

	assert.Equal(t, OutcomeContinue, result.Outcome)
	assert.Contains(t, result.Narration, "Pharmacy")
	assert.Equal(t, pharmacy.UID, player.CurrentArea)
	assert.Equal(t, 2, s.Undo.Len()) // start-of-turn seed, then the post-move snapshot
}

func TestRunTurnBlockadeBlocksMoveWithReason(t *testing.T) {
	s, storage, pharmacy, player, _ := setupPipelineWorld(t)
	lp := s.World.LinksFrom(storage.UID)[0]
	blockade := event.NewBlockadeEvent("Rubble", "a pile of rubble blocks the door", lp, storage.UID, pharmacy.UID, "", "")
	s.Events.Add(s.World, blockade)

	p := NewStubPipeline()
	result := p.RunTurn(context.Background(), s, "action:move,location:"+string(pharmacy.UID))

	assert.Equal(t, OutcomeContinue, result.Outcome)
	assert.Equal(t, storage.UID, player.CurrentArea)
	assert.NotEmpty(t, result.Narration)
}

func TestRunTurnRiskyActionRequiresConfirmationYes(t *testing.T) {
	s, _, _, player, larry := setupPipelineWorld(t)
	player.Friendships = map[world.UID]int{larry.UID: 8}
	larry.Friendships = map[world.UID]int{player.UID: 8}
	p := NewStubPipeline()

	ask := p.RunTurn(context.Background(), s, "action:harm,target:Larry")
	assert.Equal(t, OutcomeContinue, ask.Outcome)
	assert.Contains(t, ask.Narration, "harm Larry")
	assert.Equal(t, pendingRisky, s.pending)

	p.RunTurn(context.Background(), s, "yes")
	assert.Equal(t, pendingNone, s.pending)
	assert.Less(t, larry.Health, 100)
}

func TestRunTurnRiskyActionDeclinedLeavesWorldUnchanged(t *testing.T) {
	s, _, _, player, larry := setupPipelineWorld(t)
	player.Friendships = map[world.UID]int{larry.UID: 8}
	larry.Friendships = map[world.UID]int{player.UID: 8}
	p := NewStubPipeline()

	p.RunTurn(context.Background(), s, "action:harm,target:Larry")
	result := p.RunTurn(context.Background(), s, "no")

	assert.Equal(t, "Okay, never mind.", result.Narration)
	assert.Equal(t, pendingNone, s.pending)
	assert.Equal(t, 100, larry.Health)
}

func TestRunTurnCorrectionFlowMergesMissingTarget(t *testing.T) {
	s, _, _, player, larry := setupPipelineWorld(t)
	kit := world.NewItem("First Aid Kit", "", 0, 1)
	s.World.AddItem(kit)
	require.NoError(t, s.World.GiveItemToCharacter(kit.UID, player.UID))

	p := NewStubPipeline()

	first := p.RunTurn(context.Background(), s, "action:give_item,item:First Aid Kit")
	assert.Equal(t, pendingCorrection, s.pending)
	assert.Contains(t, first.Narration, "no one by that name")

	second := p.RunTurn(context.Background(), s, "target:Larry")
	assert.Equal(t, pendingNone, s.pending)
	assert.Contains(t, second.Narration, "Larry")
	larryChar, _ := s.World.Character(larry.UID)
	assert.True(t, larryChar.HasInventoryItem(kit.UID))
}

func TestRunTurnUndoRestoresPriorArea(t *testing.T) {
	s, storage, pharmacy, player, _ := setupPipelineWorld(t)
	p := NewStubPipeline()

	p.RunTurn(context.Background(), s, "action:move,location:"+string(pharmacy.UID))
	require.Equal(t, pharmacy.UID, player.CurrentArea)

	p.RunTurn(context.Background(), s, "undo back to the beginning")
	assert.Equal(t, pendingUndo, s.pending)

	confirm := p.RunTurn(context.Background(), s, "yes")
	assert.Equal(t, pendingNone, s.pending)
	assert.Contains(t, confirm.Narration, "rewinds")
	restoredPlayer, ok := s.World.Character(s.PlayerUID)
	require.True(t, ok)
	assert.Equal(t, storage.UID, restoredPlayer.CurrentArea)
}

func TestRunTurnFightCascadeProducesHarmNarration(t *testing.T) {
	s, _, _, player, larry := setupPipelineWorld(t)
	player.Friendships = map[world.UID]int{larry.UID: 0}
	larry.Friendships = map[world.UID]int{player.UID: 0}
	p := NewStubPipeline()

	result := p.RunTurn(context.Background(), s, "action:harm,target:Larry")

	assert.Equal(t, OutcomeContinue, result.Outcome)
	assert.Contains(t, result.Narration, "damage")
	assert.Less(t, larry.Health, 100)
	assert.NotEmpty(t, s.Events.FightsInArea(player.CurrentArea))
}

func TestRunTurnQuestionLabelShortCircuitsToConversation(t *testing.T) {
	s, _, _, _, _ := setupPipelineWorld(t)
	p := NewStubPipeline()
	stubConv := p.Conversation.(*collab.StubConversation)
	stubConv.ReplyFunc = func(ctx context.Context, text string, label collab.Label, extras map[string]string) (string, error) {
		return "There's nothing more to tell you.", nil
	}

	result := p.RunTurn(context.Background(), s, "what is going on here?")

	assert.Equal(t, "There's nothing more to tell you.", result.Narration)
	assert.Equal(t, OutcomeContinue, result.Outcome)
}

func TestRunTurnLossOutcomeWhenPlayerHealthZero(t *testing.T) {
	s, _, _, player, _ := setupPipelineWorld(t)
	player.Health = 0
	player.Alive = false
	p := NewStubPipeline()

	result := p.RunTurn(context.Background(), s, "action:do_nothing")
	assert.Equal(t, OutcomeLoss, result.Outcome)
}

func TestRunTurnWinOutcomeOnExitArea(t *testing.T) {
	s, _, pharmacy, _, _ := setupPipelineWorld(t)
	pharmacy.Exit = true
	p := NewStubPipeline()

	result := p.RunTurn(context.Background(), s, "action:move,location:"+string(pharmacy.UID))
	assert.Equal(t, OutcomeWin, result.Outcome)
}
