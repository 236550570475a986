package validate

import (
	"testing"

	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/event"
	"github.com/outbreakrpg/engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupValidateWorld(t *testing.T) (*world.World, *event.Manager, *world.Area, *world.Area, *world.Character) {
	t.Helper()
	w := world.New("Test")
	storage := world.NewArea("Storage Room", "")
	pharmacy := world.NewArea("Pharmacy", "")
	w.AddArea(storage)
	w.AddArea(pharmacy)

	lee := world.NewCharacter("Lee", "", true)
	w.AddCharacter(lee)
	require.NoError(t, w.MoveCharacterToArea(lee.UID, storage.UID))

	axe := world.NewItem("Fire Axe", "", 10, 50)
	w.AddItem(axe)
	require.NoError(t, w.PlaceItemInArea(axe.UID, storage.UID))
	lee.KnownItems[axe.UID] = struct{}{}

	return w, event.NewManager(), storage, pharmacy, lee
}

func TestValidateMoveRequiresResolvedDestination(t *testing.T) {
	w, em, _, _, lee := setupValidateWorld(t)
	env := action.Envelope{Actor: lee.UID, Kind: action.KindMove, Location: action.Token{Raw: "Nowhere"}}
	reason := ValidateSequence(w, em, lee.UID, []action.Envelope{env})
	assert.NotEqual(t, "", reason)
}

func TestValidatePickUpRequiresKnownFloorItem(t *testing.T) {
	w, em, storage, _, lee := setupValidateWorld(t)
	axeUID := storage.FloorItems[0]
	env := action.Envelope{Actor: lee.UID, Kind: action.KindPickUp, Item: action.Token{Raw: "Fire Axe", UID: axeUID}}
	reason := ValidateSequence(w, em, lee.UID, []action.Envelope{env})
	assert.Equal(t, "", reason)
}

func TestValidateChainAppliesPickUpBeforeUseItem(t *testing.T) {
	w, em, storage, _, lee := setupValidateWorld(t)
	axeUID := storage.FloorItems[0]
	pickUp := action.Envelope{Actor: lee.UID, Kind: action.KindPickUp, Item: action.Token{Raw: "Fire Axe", UID: axeUID}}
	useIt := action.Envelope{Actor: lee.UID, Kind: action.KindUseItem, Item: action.Token{Raw: "Fire Axe", UID: axeUID}}
	reason := ValidateSequence(w, em, lee.UID, []action.Envelope{pickUp, useIt})
	assert.Equal(t, "", reason)
}

func TestValidateChainPrefixesFailureWithStepNumber(t *testing.T) {
	w, em, _, pharmacy, lee := setupValidateWorld(t)
	goodMove := action.Envelope{Actor: lee.UID, Kind: action.KindMove, Location: action.Token{Raw: "Pharmacy", UID: pharmacy.UID}}
	badHarm := action.Envelope{Actor: lee.UID, Kind: action.KindHarm, Target: action.Token{Raw: "Ghost"}}
	reason := ValidateSequence(w, em, lee.UID, []action.Envelope{goodMove, badHarm})
	assert.Contains(t, reason, "Action 2:")
}

func TestValidateInformDegradesToTalkWhenSubjectUnknown(t *testing.T) {
	w, em, storage, _, lee := setupValidateWorld(t)
	npc := world.NewCharacter("Marcus", "", false)
	w.AddCharacter(npc)
	require.NoError(t, w.MoveCharacterToArea(npc.UID, storage.UID))

	env := action.Envelope{
		Actor:  lee.UID,
		Kind:   action.KindInform,
		Target: action.Token{Raw: "Marcus", UID: npc.UID},
		Item:   action.Token{Raw: "a mythical sword"},
	}
	envs := []action.Envelope{env}
	reason := ValidateSequence(w, em, lee.UID, envs)
	assert.Equal(t, "", reason)
	assert.Equal(t, action.KindTalk, envs[0].Kind)
	assert.Contains(t, envs[0].Topic, "a mythical sword")
}

func TestValidateStopEventRequiresActiveEventInvolvement(t *testing.T) {
	w, em, _, _, lee := setupValidateWorld(t)
	env := action.Envelope{Actor: lee.UID, Kind: action.KindStopEvent}
	reason := ValidateSequence(w, em, lee.UID, []action.Envelope{env})
	assert.NotEqual(t, "", reason)
}
