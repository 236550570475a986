package event

import (
	"testing"

	"github.com/outbreakrpg/engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDuoWorld(t *testing.T) (*world.World, *world.Area, *world.Character, *world.Character) {
	t.Helper()
	w := world.New("Test")
	a := world.NewArea("Storage Room", "")
	w.AddArea(a)
	lee := world.NewCharacter("Lee", "", true)
	zombie := world.NewCharacter("Walker", "", false)
	zombie.State = "hostile"
	w.AddCharacter(lee)
	w.AddCharacter(zombie)
	require.NoError(t, w.MoveCharacterToArea(lee.UID, a.UID))
	require.NoError(t, w.MoveCharacterToArea(zombie.UID, a.UID))
	return w, a, lee, zombie
}

func TestFightSpawnsOnHostileCoLocation(t *testing.T) {
	w, a, lee, _ := setupDuoWorld(t)
	m := NewManager()

	m.CheckForEventTriggersAfterAction(w, lee.UID)

	fights := m.FightsInArea(a.UID)
	require.Len(t, fights, 1)
	assert.True(t, fights[0].HasParticipant(lee.UID))
}

func TestFightDoesNotDoubleSpawn(t *testing.T) {
	w, a, lee, _ := setupDuoWorld(t)
	m := NewManager()
	m.CheckForEventTriggersAfterAction(w, lee.UID)
	m.CheckForEventTriggersAfterAction(w, lee.UID)

	assert.Len(t, m.FightsInArea(a.UID), 1)
}

func TestFightResolvesWhenParticipantDies(t *testing.T) {
	w, a, lee, zombie := setupDuoWorld(t)
	m := NewManager()
	m.CheckForEventTriggersAfterAction(w, lee.UID)
	require.Len(t, m.FightsInArea(a.UID), 1)

	w.Kill(zombie.UID)
	m.ResolveAll(w)

	assert.Len(t, m.FightsInArea(a.UID), 0)
}

func TestBlockadeGatesMovementUntilResolved(t *testing.T) {
	w := world.New("Test")
	storage := world.NewArea("Storage Room", "")
	pharmacy := world.NewArea("Pharmacy", "")
	w.AddArea(storage)
	w.AddArea(pharmacy)
	lp := world.NewLinkingPoint("a barricaded door", storage.UID, pharmacy.UID)
	lp.Blocked = true
	w.AddLinkingPoint(lp)

	lee := world.NewCharacter("Lee", "", true)
	w.AddCharacter(lee)
	require.NoError(t, w.MoveCharacterToArea(lee.UID, storage.UID))

	axe := world.NewItem("Fire Axe", "", 10, 15)
	w.AddItem(axe)
	require.NoError(t, w.GiveItemToCharacter(axe.UID, lee.UID))

	m := NewManager()
	b := NewBlockadeEvent("Barricade", "A barricaded door blocks the way.", lp.UID, storage.UID, pharmacy.UID, "Fire Axe", "The door has been dismantled.")
	m.InitializeEvents(w, b)

	assert.NotEqual(t, "", m.ValidateMovement(storage.UID, pharmacy.UID))

	msg := m.HandleItemUse(w, lee.UID, "Fire Axe")
	assert.Contains(t, msg, "dismantle")
	assert.Contains(t, msg, "breaks")
	assert.Equal(t, "", m.ValidateMovement(storage.UID, pharmacy.UID))
	assert.False(t, lp.Blocked)
	_, stillHasAxe := w.Item(axe.UID)
	assert.False(t, stillHasAxe)
}
