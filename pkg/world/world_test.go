package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T) (*World, *Area, *Area, *Character) {
	t.Helper()
	w := New("Test Town")
	a1 := NewArea("Main Store", "A looted grocery store.")
	a2 := NewArea("Storage Room", "Boxes and dust.")
	w.AddArea(a1)
	w.AddArea(a2)
	w.AddLinkingPoint(NewLinkingPoint("a door", a1.UID, a2.UID))

	c := NewCharacter("Lee", "A survivor.", true)
	w.AddCharacter(c)
	require.NoError(t, w.MoveCharacterToArea(c.UID, a1.UID))
	return w, a1, a2, c
}

func TestItemOwnershipInvariant(t *testing.T) {
	w, a1, _, c := newTestWorld(t)
	it := NewItem("Fire Axe", "A fire axe.", 10, 80)
	w.AddItem(it)

	require.NoError(t, w.PlaceItemInArea(it.UID, a1.UID))
	assert.True(t, it.IsOnFloor())
	assert.False(t, it.IsHeld())
	assert.True(t, a1.HasFloorItem(it.UID))

	require.NoError(t, w.GiveItemToCharacter(it.UID, c.UID))
	assert.True(t, it.IsHeld())
	assert.False(t, it.IsOnFloor())
	assert.False(t, a1.HasFloorItem(it.UID))
	assert.True(t, c.HasInventoryItem(it.UID))

	require.NoError(t, w.EquipItem(c.UID, it.UID, SlotRightHand))
	assert.True(t, it.Equipped())
	assert.True(t, it.IsHeld(), "equipped implies held")
}

func TestResidentCurrentAreaInvariant(t *testing.T) {
	w, a1, a2, c := newTestWorld(t)
	assert.Equal(t, a1.UID, c.CurrentArea)
	assert.True(t, a1.HasResident(c.UID))

	require.NoError(t, w.MoveCharacterToArea(c.UID, a2.UID))
	assert.Equal(t, a2.UID, c.CurrentArea)
	assert.False(t, a1.HasResident(c.UID))
	assert.True(t, a2.HasResident(c.UID))
}

func TestPartySymmetryAndNoSelfMembership(t *testing.T) {
	w, _, _, c1 := newTestWorld(t)
	c2 := NewCharacter("Clementine", "A kid.", false)
	w.AddCharacter(c2)

	require.NoError(t, w.JoinParty(c1.UID, c2.UID))
	assert.True(t, c1.InParty(c2.UID))
	assert.True(t, c2.InParty(c1.UID))

	require.Error(t, w.JoinParty(c1.UID, c1.UID))
	assert.False(t, c1.InParty(c1.UID))

	require.NoError(t, w.QuitParty(c1.UID, c2.UID))
	assert.False(t, c1.InParty(c2.UID))
	assert.False(t, c2.InParty(c1.UID))
}

func TestFriendshipDefaultAndClampAndHostileFloor(t *testing.T) {
	_, _, _, c1 := newTestWorld(t)
	other := NewCharacterUID()

	assert.Equal(t, 5, c1.FriendshipWith(other))

	c1.UpdateFriendshipWith(other, 100)
	assert.Equal(t, 10, c1.FriendshipWith(other))

	c1.UpdateFriendshipWith(other, -100)
	assert.Equal(t, 1, c1.FriendshipWith(other))

	// Hostility floor is immutable: once 0, it never rises.
	c1.SetFriendship(other, 0)
	c1.UpdateFriendshipWith(other, 5)
	assert.Equal(t, 0, c1.FriendshipWith(other))
}

func TestDeathSeversPartyButKeepsCorpseResident(t *testing.T) {
	w, a1, _, c1 := newTestWorld(t)
	c2 := NewCharacter("Clementine", "A kid.", false)
	w.AddCharacter(c2)
	require.NoError(t, w.MoveCharacterToArea(c2.UID, a1.UID))
	require.NoError(t, w.JoinParty(c1.UID, c2.UID))

	w.Kill(c2.UID)

	assert.False(t, c2.Alive)
	assert.Equal(t, 0, c2.Health)
	assert.False(t, c1.InParty(c2.UID))
	assert.True(t, a1.HasResident(c2.UID), "corpse stays resident for corpse interactions")
}

func TestBFSPathAvoidsBlockedEdge(t *testing.T) {
	w, a1, a2, _ := newTestWorld(t)
	a3 := NewArea("Pharmacy", "Shelves of pills.")
	w.AddArea(a3)
	w.AddLinkingPoint(NewLinkingPoint("a hallway", a2.UID, a3.UID))

	path, ok := w.BFSPath(a1.UID, a3.UID, nil)
	require.True(t, ok)
	assert.Equal(t, []UID{a1.UID, a2.UID, a3.UID}, path)

	blockAll := func(from, to UID) bool { return true }
	_, ok = w.BFSPath(a1.UID, a3.UID, blockAll)
	assert.False(t, ok)
}
