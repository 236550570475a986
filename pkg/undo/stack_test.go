package undo

import (
	"testing"

	"github.com/outbreakrpg/engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushIfChangedDedupsIdenticalState(t *testing.T) {
	w := world.New("Test")
	a := world.NewArea("Storage Room", "")
	w.AddArea(a)
	s := NewStack()

	snap1, err := Take(w, "look around", string(a.UID))
	require.NoError(t, err)
	assert.True(t, s.PushIfChanged(snap1))

	snap2, err := Take(w, "look around again", string(a.UID))
	require.NoError(t, err)
	assert.False(t, s.PushIfChanged(snap2))
	assert.Equal(t, 1, s.Len())
}

func TestPushIfChangedKeepsStructurallyDifferentState(t *testing.T) {
	w := world.New("Test")
	a := world.NewArea("Storage Room", "")
	b := world.NewArea("Pharmacy", "")
	w.AddArea(a)
	w.AddArea(b)
	lee := world.NewCharacter("Lee", "", true)
	w.AddCharacter(lee)
	require.NoError(t, w.MoveCharacterToArea(lee.UID, a.UID))

	s := NewStack()
	snap1, err := Take(w, "start", string(a.UID))
	require.NoError(t, err)
	s.PushIfChanged(snap1)

	require.NoError(t, w.MoveCharacterToArea(lee.UID, b.UID))
	snap2, err := Take(w, "move to pharmacy", string(b.UID))
	require.NoError(t, err)
	assert.True(t, s.PushIfChanged(snap2))
	assert.Equal(t, 2, s.Len())
}

func TestApplyRestoresItemLocationInvariant(t *testing.T) {
	w := world.New("Test")
	a := world.NewArea("Storage Room", "")
	w.AddArea(a)
	axe := world.NewItem("Fire Axe", "", 10, 50)
	w.AddItem(axe)
	require.NoError(t, w.PlaceItemInArea(axe.UID, a.UID))

	snap, err := Take(w, "start", string(a.UID))
	require.NoError(t, err)

	restored, err := Apply(snap)
	require.NoError(t, err)
	restoredItem, ok := restored.Item(axe.UID)
	require.True(t, ok)
	assert.True(t, restoredItem.IsOnFloor())
	assert.Equal(t, a.UID, restoredItem.Position())
}

func TestTruncateToDropsLaterSnapshots(t *testing.T) {
	w := world.New("Test")
	s := NewStack()
	for i := 0; i < 3; i++ {
		snap, err := Take(w, "turn", "")
		require.NoError(t, err)
		s.Push(snap)
		w.ChaosState++
	}
	require.Equal(t, 3, s.Len())
	s.TruncateTo(1)
	assert.Equal(t, 1, s.Len())
}
