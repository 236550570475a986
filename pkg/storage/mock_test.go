package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/outbreakrpg/engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockStorageSaveLoadDeleteSession(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()

	id := uuid.New()
	rec := &SessionRecord{ID: id, PlayerUID: "Char_lee", World: world.New("Test World")}

	require.NoError(t, m.SaveSession(ctx, id, rec))

	loaded, err := m.LoadSession(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, world.UID("Char_lee"), loaded.PlayerUID)

	require.NoError(t, m.DeleteSession(ctx, id))
	loaded, err = m.LoadSession(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMockStorageLoadMissingSessionReturnsNil(t *testing.T) {
	m := NewMockStorage()
	loaded, err := m.LoadSession(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMockStorageSaveNilSessionErrors(t *testing.T) {
	m := NewMockStorage()
	err := m.SaveSession(context.Background(), uuid.New(), nil)
	assert.Error(t, err)
}

func TestMockStorageWorldDefs(t *testing.T) {
	m := NewMockStorage()
	m.AddWorldDef("millbrook.json", world.New("Outbreak in Millbrook"))

	filenames, err := m.ListWorldDefs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"millbrook.json"}, filenames)

	w, err := m.GetWorldDef(context.Background(), "millbrook.json")
	require.NoError(t, err)
	assert.Equal(t, "Outbreak in Millbrook", w.Title)

	_, err = m.GetWorldDef(context.Background(), "missing.json")
	assert.Error(t, err)
}

func TestMockStoragePing(t *testing.T) {
	m := NewMockStorage()
	assert.NoError(t, m.Ping(context.Background()))

	sentinel := errors.New("down")
	m.SetPingError(sentinel)
	assert.ErrorIs(t, m.Ping(context.Background()), sentinel)

	m.SetPingSuccess()
	assert.NoError(t, m.Ping(context.Background()))
}
