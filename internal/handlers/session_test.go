package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gorilla/mux"
	"github.com/outbreakrpg/engine/pkg/pipeline"
	"github.com/outbreakrpg/engine/pkg/storage"
	"github.com/outbreakrpg/engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func seededWorldDef() *world.World {
	w := world.New("Outbreak in Millbrook")
	area := world.NewArea("Storage Room", "")
	w.AddArea(area)

	player := world.NewCharacter("Lee", "", true)
	w.AddCharacter(player)
	_ = w.MoveCharacterToArea(player.UID, area.UID)

	return w
}

func router(h *SessionHandler) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/v1/session", h)
	r.Handle("/v1/session/{id}", h)
	return r
}

func TestSessionHandlerCreateAndRead(t *testing.T) {
	store := storage.NewMockStorage()
	store.AddWorldDef("millbrook.json", seededWorldDef())
	h := NewSessionHandler(testLogger(), store)
	rtr := router(h)

	body, _ := json.Marshal(CreateSessionRequest{WorldDef: "millbrook.json"})
	req := httptest.NewRequest(http.MethodPost, "/v1/session", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	rtr.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var created SessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.WorldView.PlayerUID)
	assert.NotEmpty(t, created.WorldView.PlayerArea)
	assert.Equal(t, pipeline.OutcomeContinue, created.Outcome)

	readReq := httptest.NewRequest(http.MethodGet, "/v1/session/"+created.ID.String(), nil)
	readRec := httptest.NewRecorder()
	rtr.ServeHTTP(readRec, readReq)

	require.Equal(t, http.StatusOK, readRec.Code)
	var loaded SessionView
	require.NoError(t, json.Unmarshal(readRec.Body.Bytes(), &loaded))
	assert.Equal(t, created.ID, loaded.ID)
	assert.Equal(t, 0, loaded.UndoDepth)
}

func TestSessionHandlerCreateRejectsUnknownWorldDef(t *testing.T) {
	store := storage.NewMockStorage()
	h := NewSessionHandler(testLogger(), store)
	rtr := router(h)

	body, _ := json.Marshal(CreateSessionRequest{WorldDef: "nope.json"})
	req := httptest.NewRequest(http.MethodPost, "/v1/session", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	rtr.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandlerReadMissingSessionReturns404(t *testing.T) {
	store := storage.NewMockStorage()
	h := NewSessionHandler(testLogger(), store)
	rtr := router(h)

	req := httptest.NewRequest(http.MethodGet, "/v1/session/"+"00000000-0000-0000-0000-000000000000", nil)
	rec := httptest.NewRecorder()
	rtr.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
