package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/outbreakrpg/engine/pkg/event"
	"github.com/outbreakrpg/engine/pkg/pipeline"
	"github.com/outbreakrpg/engine/pkg/storage"
	"github.com/outbreakrpg/engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turnRouter(h *TurnHandler) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/v1/session/{id}/turn", h)
	return r
}

func TestTurnHandlerRunsTurnAndPersistsUndoHistory(t *testing.T) {
	store := storage.NewMockStorage()
	wd := seededWorldDef()
	var playerUID string
	for uid, c := range wd.Characters {
		if c.Controllable {
			playerUID = string(uid)
			break
		}
	}
	require.NotEmpty(t, playerUID)

	s := pipeline.NewGameSession(wd, event.NewManager(), world.UID(playerUID))
	rec := &storage.SessionRecord{ID: s.ID, PlayerUID: world.UID(playerUID), World: wd, CreatedAt: time.Now().Unix()}
	require.NoError(t, store.SaveSession(context.Background(), s.ID, rec))

	h := NewTurnHandler(testLogger(), store, pipeline.NewStubPipeline(), nil)
	rtr := turnRouter(h)

	body, _ := json.Marshal(TurnRequest{Input: "look around"})
	req := httptest.NewRequest(http.MethodPost, "/v1/session/"+s.ID.String()+"/turn", bytes.NewReader(body))
	rec2 := httptest.NewRecorder()
	rtr.ServeHTTP(rec2, req)

	require.Equal(t, http.StatusOK, rec2.Code)
	var resp TurnResponse
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Narration)

	saved, err := store.LoadSession(context.Background(), s.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.NotNil(t, saved.Snapshots)
}

func TestTurnHandlerRejectsEmptyInput(t *testing.T) {
	store := storage.NewMockStorage()
	h := NewTurnHandler(testLogger(), store, pipeline.NewStubPipeline(), nil)
	rtr := turnRouter(h)

	body, _ := json.Marshal(TurnRequest{Input: ""})
	req := httptest.NewRequest(http.MethodPost, "/v1/session/00000000-0000-0000-0000-000000000000/turn", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	rtr.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTurnHandlerMissingSessionReturns404(t *testing.T) {
	store := storage.NewMockStorage()
	h := NewTurnHandler(testLogger(), store, pipeline.NewStubPipeline(), nil)
	rtr := turnRouter(h)

	body, _ := json.Marshal(TurnRequest{Input: "look around"})
	req := httptest.NewRequest(http.MethodPost, "/v1/session/00000000-0000-0000-0000-000000000000/turn", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	rtr.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
