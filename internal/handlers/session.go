package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/outbreakrpg/engine/pkg/collab"
	"github.com/outbreakrpg/engine/pkg/event"
	"github.com/outbreakrpg/engine/pkg/pipeline"
	"github.com/outbreakrpg/engine/pkg/storage"
	"github.com/outbreakrpg/engine/pkg/undo"
	"github.com/outbreakrpg/engine/pkg/world"
)

// SessionHandler handles session creation and read-back.
// Routes:
// POST /v1/session      - start a new session from a world definition
// GET  /v1/session/{id} - read a session's current world view
type SessionHandler struct {
	logger  *slog.Logger
	storage storage.Storage
}

func NewSessionHandler(logger *slog.Logger, store storage.Storage) *SessionHandler {
	return &SessionHandler{logger: logger, storage: store}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}

// CreateSessionRequest names which world definition a new session starts from.
type CreateSessionRequest struct {
	WorldDef string `json:"world_def"`
}

// SessionView is the client-facing shape of a session: its id plus a
// read-only snapshot of what the player currently knows, per §6.1's
// WorldView rather than the full authoritative world.
type SessionView struct {
	ID        uuid.UUID        `json:"id"`
	PlayerUID world.UID        `json:"player_uid"`
	WorldView collab.WorldView `json:"world_view"`
	UndoDepth int              `json:"undo_depth"`
	Outcome   pipeline.Outcome `json:"outcome"`
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodGet:
		h.handleRead(w, r)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.WorldDef == "" {
		writeError(w, h.logger, http.StatusBadRequest, "request must name a world_def")
		return
	}

	wd, err := h.storage.GetWorldDef(r.Context(), req.WorldDef)
	if err != nil {
		h.logger.Warn("world definition not found", "world_def", req.WorldDef, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "unknown world definition: "+req.WorldDef)
		return
	}

	var playerUID world.UID
	for uid, c := range wd.Characters {
		if c.Controllable {
			playerUID = uid
			break
		}
	}
	if playerUID == "" {
		writeError(w, h.logger, http.StatusInternalServerError, "world definition has no controllable character")
		return
	}

	s := pipeline.NewGameSession(wd, event.NewManager(), playerUID)

	rec := &storage.SessionRecord{
		ID:        s.ID,
		PlayerUID: playerUID,
		World:     wd,
		CreatedAt: time.Now().Unix(),
	}
	if err := h.storage.SaveSession(r.Context(), s.ID, rec); err != nil {
		h.logger.Error("failed to save new session", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "failed to create session")
		return
	}

	player, _ := wd.Character(playerUID)
	writeJSON(w, h.logger, http.StatusCreated, sessionView(s.ID, wd, player, 0))
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid session id")
		return
	}

	rec, err := h.storage.LoadSession(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to load session", "id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "failed to load session")
		return
	}
	if rec == nil {
		writeError(w, h.logger, http.StatusNotFound, "session not found")
		return
	}

	player, ok := rec.World.Character(rec.PlayerUID)
	if !ok {
		writeError(w, h.logger, http.StatusInternalServerError, "session player missing from world")
		return
	}

	depth := 0
	if rec.Snapshots != nil {
		stack := undo.NewStack()
		if err := stack.UnmarshalJSON(rec.Snapshots); err == nil {
			depth = stack.Len()
		}
	}

	writeJSON(w, h.logger, http.StatusOK, sessionView(rec.ID, rec.World, player, depth))
}

func sessionView(id uuid.UUID, w *world.World, player *world.Character, undoDepth int) SessionView {
	return SessionView{
		ID:        id,
		PlayerUID: player.UID,
		WorldView: pipeline.BuildWorldView(w, player),
		UndoDepth: undoDepth,
		Outcome:   pipeline.ComputeOutcome(w, player),
	}
}
