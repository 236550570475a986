package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/outbreakrpg/engine/internal/queue"
	"github.com/outbreakrpg/engine/pkg/event"
	"github.com/outbreakrpg/engine/pkg/pipeline"
	"github.com/outbreakrpg/engine/pkg/storage"
)

// TurnHandler drives one player input through the Turn Pipeline.
// Route: POST /v1/session/{id}/turn
//
// Active events (fights, blockades, conversations) are not part of a
// persisted SessionRecord, only the world and undo history are — a session
// reloaded after a process restart starts with a clean event.Manager, in
// which CheckForEventTriggersAfterAction re-spawns fights from standing
// hostility the next time an actor moves or acts. Blockades and
// conversations are not restored.
type TurnHandler struct {
	logger   *slog.Logger
	storage  storage.Storage
	pipeline *pipeline.Pipeline
	queue    *queue.SessionQueue
}

// NewTurnHandler builds a TurnHandler. sessionQueue may be nil, in which
// case a turn that panics mid-execution is simply reported as a failure
// rather than queued for retry.
func NewTurnHandler(logger *slog.Logger, store storage.Storage, p *pipeline.Pipeline, sessionQueue *queue.SessionQueue) *TurnHandler {
	return &TurnHandler{logger: logger, storage: store, pipeline: p, queue: sessionQueue}
}

// drainRetries replays any turn inputs a prior crashed request queued for
// sessionID before this request's own input runs, so a retry never leapfrogs
// the turn that was in flight when the process died.
func (h *TurnHandler) drainRetries(ctx context.Context, id uuid.UUID, s *pipeline.GameSession) {
	if h.queue == nil {
		return
	}
	pending, err := h.queue.DequeueAll(ctx, id)
	if err != nil {
		h.logger.Warn("failed to drain queued retries", "id", id, "error", err)
		return
	}
	for _, req := range pending {
		if req.Type != queue.RequestTypeTurnRetry {
			continue
		}
		h.logger.Info("replaying queued turn retry", "id", id, "enqueued_at", req.EnqueuedAt)
		h.pipeline.RunTurn(ctx, s, req.RawInput)
	}
}

// runTurnSafely recovers a panic from inside the pipeline so one bad turn
// can be queued for retry instead of taking the whole server down.
func (h *TurnHandler) runTurnSafely(ctx context.Context, id uuid.UUID, s *pipeline.GameSession, input string) (result pipeline.TurnResult, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("turn execution panicked, queueing for retry", "id", id, "panic", r)
			failed = true
			if h.queue != nil {
				_ = h.queue.Enqueue(ctx, id, &queue.Request{
					RequestID: uuid.NewString(),
					Type:      queue.RequestTypeTurnRetry,
					SessionID: id,
					RawInput:  input,
				})
			}
		}
	}()
	result = h.pipeline.RunTurn(ctx, s, input)
	return result, false
}

// TurnRequest is the player's raw input for this turn.
type TurnRequest struct {
	Input string `json:"input"`
}

// TurnResponse carries back the narration and outcome for this turn.
type TurnResponse struct {
	Narration string           `json:"narration"`
	Outcome   pipeline.Outcome `json:"outcome"`
}

func (h *TurnHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid session id")
		return
	}

	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Input == "" {
		writeError(w, h.logger, http.StatusBadRequest, "request must include non-empty input")
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

	s := pipeline.NewGameSession(rec.World, event.NewManager(), rec.PlayerUID)
	s.ID = rec.ID
	if rec.Snapshots != nil {
		if err := s.Undo.UnmarshalJSON(rec.Snapshots); err != nil {
			h.logger.Warn("failed to restore undo history, starting fresh", "id", id, "error", err)
		}
	}

	h.drainRetries(r.Context(), id, s)

	result, failed := h.runTurnSafely(r.Context(), id, s, req.Input)

	snapshots, err := json.Marshal(s.Undo)
	if err != nil {
		h.logger.Error("failed to marshal undo history", "id", id, "error", err)
	}
	rec.Snapshots = snapshots
	if err := h.storage.SaveSession(r.Context(), id, rec); err != nil {
		h.logger.Error("failed to save session after turn", "id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "failed to save turn result")
		return
	}

	if failed {
		msg := "turn failed"
		if h.queue != nil {
			msg = "turn failed and has been queued for retry"
		}
		writeError(w, h.logger, http.StatusServiceUnavailable, msg)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, TurnResponse{Narration: result.Narration, Outcome: result.Outcome})
}
