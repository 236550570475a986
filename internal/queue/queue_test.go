package queue

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/outbreakrpg/engine/pkg/action"
	"github.com/outbreakrpg/engine/pkg/turn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestQueue(t *testing.T) (*SessionQueue, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	client, err := NewClient("redis://"+mr.Addr(), logger)
	require.NoError(t, err)

	return NewSessionQueue(client, logger), mr
}

func TestSessionQueueEnqueueDequeuePreservesOrder(t *testing.T) {
	q, mr := setupTestQueue(t)
	defer mr.Close()

	sessionID := uuid.New()
	ctx := context.Background()

	first := &Request{RequestID: "1", Type: RequestTypeCascade, SessionID: sessionID,
		CascadeActor: "Char_larry", CascadeEnv: action.Envelope{Kind: action.KindMove}, CascadeOrigin: turn.OriginGroupMove}
	second := &Request{RequestID: "2", Type: RequestTypeTurnRetry, SessionID: sessionID, RawInput: "action:do_nothing"}

	require.NoError(t, q.Enqueue(ctx, sessionID, first))
	require.NoError(t, q.Enqueue(ctx, sessionID, second))

	depth, err := q.Depth(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, depth)

	drained, err := q.DequeueAll(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, drained, 2)
	assert.Equal(t, RequestTypeCascade, drained[0].Type)
	assert.Equal(t, "Char_larry", drained[0].CascadeActor)
	assert.Equal(t, RequestTypeTurnRetry, drained[1].Type)
	assert.Equal(t, "action:do_nothing", drained[1].RawInput)

	depthAfter, err := q.Depth(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, depthAfter)
}

func TestSessionQueueDequeueAllEmptyReturnsNil(t *testing.T) {
	q, mr := setupTestQueue(t)
	defer mr.Close()

	drained, err := q.DequeueAll(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, drained)
}

func TestSessionQueueClearDropsWithoutReturning(t *testing.T) {
	q, mr := setupTestQueue(t)
	defer mr.Close()

	sessionID := uuid.New()
	ctx := context.Background()
	require.NoError(t, q.Enqueue(ctx, sessionID, &Request{RequestID: "1", Type: RequestTypeTurnRetry, SessionID: sessionID}))

	require.NoError(t, q.Clear(ctx, sessionID))

	depth, err := q.Depth(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, depth)
}
