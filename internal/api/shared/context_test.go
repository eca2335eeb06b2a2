package shared

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	traced := SetTraceID(ctx)
	traceID := GetTraceID(traced)
	require.Len(t, traceID, 2*TraceIDLength)
	_, err := hex.DecodeString(traceID)
	assert.NoError(t, err)

	assert.Empty(t, GetTraceID(ctx), "parent context must not change")
	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(ctx)))
}

func TestGetTraceID_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestFallbackTraceID(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 42, time.UTC)
	id := fallbackTraceID(now)
	require.Len(t, id, 2*TraceIDLength)
	_, err := hex.DecodeString(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, fallbackTraceID(now.Add(time.Nanosecond)))
}

func TestSessionIDContext(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	tests := []struct {
		name   string
		ctx    context.Context
		wantID uuid.UUID
		wantOK bool
	}{
		{name: "present", ctx: WithSessionID(context.Background(), id), wantID: id, wantOK: true},
		{name: "missing", ctx: context.Background(), wantID: uuid.Nil},
		{name: "nil id", ctx: WithSessionID(context.Background(), uuid.Nil), wantID: uuid.Nil},
		{
			name:   "wrong type",
			ctx:    context.WithValue(context.Background(), SessionIDContextKey, id.String()),
			wantID: uuid.Nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := SessionIDFromContext(tc.ctx)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantID, got)
		})
	}
}
