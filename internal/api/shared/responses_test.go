package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/wordflip/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tracedRequest returns a request whose context carries a fixed trace ID and
// a logger writing to buf.
func tracedRequest(buf *bytes.Buffer) *http.Request {
	log := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.WithValue(context.Background(), TraceIDKey, "test-trace-id")
	ctx = logger.WithLogger(ctx, log)
	return httptest.NewRequest(http.MethodGet, "/api/session", nil).WithContext(ctx)
}

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	RespondWithJSON(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusCreated,
		map[string]interface{}{"position": 3})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"position":3}`, w.Body.String())
}

func TestRespondWithJSON_EncodingError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := httptest.NewRecorder()
	RespondWithJSON(w, tracedRequest(&buf), http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), "failed to encode JSON response")
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := httptest.NewRecorder()
	RespondWithError(w, tracedRequest(&buf), http.StatusUnauthorized, "Invalid token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid token", resp.Error)
	assert.Equal(t, "test-trace-id", resp.TraceID)
	assert.NotContains(t, w.Body.String(), "401", "status code is not serialized")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		elevate   bool
		wantLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "level=ERROR"},
		{name: "client error", status: http.StatusBadRequest, wantLevel: "level=DEBUG"},
		{name: "elevated client error", status: http.StatusConflict, elevate: true, wantLevel: "level=WARN"},
		{name: "rate limited", status: http.StatusTooManyRequests, wantLevel: "level=WARN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			w := httptest.NewRecorder()
			var opts []ResponseOption
			if tc.elevate {
				opts = append(opts, WithElevatedLogLevel())
			}
			RespondWithErrorAndLog(w, tracedRequest(&buf), tc.status, "Something failed",
				errors.New("dial postgres://wordflip:hunter2@db:5432/wordflip failed"), opts...)

			assert.Equal(t, tc.status, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Something failed", resp.Error)
			assert.Equal(t, "test-trace-id", resp.TraceID)

			logs := buf.String()
			assert.Contains(t, logs, tc.wantLevel)
			assert.Contains(t, logs, "trace_id=test-trace-id")
			assert.Contains(t, logs, "error_type=")
			assert.NotContains(t, logs, "hunter2")
			assert.NotContains(t, w.Body.String(), "postgres")
		})
	}
}
