package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func serveLogged(t *testing.T, status int, target string) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)

	handler := Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", target, nil))

	return logs
}

func TestLogger_NamesTheCollection(t *testing.T) {
	logs := serveLogged(t, http.StatusOK, "/api/v2/analysis/graph?collection=notes")

	entries := logs.FilterMessage("request served").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "notes", fields["collection"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestLogger_LevelsFollowStatus(t *testing.T) {
	logs := serveLogged(t, http.StatusNotFound, "/api/v2/analysis/graph?collection=gone")
	entries := logs.FilterMessage("request rejected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)

	logs = serveLogged(t, http.StatusInternalServerError, "/api/v2/analysis/graph?collection=notes")
	entries = logs.FilterMessage("request failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)

	logs = serveLogged(t, http.StatusOK, "/health")
	entries = logs.FilterMessage("request served").All()
	require.Len(t, entries, 1)
	_, hasCollection := entries[0].ContextMap()["collection"]
	assert.False(t, hasCollection)
}
