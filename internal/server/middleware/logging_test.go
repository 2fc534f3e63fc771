package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := LoggingMiddleware(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/meals", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	logLine := buf.String()
	assert.Contains(t, logLine, "HTTP request")
	assert.Contains(t, logLine, "method=POST")
	assert.Contains(t, logLine, "path=/api/v1/meals")
	assert.Contains(t, logLine, "status=201")
}

func TestLoggingMiddleware_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := LoggingMiddleware(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/meals", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestLoggingWithSkip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := LoggingWithSkip(logger, []string{"/api/v1/health"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	// Health check не логируется
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Empty(t, buf.String())

	// Остальные пути логируются
	req = httptest.NewRequest(http.MethodGet, "/api/v1/meals", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Contains(t, buf.String(), "path=/api/v1/meals")
}
