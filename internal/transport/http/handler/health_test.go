package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	h := NewHealthHandler(true)
	h.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	rr := httptest.NewRecorder()
	h.Check(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "2024-05-01T12:00:00Z", body["timestamp"])
	assert.Equal(t, "Configured", body["storage"])
}

func TestHealth_StorageNotConfigured(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHealthHandler(false).Check(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, "Not configured", decodeBody(t, rr)["storage"])
}
