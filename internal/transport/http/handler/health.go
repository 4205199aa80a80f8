package handler

import (
	"net/http"
	"time"
)

// HealthHandler reports liveness and whether object storage is configured.
type HealthHandler struct {
	storageConfigured bool
	now               func() time.Time
}

func NewHealthHandler(storageConfigured bool) *HealthHandler {
	return &HealthHandler{storageConfigured: storageConfigured, now: time.Now}
}

type healthEnvelope struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Storage   string `json:"storage"`
}

func (h *HealthHandler) Check(w http.ResponseWriter, _ *http.Request) {
	storage := "Not configured"
	if h.storageConfigured {
		storage = "Configured"
	}
	writeJSON(w, http.StatusOK, healthEnvelope{
		Status:    "OK",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
		Storage:   storage,
	})
}
