package handler

import (
	"encoding/json"
	"net/http"

	"github.com/homefix-api/internal/application/session"
	"github.com/homefix-api/internal/domain"
	"github.com/homefix-api/internal/transport/http/middleware"
)

// SessionHandler handles login and logout.
type SessionHandler struct {
	svc session.Service
}

func NewSessionHandler(svc session.Service) *SessionHandler { return &SessionHandler{svc: svc} }

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, session.MsgCredentialsRequired)
		return
	}
	u, token, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{
		Message: "Login successful",
		User:    toSafeUser(u),
		Token:   token,
	})
}

// Logout revokes the bearer token the request was authenticated with.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	token, hasToken := middleware.TokenFromContext(r.Context())
	if !ok || !hasToken {
		writeError(w, http.StatusUnauthorized, middleware.MsgInvalid)
		return
	}
	if err := h.svc.Logout(r.Context(), token, claims.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Successfully logged out"})
}
