package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/homefix-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// AuthEnvelope wraps login/register responses.
type AuthEnvelope struct {
	Message string    `json:"message"`
	User    *SafeUser `json:"user"`
	Token   string    `json:"token"`
}

// SafeUser is the public view of a user. The password hash never leaves the service.
type SafeUser struct {
	UserID     string     `json:"id"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	FullName   string     `json:"full_name"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  time.Time  `json:"created_at"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

func toSafeUser(u *domain.User) *SafeUser {
	if u == nil {
		return nil
	}
	return &SafeUser{
		UserID:     u.UserID,
		Email:      u.Email,
		Phone:      u.Phone,
		FullName:   u.FullName,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		LastLogin:  u.LastLogin,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// writeServiceError maps a service error to its status code. Errors without
// a client-facing message become a generic 500 with the cause as details.
func writeServiceError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		writeJSON(w, http.StatusInternalServerError, MessageEnvelope{
			Error:   "Internal server error",
			Details: err.Error(),
		})
		return
	}
	switch {
	case errors.Is(de.Kind, domain.ErrBadRequest),
		errors.Is(de.Kind, domain.ErrConflict),
		errors.Is(de.Kind, domain.ErrTooLarge):
		writeError(w, http.StatusBadRequest, de.Message)
	case errors.Is(de.Kind, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, de.Message)
	case errors.Is(de.Kind, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, de.Message)
	default:
		env := MessageEnvelope{Error: de.Message}
		if de.Cause != nil {
			env.Details = de.Cause.Error()
		}
		writeJSON(w, http.StatusInternalServerError, env)
	}
}
