package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/homefix-api/internal/application/session"
	"github.com/homefix-api/internal/domain"
	"github.com/homefix-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSessionSvc struct{ mock.Mock }

func (m *mockSessionSvc) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, string, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.String(1), args.Error(2)
	}
	return nil, "", args.Error(2)
}

func (m *mockSessionSvc) Logout(ctx context.Context, token, userID string) error {
	return m.Called(ctx, token, userID).Error(0)
}

func TestLogin_HappyPath(t *testing.T) {
	svc := &mockSessionSvc{}
	svc.On("Login", mock.Anything, domain.LoginRequest{EmailOrPhone: "ann@x.io", Password: "abc123"}).
		Return(&domain.User{UserID: "u1", Email: "ann@x.io"}, "signed", nil)
	h := NewSessionHandler(svc)

	body, _ := json.Marshal(map[string]string{"email_or_phone": "ann@x.io", "password": "abc123"})
	rr := httptest.NewRecorder()
	h.Login(rr, httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body)))

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody(t, rr)
	assert.Equal(t, "Login successful", resp["message"])
	assert.Equal(t, "signed", resp["token"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := &mockSessionSvc{}
	svc.On("Login", mock.Anything, mock.Anything).
		Return(nil, "", domain.NewError(domain.ErrUnauthorized, session.MsgInvalidCredentials))
	h := NewSessionHandler(svc)

	rr := httptest.NewRecorder()
	h.Login(rr, httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email_or_phone":"ann@x.io","password":"nope1"}`)))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, session.MsgInvalidCredentials, decodeBody(t, rr)["error"])
}

func TestLogin_InvalidBody(t *testing.T) {
	h := NewSessionHandler(&mockSessionSvc{})
	rr := httptest.NewRecorder()
	h.Login(rr, httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, session.MsgCredentialsRequired, decodeBody(t, rr)["error"])
}

// After logout the same token is refused by the auth middleware.
func TestLogout_ThenTokenIsRefused(t *testing.T) {
	v := newTestVerifier(t)
	svc := &mockSessionSvc{}
	svc.On("Logout", mock.Anything, mock.Anything, "u1").
		Run(func(args mock.Arguments) { v.revoked[args.String(1)] = true }).
		Return(nil)
	h := NewSessionHandler(svc)

	req := bearerReq(t, v, http.MethodPost, "/logout", "u1", nil)
	rr := httptest.NewRecorder()
	serveAuthed(v, http.HandlerFunc(h.Logout), rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Successfully logged out", decodeBody(t, rr)["message"])

	again := httptest.NewRequest(http.MethodGet, "/profile", nil)
	again.Header.Set("Authorization", req.Header.Get("Authorization"))
	rr = httptest.NewRecorder()
	serveAuthed(v, http.HandlerFunc(NewUserHandler(&mockUserSvc{}).Profile), rr, again)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, middleware.MsgRevoked, decodeBody(t, rr)["error"])
}
