package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/homefix-api/internal/application/user"
	"github.com/homefix-api/internal/domain"
	"github.com/homefix-api/internal/pkg/password"
	"github.com/homefix-api/internal/pkg/validate"
	"go.uber.org/zap"
)

// Client-facing login messages. Format messages are shared with registration.
const (
	MsgCredentialsRequired = "Email/Phone and password are required"
	MsgInvalidCredentials  = "Invalid credentials"
)

type Service interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.User, string, error)
	Logout(ctx context.Context, token, userID string) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}

type tokenService interface {
	Issue(userID, email string) (string, error)
	Revoke(ctx context.Context, token, userID string) error
}

type service struct {
	userRepo userStore
	tokens   tokenService
	log      *zap.Logger
	now      func() time.Time
}

type ServiceDeps struct {
	UserRepo userStore
	Tokens   tokenService
	Logger   *zap.Logger
}

func NewService(deps ServiceDeps) Service {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &service{userRepo: deps.UserRepo, tokens: deps.Tokens, log: log, now: time.Now}
}

// Login authenticates by email or phone. An unknown identifier and a wrong
// password produce the same error.
func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, string, error) {
	if err := validate.Struct(req); err != nil {
		return nil, "", domain.NewError(domain.ErrBadRequest, MsgCredentialsRequired)
	}

	lookup := s.userRepo.GetByPhone
	if validate.IsEmailIdentifier(req.EmailOrPhone) {
		if !validate.Email(req.EmailOrPhone) {
			return nil, "", domain.NewError(domain.ErrBadRequest, user.MsgInvalidEmail)
		}
		lookup = s.userRepo.GetByEmail
	} else if !validate.Phone(req.EmailOrPhone) {
		return nil, "", domain.NewError(domain.ErrBadRequest, user.MsgInvalidPhone)
	}

	u, err := lookup(ctx, req.EmailOrPhone)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", domain.NewError(domain.ErrUnauthorized, MsgInvalidCredentials)
	}
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	ok, err := password.Verify(req.Password, u.PasswordHash)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", domain.NewError(domain.ErrUnauthorized, MsgInvalidCredentials)
	}

	tok, err := s.tokens.Issue(u.UserID, u.Email)
	if err != nil {
		return nil, "", err
	}

	now := s.now().UTC()
	if err := s.userRepo.TouchLastLogin(ctx, u.UserID, now); err != nil {
		s.log.Warn("could not record last login", zap.String("user_id", u.UserID), zap.Error(err))
	} else {
		u.LastLogin = &now
	}
	return u, tok, nil
}

func (s *service) Logout(ctx context.Context, token, userID string) error {
	return s.tokens.Revoke(ctx, token, userID)
}
