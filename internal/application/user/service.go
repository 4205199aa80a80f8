package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/homefix-api/internal/domain"
	"github.com/homefix-api/internal/pkg/id"
	"github.com/homefix-api/internal/pkg/password"
	"github.com/homefix-api/internal/pkg/validate"
)

// Client-facing registration messages.
const (
	MsgFieldsRequired   = "All fields are required"
	MsgInvalidPhone     = "Phone must be 8-15 digits, optionally starting with +"
	MsgInvalidEmail     = "Please enter a valid email address (e.g., user@example.com)"
	MsgPasswordMismatch = "Passwords do not match"
	MsgWeakPassword     = "Password must be at least 4 characters and contain both letters and numbers"
	MsgEmailTaken       = "Email already in use"
	MsgPhoneTaken       = "Phone number already in use"
	MsgCreateFailed     = "Failed to create user"
	MsgUserNotFound     = "User not found"
)

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, string, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type tokenIssuer interface {
	Issue(userID, email string) (string, error)
}

type service struct {
	repo   userStore
	tokens tokenIssuer
}

type ServiceDeps struct {
	UserRepo userStore
	Tokens   tokenIssuer
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.UserRepo, tokens: deps.Tokens}
}

// Register validates the request, creates the account and issues a token.
// Checks run in a fixed order and the first failure wins.
func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, string, error) {
	failed, err := validate.Failures(req)
	if err != nil {
		return nil, "", fmt.Errorf("validate register request: %w", err)
	}
	if msg := registerMessage(failed); msg != "" {
		return nil, "", domain.NewError(domain.ErrBadRequest, msg)
	}

	if taken, err := s.exists(ctx, s.repo.GetByEmail, req.Email); err != nil {
		return nil, "", err
	} else if taken {
		return nil, "", domain.NewError(domain.ErrConflict, MsgEmailTaken)
	}
	if taken, err := s.exists(ctx, s.repo.GetByPhone, req.Phone); err != nil {
		return nil, "", err
	} else if taken {
		return nil, "", domain.NewError(domain.ErrConflict, MsgPhoneTaken)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, "", err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        req.Email,
		Phone:        req.Phone,
		FullName:     req.FullName,
		PasswordHash: hash,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, "", domain.NewError(domain.ErrInternal, MsgCreateFailed).WithCause(err)
	}
	tok, err := s.tokens.Issue(u.UserID, u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

func (s *service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.repo.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewError(domain.ErrNotFound, MsgUserNotFound)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// registerMessage picks the message for the highest-priority failure:
// missing fields, phone, email, confirmation, then password strength.
func registerMessage(failed map[string]string) string {
	if len(failed) == 0 {
		return ""
	}
	for _, tag := range failed {
		if tag == "required" {
			return MsgFieldsRequired
		}
	}
	switch {
	case failed["Phone"] != "":
		return MsgInvalidPhone
	case failed["Email"] != "":
		return MsgInvalidEmail
	case failed["ConfirmPassword"] != "":
		return MsgPasswordMismatch
	case failed["Password"] != "":
		return MsgWeakPassword
	}
	return MsgFieldsRequired
}

func (s *service) exists(ctx context.Context, lookup func(context.Context, string) (*domain.User, error), key string) (bool, error) {
	_, err := lookup(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("lookup user: %w", err)
	}
}
