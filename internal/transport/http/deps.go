package http

import (
	"github.com/homefix-api/internal/application/media"
	"github.com/homefix-api/internal/application/session"
	"github.com/homefix-api/internal/application/user"
	"github.com/homefix-api/internal/transport/http/middleware"
	"go.uber.org/zap"
)

// Deps holds the services and collaborators the router wires into handlers.
type Deps struct {
	Users    user.Service
	Sessions session.Service
	Media    media.Service
	Images   media.Service
	Tokens   middleware.TokenVerifier
	Logger   *zap.Logger

	StorageConfigured bool
}
