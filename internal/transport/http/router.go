package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/homefix-api/internal/config"
	"github.com/homefix-api/internal/transport/http/handler"
	appmiddleware "github.com/homefix-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.Logger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.Tokens, deps.Logger)

	healthH := handler.NewHealthHandler(deps.StorageConfigured)
	userH := handler.NewUserHandler(deps.Users)
	sessionH := handler.NewSessionHandler(deps.Sessions)
	mediaH := handler.NewMediaHandler(deps.Media, handler.MediaResponseKeys)
	imageH := handler.NewMediaHandler(deps.Images, handler.ImageResponseKeys)

	// ── Public routes (no auth) ──────────────────────────────────────────
	r.Get("/health", healthH.Check)
	r.Post("/register", userH.Register)
	r.Post("/login", sessionH.Login)

	// ── Authenticated routes ─────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Post("/logout", sessionH.Logout)
		r.Get("/profile", userH.Profile)

		r.Route("/media", func(r chi.Router) {
			r.Post("/upload", mediaH.Upload)
			r.Get("/feed", mediaH.Feed)
			r.Get("/my-media", mediaH.ListMine)
			r.Delete("/{id}", mediaH.Delete)
		})
		r.Route("/images", func(r chi.Router) {
			r.Post("/upload", imageH.Upload)
			r.Get("/feed", imageH.Feed)
			r.Get("/my-images", imageH.ListMine)
			r.Delete("/{id}", imageH.Delete)
		})
	})

	return r
}
