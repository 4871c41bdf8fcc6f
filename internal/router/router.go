package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"supportchat-backend/internal/handlers"
	"supportchat-backend/internal/middleware"
	"supportchat-backend/internal/web"
)

// ChatSubmitPath is where the chat form posts its messages.
const ChatSubmitPath = "/api/v1/chat/messages"

const maxBodyBytes = 8 << 10

type Options struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	ChatRateLimit  int
}

func New(
	opts Options,
	jwtAuth *middleware.JWTAuth,
	healthHandler *handlers.HealthHandler,
	chatHandler *handlers.ChatHandler,
	authHandler *handlers.AuthHandler,
	settingsHandler *handlers.SettingsHandler,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(maxBodyBytes))
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	chatLimiter := middleware.NewRateLimiter("chat", opts.ChatRateLimit, time.Minute)
	// Admin login rate limiter (10 req/min per IP)
	loginLimiter := middleware.NewRateLimiter("admin_login", 10, time.Minute)

	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", web.StaticHandler()))

	// ──── Chat widget ────
	r.Get("/chat", chatHandler.Page)
	r.Get("/chat/block", chatHandler.Block)

	r.Route("/api/v1", func(r chi.Router) {
		r.With(chatLimiter.Middleware).Post("/chat/messages", chatHandler.Submit)

		// ──── Admin Routes ────
		r.Route("/admin", func(r chi.Router) {
			r.With(loginLimiter.Middleware).Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Get("/settings", settingsHandler.Get)
				r.Put("/settings", settingsHandler.Update)
			})
		})
	})

	return r
}
