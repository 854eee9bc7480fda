package cmd

import (
	"net/http"
	"time"

	"dating-backend/internal/handlers"
	"dating-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

type routerDeps struct {
	users       *handlers.UserHandler
	home        *handlers.HomeHandler
	matches     *handlers.MatchHandler
	chat        *handlers.ChatHandler
	userService middleware.TokenValidator
	cookieName  string
	staticDir   string // empty when assets are not served locally
}

func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler)

	r.Get("/", deps.home.Index)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/register", deps.users.Register)
		r.Post("/login", deps.users.Login)
		r.Post("/logout", deps.users.Logout)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(deps.userService, deps.cookieName))
			r.Get("/home", deps.home.Home)
			r.Get("/profile", deps.users.GetProfile)
			r.Put("/profile", deps.users.UpdateProfile)
			r.Get("/users/{user_id}", deps.users.GetUser)
			r.Get("/chat/{user_id}", deps.chat.GetConversation)
			r.Post("/chat/{user_id}", deps.chat.SendMessage)
			r.Post("/match/{user_id}", deps.matches.CreateMatch)
			r.Get("/match/{user_id}", deps.matches.GetMatchStatus)
			r.Get("/matches", deps.matches.ListMatches)
			r.Delete("/account", deps.users.DeleteAccount)
		})
	})

	if deps.staticDir != "" {
		fs := http.StripPrefix(staticPrefix+"/", http.FileServer(http.Dir(deps.staticDir)))
		r.Handle(staticPrefix+"/*", fs)
	}

	return r
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("req_id", chiMiddleware.GetReqID(r.Context())).
		Str("method", r.Method).
		Stringer("url", r.URL).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("Request handled")
}
