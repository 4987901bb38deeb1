/* routes.go
 * Contains the router for the JSON API
 */

package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds the handler tree for cfg
func NewRouter(cfg Config) http.Handler {
	s := &Server{api: cfg.API}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/load", s.loadHandler)
		r.Get("/games", s.gamesHandler)
		r.Get("/games/{id}", s.gameHandler)
		r.Get("/users", s.usersHandler)
		r.Get("/users/{id}/picks", s.userPicksHandler)
		r.Get("/leaderboard", s.leaderboardHandler)
		r.Post("/signin", s.signInHandler)
		r.Post("/picks", s.picksHandler)
		r.Post("/refresh", s.refreshHandler)
	})

	return r
}
