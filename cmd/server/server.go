// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/codr1/Pitchside/internal/api"
	"github.com/codr1/Pitchside/internal/api/dashboard"
	"github.com/codr1/Pitchside/internal/api/matches"
	"github.com/codr1/Pitchside/internal/api/players"
	"github.com/codr1/Pitchside/internal/api/teams"
	"github.com/codr1/Pitchside/internal/config"
	"github.com/codr1/Pitchside/internal/db"
	"github.com/codr1/Pitchside/internal/ratelimit"
)

func newServer(cfg *config.Config, database *db.DB, limiter *ratelimit.Limiter) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      newHandler(cfg, database, limiter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func newHandler(cfg *config.Config, database *db.DB, limiter *ratelimit.Limiter) http.Handler {
	router := http.NewServeMux()
	registerRoutes(router, cfg, database, limiter)

	return api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
		api.WithCORS(cfg.CORS.AllowedOrigins),
	)
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config, database *db.DB, limiter *ratelimit.Limiter) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	players.NewHandler(database).RegisterRoutes(mux)
	matches.NewHandler(database).RegisterRoutes(mux)
	teams.NewHandler(database, limiter, cfg.Balancer.TrustProxy).RegisterRoutes(mux)
	dashboard.NewHandler(database).RegisterRoutes(mux)
}
