// internal/api/dashboard/handlers.go
package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Pitchside/internal/api/apiutil"
	appdb "github.com/codr1/Pitchside/internal/db"
	"github.com/codr1/Pitchside/internal/models"
	"github.com/codr1/Pitchside/internal/stats"
)

const dashboardQueryTimeout = 5 * time.Second

type Handler struct {
	db *appdb.DB
}

func NewHandler(database *appdb.DB) *Handler {
	return &Handler{db: database}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/dashboard/summary", h.HandleSummary)
	mux.HandleFunc("GET /api/v1/dashboard/history", h.HandleHistory)
	mux.HandleFunc("GET /api/v1/dashboard/form", h.HandleForm)
}

// GET /api/v1/dashboard/summary
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	players, err := h.db.Queries.ListPlayersByRating(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load players for dashboard")
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	matches, err := h.loadMatches(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load matches for dashboard")
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	summary := stats.Summarize(models.PlayersFromDB(players), matches)
	if err := apiutil.WriteJSON(w, http.StatusOK, summary); err != nil {
		logger.Error().Err(err).Msg("Failed to write dashboard summary")
	}
}

// GET /api/v1/dashboard/history
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	matches, err := h.loadMatches(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load match history")
		http.Error(w, "Failed to load match history", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"history": stats.MatchHistory(matches)}); err != nil {
		logger.Error().Err(err).Msg("Failed to write match history")
	}
}

// GET /api/v1/dashboard/form serves the snapshot written by the form refresh job.
func (h *Handler) HandleForm(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	forms, err := h.db.Queries.ListPlayerForms(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load player form")
		http.Error(w, "Failed to load player form", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"form": forms}); err != nil {
		logger.Error().Err(err).Msg("Failed to write player form")
	}
}

func (h *Handler) loadMatches(ctx context.Context) ([]models.Match, error) {
	rows, err := h.db.Queries.ListMatchesChronological(ctx)
	if err != nil {
		return nil, err
	}
	matches := make([]models.Match, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, models.MatchFromDB(row, nil))
	}
	return matches, nil
}
