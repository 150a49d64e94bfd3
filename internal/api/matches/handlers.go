// internal/api/matches/handlers.go
package matches

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Pitchside/internal/api/apiutil"
	"github.com/codr1/Pitchside/internal/balancer"
	appdb "github.com/codr1/Pitchside/internal/db"
	"github.com/codr1/Pitchside/internal/models"
)

const (
	matchQueryTimeout = 10 * time.Second
	matchIDParam      = "id"
)

type Handler struct {
	db *appdb.DB
}

func NewHandler(database *appdb.DB) *Handler {
	return &Handler{db: database}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/matches", h.HandleList)
	mux.HandleFunc("POST /api/v1/matches", h.HandleCreate)
	mux.HandleFunc("GET /api/v1/matches/{id}", h.HandleDetail)
	mux.HandleFunc("PUT /api/v1/matches/{id}", h.HandleUpdate)
	mux.HandleFunc("DELETE /api/v1/matches/{id}", h.HandleDelete)
}

// GET /api/v1/matches
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	rows, err := h.db.Queries.ListMatchesNewestFirst(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list matches")
		http.Error(w, "Failed to load matches", http.StatusInternalServerError)
		return
	}

	matches := make([]models.Match, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, models.MatchFromDB(row, nil))
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"matches": matches}); err != nil {
		logger.Error().Err(err).Msg("Failed to write matches response")
	}
}

// GET /api/v1/matches/{id}
func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	matchID, err := apiutil.PathID(r, matchIDParam)
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	match, err := loadMatch(ctx, h.db, matchID)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to fetch match")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, match); err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to write match response")
	}
}

// POST /api/v1/matches
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var req models.MatchInput
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	var saved models.Match
	err := h.db.RunInTx(ctx, func(tx *appdb.DB) error {
		match, err := normalize(ctx, tx, req)
		if err != nil {
			return err
		}

		row, err := tx.Queries.CreateMatch(ctx, match.CreateParams())
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to create match", Err: err}
		}
		if err := insertRatings(ctx, tx, row.ID, match.Ratings); err != nil {
			return err
		}

		saved, err = loadMatch(ctx, tx, row.ID)
		return err
	})
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to create match")
		return
	}

	logger.Info().
		Int64("match_id", saved.ID).
		Int("ratings", len(saved.Ratings)).
		Msg("Match report created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, saved); err != nil {
		logger.Error().Err(err).Int64("match_id", saved.ID).Msg("Failed to write match response")
	}
}

// PUT /api/v1/matches/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	matchID, err := apiutil.PathID(r, matchIDParam)
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	var req models.MatchInput
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	var saved models.Match
	err = h.db.RunInTx(ctx, func(tx *appdb.DB) error {
		if _, err := tx.Queries.GetMatch(ctx, matchID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Match not found", Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load match", Err: err}
		}

		match, err := normalize(ctx, tx, req)
		if err != nil {
			return err
		}
		match.ID = matchID

		if _, err := tx.Queries.UpdateMatch(ctx, match.UpdateParams()); err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to update match", Err: err}
		}
		if err := tx.Queries.DeleteMatchRatings(ctx, matchID); err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to update match", Err: err}
		}
		if err := insertRatings(ctx, tx, matchID, match.Ratings); err != nil {
			return err
		}

		saved, err = loadMatch(ctx, tx, matchID)
		return err
	})
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to update match")
		return
	}

	logger.Info().
		Int64("match_id", matchID).
		Int("ratings", len(saved.Ratings)).
		Msg("Match report updated")
	if err := apiutil.WriteJSON(w, http.StatusOK, saved); err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to write match response")
	}
}

// DELETE /api/v1/matches/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	matchID, err := apiutil.PathID(r, matchIDParam)
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	deleted, err := h.db.Queries.DeleteMatch(ctx, matchID)
	if err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to delete match")
		http.Error(w, "Failed to delete match", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "Match not found", http.StatusNotFound)
		return
	}

	logger.Info().Int64("match_id", matchID).Msg("Match report deleted")
	w.WriteHeader(http.StatusNoContent)
}

// normalize resolves the rated players' native positions and validates the
// report against them.
func normalize(ctx context.Context, tx *appdb.DB, req models.MatchInput) (models.Match, error) {
	players, err := tx.Queries.ListPlayersByIDs(ctx, req.PlayerIDs())
	if err != nil {
		return models.Match{}, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load players", Err: err}
	}
	roster := make(map[int64]balancer.Position, len(players))
	for _, p := range players {
		roster[p.ID] = balancer.Position(p.Position)
	}

	match, err := req.Normalize(roster)
	if err != nil {
		return models.Match{}, apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
	}
	return match, nil
}

func insertRatings(ctx context.Context, tx *appdb.DB, matchID int64, ratings []models.MatchRating) error {
	for _, rating := range ratings {
		if _, err := tx.Queries.CreateMatchRating(ctx, rating.CreateParams(matchID)); err != nil {
			if apiutil.IsUniqueViolation(err) {
				return apiutil.HandlerError{
					Status:  http.StatusConflict,
					Message: fmt.Sprintf("player %d is already rated for this match", rating.PlayerID),
					Err:     err,
				}
			}
			if apiutil.IsForeignKeyViolation(err) {
				return apiutil.HandlerError{
					Status:  http.StatusBadRequest,
					Message: fmt.Sprintf("player %d not found", rating.PlayerID),
					Err:     err,
				}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to save ratings", Err: err}
		}
	}
	return nil
}

func loadMatch(ctx context.Context, database *appdb.DB, matchID int64) (models.Match, error) {
	row, err := database.Queries.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Match{}, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Match not found", Err: err}
		}
		return models.Match{}, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load match", Err: err}
	}
	ratings, err := database.Queries.ListMatchRatings(ctx, matchID)
	if err != nil {
		return models.Match{}, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load match ratings", Err: err}
	}
	return models.MatchFromDB(row, ratings), nil
}
