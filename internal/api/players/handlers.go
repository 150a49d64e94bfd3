// internal/api/players/handlers.go
package players

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Pitchside/internal/api/apiutil"
	appdb "github.com/codr1/Pitchside/internal/db"
	"github.com/codr1/Pitchside/internal/db/queries"
	"github.com/codr1/Pitchside/internal/models"
)

const (
	playerQueryTimeout = 5 * time.Second
	playerIDParam      = "id"
	orderByRating      = "rating"
	orderByName        = "name"
	maxSearchLength    = 80
)

type Handler struct {
	db *appdb.DB
}

func NewHandler(database *appdb.DB) *Handler {
	return &Handler{db: database}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/players", h.HandleList)
	mux.HandleFunc("POST /api/v1/players", h.HandleCreate)
	mux.HandleFunc("GET /api/v1/players/{id}", h.HandleDetail)
	mux.HandleFunc("PUT /api/v1/players/{id}", h.HandleUpdate)
	mux.HandleFunc("DELETE /api/v1/players/{id}", h.HandleDelete)
}

// GET /api/v1/players?order=rating|name&q=name
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	order := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("order")))
	if order == "" {
		order = orderByRating
	}
	search := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(search) > maxSearchLength {
		http.Error(w, "q is too long", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	var (
		rows []queries.Player
		err  error
	)
	switch {
	case order != orderByRating && order != orderByName:
		http.Error(w, "order must be rating or name", http.StatusBadRequest)
		return
	case search != "":
		rows, err = h.db.Queries.SearchPlayers(ctx, queries.SearchPlayersParams{
			Name:        search,
			OrderByName: order == orderByName,
		})
	case order == orderByName:
		rows, err = h.db.Queries.ListPlayersByName(ctx)
	default:
		rows, err = h.db.Queries.ListPlayersByRating(ctx)
	}
	if err != nil {
		logger.Error().Err(err).Str("order", order).Str("q", search).Msg("Failed to list players")
		http.Error(w, "Failed to load players", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"players": models.PlayersFromDB(rows)}); err != nil {
		logger.Error().Err(err).Msg("Failed to write players response")
	}
}

// GET /api/v1/players/{id}
func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	playerID, err := apiutil.PathID(r, playerIDParam)
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	row, err := h.db.Queries.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to fetch player")
		http.Error(w, "Failed to load player", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, models.PlayerFromDB(row)); err != nil {
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to write player response")
	}
}

// POST /api/v1/players
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var req models.PlayerInput
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	player, err := req.Apply(models.NewPlayer())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	created, err := h.db.Queries.CreatePlayer(ctx, player.CreateParams())
	if err != nil {
		logger.Error().Err(err).Str("name", player.Name).Msg("Failed to create player")
		http.Error(w, "Failed to create player", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("player_id", created.ID).Str("position", created.Position).Msg("Player created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, models.PlayerFromDB(created)); err != nil {
		logger.Error().Err(err).Int64("player_id", created.ID).Msg("Failed to write player response")
	}
}

// PUT /api/v1/players/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	playerID, err := apiutil.PathID(r, playerIDParam)
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}

	var req models.PlayerInput
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	var updated queries.Player
	err = h.db.RunInTx(ctx, func(tx *appdb.DB) error {
		existing, err := tx.Queries.GetPlayer(ctx, playerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Player not found", Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load player", Err: err}
		}

		player, err := req.Apply(models.PlayerFromDB(existing))
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
		}

		updated, err = tx.Queries.UpdatePlayer(ctx, player.UpdateParams())
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to update player", Err: err}
		}
		return nil
	})
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to update player")
		return
	}

	logger.Info().Int64("player_id", playerID).Msg("Player updated")
	if err := apiutil.WriteJSON(w, http.StatusOK, models.PlayerFromDB(updated)); err != nil {
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to write player response")
	}
}

// DELETE /api/v1/players/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	playerID, err := apiutil.PathID(r, playerIDParam)
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	deleted, err := h.db.Queries.DeletePlayer(ctx, playerID)
	if err != nil {
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to delete player")
		http.Error(w, "Failed to delete player", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "Player not found", http.StatusNotFound)
		return
	}

	logger.Info().Int64("player_id", playerID).Msg("Player deleted")
	w.WriteHeader(http.StatusNoContent)
}
