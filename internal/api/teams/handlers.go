// internal/api/teams/handlers.go
package teams

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Pitchside/internal/api/apiutil"
	"github.com/codr1/Pitchside/internal/api/htmx"
	"github.com/codr1/Pitchside/internal/balancer"
	appdb "github.com/codr1/Pitchside/internal/db"
	"github.com/codr1/Pitchside/internal/db/queries"
	"github.com/codr1/Pitchside/internal/models"
	"github.com/codr1/Pitchside/internal/ratelimit"
	teamstempl "github.com/codr1/Pitchside/internal/templates/components/teams"
)

const (
	teamsQueryTimeout = 5 * time.Second

	// Fired on the client after the lineup fragment is swapped in.
	lineupsBalancedEvent = "lineups-balanced"
)

type balanceRequest struct {
	PlayerIDs []int64 `json:"playerIds"`
	Seed      *uint64 `json:"seed"`
}

type Handler struct {
	db         *appdb.DB
	limiter    *ratelimit.Limiter
	trustProxy bool
}

// NewHandler wires the balance endpoint. A nil limiter disables throttling.
func NewHandler(database *appdb.DB, limiter *ratelimit.Limiter, trustProxy bool) *Handler {
	return &Handler{db: database, limiter: limiter, trustProxy: trustProxy}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/teams/balance", h.HandleBalance)
	mux.HandleFunc("GET /api/v1/teams/formations", h.HandleFormations)
}

// POST /api/v1/teams/balance
func (h *Handler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var req balanceRequest
	if err := apiutil.DecodeOptionalJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamsQueryTimeout)
	defer cancel()

	roster, err := h.loadRoster(ctx, req.PlayerIDs)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to load roster for balancing")
		return
	}

	// Only requests that reach the balancer count toward the cooldown.
	if h.limiter != nil {
		clientIP := ratelimit.GetClientIP(r, h.trustProxy)
		if result := h.limiter.Allow(clientIP); !result.Allowed {
			ratelimit.LogRateLimitExceeded(r.Context(), "team_balance", clientIP, result)
			w.Header().Set("Retry-After", retryAfterSeconds(result.RetryAfter))
			http.Error(w, "Too many balance requests, try again shortly", http.StatusTooManyRequests)
			return
		}
	}

	var opts []balancer.Option
	if req.Seed != nil {
		opts = append(opts, balancer.WithSeed(*req.Seed))
	}
	result, err := balancer.New(opts...).Balance(roster)
	if err != nil {
		if errors.Is(err, balancer.ErrInsufficientPlayers) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		logger.Error().Err(err).Int("players", len(roster)).Msg("Failed to balance teams")
		http.Error(w, "Failed to balance teams", http.StatusInternalServerError)
		return
	}

	logger.Info().
		Int("players", len(roster)).
		Str("formation_a", result.TeamA.Formation.Name).
		Str("formation_b", result.TeamB.Formation.Name).
		Float64("rating_difference", result.RatingDifference).
		Msg("Teams balanced")

	if htmx.IsRequest(r) {
		headers, err := htmx.TriggerHeaders(lineupsBalancedEvent, map[string]any{
			"formationA":       result.TeamA.Formation.Name,
			"formationB":       result.TeamB.Formation.Name,
			"ratingDifference": result.RatingDifference,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to build lineup trigger header")
		}
		component := teamstempl.Lineup(teamstempl.NewLineupData(result, req.Seed))
		apiutil.RenderHTMLComponent(r.Context(), w, component, headers, "Failed to render lineups", "Failed to render lineups")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, result); err != nil {
		logger.Error().Err(err).Msg("Failed to write balance response")
	}
}

// GET /api/v1/teams/formations
func (h *Handler) HandleFormations(w http.ResponseWriter, r *http.Request) {
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"formations": balancer.Formations()}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write formations response")
	}
}

// loadRoster returns the requested players in request order, or the whole
// roster when ids is empty. Every requested id must exist. The balancer's
// stable sort keeps that order among equally rated players.
func (h *Handler) loadRoster(ctx context.Context, ids []int64) ([]balancer.Player, error) {
	var (
		rows []queries.Player
		err  error
	)
	unique := dedupe(ids)
	if len(unique) == 0 {
		rows, err = h.db.Queries.ListPlayersByRating(ctx)
	} else {
		rows, err = h.db.Queries.ListPlayersByIDs(ctx, unique)
	}
	if err != nil {
		return nil, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load players", Err: err}
	}

	if len(unique) > 0 {
		var missing []string
		rows, missing = inRequestOrder(rows, unique)
		if len(missing) > 0 {
			return nil, apiutil.HandlerError{
				Status:  http.StatusBadRequest,
				Message: fmt.Sprintf("unknown player ids: %s", strings.Join(missing, ", ")),
			}
		}
	}

	roster := make([]balancer.Player, 0, len(rows))
	for _, row := range rows {
		roster = append(roster, models.PlayerFromDB(row).ToBalancer())
	}
	return roster, nil
}

// inRequestOrder arranges rows to follow ids and reports the ids with no row.
func inRequestOrder(rows []queries.Player, ids []int64) ([]queries.Player, []string) {
	byID := make(map[int64]queries.Player, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	ordered := make([]queries.Player, 0, len(ids))
	var missing []string
	for _, id := range ids {
		row, ok := byID[id]
		if !ok {
			missing = append(missing, strconv.FormatInt(id, 10))
			continue
		}
		ordered = append(ordered, row)
	}
	return ordered, missing
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func retryAfterSeconds(d time.Duration) string {
	seconds := int(math.Ceil(d.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
