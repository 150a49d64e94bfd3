package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Pitchside/internal/db"
	"github.com/codr1/Pitchside/internal/db/queries"
	"github.com/codr1/Pitchside/internal/stats"
)

const (
	FormRefreshJobName = "player_form_refresh"
	formRefreshTimeout = 2 * time.Minute
)

// RegisterFormRefreshJob schedules the player form snapshot rebuild. The job
// also runs once as soon as the scheduler starts.
func RegisterFormRefreshJob(svc *Service, database *db.DB, cronExpr string, window int) (gocron.Job, error) {
	if database == nil {
		return nil, fmt.Errorf("form refresh job requires database")
	}

	jobLogger := log.With().
		Str("component", "player_form_refresh_job").
		Str("job_name", FormRefreshJobName).
		Str("cron", cronExpr).
		Int("window", window).
		Logger()

	return svc.AddJob(FormRefreshJobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), formRefreshTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		count, err := RefreshPlayerForm(ctx, database, window, time.Now().UTC())
		if err != nil {
			jobLogger.Error().Err(err).Msg("Failed to refresh player form")
			return
		}
		jobLogger.Info().Int("players", count).Msg("Player form refreshed")
	}, gocron.WithStartAt(gocron.WithStartImmediately()))
}

// RefreshPlayerForm recomputes every player's rolling form and replaces the
// player_form table in one transaction. It returns the number of rows written.
func RefreshPlayerForm(ctx context.Context, database *db.DB, window int, now time.Time) (int, error) {
	history, err := database.Queries.ListRatingHistory(ctx)
	if err != nil {
		return 0, fmt.Errorf("list rating history: %w", err)
	}

	rows := make([]stats.RatingRow, 0, len(history))
	for _, h := range history {
		rows = append(rows, stats.RatingRow{
			PlayerID:  h.PlayerID,
			MatchID:   h.MatchID,
			MatchDate: h.MatchDate,
			Rating:    h.Rating,
			Goals:     int(h.Goals),
			Assists:   int(h.Assists),
		})
	}

	forms, err := stats.PlayerForm(rows, window)
	if err != nil {
		return 0, err
	}

	err = database.RunInTx(ctx, func(tx *db.DB) error {
		if err := tx.Queries.DeletePlayerForms(ctx); err != nil {
			return fmt.Errorf("clear player form: %w", err)
		}
		for _, f := range forms {
			if err := tx.Queries.UpsertPlayerForm(ctx, queries.UpsertPlayerFormParams{
				PlayerID:      f.PlayerID,
				Appearances:   int64(f.Appearances),
				AverageRating: f.AverageRating,
				Goals:         int64(f.Goals),
				Assists:       int64(f.Assists),
				LastMatchDate: f.LastMatchDate,
				RefreshedAt:   now,
			}); err != nil {
				return fmt.Errorf("store form for player %d: %w", f.PlayerID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Ctx(ctx).Debug().Int("players", len(forms)).Msg("Player form snapshot replaced")
	return len(forms), nil
}
