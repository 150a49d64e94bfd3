package queries

import (
	"context"
	"time"
)

const ratingColumns = `id, match_id, player_id, team_name, position_played, rating, goals, assists, minutes_played, created_at`

func scanRating(row scanner) (MatchPlayerRating, error) {
	var r MatchPlayerRating
	err := row.Scan(
		&r.ID,
		&r.MatchID,
		&r.PlayerID,
		&r.TeamName,
		&r.PositionPlayed,
		&r.Rating,
		&r.Goals,
		&r.Assists,
		&r.MinutesPlayed,
		&r.CreatedAt,
	)
	return r, err
}

const listMatchRatings = `SELECT ` + ratingColumns + `
FROM match_player_ratings
WHERE match_id = $1
ORDER BY team_name ASC, rating DESC, id ASC`

func (q *Queries) ListMatchRatings(ctx context.Context, matchID int64) ([]MatchPlayerRating, error) {
	rows, err := q.db.QueryContext(ctx, listMatchRatings, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []MatchPlayerRating{}
	for rows.Next() {
		r, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createMatchRating = `INSERT INTO match_player_ratings (match_id, player_id, team_name, position_played, rating, goals, assists, minutes_played)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + ratingColumns

type CreateMatchRatingParams struct {
	MatchID        int64
	PlayerID       int64
	TeamName       string
	PositionPlayed string
	Rating         float64
	Goals          int64
	Assists        int64
	MinutesPlayed  int64
}

func (q *Queries) CreateMatchRating(ctx context.Context, arg CreateMatchRatingParams) (MatchPlayerRating, error) {
	row := q.db.QueryRowContext(ctx, createMatchRating,
		arg.MatchID,
		arg.PlayerID,
		arg.TeamName,
		arg.PositionPlayed,
		arg.Rating,
		arg.Goals,
		arg.Assists,
		arg.MinutesPlayed,
	)
	return scanRating(row)
}

const deleteMatchRatings = `DELETE FROM match_player_ratings WHERE match_id = $1`

func (q *Queries) DeleteMatchRatings(ctx context.Context, matchID int64) error {
	_, err := q.db.ExecContext(ctx, deleteMatchRatings, matchID)
	return err
}

const listRatingHistory = `SELECT r.player_id, m.id, m.match_date, r.rating, r.goals, r.assists
FROM match_player_ratings r
JOIN matches m ON m.id = r.match_id
ORDER BY r.player_id ASC, m.match_date DESC, m.id DESC`

type RatingHistoryRow struct {
	PlayerID  int64
	MatchID   int64
	MatchDate time.Time
	Rating    float64
	Goals     int64
	Assists   int64
}

// ListRatingHistory returns every rating row grouped by player, newest match first.
func (q *Queries) ListRatingHistory(ctx context.Context) ([]RatingHistoryRow, error) {
	rows, err := q.db.QueryContext(ctx, listRatingHistory)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []RatingHistoryRow{}
	for rows.Next() {
		var i RatingHistoryRow
		if err := rows.Scan(
			&i.PlayerID,
			&i.MatchID,
			&i.MatchDate,
			&i.Rating,
			&i.Goals,
			&i.Assists,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
