package queries

import (
	"context"
	"time"
)

const deletePlayerForms = `DELETE FROM player_form`

func (q *Queries) DeletePlayerForms(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deletePlayerForms)
	return err
}

const upsertPlayerForm = `INSERT INTO player_form (player_id, appearances, average_rating, goals, assists, last_match_date, refreshed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (player_id) DO UPDATE SET
    appearances = excluded.appearances,
    average_rating = excluded.average_rating,
    goals = excluded.goals,
    assists = excluded.assists,
    last_match_date = excluded.last_match_date,
    refreshed_at = excluded.refreshed_at`

type UpsertPlayerFormParams struct {
	PlayerID      int64
	Appearances   int64
	AverageRating float64
	Goals         int64
	Assists       int64
	LastMatchDate time.Time
	RefreshedAt   time.Time
}

func (q *Queries) UpsertPlayerForm(ctx context.Context, arg UpsertPlayerFormParams) error {
	_, err := q.db.ExecContext(ctx, upsertPlayerForm,
		arg.PlayerID,
		arg.Appearances,
		arg.AverageRating,
		arg.Goals,
		arg.Assists,
		arg.LastMatchDate,
		arg.RefreshedAt,
	)
	return err
}

const listPlayerForms = `SELECT f.player_id, p.name, p.position, f.appearances, f.average_rating, f.goals, f.assists, f.last_match_date, f.refreshed_at
FROM player_form f
JOIN players p ON p.id = f.player_id
ORDER BY f.average_rating DESC, f.appearances DESC, p.name ASC`

type ListPlayerFormsRow struct {
	PlayerID      int64     `json:"playerId"`
	PlayerName    string    `json:"playerName"`
	Position      string    `json:"position"`
	Appearances   int64     `json:"appearances"`
	AverageRating float64   `json:"averageRating"`
	Goals         int64     `json:"goals"`
	Assists       int64     `json:"assists"`
	LastMatchDate time.Time `json:"lastMatchDate"`
	RefreshedAt   time.Time `json:"refreshedAt"`
}

func (q *Queries) ListPlayerForms(ctx context.Context) ([]ListPlayerFormsRow, error) {
	rows, err := q.db.QueryContext(ctx, listPlayerForms)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []ListPlayerFormsRow{}
	for rows.Next() {
		var i ListPlayerFormsRow
		if err := rows.Scan(
			&i.PlayerID,
			&i.PlayerName,
			&i.Position,
			&i.Appearances,
			&i.AverageRating,
			&i.Goals,
			&i.Assists,
			&i.LastMatchDate,
			&i.RefreshedAt,
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
