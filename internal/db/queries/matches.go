package queries

import (
	"context"
	"time"
)

const matchColumns = `id, match_date, team_a_name, team_b_name, team_a_score, team_b_score, location, duration_minutes, notes, created_at, updated_at`

func scanMatch(row scanner) (Match, error) {
	var m Match
	err := row.Scan(
		&m.ID,
		&m.MatchDate,
		&m.TeamAName,
		&m.TeamBName,
		&m.TeamAScore,
		&m.TeamBScore,
		&m.Location,
		&m.DurationMinutes,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (q *Queries) listMatches(ctx context.Context, query string) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listMatchesNewestFirst = `SELECT ` + matchColumns + `
FROM matches
ORDER BY match_date DESC, id DESC`

func (q *Queries) ListMatchesNewestFirst(ctx context.Context) ([]Match, error) {
	return q.listMatches(ctx, listMatchesNewestFirst)
}

const listMatchesChronological = `SELECT ` + matchColumns + `
FROM matches
ORDER BY match_date ASC, id ASC`

func (q *Queries) ListMatchesChronological(ctx context.Context) ([]Match, error) {
	return q.listMatches(ctx, listMatchesChronological)
}

const getMatch = `SELECT ` + matchColumns + `
FROM matches
WHERE id = $1`

func (q *Queries) GetMatch(ctx context.Context, id int64) (Match, error) {
	return scanMatch(q.db.QueryRowContext(ctx, getMatch, id))
}

const createMatch = `INSERT INTO matches (match_date, team_a_name, team_b_name, team_a_score, team_b_score, location, duration_minutes, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + matchColumns

type CreateMatchParams struct {
	MatchDate       time.Time
	TeamAName       string
	TeamBName       string
	TeamAScore      int64
	TeamBScore      int64
	Location        string
	DurationMinutes int64
	Notes           string
}

func (q *Queries) CreateMatch(ctx context.Context, arg CreateMatchParams) (Match, error) {
	row := q.db.QueryRowContext(ctx, createMatch,
		arg.MatchDate,
		arg.TeamAName,
		arg.TeamBName,
		arg.TeamAScore,
		arg.TeamBScore,
		arg.Location,
		arg.DurationMinutes,
		arg.Notes,
	)
	return scanMatch(row)
}

const updateMatch = `UPDATE matches
SET match_date = $1,
    team_a_name = $2,
    team_b_name = $3,
    team_a_score = $4,
    team_b_score = $5,
    location = $6,
    duration_minutes = $7,
    notes = $8,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $9
RETURNING ` + matchColumns

type UpdateMatchParams struct {
	MatchDate       time.Time
	TeamAName       string
	TeamBName       string
	TeamAScore      int64
	TeamBScore      int64
	Location        string
	DurationMinutes int64
	Notes           string
	ID              int64
}

func (q *Queries) UpdateMatch(ctx context.Context, arg UpdateMatchParams) (Match, error) {
	row := q.db.QueryRowContext(ctx, updateMatch,
		arg.MatchDate,
		arg.TeamAName,
		arg.TeamBName,
		arg.TeamAScore,
		arg.TeamBScore,
		arg.Location,
		arg.DurationMinutes,
		arg.Notes,
		arg.ID,
	)
	return scanMatch(row)
}

const deleteMatch = `DELETE FROM matches WHERE id = $1`

func (q *Queries) DeleteMatch(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMatch, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
