package queries

import (
	"context"
	"fmt"
	"strings"
)

const playerColumns = `id, name, position, overall_rating, pace, shooting, passing, stamina, team, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (Player, error) {
	var p Player
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Position,
		&p.OverallRating,
		&p.Pace,
		&p.Shooting,
		&p.Passing,
		&p.Stamina,
		&p.Team,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (q *Queries) listPlayers(ctx context.Context, query string, args ...any) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listPlayersByRating = `SELECT ` + playerColumns + `
FROM players
ORDER BY overall_rating DESC, id ASC`

func (q *Queries) ListPlayersByRating(ctx context.Context) ([]Player, error) {
	return q.listPlayers(ctx, listPlayersByRating)
}

const listPlayersByName = `SELECT ` + playerColumns + `
FROM players
ORDER BY name ASC, id ASC`

func (q *Queries) ListPlayersByName(ctx context.Context) ([]Player, error) {
	return q.listPlayers(ctx, listPlayersByName)
}

const searchPlayersByRating = `SELECT ` + playerColumns + `
FROM players
WHERE LOWER(name) LIKE $1 ESCAPE '\'
ORDER BY overall_rating DESC, id ASC`

const searchPlayersByName = `SELECT ` + playerColumns + `
FROM players
WHERE LOWER(name) LIKE $1 ESCAPE '\'
ORDER BY name ASC, id ASC`

type SearchPlayersParams struct {
	// Matched case-insensitively anywhere in the name; LIKE wildcards are literal.
	Name        string
	OrderByName bool
}

func (q *Queries) SearchPlayers(ctx context.Context, arg SearchPlayersParams) ([]Player, error) {
	query := searchPlayersByRating
	if arg.OrderByName {
		query = searchPlayersByName
	}
	return q.listPlayers(ctx, query, containsPattern(arg.Name))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// ListPlayersByIDs returns the matching players ordered by rating. Unknown
// IDs are silently absent from the result.
func (q *Queries) ListPlayersByIDs(ctx context.Context, ids []int64) ([]Player, error) {
	if len(ids) == 0 {
		return []Player{}, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := `SELECT ` + playerColumns + `
FROM players
WHERE id IN (` + strings.Join(placeholders, ", ") + `)
ORDER BY overall_rating DESC, id ASC`
	return q.listPlayers(ctx, query, args...)
}

const getPlayer = `SELECT ` + playerColumns + `
FROM players
WHERE id = $1`

func (q *Queries) GetPlayer(ctx context.Context, id int64) (Player, error) {
	return scanPlayer(q.db.QueryRowContext(ctx, getPlayer, id))
}

const createPlayer = `INSERT INTO players (name, position, overall_rating, pace, shooting, passing, stamina, team)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + playerColumns

type CreatePlayerParams struct {
	Name          string
	Position      string
	OverallRating int64
	Pace          int64
	Shooting      int64
	Passing       int64
	Stamina       int64
	Team          string
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (Player, error) {
	row := q.db.QueryRowContext(ctx, createPlayer,
		arg.Name,
		arg.Position,
		arg.OverallRating,
		arg.Pace,
		arg.Shooting,
		arg.Passing,
		arg.Stamina,
		arg.Team,
	)
	return scanPlayer(row)
}

const updatePlayer = `UPDATE players
SET name = $1,
    position = $2,
    overall_rating = $3,
    pace = $4,
    shooting = $5,
    passing = $6,
    stamina = $7,
    team = $8,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $9
RETURNING ` + playerColumns

type UpdatePlayerParams struct {
	Name          string
	Position      string
	OverallRating int64
	Pace          int64
	Shooting      int64
	Passing       int64
	Stamina       int64
	Team          string
	ID            int64
}

func (q *Queries) UpdatePlayer(ctx context.Context, arg UpdatePlayerParams) (Player, error) {
	row := q.db.QueryRowContext(ctx, updatePlayer,
		arg.Name,
		arg.Position,
		arg.OverallRating,
		arg.Pace,
		arg.Shooting,
		arg.Passing,
		arg.Stamina,
		arg.Team,
		arg.ID,
	)
	return scanPlayer(row)
}

const deletePlayer = `DELETE FROM players WHERE id = $1`

func (q *Queries) DeletePlayer(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deletePlayer, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
