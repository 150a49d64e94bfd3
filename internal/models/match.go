// internal/models/match.go
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/codr1/Pitchside/internal/balancer"
	"github.com/codr1/Pitchside/internal/db/queries"
)

const (
	DefaultTeamAName       = "Team Alpha"
	DefaultTeamBName       = "Team Beta"
	DefaultMatchDuration   = 90
	maxMatchDuration       = 240
	maxMatchTeamNameLength = 60
	maxLocationLength      = 120
	minMatchRating         = 1.0
	maxMatchRating         = 10.0
	matchDateLayout        = "2006-01-02"
)

type Match struct {
	ID              int64         `json:"id"`
	MatchDate       time.Time     `json:"matchDate"`
	TeamAName       string        `json:"teamAName"`
	TeamBName       string        `json:"teamBName"`
	TeamAScore      int           `json:"teamAScore"`
	TeamBScore      int           `json:"teamBScore"`
	Location        string        `json:"location"`
	DurationMinutes int           `json:"durationMinutes"`
	Notes           string        `json:"notes"`
	Ratings         []MatchRating `json:"ratings"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

type MatchRating struct {
	ID             int64             `json:"id,omitempty"`
	PlayerID       int64             `json:"playerId"`
	TeamName       string            `json:"teamName"`
	PositionPlayed balancer.Position `json:"positionPlayed"`
	Rating         float64           `json:"rating"`
	Goals          int               `json:"goals"`
	Assists        int               `json:"assists"`
	MinutesPlayed  int               `json:"minutesPlayed"`
}

type MatchInput struct {
	MatchDate       string             `json:"matchDate"`
	TeamAName       string             `json:"teamAName"`
	TeamBName       string             `json:"teamBName"`
	TeamAScore      int                `json:"teamAScore"`
	TeamBScore      int                `json:"teamBScore"`
	Location        string             `json:"location"`
	DurationMinutes *int               `json:"durationMinutes"`
	Notes           string             `json:"notes"`
	Ratings         []MatchRatingInput `json:"ratings"`
}

type MatchRatingInput struct {
	PlayerID       int64   `json:"playerId"`
	TeamName       string  `json:"teamName"`
	PositionPlayed string  `json:"positionPlayed"`
	Rating         float64 `json:"rating"`
	Goals          int     `json:"goals"`
	Assists        int     `json:"assists"`
	MinutesPlayed  *int    `json:"minutesPlayed"`
}

// PlayerIDs returns the distinct player ids referenced by rating rows that
// will be kept.
func (in MatchInput) PlayerIDs() []int64 {
	seen := make(map[int64]struct{}, len(in.Ratings))
	ids := make([]int64, 0, len(in.Ratings))
	for _, r := range in.Ratings {
		if r.Rating <= 0 {
			continue
		}
		if _, ok := seen[r.PlayerID]; ok {
			continue
		}
		seen[r.PlayerID] = struct{}{}
		ids = append(ids, r.PlayerID)
	}
	return ids
}

// Normalize applies defaults and validates the match and its rating rows.
// roster maps player id to native position; it must contain every player
// referenced by a kept rating row.
func (in MatchInput) Normalize(roster map[int64]balancer.Position) (Match, error) {
	date, err := ParseMatchDate(in.MatchDate)
	if err != nil {
		return Match{}, err
	}

	m := Match{
		MatchDate:       date,
		TeamAName:       strings.TrimSpace(in.TeamAName),
		TeamBName:       strings.TrimSpace(in.TeamBName),
		TeamAScore:      in.TeamAScore,
		TeamBScore:      in.TeamBScore,
		Location:        strings.TrimSpace(in.Location),
		DurationMinutes: DefaultMatchDuration,
		Notes:           strings.TrimSpace(in.Notes),
	}
	if m.TeamAName == "" {
		m.TeamAName = DefaultTeamAName
	}
	if m.TeamBName == "" {
		m.TeamBName = DefaultTeamBName
	}
	if in.DurationMinutes != nil {
		m.DurationMinutes = *in.DurationMinutes
	}
	if err := m.validate(); err != nil {
		return Match{}, err
	}

	seen := make(map[int64]struct{}, len(in.Ratings))
	m.Ratings = make([]MatchRating, 0, len(in.Ratings))
	for i, row := range in.Ratings {
		// Unrated rows are left off the report.
		if row.Rating <= 0 {
			continue
		}
		rating, err := m.normalizeRating(row, roster)
		if err != nil {
			return Match{}, fmt.Errorf("ratings[%d]: %w", i, err)
		}
		if _, ok := seen[rating.PlayerID]; ok {
			return Match{}, fmt.Errorf("ratings[%d]: player %d is rated more than once", i, rating.PlayerID)
		}
		seen[rating.PlayerID] = struct{}{}
		m.Ratings = append(m.Ratings, rating)
	}
	return m, nil
}

func (m Match) validate() error {
	if m.TeamAName == m.TeamBName {
		return fmt.Errorf("team names must differ")
	}
	if len(m.TeamAName) > maxMatchTeamNameLength || len(m.TeamBName) > maxMatchTeamNameLength {
		return fmt.Errorf("team names must be %d characters or fewer", maxMatchTeamNameLength)
	}
	if m.TeamAScore < 0 || m.TeamBScore < 0 {
		return fmt.Errorf("scores must be 0 or greater")
	}
	if m.DurationMinutes < 1 || m.DurationMinutes > maxMatchDuration {
		return fmt.Errorf("duration_minutes must be between 1 and %d", maxMatchDuration)
	}
	if len(m.Location) > maxLocationLength {
		return fmt.Errorf("location must be %d characters or fewer", maxLocationLength)
	}
	return nil
}

func (m Match) normalizeRating(row MatchRatingInput, roster map[int64]balancer.Position) (MatchRating, error) {
	native, ok := roster[row.PlayerID]
	if !ok {
		return MatchRating{}, fmt.Errorf("player %d not found", row.PlayerID)
	}

	teamName := strings.TrimSpace(row.TeamName)
	if teamName != m.TeamAName && teamName != m.TeamBName {
		return MatchRating{}, fmt.Errorf("team_name must be %q or %q", m.TeamAName, m.TeamBName)
	}

	position := native
	if strings.TrimSpace(row.PositionPlayed) != "" {
		parsed, err := balancer.ParsePosition(row.PositionPlayed)
		if err != nil {
			return MatchRating{}, fmt.Errorf("position_played %q is not a valid position", row.PositionPlayed)
		}
		position = parsed
	}

	if row.Rating < minMatchRating || row.Rating > maxMatchRating {
		return MatchRating{}, fmt.Errorf("rating must be between %.0f and %.0f", minMatchRating, maxMatchRating)
	}
	if row.Goals < 0 || row.Assists < 0 {
		return MatchRating{}, fmt.Errorf("goals and assists must be 0 or greater")
	}

	minutes := m.DurationMinutes
	if row.MinutesPlayed != nil {
		minutes = *row.MinutesPlayed
	}
	if minutes < 0 || minutes > m.DurationMinutes {
		return MatchRating{}, fmt.Errorf("minutes_played must be between 0 and %d", m.DurationMinutes)
	}

	return MatchRating{
		PlayerID:       row.PlayerID,
		TeamName:       teamName,
		PositionPlayed: position,
		Rating:         row.Rating,
		Goals:          row.Goals,
		Assists:        row.Assists,
		MinutesPlayed:  minutes,
	}, nil
}

// ParseMatchDate accepts a calendar date or an RFC 3339 timestamp and returns
// midnight UTC of that date.
func ParseMatchDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("match_date is required")
	}
	if parsed, err := time.Parse(matchDateLayout, raw); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		y, mo, d := parsed.Date()
		return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("match_date must be a date like 2024-05-10")
}

// Result reports the outcome from team A's side: "A", "B" or "draw".
func (m Match) Result() string {
	switch {
	case m.TeamAScore > m.TeamBScore:
		return "A"
	case m.TeamBScore > m.TeamAScore:
		return "B"
	default:
		return "draw"
	}
}

func MatchFromDB(row queries.Match, ratings []queries.MatchPlayerRating) Match {
	m := Match{
		ID:              row.ID,
		MatchDate:       row.MatchDate.UTC(),
		TeamAName:       row.TeamAName,
		TeamBName:       row.TeamBName,
		TeamAScore:      int(row.TeamAScore),
		TeamBScore:      int(row.TeamBScore),
		Location:        row.Location,
		DurationMinutes: int(row.DurationMinutes),
		Notes:           row.Notes,
		Ratings:         make([]MatchRating, 0, len(ratings)),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	for _, r := range ratings {
		m.Ratings = append(m.Ratings, MatchRating{
			ID:             r.ID,
			PlayerID:       r.PlayerID,
			TeamName:       r.TeamName,
			PositionPlayed: balancer.Position(r.PositionPlayed),
			Rating:         r.Rating,
			Goals:          int(r.Goals),
			Assists:        int(r.Assists),
			MinutesPlayed:  int(r.MinutesPlayed),
		})
	}
	return m
}

func (m Match) CreateParams() queries.CreateMatchParams {
	return queries.CreateMatchParams{
		MatchDate:       m.MatchDate,
		TeamAName:       m.TeamAName,
		TeamBName:       m.TeamBName,
		TeamAScore:      int64(m.TeamAScore),
		TeamBScore:      int64(m.TeamBScore),
		Location:        m.Location,
		DurationMinutes: int64(m.DurationMinutes),
		Notes:           m.Notes,
	}
}

func (m Match) UpdateParams() queries.UpdateMatchParams {
	return queries.UpdateMatchParams{
		MatchDate:       m.MatchDate,
		TeamAName:       m.TeamAName,
		TeamBName:       m.TeamBName,
		TeamAScore:      int64(m.TeamAScore),
		TeamBScore:      int64(m.TeamBScore),
		Location:        m.Location,
		DurationMinutes: int64(m.DurationMinutes),
		Notes:           m.Notes,
		ID:              m.ID,
	}
}

func (r MatchRating) CreateParams(matchID int64) queries.CreateMatchRatingParams {
	return queries.CreateMatchRatingParams{
		MatchID:        matchID,
		PlayerID:       r.PlayerID,
		TeamName:       r.TeamName,
		PositionPlayed: r.PositionPlayed.String(),
		Rating:         r.Rating,
		Goals:          int64(r.Goals),
		Assists:        int64(r.Assists),
		MinutesPlayed:  int64(r.MinutesPlayed),
	}
}
