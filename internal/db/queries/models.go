package queries

import (
	"time"
)

type Player struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Position      string    `json:"position"`
	OverallRating int64     `json:"overallRating"`
	Pace          int64     `json:"pace"`
	Shooting      int64     `json:"shooting"`
	Passing       int64     `json:"passing"`
	Stamina       int64     `json:"stamina"`
	Team          string    `json:"team"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Match struct {
	ID              int64     `json:"id"`
	MatchDate       time.Time `json:"matchDate"`
	TeamAName       string    `json:"teamAName"`
	TeamBName       string    `json:"teamBName"`
	TeamAScore      int64     `json:"teamAScore"`
	TeamBScore      int64     `json:"teamBScore"`
	Location        string    `json:"location"`
	DurationMinutes int64     `json:"durationMinutes"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type MatchPlayerRating struct {
	ID             int64     `json:"id"`
	MatchID        int64     `json:"matchId"`
	PlayerID       int64     `json:"playerId"`
	TeamName       string    `json:"teamName"`
	PositionPlayed string    `json:"positionPlayed"`
	Rating         float64   `json:"rating"`
	Goals          int64     `json:"goals"`
	Assists        int64     `json:"assists"`
	MinutesPlayed  int64     `json:"minutesPlayed"`
	CreatedAt      time.Time `json:"createdAt"`
}

type PlayerForm struct {
	PlayerID      int64     `json:"playerId"`
	Appearances   int64     `json:"appearances"`
	AverageRating float64   `json:"averageRating"`
	Goals         int64     `json:"goals"`
	Assists       int64     `json:"assists"`
	LastMatchDate time.Time `json:"lastMatchDate"`
	RefreshedAt   time.Time `json:"refreshedAt"`
}
