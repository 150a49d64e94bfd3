package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/codr1/Pitchside/internal/db"
	"github.com/codr1/Pitchside/internal/db/queries"
)

// CreatePlayer inserts a player with default attributes.
func CreatePlayer(t *testing.T, database *db.DB, name, position string, overall int64) queries.Player {
	t.Helper()

	player, err := database.Queries.CreatePlayer(context.Background(), queries.CreatePlayerParams{
		Name:          name,
		Position:      position,
		OverallRating: overall,
		Pace:          70,
		Shooting:      70,
		Passing:       70,
		Stamina:       70,
		Team:          "Club",
	})
	if err != nil {
		t.Fatalf("create player %q: %v", name, err)
	}
	return player
}

// CreateRoster inserts count players cycling through a 9-a-side shape with
// ratings descending from 90.
func CreateRoster(t *testing.T, database *db.DB, count int) []queries.Player {
	t.Helper()

	positions := []string{"GK", "CB", "CB", "CB", "CM", "CM", "CM", "ST", "ST"}
	players := make([]queries.Player, 0, count)
	for i := 0; i < count; i++ {
		players = append(players, CreatePlayer(t, database,
			fmt.Sprintf("Player %02d", i+1),
			positions[i%len(positions)],
			int64(90-i),
		))
	}
	return players
}

// CreateMatch inserts a match between the default team names.
func CreateMatch(t *testing.T, database *db.DB, date time.Time, scoreA, scoreB int64) queries.Match {
	t.Helper()

	match, err := database.Queries.CreateMatch(context.Background(), queries.CreateMatchParams{
		MatchDate:       date,
		TeamAName:       "Team Alpha",
		TeamBName:       "Team Beta",
		TeamAScore:      scoreA,
		TeamBScore:      scoreB,
		DurationMinutes: 90,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	return match
}

// RatePlayer records a rating row for player in match.
func RatePlayer(t *testing.T, database *db.DB, matchID, playerID int64, rating float64, goals int64) queries.MatchPlayerRating {
	t.Helper()

	row, err := database.Queries.CreateMatchRating(context.Background(), queries.CreateMatchRatingParams{
		MatchID:        matchID,
		PlayerID:       playerID,
		TeamName:       "Team Alpha",
		PositionPlayed: "CM",
		Rating:         rating,
		Goals:          goals,
		MinutesPlayed:  90,
	})
	if err != nil {
		t.Fatalf("rate player %d in match %d: %v", playerID, matchID, err)
	}
	return row
}
