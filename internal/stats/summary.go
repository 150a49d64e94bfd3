// Package stats derives the club dashboard figures from the roster and the
// recorded match reports.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/codr1/Pitchside/internal/balancer"
	"github.com/codr1/Pitchside/internal/models"
)

type Summary struct {
	TotalPlayers   int                       `json:"totalPlayers"`
	AverageRating  float64                   `json:"averageRating"`
	PositionCounts map[balancer.Position]int `json:"positionCounts"`
	MatchesPlayed  int                       `json:"matchesPlayed"`
	TeamAWins      int                       `json:"teamAWins"`
	TeamBWins      int                       `json:"teamBWins"`
	Draws          int                       `json:"draws"`
	TeamAGoals     int                       `json:"teamAGoals"`
	TeamBGoals     int                       `json:"teamBGoals"`
	LastMatchDate  *time.Time                `json:"lastMatchDate,omitempty"`
}

type HistoryPoint struct {
	MatchID    int64     `json:"matchId"`
	Label      string    `json:"label"`
	MatchDate  time.Time `json:"matchDate"`
	TeamAName  string    `json:"teamAName"`
	TeamBName  string    `json:"teamBName"`
	TeamAScore int       `json:"teamAScore"`
	TeamBScore int       `json:"teamBScore"`
	Location   string    `json:"location"`
}

// Summarize aggregates the roster and match results. Every position appears
// in PositionCounts, with zero when nobody plays there.
func Summarize(players []models.Player, matches []models.Match) Summary {
	summary := Summary{
		TotalPlayers:   len(players),
		PositionCounts: make(map[balancer.Position]int, len(balancer.AllPositions)),
		MatchesPlayed:  len(matches),
	}
	for _, pos := range balancer.AllPositions {
		summary.PositionCounts[pos] = 0
	}

	total := 0
	for _, p := range players {
		total += p.OverallRating
		if p.Position.Valid() {
			summary.PositionCounts[p.Position]++
		}
	}
	summary.AverageRating = roundedMean(decimal.NewFromInt(int64(total)), len(players))

	for _, m := range matches {
		switch m.Result() {
		case "A":
			summary.TeamAWins++
		case "B":
			summary.TeamBWins++
		default:
			summary.Draws++
		}
		summary.TeamAGoals += m.TeamAScore
		summary.TeamBGoals += m.TeamBScore

		if summary.LastMatchDate == nil || m.MatchDate.After(*summary.LastMatchDate) {
			date := m.MatchDate
			summary.LastMatchDate = &date
		}
	}
	return summary
}

// MatchHistory returns chart points oldest first, labelled "Match 1", "Match 2", ...
func MatchHistory(matches []models.Match) []HistoryPoint {
	ordered := make([]models.Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].MatchDate.Equal(ordered[j].MatchDate) {
			return ordered[i].MatchDate.Before(ordered[j].MatchDate)
		}
		return ordered[i].ID < ordered[j].ID
	})

	points := make([]HistoryPoint, 0, len(ordered))
	for i, m := range ordered {
		points = append(points, HistoryPoint{
			MatchID:    m.ID,
			Label:      fmt.Sprintf("Match %d", i+1),
			MatchDate:  m.MatchDate,
			TeamAName:  m.TeamAName,
			TeamBName:  m.TeamBName,
			TeamAScore: m.TeamAScore,
			TeamBScore: m.TeamBScore,
			Location:   m.Location,
		})
	}
	return points
}

// roundedMean returns sum/count rounded half-up to one decimal, or 0 for an
// empty set.
func roundedMean(sum decimal.Decimal, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum.DivRound(decimal.NewFromInt(int64(count)), 1).InexactFloat64()
}
