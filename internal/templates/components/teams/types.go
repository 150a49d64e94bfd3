package teams

import (
	"fmt"

	"github.com/codr1/Pitchside/internal/balancer"
)

type SlotView struct {
	Position      string
	PlayerName    string
	NativePos     string
	Rating        int
	OutOfPosition bool
}

type SquadView struct {
	Label         string
	Formation     string
	TotalRating   int
	AverageRating string
	Slots         []SlotView
}

type LineupData struct {
	TeamA            SquadView
	TeamB            SquadView
	RatingDifference string
	Seed             *uint64
}

func NewLineupData(result *balancer.MatchResult, seed *uint64) LineupData {
	return LineupData{
		TeamA:            newSquadView("Team A", result.TeamA),
		TeamB:            newSquadView("Team B", result.TeamB),
		RatingDifference: fmt.Sprintf("%.1f", result.RatingDifference),
		Seed:             seed,
	}
}

func newSquadView(label string, squad balancer.Squad) SquadView {
	view := SquadView{
		Label:         label,
		Formation:     squad.Formation.Name,
		TotalRating:   squad.TotalRating,
		AverageRating: fmt.Sprintf("%.1f", squad.AverageRating),
	}
	for _, slot := range squad.Lineup() {
		view.Slots = append(view.Slots, SlotView{
			Position:      slot.Position.String(),
			PlayerName:    slot.Player.Name,
			NativePos:     slot.Player.Position.String(),
			Rating:        slot.Player.OverallRating,
			OutOfPosition: slot.Player.Position != slot.Position,
		})
	}
	return view
}
