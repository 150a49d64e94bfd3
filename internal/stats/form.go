package stats

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidWindow = errors.New("form window must be greater than 0")

// RatingRow is one player's rating from one match.
type RatingRow struct {
	PlayerID  int64
	MatchID   int64
	MatchDate time.Time
	Rating    float64
	Goals     int
	Assists   int
}

type Form struct {
	PlayerID      int64     `json:"playerId"`
	Appearances   int       `json:"appearances"`
	AverageRating float64   `json:"averageRating"`
	Goals         int       `json:"goals"`
	Assists       int       `json:"assists"`
	LastMatchDate time.Time `json:"lastMatchDate"`
}

// PlayerForm computes each player's form over their most recent window
// rated matches. Results are ordered by player id.
func PlayerForm(rows []RatingRow, window int) ([]Form, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}

	ordered := make([]RatingRow, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.PlayerID != b.PlayerID {
			return a.PlayerID < b.PlayerID
		}
		if !a.MatchDate.Equal(b.MatchDate) {
			return a.MatchDate.After(b.MatchDate)
		}
		return a.MatchID > b.MatchID
	})

	forms := []Form{}
	var (
		current *Form
		sum     decimal.Decimal
	)
	flush := func() {
		if current == nil {
			return
		}
		current.AverageRating = roundedMean(sum, current.Appearances)
		forms = append(forms, *current)
	}

	for _, row := range ordered {
		if current == nil || current.PlayerID != row.PlayerID {
			flush()
			current = &Form{PlayerID: row.PlayerID, LastMatchDate: row.MatchDate}
			sum = decimal.Zero
		}
		if current.Appearances >= window {
			continue
		}
		current.Appearances++
		current.Goals += row.Goals
		current.Assists += row.Assists
		sum = sum.Add(decimal.NewFromFloat(row.Rating))
	}
	flush()

	return forms, nil
}
