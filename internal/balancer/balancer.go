// Package balancer splits a rated roster into two 9-a-side squads, each
// assigned to a formation, keeping the squads' average ratings as close as
// the bounded search allows.
package balancer

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/shopspring/decimal"
)

const (
	SquadSize  = 9
	MinPlayers = 2 * SquadSize

	attemptsPerPairing = 10
	tierSize           = 6
	minAssigned        = SquadSize - 1
)

var ErrInsufficientPlayers = errors.New("need at least 18 players for two 9-a-side teams")

// Player is the balancer's view of a roster entry. Name and Team are carried
// through untouched.
type Player struct {
	ID            int64    `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Position      Position `json:"position" yaml:"position"`
	OverallRating int      `json:"overallRating" yaml:"overall_rating"`
	Team          string   `json:"team,omitempty" yaml:"team"`
}

// Squad holds nine players index-aligned with Formation.Positions.
type Squad struct {
	Players       []Player  `json:"players"`
	TotalRating   int       `json:"totalRating"`
	AverageRating float64   `json:"averageRating"`
	Formation     Formation `json:"formation"`
}

type Slot struct {
	Position Position `json:"position"`
	Player   Player   `json:"player"`
}

// Lineup pairs every formation slot with the player filling it.
func (s Squad) Lineup() []Slot {
	slots := make([]Slot, len(s.Players))
	for i, p := range s.Players {
		position := p.Position
		if i < len(s.Formation.Positions) {
			position = s.Formation.Positions[i]
		}
		slots[i] = Slot{Position: position, Player: p}
	}
	return slots
}

type MatchResult struct {
	TeamA            Squad   `json:"teamA"`
	TeamB            Squad   `json:"teamB"`
	RatingDifference float64 `json:"ratingDifference"`
}

type Option func(*Balancer)

// WithSeed fixes the shuffle source so results are reproducible.
func WithSeed(seed uint64) Option {
	return func(b *Balancer) {
		b.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(b *Balancer) {
		b.rng = rng
	}
}

// Balancer runs the team search. It owns its random source and is not safe
// for concurrent use; create one per request.
type Balancer struct {
	rng *rand.Rand
}

func New(opts ...Option) *Balancer {
	b := &Balancer{}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return b
}

// Balance is a convenience wrapper around a freshly seeded Balancer.
func Balance(players []Player) (*MatchResult, error) {
	return New().Balance(players)
}

// Balance tries every formation pairing with ten drafts each and returns the
// pairing with the smallest gap between average ratings. Drafts after the
// first shuffle players only within their skill tier.
func (b *Balancer) Balance(players []Player) (*MatchResult, error) {
	if len(players) < MinPlayers {
		return nil, fmt.Errorf("%w: have %d", ErrInsufficientPlayers, len(players))
	}

	sorted := slices.Clone(players)
	slices.SortStableFunc(sorted, func(a, b Player) int {
		return cmp.Compare(b.OverallRating, a.OverallRating)
	})

	var best *MatchResult
	var bestDiff decimal.Decimal
	for _, formationA := range formations {
		for _, formationB := range formations {
			for attempt := 0; attempt < attemptsPerPairing; attempt++ {
				order := slices.Clone(sorted)
				if attempt > 0 {
					b.shuffleTiers(order)
				}

				result, diff, ok := evaluate(order, formationA, formationB)
				if !ok {
					continue
				}
				if best == nil || diff.LessThan(bestDiff) {
					best, bestDiff = result, diff
				}
			}
		}
	}

	if best == nil {
		best = fallbackMatch(sorted)
	}
	return best, nil
}

// shuffleTiers permutes the top six, the next six and the remainder
// independently, in place.
func (b *Balancer) shuffleTiers(order []Player) {
	tiers := [][]Player{
		order[:tierSize],
		order[tierSize : 2*tierSize],
		order[2*tierSize:],
	}
	for _, tier := range tiers {
		b.rng.Shuffle(len(tier), func(i, j int) {
			tier[i], tier[j] = tier[j], tier[i]
		})
	}
}

func evaluate(order []Player, formationA, formationB Formation) (*MatchResult, decimal.Decimal, bool) {
	draftedA, draftedB := draft(order)

	playersA, restA := assignToFormation(draftedA, formationA)
	playersB, restB := assignToFormation(draftedB, formationB)
	if len(playersA) < minAssigned || len(playersB) < minAssigned {
		return nil, decimal.Zero, false
	}

	playersA = padSquad(playersA, restA)
	playersB = padSquad(playersB, restB)
	if len(playersA) != SquadSize || len(playersB) != SquadSize {
		return nil, decimal.Zero, false
	}

	result, diff := buildResult(playersA, formationA, playersB, formationB)
	return result, diff, true
}

// draft alternates the first 18 players between the two sides.
func draft(order []Player) (teamA, teamB []Player) {
	teamA = make([]Player, 0, SquadSize)
	teamB = make([]Player, 0, SquadSize)
	for i, p := range order[:MinPlayers] {
		if i%2 == 0 {
			teamA = append(teamA, p)
		} else {
			teamB = append(teamB, p)
		}
	}
	return teamA, teamB
}

// assignToFormation fills goalkeeper slots first, then each outfield slot in
// order with the best-fitting remaining player. It returns the assigned
// players and whoever was left over.
func assignToFormation(drafted []Player, formation Formation) (assigned, remaining []Player) {
	remaining = slices.Clone(drafted)
	assigned = make([]Player, 0, len(formation.Positions))

	for _, slot := range formation.Positions {
		if slot != GK || len(remaining) == 0 {
			continue
		}
		idx := slices.IndexFunc(remaining, func(p Player) bool { return p.Position == GK })
		if idx < 0 {
			idx = 0
		}
		assigned = append(assigned, remaining[idx])
		remaining = slices.Delete(remaining, idx, idx+1)
	}

	for _, slot := range formation.Positions {
		if slot == GK {
			continue
		}
		idx := bestFit(remaining, slot)
		if idx < 0 {
			continue
		}
		assigned = append(assigned, remaining[idx])
		remaining = slices.Delete(remaining, idx, idx+1)
	}

	return assigned, remaining
}

// bestFit returns the index of the highest scoring player for slot; the
// earliest player wins ties. It returns -1 for an empty pool.
func bestFit(pool []Player, slot Position) int {
	bestIdx := -1
	bestScore := -1.0
	for i, p := range pool {
		if score := fitScore(p, slot); score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	return bestIdx
}

func padSquad(assigned, remaining []Player) []Player {
	for len(assigned) < SquadSize && len(remaining) > 0 {
		assigned = append(assigned, remaining[0])
		remaining = remaining[1:]
	}
	return assigned
}

func buildResult(playersA []Player, formationA Formation, playersB []Player, formationB Formation) (*MatchResult, decimal.Decimal) {
	totalA, averageA := teamRating(playersA)
	totalB, averageB := teamRating(playersB)
	diff := averageA.Sub(averageB).Abs()

	return &MatchResult{
		TeamA: Squad{
			Players:       playersA,
			TotalRating:   totalA,
			AverageRating: averageA.InexactFloat64(),
			Formation:     formationA.clone(),
		},
		TeamB: Squad{
			Players:       playersB,
			TotalRating:   totalB,
			AverageRating: averageB.InexactFloat64(),
			Formation:     formationB.clone(),
		},
		RatingDifference: diff.InexactFloat64(),
	}, diff
}

// teamRating returns the summed rating and the average rounded half-up to one
// decimal place.
func teamRating(players []Player) (int, decimal.Decimal) {
	total := 0
	for _, p := range players {
		total += p.OverallRating
	}
	if len(players) == 0 {
		return 0, decimal.Zero
	}
	average := decimal.NewFromInt(int64(total)).DivRound(decimal.NewFromInt(int64(len(players))), 1)
	return total, average
}

// fallbackMatch puts the top nine against the next nine on the first
// formation without positional assignment.
func fallbackMatch(sorted []Player) *MatchResult {
	formation := formations[0]
	result, _ := buildResult(
		slices.Clone(sorted[:SquadSize]), formation,
		slices.Clone(sorted[SquadSize:MinPlayers]), formation,
	)
	return result
}
