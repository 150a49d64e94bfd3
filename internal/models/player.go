// internal/models/player.go
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/codr1/Pitchside/internal/balancer"
	"github.com/codr1/Pitchside/internal/db/queries"
)

const (
	maxPlayerNameLength = 80
	maxTeamLabelLength  = 40
	minAttribute        = 1
	maxAttribute        = 99

	// DefaultAttribute is applied to every rating attribute omitted on create.
	DefaultAttribute = 70
)

type Player struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Position      balancer.Position `json:"position"`
	OverallRating int               `json:"overallRating"`
	Pace          int               `json:"pace"`
	Shooting      int               `json:"shooting"`
	Passing       int               `json:"passing"`
	Stamina       int               `json:"stamina"`
	Team          string            `json:"team"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// PlayerInput carries the editable player fields. Nil fields leave the base
// value untouched when applied.
type PlayerInput struct {
	Name          *string `json:"name"`
	Position      *string `json:"position"`
	OverallRating *int    `json:"overallRating"`
	Pace          *int    `json:"pace"`
	Shooting      *int    `json:"shooting"`
	Passing       *int    `json:"passing"`
	Stamina       *int    `json:"stamina"`
	Team          *string `json:"team"`
}

func NewPlayer() Player {
	return Player{
		OverallRating: DefaultAttribute,
		Pace:          DefaultAttribute,
		Shooting:      DefaultAttribute,
		Passing:       DefaultAttribute,
		Stamina:       DefaultAttribute,
	}
}

// Apply overlays the input on base and validates the result.
func (in PlayerInput) Apply(base Player) (Player, error) {
	p := base
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Position != nil {
		pos, err := balancer.ParsePosition(*in.Position)
		if err != nil {
			return Player{}, fmt.Errorf("position %q is not a valid position", *in.Position)
		}
		p.Position = pos
	}
	if in.OverallRating != nil {
		p.OverallRating = *in.OverallRating
	}
	if in.Pace != nil {
		p.Pace = *in.Pace
	}
	if in.Shooting != nil {
		p.Shooting = *in.Shooting
	}
	if in.Passing != nil {
		p.Passing = *in.Passing
	}
	if in.Stamina != nil {
		p.Stamina = *in.Stamina
	}
	if in.Team != nil {
		p.Team = strings.TrimSpace(*in.Team)
	}
	if err := p.Validate(); err != nil {
		return Player{}, err
	}
	return p, nil
}

func (p Player) Validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxPlayerNameLength {
		return fmt.Errorf("name must be %d characters or fewer", maxPlayerNameLength)
	}
	if !p.Position.Valid() {
		return fmt.Errorf("position is required")
	}

	attributes := []struct {
		field string
		value int
	}{
		{"overall_rating", p.OverallRating},
		{"pace", p.Pace},
		{"shooting", p.Shooting},
		{"passing", p.Passing},
		{"stamina", p.Stamina},
	}
	for _, attr := range attributes {
		if attr.value < minAttribute || attr.value > maxAttribute {
			return fmt.Errorf("%s must be between %d and %d", attr.field, minAttribute, maxAttribute)
		}
	}

	team := strings.TrimSpace(p.Team)
	if team == "" {
		return fmt.Errorf("team is required")
	}
	if len(team) > maxTeamLabelLength {
		return fmt.Errorf("team must be %d characters or fewer", maxTeamLabelLength)
	}
	return nil
}

func PlayerFromDB(row queries.Player) Player {
	return Player{
		ID:            row.ID,
		Name:          row.Name,
		Position:      balancer.Position(row.Position),
		OverallRating: int(row.OverallRating),
		Pace:          int(row.Pace),
		Shooting:      int(row.Shooting),
		Passing:       int(row.Passing),
		Stamina:       int(row.Stamina),
		Team:          row.Team,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func PlayersFromDB(rows []queries.Player) []Player {
	players := make([]Player, 0, len(rows))
	for _, row := range rows {
		players = append(players, PlayerFromDB(row))
	}
	return players
}

func (p Player) ToBalancer() balancer.Player {
	return balancer.Player{
		ID:            p.ID,
		Name:          p.Name,
		Position:      p.Position,
		OverallRating: p.OverallRating,
		Team:          p.Team,
	}
}

func (p Player) CreateParams() queries.CreatePlayerParams {
	return queries.CreatePlayerParams{
		Name:          p.Name,
		Position:      p.Position.String(),
		OverallRating: int64(p.OverallRating),
		Pace:          int64(p.Pace),
		Shooting:      int64(p.Shooting),
		Passing:       int64(p.Passing),
		Stamina:       int64(p.Stamina),
		Team:          p.Team,
	}
}

func (p Player) UpdateParams() queries.UpdatePlayerParams {
	return queries.UpdatePlayerParams{
		Name:          p.Name,
		Position:      p.Position.String(),
		OverallRating: int64(p.OverallRating),
		Pace:          int64(p.Pace),
		Shooting:      int64(p.Shooting),
		Passing:       int64(p.Passing),
		Stamina:       int64(p.Stamina),
		Team:          p.Team,
		ID:            p.ID,
	}
}
