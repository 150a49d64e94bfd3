package balancer

import (
	"fmt"
	"slices"
	"strings"
)

// Position is a player's tactical role on the pitch.
type Position string

const (
	GK  Position = "GK"
	CB  Position = "CB"
	LB  Position = "LB"
	RB  Position = "RB"
	CDM Position = "CDM"
	CM  Position = "CM"
	CAM Position = "CAM"
	LW  Position = "LW"
	RW  Position = "RW"
	ST  Position = "ST"
)

// AllPositions lists every role in roster display order.
var AllPositions = []Position{GK, CB, LB, RB, CDM, CM, CAM, LW, RW, ST}

// compatibility maps a native position to the slots it can cover well.
var compatibility = map[Position][]Position{
	GK:  {GK},
	CB:  {CB, LB, RB, CDM},
	LB:  {LB, CB, LW, CM},
	RB:  {RB, CB, RW, CM},
	CDM: {CDM, CM, CB, CAM},
	CM:  {CM, CDM, CAM, LW, RW},
	CAM: {CAM, CM, LW, RW, ST},
	LW:  {LW, CAM, ST, CM},
	RW:  {RW, CAM, ST, CM},
	ST:  {ST, CAM, LW, RW, CM},
}

// ParsePosition normalizes raw input into a known Position.
func ParsePosition(raw string) (Position, error) {
	p := Position(strings.ToUpper(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown position %q", raw)
	}
	return p, nil
}

func (p Position) Valid() bool {
	_, ok := compatibility[p]
	return ok
}

func (p Position) IsOutfield() bool {
	return p != GK
}

func (p Position) String() string {
	return string(p)
}

// CompatibleWith reports whether a player native to p can cover target.
func (p Position) CompatibleWith(target Position) bool {
	return slices.Contains(compatibility[p], target)
}

// positionScore rates how well a native position fits a target slot.
func positionScore(native, target Position) float64 {
	switch {
	case native == target:
		return 100
	case native.CompatibleWith(target):
		return 75
	case native.IsOutfield() && target.IsOutfield():
		return 50
	default:
		return 20
	}
}

// fitScore weights skill over positional fit, 70/30.
func fitScore(p Player, target Position) float64 {
	return float64(p.OverallRating)*0.7 + positionScore(p.Position, target)*0.3
}
