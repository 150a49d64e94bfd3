package balancer

// Formation is a 9-a-side shape: one slot per player, goalkeeper first.
type Formation struct {
	Name      string     `json:"name" yaml:"name"`
	Positions []Position `json:"positions" yaml:"positions"`
}

var formations = []Formation{
	{Name: "3-3-2", Positions: []Position{GK, CB, CB, CB, CM, CM, CM, ST, ST}},
	{Name: "3-2-3", Positions: []Position{GK, CB, CB, CB, CM, CM, LW, ST, RW}},
	{Name: "2-4-2", Positions: []Position{GK, CB, CB, CM, CM, CM, CM, ST, ST}},
	{Name: "3-4-1", Positions: []Position{GK, CB, CB, CB, CM, CM, CM, CM, ST}},
}

// Formations returns a copy of the formation catalog in search order.
func Formations() []Formation {
	out := make([]Formation, len(formations))
	for i, f := range formations {
		out[i] = f.clone()
	}
	return out
}

func (f Formation) clone() Formation {
	positions := make([]Position, len(f.Positions))
	copy(positions, f.Positions)
	return Formation{Name: f.Name, Positions: positions}
}
