package balancer

import (
	"math"
	"testing"
)

func TestFormationCatalog(t *testing.T) {
	if len(formations) != 4 {
		t.Fatalf("formation count = %d, want 4", len(formations))
	}
	for _, f := range formations {
		if len(f.Positions) != SquadSize {
			t.Fatalf("formation %s has %d slots, want %d", f.Name, len(f.Positions), SquadSize)
		}
		if f.Positions[0] != GK {
			t.Fatalf("formation %s starts with %s, want GK", f.Name, f.Positions[0])
		}
		for _, p := range f.Positions {
			if !p.Valid() {
				t.Fatalf("formation %s has unknown slot %q", f.Name, p)
			}
		}
	}
}

func TestFormationsReturnsCopy(t *testing.T) {
	catalog := Formations()
	catalog[0].Positions[0] = ST
	catalog[0].Name = "changed"

	if formations[0].Positions[0] != GK || formations[0].Name != "3-3-2" {
		t.Fatalf("Formations() exposed the shared catalog")
	}
}

func TestCompatibilityTable(t *testing.T) {
	for _, p := range AllPositions {
		entry := compatibility[p]
		if len(entry) == 0 {
			t.Fatalf("position %s has no compatibility entry", p)
		}
		if !p.CompatibleWith(p) {
			t.Fatalf("position %s is not compatible with itself", p)
		}
		for _, target := range entry {
			if !target.Valid() {
				t.Fatalf("position %s lists unknown target %q", p, target)
			}
		}
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		raw     string
		want    Position
		wantErr bool
	}{
		{raw: "GK", want: GK},
		{raw: " cam ", want: CAM},
		{raw: "st", want: ST},
		{raw: "", wantErr: true},
		{raw: "LWB", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			got, err := ParsePosition(test.raw)
			if test.wantErr {
				if err == nil {
					t.Fatalf("ParsePosition(%q) error = nil, want error", test.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePosition(%q) error = %v", test.raw, err)
			}
			if got != test.want {
				t.Fatalf("ParsePosition(%q) = %s, want %s", test.raw, got, test.want)
			}
		})
	}
}

func TestPositionScore(t *testing.T) {
	tests := []struct {
		name   string
		native Position
		target Position
		want   float64
	}{
		{name: "exact", native: CB, target: CB, want: 100},
		{name: "compatible", native: CB, target: LB, want: 75},
		{name: "compatible_reverse_missing", native: ST, target: CB, want: 50},
		{name: "keeper_outfield", native: GK, target: ST, want: 20},
		{name: "outfield_keeper", native: CM, target: GK, want: 20},
		{name: "keeper_keeper", native: GK, target: GK, want: 100},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := positionScore(test.native, test.target); got != test.want {
				t.Fatalf("positionScore(%s, %s) = %v, want %v", test.native, test.target, got, test.want)
			}
		})
	}
}

func TestFitScore(t *testing.T) {
	p := Player{Position: CB, OverallRating: 80}
	if got := fitScore(p, CB); math.Abs(got-86) > 1e-9 {
		t.Fatalf("fitScore(CB 80, CB) = %v, want 86", got)
	}
	if got := fitScore(p, GK); math.Abs(got-62) > 1e-9 {
		t.Fatalf("fitScore(CB 80, GK) = %v, want 62", got)
	}
}

func TestAssignToFormationPlacesKeeper(t *testing.T) {
	drafted := []Player{
		{ID: 1, Position: ST, OverallRating: 95},
		{ID: 2, Position: CM, OverallRating: 90},
		{ID: 3, Position: CB, OverallRating: 88},
		{ID: 4, Position: CB, OverallRating: 85},
		{ID: 5, Position: CM, OverallRating: 80},
		{ID: 6, Position: ST, OverallRating: 78},
		{ID: 7, Position: CB, OverallRating: 75},
		{ID: 8, Position: CM, OverallRating: 70},
		{ID: 9, Position: GK, OverallRating: 60},
	}

	assigned, remaining := assignToFormation(drafted, formations[0])
	if len(assigned) != SquadSize {
		t.Fatalf("assigned %d players, want %d", len(assigned), SquadSize)
	}
	if len(remaining) != 0 {
		t.Fatalf("remaining = %d players, want 0", len(remaining))
	}
	if assigned[0].ID != 9 {
		t.Fatalf("goalkeeper slot = player %d, want 9", assigned[0].ID)
	}
}

func TestAssignToFormationWithoutKeeper(t *testing.T) {
	drafted := []Player{
		{ID: 1, Position: ST, OverallRating: 95},
		{ID: 2, Position: CM, OverallRating: 90},
		{ID: 3, Position: CB, OverallRating: 88},
		{ID: 4, Position: CB, OverallRating: 85},
		{ID: 5, Position: CM, OverallRating: 80},
		{ID: 6, Position: ST, OverallRating: 78},
		{ID: 7, Position: CB, OverallRating: 75},
		{ID: 8, Position: CM, OverallRating: 70},
		{ID: 9, Position: CDM, OverallRating: 60},
	}

	assigned, _ := assignToFormation(drafted, formations[0])
	if assigned[0].ID != 1 {
		t.Fatalf("goalkeeper slot = player %d, want first remaining player 1", assigned[0].ID)
	}
}

func TestAssignToFormationGreedySlots(t *testing.T) {
	drafted := []Player{
		{ID: 1, Position: GK, OverallRating: 70},
		{ID: 2, Position: ST, OverallRating: 90},
		{ID: 3, Position: CB, OverallRating: 80},
		{ID: 4, Position: CB, OverallRating: 80},
		{ID: 5, Position: CB, OverallRating: 80},
		{ID: 6, Position: CM, OverallRating: 75},
		{ID: 7, Position: CM, OverallRating: 75},
		{ID: 8, Position: CM, OverallRating: 75},
		{ID: 9, Position: ST, OverallRating: 70},
	}

	assigned, _ := assignToFormation(drafted, formations[0])
	// The ST rated 90 loses the CB slots (78 vs 86) but takes the first CM
	// slot, since CM is in a striker's compatibility set (85.5 vs 82.5).
	wantIDs := []int64{1, 3, 4, 5, 2, 6, 7, 9, 8}
	for i, want := range wantIDs {
		if assigned[i].ID != want {
			t.Fatalf("slot %d (%s) = player %d, want %d", i, formations[0].Positions[i], assigned[i].ID, want)
		}
	}
}

func TestBestFitTiesKeepEarliest(t *testing.T) {
	pool := []Player{
		{ID: 1, Position: CM, OverallRating: 70},
		{ID: 2, Position: CM, OverallRating: 70},
	}
	if got := bestFit(pool, CM); got != 0 {
		t.Fatalf("bestFit() = %d, want 0", got)
	}
	if got := bestFit(nil, CM); got != -1 {
		t.Fatalf("bestFit(nil) = %d, want -1", got)
	}
}

func TestPadSquad(t *testing.T) {
	assigned := make([]Player, 8)
	remaining := []Player{{ID: 10}, {ID: 11}}

	padded := padSquad(assigned, remaining)
	if len(padded) != SquadSize {
		t.Fatalf("padSquad() length = %d, want %d", len(padded), SquadSize)
	}
	if padded[8].ID != 10 {
		t.Fatalf("padSquad() appended player %d, want 10", padded[8].ID)
	}
}

func TestLineupAlignsSlots(t *testing.T) {
	drafted := []Player{
		{ID: 1, Position: GK, OverallRating: 70},
		{ID: 2, Position: ST, OverallRating: 90},
		{ID: 3, Position: CB, OverallRating: 80},
		{ID: 4, Position: CB, OverallRating: 80},
		{ID: 5, Position: CB, OverallRating: 80},
		{ID: 6, Position: CM, OverallRating: 75},
		{ID: 7, Position: LW, OverallRating: 75},
		{ID: 8, Position: RW, OverallRating: 75},
		{ID: 9, Position: CM, OverallRating: 70},
	}
	formation := formations[1]
	assigned, _ := assignToFormation(drafted, formation)
	result, _ := buildResult(assigned, formation, assigned, formation)

	lineup := result.TeamA.Lineup()
	if lineup[0].Player.ID != 1 {
		t.Fatalf("lineup GK = player %d, want 1", lineup[0].Player.ID)
	}
	for i, slot := range lineup {
		if slot.Position != formation.Positions[i] {
			t.Fatalf("lineup slot %d = %s, want %s", i, slot.Position, formation.Positions[i])
		}
	}
}
