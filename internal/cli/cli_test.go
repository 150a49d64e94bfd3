package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/codr1/Pitchside/internal/balancer"
)

func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

var rosterPositions = []string{"GK", "CB", "CB", "CB", "CM", "CM", "CM", "ST", "ST"}

func writeRoster(t *testing.T, count int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("players:\n")
	for i := 0; i < count; i++ {
		fmt.Fprintf(&b, "  - name: Player %02d\n    position: %s\n    overall_rating: %d\n",
			i+1, rosterPositions[i%len(rosterPositions)], 90-i)
	}
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	return path
}

func TestParseRoster(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		json    bool
		want    int
		wantErr string
	}{
		{
			name: "yaml list",
			data: "- name: Ana\n  position: gk\n  overall_rating: 80\n- name: Ben\n  position: ST\n  overall_rating: 75\n",
			want: 2,
		},
		{
			name: "yaml document",
			data: "players:\n  - name: Ana\n    position: CB\n    overall_rating: 80\n",
			want: 1,
		},
		{
			name: "json list",
			data: `[{"name":"Ana","position":"CM","overallRating":70}]`,
			json: true,
			want: 1,
		},
		{
			name: "json document",
			data: `{"players":[{"id":4,"name":"Ana","position":"CM","overallRating":70}]}`,
			json: true,
			want: 1,
		},
		{
			name:    "unknown position",
			data:    "- name: Ana\n  position: SW\n  overall_rating: 80\n",
			wantErr: "unknown position",
		},
		{
			name:    "rating out of range",
			data:    "- name: Ana\n  position: GK\n  overall_rating: 120\n",
			wantErr: "overall rating",
		},
		{
			name:    "missing name",
			data:    "- position: GK\n  overall_rating: 60\n",
			wantErr: "name is required",
		},
		{
			name:    "duplicate id",
			data:    "- id: 3\n  name: Ana\n  position: GK\n  overall_rating: 60\n- id: 3\n  name: Ben\n  position: GK\n  overall_rating: 60\n",
			wantErr: "duplicate id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players, err := parseRoster([]byte(tt.data), tt.json)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("parseRoster() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRoster() error = %v", err)
			}
			if len(players) != tt.want {
				t.Fatalf("parseRoster() = %d players, want %d", len(players), tt.want)
			}
		})
	}
}

func TestNormalizeRosterAssignsIDs(t *testing.T) {
	players, err := normalizeRoster([]balancer.Player{
		{Name: "Ana", Position: "gk", OverallRating: 70},
		{ID: 7, Name: "Ben", Position: balancer.ST, OverallRating: 70},
		{Name: "Cy", Position: balancer.CM, OverallRating: 70},
	})
	if err != nil {
		t.Fatalf("normalizeRoster() error = %v", err)
	}
	got := []int64{players[0].ID, players[1].ID, players[2].ID}
	want := []int64{8, 7, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("normalizeRoster() ids = %v, want %v", got, want)
		}
	}
	if players[0].Position != balancer.GK {
		t.Fatalf("normalizeRoster() position = %q, want GK", players[0].Position)
	}
}

func TestBalanceCommand(t *testing.T) {
	path := writeRoster(t, 18)

	out, err := executeCommand(newRootCmd(), "balance", "--roster", path, "--seed", "42")
	if err != nil {
		t.Fatalf("balance error = %v\n%s", err, out)
	}
	for _, want := range []string{"Team A", "Team B", "Rating difference", "seed 42", "Player 01"} {
		if !strings.Contains(out, want) {
			t.Fatalf("balance output missing %q:\n%s", want, out)
		}
	}

	again, err := executeCommand(newRootCmd(), "balance", "--roster", path, "--seed", "42")
	if err != nil {
		t.Fatalf("balance error = %v", err)
	}
	if again != out {
		t.Fatalf("balance with the same seed produced different output")
	}
}

func TestBalanceCommandJSON(t *testing.T) {
	path := writeRoster(t, 20)

	out, err := executeCommand(newRootCmd(), "balance", "-r", path, "--seed", "7", "--json")
	if err != nil {
		t.Fatalf("balance error = %v\n%s", err, out)
	}
	var result balancer.MatchResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode result: %v\n%s", err, out)
	}
	if len(result.TeamA.Players) != balancer.SquadSize || len(result.TeamB.Players) != balancer.SquadSize {
		t.Fatalf("squad sizes = %d/%d, want %d", len(result.TeamA.Players), len(result.TeamB.Players), balancer.SquadSize)
	}
}

func TestBalanceCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    func(t *testing.T) []string
		wantErr string
	}{
		{
			name:    "missing roster flag",
			args:    func(t *testing.T) []string { return []string{"balance"} },
			wantErr: "roster",
		},
		{
			name:    "too few players",
			args:    func(t *testing.T) []string { return []string{"balance", "--roster", writeRoster(t, 10)} },
			wantErr: "at least 18",
		},
		{
			name: "missing file",
			args: func(t *testing.T) []string {
				return []string{"balance", "--roster", filepath.Join(t.TempDir(), "nope.yaml")}
			},
			wantErr: "read roster",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(newRootCmd(), tt.args(t)...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("balance error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestFormationsCommand(t *testing.T) {
	out, err := executeCommand(newRootCmd(), "formations")
	if err != nil {
		t.Fatalf("formations error = %v", err)
	}
	for _, f := range balancer.Formations() {
		if !strings.Contains(out, f.Name) {
			t.Fatalf("formations output missing %q:\n%s", f.Name, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Ana", 5, "Ana"},
		{"Bartholomew", 5, "Bart…"},
		{"Zoë", 3, "Zoë"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
