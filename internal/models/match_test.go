package models

import (
	"strings"
	"testing"
	"time"

	"github.com/codr1/Pitchside/internal/balancer"
)

var testRoster = map[int64]balancer.Position{
	1: balancer.GK,
	2: balancer.CB,
	3: balancer.ST,
}

func TestMatchInputNormalizeDefaults(t *testing.T) {
	in := MatchInput{
		MatchDate:  "2024-05-10",
		TeamAScore: 3,
		TeamBScore: 1,
		Ratings: []MatchRatingInput{
			{PlayerID: 1, TeamName: DefaultTeamAName, Rating: 7.5},
			{PlayerID: 2, TeamName: DefaultTeamBName, Rating: 0},
			{PlayerID: 3, TeamName: DefaultTeamBName, PositionPlayed: "cam", Rating: 8, Goals: 1, MinutesPlayed: intPtr(45)},
		},
	}

	got, err := in.Normalize(testRoster)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got.TeamAName != DefaultTeamAName || got.TeamBName != DefaultTeamBName {
		t.Fatalf("Normalize() teams = %q/%q, want defaults", got.TeamAName, got.TeamBName)
	}
	if got.DurationMinutes != DefaultMatchDuration {
		t.Fatalf("Normalize() duration = %d, want %d", got.DurationMinutes, DefaultMatchDuration)
	}
	if want := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC); !got.MatchDate.Equal(want) {
		t.Fatalf("Normalize() date = %v, want %v", got.MatchDate, want)
	}
	if len(got.Ratings) != 2 {
		t.Fatalf("Normalize() ratings = %d, want 2 (unrated row dropped)", len(got.Ratings))
	}
	if got.Ratings[0].PositionPlayed != balancer.GK {
		t.Fatalf("ratings[0] position = %q, want native %q", got.Ratings[0].PositionPlayed, balancer.GK)
	}
	if got.Ratings[0].MinutesPlayed != DefaultMatchDuration {
		t.Fatalf("ratings[0] minutes = %d, want %d", got.Ratings[0].MinutesPlayed, DefaultMatchDuration)
	}
	if got.Ratings[1].PositionPlayed != balancer.CAM || got.Ratings[1].MinutesPlayed != 45 {
		t.Fatalf("ratings[1] = %+v, want CAM for 45 minutes", got.Ratings[1])
	}
}

func TestMatchInputNormalizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   MatchInput
		wantErr string
	}{
		{
			name:    "missing_date",
			input:   MatchInput{},
			wantErr: "match_date is required",
		},
		{
			name:    "bad_date",
			input:   MatchInput{MatchDate: "10/05/2024"},
			wantErr: "match_date must be",
		},
		{
			name:    "same_team_names",
			input:   MatchInput{MatchDate: "2024-05-10", TeamAName: "Reds", TeamBName: "Reds"},
			wantErr: "team names must differ",
		},
		{
			name:    "negative_score",
			input:   MatchInput{MatchDate: "2024-05-10", TeamAScore: -1},
			wantErr: "scores",
		},
		{
			name:    "duration_too_long",
			input:   MatchInput{MatchDate: "2024-05-10", DurationMinutes: intPtr(241)},
			wantErr: "duration_minutes",
		},
		{
			name: "unknown_player",
			input: MatchInput{MatchDate: "2024-05-10", Ratings: []MatchRatingInput{
				{PlayerID: 99, TeamName: DefaultTeamAName, Rating: 6},
			}},
			wantErr: "player 99 not found",
		},
		{
			name: "wrong_team",
			input: MatchInput{MatchDate: "2024-05-10", Ratings: []MatchRatingInput{
				{PlayerID: 1, TeamName: "Visitors", Rating: 6},
			}},
			wantErr: "team_name",
		},
		{
			name: "rating_too_high",
			input: MatchInput{MatchDate: "2024-05-10", Ratings: []MatchRatingInput{
				{PlayerID: 1, TeamName: DefaultTeamAName, Rating: 10.5},
			}},
			wantErr: "rating must be",
		},
		{
			name: "minutes_over_duration",
			input: MatchInput{MatchDate: "2024-05-10", DurationMinutes: intPtr(60), Ratings: []MatchRatingInput{
				{PlayerID: 1, TeamName: DefaultTeamAName, Rating: 6, MinutesPlayed: intPtr(61)},
			}},
			wantErr: "minutes_played",
		},
		{
			name: "duplicate_player",
			input: MatchInput{MatchDate: "2024-05-10", Ratings: []MatchRatingInput{
				{PlayerID: 1, TeamName: DefaultTeamAName, Rating: 6},
				{PlayerID: 1, TeamName: DefaultTeamAName, Rating: 7},
			}},
			wantErr: "more than once",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := test.input.Normalize(testRoster)
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("Normalize() error = %v, want containing %q", err, test.wantErr)
			}
		})
	}
}

func TestMatchInputPlayerIDs(t *testing.T) {
	in := MatchInput{Ratings: []MatchRatingInput{
		{PlayerID: 4, Rating: 6},
		{PlayerID: 2, Rating: 0},
		{PlayerID: 4, Rating: 7},
		{PlayerID: 9, Rating: 8},
	}}
	got := in.PlayerIDs()
	if len(got) != 2 || got[0] != 4 || got[1] != 9 {
		t.Fatalf("PlayerIDs() = %v, want [4 9]", got)
	}
}

func TestParseMatchDateRFC3339(t *testing.T) {
	got, err := ParseMatchDate("2024-05-10T18:30:00Z")
	if err != nil {
		t.Fatalf("ParseMatchDate() error = %v", err)
	}
	if want := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("ParseMatchDate() = %v, want %v", got, want)
	}
}

func TestMatchResult(t *testing.T) {
	tests := []struct {
		a, b int
		want string
	}{
		{2, 1, "A"},
		{0, 3, "B"},
		{1, 1, "draw"},
	}
	for _, test := range tests {
		m := Match{TeamAScore: test.a, TeamBScore: test.b}
		if got := m.Result(); got != test.want {
			t.Fatalf("Result() for %d-%d = %q, want %q", test.a, test.b, got, test.want)
		}
	}
}
