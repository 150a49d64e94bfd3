package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codr1/Pitchside/internal/db"
	"github.com/codr1/Pitchside/internal/testutil"
)

func TestRosterCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pitchside.db")
	database, err := db.New(path)
	if err != nil {
		t.Fatalf("db.New() error = %v", err)
	}
	testutil.CreateRoster(t, database, 18)
	if err := database.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	out, err := executeCommand(newRootCmd(), "roster", "--db", path, "--seed", "1")
	if err != nil {
		t.Fatalf("roster error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "Team A") || !strings.Contains(out, "seed 1") {
		t.Fatalf("roster output = %s", out)
	}
}

func TestRosterCommandMissingDatabase(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "typo.db")},
		{"directory", dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(newRootCmd(), "roster", "--db", tt.path)
			if err == nil || !strings.Contains(err.Error(), "open database") {
				t.Fatalf("roster error = %v, want open database error", err)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "typo.db")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("roster created %s, stat error = %v", "typo.db", err)
	}
}
