package apiutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

func TestConstraintViolations(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		unique     bool
		foreignKey bool
	}{
		{name: "nil", err: nil},
		{name: "plain", err: errors.New("boom")},
		{name: "sqlite_unique", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, unique: true},
		{name: "sqlite_fk_wrapped", err: fmt.Errorf("insert: %w", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}), foreignKey: true},
		{name: "pq_unique", err: &pq.Error{Code: "23505"}, unique: true},
		{name: "pq_fk", err: &pq.Error{Code: "23503"}, foreignKey: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsUniqueViolation(test.err); got != test.unique {
				t.Fatalf("IsUniqueViolation(%v) = %t, want %t", test.err, got, test.unique)
			}
			if got := IsForeignKeyViolation(test.err); got != test.foreignKey {
				t.Fatalf("IsForeignKeyViolation(%v) = %t, want %t", test.err, got, test.foreignKey)
			}
		})
	}
}
