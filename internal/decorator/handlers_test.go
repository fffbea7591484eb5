package decorator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "decorators_live_application_idx"}

	if !isUniqueViolation(unique) {
		t.Fatal("23505 should be a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("apply: %w", unique)) {
		t.Fatal("wrapped 23505 should be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("foreign key violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("connection refused")) {
		t.Fatal("plain errors are not unique violations")
	}
	if isUniqueViolation(nil) {
		t.Fatal("nil is not a unique violation")
	}
}
