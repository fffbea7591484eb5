package payment

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestOpenLookupFailed(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"no rows is a clean miss", pgx.ErrNoRows, false},
		{"wrapped no rows is a clean miss", fmt.Errorf("open payment: %w", pgx.ErrNoRows), false},
		{"connection error is a failure", errors.New("connection refused"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := openLookupFailed(tc.err); got != tc.want {
				t.Fatalf("openLookupFailed(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
