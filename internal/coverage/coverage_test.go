package coverage

import "testing"

func TestCitiesLoaded(t *testing.T) {
	cities := Cities()
	if len(cities) == 0 {
		t.Fatal("no cities loaded from embedded data")
	}
	for _, c := range cities {
		if c.Name == "" || len(c.Areas) == 0 {
			t.Fatalf("city %q has no areas", c.Name)
		}
	}
}

func TestAreasCaseInsensitive(t *testing.T) {
	a1, ok := Areas("Dhaka")
	if !ok {
		t.Fatal("Dhaka should be covered")
	}
	a2, ok := Areas("  dhaka ")
	if !ok {
		t.Fatal("lookup should ignore case and surrounding spaces")
	}
	if len(a1) != len(a2) {
		t.Fatalf("area lists differ: %d vs %d", len(a1), len(a2))
	}
}

func TestCovered(t *testing.T) {
	cases := []struct {
		city, area string
		want       bool
	}{
		{"Dhaka", "", true},
		{"Dhaka", "Banani", true},
		{"Dhaka", "banani", true},
		{"Dhaka", "Atlantis", false},
		{"Barishal", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		if got := Covered(tc.city, tc.area); got != tc.want {
			t.Errorf("Covered(%q, %q) = %v, want %v", tc.city, tc.area, got, tc.want)
		}
	}
}
