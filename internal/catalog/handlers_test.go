package catalog

import "testing"

func TestCreateRequestValidate_RequiredFields(t *testing.T) {
	cases := []struct {
		name string
		req  CreateRequest
	}{
		{"missing name", CreateRequest{Category: "wedding", Cost: "100", RateType: "flat"}},
		{"missing category", CreateRequest{Name: "Stage decor", Cost: "100", RateType: "flat"}},
		{"bad rate type", CreateRequest{Name: "Stage decor", Category: "wedding", Cost: "100", RateType: "hourly"}},
		{"zero cost", CreateRequest{Name: "Stage decor", Category: "wedding", Cost: "0", RateType: "flat"}},
		{"non-numeric cost", CreateRequest{Name: "Stage decor", Category: "wedding", Cost: "abc", RateType: "flat"}},
		{"per-unit without unit", CreateRequest{Name: "Balloons", Category: "birthday", Cost: "5", RateType: "per-unit"}},
	}

	for _, tc := range cases {
		if _, msg := tc.req.validate(); msg == "" {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestCreateRequestValidate_NormalizesCost(t *testing.T) {
	req := CreateRequest{
		Name:     "  Stage decor ",
		Category: "wedding",
		Cost:     "1500.5",
		RateType: "flat",
	}
	svc, msg := req.validate()
	if msg != "" {
		t.Fatalf("unexpected error: %s", msg)
	}
	if svc.Cost != "1500.50" {
		t.Fatalf("expected 1500.50, got %s", svc.Cost)
	}
	if svc.Name != "Stage decor" {
		t.Fatalf("expected trimmed name, got %q", svc.Name)
	}
}
