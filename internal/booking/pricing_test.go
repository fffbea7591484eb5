package booking

import (
	"testing"

	"github.com/shopspring/decimal"

	"decormarket/internal/catalog"
)

func TestComputePayable_ConsultationIsFree(t *testing.T) {
	svc := &catalog.Service{Cost: "5000.00", RateType: catalog.RateFlat}

	amount, ps, err := ComputePayable(TypeConsultation, svc, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !amount.IsZero() {
		t.Fatalf("expected zero amount, got %s", amount)
	}
	if ps != PaymentFree {
		t.Fatalf("expected free, got %s", ps)
	}
}

func TestComputePayable_PerUnitMultipliesQuantity(t *testing.T) {
	svc := &catalog.Service{Cost: "12.50", RateType: catalog.RatePerUnit}

	amount, ps, err := ComputePayable(TypeDecoration, svc, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !amount.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected 100.00, got %s", amount)
	}
	if ps != PaymentUnpaid {
		t.Fatalf("expected unpaid, got %s", ps)
	}
}

func TestComputePayable_FlatIgnoresQuantityRule(t *testing.T) {
	svc := &catalog.Service{Cost: "1500.00", RateType: catalog.RateFlat}

	amount, _, err := ComputePayable(TypeDecoration, svc, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !amount.Equal(decimal.RequireFromString("1500.00")) {
		t.Fatalf("expected 1500.00, got %s", amount)
	}
}

func TestComputePayable_PerUnitRejectsZeroQuantity(t *testing.T) {
	svc := &catalog.Service{Cost: "12.50", RateType: catalog.RatePerUnit}

	if _, _, err := ComputePayable(TypeDecoration, svc, 0); err == nil {
		t.Fatalf("expected quantity error")
	}
}

func TestComputePayable_InvalidCost(t *testing.T) {
	svc := &catalog.Service{Cost: "free!", RateType: catalog.RateFlat}

	if _, _, err := ComputePayable(TypeDecoration, svc, 0); err == nil {
		t.Fatalf("expected cost error")
	}
}
