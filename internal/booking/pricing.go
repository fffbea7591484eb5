package booking

import (
	"github.com/shopspring/decimal"

	"decormarket/internal/catalog"
)

type PricingError struct {
	Code    string
	Message string
}

func (e PricingError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// ComputePayable derives the server-side payable amount for a booking.
// The client never supplies an amount.
//
// Rules:
// - Consultations are free regardless of the service's cost.
// - Flat-rate decorations cost the service price once; quantity must be 0.
// - Per-unit decorations cost price × quantity; quantity must be >= 1.
// - Amounts are rounded to 2 decimal places.
func ComputePayable(bt Type, svc *catalog.Service, quantity int) (decimal.Decimal, PaymentStatus, error) {
	if bt == TypeConsultation {
		return decimal.Zero, PaymentFree, nil
	}

	cost, err := decimal.NewFromString(svc.Cost)
	if err != nil || cost.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, "", PricingError{Code: "SERVICE_COST_INVALID", Message: "service cost is not a positive amount"}
	}

	switch svc.RateType {
	case catalog.RateFlat:
		return cost.Round(2), PaymentUnpaid, nil
	case catalog.RatePerUnit:
		if quantity < 1 {
			return decimal.Zero, "", PricingError{Code: "QUANTITY_INVALID", Message: "quantity must be at least 1"}
		}
		return cost.Mul(decimal.NewFromInt(int64(quantity))).Round(2), PaymentUnpaid, nil
	default:
		return decimal.Zero, "", PricingError{Code: "RATE_TYPE_INVALID", Message: "service rate type is invalid"}
	}
}
