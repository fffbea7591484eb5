package catalog

import (
	"fmt"
	"time"
)

type RateType string

const (
	RateFlat    RateType = "flat"
	RatePerUnit RateType = "per-unit"
)

func ParseRateType(s string) (RateType, error) {
	switch RateType(s) {
	case RateFlat, RatePerUnit:
		return RateType(s), nil
	default:
		return "", fmt.Errorf("unknown rate type: %s", s)
	}
}

// Service is a catalog item offered for booking.
type Service struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Cost         string    `json:"cost"`
	Unit         string    `json:"unit,omitempty"`
	RateType     RateType  `json:"rateType"`
	Description  string    `json:"description,omitempty"`
	PhotoURL     string    `json:"photoUrl,omitempty"`
	CreatorEmail string    `json:"creatorEmail"`
	CreatedAt    time.Time `json:"createdAt"`
}
