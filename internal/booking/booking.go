package booking

import (
	"fmt"
	"time"
)

type Type string

const (
	TypeConsultation Type = "consultation"
	TypeDecoration   Type = "decoration"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeConsultation, TypeDecoration:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown booking type: %s", s)
	}
}

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentFree    PaymentStatus = "free"
)

type Address struct {
	Line string `json:"line,omitempty"`
	City string `json:"city,omitempty"`
	Area string `json:"area,omitempty"`
}

type Booking struct {
	ID            string        `json:"id"`
	Reference     string        `json:"reference"`
	UserEmail     string        `json:"userEmail"`
	ServiceID     string        `json:"serviceId"`
	ServiceName   string        `json:"serviceName,omitempty"`
	BookingType   Type          `json:"bookingType"`
	ScheduleAt    time.Time     `json:"scheduleAt"`
	Status        Status        `json:"status"`
	StatusBadge   string        `json:"statusBadge"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PayableAmount string        `json:"payableAmount"`
	Currency      string        `json:"currency"`
	Address       Address       `json:"address"`
	Quantity      int           `json:"quantity,omitempty"`
	DecoratorID   string        `json:"decoratorId,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
