package booking

import (
	"testing"
	"time"
)

func TestCreateRequestValidate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour).Format(time.RFC3339)

	valid := CreateRequest{
		ServiceID:   "svc-1",
		BookingType: "decoration",
		ScheduleAt:  future,
		Address:     Address{Line: "12 Lake Road", City: "Dhaka", Area: "Banani"},
		Quantity:    2,
	}

	bt, at, msg := valid.validate(now)
	if msg != "" {
		t.Fatalf("valid request rejected: %s", msg)
	}
	if bt != TypeDecoration {
		t.Fatalf("bookingType = %s", bt)
	}
	if !at.After(now) {
		t.Fatalf("scheduleAt not in the future: %s", at)
	}

	cases := []struct {
		name   string
		mutate func(*CreateRequest)
	}{
		{"missing service", func(r *CreateRequest) { r.ServiceID = " " }},
		{"unknown booking type", func(r *CreateRequest) { r.BookingType = "renovation" }},
		{"bad timestamp", func(r *CreateRequest) { r.ScheduleAt = "tomorrow" }},
		{"past timestamp", func(r *CreateRequest) { r.ScheduleAt = now.Add(-time.Hour).Format(time.RFC3339) }},
		{"decoration without city", func(r *CreateRequest) { r.Address.City = "" }},
		{"decoration without area", func(r *CreateRequest) { r.Address.Area = "" }},
		{"decoration without line", func(r *CreateRequest) { r.Address.Line = "" }},
		{"decoration without quantity", func(r *CreateRequest) { r.Quantity = 0 }},
		{"consultation with address", func(r *CreateRequest) {
			r.BookingType = "consultation"
			r.Quantity = 0
		}},
		{"consultation with quantity", func(r *CreateRequest) {
			r.BookingType = "consultation"
			r.Address = Address{}
			r.Quantity = 2
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			if _, _, msg := req.validate(now); msg == "" {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestAdvanceBlocked(t *testing.T) {
	cases := []struct {
		name    string
		booking Booking
		target  Status
		blocked bool
	}{
		{"pending booking cannot be flow-assigned", Booking{Status: StatusPending}, StatusAssigned, true},
		{"assigned without decorator cannot advance", Booking{Status: StatusAssigned}, StatusPlanning, true},
		{"assigned with decorator advances", Booking{Status: StatusAssigned, DecoratorID: "dec-1"}, StatusPlanning, false},
		{"skipping a step is blocked", Booking{Status: StatusAssigned, DecoratorID: "dec-1"}, StatusOnTheWay, true},
		{"terminal never advances", Booking{Status: StatusCompleted, DecoratorID: "dec-1"}, StatusAssigned, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := advanceBlocked(&tc.booking, tc.target)
			if (msg != "") != tc.blocked {
				t.Fatalf("advanceBlocked(%s→%s, decorator=%q) = %q, want blocked=%v",
					tc.booking.Status, tc.target, tc.booking.DecoratorID, msg, tc.blocked)
			}
		})
	}
}

func TestConsultationNeedsNoAddress(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	req := CreateRequest{
		ServiceID:   "svc-1",
		BookingType: "consultation",
		ScheduleAt:  now.Add(time.Hour).Format(time.RFC3339),
	}
	if _, _, msg := req.validate(now); msg != "" {
		t.Fatalf("bare consultation rejected: %s", msg)
	}
}
