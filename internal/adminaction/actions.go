package adminaction

type ActionType string

const (
	ActionMarkBookingPaid   ActionType = "MARK_BOOKING_PAID"
	ActionCancelBooking     ActionType = "CANCEL_BOOKING"
	ActionReassignDecorator ActionType = "REASSIGN_DECORATOR"
)
