package booking

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"decormarket/internal/adminaction"
	"decormarket/internal/api"
	"decormarket/internal/audit"
	"decormarket/internal/catalog"
	"decormarket/internal/decorator"
	"decormarket/internal/events"
	"decormarket/internal/metrics"
	"decormarket/internal/user"
	"decormarket/pkg/db"
)

type Handlers struct {
	DB         *pgxpool.Pool
	Repo       *Repository
	Catalog    *catalog.Repository
	Decorators *decorator.Repository
	Log        *zap.Logger
}

const defaultCurrency = "BDT"

type CreateRequest struct {
	ServiceID   string  `json:"serviceId"`
	BookingType string  `json:"bookingType"`
	ScheduleAt  string  `json:"scheduleAt"`
	Address     Address `json:"address"`
	Quantity    int     `json:"quantity"`
}

// validate runs every check that does not need the database, so malformed
// requests are rejected before any repository access.
func (req CreateRequest) validate(now time.Time) (Type, time.Time, string) {
	if strings.TrimSpace(req.ServiceID) == "" {
		return "", time.Time{}, "serviceId is required"
	}
	bt, err := ParseType(req.BookingType)
	if err != nil {
		return "", time.Time{}, "bookingType must be consultation or decoration"
	}
	scheduleAt, err := time.Parse(time.RFC3339, req.ScheduleAt)
	if err != nil {
		return "", time.Time{}, "scheduleAt must be an RFC3339 timestamp"
	}
	if !scheduleAt.After(now) {
		return "", time.Time{}, "scheduleAt must be in the future"
	}

	switch bt {
	case TypeDecoration:
		if strings.TrimSpace(req.Address.Line) == "" ||
			strings.TrimSpace(req.Address.City) == "" ||
			strings.TrimSpace(req.Address.Area) == "" {
			return "", time.Time{}, "decoration bookings require a full address"
		}
		if req.Quantity < 1 {
			return "", time.Time{}, "quantity must be at least 1"
		}
	case TypeConsultation:
		if req.Address != (Address{}) {
			return "", time.Time{}, "consultations do not take an address"
		}
		if req.Quantity != 0 {
			return "", time.Time{}, "consultations do not take a quantity"
		}
	}
	return bt, scheduleAt, ""
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	bt, scheduleAt, msg := req.validate(time.Now())
	if msg != "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", msg)
		return
	}

	svc, err := h.Catalog.GetByID(r.Context(), req.ServiceID)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "SERVICE_NOT_FOUND", "service not found")
		return
	}

	amount, paymentStatus, err := ComputePayable(bt, svc, req.Quantity)
	if err != nil {
		pe, ok := err.(PricingError)
		if !ok {
			pe = PricingError{Code: "VALIDATION_FAILED", Message: err.Error()}
		}
		api.WriteError(w, http.StatusBadRequest, pe.Code, pe.Message)
		return
	}

	b, err := h.Repo.Create(r.Context(), CreateParams{
		UserEmail:     u.Email,
		ServiceID:     svc.ID,
		BookingType:   bt,
		ScheduleAt:    scheduleAt,
		Address:       req.Address,
		Quantity:      req.Quantity,
		PayableAmount: amount,
		PaymentStatus: paymentStatus,
		Currency:      defaultCurrency,
	})
	if err != nil {
		h.Log.Error("create booking", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create booking")
		return
	}
	b.ServiceName = svc.Name

	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		return events.Insert(r.Context(), tx, b.ID, "BOOKING_CREATED", "Booking placed", u.Email, time.Now(), map[string]any{
			"bookingType":   bt,
			"payableAmount": b.PayableAmount,
		})
	})
	if err != nil {
		h.Log.Warn("record booking event", zap.String("booking_id", b.ID), zap.Error(err))
	}

	api.WriteJSON(w, http.StatusCreated, map[string]any{"booking": b})
}

func (h Handlers) writeList(w http.ResponseWriter, items []Booking, err error) {
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Booking{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) ListMine(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}
	items, err := h.Repo.ListByUserEmail(r.Context(), u.Email)
	h.writeList(w, items, err)
}

// ListAssigned returns the caller's work queue as a decorator.
func (h Handlers) ListAssigned(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}
	d, err := h.Decorators.FindByEmail(r.Context(), u.Email)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no decorator profile")
		return
	}
	items, err := h.Repo.ListByDecorator(r.Context(), d.ID)
	h.writeList(w, items, err)
}

// canView reports whether the principal may read this booking: the owner, the
// assigned decorator, or an admin.
func (h Handlers) canView(r *http.Request, u *user.User, b *Booking) bool {
	if u.Role == user.RoleAdmin || b.UserEmail == u.Email {
		return true
	}
	if u.Role == user.RoleDecorator && b.DecoratorID != "" {
		d, err := h.Decorators.FindByEmail(r.Context(), u.Email)
		return err == nil && d.ID == b.DecoratorID
	}
	return false
}

// Get serves both shapes of the lookup route: a booking id returns that
// booking, an email returns that user's booking list (owner or admin only).
func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	key := chi.URLParam(r, "id")
	if strings.Contains(key, "@") {
		if key != u.Email && u.Role != user.RoleAdmin {
			api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "not your bookings")
			return
		}
		items, err := h.Repo.ListByUserEmail(r.Context(), key)
		h.writeList(w, items, err)
		return
	}

	b, err := h.Repo.GetByID(r.Context(), key)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}
	if !h.canView(r, u, b) {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "not your booking")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"booking": b})
}

type PatchRequest struct {
	ScheduleAt string  `json:"scheduleAt"`
	Address    Address `json:"address"`
}

// Patch lets the owner reschedule or move a booking while it is still pending.
func (h Handlers) Patch(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var req PatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	scheduleAt, err := time.Parse(time.RFC3339, req.ScheduleAt)
	if err != nil || !scheduleAt.After(time.Now()) {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "scheduleAt must be a future RFC3339 timestamp")
		return
	}
	if strings.TrimSpace(req.Address.City) == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "address.city is required")
		return
	}

	b, err := h.Repo.UpdatePendingDetails(r.Context(), chi.URLParam(r, "id"), u.Email, scheduleAt, req.Address)
	if err != nil {
		if err == pgx.ErrNoRows {
			api.WriteError(w, http.StatusConflict, "BOOKING_NOT_EDITABLE", "only pending bookings can be edited")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update booking")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"booking": b})
}

// Cancel moves a booking to cancelled instead of deleting the row, so the
// timeline and payment records survive.
func (h Handlers) Cancel(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}
	id := chi.URLParam(r, "id")

	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}
		if b.UserEmail != u.Email && u.Role != user.RoleAdmin {
			api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "not your booking")
			return pgx.ErrTxCommitRollback
		}
		if !CanCancel(b.Status) {
			api.WriteError(w, http.StatusConflict, "BOOKING_NOT_CANCELLABLE", "booking can no longer be cancelled")
			return pgx.ErrTxCommitRollback
		}
		// Owners may only back out before a decorator is assigned; later
		// cancellations go through an admin.
		if u.Role != user.RoleAdmin && b.Status != StatusPending {
			api.WriteError(w, http.StatusConflict, "BOOKING_NOT_CANCELLABLE", "booking is already in progress; contact support to cancel")
			return pgx.ErrTxCommitRollback
		}

		if err := UpdateStatusTx(r.Context(), tx, b.ID, StatusCancelled); err != nil {
			return err
		}
		return events.Insert(r.Context(), tx, b.ID, "BOOKING_CANCELLED", "Booking cancelled", u.Email, time.Now(), nil)
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	metrics.BookingTransitions.WithLabelValues(string(StatusCancelled)).Inc()
	w.WriteHeader(http.StatusNoContent)
}

type AdvanceRequest struct {
	BookingID  string `json:"bookingId"`
	NextStatus string `json:"nextStatus"`
}

// advanceBlocked reports why a booking cannot move to target via the flow
// route. A booking without a decorator never advances here — even for an
// admin, assignment goes through the assign route so decorator_id and status
// change together.
func advanceBlocked(b *Booking, target Status) string {
	if b.Status == StatusPending || b.DecoratorID == "" {
		return "booking has no assigned decorator yet"
	}
	if !CanAdvance(b.Status, target) {
		return "status can only advance one step along the flow"
	}
	return ""
}

// Advance moves a booking one step forward along the fixed flow. Only the
// assigned decorator (or an admin) may advance, and only to the immediate
// successor of the current status.
func (h Handlers) Advance(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var req AdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if strings.TrimSpace(req.BookingID) == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "bookingId is required")
		return
	}
	target, err := ParseStatus(req.NextStatus)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "unknown status")
		return
	}

	var out *Booking
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := GetForUpdate(r.Context(), tx, req.BookingID)
		if err != nil {
			return err
		}

		if u.Role != user.RoleAdmin {
			d, err := h.Decorators.FindByEmail(r.Context(), u.Email)
			if err != nil || b.DecoratorID == "" || d.ID != b.DecoratorID {
				api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "booking is not assigned to you")
				return pgx.ErrTxCommitRollback
			}
		}

		if msg := advanceBlocked(b, target); msg != "" {
			api.WriteError(w, http.StatusConflict, "INVALID_STATE_TRANSITION", msg)
			return pgx.ErrTxCommitRollback
		}

		if err := UpdateStatusTx(r.Context(), tx, b.ID, target); err != nil {
			return err
		}
		if err := events.Insert(r.Context(), tx, b.ID, "STATUS_CHANGED", flow[b.Status].Label, u.Email, time.Now(), map[string]any{
			"from": b.Status,
			"to":   target,
		}); err != nil {
			return err
		}

		b.Status = target
		b.StatusBadge = Badge(target)
		out = b
		return nil
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	metrics.BookingTransitions.WithLabelValues(string(target)).Inc()
	api.WriteJSON(w, http.StatusOK, map[string]any{"booking": out})
}

func (h Handlers) AdminList(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" {
		if _, err := ParseStatus(status); err != nil {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status filter")
			return
		}
	}
	items, err := h.Repo.ListAll(r.Context(), status)
	h.writeList(w, items, err)
}

type AssignRequest struct {
	DecoratorID string `json:"decoratorId"`
}

// AdminAssign attaches an approved, available decorator to a pending booking.
// Both rows are locked so two admins racing on the same booking cannot both
// succeed.
func (h Handlers) AdminAssign(w http.ResponseWriter, r *http.Request) {
	admin := api.UserFromContext(r.Context())
	if admin == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}
	id := chi.URLParam(r, "id")

	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.DecoratorID) == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "decoratorId is required")
		return
	}

	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}
		if b.Status != StatusPending {
			api.WriteError(w, http.StatusConflict, "BOOKING_ALREADY_ASSIGNED", "booking is no longer pending")
			return pgx.ErrTxCommitRollback
		}

		d, err := decorator.GetForUpdate(r.Context(), tx, req.DecoratorID)
		if err != nil {
			api.WriteError(w, http.StatusNotFound, "DECORATOR_NOT_FOUND", "decorator not found")
			return pgx.ErrTxCommitRollback
		}
		if d.ApplicationStatus != decorator.ApplicationApproved || !d.Available {
			api.WriteError(w, http.StatusConflict, "DECORATOR_UNAVAILABLE", "decorator is not approved and available")
			return pgx.ErrTxCommitRollback
		}

		if err := AssignDecoratorTx(r.Context(), tx, b.ID, d.ID); err != nil {
			return err
		}
		if err := events.Insert(r.Context(), tx, b.ID, "DECORATOR_ASSIGNED", "Decorator assigned", admin.Email, time.Now(), map[string]any{
			"decoratorId": d.ID,
		}); err != nil {
			return err
		}
		return audit.Insert(r.Context(), tx, admin.Email, &b.ID, "BOOKING_ASSIGNED", map[string]any{
			"decoratorId": d.ID,
		})
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	metrics.BookingTransitions.WithLabelValues(string(StatusAssigned)).Inc()
	w.WriteHeader(http.StatusNoContent)
}

type OverrideRequest struct {
	Action      string `json:"action"`
	Reason      string `json:"reason"`
	DecoratorID string `json:"decoratorId,omitempty"`
}

// AdminOverride applies out-of-band corrections that the normal flow forbids.
// Every override records an admin action with the operator's reason.
func (h Handlers) AdminOverride(w http.ResponseWriter, r *http.Request) {
	admin := api.UserFromContext(r.Context())
	if admin == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}
	id := chi.URLParam(r, "id")

	var req OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "reason is required")
		return
	}

	var action adminaction.ActionType
	switch req.Action {
	case "mark-paid":
		action = adminaction.ActionMarkBookingPaid
	case "cancel":
		action = adminaction.ActionCancelBooking
	case "reassign":
		action = adminaction.ActionReassignDecorator
		if strings.TrimSpace(req.DecoratorID) == "" {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "decoratorId is required for reassign")
			return
		}
	default:
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "action must be mark-paid, cancel, or reassign")
		return
	}

	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}

		switch action {
		case adminaction.ActionMarkBookingPaid:
			if b.PaymentStatus == PaymentPaid || b.PaymentStatus == PaymentFree {
				api.WriteError(w, http.StatusConflict, "PAYMENT_ALREADY_SETTLED", "booking does not owe a payment")
				return pgx.ErrTxCommitRollback
			}
			if err := SetPaymentStatusTx(r.Context(), tx, b.ID, PaymentPaid); err != nil {
				return err
			}
		case adminaction.ActionCancelBooking:
			if IsTerminal(b.Status) {
				api.WriteError(w, http.StatusConflict, "BOOKING_NOT_CANCELLABLE", "booking already reached a terminal status")
				return pgx.ErrTxCommitRollback
			}
			if err := UpdateStatusTx(r.Context(), tx, b.ID, StatusCancelled); err != nil {
				return err
			}
		case adminaction.ActionReassignDecorator:
			d, err := decorator.GetForUpdate(r.Context(), tx, req.DecoratorID)
			if err != nil {
				api.WriteError(w, http.StatusNotFound, "DECORATOR_NOT_FOUND", "decorator not found")
				return pgx.ErrTxCommitRollback
			}
			if d.ApplicationStatus != decorator.ApplicationApproved {
				api.WriteError(w, http.StatusConflict, "DECORATOR_UNAVAILABLE", "decorator is not approved")
				return pgx.ErrTxCommitRollback
			}
			if IsTerminal(b.Status) {
				api.WriteError(w, http.StatusConflict, "BOOKING_NOT_REASSIGNABLE", "booking already reached a terminal status")
				return pgx.ErrTxCommitRollback
			}
			if err := AssignDecoratorTx(r.Context(), tx, b.ID, d.ID); err != nil {
				return err
			}
		}

		if err := adminaction.Insert(r.Context(), tx, b.ID, action, req.Reason, admin.Email, map[string]any{
			"decoratorId": req.DecoratorID,
		}); err != nil {
			return err
		}
		if err := events.Insert(r.Context(), tx, b.ID, "ADMIN_OVERRIDE", string(action), admin.Email, time.Now(), map[string]any{
			"reason": req.Reason,
		}); err != nil {
			return err
		}
		return audit.Insert(r.Context(), tx, admin.Email, &b.ID, string(action), map[string]any{
			"reason":      req.Reason,
			"decoratorId": req.DecoratorID,
		})
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Timeline returns the ordered event history for a booking.
func (h Handlers) Timeline(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	b, err := h.Repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}
	if !h.canView(r, u, b) {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "not your booking")
		return
	}

	items, err := events.ListByBooking(r.Context(), h.DB, b.ID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []events.Event{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
