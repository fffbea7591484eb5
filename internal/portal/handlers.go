package portal

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"decormarket/internal/api"
	"decormarket/internal/booking"
	"decormarket/internal/events"
	"decormarket/internal/user"
)

type Handlers struct {
	DB       *pgxpool.Pool
	Repo     *Repository
	Bookings *booking.Repository
}

// CreateLink mints a shareable tracking link for the caller's booking.
func (h Handlers) CreateLink(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	b, err := h.Bookings.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}
	if b.UserEmail != u.Email && u.Role != user.RoleAdmin {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "not your booking")
		return
	}

	token, expiresAt, err := h.Repo.CreateToken(r.Context(), b.ID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create tracking link")
		return
	}

	api.WriteJSON(w, http.StatusCreated, map[string]any{
		"token":     token,
		"path":      "/track/" + token,
		"expiresAt": expiresAt.Format(time.RFC3339),
	})
}

// RevokeLink invalidates every live tracking link for the caller's booking,
// for when a shared link leaks.
func (h Handlers) RevokeLink(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	b, err := h.Bookings.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}
	if b.UserEmail != u.Email && u.Role != user.RoleAdmin {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "not your booking")
		return
	}

	if _, err := h.Repo.RevokeForBooking(r.Context(), b.ID); err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to revoke tracking links")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// trackedBooking is the unauthenticated view of a booking: status and
// schedule, no owner contact details.
type trackedBooking struct {
	Reference   string         `json:"reference"`
	ServiceName string         `json:"serviceName,omitempty"`
	BookingType booking.Type   `json:"bookingType"`
	ScheduleAt  time.Time      `json:"scheduleAt"`
	Status      booking.Status `json:"status"`
	StatusBadge string         `json:"statusBadge"`
	City        string         `json:"city,omitempty"`
	Area        string         `json:"area,omitempty"`
}

// Track serves the public tracking page data. Possession of the token is the
// only credential.
func (h Handlers) Track(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	bookingID, err := h.Repo.Resolve(r.Context(), token)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "unknown or expired tracking link")
		return
	}

	b, err := h.Bookings.GetByID(r.Context(), bookingID)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	timeline, err := events.ListByBooking(r.Context(), h.DB, b.ID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if timeline == nil {
		timeline = []events.Event{}
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"booking": trackedBooking{
			Reference:   b.Reference,
			ServiceName: b.ServiceName,
			BookingType: b.BookingType,
			ScheduleAt:  b.ScheduleAt,
			Status:      b.Status,
			StatusBadge: b.StatusBadge,
			City:        b.Address.City,
			Area:        b.Address.Area,
		},
		"timeline": timeline,
	})
}
