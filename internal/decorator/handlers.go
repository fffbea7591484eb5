package decorator

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"decormarket/internal/api"
	"decormarket/internal/audit"
	"decormarket/internal/cache"
	"decormarket/internal/user"
	"decormarket/pkg/db"
)

type Handlers struct {
	DB    *pgxpool.Pool
	Repo  *Repository
	Cache *cache.Cache
}

const topDecoratorsCacheKey = "top-decorators"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type ApplyRequest struct {
	ServiceLocation string   `json:"serviceLocation"`
	Specializations []string `json:"specializations"`
	ExperienceYears int      `json:"experienceYears"`
}

func (h Handlers) Apply(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if strings.TrimSpace(req.ServiceLocation) == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "serviceLocation is required")
		return
	}
	if len(req.Specializations) == 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "at least one specialization is required")
		return
	}
	if req.ExperienceYears < 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "experienceYears must not be negative")
		return
	}

	// One live application per user.
	if existing, err := h.Repo.FindByEmail(r.Context(), u.Email); err == nil && existing != nil {
		api.WriteError(w, http.StatusConflict, "APPLICATION_EXISTS", "an application already exists for this account")
		return
	}

	d, err := h.Repo.Apply(r.Context(), u.Email, strings.TrimSpace(req.ServiceLocation), req.Specializations, req.ExperienceYears)
	if err != nil {
		// Two concurrent applies race past the check above; the partial unique
		// index makes the loser a conflict, not a server error.
		if isUniqueViolation(err) {
			api.WriteError(w, http.StatusConflict, "APPLICATION_EXISTS", "an application already exists for this account")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to submit application")
		return
	}

	api.WriteJSON(w, http.StatusCreated, map[string]any{"decorator": d})
}

func (h Handlers) writeList(w http.ResponseWriter, items []Decorator, err error) {
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Decorator{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.ListApproved(r.Context())
	h.writeList(w, items, err)
}

func (h Handlers) Availability(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.ListAvailable(r.Context())
	h.writeList(w, items, err)
}

func (h Handlers) Top(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	// Default list is cached; explicit limits go straight to the DB.
	if limit <= 0 {
		var cached []Decorator
		if h.Cache.GetJSON(r.Context(), topDecoratorsCacheKey, &cached) {
			h.writeList(w, cached, nil)
			return
		}
	}

	items, err := h.Repo.TopRated(r.Context(), limit)
	if err == nil && limit <= 0 {
		h.Cache.SetJSON(r.Context(), topDecoratorsCacheKey, items, 5*time.Minute)
	}
	h.writeList(w, items, err)
}

type AvailabilityRequest struct {
	Available *bool `json:"available"`
}

func (h Handlers) SetMyAvailability(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var req AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Available == nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "available is required")
		return
	}

	d, err := h.Repo.FindByEmail(r.Context(), u.Email)
	if err != nil || d.ApplicationStatus != ApplicationApproved {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no approved decorator profile")
		return
	}

	if err := h.Repo.SetAvailability(r.Context(), d.ID, *req.Available); err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update availability")
		return
	}
	h.Cache.Invalidate(r.Context(), topDecoratorsCacheKey)

	w.WriteHeader(http.StatusNoContent)
}

func (h Handlers) AdminList(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" {
		if _, err := ParseApplicationStatus(status); err != nil {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status filter")
			return
		}
	}
	items, err := h.Repo.ListByStatus(r.Context(), status)
	h.writeList(w, items, err)
}

type AdminPatchRequest struct {
	ApplicationStatus string `json:"applicationStatus"`
}

// AdminPatch approves or rejects an application. Approval flips the
// applicant's user role to decorator inside the same transaction.
func (h Handlers) AdminPatch(w http.ResponseWriter, r *http.Request) {
	admin := api.UserFromContext(r.Context())
	if admin == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req AdminPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	next, err := ParseApplicationStatus(req.ApplicationStatus)
	if err != nil || next == ApplicationPending {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "applicationStatus must be approved or rejected")
		return
	}

	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		d, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}
		if d.ApplicationStatus != ApplicationPending {
			api.WriteError(w, http.StatusConflict, "APPLICATION_ALREADY_DECIDED", "application has already been decided")
			return pgx.ErrTxCommitRollback
		}

		if err := UpdateApplicationTx(r.Context(), tx, d.ID, next); err != nil {
			return err
		}
		if next == ApplicationApproved {
			if err := user.UpdateRoleByEmailTx(r.Context(), tx, d.UserEmail, user.RoleDecorator); err != nil {
				return err
			}
		}

		return audit.Insert(r.Context(), tx, admin.Email, nil, "DECORATOR_APPLICATION_DECIDED", map[string]any{
			"decoratorId": d.ID,
			"decision":    next,
		})
	})

	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "application not found")
		return
	}

	h.Cache.Invalidate(r.Context(), topDecoratorsCacheKey)
	w.WriteHeader(http.StatusNoContent)
}
