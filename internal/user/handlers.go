package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"decormarket/internal/api"
	"decormarket/internal/audit"
	"decormarket/pkg/db"
)

type Handlers struct {
	DB   *pgxpool.Pool
	Repo *Repository
}

// Me returns the authenticated principal, already upserted by the auth
// middleware.
func (h Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (h Handlers) AdminList(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []User{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

type RolePatchRequest struct {
	Role string `json:"role"`
}

// AdminPatchRole changes a user's role directly, bypassing the decorator
// application flow. The change is audited.
func (h Handlers) AdminPatchRole(w http.ResponseWriter, r *http.Request) {
	admin := api.UserFromContext(r.Context())
	if admin == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var req RolePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	switch Role(req.Role) {
	case RoleUser, RoleDecorator, RoleAdmin:
	default:
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "role must be user, decorator, or admin")
		return
	}

	email := chi.URLParam(r, "email")
	target, err := h.Repo.FindByEmail(r.Context(), email)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}
	if target.Email == admin.Email {
		api.WriteError(w, http.StatusConflict, "SELF_DEMOTION", "admins cannot change their own role")
		return
	}

	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		if err := UpdateRoleByEmailTx(r.Context(), tx, target.Email, Role(req.Role)); err != nil {
			return err
		}
		return audit.Insert(r.Context(), tx, admin.Email, nil, "USER_ROLE_CHANGED", map[string]any{
			"email": target.Email,
			"from":  target.Role,
			"to":    req.Role,
		})
	})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update role")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
