package photos

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"decormarket/internal/api"
	"decormarket/internal/catalog"
)

type Handlers struct {
	Repo    *Repository
	Catalog *catalog.Repository
}

type AddRequest struct {
	Kind    string `json:"kind"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

func (h Handlers) Add(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "id")

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	kind, err := ParseKind(req.Kind)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "kind must be cover, gallery, or inspiration")
		return
	}
	u, err := url.Parse(strings.TrimSpace(req.URL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "url must be an absolute http(s) url")
		return
	}

	if _, err := h.Catalog.GetByID(r.Context(), serviceID); err != nil {
		api.WriteError(w, http.StatusNotFound, "SERVICE_NOT_FOUND", "service not found")
		return
	}

	p, err := h.Repo.Insert(r.Context(), serviceID, kind, u.String(), strings.TrimSpace(req.Caption))
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to add photo")
		return
	}
	api.WriteJSON(w, http.StatusCreated, map[string]any{"photo": p})
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "id")
	if _, err := h.Catalog.GetByID(r.Context(), serviceID); err != nil {
		api.WriteError(w, http.StatusNotFound, "SERVICE_NOT_FOUND", "service not found")
		return
	}

	items, err := h.Repo.ListByService(r.Context(), serviceID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Photo{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "photoId")); err != nil {
		if err == pgx.ErrNoRows {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "photo not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete photo")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
