package catalog

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"decormarket/internal/api"
)

type Handlers struct {
	Repo *Repository
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	f := ListFilter{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Sort:     strings.TrimSpace(r.URL.Query().Get("sort")),
	}

	items, err := h.Repo.List(r.Context(), f)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Service{}
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	svc, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "service not found")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"service": svc})
}

type CreateRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Cost        string `json:"cost"`
	Unit        string `json:"unit"`
	RateType    string `json:"rateType"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
}

// validate runs before any repository access so a bad form never reaches
// the network-facing storage layer.
func (req CreateRequest) validate() (Service, string) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Service{}, "name is required"
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return Service{}, "category is required"
	}

	rt, err := ParseRateType(strings.TrimSpace(req.RateType))
	if err != nil {
		return Service{}, "rateType must be flat or per-unit"
	}
	if rt == RatePerUnit && strings.TrimSpace(req.Unit) == "" {
		return Service{}, "unit is required for per-unit services"
	}

	cost, err := decimal.NewFromString(strings.TrimSpace(req.Cost))
	if err != nil || cost.LessThanOrEqual(decimal.Zero) {
		return Service{}, "cost must be a positive amount"
	}

	return Service{
		Name:        name,
		Category:    category,
		Cost:        cost.StringFixed(2),
		Unit:        strings.TrimSpace(req.Unit),
		RateType:    rt,
		Description: strings.TrimSpace(req.Description),
		PhotoURL:    strings.TrimSpace(req.PhotoURL),
	}, ""
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

	svc, msg := req.validate()
	if msg != "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", msg)
		return
	}
	svc.CreatorEmail = u.Email

	created, err := h.Repo.Create(r.Context(), &svc)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create service")
		return
	}

	api.WriteJSON(w, http.StatusCreated, map[string]any{"service": created})
}

func (h Handlers) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing q")
		return
	}

	items, err := h.Repo.Search(r.Context(), q)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Service{}
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
