package coverage

import (
	"net/http"
	"strings"

	"decormarket/internal/api"
)

type Handlers struct{}

// ServiceCenters lists covered cities, or one city's entry when ?city= is
// given. An unknown city yields an empty list, not an error, so the booking
// form can render "not covered" without special-casing.
func (Handlers) ServiceCenters(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		api.WriteJSON(w, http.StatusOK, map[string]any{"items": Cities()})
		return
	}

	items := []City{}
	for _, c := range Cities() {
		if strings.EqualFold(c.Name, city) {
			items = append(items, c)
			break
		}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Check answers "do you serve my address" for the booking form.
func (Handlers) Check(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "city is required")
		return
	}
	area := r.URL.Query().Get("area")
	api.WriteJSON(w, http.StatusOK, map[string]any{"covered": Covered(city, area)})
}
