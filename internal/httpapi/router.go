package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"decormarket/internal/api"
	"decormarket/internal/booking"
	"decormarket/internal/cache"
	"decormarket/internal/catalog"
	"decormarket/internal/coverage"
	"decormarket/internal/decorator"
	"decormarket/internal/metrics"
	"decormarket/internal/payment"
	"decormarket/internal/photos"
	"decormarket/internal/portal"
	"decormarket/internal/user"
	"decormarket/internal/webhook"
	"decormarket/pkg/checkout"
	"decormarket/pkg/config"
)

type Dependencies struct {
	Cfg   config.Config
	DB    *pgxpool.Pool
	Log   *zap.Logger
	Cache *cache.Cache
}

// New assembles the full HTTP surface. Route groups mirror the three roles:
// public, authenticated user, decorator, admin.
func New(deps Dependencies) http.Handler {
	users := user.NewRepository(deps.DB)
	services := catalog.NewRepository(deps.DB)
	decorators := decorator.NewRepository(deps.DB)
	bookings := booking.NewRepository(deps.DB)
	payments := payment.NewRepository(deps.DB)
	tokens := portal.NewRepository(deps.DB)
	servicePhotos := photos.NewRepository(deps.DB)

	gateway := checkout.Client{
		BaseURL:   deps.Cfg.Checkout.BaseURL,
		SecretKey: deps.Cfg.Checkout.SecretKey,
	}

	userH := user.Handlers{DB: deps.DB, Repo: users}
	catalogH := catalog.Handlers{Repo: services}
	photosH := photos.Handlers{Repo: servicePhotos, Catalog: services}
	decoratorH := decorator.Handlers{DB: deps.DB, Repo: decorators, Cache: deps.Cache}
	bookingH := booking.Handlers{DB: deps.DB, Repo: bookings, Catalog: services, Decorators: decorators, Log: deps.Log}
	paymentH := payment.Handlers{
		DB:         deps.DB,
		Repo:       payments,
		Bookings:   bookings,
		Gateway:    gateway,
		SuccessURL: deps.Cfg.Checkout.SuccessURL,
		CancelURL:  deps.Cfg.Checkout.CancelURL,
		Log:        deps.Log,
	}
	portalH := portal.Handlers{DB: deps.DB, Repo: tokens, Bookings: bookings}
	coverageH := coverage.Handlers{}
	webhookH := webhook.Handler{DB: deps.DB, Secret: deps.Cfg.Checkout.WebhookSecret, Log: deps.Log}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(api.CORSMiddleware(api.CORSOptions{AllowedOrigins: deps.Cfg.AllowedOrigins}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		// Public surface: catalog browsing, decorator directory, coverage
		// lookups, tracking links, gateway webhooks.
		r.Get("/services", catalogH.List)
		r.Get("/services/{id}", catalogH.Get)
		r.Get("/services/{id}/photos", photosH.List)
		r.Get("/search", catalogH.Search)

		r.Get("/decorators", decoratorH.List)
		r.Get("/decorators/availability", decoratorH.Availability)
		r.Get("/top-decorators", decoratorH.Top)

		r.Get("/service-centers", coverageH.ServiceCenters)
		r.Get("/service-centers/check", coverageH.Check)

		r.Get("/track/{token}", portalH.Track)

		r.Post("/webhooks/payments", webhookH.ServeHTTP)

		// Any signed-in account.
		r.Group(func(r chi.Router) {
			r.Use(api.Auth(deps.Cfg, users))

			r.Get("/me", userH.Me)

			r.Post("/bookings", bookingH.Create)
			r.Get("/bookings", bookingH.ListMine)
			r.Get("/bookings/{id}", bookingH.Get)
			r.Patch("/bookings/{id}", bookingH.Patch)
			r.Delete("/bookings/{id}", bookingH.Cancel)
			r.Get("/bookings/{id}/timeline", bookingH.Timeline)
			r.Post("/bookings/{id}/tracking-link", portalH.CreateLink)
			r.Delete("/bookings/{id}/tracking-link", portalH.RevokeLink)

			r.Post("/payments/checkout-session", paymentH.CreateCheckout)
			r.Patch("/payments/success", paymentH.ConfirmSuccess)

			r.Post("/decorators/apply", decoratorH.Apply)

			// Decorator surface: work queue, flow advancement, catalog
			// authoring.
			r.Group(func(r chi.Router) {
				r.Use(api.RequireRole(user.RoleDecorator))

				r.Get("/decorator/bookings", bookingH.ListAssigned)
				r.Patch("/bookings/status/flow", bookingH.Advance)
				r.Patch("/decorators/me/availability", decoratorH.SetMyAvailability)

				r.Post("/services", catalogH.Create)
				r.Post("/services/{id}/photos", photosH.Add)
			})

			// Admin surface.
			r.Group(func(r chi.Router) {
				r.Use(api.RequireRole(user.RoleAdmin))

				r.Get("/admin/bookings", bookingH.AdminList)
				r.Patch("/admin/bookings/{id}/assign", bookingH.AdminAssign)
				r.Post("/admin/bookings/{id}/override", bookingH.AdminOverride)

				r.Get("/admin/decorators", decoratorH.AdminList)
				r.Patch("/admin/decorators/{id}", decoratorH.AdminPatch)

				r.Get("/admin/payments", paymentH.AdminList)

				r.Get("/admin/users", userH.AdminList)
				r.Patch("/admin/users/{email}/role", userH.AdminPatchRole)

				r.Delete("/photos/{photoId}", photosH.Delete)
			})
		})
	})

	return r
}
