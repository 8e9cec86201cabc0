package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/mateuszroksana/my-backend/internal/platform/health"
)

// NewRouter creates and configures the HTTP router for the storefront API.
// readiness reports whether the store is reachable; when it returns false
// the health endpoint answers 503.
func NewRouter(handler *Handler, readiness func() bool) chi.Router {
	router := chi.NewRouter()

	// The browser storefront and the admin panel are served from another
	// origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/teas", handler.ListTeas)
		r.Get("/herbal-teas", handler.ListHerbalTeas)

		r.Route("/admin/products", func(r chi.Router) {
			r.Post("/", handler.CreateProduct)
			r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
				handler.GetProduct(w, req, chi.URLParam(req, "id"))
			})
			r.Put("/{id}", func(w http.ResponseWriter, req *http.Request) {
				handler.UpdateProduct(w, req, chi.URLParam(req, "id"))
			})
			r.Delete("/{id}", func(w http.ResponseWriter, req *http.Request) {
				handler.DeleteProduct(w, req, chi.URLParam(req, "id"))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", handler.SubmitOrder)
			r.Get("/", handler.ListOrders)
			r.Put("/{id}/complete", func(w http.ResponseWriter, req *http.Request) {
				handler.FulfillOrder(w, req, chi.URLParam(req, "id"))
			})
		})

		r.Post("/login", handler.Login)
	})

	router.Get("/health", health.Handler(readiness))

	return router
}
