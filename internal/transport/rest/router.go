package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/order-management/internal/order"
	"github.com/frahmantamala/order-management/internal/payment"
	"github.com/frahmantamala/order-management/internal/transport/middleware"
	"github.com/frahmantamala/order-management/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, webhookHandler *payment.WebhookHandler, orderService order.ServiceAPI, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if webhookHandler != nil {
			// The admission gate re-runs payload parsing and order id
			// resolution before the handler sees the request.
			r.Group(func(gr chi.Router) {
				gr.Use(payment.AdmissionMiddleware(orderService, logger))
				gr.Post("/payment/callback", webhookHandler.HandleCallback)
			})
		}
	})
}
