package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/companion-booking/internal/booking"
	"github.com/frahmantamala/companion-booking/internal/payment"
	"github.com/frahmantamala/companion-booking/internal/transport/middleware"
	"github.com/frahmantamala/companion-booking/internal/transport/swagger"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, bookingHandler *booking.Handler, paymentHandler *payment.Handler, webhookHandler *payment.WebhookHandler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

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

		// Provider webhook, authenticated by signature instead of a session
		if webhookHandler != nil {
			r.Post("/payments/notification", webhookHandler.HandleNotification)
		}

		if paymentHandler != nil {
			r.Get("/payments/{orderID}", paymentHandler.GetTransaction)
		}

		if bookingHandler != nil {
			r.Route("/bookings", func(br chi.Router) {
				br.Post("/", bookingHandler.CreateBooking)
				br.Get("/{id}", bookingHandler.GetBooking)
			})
		}
	})
}
