package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/TomaszChromy/CarRentalManager/common/middleware"
	"github.com/TomaszChromy/CarRentalManager/common/telemetry"
)

func (app *Config) routes() http.Handler {
	mux := chi.NewRouter()

	// Request ID must be first
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Logger)
	mux.Use(middleware.Recovery)
	mux.Use(middleware.PrometheusMetrics("rental-service"))

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mux.Use(chimiddleware.Heartbeat("/ping"))

	mux.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(
			next,
			"rental-service.http",
			otelhttp.WithFilter(func(req *http.Request) bool {
				return !telemetry.ShouldSkipTrace(req.URL.Path)
			}),
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})

	// Health check endpoints for Kubernetes
	mux.Get("/health/live", app.Liveness)
	mux.Get("/health/ready", app.Readiness)

	// Metrics endpoint for Prometheus
	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", app.Login)
		r.Post("/auth/register", app.Register)
		r.Post("/auth/refresh", app.RefreshToken)

		r.Get("/cars", app.ListCars)
		r.Get("/cars/{id}", app.GetCar)
		r.Post("/cars", app.CreateCar)
		r.Put("/cars/{id}", app.UpdateCar)
		r.Delete("/cars/{id}", app.DeleteCar)

		r.Get("/reservations", app.ListReservations)
		r.Get("/reservations/extras", app.GetExtras)
		r.Get("/reservations/user/{userId}", app.ListReservationsByUser)
		r.Get("/reservations/{id}", app.GetReservation)
		r.Post("/reservations", app.CreateReservation)
		r.Put("/reservations/{id}", app.UpdateReservation)

		r.Get("/locations", app.ListLocations)
		r.Post("/locations", app.CreateLocation)

		r.Get("/users/{id}", app.GetUser)
		r.Put("/users/{id}", app.UpdateUser)
	})

	return mux
}
