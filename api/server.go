/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the dashboard
  5. Locale:     Accept-Language matched to a loaded locale, carried in
                 the request context and echoed as Content-Language

ROUTE GROUPS:
  /api/employees/*      Employees, their queries, punches, schedules,
                        requests and notifications
  /api/requests/*       Manager decisions on requests
  /api/schedules        Stored schedules
  /api/reports          Attendance report (JSON or XLSX)
  /api/scenarios/*      Demo scenarios

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/warp/hourbank/i18n"
)

// DefaultCORSOrigins are the dev dashboard origins.
var DefaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// NewRouter creates a new router with all routes configured. An empty
// origin list falls back to DefaultCORSOrigins.
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	if len(corsOrigins) == 0 {
		corsOrigins = DefaultCORSOrigins
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", "Content-Language"},
		AllowCredentials: !slices.Contains(corsOrigins, "*"),
	}))
	r.Use(localeMiddleware(h.Translator))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Get("/{id}/hour-bank", h.GetHourBank)
			r.Get("/{id}/summary", h.GetSummary)
			r.Get("/{id}/period-summary", h.GetPeriodSummary)
			r.Get("/{id}/alerts", h.GetAlerts)
			r.Get("/{id}/punches", h.ListPunches)
			r.Post("/{id}/punches", h.RegisterPunch)
			r.Get("/{id}/schedule", h.GetSchedule)
			r.Put("/{id}/schedule", h.PutSchedule)
			r.Get("/{id}/requests", h.ListRequests)
			r.Post("/{id}/requests", h.SubmitRequest)
			r.Get("/{id}/notifications", h.ListNotifications)
			r.Post("/{id}/notifications/{notificationId}/read", h.MarkNotificationRead)
		})

		r.Route("/requests", func(r chi.Router) {
			r.Get("/pending", h.ListPendingRequests)
			r.Post("/{requestId}/approve", h.ApproveRequest)
			r.Post("/{requestId}/reject", h.RejectRequest)
			r.Post("/{requestId}/cancel", h.CancelRequest)
		})

		r.Get("/schedules", h.ListSchedules)
		r.Get("/reports", h.GetReport)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

// localeMiddleware resolves Accept-Language once per request so handlers
// translate with i18n.LocaleFromContext. A nil translator disables it.
func localeMiddleware(tr *i18n.Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if tr == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := tr.Match(r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", locale)
			next.ServeHTTP(w, r.WithContext(i18n.WithLocale(r.Context(), locale)))
		})
	}
}
