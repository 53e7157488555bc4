// Package httpapi обслуживает HTTP API салона: публичную запись и админку.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Leganyst/salon-booking/internal/auth"
	"github.com/Leganyst/salon-booking/internal/reminder"
	"github.com/Leganyst/salon-booking/internal/repository"
)

type Digester interface {
	RunDigest(ctx context.Context, kind reminder.Kind) (reminder.Result, error)
}

type Server struct {
	Appointments repository.AppointmentRepository
	Services     repository.ServiceRepository
	Events       repository.EventRepository
	Auth         *auth.Authenticator
	Tokens       *auth.Manager
	Digest       Digester
	Limiter      Limiter // nil: без ограничения частоты записи

	Val          *Validator
	Log          *slog.Logger
	Location     *time.Location
	CookieSecure bool
	Now          func() time.Time
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now().In(s.Location)
	}
	return time.Now().In(s.Location)
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if id := RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(RequestID())
	r.Use(Logger(s.Log))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.Healthz)

	r.Route("/api", func(api chi.Router) {
		api.Get("/services", s.ListServices)
		if s.Limiter != nil {
			api.With(RateLimit(s.Limiter, s.Log)).Post("/appointments", s.CreateAppointment)
		} else {
			api.Post("/appointments", s.CreateAppointment)
		}

		api.Route("/admin", func(admin chi.Router) {
			admin.Post("/login", s.AdminLogin)
			admin.Post("/logout", s.AdminLogout)

			admin.Group(func(protected chi.Router) {
				protected.Use(AdminAuth(s.Tokens))
				protected.Get("/appointments", s.AdminListAppointments)
				protected.Patch("/appointments/{id}", s.AdminUpdateAppointment)
				protected.Delete("/appointments/{id}", s.AdminDeleteAppointment)
				protected.Get("/dashboard", s.AdminDashboard)
				protected.Get("/services", s.AdminListServices)
				protected.Post("/services", s.AdminCreateService)
				protected.Put("/services/{id}", s.AdminUpdateService)
				protected.Delete("/services/{id}", s.AdminDeleteService)
				protected.Post("/digest/{kind}", s.AdminRunDigest)
				protected.Get("/events", s.AdminListEvents)
			})
		})
	})

	return otelhttp.NewHandler(r, "salon-http")
}

func (s *Server) Healthz(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
