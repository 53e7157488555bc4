package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/salon-booking/internal/auth"
	"github.com/Leganyst/salon-booking/internal/model"
	"github.com/Leganyst/salon-booking/internal/repository"
)

func (s *Server) ListServices(w http.ResponseWriter, r *http.Request) {
	list, err := s.Services.List(r.Context(), true)
	if err != nil {
		s.logWithRequest(r).Error("services list failed", slog.String("error", err.Error()))
		WriteError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}
	WriteJSON(w, http.StatusOK, newServiceViews(list))
}

type CreateAppointmentRequest struct {
	ServiceID string `json:"serviceId" validate:"required,uuid"`
	Date      string `json:"date" validate:"required,date"`
	Time      string `json:"time" validate:"required,clock"`
	Name      string `json:"name" validate:"required,max=80"`
	LastName  string `json:"lastName" validate:"omitempty,max=80"`
	Phone     string `json:"phone" validate:"required,phone"`
	Notes     string `json:"notes" validate:"omitempty,max=500"`
}

func (s *Server) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req CreateAppointmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Warn("appointments create: invalid json")
		WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("appointments create: validation error")
		WriteError(w, http.StatusBadRequest, "validation error", s.Val.Details(err))
		return
	}

	at, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, s.Location)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid date", nil)
		return
	}
	if at.Before(s.now()) {
		log.Warn("appointments create: date in the past", slog.String("date", req.Date), slog.String("time", req.Time))
		WriteError(w, http.StatusBadRequest, "date in the past", nil)
		return
	}

	svc, err := s.Services.GetByID(r.Context(), uuid.MustParse(req.ServiceID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "service not found", nil)
			return
		}
		log.Error("appointments create: service lookup failed", slog.String("error", err.Error()))
		WriteError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}
	if !svc.IsActive {
		WriteError(w, http.StatusBadRequest, "service not available", nil)
		return
	}

	// Цена фиксируется на момент записи.
	price := svc.Price
	appt := model.Appointment{
		Date:           at,
		Status:         model.AppointmentStatusPending,
		ClientName:     strings.TrimSpace(req.Name),
		ClientLastName: strings.TrimSpace(req.LastName),
		ClientPhone:    strings.TrimSpace(req.Phone),
		ServiceID:      &svc.ID,
		ServicePrice:   &price,
		Notes:          strings.TrimSpace(req.Notes),
	}
	if err := s.Appointments.Create(r.Context(), &appt); err != nil {
		log.Error("appointments create: insert failed", slog.String("error", err.Error()))
		WriteError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}
	appt.Service = svc

	s.recordEvent(r, model.EventTypeAppointmentCreated, &appt.ID, map[string]any{
		"serviceId": svc.ID,
		"price":     price,
		"date":      appt.Date,
	})
	log.Info("appointments create: ok", slog.String("id", appt.ID.String()))
	WriteJSON(w, http.StatusCreated, newAppointmentView(appt, s.Location))
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) AdminLogin(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req AdminLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, "validation error", s.Val.Details(err))
		return
	}
	if s.Auth == nil {
		WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}

	session, err := s.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Warn("admin login: invalid credentials", slog.String("username", req.Username))
			WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		log.Error("admin login failed", slog.String("error", err.Error()))
		WriteError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     accessCookie,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})
	log.Info("admin login: ok", slog.String("username", session.Username))
	WriteJSON(w, http.StatusOK, session)
}

func (s *Server) AdminLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recordEvent пишет событие аудита; ошибка только логируется.
func (s *Server) recordEvent(r *http.Request, t model.EventType, id *uuid.UUID, payload any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Record(r.Context(), t, id, payload); err != nil {
		s.logWithRequest(r).Warn("audit event failed", slog.String("type", string(t)), slog.String("error", err.Error()))
	}
}
