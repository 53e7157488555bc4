package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Leganyst/salon-booking/internal/agenda"
	"github.com/Leganyst/salon-booking/internal/calendar"
	"github.com/Leganyst/salon-booking/internal/model"
	"github.com/Leganyst/salon-booking/internal/reminder"
	"github.com/Leganyst/salon-booking/internal/repository"
	"github.com/Leganyst/salon-booking/internal/stats"
)

// AdminListAppointments: ?range=all|today|tomorrow|week&day=2006-01-02&includePast=true&page=&pageSize=
func (s *Server) AdminListAppointments(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	q := r.URL.Query()

	quick, err := agenda.ParseQuickRange(q.Get("range"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid range", map[string]string{"range": q.Get("range")})
		return
	}
	opts := agenda.Options{Range: quick}

	if raw := q.Get("day"); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, s.Location)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid day", map[string]string{"day": raw})
			return
		}
		opts.Day = &day
	}
	if raw := q.Get("includePast"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid includePast", nil)
			return
		}
		opts.IncludePast = v
	}
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	list, err := s.Appointments.List(r.Context(), nil, nil)
	if err != nil {
		log.Error("admin appointments: list failed", slog.String("error", err.Error()))
		WriteError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}

	now := s.now()
	items := agenda.Annotate(agenda.FilterAndSort(list, opts, now), now)
	p := calendar.Paginate(items, page, pageSize)

	views := make([]AppointmentView, 0, len(p.Items))
	for _, it := range p.Items {
		views = append(views, newItemView(it, s.Location))
	}
	WriteJSON(w, http.StatusOK, calendar.Page[AppointmentView]{
		Items:      views,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
		Total:      p.Total,
	})
}

type UpdateAppointmentRequest struct {
	Date      *string `json:"date" validate:"omitempty,date"`
	Time      *string `json:"time" validate:"omitempty,clock"`
	Status    *string `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Notes     *string `json:"notes" validate:"omitempty,max=500"`
	ServiceID *string `json:"serviceId"` // "" отвязывает услугу
}

func (s *Server) AdminUpdateAppointment(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, "validation error", s.Val.Details(err))
		return
	}

	appt, err := s.Appointments.GetByID(r.Context(), id)
	if err != nil {
		s.writeRepoError(w, r, "admin appointments: get", err)
		return
	}

	changed := map[string]any{}
	if req.Date != nil || req.Time != nil {
		local := appt.Date.In(s.Location)
		date, clock := local.Format("2006-01-02"), local.Format("15:04")
		if req.Date != nil {
			date = *req.Date
		}
		if req.Time != nil {
			clock = *req.Time
		}
		at, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, s.Location)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid date", nil)
			return
		}
		appt.Date = at
		changed["date"] = at
	}
	if req.Status != nil {
		status, err := model.ParseStatus(*req.Status)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid status", nil)
			return
		}
		appt.Status = status
		changed["status"] = status
	}
	if req.Notes != nil {
		appt.Notes = strings.TrimSpace(*req.Notes)
		changed["notes"] = appt.Notes
	}
	if req.ServiceID != nil {
		if raw := strings.TrimSpace(*req.ServiceID); raw == "" {
			appt.ServiceID = nil
			appt.Service = nil
		} else {
			svcID, err := uuid.Parse(raw)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "invalid serviceId", nil)
				return
			}
			svc, err := s.Services.GetByID(r.Context(), svcID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					WriteError(w, http.StatusNotFound, "service not found", nil)
					return
				}
				s.writeRepoError(w, r, "admin appointments: service lookup", err)
				return
			}
			// Смена услуги обновляет снимок цены.
			price := svc.Price
			appt.ServiceID = &svc.ID
			appt.ServicePrice = &price
			appt.Service = svc
		}
		changed["serviceId"] = appt.ServiceID
	}

	if err := s.Appointments.Update(r.Context(), appt); err != nil {
		s.writeRepoError(w, r, "admin appointments: update", err)
		return
	}
	s.recordEvent(r, model.EventTypeAppointmentUpdated, &appt.ID, changed)
	log.Info("admin appointments: updated", slog.String("id", id.String()))
	WriteJSON(w, http.StatusOK, newAppointmentView(*appt, s.Location))
}

func (s *Server) AdminDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.Appointments.Delete(r.Context(), id); err != nil {
		s.writeRepoError(w, r, "admin appointments: delete", err)
		return
	}
	s.recordEvent(r, model.EventTypeAppointmentDeleted, &id, map[string]any{"id": id})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	services, err := s.Services.List(r.Context(), false)
	if err != nil {
		s.writeRepoError(w, r, "admin dashboard: services", err)
		return
	}
	list, err := s.Appointments.List(r.Context(), nil, nil)
	if err != nil {
		s.writeRepoError(w, r, "admin dashboard: appointments", err)
		return
	}
	WriteJSON(w, http.StatusOK, stats.BuildDashboard(services, list, s.now()))
}

func (s *Server) AdminListServices(w http.ResponseWriter, r *http.Request) {
	list, err := s.Services.List(r.Context(), false)
	if err != nil {
		s.writeRepoError(w, r, "admin services: list", err)
		return
	}
	WriteJSON(w, http.StatusOK, newServiceViews(list))
}

type ServiceRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Price    int64  `json:"price" validate:"gte=0"`
	Duration int    `json:"duration" validate:"gte=0,lte=1440"`
	IsActive *bool  `json:"isActive"`
}

func (req ServiceRequest) apply(svc *model.Service) {
	svc.Name = strings.TrimSpace(req.Name)
	svc.Price = req.Price
	svc.Duration = req.Duration
	svc.IsActive = req.IsActive == nil || *req.IsActive
}

func (s *Server) AdminCreateService(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, "validation error", s.Val.Details(err))
		return
	}
	var svc model.Service
	req.apply(&svc)
	if err := s.Services.Create(r.Context(), &svc); err != nil {
		s.writeRepoError(w, r, "admin services: create", err)
		return
	}
	WriteJSON(w, http.StatusCreated, newServiceView(svc))
}

func (s *Server) AdminUpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var req ServiceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, "validation error", s.Val.Details(err))
		return
	}
	svc := model.Service{ID: id}
	req.apply(&svc)
	if err := s.Services.Update(r.Context(), &svc); err != nil {
		s.writeRepoError(w, r, "admin services: update", err)
		return
	}
	WriteJSON(w, http.StatusOK, newServiceView(svc))
}

func (s *Server) AdminDeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.Services.Delete(r.Context(), id); err != nil {
		s.writeRepoError(w, r, "admin services: delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) AdminRunDigest(w http.ResponseWriter, r *http.Request) {
	kind, err := reminder.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "unknown digest kind", nil)
		return
	}
	if s.Digest == nil {
		WriteError(w, http.StatusServiceUnavailable, "digest not configured", nil)
		return
	}
	res, err := s.Digest.RunDigest(r.Context(), kind)
	if err != nil {
		s.logWithRequest(r).Error("admin digest failed", slog.String("kind", string(kind)), slog.String("error", err.Error()))
		WriteError(w, http.StatusBadGateway, "digest failed", nil)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

func (s *Server) AdminListEvents(w http.ResponseWriter, r *http.Request) {
	if s.Events == nil {
		WriteJSON(w, http.StatusOK, []model.Event{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := s.Events.ListRecent(r.Context(), limit)
	if err != nil {
		s.writeRepoError(w, r, "admin events: list", err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) writeRepoError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "not found", nil)
		return
	}
	s.logWithRequest(r).Error(op+" failed", slog.String("error", err.Error()))
	WriteError(w, http.StatusInternalServerError, "internal error", nil)
}
