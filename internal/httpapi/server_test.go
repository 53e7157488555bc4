package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Leganyst/salon-booking/internal/auth"
	"github.com/Leganyst/salon-booking/internal/calendar"
	"github.com/Leganyst/salon-booking/internal/model"
	"github.com/Leganyst/salon-booking/internal/reminder"
	"github.com/Leganyst/salon-booking/internal/repository"
	"github.com/Leganyst/salon-booking/internal/stats"
)

var business = time.FixedZone("UTC-3", -3*3600)

type stubDigester struct{ kinds []reminder.Kind }

func (d *stubDigester) RunDigest(_ context.Context, kind reminder.Kind) (reminder.Result, error) {
	d.kinds = append(d.kinds, kind)
	return reminder.Result{OK: true, Empty: true, Kind: kind}, nil
}

type testEnv struct {
	srv      *Server
	handler  http.Handler
	db       *gorm.DB
	digester *stubDigester
	token    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	admins := repository.NewGormAdminRepository(db)
	hash, err := auth.HashPassword("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := admins.Create(context.Background(), &model.AdminUser{Username: "owner", PasswordHash: hash, IsActive: true}); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	tokens := auth.NewManager("test-secret", time.Hour)
	digester := &stubDigester{}
	srv := &Server{
		Appointments: repository.NewGormAppointmentRepository(db),
		Services:     repository.NewGormServiceRepository(db),
		Events:       repository.NewGormEventRepository(db),
		Auth:         auth.NewAuthenticator(admins, tokens),
		Tokens:       tokens,
		Digest:       digester,
		Val:          NewValidator(),
		Log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Location:     business,
		Now:          func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, business) },
	}
	token, _, err := tokens.NewAccessToken("owner", auth.RoleAdmin)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return &testEnv{srv: srv, handler: srv.Routes(), db: db, digester: digester, token: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func (e *testEnv) seedService(t *testing.T, name string, price int64) model.Service {
	t.Helper()
	svc := model.Service{Name: name, Price: price, Duration: 60, IsActive: true}
	if err := e.srv.Services.Create(context.Background(), &svc); err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return svc
}

func TestHealthz(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodGet, "/healthz", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodGet, "/api/admin/appointments", nil, false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminLogin(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/admin/login", AdminLoginRequest{Username: "owner", Password: "nope"}, false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}

	rec = e.do(t, http.MethodPost, "/api/admin/login", AdminLoginRequest{Username: "Owner", Password: "secret"}, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	session := decode[auth.Session](t, rec)
	if session.Token == "" {
		t.Fatalf("expected token in response")
	}

	// cookie из ответа даёт доступ к админке
	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	out := httptest.NewRecorder()
	e.handler.ServeHTTP(out, req)
	if out.Code != http.StatusOK {
		t.Fatalf("expected cookie auth to work, got %d", out.Code)
	}
}

func TestCreateAppointment(t *testing.T) {
	e := newTestEnv(t)
	svc := e.seedService(t, "Lifting", 15000)

	rec := e.do(t, http.MethodPost, "/api/appointments", CreateAppointmentRequest{
		ServiceID: svc.ID.String(),
		Date:      "2025-03-15",
		Time:      "10:30",
		Name:      "Ana",
		LastName:  "Pérez",
		Phone:     "+5491155550000",
	}, false)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	v := decode[AppointmentView](t, rec)
	if v.Status != model.AppointmentStatusPending || v.Price != 15000 || v.ServiceName != "Lifting" {
		t.Fatalf("unexpected view %+v", v)
	}
	if !v.Date.Equal(time.Date(2025, 3, 15, 10, 30, 0, 0, business)) {
		t.Fatalf("unexpected date %v", v.Date)
	}

	// снимок цены не меняется при изменении услуги
	svc.Price = 20000
	if err := e.srv.Services.Update(context.Background(), &svc); err != nil {
		t.Fatalf("update service: %v", err)
	}
	stored, err := e.srv.Appointments.GetByID(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Revenue() != 15000 {
		t.Fatalf("expected snapshot price 15000, got %d", stored.Revenue())
	}
}

func TestCreateAppointment_Rejects(t *testing.T) {
	e := newTestEnv(t)
	svc := e.seedService(t, "Lifting", 15000)

	cases := []struct {
		name string
		req  CreateAppointmentRequest
		code int
	}{
		{"past", CreateAppointmentRequest{ServiceID: svc.ID.String(), Date: "2025-03-14", Time: "09:00", Name: "A", Phone: "1234567"}, http.StatusBadRequest},
		{"bad clock", CreateAppointmentRequest{ServiceID: svc.ID.String(), Date: "2025-03-15", Time: "25:00", Name: "A", Phone: "1234567"}, http.StatusBadRequest},
		{"missing name", CreateAppointmentRequest{ServiceID: svc.ID.String(), Date: "2025-03-15", Time: "10:00", Phone: "1234567"}, http.StatusBadRequest},
		{"unknown service", CreateAppointmentRequest{ServiceID: "6f1c2a9e-3b7d-4c1e-9a55-0d2f6b8e4a10", Date: "2025-03-15", Time: "10:00", Name: "A", Phone: "1234567"}, http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := e.do(t, http.MethodPost, "/api/appointments", tc.req, false)
		if rec.Code != tc.code {
			t.Fatalf("%s: expected %d, got %d: %s", tc.name, tc.code, rec.Code, rec.Body.String())
		}
	}
}

func TestAdminListAppointments(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	for _, a := range []model.Appointment{
		{Date: time.Date(2025, 3, 14, 12, 30, 0, 0, business), ClientName: "soon"},
		{Date: time.Date(2025, 3, 15, 9, 0, 0, 0, business), ClientName: "tomorrow"},
		{Date: time.Date(2025, 3, 13, 9, 0, 0, 0, business), ClientName: "yesterday"},
		{Date: time.Date(2025, 3, 30, 9, 0, 0, 0, business), ClientName: "later"},
	} {
		if err := e.srv.Appointments.Create(ctx, &a); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	rec := e.do(t, http.MethodGet, "/api/admin/appointments", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	page := decode[calendar.Page[AppointmentView]](t, rec)
	if page.Total != 3 || page.Items[0].ClientName != "soon" {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Items[0].Urgency == nil || page.Items[0].Urgency.State != calendar.UrgencyVerySoon {
		t.Fatalf("expected very-soon urgency, got %+v", page.Items[0].Urgency)
	}

	rec = e.do(t, http.MethodGet, "/api/admin/appointments?range=tomorrow", nil, true)
	page = decode[calendar.Page[AppointmentView]](t, rec)
	if page.Total != 1 || page.Items[0].ClientName != "tomorrow" {
		t.Fatalf("unexpected tomorrow page %+v", page)
	}

	rec = e.do(t, http.MethodGet, "/api/admin/appointments?includePast=true&pageSize=2&page=2", nil, true)
	page = decode[calendar.Page[AppointmentView]](t, rec)
	if page.Total != 4 || len(page.Items) != 2 || page.Items[1].ClientName != "yesterday" {
		t.Fatalf("unexpected includePast page %+v", page)
	}

	rec = e.do(t, http.MethodGet, "/api/admin/appointments?range=month", nil, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown range, got %d", rec.Code)
	}
}

func TestAdminUpdateAndDeleteAppointment(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	svc := e.seedService(t, "Cejas", 8000)
	a := model.Appointment{Date: time.Date(2025, 3, 20, 10, 0, 0, 0, business), ClientName: "Ana"}
	if err := e.srv.Appointments.Create(ctx, &a); err != nil {
		t.Fatalf("seed: %v", err)
	}

	status := "confirmed"
	clock := "16:45"
	sid := svc.ID.String()
	rec := e.do(t, http.MethodPatch, "/api/admin/appointments/"+a.ID.String(), UpdateAppointmentRequest{
		Status:    &status,
		Time:      &clock,
		ServiceID: &sid,
	}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	v := decode[AppointmentView](t, rec)
	if v.Status != model.AppointmentStatusConfirmed || v.Price != 8000 {
		t.Fatalf("unexpected view %+v", v)
	}
	if !v.Date.Equal(time.Date(2025, 3, 20, 16, 45, 0, 0, business)) {
		t.Fatalf("expected time change to keep the day, got %v", v.Date)
	}

	bad := "done"
	if rec := e.do(t, http.MethodPatch, "/api/admin/appointments/"+a.ID.String(), UpdateAppointmentRequest{Status: &bad}, true); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d", rec.Code)
	}

	if rec := e.do(t, http.MethodDelete, "/api/admin/appointments/"+a.ID.String(), nil, true); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := e.do(t, http.MethodDelete, "/api/admin/appointments/"+a.ID.String(), nil, true); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}

	rec = e.do(t, http.MethodGet, "/api/admin/events", nil, true)
	events := decode[[]model.Event](t, rec)
	if len(events) != 2 {
		t.Fatalf("expected update+delete events, got %d", len(events))
	}
}

func TestAdminServicesAndDashboard(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/admin/services", ServiceRequest{Name: "Pestañas", Price: 12000, Duration: 90}, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	svc := decode[ServiceView](t, rec)

	inactive := false
	rec = e.do(t, http.MethodPut, "/api/admin/services/"+svc.ID.String(), ServiceRequest{Name: "Pestañas", Price: 13000, IsActive: &inactive}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	public := decode[[]ServiceView](t, e.do(t, http.MethodGet, "/api/services", nil, false))
	if len(public) != 0 {
		t.Fatalf("expected inactive service hidden from public list, got %+v", public)
	}

	price := int64(12000)
	a := model.Appointment{Date: time.Date(2025, 3, 10, 10, 0, 0, 0, business), ClientName: "Ana", ServiceID: &svc.ID, ServicePrice: &price}
	if err := e.srv.Appointments.Create(context.Background(), &a); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec = e.do(t, http.MethodGet, "/api/admin/dashboard", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	d := decode[stats.Dashboard](t, rec)
	if d.TotalRevenue != 12000 || d.ByMonth["2025-3"].Count != 1 {
		t.Fatalf("unexpected dashboard %+v", d)
	}
	if len(d.ByService) != 1 || d.ByService[0].TotalIncome != 13000 {
		t.Fatalf("expected nominal income with current price, got %+v", d.ByService)
	}

	if rec := e.do(t, http.MethodDelete, "/api/admin/services/"+svc.ID.String(), nil, true); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	d = decode[stats.Dashboard](t, e.do(t, http.MethodGet, "/api/admin/dashboard", nil, true))
	if d.ResolvedByService[model.NoServiceLabel].Total != 12000 {
		t.Fatalf("expected snapshot revenue under no-service label, got %+v", d.ResolvedByService)
	}
}

func TestAdminRunDigest(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/admin/digest/tomorrow", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	res := decode[reminder.Result](t, rec)
	if !res.OK || res.Kind != reminder.KindTomorrow || len(e.digester.kinds) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}

	if rec := e.do(t, http.MethodPost, "/api/admin/digest/yesterday", nil, true); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	e := newTestEnv(t)
	e.srv.Limiter = NewMemoryRateLimiter(1, time.Minute)
	e.handler = e.srv.Routes()

	first := e.do(t, http.MethodPost, "/api/appointments", map[string]string{}, false)
	if first.Code == http.StatusTooManyRequests {
		t.Fatalf("first request should pass the limiter")
	}
	second := e.do(t, http.MethodPost, "/api/appointments", map[string]string{}, false)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
}
