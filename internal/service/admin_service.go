package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Leganyst/salon-booking/internal/model"
	"github.com/Leganyst/salon-booking/internal/reminder"
	"github.com/Leganyst/salon-booking/internal/stats"
)

type Digester interface {
	RunDigest(ctx context.Context, kind reminder.Kind) (reminder.Result, error)
}

type AppointmentLister interface {
	List(ctx context.Context, from, to *time.Time) ([]model.Appointment, error)
}

type ServiceLister interface {
	List(ctx context.Context, onlyActive bool) ([]model.Service, error)
}

// AdminService: административные RPC поверх тех же репозиториев, что и HTTP.
type AdminService struct {
	digest       Digester
	appointments AppointmentLister
	services     ServiceLister
	logger       *slog.Logger
	loc          *time.Location
	now          func() time.Time
}

func NewAdminService(
	digest Digester,
	appointments AppointmentLister,
	services ServiceLister,
	logger *slog.Logger,
	loc *time.Location,
) *AdminService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{
		digest:       digest,
		appointments: appointments,
		services:     services,
		logger:       logger,
		loc:          loc,
		now:          time.Now,
	}
}

// WithClock подменяет часы (для тестов).
func (s *AdminService) WithClock(now func() time.Time) *AdminService {
	s.now = now
	return s
}

// RunDigest отправляет дайджест; kind передаётся строкой "today" или "tomorrow".
func (s *AdminService) RunDigest(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	kind, err := reminder.ParseKind(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "kind must be today or tomorrow")
	}
	if s.digest == nil {
		return nil, status.Error(codes.Unavailable, "digest not configured")
	}

	res, err := s.digest.RunDigest(ctx, kind)
	if err != nil {
		s.logger.Error("grpc digest failed", slog.String("kind", string(kind)), slog.String("error", err.Error()))
		return nil, status.Errorf(codes.Internal, "run digest: %v", err)
	}
	return toStruct(res)
}

func (s *AdminService) GetDashboard(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	services, err := s.services.List(ctx, false)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list services: %v", err)
	}
	list, err := s.appointments.List(ctx, nil, nil)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list appointments: %v", err)
	}
	return toStruct(stats.BuildDashboard(services, list, s.now().In(s.loc)))
}

// toStruct переводит JSON-представление ответа в google.protobuf.Struct.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

var errNilServer = errors.New("admin service server is nil")
