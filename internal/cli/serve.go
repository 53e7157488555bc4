package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Leganyst/salon-booking/internal/auth"
	"github.com/Leganyst/salon-booking/internal/httpapi"
	"github.com/Leganyst/salon-booking/internal/reminder"
	"github.com/Leganyst/salon-booking/internal/runtime"
	"github.com/Leganyst/salon-booking/internal/service"
)

type ServeCmd struct {
	NoScheduler bool `help:"Do not start the digest scheduler even if SCHEDULER_ENABLED is set."`
}

func (c *ServeCmd) Run(cc *Context) error {
	cfg := cc.Config
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required for serve")
	}

	ctx, stop := runtime.SignalContext()
	defer stop()

	a, err := newApp(ctx, cc)
	if err != nil {
		return err
	}
	defer a.Close()

	tokens := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.AccessTTLMinutes)*time.Minute)
	window := time.Duration(cfg.RateLimitWindowSec) * time.Second
	var limiter httpapi.Limiter
	if a.redis != nil {
		limiter = httpapi.NewRedisRateLimiter(a.redis, cfg.RateLimitBookings, window, "salon:ratelimit")
	} else {
		limiter = httpapi.NewMemoryRateLimiter(cfg.RateLimitBookings, window)
	}

	api := &httpapi.Server{
		Appointments: a.appointments,
		Services:     a.services,
		Events:       a.events,
		Auth:         auth.NewAuthenticator(a.admins, tokens),
		Tokens:       tokens,
		Digest:       a.job,
		Limiter:      limiter,
		Val:          httpapi.NewValidator(),
		Log:          cc.Logger,
		Location:     cfg.Location,
		CookieSecure: cfg.CookieSecure,
	}
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	admin := service.NewAdminService(a.job, a.appointments, a.services, cc.Logger, cfg.Location)
	grpcSrv, health := service.NewServer(admin, cc.Logger)

	var sched *reminder.Scheduler
	if cfg.SchedulerEnabled && !c.NoScheduler {
		sched, err = reminder.NewScheduler(a.job, cc.Logger, reminder.SchedulerConfig{
			Location:   cfg.Location,
			TodayAt:    cfg.DigestTodayAt,
			TomorrowAt: cfg.DigestTomorrowAt,
		})
		if err != nil {
			return err
		}
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPCAddr, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cc.Logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		cc.Logger.Info("grpc server starting", "addr", lis.Addr().String())
		if err := grpcSrv.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})

	if sched != nil {
		g.Go(func() error {
			cc.Logger.Info("digest scheduler started", "today_at", cfg.DigestTodayAt, "tomorrow_at", cfg.DigestTomorrowAt)
			sched.Run(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		cc.Logger.Info("shutting down")
		health.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			cc.Logger.Error("http shutdown", "err", err)
		}
		grpcSrv.GracefulStop()
		return nil
	})

	return g.Wait()
}
