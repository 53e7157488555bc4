package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/Leganyst/salon-booking/internal/cli"
	"github.com/Leganyst/salon-booking/internal/config"
	"github.com/Leganyst/salon-booking/internal/runtime"
	"github.com/Leganyst/salon-booking/internal/telemetry"
)

const serviceName = "salon-booking"

var CLI struct {
	Version kong.VersionFlag

	Serve   cli.ServeCmd   `cmd:"" help:"Run HTTP and gRPC servers." default:"1"`
	Digest  cli.DigestCmd  `cmd:"" help:"Send the pending appointments digest once."`
	Migrate cli.MigrateCmd `cmd:"" help:"Apply database migrations."`
	Admin   struct {
		Create cli.AdminCreateCmd `cmd:"" help:"Create an admin panel account."`
	} `cmd:"" help:"Manage admin accounts."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("salon"),
		kong.Description("Beauty salon booking backend"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	logger := runtime.NewLogger(serviceName)

	// 1. Конфиги из env.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load config: %v\n", err)
		os.Exit(1)
	}
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load db config: %v\n", err)
		os.Exit(1)
	}

	// 2. Трассировка; без OTEL_ENABLED ничего не экспортируется.
	shutdown, err := telemetry.Setup(context.Background(), telemetry.ConfigFromEnv(serviceName))
	if err != nil {
		logger.Warn("otel setup failed", "err", err)
		shutdown = func(context.Context) error { return nil }
	}

	err = kctx.Run(&cli.Context{Config: cfg, DB: dbCfg, Logger: logger})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	_ = shutdown(ctx)
	cancel()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
