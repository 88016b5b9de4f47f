// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package main contains certdeploy main function to start the certdeploy service.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/absmach/certdeploy"
	"github.com/absmach/certdeploy/api"
	httpapi "github.com/absmach/certdeploy/api/http"
	"github.com/absmach/certdeploy/internal/uuid"
	cpostgres "github.com/absmach/certdeploy/postgres"
	"github.com/absmach/certdeploy/remote"
	"github.com/absmach/certdeploy/secrets"
	"github.com/absmach/certdeploy/tracing"
	jaegerclient "github.com/absmach/supermq/pkg/jaeger"
	"github.com/absmach/supermq/pkg/postgres"
	"github.com/absmach/supermq/pkg/prometheus"
	smq "github.com/absmach/supermq/pkg/server"
	httpserver "github.com/absmach/supermq/pkg/server/http"
	"github.com/caarlos0/env/v10"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	svcName          = "certdeploy"
	envPrefixDB      = "AM_CERTDEPLOY_DB_"
	envPrefixHTTP    = "AM_CERTDEPLOY_HTTP_"
	envPrefixRemote  = "AM_CERTDEPLOY_REMOTE_"
	envPrefixOpenBao = "AM_CERTDEPLOY_OPENBAO_"
	defDB            = "certdeploy"
	defSvcHTTPPort   = "9020"
)

type config struct {
	LogLevel          string        `env:"AM_CERTDEPLOY_LOG_LEVEL"          envDefault:"info"`
	JaegerURL         url.URL       `env:"AM_JAEGER_URL"                    envDefault:"http://jaeger:4318"`
	InstanceID        string        `env:"AM_CERTDEPLOY_INSTANCE_ID"        envDefault:""`
	TraceRatio        float64       `env:"AM_JAEGER_TRACE_RATIO"            envDefault:"1.0"`
	DestinationConfig string        `env:"AM_CERTDEPLOY_DESTINATION_CONFIG" envDefault:""`
	SweepOrphans      bool          `env:"AM_CERTDEPLOY_SWEEP_ORPHANS"      envDefault:"false"`
	BatchLimit        int           `env:"AM_CERTDEPLOY_BATCH_LIMIT"        envDefault:"4"`
	RetryMaxElapsed   time.Duration `env:"AM_CERTDEPLOY_RETRY_MAX_ELAPSED"  envDefault:"30s"`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load %s configuration : %s", svcName, err)
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err.Error())
	}

	var exitCode int
	defer mgExit(&exitCode)

	if cfg.InstanceID == "" {
		cfg.InstanceID, err = uuid.New().ID()
		if err != nil {
			logger.Error(fmt.Sprintf("failed to generate instance ID: %s", err))
			exitCode = 1
			return
		}
	}

	remoteCfg := remote.Config{}
	if err := env.ParseWithOptions(&remoteCfg, env.Options{Prefix: envPrefixRemote}); err != nil {
		logger.Error(fmt.Sprintf("failed to load %s remote configuration : %s", svcName, err))
		exitCode = 1
		return
	}
	if cfg.DestinationConfig != "" {
		remoteCfg, err = remote.LoadConfig(cfg.DestinationConfig, remoteCfg)
		if err != nil {
			logger.Error(fmt.Sprintf("failed to load destination file %s : %s", cfg.DestinationConfig, err))
			exitCode = 1
			return
		}
	}
	if remoteCfg.APIKey == "" {
		remoteCfg.APIKey, err = apiKeyFromOpenBao(ctx, logger)
		if err != nil {
			logger.Error(fmt.Sprintf("failed to read remote API key : %s", err))
			exitCode = 1
			return
		}
	}

	dbConfig := postgres.Config{Name: defDB}
	if err := env.ParseWithOptions(&dbConfig, env.Options{Prefix: envPrefixDB}); err != nil {
		logger.Error(fmt.Sprintf("failed to load %s database configuration : %s", svcName, err))
		exitCode = 1
		return
	}
	db, err := postgres.Setup(dbConfig, *cpostgres.Migration())
	if err != nil {
		logger.Error(err.Error())
		exitCode = 1
		return
	}
	defer db.Close()

	tp, err := jaegerclient.NewProvider(ctx, svcName, cfg.JaegerURL, cfg.InstanceID, cfg.TraceRatio)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to init Jaeger: %s", err))
		exitCode = 1
		return
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("Error shutting down tracer provider: %v", err))
		}
	}()
	tracer := tp.Tracer(svcName)

	database := postgres.NewDatabase(db, dbConfig, tracer)
	svc := newService(tracer, logger, database, remoteCfg, cfg)

	httpServerConfig := smq.Config{Port: defSvcHTTPPort}
	if err := env.ParseWithOptions(&httpServerConfig, env.Options{Prefix: envPrefixHTTP}); err != nil {
		logger.Error(fmt.Sprintf("failed to load %s HTTP server configuration : %s", svcName, err))
		exitCode = 1
		return
	}

	hs := httpserver.NewServer(ctx, cancel, svcName, httpServerConfig, httpapi.MakeHandler(svc, logger, cfg.InstanceID), logger)

	g.Go(func() error {
		return hs.Start()
	})

	g.Go(func() error {
		return smq.StopSignalHandler(ctx, cancel, logger, svcName, hs)
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("%s service terminated: %s", svcName, err))
	}
}

func newService(tracer trace.Tracer, logger *slog.Logger, db postgres.Database, remoteCfg remote.Config, cfg config) certdeploy.Service {
	client := remote.NewClient(remoteCfg, logger)
	client = remote.NewRetryingClient(client, cfg.RetryMaxElapsed)
	reconciler := certdeploy.NewReconciler(client, logger, certdeploy.Options{SweepOrphans: cfg.SweepOrphans})

	repo := cpostgres.NewRepository(db)
	svc := certdeploy.NewService(reconciler, repo, uuid.New(), cfg.BatchLimit)
	svc = api.LoggingMiddleware(svc, logger)
	counter, latency := prometheus.MakeMetrics(svcName, "api")
	svc = api.MetricsMiddleware(svc, counter, latency)
	svc = tracing.New(svc, tracer)

	return svc
}

func apiKeyFromOpenBao(ctx context.Context, logger *slog.Logger) (string, error) {
	obCfg := secrets.Config{}
	if err := env.ParseWithOptions(&obCfg, env.Options{Prefix: envPrefixOpenBao}); err != nil {
		return "", err
	}
	if obCfg.AppRole == "" || obCfg.AppSecret == "" {
		return "", fmt.Errorf("neither %sAPI_KEY nor OpenBao AppRole credentials are set", envPrefixRemote)
	}

	ob, err := secrets.NewOpenBao(obCfg, logger)
	if err != nil {
		return "", err
	}
	return ob.APIKey(ctx)
}

func initLogger(levelText string) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelText)); err != nil {
		return &slog.Logger{}, fmt.Errorf(`{"level":"error","message":"%s: %s","ts":"%s"}`, err, levelText, time.RFC3339Nano)
	}

	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(logHandler), nil
}

func mgExit(exitCode *int) {
	if *exitCode != 0 {
		os.Exit(*exitCode)
	}
}
