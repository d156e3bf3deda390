package app

import (
	"context"
	"errors"
	"fmt"

	"questio/internal/catalog"
	"questio/internal/gateway/config"
	"questio/internal/gateway/handler"
	"questio/internal/gateway/handler/rpc"
	"questio/internal/gateway/realtime"
	"questio/internal/gateway/server"
	"questio/internal/gateway/service/session"
	"questio/internal/lead"
	llmclient "questio/internal/llmClient"
	"questio/internal/logger"
	"questio/internal/observability"
	"questio/internal/pipeline"
	"questio/internal/retrieval"
)

type App struct {
	server *server.Server
	log    *logger.Logger

	stores        *gatewayStores
	llm           llmclient.Client
	stopForwarder context.CancelFunc
	shutdownOTel  func(context.Context) error
}

func New(args []string) (*App, error) {
	cfg, err := config.Load(args)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	log = log.With("env", cfg.Env)

	ctx := context.Background()
	shutdownOTel, err := observability.Init(ctx, log, observability.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: "questio-gateway",
		Environment: cfg.Env,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init tracing: %w", err)
	}

	// Dependencies
	stores, err := initStores(cfg, log)
	if err != nil {
		_ = shutdownOTel(ctx)
		return nil, err
	}
	client, err := newLLMClient(ctx, cfg.LLM, log)
	if err != nil {
		stores.Close()
		_ = shutdownOTel(ctx)
		return nil, err
	}

	hub := realtime.NewHub()
	orch := pipeline.New(client, retrieval.Default(), log)
	sessionSvc := session.New(orch, stores.sessions, stores.images, lead.NewService(stores.leads), stores.bus, hub, session.Options{
		Catalog:           catalog.Default(),
		GenerationTimeout: cfg.LLM.GenerationTimeout,
		Log:               log,
	})
	fwdCtx, stopForwarder := context.WithCancel(ctx)
	if err := sessionSvc.Forward(fwdCtx); err != nil {
		stopForwarder()
		_ = client.Close()
		stores.Close()
		_ = shutdownOTel(ctx)
		return nil, fmt.Errorf("failed to start event forwarder: %w", err)
	}

	surveyHandler := rpc.NewSurveyHandler(sessionSvc, log)
	watchHandler := handler.NewWatchHandler(sessionSvc, log)

	// Routing & Server
	mux := server.NewMux(surveyHandler, watchHandler, cfg.CORSOrigins)
	srv := server.New(cfg.Port, mux, log)

	return &App{
		server:        srv,
		log:           log,
		stores:        stores,
		llm:           client,
		stopForwarder: stopForwarder,
		shutdownOTel:  shutdownOTel,
	}, nil
}

func (a *App) Log() *logger.Logger { return a.log }

func (a *App) Start() error {
	return a.server.Start()
}

// Shutdown stops accepting requests first, then releases the generation
// client, stores and the tracer.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	a.stopForwarder()
	err = errors.Join(err, a.llm.Close())
	a.stores.Close()
	err = errors.Join(err, a.shutdownOTel(ctx))
	a.log.Sync()
	return err
}
