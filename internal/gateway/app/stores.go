package app

import (
	"fmt"

	"questio/internal/gateway/config"
	"questio/internal/gateway/realtime"
	imagerepo "questio/internal/gateway/repository/image"
	sessionrepo "questio/internal/gateway/repository/session"
	"questio/internal/lead"
	"questio/internal/logger"
)

type gatewayStores struct {
	sessions sessionrepo.Store
	images   imagerepo.Store
	leads    lead.Store
	bus      realtime.Bus
}

func (s *gatewayStores) Close() {
	if s.leads != nil {
		_ = s.leads.Close()
	}
	if s.bus != nil {
		_ = s.bus.Close()
	}
}

func initStores(cfg *config.Config, log *logger.Logger) (*gatewayStores, error) {
	leads, err := initLeadStore(cfg.Lead, log)
	if err != nil {
		return nil, err
	}
	images, err := chooseImageStore(cfg, imagerepo.NewInlineStore(), "inline", newImageS3StoreFactory(cfg, log), log)
	if err != nil {
		_ = leads.Close()
		return nil, err
	}
	bus, err := initEventBus(cfg.Events, log)
	if err != nil {
		_ = leads.Close()
		return nil, err
	}
	return &gatewayStores{
		sessions: sessionrepo.NewLRUStore(sessionrepo.Config{
			MaxEntries: cfg.Session.MaxEntries,
			TTL:        cfg.Session.TTL,
		}),
		images: images,
		leads:  leads,
		bus:    bus,
	}, nil
}

func initLeadStore(cfg config.LeadConfig, log *logger.Logger) (lead.Store, error) {
	switch cfg.Store {
	case "", "memory":
		log.Warn("lead store: in-memory, leads are lost on restart")
		return lead.NewMemoryStore(), nil
	case "sqlite":
		s, err := lead.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite lead store: %w", err)
		}
		log.Info("lead store: sqlite", "path", cfg.SQLitePath)
		return s, nil
	case "postgres":
		s, err := lead.NewPostgresStore(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres lead store: %w", err)
		}
		log.Info("lead store: postgres")
		return s, nil
	default:
		return nil, fmt.Errorf("unknown LEAD_STORE %q", cfg.Store)
	}
}

func newImageS3StoreFactory(cfg *config.Config, log *logger.Logger) func() (imagerepo.Store, error) {
	return func() (imagerepo.Store, error) {
		s3Cfg := imagerepo.S3Config{
			Endpoint:  cfg.Image.Endpoint,
			Region:    cfg.Image.Region,
			AccessKey: cfg.Image.AccessKey,
			SecretKey: cfg.Image.SecretKey,
			Bucket:    cfg.Image.Bucket,
			UseSSL:    cfg.Image.UseSSL,
			URLExpiry: cfg.Image.URLExpiry,
		}
		s3Store, err := imagerepo.NewS3Store(s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize image s3 store: %w", err)
		}
		log.Info("image store: s3", "bucket", s3Cfg.Bucket, "endpoint", s3Cfg.Endpoint)
		return s3Store, nil
	}
}

func chooseImageStore(
	cfg *config.Config,
	fallback imagerepo.Store,
	fallbackLabel string,
	s3Factory func() (imagerepo.Store, error),
	log *logger.Logger,
) (imagerepo.Store, error) {
	if cfg.Image.CanUseS3() {
		return s3Factory()
	}
	if cfg.Image.Endpoint != "" {
		log.Warn("image store: s3 config incomplete, using fallback", "fallback", fallbackLabel)
	}
	if fallback == nil {
		return nil, fmt.Errorf("image fallback store is nil")
	}
	return fallback, nil
}

func initEventBus(cfg config.EventsConfig, log *logger.Logger) (realtime.Bus, error) {
	if cfg.RedisAddr == "" {
		return realtime.NewMemoryBus(), nil
	}
	bus, err := realtime.NewRedisBus(cfg.RedisAddr, cfg.RedisChannel, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect event bus: %w", err)
	}
	log.Info("event bus: redis", "channel", cfg.RedisChannel)
	return bus, nil
}
