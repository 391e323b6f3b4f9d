package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clockworks/huepanel/internal/bridge"
	"github.com/clockworks/huepanel/internal/config"
	"github.com/clockworks/huepanel/internal/db"
	"github.com/clockworks/huepanel/internal/store"
)

// Services is a container for all application services.
// It manages service initialization order and dependencies.
type Services struct {
	cfg *config.Config

	// Core infrastructure
	DB    *db.DB
	Store *store.Store

	// Bridge access
	Session *bridge.Session
	Bridge  *bridge.Service
	Events  *bridge.Stream

	wg sync.WaitGroup
}

// NewServices creates all services with proper dependency injection.
func NewServices(cfg *config.Config) (*Services, error) {
	s := &Services{cfg: cfg}

	// Initialize database
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	s.DB = database

	// Initialize store
	s.Store = store.New(database.DB)
	if removed, err := s.Store.CleanupExpired(); err == nil && removed > 0 {
		log.Debug().Int64("removed", removed).Msg("Cleaned up expired store entries")
	}

	// Initialize bridge session (restores persisted pairing)
	s.Session, err = bridge.NewSession(cfg, s.Store)
	if err != nil {
		database.Close()
		return nil, err
	}

	s.Bridge = bridge.NewService(
		s.Session,
		s.Store,
		cfg.Cache.TTL.Duration(),
		cfg.UI.RateLimitRPS,
		cfg.Hue.Timeout.Duration(),
	)

	s.Events = bridge.NewStream(s.Session, bridge.StreamConfig{
		MinBackoff:    cfg.Hue.MinRetryBackoff.Duration(),
		MaxBackoff:    cfg.Hue.MaxRetryBackoff.Duration(),
		Multiplier:    cfg.Hue.RetryMultiplier,
		MaxReconnects: cfg.Hue.MaxReconnects,
	})

	return s, nil
}

// Start launches the background services. The event stream runs for the
// whole app lifetime; while unpaired it idles until a pairing appears.
func (s *Services) Start(ctx context.Context) error {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.Events.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Event stream terminated")
		}
	}()

	return nil
}

// Stop shuts down all services, waiting up to timeout for background
// goroutines to drain.
func (s *Services) Stop(timeout time.Duration) error {
	s.Bridge.Close()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		log.Warn().Dur("timeout", timeout).Msg("Shutdown timeout exceeded, abandoning background tasks")
	}

	return s.DB.Close()
}
