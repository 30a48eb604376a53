package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"fleet-dashboard-backend/config"
	"fleet-dashboard-backend/internal/fleet"
	"fleet-dashboard-backend/internal/metrics"
)

// ErrNotLoaded is returned while no snapshot has been published yet.
var ErrNotLoaded = errors.New("fleet snapshot not loaded yet")

// Source provides the reference tables.
type Source interface {
	LoadTables(ctx context.Context) (*fleet.Tables, error)
}

// Service loads the dataset, enriches it and publishes the result as a Snapshot.
type Service struct {
	cfg     *config.DataConfig
	source  Source
	log     logrus.FieldLogger
	current atomic.Pointer[Snapshot]

	mu       sync.Mutex
	onReload []func(*Snapshot)
}

// NewService creates a loader over source.
func NewService(cfg *config.DataConfig, source Source, log logrus.FieldLogger) *Service {
	return &Service{
		cfg:    cfg,
		source: source,
		log:    log,
	}
}

// OnReload registers fn to run after every published snapshot.
func (s *Service) OnReload(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = append(s.onReload, fn)
}

// Snapshot returns the latest published snapshot, or nil before the first load.
func (s *Service) Snapshot() *Snapshot {
	return s.current.Load()
}

// Run loads the dataset once and then reloads it on the configured interval
// until ctx is cancelled. A zero interval loads once.
func (s *Service) Run(ctx context.Context) {
	s.log.Info("Starting fleet loader...")
	if err := s.LoadOnce(ctx); err != nil {
		s.log.WithError(err).Error("Initial fleet load failed")
	}

	if s.cfg.ReloadInterval <= 0 {
		return
	}

	timer := time.NewTimer(s.cfg.ReloadInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Fleet loader shutting down.")
			return
		case <-timer.C:
			if err := s.LoadOnce(ctx); err != nil {
				s.log.WithError(err).Error("Fleet reload failed; keeping previous snapshot")
			}
			timer.Reset(s.cfg.ReloadInterval)
		}
	}
}

// LoadOnce performs a single load cycle. On failure, including ctx ending
// before enrichment completes, the previous snapshot stays published.
func (s *Service) LoadOnce(ctx context.Context) error {
	start := time.Now()
	s.log.Debug("Executing load cycle...")

	tables, err := s.source.LoadTables(ctx)
	if err != nil {
		metrics.ObserveLoad(metrics.ResultError, time.Since(start))
		return err
	}

	catalog := fleet.NewCatalog(tables)
	enricher := fleet.NewEnricher(catalog, fleet.NewTablePositions(catalog, s.cfg.PositionFetchDelay), s.enrichOptions())
	results := enricher.EnrichAll(ctx, tables.Equipment)
	if err := ctx.Err(); err != nil {
		metrics.ObserveLoad(metrics.ResultError, time.Since(start))
		return fmt.Errorf("load cycle interrupted: %w", err)
	}

	for _, r := range results {
		metrics.ObserveEnrichment(fleet.Reason(r.Err))
		if r.Err != nil {
			s.log.WithFields(logrus.Fields{
				"equipment": r.Equipment.ID,
				"reason":    fleet.Reason(r.Err),
			}).Warnf("Enrichment failed: %v", r.Err)
		}
	}

	snapshot := newSnapshot(catalog, results, time.Now().UTC())
	s.current.Store(snapshot)

	failed := len(results) - len(snapshot.Views)
	metrics.SetSnapshot(len(results), failed, snapshot.LoadedAt)
	metrics.ObserveLoad(metrics.ResultSuccess, time.Since(start))
	s.log.WithFields(logrus.Fields{
		"equipment": len(results),
		"failed":    failed,
		"took":      time.Since(start).String(),
	}).Info("Fleet snapshot published")

	s.mu.Lock()
	hooks := append([]func(*Snapshot){}, s.onReload...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(snapshot)
	}
	return nil
}

func (s *Service) enrichOptions() fleet.Options {
	opts := fleet.Options{
		FetchTimeout: s.cfg.PositionFetchTimeout,
		Concurrency:  s.cfg.Concurrency,
	}
	if s.cfg.CurrentState == config.CurrentStateFromHistory {
		opts.Derivation = fleet.StateFromHistory
	}
	return opts
}
