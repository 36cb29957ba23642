package ingestion

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preemiealert/go-preemie-alerts/internal/config"
	"github.com/preemiealert/go-preemie-alerts/internal/models"
	"github.com/preemiealert/go-preemie-alerts/internal/stream"
	"github.com/preemiealert/go-preemie-alerts/internal/worker"
)

// Manager drives the simulated feed: it seeds the store at startup, then
// emits one notification per interval, all through a worker pool running
// the ingestion service.
type Manager struct {
	cfg         *config.Config
	svc         *Service
	broadcaster *stream.Broadcaster
	sim         *Simulator
	pool        *worker.Pool
	wg          sync.WaitGroup
}

func NewManager(cfg *config.Config, svc *Service, broadcaster *stream.Broadcaster) *Manager {
	return &Manager{
		cfg:         cfg,
		svc:         svc,
		broadcaster: broadcaster,
		sim:         NewSimulator(),
	}
}

func (m *Manager) Start(ctx context.Context) {
	processor := func(ctx context.Context, n *models.Notification) error {
		alert, err := m.svc.Ingest(ctx, n)
		if err != nil {
			slog.Error("error ingesting notification", "id", n.NotificationID, "error", err)
			return err
		}

		if m.broadcaster != nil {
			m.broadcaster.Broadcast(alert)
		}

		slog.Info("recorded alert", "id", alert.ID, "tier", alert.UrgencyTier, "municipality", alert.Municipality)
		return nil
	}

	m.pool = worker.NewPool(m.cfg.Worker.Count, m.cfg.Worker.BufferSize, processor)
	m.pool.Start(ctx)

	if m.cfg.Feed.Enabled {
		m.wg.Add(1)
		go m.runFeed(ctx)
	}
}

func (m *Manager) runFeed(ctx context.Context) {
	defer m.wg.Done()
	slog.Info("starting simulated feed", "interval", m.cfg.Feed.Interval, "seed", m.cfg.Feed.SeedCount)

	for _, n := range m.sim.Seed(m.cfg.Feed.SeedCount) {
		select {
		case <-ctx.Done():
			return
		default:
			m.pool.Submit(n)
		}
	}

	ticker := time.NewTicker(m.cfg.Feed.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulated feed shutting down")
			return
		case <-ticker.C:
			m.pool.Submit(m.sim.Next())
		}
	}
}

func (m *Manager) Stop() {
	m.wg.Wait()
	m.pool.Stop()
	slog.Info("ingestion manager stopped")
}
