package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/protea/pkg/metrics"
	"github.com/Ramsey-B/protea/pkg/models"
)

type datasetLoader interface {
	Load(ctx context.Context) (models.Dataset, error)
}

// Refresher coalesces refresh triggers into full dataset refetches. A burst
// of CDC notifications within the debounce window produces one refetch. A
// periodic refresh at MaxInterval catches anything a missed notification
// would otherwise leave stale.
type Refresher struct {
	loader    datasetLoader
	store     *Store
	logger    ectologger.Logger
	debounce  time.Duration
	maxTicker time.Duration

	trigger   chan struct{}
	onRefresh []func(*Snapshot)
	wg        sync.WaitGroup
	cancel    context.CancelFunc
}

// RefresherConfig holds refresher tuning
type RefresherConfig struct {
	Debounce    time.Duration
	MaxInterval time.Duration
}

// NewRefresher creates a refresher over the given loader and store
func NewRefresher(loader datasetLoader, store *Store, cfg RefresherConfig, logger ectologger.Logger) *Refresher {
	return &Refresher{
		loader:    loader,
		store:     store,
		logger:    logger,
		debounce:  cfg.Debounce,
		maxTicker: cfg.MaxInterval,
		trigger:   make(chan struct{}, 1),
	}
}

// OnRefresh registers a callback invoked after every successful refresh, e.g.
// cache invalidation. Must be called before Start.
func (r *Refresher) OnRefresh(fn func(*Snapshot)) {
	r.onRefresh = append(r.onRefresh, fn)
}

// Trigger requests a refresh. Never blocks; triggers raised while a refresh
// is already pending collapse into it.
func (r *Refresher) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Start performs the initial load and begins the refresh loop. An initial
// load failure is returned but does not stop the loop; the store stays empty
// until a later refresh succeeds.
func (r *Refresher) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	err := r.refresh(ctx)

	r.wg.Add(1)
	go r.run(ctx)

	return err
}

// Stop stops the refresh loop
func (r *Refresher) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

func (r *Refresher) run(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.maxTicker)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.WithContext(ctx).Info("refresher stopping")
			return
		case <-ticker.C:
			if err := r.refresh(ctx); err != nil {
				r.logger.WithContext(ctx).WithError(err).Error("periodic refresh failed")
			}
		case <-r.trigger:
			// Debounce window: absorb the rest of the burst, then refetch once.
			timer := time.NewTimer(r.debounce)
		drain:
			for {
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-r.trigger:
				case <-timer.C:
					break drain
				}
			}
			if err := r.refresh(ctx); err != nil {
				r.logger.WithContext(ctx).WithError(err).Error("triggered refresh failed")
			}
			ticker.Reset(r.maxTicker)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) error {
	start := time.Now()

	dataset, err := r.loader.Load(ctx)
	if err != nil {
		metrics.SnapshotRefreshesTotal.WithLabelValues("error").Inc()
		return err
	}

	snap := r.store.Replace(dataset)

	metrics.SnapshotRefreshesTotal.WithLabelValues("success").Inc()
	metrics.SnapshotRefreshDuration.Observe(time.Since(start).Seconds())
	metrics.SnapshotRecords.WithLabelValues("interventions").Set(float64(len(dataset.Interventions)))
	metrics.SnapshotRecords.WithLabelValues("decisions").Set(float64(len(dataset.Decisions)))
	metrics.SnapshotRecords.WithLabelValues("actions").Set(float64(len(dataset.Actions)))
	metrics.SnapshotRecords.WithLabelValues("outcomes").Set(float64(len(dataset.Outcomes)))

	for _, fn := range r.onRefresh {
		fn(snap)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"interventions": len(dataset.Interventions),
		"decisions":     len(dataset.Decisions),
		"actions":       len(dataset.Actions),
		"outcomes":      len(dataset.Outcomes),
		"duration":      time.Since(start),
	}).Info("snapshot refreshed")

	return nil
}
