// Package scheduler refreshes the cached data of WooCommerce sites in the
// background.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/event"
)

// SiteSource lists the sites to refresh
type SiteSource interface {
	FindWooCommerceSites(ctx context.Context) ([]shared.Site, error)
}

// ---------------------------------------------------------------------------
// SiteSyncConfig
// ---------------------------------------------------------------------------

// SiteSyncConfig holds configuration for the site refresh scheduler
type SiteSyncConfig struct {
	// Interval between two regular refreshes of a site
	Interval time.Duration
	// CheckInterval is how often due sites are looked up
	CheckInterval time.Duration
	// RetryDelay is the base delay of the exponential retry backoff
	RetryDelay time.Duration
	// MaxRetries is the number of retries before a failing site waits for its next regular run
	MaxRetries int
}

// DefaultSiteSyncConfig returns default configuration
func DefaultSiteSyncConfig() SiteSyncConfig {
	return SiteSyncConfig{
		Interval:      15 * time.Minute,
		CheckInterval: time.Minute,
		RetryDelay:    time.Minute,
		MaxRetries:    5,
	}
}

// Validate validates the configuration
func (c *SiteSyncConfig) Validate() error {
	if c.Interval <= 0 || c.CheckInterval <= 0 || c.RetryDelay <= 0 {
		return ErrInvalidConfig
	}
	if c.MaxRetries < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// ---------------------------------------------------------------------------
// SiteSyncScheduler
// ---------------------------------------------------------------------------

// SiteSyncScheduler periodically dispatches FETCH_ORDER_LIST and
// FETCH_ORDER_STATUS_OPTIONS for every WooCommerce site. The order store
// reports remote failures through change events only, so a refresh listens
// for the events of its site to tell success from failure.
type SiteSyncScheduler struct {
	config     SiteSyncConfig
	sites      SiteSource
	dispatcher shared.ActionDispatcher
	events     shared.EventSubscriber
	logger     *zap.Logger
	now        func() time.Time

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	jobsMu sync.RWMutex
	jobs   map[int64]*SyncJob
}

// NewSiteSyncScheduler creates a site refresh scheduler
func NewSiteSyncScheduler(config SiteSyncConfig, sites SiteSource, dispatcher shared.ActionDispatcher, events shared.EventSubscriber, logger *zap.Logger) (*SiteSyncScheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SiteSyncScheduler{
		config:     config,
		sites:      sites,
		dispatcher: dispatcher,
		events:     events,
		logger:     logger.Named("site_sync"),
		now:        time.Now,
		jobs:       make(map[int64]*SyncJob),
	}, nil
}

// Start starts the refresh loop. The first check runs immediately.
func (s *SiteSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Site sync scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("check_interval", s.config.CheckInterval),
		zap.Int("max_retries", s.config.MaxRetries),
	)
	return nil
}

// Stop cancels the loop and waits for the running refresh to return
func (s *SiteSyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Site sync scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether the loop is running
func (s *SiteSyncScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *SiteSyncScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	s.checkAndSync(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkAndSync(ctx)
		}
	}
}

// checkAndSync refreshes every site whose job is due
func (s *SiteSyncScheduler) checkAndSync(ctx context.Context) {
	sites, err := s.sites.FindWooCommerceSites(ctx)
	if err != nil {
		s.logger.Error("Failed to list WooCommerce sites", zap.Error(err))
		return
	}

	for _, site := range sites {
		if ctx.Err() != nil {
			return
		}
		job := s.jobFor(site.LocalID)
		if !s.claim(job) {
			continue
		}
		_ = s.run(ctx, site, job)
	}
}

// TriggerNow refreshes one site immediately, outside of its schedule
func (s *SiteSyncScheduler) TriggerNow(ctx context.Context, site shared.Site) error {
	if !site.HasWooCommerce {
		return ErrNotWooCommerceSite
	}
	job := s.jobFor(site.LocalID)

	s.jobsMu.Lock()
	if job.Status == SyncJobStatusRunning {
		s.jobsMu.Unlock()
		return ErrSyncInProgress
	}
	job.Start(s.now())
	s.jobsMu.Unlock()

	s.logger.Info("Manual site sync triggered", zap.Int64("site_id", site.LocalID))
	return s.run(ctx, site, job)
}

// claim marks a due job as running
func (s *SiteSyncScheduler) claim(job *SyncJob) bool {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	now := s.now()
	if !job.IsDue(now) {
		return false
	}
	job.Start(now)
	return true
}

func (s *SiteSyncScheduler) run(ctx context.Context, site shared.Site, job *SyncJob) error {
	err := s.refresh(ctx, site)

	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	now := s.now()
	if err != nil {
		job.Fail(now, err, s.config.RetryDelay, s.config.Interval)
		s.logger.Warn("Site sync failed",
			zap.Int64("site_id", site.LocalID),
			zap.Int("attempts", job.Attempts),
			zap.Time("next_run_at", job.NextRunAt),
			zap.Error(err),
		)
		return err
	}
	job.Complete(now, s.config.Interval)
	s.logger.Debug("Site sync completed", zap.Int64("site_id", site.LocalID))
	return nil
}

// refresh dispatches the order list and status options fetches of a site and
// fails when either the dispatch or the store's change event reports an error.
// A fetch skipped as a duplicate emits nothing and counts as done.
func (s *SiteSyncScheduler) refresh(ctx context.Context, site shared.Site) error {
	descriptor := order.NewListDescriptor(site, "")
	outcome := newRefreshOutcome(descriptor)
	if s.events != nil {
		s.events.Subscribe(outcome.listener)
		defer s.events.Unsubscribe(outcome.listener)
	}

	listErr := s.dispatcher.DispatchSync(ctx, shared.NewAction(order.ActionFetchOrderList, order.FetchOrderListPayload{
		Descriptor:       descriptor,
		RequestStartTime: s.now(),
	}))
	if listErr == nil {
		listErr = outcome.listError()
	}
	if listErr != nil {
		listErr = fmt.Errorf("fetch order list: %w", listErr)
	}

	statusErr := s.dispatcher.DispatchSync(ctx, shared.NewAction(order.ActionFetchOrderStatusOptions,
		order.FetchOrderStatusOptionsPayload{Site: site}))
	if statusErr == nil {
		statusErr = outcome.statusError()
	}
	if statusErr != nil {
		statusErr = fmt.Errorf("fetch order status options: %w", statusErr)
	}
	return errors.Join(listErr, statusErr)
}

// refreshOutcome records the errors the order store reports for one site
type refreshOutcome struct {
	descriptor order.ListDescriptor
	listener   *event.Listener

	mu        sync.Mutex
	listErr   error
	statusErr error
}

func newRefreshOutcome(descriptor order.ListDescriptor) *refreshOutcome {
	o := &refreshOutcome{descriptor: descriptor}
	o.listener = event.NewListener(o.record,
		order.EventOrderSummariesFetched, order.EventOrderStatusOptionsChanged)
	return o
}

func (o *refreshOutcome) record(_ context.Context, ev shared.ChangeEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch e := ev.(type) {
	case *order.OnOrderSummariesFetched:
		if e.Descriptor.UniqueIdentifier() == o.descriptor.UniqueIdentifier() && e.Err() != nil {
			o.listErr = e.Err()
		}
	case *order.OnOrderStatusOptionsChanged:
		if e.Site.LocalID == o.descriptor.Site.LocalID && e.Err() != nil {
			o.statusErr = e.Err()
		}
	}
	return nil
}

func (o *refreshOutcome) listError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.listErr
}

func (o *refreshOutcome) statusError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.statusErr
}

func (s *SiteSyncScheduler) jobFor(localSiteID int64) *SyncJob {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	job, ok := s.jobs[localSiteID]
	if !ok {
		job = NewSyncJob(localSiteID, s.config.MaxRetries, s.now())
		s.jobs[localSiteID] = job
	}
	return job
}

// Job returns a copy of the job of a site
func (s *SiteSyncScheduler) Job(localSiteID int64) (SyncJob, bool) {
	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()

	job, ok := s.jobs[localSiteID]
	if !ok {
		return SyncJob{}, false
	}
	return *job, true
}

// Jobs returns copies of all jobs ordered by site
func (s *SiteSyncScheduler) Jobs() []SyncJob {
	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()

	jobs := make([]SyncJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, *job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].LocalSiteID < jobs[j].LocalSiteID })
	return jobs
}
