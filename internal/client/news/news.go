package news

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/credor-app/credor/internal/client/models"
	"github.com/credor-app/credor/internal/client/storage"
	"github.com/credor-app/credor/internal/logging"
)

// DefaultFreshnessWindow is how long a cached feed is served before a
// refresh is due.
const DefaultFreshnessWindow = 2 * time.Hour

// Source abstracts the provider client for tests.
type Source interface {
	Fetch(ctx context.Context, now time.Time) ([]models.Article, error)
}

// Accessor serves the cached feed and keeps it fresh with a single owned,
// self-rearming timer. Close must be called on teardown or the repeating
// task leaks.
type Accessor struct {
	source Source
	store  storage.Store
	log    logging.Logger
	window time.Duration
	now    func() time.Time

	mu          sync.Mutex
	articles    []models.Article
	lastFetched time.Time
	timer       *time.Timer
	gen         uint64
	closed      bool
}

// Option customizes an Accessor.
type Option func(*Accessor)

// WithFreshnessWindow overrides the two-hour default.
func WithFreshnessWindow(d time.Duration) Option {
	return func(a *Accessor) { a.window = d }
}

// WithClock injects a time source for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Accessor) { a.now = now }
}

func NewAccessor(source Source, store storage.Store, log logging.Logger, opts ...Option) *Accessor {
	a := &Accessor{
		source: source,
		store:  store,
		log:    log,
		window: DefaultFreshnessWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RefreshDelay is the time until the next scheduled refresh given the last
// fetch time: max(0, window − (now − last)).
func RefreshDelay(window time.Duration, last, now time.Time) time.Duration {
	delay := window - now.Sub(last)
	if delay < 0 {
		return 0
	}
	return delay
}

// Start loads the persisted cache and either serves it (arming the timer
// for the remaining window) or refreshes immediately when the cache is
// stale or absent. Cache read problems degrade to "no cache".
func (a *Accessor) Start(ctx context.Context) {
	a.loadCache(ctx)

	a.mu.Lock()
	last := a.lastFetched
	a.mu.Unlock()

	if !last.IsZero() {
		if delay := RefreshDelay(a.window, last, a.now()); delay > 0 {
			a.log.Debug(ctx, "serving cached news", "next_refresh_in", delay)
			a.mu.Lock()
			a.scheduleLocked(delay)
			a.mu.Unlock()
			return
		}
	}

	if err := a.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "initial news refresh failed", "error", err)
	}
}

// Refresh fetches the feed, replaces the cache wholesale, persists the new
// set and fetch timestamp, and re-arms the timer relative to that
// timestamp. Stale responses (superseded by a newer refresh) are dropped.
func (a *Accessor) Refresh(ctx context.Context) error {
	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.mu.Unlock()

	now := a.now()
	articles, err := a.source.Fetch(ctx, now)
	if err != nil {
		a.log.Warn(ctx, "news refresh failed", "error", err)
		return err
	}

	a.mu.Lock()
	if gen != a.gen || a.closed {
		a.mu.Unlock()
		a.log.Debug(ctx, "discarding stale news response")
		return nil
	}
	a.articles = articles
	a.lastFetched = now
	a.scheduleLocked(a.window)
	a.mu.Unlock()

	a.persistCache(ctx, articles, now)
	return nil
}

// Articles returns the cached feed in provider ranking order.
func (a *Accessor) Articles() []models.Article {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Article, len(a.articles))
	copy(out, a.articles)
	return out
}

// LastFetched reports when the cached set was obtained.
func (a *Accessor) LastFetched() (time.Time, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastFetched, !a.lastFetched.IsZero()
}

// Close cancels the pending refresh, if any. In-flight fetches are not
// interrupted, but their results are discarded.
func (a *Accessor) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// scheduleLocked arms the single refresh timer. Any previously pending
// timer is cancelled first, so at most one refresh is ever scheduled.
// Caller holds a.mu.
func (a *Accessor) scheduleLocked(delay time.Duration) {
	if a.closed {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(delay, func() {
		ctx := context.Background()
		if err := a.Refresh(ctx); err != nil {
			// Refresh re-arms only on success; retry after a full window
			// rather than hammering a failing provider.
			a.mu.Lock()
			a.scheduleLocked(a.window)
			a.mu.Unlock()
		}
	})
}

func (a *Accessor) loadCache(ctx context.Context) {
	raw, err := a.store.Get(ctx, storage.KeyCachedNews)
	if err != nil {
		a.log.Warn(ctx, "news cache read failed", "error", err)
	} else if raw != nil {
		var articles []models.Article
		if err := json.Unmarshal(raw, &articles); err != nil {
			a.log.Warn(ctx, "discarding malformed news cache", "error", err)
		} else {
			a.mu.Lock()
			a.articles = articles
			a.mu.Unlock()
		}
	}

	rawTS, err := a.store.Get(ctx, storage.KeyLastFetchedNews)
	if err != nil || rawTS == nil {
		return
	}
	ts, err := time.Parse(time.RFC3339, string(rawTS))
	if err != nil {
		a.log.Warn(ctx, "discarding malformed news fetch timestamp", "error", err)
		return
	}
	a.mu.Lock()
	a.lastFetched = ts
	a.mu.Unlock()
}

// persistCache mirrors the fresh set to storage. Failures are logged and
// otherwise ignored; the in-memory feed stays authoritative for this run.
func (a *Accessor) persistCache(ctx context.Context, articles []models.Article, fetchedAt time.Time) {
	raw, err := json.Marshal(articles)
	if err != nil {
		a.log.Error(ctx, "failed to serialize news cache", "error", err)
		return
	}
	if err := a.store.Set(ctx, storage.KeyCachedNews, raw); err != nil {
		a.log.Warn(ctx, "failed to persist news cache", "error", err)
	}
	if err := a.store.Set(ctx, storage.KeyLastFetchedNews, []byte(fetchedAt.Format(time.RFC3339))); err != nil {
		a.log.Warn(ctx, "failed to persist news fetch time", "error", err)
	}
}
