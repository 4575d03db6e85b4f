package rates

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// DefaultTTL is how long a fetched table is served before a refetch is attempted.
const DefaultTTL = time.Hour

// refreshTimeout bounds a shared fetch, which outlives any single caller's context.
const refreshTimeout = 30 * time.Second

// Origin tells where a snapshot came from.
type Origin string

const (
	OriginFresh    Origin = "fresh"    // fetched during this call
	OriginCache    Origin = "cache"    // cached and younger than the TTL
	OriginStale    Origin = "stale"    // cached, older than the TTL, and the refetch failed
	OriginFallback Origin = "fallback" // built-in table, nothing was ever fetched
)

var (
	lookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripsplit_rate_lookups_total",
		Help: "Rate table lookups by where the returned table came from.",
	}, []string{"origin"})

	fetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripsplit_rate_fetch_errors_total",
		Help: "Failed exchange rate fetches.",
	})
)

// Snapshot is a rate table together with its origin.
type Snapshot struct {
	Table  *models.RateTable
	Origin Origin
}

// Supplier serves rate tables, caching them in memory and in an optional RateStore.
// It is safe for concurrent use.
type Supplier struct {
	source Source
	store  storage.RateStore // may be nil
	ttl    time.Duration
	now    func() time.Time

	mu     sync.RWMutex
	tables map[string]*models.RateTable

	group singleflight.Group
}

// NewSupplier creates a supplier. store may be nil to keep the cache in memory only.
func NewSupplier(source Source, store storage.RateStore, ttl time.Duration) *Supplier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Supplier{
		source: source,
		store:  store,
		ttl:    ttl,
		now:    time.Now,
		tables: make(map[string]*models.RateTable),
	}
}

// Rates returns the best available table for base. It never fails:
// a fresh cached table, else a new fetch, else the last table of any age,
// else the built-in fallback.
func (s *Supplier) Rates(ctx context.Context, base string) Snapshot {
	now := s.now()
	cached := s.cached(ctx, base)
	if cached != nil && !cached.IsStale(now, s.ttl) {
		return s.snapshot(cached, OriginCache)
	}

	table, err := s.Refresh(ctx, base)
	if err == nil {
		return s.snapshot(table, OriginFresh)
	}

	if cached != nil {
		slog.Warn("Serving stale exchange rates", "base", base, "date", cached.Date, "age", cached.Age(now).Round(time.Second), "error", err)
		return s.snapshot(cached, OriginStale)
	}
	slog.Warn("Serving built-in exchange rates", "base", base, "error", err)
	return s.snapshot(Fallback(now), OriginFallback)
}

// Refresh fetches a new table for base and caches it.
// Concurrent refreshes of the same base share one fetch. The fetch is not
// cancelled with ctx, so a caller giving up does not fail the others waiting
// on it. On failure the cache is untouched.
func (s *Supplier) Refresh(ctx context.Context, base string) (*models.RateTable, error) {
	ch := s.group.DoChan(base, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()

		table, err := s.source.Fetch(fetchCtx, base)
		if err != nil {
			fetchErrors.Inc()
			return nil, err
		}

		s.mu.Lock()
		s.tables[table.Base] = table
		s.mu.Unlock()

		if s.store != nil {
			if err := s.store.SaveRateTable(fetchCtx, table); err != nil {
				slog.Warn("Failed to persist exchange rates (ignored)", "base", table.Base, "error", err)
			}
		}
		slog.Info("Exchange rates fetched", "base", table.Base, "date", table.Date, "currencies", len(table.Rates))
		return table, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.RateTable), nil
	}
}

// Run refreshes base every interval until ctx is cancelled.
func (s *Supplier) Run(ctx context.Context, base string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Refresh(ctx, base); err != nil {
				slog.Warn("Periodic exchange rate refresh failed", "base", base, "error", err)
			}
		}
	}
}

// cached returns the newest known table for base from memory or the store.
func (s *Supplier) cached(ctx context.Context, base string) *models.RateTable {
	s.mu.RLock()
	table := s.tables[base]
	s.mu.RUnlock()
	if table != nil || s.store == nil {
		return table
	}

	table, err := s.store.LatestRateTable(ctx, base)
	if err != nil {
		slog.Warn("Failed to read cached exchange rates", "base", base, "error", err)
		return nil
	}
	if table != nil {
		s.mu.Lock()
		if _, ok := s.tables[base]; !ok {
			s.tables[base] = table
		}
		s.mu.Unlock()
	}
	return table
}

func (s *Supplier) snapshot(table *models.RateTable, origin Origin) Snapshot {
	lookups.WithLabelValues(string(origin)).Inc()
	return Snapshot{Table: table, Origin: origin}
}
