package rates

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmynk/tripsplit/internal/models"
)

// fakeSource returns a canned table or error and counts calls.
type fakeSource struct {
	calls atomic.Int32
	err   error
	now   func() time.Time
	delay time.Duration
}

func (f *fakeSource) Fetch(ctx context.Context, base string) (*models.RateTable, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.RateTable{
		Base:      base,
		Date:      f.now().Format("2006-01-02"),
		Rates:     map[string]float64{"USD": 1, "EUR": 0.9},
		FetchedAt: f.now().Unix(),
	}, nil
}

// memoryStore is an in-memory storage.RateStore.
type memoryStore struct {
	mu     sync.Mutex
	tables map[string]models.RateTable
}

func (m *memoryStore) SaveRateTable(ctx context.Context, table *models.RateTable) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tables == nil {
		m.tables = make(map[string]models.RateTable)
	}
	m.tables[table.Base] = *table
	return nil
}

func (m *memoryStore) LatestRateTable(ctx context.Context, base string) (*models.RateTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[base]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// clock is a settable time source.
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSupplier(src *fakeSource, store *memoryStore) (*Supplier, *clock) {
	c := &clock{t: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)}
	src.now = c.now
	var s *Supplier
	if store != nil {
		s = NewSupplier(src, store, time.Hour)
	} else {
		s = NewSupplier(src, nil, time.Hour)
	}
	s.now = c.now
	return s, c
}

func TestSupplier_CachesWithinTTL(t *testing.T) {
	src := &fakeSource{}
	s, c := newTestSupplier(src, nil)
	ctx := context.Background()

	first := s.Rates(ctx, "USD")
	if first.Origin != OriginFresh {
		t.Errorf("first origin = %s, want fresh", first.Origin)
	}

	c.advance(30 * time.Minute)
	second := s.Rates(ctx, "USD")
	if second.Origin != OriginCache || second.Table != first.Table {
		t.Errorf("second lookup = %s, want cached table", second.Origin)
	}
	if n := src.calls.Load(); n != 1 {
		t.Errorf("source called %d times, want 1", n)
	}

	c.advance(time.Hour)
	third := s.Rates(ctx, "USD")
	if third.Origin != OriginFresh {
		t.Errorf("after TTL origin = %s, want fresh", third.Origin)
	}
	if n := src.calls.Load(); n != 2 {
		t.Errorf("source called %d times, want 2", n)
	}
}

func TestSupplier_StaleOnFailure(t *testing.T) {
	src := &fakeSource{}
	s, c := newTestSupplier(src, nil)
	ctx := context.Background()

	fresh := s.Rates(ctx, "USD")
	src.err = errors.New("network down")
	c.advance(2 * time.Hour)

	got := s.Rates(ctx, "USD")
	if got.Origin != OriginStale {
		t.Errorf("origin = %s, want stale", got.Origin)
	}
	if got.Table != fresh.Table {
		t.Error("expected the previously fetched table")
	}
	if !got.Table.IsStale(c.now(), time.Hour) {
		t.Error("expected table to report stale")
	}
}

func TestSupplier_FallbackWhenNothingCached(t *testing.T) {
	src := &fakeSource{err: errors.New("network down")}
	s, _ := newTestSupplier(src, nil)

	got := s.Rates(context.Background(), "USD")
	if got.Origin != OriginFallback {
		t.Fatalf("origin = %s, want fallback", got.Origin)
	}
	if got.Table.Base != "USD" || len(got.Table.Rates) != 18 {
		t.Errorf("fallback table = %+v", got.Table)
	}
	if got.Table.Rates["EUR"] != 0.92 {
		t.Errorf("fallback EUR = %v, want 0.92", got.Table.Rates["EUR"])
	}

	// Callers must not be able to corrupt the built-in table.
	got.Table.Rates["EUR"] = 5
	if Fallback(time.Now()).Rates["EUR"] != 0.92 {
		t.Error("Fallback table was mutated through a snapshot")
	}
}

func TestSupplier_PersistentCache(t *testing.T) {
	store := &memoryStore{}
	src := &fakeSource{}
	s, c := newTestSupplier(src, store)
	ctx := context.Background()

	s.Rates(ctx, "USD")
	if saved, _ := store.LatestRateTable(ctx, "USD"); saved == nil {
		t.Fatal("expected table to be persisted")
	}

	// A new supplier (e.g. after restart) finds the persisted table.
	restarted := NewSupplier(src, store, time.Hour)
	restarted.now = c.now
	c.advance(10 * time.Minute)

	got := restarted.Rates(ctx, "USD")
	if got.Origin != OriginCache {
		t.Errorf("origin after restart = %s, want cache", got.Origin)
	}
	if n := src.calls.Load(); n != 1 {
		t.Errorf("source called %d times, want 1", n)
	}
}

func TestSupplier_RefreshError(t *testing.T) {
	src := &fakeSource{}
	s, _ := newTestSupplier(src, nil)
	ctx := context.Background()

	before, err := s.Refresh(ctx, "USD")
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	src.err = errors.New("boom")
	if _, err := s.Refresh(ctx, "USD"); err == nil {
		t.Error("expected Refresh to report the fetch error")
	}
	if got := s.Rates(ctx, "USD"); got.Table != before {
		t.Error("failed refresh must keep the current table")
	}
}

func TestSupplier_ConcurrentRefreshSharesFetch(t *testing.T) {
	src := &fakeSource{delay: 50 * time.Millisecond}
	s, _ := newTestSupplier(src, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Refresh(context.Background(), "USD"); err != nil {
				t.Errorf("Refresh failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := src.calls.Load(); n >= 8 {
		t.Errorf("source called %d times, want concurrent refreshes collapsed", n)
	}
}

func TestSupplier_CancelledCallerDoesNotFailOthers(t *testing.T) {
	src := &fakeSource{delay: 200 * time.Millisecond}
	s, _ := newTestSupplier(src, nil)

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := s.Refresh(first, "USD")
		firstErr <- err
	}()

	deadline := time.After(2 * time.Second)
	for src.calls.Load() < 1 {
		select {
		case <-deadline:
			t.Fatal("fetch did not start")
		case <-time.After(time.Millisecond):
		}
	}

	type result struct {
		table *models.RateTable
		err   error
	}
	second := make(chan result, 1)
	go func() {
		table, err := s.Refresh(context.Background(), "USD")
		second <- result{table, err}
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled caller error = %v, want context.Canceled", err)
	}
	got := <-second
	if got.err != nil {
		t.Fatalf("waiting caller failed: %v", got.err)
	}
	if got.table == nil || got.table.Base != "USD" {
		t.Errorf("waiting caller table = %+v", got.table)
	}
	if snap := s.Rates(context.Background(), "USD"); snap.Origin != OriginCache {
		t.Errorf("origin after shared fetch = %s, want cache", snap.Origin)
	}
}

func TestSupplier_Run(t *testing.T) {
	src := &fakeSource{}
	s, _ := newTestSupplier(src, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, "USD", 10*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for src.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("Run did not refresh")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done
}
