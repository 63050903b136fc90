package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/mmcdole/aisle/internal/domain"
	"github.com/mmcdole/aisle/internal/filter"
	"github.com/mmcdole/aisle/internal/metrics"
	"github.com/mmcdole/aisle/internal/query"
)

// CatalogFetcher drives the product listing lifecycle for a filter store.
//
// Every trigger is tagged with the next sequence number. Only the resolution
// carrying the latest tag may update the state; older ones are dropped and
// their requests are cancelled.
type CatalogFetcher struct {
	repo    domain.CatalogRepository
	builder query.Builder
	logger  *slog.Logger

	mu        sync.Mutex
	state     domain.FetchState
	seq       uint64
	cancel    context.CancelFunc
	observers []domain.FetchObserver
	closed    bool

	wg sync.WaitGroup
}

// NewCatalogFetcher creates a fetcher in the Idle state
func NewCatalogFetcher(repo domain.CatalogRepository, builder query.Builder, logger *slog.Logger) *CatalogFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogFetcher{
		repo:    repo,
		builder: builder,
		logger:  logger,
	}
}

// State returns the current fetch state
func (f *CatalogFetcher) State() domain.FetchState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Subscribe registers an observer. It immediately receives the current state.
func (f *CatalogFetcher) Subscribe(o domain.FetchObserver) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observers = append(f.observers, o)
	o.OnFetchState(f.state)
}

// Bind fetches for the store's current filters and again after every
// committed change. The returned function stops following the store.
func (f *CatalogFetcher) Bind(store *filter.Store) (unbind func()) {
	unsubscribe := store.Subscribe(func(_, next domain.Filters) {
		f.Refresh(next)
	})
	f.RefreshFrom(store)
	return unsubscribe
}

// RefreshFrom issues one request for the store's current filters. A commit
// racing with it is fetched after it, never before.
func (f *CatalogFetcher) RefreshFrom(store *filter.Store) uint64 {
	var seq uint64
	store.Snapshot(func(filters domain.Filters) {
		seq = f.Refresh(filters)
	})
	return seq
}

// Refresh issues one request for filters, superseding any request in flight.
// It returns the sequence tag of the new request, or 0 after Close.
func (f *CatalogFetcher) Refresh(filters domain.Filters) uint64 {
	desc := f.builder.Build(filters)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return 0
	}

	if f.cancel != nil {
		f.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel

	f.seq++
	seq := f.seq
	requestID := uuid.NewString()

	f.setStateLocked(domain.FetchState{
		Status:    domain.FetchLoading,
		Seq:       seq,
		Query:     desc,
		RequestID: requestID,
	})
	f.wg.Add(1)
	f.mu.Unlock()

	metrics.CatalogRequests.Inc()
	f.logger.Debug("catalog fetch issued", "seq", seq, "requestID", requestID, "url", desc.URL())

	go f.run(ctx, seq, requestID, desc)
	return seq
}

func (f *CatalogFetcher) run(ctx context.Context, seq uint64, requestID string, desc domain.Descriptor) {
	defer f.wg.Done()

	page, err := f.repo.FetchProducts(ctx, desc.URL())

	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.seq || f.closed {
		metrics.StaleResponses.Inc()
		f.logger.Debug("discarding stale catalog response", "seq", seq, "latest", f.seq, "requestID", requestID)
		return
	}

	next := domain.FetchState{
		Seq:       seq,
		Query:     desc,
		RequestID: requestID,
	}
	switch {
	case err != nil:
		next.Status = domain.FetchError
		next.Err = err
	case page == nil:
		next.Status = domain.FetchError
		next.Err = domain.ErrMalformedPayload
	default:
		next.Status = domain.FetchSuccess
		next.Page = page
	}

	if next.Err != nil {
		metrics.FetchErrors.WithLabelValues(metrics.ErrorKind(next.Err)).Inc()
		f.logger.Error("catalog fetch failed", "seq", seq, "requestID", requestID, "url", desc.URL(), "error", next.Err)
	} else {
		f.logger.Info("catalog fetch complete", "seq", seq, "requestID", requestID, "products", len(page.Products))
	}

	f.setStateLocked(next)
}

// setStateLocked commits s and notifies observers. Caller holds f.mu.
func (f *CatalogFetcher) setStateLocked(s domain.FetchState) {
	f.state = s
	for _, o := range f.observers {
		o.OnFetchState(s)
	}
}

// Wait blocks until every issued request has resolved
func (f *CatalogFetcher) Wait() {
	f.wg.Wait()
}

// Close cancels the request in flight and discards any later resolution.
// Refresh is a no-op afterwards.
func (f *CatalogFetcher) Close() {
	f.mu.Lock()
	f.closed = true
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mu.Unlock()

	f.wg.Wait()
}
