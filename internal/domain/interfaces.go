package domain

import "context"

// CatalogRepository provides read access to the remote product catalog
type CatalogRepository interface {
	// FetchProducts performs a GET against a fully built products URL.
	// A response without a products field returns ErrMalformedPayload.
	FetchProducts(ctx context.Context, rawURL string) (*ProductPage, error)

	// GetCategories returns the ordered category names
	GetCategories(ctx context.Context) ([]string, error)
}

// FetchObserver receives fetch state transitions.
// OnFetchState is called with the fetcher's lock held and must not block.
type FetchObserver interface {
	OnFetchState(state FetchState)
}

// FetchObserverFunc adapts a function to FetchObserver
type FetchObserverFunc func(FetchState)

// OnFetchState calls f(state)
func (f FetchObserverFunc) OnFetchState(state FetchState) { f(state) }
