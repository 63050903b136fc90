// Package filter holds the filter selection shared by all catalog controls.
package filter

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmcdole/aisle/internal/domain"
)

// Listener is called after a commit that changed the filters
type Listener func(prev, next domain.Filters)

// Store is the single owner of the current domain.Filters.
//
// All writes go through Update, which always applies the updater to the
// latest committed value. Listeners run after each effective commit, one
// commit at a time and in commit order. A listener must not call Update
// synchronously.
type Store struct {
	commitMu sync.Mutex // serializes commit + notify
	mu       sync.RWMutex
	filters  domain.Filters

	listeners map[int]Listener
	nextID    int
}

// NewStore creates a store with no filters applied
func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// Read returns the latest committed filters
func (s *Store) Read() domain.Filters {
	s.mustBeProvided()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// Update applies fn to the latest committed filters and commits the result.
// It returns the committed value.
func (s *Store) Update(fn func(domain.Filters) domain.Filters) domain.Filters {
	s.mustBeProvided()

	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.mu.Lock()
	prev := s.filters
	next := fn(prev)
	s.filters = next
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	if next != prev {
		for _, l := range listeners {
			l(prev, next)
		}
	}
	return next
}

// Snapshot calls fn with the latest committed filters while holding off
// commits, so no change can land between reading the value and acting on it.
// fn must not call Update.
func (s *Store) Snapshot(fn func(domain.Filters)) {
	s.mustBeProvided()

	s.commitMu.Lock()
	defer s.commitMu.Unlock()
	fn(s.Read())
}

// Subscribe registers l and returns a function that removes it
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mustBeProvided()

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// SetCategory selects a category; "" clears it
func (s *Store) SetCategory(category string) domain.Filters {
	return s.Update(func(f domain.Filters) domain.Filters {
		f.SelectedCategory = category
		return f
	})
}

// SetSearchTerm sets the (already debounced) search term
func (s *Store) SetSearchTerm(term string) domain.Filters {
	return s.Update(func(f domain.Filters) domain.Filters {
		f.SearchTerm = term
		return f
	})
}

// SetSortOrder sets the price sort order
func (s *Store) SetSortOrder(order domain.SortOrder) domain.Filters {
	return s.Update(func(f domain.Filters) domain.Filters {
		f.SortOrder = order
		return f
	})
}

// Reset clears every axis
func (s *Store) Reset() domain.Filters {
	return s.Update(func(domain.Filters) domain.Filters {
		return domain.Filters{}
	})
}

// snapshotListeners copies listeners in registration order. Caller holds mu.
func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

func (s *Store) mustBeProvided() {
	if s == nil || s.listeners == nil {
		panic(fmt.Errorf("%w: create it with filter.NewStore", domain.ErrNoFilterStore))
	}
}

type storeKey struct{}

// WithStore returns a context that provides s to FromContext
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext returns the store provided by WithStore.
// It panics when ctx carries no store.
func FromContext(ctx context.Context) *Store {
	s, ok := ctx.Value(storeKey{}).(*Store)
	if !ok || s == nil {
		panic(fmt.Errorf("%w: filter.FromContext needs a context from filter.WithStore", domain.ErrNoFilterStore))
	}
	return s
}
