package tui

import "github.com/mmcdole/aisle/internal/domain"

// ChannelObserver adapts domain.FetchObserver to a channel for Bubble Tea.
//
// The channel should have capacity 1. A state that arrives while the
// previous one is still unread replaces it, so the reader always gets the
// latest state and OnFetchState never blocks.
type ChannelObserver struct {
	ch chan domain.FetchState
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan domain.FetchState) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnFetchState delivers s, dropping an unread older state if needed.
func (o *ChannelObserver) OnFetchState(s domain.FetchState) {
	offerLatest(o.ch, s)
}

// offerLatest sends v without blocking, evicting an unread value if ch is full.
// Senders must be serialized.
func offerLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
