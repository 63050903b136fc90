package components

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/mmcdole/aisle/internal/tui/styles"
)

// ErrorBoundary contains render panics of one region of the screen.
// After a panic it renders a fallback until Reset is called.
// It is independent of the fetch lifecycle.
type ErrorBoundary struct {
	name    string
	logger  *slog.Logger
	failure any
}

// NewErrorBoundary creates a boundary for the named region
func NewErrorBoundary(name string, logger *slog.Logger) *ErrorBoundary {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorBoundary{name: name, logger: logger}
}

// Render returns render(), or the fallback if render panics or the
// boundary has already tripped.
func (b *ErrorBoundary) Render(render func() string) (out string) {
	if b.failure != nil {
		return b.fallback()
	}

	defer func() {
		if r := recover(); r != nil {
			b.failure = r
			b.logger.Error("render panic recovered",
				"region", b.name,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()))
			out = b.fallback()
		}
	}()
	return render()
}

// Failed reports whether the boundary has tripped
func (b *ErrorBoundary) Failed() bool {
	return b.failure != nil
}

// Reset clears the failure so the region renders again
func (b *ErrorBoundary) Reset() {
	b.failure = nil
}

func (b *ErrorBoundary) fallback() string {
	return styles.ErrorStyle.Render("Something went wrong displaying "+b.name+".") + "\n" +
		styles.DimStyle.Render(fmt.Sprint(b.failure)) + "\n" +
		styles.DimStyle.Render("r to reset")
}
