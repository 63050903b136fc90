package tui

import "github.com/mmcdole/aisle/internal/domain"

// Message types for the TUI

// FetchStateMsg carries the latest catalog fetch state
type FetchStateMsg struct {
	State domain.FetchState
}

// CategoriesLoadedMsg signals that the category list request finished
type CategoriesLoadedMsg struct {
	Categories []string
	Err        error
}

// FiltersChangedMsg carries the filters after a committed change
type FiltersChangedMsg struct {
	Filters domain.Filters
}

// ProductOpenedMsg reports the result of opening a product's image
type ProductOpenedMsg struct {
	Title string
	Err   error
}

// ClearStatusMsg clears the status line
type ClearStatusMsg struct{}
