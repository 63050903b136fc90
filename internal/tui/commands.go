package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/aisle/internal/domain"
	"github.com/mmcdole/aisle/internal/service"
)

// categoriesTimeout bounds a single category list request
const categoriesTimeout = 30 * time.Second

// LoadCategoriesCmd loads the category list
func LoadCategoriesCmd(svc *service.CategoryService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), categoriesTimeout)
		defer cancel()

		categories, err := svc.Categories(ctx)
		return CategoriesLoadedMsg{Categories: categories, Err: err}
	}
}

// listenFetchCmd waits for the next fetch state. The update loop re-issues
// it after every FetchStateMsg.
func listenFetchCmd(ch <-chan domain.FetchState) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return FetchStateMsg{State: s}
	}
}

// listenFiltersCmd waits for the next committed filter change
func listenFiltersCmd(ch <-chan domain.Filters) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-ch
		if !ok {
			return nil
		}
		return FiltersChangedMsg{Filters: f}
	}
}

// OpenProductCmd opens the product's thumbnail with opener
func OpenProductCmd(opener LinkOpener, p domain.Product) tea.Cmd {
	return func() tea.Msg {
		return ProductOpenedMsg{Title: p.Title, Err: opener.Open(p.Thumbnail)}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
