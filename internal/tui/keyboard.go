package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/aisle/internal/domain"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	if m.ShowHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.ShowHelp = false
		}
		return m, nil
	}

	// Route to active modal if any
	if handled, sel := m.SortModal.HandleKey(msg); handled {
		if sel != nil {
			m.logger.Debug("sort order selected", "order", string(*sel))
			m.store.SetSortOrder(*sel)
		}
		return m, nil
	}

	switch m.Focus {
	case FocusSearch:
		return m.handleSearchKey(msg)
	case FocusCategories:
		return m.handleCategoryKey(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Search):
		return m, m.setFocus(FocusSearch)

	case key.Matches(msg, Keys.Categories), key.Matches(msg, Keys.NextFocus):
		return m, m.setFocus(FocusCategories)

	case key.Matches(msg, Keys.Sort):
		m.SortModal.Show(m.store.Read().SortOrder)
		return m, nil

	case key.Matches(msg, Keys.ClearAll):
		m.clearFilters()
		m.StatusMsg = "Filters cleared"
		return m, ClearStatusCmd(2 * time.Second)

	case key.Matches(msg, Keys.Retry):
		return m.retry()

	case key.Matches(msg, Keys.Open):
		return m.openSelected()
	}

	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Submit):
		m.debouncer.Flush()
		return m, m.setFocus(FocusGrid)
	case key.Matches(msg, Keys.Escape):
		return m, m.setFocus(FocusGrid)
	case key.Matches(msg, Keys.NextFocus):
		return m, m.setFocus(FocusCategories)
	}

	var (
		cmd     tea.Cmd
		changed bool
	)
	m.Omnibar, cmd, changed = m.Omnibar.Update(msg)
	if changed {
		m.debouncer.Set(m.Omnibar.Value())
	}
	return m, cmd
}

func (m Model) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.NextFocus):
		return m, m.setFocus(FocusGrid)
	case key.Matches(msg, Keys.Escape) && m.Sidebar.Query() == "":
		return m, m.setFocus(FocusGrid)
	}

	cmd, sel := m.Sidebar.HandleKey(msg)
	if sel != nil {
		m.logger.Debug("category selected", "category", *sel)
		m.store.SetCategory(*sel)
		return m, tea.Batch(cmd, m.setFocus(FocusGrid))
	}
	return m, cmd
}

// clearFilters resets every control and commits empty filters
func (m *Model) clearFilters() {
	m.Omnibar.Reset()
	// A pending term must not land after the reset
	m.debouncer.Cancel()
	m.store.Reset()
}

// retry resets a tripped render boundary, reissues a failed fetch and
// reloads categories that failed to load
func (m Model) retry() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.GridBoundary.Failed() {
		m.GridBoundary.Reset()
	}
	if m.Grid.State().Status == domain.FetchError {
		m.fetcher.RefreshFrom(m.store)
	}
	if m.Sidebar.LoadFailed() {
		m.Sidebar.SetLoading()
		cmds = append(cmds, LoadCategoriesCmd(m.categories))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) openSelected() (tea.Model, tea.Cmd) {
	if m.opener == nil {
		return m, nil
	}
	p, ok := m.Grid.Selected()
	if !ok {
		return m, nil
	}
	m.logger.Debug("opening product", "id", p.ID)
	return m, OpenProductCmd(m.opener, p)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}
