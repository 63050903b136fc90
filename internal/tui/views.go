package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/aisle/internal/tui/components"
	"github.com/mmcdole/aisle/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	header := m.renderHeader()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.Sidebar.View(),
		m.GridBoundary.Render(m.Grid.View),
	)
	footer := m.renderFooter()

	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)

	switch {
	case m.ShowHelp:
		return m.overlay(m.renderHelp())
	case m.SortModal.IsVisible():
		return m.overlay(m.SortModal.View())
	}
	return screen
}

func (m Model) overlay(modal string) string {
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, modal)
}

func (m Model) renderHeader() string {
	title := styles.HeaderStyle.Render("Aisle")
	return lipgloss.JoinHorizontal(lipgloss.Top, title, " ", m.Omnibar.View())
}

func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		style := styles.SubtitleStyle
		if m.StatusIsErr {
			style = styles.ErrorStyle
		}
		return style.Render(styles.Truncate(m.StatusMsg, m.Width))
	}

	summary := describeFilters(m.Filters.SelectedCategory, m.Filters.SearchTerm, m.Filters.SortOrder.String())
	help := m.help.ShortHelpView(Keys.ShortHelp())
	line := styles.DimStyle.Render(summary) + "  " + help
	if lipgloss.Width(line) > m.Width {
		return styles.DimStyle.Render(styles.Truncate(summary, m.Width))
	}
	return line
}

func describeFilters(category, term, sort string) string {
	parts := []string{}
	if category != "" {
		parts = append(parts, "category: "+category)
	} else {
		parts = append(parts, components.AllCategoriesLabel)
	}
	if term != "" {
		if category != "" {
			parts = append(parts, "search ignored")
		} else {
			parts = append(parts, "search: "+term)
		}
	}
	parts = append(parts, "sort: "+sort)
	return strings.Join(parts, " · ")
}

func (m Model) renderHelp() string {
	content := styles.ModalTitleStyle.Render("Keys") + "\n" + m.help.FullHelpView(Keys.FullHelp())
	return styles.ModalStyle.Render(content)
}
