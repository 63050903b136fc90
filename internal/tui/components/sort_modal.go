package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/aisle/internal/domain"
	"github.com/mmcdole/aisle/internal/tui/styles"
)

// SortOptions are the choices offered by the sort modal, in display order
func SortOptions() []domain.SortOrder {
	return []domain.SortOrder{domain.SortUnset, domain.SortAsc, domain.SortDesc}
}

// SortModal is a small popup for choosing the price sort order
type SortModal struct {
	visible bool
	options []domain.SortOrder
	cursor  int
	active  domain.SortOrder
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{options: SortOptions()}
}

// Show displays the modal with the cursor on the active order
func (m *SortModal) Show(active domain.SortOrder) {
	m.visible = true
	m.active = active
	m.cursor = 0
	for i, opt := range m.options {
		if opt == active {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice.
func (m *SortModal) HandleKey(msg tea.KeyMsg) (handled bool, selection *domain.SortOrder) {
	if !m.visible {
		return false, nil
	}

	switch {
	case key.Matches(msg, NavKeys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(msg, NavKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, NavKeys.Enter):
		chosen := m.options[m.cursor]
		m.visible = false
		return true, &chosen
	case key.Matches(msg, NavKeys.Escape), msg.String() == "s":
		m.visible = false
	}

	return true, nil // consume all keys when visible
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible {
		return ""
	}

	const width = 22
	lines := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		prefix := "  "
		if opt == m.active {
			prefix = "✓ "
		}
		text := styles.Pad(prefix+opt.String(), width)

		switch {
		case i == m.cursor:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(text))
		case opt == m.active:
			lines = append(lines, styles.AccentStyle.Render(text))
		default:
			lines = append(lines, styles.SubtitleStyle.Render(text))
		}
	}

	return styles.ModalStyle.Render(
		styles.ModalTitleStyle.Render("Sort by") + "\n" + strings.Join(lines, "\n"),
	)
}
