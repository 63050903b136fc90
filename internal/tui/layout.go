package tui

import "github.com/mmcdole/aisle/internal/tui/components"

// Layout constants
const (
	SidebarWidth    = components.DefaultSidebarWidth
	MinGridWidth    = 30
	HeaderHeight    = 1
	FooterHeight    = 1
	ChromeHeight    = HeaderHeight + FooterHeight
	HeaderTitleSize = 8 // " Aisle  "
)

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := max(m.Height-ChromeHeight, 1)

	sidebarWidth := SidebarWidth
	if m.Width-sidebarWidth < MinGridWidth {
		sidebarWidth = max(m.Width-MinGridWidth, 0)
	}

	m.Sidebar.SetSize(sidebarWidth, contentHeight)
	m.Grid.SetSize(m.Width-sidebarWidth, contentHeight)
	m.Omnibar.SetWidth(max(m.Width-HeaderTitleSize, 10))
	m.help.Width = m.Width
}
