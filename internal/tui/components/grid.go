package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/aisle/internal/domain"
	"github.com/mmcdole/aisle/internal/tui/styles"
)

// Layout constants for the product grid
const (
	// Title, price and meta line inside each card
	CardContentLines = 3

	// Card border adds one line above and below
	CardHeight = CardContentLines + BorderSize

	// Status line at the top and detail line at the bottom
	GridChromeLines = 2

	DefaultColumns = 3
)

// Grid renders the product results as a grid of cards
type Grid struct {
	state    domain.FetchState
	products []domain.Product

	// Selection is keyed by product ID so it survives refetches
	cursor     int
	selectedID int
	rowOffset  int

	columns int
	width   int
	height  int
	focused bool

	spinner spinner.Model
}

// NewGrid creates a new product grid
func NewGrid(columns int) Grid {
	if columns <= 0 {
		columns = DefaultColumns
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return Grid{
		columns: columns,
		spinner: sp,
	}
}

// Init starts the loading spinner
func (g Grid) Init() tea.Cmd {
	return g.spinner.Tick
}

// SetState replaces the rendered fetch state
func (g *Grid) SetState(s domain.FetchState) {
	g.state = s
	if s.Status != domain.FetchSuccess {
		return
	}

	g.products = s.Products()
	g.cursor = 0
	for i, p := range g.products {
		if p.ID == g.selectedID {
			g.cursor = i
			break
		}
	}
	g.syncSelection()
	g.ensureVisible()
}

// State returns the rendered fetch state
func (g Grid) State() domain.FetchState {
	return g.state
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.ensureVisible()
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// IsFocused returns whether the grid has focus
func (g Grid) IsFocused() bool {
	return g.focused
}

// Selected returns the product under the cursor
func (g Grid) Selected() (domain.Product, bool) {
	if g.state.Status != domain.FetchSuccess || g.cursor >= len(g.products) {
		return domain.Product{}, false
	}
	return g.products[g.cursor], true
}

// Cursor returns the cursor position
func (g Grid) Cursor() int {
	return g.cursor
}

func (g *Grid) syncSelection() {
	if g.cursor < len(g.products) {
		g.selectedID = g.products[g.cursor].ID
	}
}

func (g Grid) visibleRows() int {
	return max((g.height-BorderSize-GridChromeLines)/CardHeight, 1)
}

func (g *Grid) ensureVisible() {
	row := g.cursor / g.columns
	visible := g.visibleRows()
	if row < g.rowOffset {
		g.rowOffset = row
	}
	if row >= g.rowOffset+visible {
		g.rowOffset = row - visible + 1
	}
}

// Update handles spinner ticks and, when focused, cursor movement
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		g.spinner, cmd = g.spinner.Update(msg)
		return g, cmd

	case tea.KeyMsg:
		if !g.focused || len(g.products) == 0 || g.state.Status != domain.FetchSuccess {
			return g, nil
		}
		last := len(g.products) - 1
		switch {
		case key.Matches(msg, NavKeys.Left):
			if g.cursor > 0 {
				g.cursor--
			}
		case key.Matches(msg, NavKeys.Right):
			if g.cursor < last {
				g.cursor++
			}
		case key.Matches(msg, NavKeys.Up):
			if g.cursor-g.columns >= 0 {
				g.cursor -= g.columns
			}
		case key.Matches(msg, NavKeys.Down):
			g.cursor = min(g.cursor+g.columns, last)
		case key.Matches(msg, NavKeys.Home):
			g.cursor = 0
		case key.Matches(msg, NavKeys.End):
			g.cursor = last
		}
		g.syncSelection()
		g.ensureVisible()
	}
	return g, nil
}

// View renders the grid
func (g Grid) View() string {
	style := styles.InactiveBorder
	if g.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	innerW := max(g.width-frameW, 1)

	return style.
		Width(innerW).
		Height(max(g.height-frameH, 1)).
		Render(g.renderContent(innerW))
}

func (g Grid) renderContent(width int) string {
	switch g.state.Status {
	case domain.FetchIdle:
		return styles.DimStyle.Render("Waiting for first request...")

	case domain.FetchLoading:
		return g.spinner.View() + " " + styles.SubtitleStyle.Render("Loading products...")

	case domain.FetchError:
		lines := []string{styles.ErrorStyle.Bold(true).Render(g.state.Message())}
		if g.state.Err != nil {
			lines = append(lines, styles.DimStyle.Render(styles.Truncate(g.state.Err.Error(), width)))
		}
		lines = append(lines, styles.DimStyle.Render("r to retry"))
		return strings.Join(lines, "\n")
	}

	if len(g.products) == 0 {
		return g.renderStatus(width) + "\n" + styles.DimStyle.Render("No products found")
	}

	cardW := max(width/g.columns, 8)
	startRow := g.rowOffset
	endRow := min(startRow+g.visibleRows(), (len(g.products)+g.columns-1)/g.columns)

	rows := make([]string, 0, endRow-startRow)
	for r := startRow; r < endRow; r++ {
		cards := make([]string, 0, g.columns)
		for c := 0; c < g.columns; c++ {
			i := r*g.columns + c
			if i >= len(g.products) {
				break
			}
			cards = append(cards, g.renderCard(g.products[i], i == g.cursor, cardW))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return g.renderStatus(width) + "\n" +
		lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n" +
		g.renderDetail(width)
}

func (g Grid) renderStatus(width int) string {
	status := fmt.Sprintf("%d products", len(g.products))
	if t := g.state.Page; t != nil && t.Total > len(g.products) {
		status = fmt.Sprintf("%d of %d products", len(g.products), t.Total)
	}
	return styles.SubtitleStyle.Render(styles.Truncate(status, width))
}

func (g Grid) renderDetail(width int) string {
	p, ok := g.Selected()
	if !ok {
		return " "
	}
	return styles.DimStyle.Render(styles.Truncate(p.Description, width))
}

func (g Grid) renderCard(p domain.Product, selected bool, width int) string {
	style := styles.CardStyle
	if selected && g.focused {
		style = styles.CardSelectedStyle
	}
	frameW, _ := style.GetFrameSize()
	inner := max(width-frameW, 1)

	title := styles.TitleStyle.Render(styles.Truncate(p.Title, inner))
	price := styles.PriceStyle.Render(p.FormattedPrice())
	meta := styles.DimStyle.Render(styles.Truncate(fmt.Sprintf("★ %.1f · %s", p.Rating, p.Category), inner))

	return style.Width(inner).Render(title + "\n" + price + "\n" + meta)
}
