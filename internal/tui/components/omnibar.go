package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/aisle/internal/tui/styles"
)

// Omnibar is the free-text product search input. It only holds the raw
// text; the caller decides when the text becomes the committed search term.
type Omnibar struct {
	input     textinput.Model
	committed string
	width     int
}

// NewOmnibar creates a new search input
func NewOmnibar() Omnibar {
	ti := textinput.New()
	ti.Placeholder = "Search products..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = styles.InputTextStyle
	ti.PlaceholderStyle = styles.DimStyle

	return Omnibar{input: ti}
}

// Focus gives the input keyboard focus
func (o *Omnibar) Focus() tea.Cmd {
	return o.input.Focus()
}

// Blur removes keyboard focus
func (o *Omnibar) Blur() {
	o.input.Blur()
}

// IsFocused returns whether the input has focus
func (o Omnibar) IsFocused() bool {
	return o.input.Focused()
}

// Value returns the raw text as typed
func (o Omnibar) Value() string {
	return o.input.Value()
}

// Reset clears the text
func (o *Omnibar) Reset() {
	o.input.SetValue("")
}

// SetCommitted records the search term currently applied to the catalog
func (o *Omnibar) SetCommitted(term string) {
	o.committed = term
}

// SetWidth updates the component width
func (o *Omnibar) SetWidth(width int) {
	o.width = width
	o.input.Width = max(width-4, 1)
}

// Update forwards msg to the input. changed reports whether the text changed.
func (o Omnibar) Update(msg tea.Msg) (Omnibar, tea.Cmd, bool) {
	prev := o.input.Value()
	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	return o, cmd, o.input.Value() != prev
}

// View renders the search input
func (o Omnibar) View() string {
	view := o.input.View()
	if o.input.Value() != o.committed {
		view += styles.DimStyle.Render(" …")
	}
	return view
}
