package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/aisle/internal/search"
	"github.com/mmcdole/aisle/internal/tui/styles"
)

// AllCategoriesLabel is the entry that clears the category filter
const AllCategoriesLabel = "All Categories"

// Border overhead for bordered panels
const BorderSize = 2

// Size used until the first SetSize
const (
	DefaultSidebarWidth  = 28
	DefaultSidebarHeight = 20
)

// sidebarChromeLines is title + filter line
const sidebarChromeLines = 2

type categoryEntry struct {
	name    string // "" for AllCategoriesLabel
	matched []int
}

func (e categoryEntry) label() string {
	if e.name == "" {
		return AllCategoriesLabel
	}
	return e.name
}

// Sidebar is the category picker. Typing filters the list; enter selects.
type Sidebar struct {
	input   textinput.Model
	index   *search.CategoryIndex
	entries []categoryEntry
	cursor  int
	offset  int
	active  string

	loading bool
	err     error

	focused bool
	width   int
	height  int
}

// NewSidebar creates a new category picker waiting for its categories
func NewSidebar() Sidebar {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.Prompt = "> "
	ti.CharLimit = 40
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = styles.InputTextStyle
	ti.PlaceholderStyle = styles.DimStyle

	s := Sidebar{
		input:   ti,
		index:   search.NewCategoryIndex(nil),
		loading: true,
	}
	s.SetSize(DefaultSidebarWidth, DefaultSidebarHeight)
	s.refilter()
	return s
}

// SetCategories replaces the category list
func (s *Sidebar) SetCategories(names []string) {
	s.index = search.NewCategoryIndex(names)
	s.loading = false
	s.err = nil
	s.refilter()
}

// SetLoadError records a failed category load
func (s *Sidebar) SetLoadError(err error) {
	s.loading = false
	s.err = err
}

// SetLoading marks the list as loading
func (s *Sidebar) SetLoading() {
	s.loading = true
	s.err = nil
}

// LoadFailed reports whether the last category load failed
func (s Sidebar) LoadFailed() bool {
	return s.err != nil
}

// SetActive marks category as the committed selection; "" is All Categories
func (s *Sidebar) SetActive(category string) {
	s.active = category
}

// Active returns the committed selection
func (s Sidebar) Active() string {
	return s.active
}

// SetSize updates the component dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.input.Width = max(width-BorderSize-4, 1)
	s.ensureVisible()
}

// Focus gives the picker keyboard focus
func (s *Sidebar) Focus() tea.Cmd {
	s.focused = true
	return s.input.Focus()
}

// Blur removes keyboard focus
func (s *Sidebar) Blur() {
	s.focused = false
	s.input.Blur()
}

// IsFocused returns whether the picker has focus
func (s Sidebar) IsFocused() bool {
	return s.focused
}

// Query returns the current filter text
func (s Sidebar) Query() string {
	return s.input.Value()
}

// Visible returns the labels of the entries currently listed
func (s Sidebar) Visible() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.label()
	}
	return out
}

// HandleKey processes a key while focused. selection is non-nil when the
// user confirmed an entry; *selection is "" for All Categories.
func (s *Sidebar) HandleKey(msg tea.KeyMsg) (cmd tea.Cmd, selection *string) {
	switch {
	case key.Matches(msg, pickerNavKeys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, pickerNavKeys.Down):
		if s.cursor < len(s.entries)-1 {
			s.cursor++
		}
	case key.Matches(msg, pickerNavKeys.Home):
		s.cursor = 0
	case key.Matches(msg, pickerNavKeys.End):
		s.cursor = max(len(s.entries)-1, 0)
	case key.Matches(msg, pickerNavKeys.Enter):
		if len(s.entries) == 0 {
			return nil, nil
		}
		chosen := s.entries[s.cursor].name
		s.input.SetValue("")
		s.refilter()
		return nil, &chosen
	case key.Matches(msg, pickerNavKeys.Escape):
		s.input.SetValue("")
		s.refilter()
	default:
		prev := s.input.Value()
		s.input, cmd = s.input.Update(msg)
		if s.input.Value() != prev {
			s.refilter()
		}
	}
	s.ensureVisible()
	return cmd, nil
}

func (s *Sidebar) refilter() {
	query := strings.TrimSpace(s.input.Value())
	s.entries = s.entries[:0]
	if query == "" {
		s.entries = append(s.entries, categoryEntry{})
	}
	for _, m := range s.index.Match(query) {
		s.entries = append(s.entries, categoryEntry{name: m.Name, matched: m.MatchedIndexes})
	}
	s.cursor = 0
	s.offset = 0
}

func (s Sidebar) maxVisible() int {
	return max(s.height-BorderSize-sidebarChromeLines, 1)
}

func (s *Sidebar) ensureVisible() {
	visible := s.maxVisible()
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+visible {
		s.offset = s.cursor - visible + 1
	}
}

// View renders the sidebar
func (s Sidebar) View() string {
	style := styles.InactiveBorder
	if s.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	inner := max(s.width-frameW, 1)

	lines := []string{styles.HeaderStyle.Render("Categories")}
	if s.focused {
		lines = append(lines, s.input.View())
	} else {
		lines = append(lines, " ")
	}

	switch {
	case s.err != nil:
		lines = append(lines, styles.ErrorStyle.Render(styles.Truncate("Failed to load categories", inner)))
		lines = append(lines, styles.DimStyle.Render("r to retry"))
	case s.loading:
		lines = append(lines, styles.DimStyle.Render("Loading..."))
	case len(s.entries) == 0:
		lines = append(lines, styles.DimStyle.Render("No matches"))
	default:
		end := min(s.offset+s.maxVisible(), len(s.entries))
		for i := s.offset; i < end; i++ {
			lines = append(lines, s.renderEntry(s.entries[i], i == s.cursor && s.focused, inner))
		}
	}

	return style.
		Width(inner).
		Height(max(s.height-frameH, 1)).
		Render(strings.Join(lines, "\n"))
}

func (s Sidebar) renderEntry(e categoryEntry, selected bool, width int) string {
	marker := "  "
	if e.name == s.active {
		marker = "● "
	}
	label := styles.Truncate(e.label(), width-4)

	if len(e.matched) > 0 {
		return " " + marker + styles.Highlight(label, e.matched, selected)
	}
	switch {
	case selected:
		return styles.SelectedItemStyle.Render(styles.Pad(marker+label, width-2))
	case e.name == s.active:
		return styles.ActiveItemStyle.Render(marker + label)
	default:
		return styles.NormalItemStyle.Render(marker + label)
	}
}
