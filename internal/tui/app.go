package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/aisle/internal/debounce"
	"github.com/mmcdole/aisle/internal/domain"
	"github.com/mmcdole/aisle/internal/filter"
	"github.com/mmcdole/aisle/internal/service"
	"github.com/mmcdole/aisle/internal/tui/components"
	"github.com/mmcdole/aisle/internal/tui/styles"
)

// Focus identifies the control receiving keys
type Focus int

const (
	FocusGrid Focus = iota
	FocusCategories
	FocusSearch
)

// String returns the focus name for logging
func (f Focus) String() string {
	switch f {
	case FocusCategories:
		return "categories"
	case FocusSearch:
		return "search"
	default:
		return "grid"
	}
}

// LinkOpener opens a product link outside the terminal
type LinkOpener interface {
	Open(link string) error
}

// Deps are the services the TUI drives. Opener is optional.
type Deps struct {
	Store      *filter.Store
	Fetcher    *service.CatalogFetcher
	Categories *service.CategoryService
	Debounce   time.Duration
	Columns    int
	Opener     LinkOpener
	Logger     *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready    bool
	Focus    Focus
	ShowHelp bool

	// Services
	store      *filter.Store
	fetcher    *service.CatalogFetcher
	categories *service.CategoryService
	debouncer  *debounce.Debouncer[string]
	opener     LinkOpener
	logger     *slog.Logger

	fetchCh   chan domain.FetchState
	filtersCh chan domain.Filters
	closer    *closer

	// UI Components
	Sidebar      components.Sidebar
	Omnibar      components.Omnibar
	Grid         components.Grid
	SortModal    components.SortModal
	GridBoundary *components.ErrorBoundary
	help         help.Model

	// Last committed filters, for display
	Filters domain.Filters

	// Dimensions
	Width  int
	Height int

	StatusMsg   string
	StatusIsErr bool
}

// closer runs teardown once across all copies of the model
type closer struct {
	once sync.Once
	fn   func()
}

func (c *closer) Close() {
	c.once.Do(c.fn)
}

// NewModel wires the store, debouncer and fetcher together and issues the
// initial fetch. Call Close when the program exits.
func NewModel(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := deps.Store

	fetchCh := make(chan domain.FetchState, 1)
	filtersCh := make(chan domain.Filters, 1)

	deps.Fetcher.Subscribe(NewChannelObserver(fetchCh))
	unsubscribe := store.Subscribe(func(_, next domain.Filters) {
		offerLatest(filtersCh, next)
	})

	debouncer := debounce.New(deps.Debounce, func(term string) {
		logger.Debug("search term settled", "term", term)
		store.SetSearchTerm(term)
	})

	unbind := deps.Fetcher.Bind(store)

	c := &closer{fn: func() {
		debouncer.Stop()
		unbind()
		unsubscribe()
		deps.Fetcher.Close()
		// No sender remains; release pending listen commands
		close(fetchCh)
		close(filtersCh)
		logger.Debug("tui torn down")
	}}

	grid := components.NewGrid(deps.Columns)
	grid.SetFocused(true)

	return Model{
		Focus:        FocusGrid,
		store:        store,
		fetcher:      deps.Fetcher,
		categories:   deps.Categories,
		debouncer:    debouncer,
		opener:       deps.Opener,
		logger:       logger,
		fetchCh:      fetchCh,
		filtersCh:    filtersCh,
		closer:       c,
		Sidebar:      components.NewSidebar(),
		Omnibar:      components.NewOmnibar(),
		Grid:         grid,
		SortModal:    components.NewSortModal(),
		GridBoundary: components.NewErrorBoundary("products", logger),
		help:         newHelp(),
		Filters:      store.Read(),
	}
}

func newHelp() help.Model {
	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle
	return h
}

// Close stops the debouncer, detaches from the store and closes the fetcher.
// It is safe to call more than once.
func (m Model) Close() {
	m.closer.Close()
}

// Init starts the listeners and loads categories
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		listenFetchCmd(m.fetchCh),
		listenFiltersCmd(m.filtersCh),
		LoadCategoriesCmd(m.categories),
		m.Grid.Init(),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case FetchStateMsg:
		m.Grid.SetState(msg.State)
		return m, listenFetchCmd(m.fetchCh)

	case FiltersChangedMsg:
		m.applyFilters(msg.Filters)
		return m, listenFiltersCmd(m.filtersCh)

	case CategoriesLoadedMsg:
		if msg.Err != nil {
			m.Sidebar.SetLoadError(msg.Err)
			m.StatusMsg = fmt.Sprintf("Failed to load categories: %v", msg.Err)
			m.StatusIsErr = true
			return m, ClearStatusCmd(5 * time.Second)
		}
		m.Sidebar.SetCategories(msg.Categories)
		return m, nil

	case ProductOpenedMsg:
		if msg.Err != nil {
			m.StatusMsg = fmt.Sprintf("Could not open %s: %v", msg.Title, msg.Err)
			m.StatusIsErr = true
		} else {
			m.StatusMsg = fmt.Sprintf("Opened %s", msg.Title)
			m.StatusIsErr = false
		}
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) applyFilters(f domain.Filters) {
	m.Filters = f
	m.Sidebar.SetActive(f.SelectedCategory)
	m.Omnibar.SetCommitted(f.SearchTerm)
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.Focus = f
	m.Grid.SetFocused(f == FocusGrid)

	var cmd tea.Cmd
	if f == FocusCategories {
		cmd = m.Sidebar.Focus()
	} else {
		m.Sidebar.Blur()
	}
	if f == FocusSearch {
		cmd = m.Omnibar.Focus()
	} else {
		m.Omnibar.Blur()
	}
	return cmd
}

// Run starts the TUI and blocks until it exits
func Run(ctx context.Context, deps Deps) error {
	model := NewModel(deps)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	model.logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		model.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	model.logger.Info("shutting down")
	return nil
}
