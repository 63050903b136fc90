package tui

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/aisle/internal/adapter"
	"github.com/mmcdole/aisle/internal/catalogtest"
	"github.com/mmcdole/aisle/internal/domain"
	"github.com/mmcdole/aisle/internal/filter"
	"github.com/mmcdole/aisle/internal/query"
	"github.com/mmcdole/aisle/internal/service"
	"github.com/mmcdole/aisle/internal/tui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// memoryRepo answers immediately from the sample catalog
type memoryRepo struct {
	fetches atomic.Int32
}

func (r *memoryRepo) FetchProducts(context.Context, string) (*domain.ProductPage, error) {
	r.fetches.Add(1)
	products := catalogtest.SampleProducts()
	return &domain.ProductPage{Products: products, Total: len(products)}, nil
}

func (r *memoryRepo) GetCategories(context.Context) ([]string, error) {
	return catalogtest.SampleCategories(), nil
}

type harness struct {
	model   Model
	store   *filter.Store
	fetcher *service.CatalogFetcher
	repo    *memoryRepo
}

func newHarness(t *testing.T, opts ...func(*Deps)) *harness {
	t.Helper()
	repo := &memoryRepo{}
	store := filter.NewStore()
	fetcher := service.NewCatalogFetcher(repo, query.NewBuilder("https://catalog.test"), adapter.NullLogger())

	deps := Deps{
		Store:      store,
		Fetcher:    fetcher,
		Categories: service.NewCategoryService(repo, adapter.NullLogger()),
		Debounce:   time.Hour,
		Columns:    3,
		Logger:     adapter.NullLogger(),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	m := NewModel(deps)
	t.Cleanup(m.Close)
	fetcher.Wait()

	h := &harness{model: m, store: store, fetcher: fetcher, repo: repo}
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		h.send(msg)
	}
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestModel_InitialFetch(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, int32(1), h.repo.fetches.Load())
	assert.Equal(t, domain.FetchSuccess, h.fetcher.State().Status)
	assert.NotNil(t, h.model.Init())
}

func TestModel_SortModal(t *testing.T) {
	h := newHarness(t)

	h.press("s")
	require.True(t, h.model.SortModal.IsVisible())
	assert.Contains(t, h.model.View(), "Sort by")

	h.press("j", "j", "enter")

	assert.False(t, h.model.SortModal.IsVisible())
	assert.Equal(t, domain.SortDesc, h.store.Read().SortOrder)

	h.press("s", "k", "k", "enter")
	assert.Equal(t, domain.SortUnset, h.store.Read().SortOrder)
}

func TestModel_SearchIsDebounced(t *testing.T) {
	h := newHarness(t)

	h.press("/")
	require.Equal(t, FocusSearch, h.model.Focus)

	h.typeText("phone")
	assert.Equal(t, "phone", h.model.Omnibar.Value())
	assert.Empty(t, h.store.Read().SearchTerm, "typing alone must not commit")

	h.press("enter")
	assert.Equal(t, "phone", h.store.Read().SearchTerm)
	assert.Equal(t, FocusGrid, h.model.Focus)
}

func TestModel_SearchTypingDoesNotTriggerShortcuts(t *testing.T) {
	h := newHarness(t)

	h.press("/")
	h.typeText("qsc")

	assert.Equal(t, "qsc", h.model.Omnibar.Value())
	assert.False(t, h.model.SortModal.IsVisible())
	assert.Equal(t, FocusSearch, h.model.Focus)
	assert.Equal(t, int32(1), h.repo.fetches.Load())
}

func TestModel_CategoryPicker(t *testing.T) {
	h := newHarness(t)
	h.send(CategoriesLoadedMsg{Categories: catalogtest.SampleCategories()})

	h.press("c")
	require.Equal(t, FocusCategories, h.model.Focus)
	assert.Equal(t,
		[]string{"All Categories", "beauty", "furniture", "laptops", "smartphones"},
		h.model.Sidebar.Visible())

	h.typeText("lap")
	assert.Equal(t, []string{"laptops"}, h.model.Sidebar.Visible())

	h.press("enter")
	assert.Equal(t, "laptops", h.store.Read().SelectedCategory)
	assert.Equal(t, FocusGrid, h.model.Focus)

	h.press("c", "enter")
	assert.Empty(t, h.store.Read().SelectedCategory, "All Categories clears the selection")
}

func TestModel_CategoryLoadFailure(t *testing.T) {
	h := newHarness(t)

	h.send(CategoriesLoadedMsg{Err: domain.ErrServerOffline})

	assert.True(t, h.model.Sidebar.LoadFailed())
	assert.True(t, h.model.StatusIsErr)
	assert.Contains(t, h.model.View(), "Failed to load categories")
}

func TestModel_ClearFilters(t *testing.T) {
	h := newHarness(t)
	h.store.SetCategory("beauty")
	h.store.SetSearchTerm("phone")
	h.store.SetSortOrder(domain.SortAsc)

	h.press("/")
	h.typeText("pending")
	h.press("esc")
	h.fetcher.Wait()
	before := h.repo.fetches.Load()

	h.press("x")
	h.fetcher.Wait()

	assert.Equal(t, domain.Filters{}, h.store.Read())
	assert.Empty(t, h.model.Omnibar.Value())
	assert.False(t, h.model.debouncer.Pending())
	assert.Equal(t, before+1, h.repo.fetches.Load(), "one clear issues one request")
	assert.Equal(t, "https://catalog.test/products?limit=0", h.fetcher.State().Query.URL())
}

func TestModel_FetchStateRendering(t *testing.T) {
	h := newHarness(t)

	h.send(FetchStateMsg{State: domain.FetchState{Status: domain.FetchLoading}})
	assert.Contains(t, h.model.View(), "Loading products")

	h.send(FetchStateMsg{State: domain.FetchState{Status: domain.FetchError, Err: domain.ErrServerOffline}})
	view := h.model.View()
	assert.Contains(t, view, domain.GenericErrorMessage)
	assert.Contains(t, view, "catalog server is unreachable")

	h.send(FetchStateMsg{State: h.fetcher.State()})
	view = h.model.View()
	assert.Contains(t, view, "8 products")
	assert.Contains(t, view, "iPhone 6")

	h.send(FetchStateMsg{State: domain.FetchState{
		Status: domain.FetchSuccess,
		Page:   &domain.ProductPage{Products: []domain.Product{}},
	}})
	assert.Contains(t, h.model.View(), "No products found")
}

func TestModel_GridSelectionFollowsProductID(t *testing.T) {
	h := newHarness(t)
	h.send(FetchStateMsg{State: h.fetcher.State()})

	h.press("l", "l")
	selected, ok := h.model.Grid.Selected()
	require.True(t, ok)
	assert.Equal(t, 11, selected.ID)

	products := catalogtest.SampleProducts()
	reordered := append([]domain.Product{products[2]}, products[0], products[1])
	h.send(FetchStateMsg{State: domain.FetchState{
		Status: domain.FetchSuccess,
		Page:   &domain.ProductPage{Products: reordered},
	}})

	selected, ok = h.model.Grid.Selected()
	require.True(t, ok)
	assert.Equal(t, 11, selected.ID)
	assert.Equal(t, 0, h.model.Grid.Cursor())
}

func TestModel_RetryAfterError(t *testing.T) {
	h := newHarness(t)
	h.send(FetchStateMsg{State: domain.FetchState{Status: domain.FetchError, Err: domain.ErrServerOffline}})

	h.press("r")
	h.fetcher.Wait()

	assert.Equal(t, int32(2), h.repo.fetches.Load())
}

func TestModel_QuitTearsDown(t *testing.T) {
	h := newHarness(t)
	h.press("/")
	h.typeText("lamp")
	h.press("esc")
	require.True(t, h.model.debouncer.Pending())

	next, cmd := h.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	h.model = next.(Model)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, h.model.debouncer.Pending())
	assert.Zero(t, h.fetcher.Refresh(domain.Filters{SearchTerm: "x"}), "fetcher is closed")
	assert.Empty(t, h.store.Read().SearchTerm)
}

func TestModel_Help(t *testing.T) {
	h := newHarness(t)

	h.press("?")
	assert.True(t, h.model.ShowHelp)
	assert.True(t, strings.Contains(h.model.View(), "clear filters"))

	h.press("esc")
	assert.False(t, h.model.ShowHelp)

	assert.Equal(t, styles.HelpKeyStyle, h.model.help.Styles.ShortKey)
	assert.Equal(t, styles.HelpDescStyle, h.model.help.Styles.FullDesc)
}

type fakeOpener struct {
	links []string
	err   error
}

func (o *fakeOpener) Open(link string) error {
	o.links = append(o.links, link)
	return o.err
}

func TestModel_OpenSelectedProduct(t *testing.T) {
	opener := &fakeOpener{}
	h := newHarness(t, func(d *Deps) { d.Opener = opener })
	h.send(FetchStateMsg{State: h.fetcher.State()})

	h.press("l", "o")
	assert.Empty(t, opener.links, "opening runs as a command")

	next, cmd := h.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	h.model = next.(Model)
	require.NotNil(t, cmd)
	h.send(cmd())

	assert.Equal(t, []string{"https://cdn.example/2.webp"}, opener.links)
	assert.Equal(t, "Opened Eyeshadow Palette with Mirror", h.model.StatusMsg)

	opener.err = adapter.ErrNoLink
	h.send(OpenProductCmd(opener, domain.Product{Title: "Lamp"})())
	assert.True(t, h.model.StatusIsErr)
	assert.Contains(t, h.model.StatusMsg, "Could not open Lamp")
}

func TestModel_OpenWithoutOpener(t *testing.T) {
	h := newHarness(t)
	h.send(FetchStateMsg{State: h.fetcher.State()})

	next, cmd := h.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	h.model = next.(Model)
	assert.Nil(t, cmd)
}
