package query_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mmcdole/aisle/internal/domain"
	"github.com/mmcdole/aisle/internal/query"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

const base = "https://dummyjson.com"

func TestBuild_URLs(t *testing.T) {
	tests := []struct {
		name    string
		filters domain.Filters
		want    string
	}{
		{
			name:    "no filters",
			filters: domain.Filters{},
			want:    base + "/products?limit=0",
		},
		{
			name:    "category only",
			filters: domain.Filters{SelectedCategory: "electronics"},
			want:    base + "/products/category/electronics?limit=0",
		},
		{
			name:    "search only",
			filters: domain.Filters{SearchTerm: "phone"},
			want:    base + "/products/search?q=phone&limit=0",
		},
		{
			name:    "sort only",
			filters: domain.Filters{SortOrder: domain.SortAsc},
			want:    base + "/products?limit=0&sortBy=price&order=asc",
		},
		{
			name:    "category with sort",
			filters: domain.Filters{SelectedCategory: "electronics", SortOrder: domain.SortDesc},
			want:    base + "/products/category/electronics?limit=0&sortBy=price&order=desc",
		},
		{
			name:    "category wins over search",
			filters: domain.Filters{SelectedCategory: "electronics", SearchTerm: "phone"},
			want:    base + "/products/category/electronics?limit=0",
		},
		{
			name:    "search with sort",
			filters: domain.Filters{SearchTerm: "phone", SortOrder: domain.SortDesc},
			want:    base + "/products/search?q=phone&limit=0&sortBy=price&order=desc",
		},
		{
			name:    "search term is escaped",
			filters: domain.Filters{SearchTerm: "red & blue"},
			want:    base + "/products/search?q=red+%26+blue&limit=0",
		},
		{
			name:    "category is path escaped",
			filters: domain.Filters{SelectedCategory: "home decor"},
			want:    base + "/products/category/home%20decor?limit=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.Build(base, tt.filters).URL()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_Descriptor(t *testing.T) {
	got := query.Build(base, domain.Filters{SearchTerm: "phone", SortOrder: domain.SortAsc})

	want := domain.Descriptor{
		BaseURL:      base,
		PathSegments: []string{"products", "search"},
		Params: []domain.Param{
			{Key: "q", Value: "phone"},
			{Key: "limit", Value: "0"},
			{Key: "sortBy", Value: "price"},
			{Key: "order", Value: "asc"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_LimitAndBase(t *testing.T) {
	b := query.Builder{BaseURL: "http://localhost:8080/api/", Limit: 30}

	assert.Equal(t, "http://localhost:8080/api/products?limit=30", b.Build(domain.Filters{}).URL())
	assert.Equal(t, "http://localhost:8080/api/products/category-list", b.CategoryList().URL())
}

func TestBuild_IsDeterministic(t *testing.T) {
	f := domain.Filters{SelectedCategory: "laptops", SortOrder: domain.SortDesc}
	assert.Equal(t, query.Build(base, f).URL(), query.Build(base, f).URL())
}

func filtersGen() *rapid.Generator[domain.Filters] {
	return rapid.Custom(func(t *rapid.T) domain.Filters {
		return domain.Filters{
			SelectedCategory: rapid.SampledFrom([]string{"", "beauty", "mens-shirts", "home decor"}).Draw(t, "category"),
			SearchTerm:       rapid.StringMatching(`[a-z ]{0,8}`).Draw(t, "term"),
			SortOrder:        rapid.SampledFrom([]domain.SortOrder{domain.SortUnset, domain.SortAsc, domain.SortDesc}).Draw(t, "order"),
		}
	})
}

func TestProperty_Build(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := filtersGen().Draw(t, "filters")
		d := query.Build(base, f)

		u, err := url.Parse(d.URL())
		if err != nil {
			t.Fatalf("built URL does not parse: %v", err)
		}
		if !u.IsAbs() {
			t.Fatalf("built URL is not absolute: %s", u)
		}
		values := u.Query()

		if values.Get("limit") != "0" {
			t.Fatalf("limit must always be sent, got %q", values.Get("limit"))
		}

		if f.SelectedCategory != "" {
			if values.Has("q") {
				t.Fatalf("category set but q present: %s", u)
			}
			if want := "/products/category/" + f.SelectedCategory; u.Path != want {
				t.Fatalf("path %q, want %q", u.Path, want)
			}
		} else if f.SearchTerm != "" {
			if values.Get("q") != f.SearchTerm || u.Path != "/products/search" {
				t.Fatalf("search not applied: %s", u)
			}
		} else if u.Path != "/products" {
			t.Fatalf("unfiltered path %q", u.Path)
		}

		if f.SortOrder.IsSet() {
			if values.Get("sortBy") != "price" || values.Get("order") != string(f.SortOrder) {
				t.Fatalf("sort not applied: %s", u)
			}
		} else if values.Has("sortBy") || values.Has("order") {
			t.Fatalf("default sort injected: %s", u)
		}
	})
}
