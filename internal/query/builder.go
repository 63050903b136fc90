// Package query maps a filter snapshot to the single catalog request it implies.
package query

import (
	"strconv"

	"github.com/mmcdole/aisle/internal/domain"
)

// Path segments and parameter names of the catalog API
const (
	segProducts     = "products"
	segCategory     = "category"
	segSearch       = "search"
	segCategoryList = "category-list"

	ParamQuery  = "q"
	ParamLimit  = "limit"
	ParamSortBy = "sortBy"
	ParamOrder  = "order"

	// SortKeyPrice is the only sort key the catalog is asked for
	SortKeyPrice = "price"
)

// Builder builds descriptors against one catalog base URL.
// Limit 0 asks the API for every matching item.
type Builder struct {
	BaseURL string
	Limit   int
}

// NewBuilder returns a Builder with no item limit
func NewBuilder(baseURL string) Builder {
	return Builder{BaseURL: baseURL}
}

// Build maps f to a descriptor.
//
// A selected category wins over the search term: when both are set the
// search term is ignored. The limit is always sent. Sorting is sent only when
// f.SortOrder is set.
func (b Builder) Build(f domain.Filters) domain.Descriptor {
	d := domain.Descriptor{
		BaseURL:      b.BaseURL,
		PathSegments: []string{segProducts},
	}

	switch {
	case f.SelectedCategory != "":
		d.PathSegments = append(d.PathSegments, segCategory, f.SelectedCategory)
	case f.SearchTerm != "":
		d.PathSegments = append(d.PathSegments, segSearch)
		d.Params = append(d.Params, domain.Param{Key: ParamQuery, Value: f.SearchTerm})
	}

	d.Params = append(d.Params, domain.Param{Key: ParamLimit, Value: strconv.Itoa(b.Limit)})

	if f.SortOrder.IsSet() {
		d.Params = append(d.Params,
			domain.Param{Key: ParamSortBy, Value: SortKeyPrice},
			domain.Param{Key: ParamOrder, Value: string(f.SortOrder)},
		)
	}

	return d
}

// CategoryList returns the descriptor of the category name listing
func (b Builder) CategoryList() domain.Descriptor {
	return domain.Descriptor{
		BaseURL:      b.BaseURL,
		PathSegments: []string{segProducts, segCategoryList},
	}
}

// Build is shorthand for NewBuilder(baseURL).Build(f)
func Build(baseURL string, f domain.Filters) domain.Descriptor {
	return NewBuilder(baseURL).Build(f)
}
