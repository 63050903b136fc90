package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// SortOrder is the price sort direction requested from the catalog.
// The zero value means no sort is applied.
type SortOrder string

const (
	SortUnset SortOrder = ""
	SortAsc   SortOrder = "asc"
	SortDesc  SortOrder = "desc"
)

// String returns the display name for the sort order
func (s SortOrder) String() string {
	switch s {
	case SortAsc:
		return "Price: Low to High"
	case SortDesc:
		return "Price: High to Low"
	default:
		return "Default"
	}
}

// IsSet reports whether a sort direction was chosen
func (s SortOrder) IsSet() bool {
	return s == SortAsc || s == SortDesc
}

// ParseSortOrder converts user input into a SortOrder.
// The empty string parses to SortUnset.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SortUnset, nil
	case "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	default:
		return SortUnset, fmt.Errorf("%w: %q", ErrInvalidSortOrder, s)
	}
}

// Filters is the user's current selection. An empty field means
// "no constraint on this axis".
type Filters struct {
	SelectedCategory string
	SearchTerm       string
	SortOrder        SortOrder
}

// IsEmpty returns true when no axis is constrained
func (f Filters) IsEmpty() bool {
	return f == Filters{}
}

// Product is a single catalog entry
type Product struct {
	ID          int     `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Price       float64 `json:"price" yaml:"price"`
	Description string  `json:"description" yaml:"description"`
	Category    string  `json:"category" yaml:"category"`
	Rating      float64 `json:"rating" yaml:"rating"`
	Thumbnail   string  `json:"thumbnail" yaml:"thumbnail"`
}

// FormattedPrice returns the price for display
func (p Product) FormattedPrice() string {
	return fmt.Sprintf("$%.2f", p.Price)
}

// ProductPage is one catalog response
type ProductPage struct {
	Products []Product `json:"products" yaml:"products"`
	Total    int       `json:"total" yaml:"total"`
	Skip     int       `json:"skip" yaml:"skip"`
	Limit    int       `json:"limit" yaml:"limit"`
}

// Param is a single query parameter
type Param struct {
	Key   string
	Value string
}

// Descriptor is the resolved request for one catalog fetch.
// Params keep insertion order so rendered URLs are stable.
type Descriptor struct {
	BaseURL      string
	PathSegments []string
	Params       []Param
}

// Param returns the value for key and whether it was set
func (d Descriptor) Param(key string) (string, bool) {
	for _, p := range d.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Path returns the escaped path portion, starting with "/"
func (d Descriptor) Path() string {
	var b strings.Builder
	for _, seg := range d.PathSegments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	return b.String()
}

// RawQuery returns the encoded query string in parameter order
func (d Descriptor) RawQuery() string {
	parts := make([]string, 0, len(d.Params))
	for _, p := range d.Params {
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}

// URL renders the absolute request URL
func (d Descriptor) URL() string {
	u := strings.TrimRight(d.BaseURL, "/") + d.Path()
	if q := d.RawQuery(); q != "" {
		u += "?" + q
	}
	return u
}

// String implements fmt.Stringer
func (d Descriptor) String() string {
	return d.URL()
}
