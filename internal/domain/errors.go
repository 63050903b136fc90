package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrServerOffline indicates the catalog API is unreachable
	ErrServerOffline = errors.New("catalog server is unreachable")

	// ErrUnexpectedStatus indicates the catalog API answered with a non-200 status
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrMalformedPayload indicates the response carried no product data
	ErrMalformedPayload = errors.New("catalog response has no products")

	// ErrNoFilterStore indicates the filter store was used outside its scope
	ErrNoFilterStore = errors.New("filter store used outside of its provider")

	// ErrInvalidSortOrder indicates a sort order other than asc or desc
	ErrInvalidSortOrder = errors.New("invalid sort order")

	// ErrUnknownCategory indicates a category name matched nothing in the catalog
	ErrUnknownCategory = errors.New("unknown category")
)
