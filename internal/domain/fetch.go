package domain

// FetchStatus is the lifecycle stage of the current catalog request
type FetchStatus int

const (
	FetchIdle FetchStatus = iota
	FetchLoading
	FetchSuccess
	FetchError
)

// String returns a lowercase name for logging
func (s FetchStatus) String() string {
	switch s {
	case FetchIdle:
		return "idle"
	case FetchLoading:
		return "loading"
	case FetchSuccess:
		return "success"
	case FetchError:
		return "error"
	default:
		return "unknown"
	}
}

// GenericErrorMessage is shown to users for any failed fetch
const GenericErrorMessage = "Something went wrong..."

// FetchState is a snapshot of the catalog fetch lifecycle.
// Page is set only for FetchSuccess and Err only for FetchError.
type FetchState struct {
	Status    FetchStatus
	Page      *ProductPage
	Err       error
	Seq       uint64     // tag of the request that produced this state
	Query     Descriptor // request this state belongs to
	RequestID string
}

// IsLoading returns true while a request is in flight
func (s FetchState) IsLoading() bool { return s.Status == FetchLoading }

// Products returns the current result set, nil unless the fetch succeeded
func (s FetchState) Products() []Product {
	if s.Status != FetchSuccess || s.Page == nil {
		return nil
	}
	return s.Page.Products
}

// Message returns the user-facing error text, empty unless the fetch failed
func (s FetchState) Message() string {
	if s.Status != FetchError {
		return ""
	}
	return GenericErrorMessage
}
