// Package catalogtest runs an in-process catalog API with the same routes
// and payload shapes as dummyjson.com.
package catalogtest

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gorilla/schema"
	"github.com/mmcdole/aisle/internal/domain"
)

// ListRequest is the query string accepted by the listing endpoints
type ListRequest struct {
	Query  string `schema:"q"`
	Limit  int    `schema:"limit,default:30"`
	Skip   int    `schema:"skip"`
	SortBy string `schema:"sortBy"`
	Order  string `schema:"order,default:asc"`
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// Server is a fake catalog API
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	products   []domain.Product
	categories []string
	requests   []string
	status     int
	rawBody    string
	onRequest  func(r *http.Request)
}

// NewServer starts a server seeded with SampleProducts. Close it when done.
func NewServer() *Server {
	s := &Server{
		products:   SampleProducts(),
		categories: SampleCategories(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", s.handleList)
	mux.HandleFunc("GET /products/search", s.handleList)
	mux.HandleFunc("GET /products/category/{category}", s.handleList)
	mux.HandleFunc("GET /products/category-list", s.handleCategories)

	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// SetProducts replaces the catalog contents
func (s *Server) SetProducts(products []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

// FailWith makes every request answer with status. 0 restores normal behavior.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// RespondRaw makes listing requests answer 200 with body verbatim
func (s *Server) RespondRaw(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawBody = body
}

// OnRequest installs a hook that runs before each request is answered.
// The hook may block to delay the response.
func (s *Server) OnRequest(fn func(r *http.Request)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRequest = fn
}

// Requests returns the request URIs received so far, in arrival order
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL.RequestURI())
		hook, status := s.onRequest, s.status
		s.mu.Unlock()

		if hook != nil {
			hook(r)
		}
		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var req ListRequest
	if err := decoder.Decode(&req, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	raw := s.rawBody
	products := slices.Clone(s.products)
	s.mu.Unlock()

	if raw != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(raw))
		return
	}

	category := r.PathValue("category")
	isSearch := strings.HasSuffix(r.URL.Path, "/search")

	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if isSearch && !matches(p, req.Query) {
			continue
		}
		matched = append(matched, p)
	}

	if req.SortBy == "price" {
		slices.SortStableFunc(matched, func(a, b domain.Product) int {
			if req.Order == "desc" {
				a, b = b, a
			}
			switch {
			case a.Price < b.Price:
				return -1
			case a.Price > b.Price:
				return 1
			}
			return 0
		})
	}

	total := len(matched)
	page := matched
	if req.Skip > 0 {
		page = page[min(req.Skip, len(page)):]
	}
	if req.Limit > 0 && req.Limit < len(page) {
		page = page[:req.Limit]
	}

	writeJSON(w, domain.ProductPage{
		Products: page,
		Total:    total,
		Skip:     req.Skip,
		Limit:    len(page),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	categories := slices.Clone(s.categories)
	s.mu.Unlock()
	writeJSON(w, categories)
}

func matches(p domain.Product, q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

func writeJSON(w http.ResponseWriter, v any) {
	body, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
