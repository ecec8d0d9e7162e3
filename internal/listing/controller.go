// ABOUTME: List-interaction controller shared by every resource screen
// ABOUTME: Tracks the query key, load state and request generation so stale responses are dropped

package listing

import (
	"context"

	"github.com/igvshop/igv-admin/internal/client"
)

// State is the load state of a list
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Error
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Query is the key that determines which list call is in effect
type Query struct {
	Search   string
	Page     int
	PageSize int
}

// Lister fetches one page for a query
type Lister[T any] func(ctx context.Context, q Query) (*client.Page[T], error)

// Request is one issued fetch. Gen identifies it; only the latest is applied.
type Request struct {
	Gen   uint64
	Query Query
}

// Result is the outcome of a Request
type Result[T any] struct {
	Request
	Page *client.Page[T]
	Err  error
}

// Controller owns the list state of one screen. It is not safe for concurrent
// use: Begin, Apply and the setters run on the UI loop; only Fetch may run
// elsewhere.
type Controller[T any] struct {
	list   Lister[T]
	query  Query
	gen    uint64
	state  State
	page   *client.Page[T]
	err    error
	notice *Notice
}

// New creates a controller in the Idle state on page 1
func New[T any](list Lister[T], pageSize int) *Controller[T] {
	return &Controller[T]{
		list:  list,
		query: Query{Page: 1, PageSize: pageSize},
	}
}

func (c *Controller[T]) Query() Query { return c.query }
func (c *Controller[T]) State() State { return c.state }
func (c *Controller[T]) Err() error { return c.err }
func (c *Controller[T]) Gen() uint64 { return c.gen }
func (c *Controller[T]) Notice() *Notice { return c.notice }

// Page returns the last loaded page, or nil outside the Loaded state
func (c *Controller[T]) Page() *client.Page[T] {
	if c.state != Loaded {
		return nil
	}
	return c.page
}

// Items returns the displayed items; empty unless Loaded
func (c *Controller[T]) Items() []T {
	if c.state != Loaded || c.page == nil {
		return nil
	}
	return c.page.Items
}

// TotalPages returns the page count of the last load, at least 1
func (c *Controller[T]) TotalPages() int {
	if c.page == nil || c.page.TotalPages < 1 {
		return 1
	}
	return c.page.TotalPages
}

// Begin enters Loading for the current query and supersedes any request in flight
func (c *Controller[T]) Begin() Request {
	c.gen++
	c.state = Loading
	return Request{Gen: c.gen, Query: c.query}
}

// Fetch runs the list call for req. It reads nothing but req and the lister,
// so it may run off the UI loop.
func (c *Controller[T]) Fetch(ctx context.Context, req Request) Result[T] {
	page, err := c.list(ctx, req.Query)
	return Result[T]{Request: req, Page: page, Err: err}
}

// Apply stores res if it answers the latest request and reports whether it did
func (c *Controller[T]) Apply(res Result[T]) bool {
	if res.Gen != c.gen {
		return false
	}
	if res.Err != nil {
		c.state = Error
		c.err = res.Err
		c.page = nil
		return true
	}
	c.state = Loaded
	c.err = nil
	c.page = res.Page
	if c.page == nil {
		c.page = client.SinglePage[T](nil)
	}
	return true
}

// Refresh loads the current query synchronously
func (c *Controller[T]) Refresh(ctx context.Context) error {
	res := c.Fetch(ctx, c.Begin())
	c.Apply(res)
	return res.Err
}

// SetSearch changes the search text and returns to page 1. ok is false when
// nothing changed and no fetch is needed.
func (c *Controller[T]) SetSearch(search string) (req Request, ok bool) {
	if search == c.query.Search {
		return Request{}, false
	}
	c.query.Search = search
	c.query.Page = 1
	return c.Begin(), true
}

// SetPage moves to page p, never below 1
func (c *Controller[T]) SetPage(p int) (req Request, ok bool) {
	if p < 1 {
		p = 1
	}
	if p == c.query.Page {
		return Request{}, false
	}
	c.query.Page = p
	return c.Begin(), true
}

// NextPage moves forward unless already on the last loaded page
func (c *Controller[T]) NextPage() (req Request, ok bool) {
	if c.query.Page >= c.TotalPages() {
		return Request{}, false
	}
	return c.SetPage(c.query.Page + 1)
}

// PrevPage moves back unless already on page 1
func (c *Controller[T]) PrevPage() (req Request, ok bool) {
	return c.SetPage(c.query.Page - 1)
}

// SetPageSize changes the page size; the current page is kept
func (c *Controller[T]) SetPageSize(n int) (req Request, ok bool) {
	if n < 1 || n == c.query.PageSize {
		return Request{}, false
	}
	c.query.PageSize = n
	return c.Begin(), true
}
