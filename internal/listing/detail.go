// ABOUTME: Concurrent detail lookups joined with all-or-nothing semantics
// ABOUTME: DetailTracker drops results that arrive after their view was closed or replaced

package listing

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FanOut runs lookups concurrently and returns the first error. When any
// lookup fails the others are canceled and the caller must discard every
// partial result.
func FanOut(ctx context.Context, lookups ...func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, lookup := range lookups {
		g.Go(func() error {
			return lookup(ctx)
		})
	}
	return g.Wait()
}

// DetailTracker identifies the detail view that is currently open
type DetailTracker struct {
	ticket uint64
	open   bool
}

// Open starts a new detail view and returns its ticket
func (d *DetailTracker) Open() uint64 {
	d.ticket++
	d.open = true
	return d.ticket
}

// Close dismisses the current detail view
func (d *DetailTracker) Close() {
	d.open = false
}

// IsOpen reports whether a detail view is showing or loading
func (d *DetailTracker) IsOpen() bool {
	return d.open
}

// Accept reports whether a result for ticket still belongs to the open view
func (d *DetailTracker) Accept(ticket uint64) bool {
	return d.open && ticket == d.ticket
}
