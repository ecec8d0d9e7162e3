// ABOUTME: Tests for concurrent detail lookups and detail view tickets
// ABOUTME: The view renders only when every lookup succeeds and only while it is still open

package listing

import (
	"context"
	"errors"
	"testing"
)

type orderDetail struct {
	order    string
	sessions []string
	lines    []string
}

// loadDetail mirrors how a screen uses FanOut: results are only published
// when the whole group succeeds.
func loadDetail(ctx context.Context, failAt int) (*orderDetail, error) {
	var d orderDetail
	lookup := func(i int, fill func()) func(context.Context) error {
		return func(context.Context) error {
			if i == failAt {
				return errors.New("failed to fetch order details: 500 Internal Server Error")
			}
			fill()
			return nil
		}
	}
	err := FanOut(ctx,
		lookup(0, func() { d.order = "order 12" }),
		lookup(1, func() { d.sessions = []string{"qr 1"} }),
		lookup(2, func() { d.lines = []string{"line 1", "line 2"} }),
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func TestFanOut_AllSucceed(t *testing.T) {
	d, err := loadDetail(context.Background(), -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.order == "" || len(d.sessions) != 1 || len(d.lines) != 2 {
		t.Errorf("expected all three results together, got %+v", d)
	}
}

func TestFanOut_OneFailureAbortsAll(t *testing.T) {
	for failAt := 0; failAt < 3; failAt++ {
		d, err := loadDetail(context.Background(), failAt)
		if err == nil {
			t.Errorf("lookup %d failing: expected error", failAt)
		}
		if d != nil {
			t.Errorf("lookup %d failing: expected no detail, got %+v", failAt, d)
		}
	}
}

func TestFanOut_CancelsSiblings(t *testing.T) {
	canceled := make(chan struct{})
	err := FanOut(context.Background(),
		func(context.Context) error { return errors.New("boom") },
		func(ctx context.Context) error {
			<-ctx.Done()
			close(canceled)
			return ctx.Err()
		},
	)
	if err == nil || err.Error() != "boom" {
		t.Errorf("expected first error, got %v", err)
	}
	select {
	case <-canceled:
	default:
		t.Error("expected sibling lookup to observe cancellation")
	}
}

func TestDetailTracker(t *testing.T) {
	var d DetailTracker
	if d.IsOpen() {
		t.Error("expected closed tracker")
	}

	first := d.Open()
	if !d.Accept(first) {
		t.Error("expected result for open view to be accepted")
	}

	d.Close()
	if d.Accept(first) {
		t.Error("expected result after close to be ignored")
	}

	second := d.Open()
	if d.Accept(first) {
		t.Error("expected result for replaced view to be ignored")
	}
	if !d.Accept(second) {
		t.Error("expected result for current view to be accepted")
	}
}
