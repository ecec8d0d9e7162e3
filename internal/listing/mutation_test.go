// ABOUTME: Tests for mutation handling on list screens
// ABOUTME: A successful write refetches with the current query; a failed one leaves the list alone

package listing

import (
	"context"
	"errors"
	"testing"
)

func TestMutated_SuccessInvalidatesWithCurrentQuery(t *testing.T) {
	rec := &recorder{total: 3}
	c := New(rec.list, 10)
	c.Refresh(context.Background())

	c.SetSearch("stale")
	c.SetSearch("current")
	c.SetPage(2)
	c.Refresh(context.Background())
	before := len(rec.queries)

	n, req := c.Mutated("Category created", nil)
	if n.IsError() || n.Text != "Category created" {
		t.Errorf("unexpected notice %+v", n)
	}
	if req == nil {
		t.Fatal("expected invalidation request")
	}
	if c.State() != Loading {
		t.Errorf("expected loading after mutation, got %s", c.State())
	}
	if req.Query != c.Query() || req.Query.Search != "current" || req.Query.Page != 2 {
		t.Errorf("expected current query key, got %+v", req.Query)
	}

	c.Apply(c.Fetch(context.Background(), *req))
	if len(rec.queries) != before+1 {
		t.Fatalf("expected one new list call, got %d", len(rec.queries)-before)
	}
	if rec.last() != c.Query() {
		t.Errorf("expected refetch of %+v, got %+v", c.Query(), rec.last())
	}
}

func TestMutated_FailureKeepsList(t *testing.T) {
	rec := &recorder{}
	c := New(rec.list, 10)
	c.Refresh(context.Background())
	gen := c.Gen()

	n, req := c.Mutated("Product updated", errors.New("failed to update product: 409 Conflict"))
	if !n.IsError() {
		t.Error("expected error notice")
	}
	if req != nil {
		t.Error("expected no refetch after failed mutation")
	}
	if c.State() != Loaded || len(c.Items()) != 1 || c.Gen() != gen {
		t.Errorf("expected list untouched, got %s with %d items", c.State(), len(c.Items()))
	}
	if c.Notice() == nil || c.Notice().Text != "failed to update product: 409 Conflict" {
		t.Errorf("unexpected notice %+v", c.Notice())
	}

	c.ClearNotice()
	if c.Notice() != nil {
		t.Error("expected notice cleared")
	}
}

func TestMutate_Synchronous(t *testing.T) {
	rec := &recorder{}
	c := New(rec.list, 10)
	c.Refresh(context.Background())

	wrote := false
	n, err := c.Mutate(context.Background(), "Image deleted", func(context.Context) error {
		wrote = true
		return nil
	})
	if err != nil || !wrote {
		t.Fatalf("expected write to run, err %v", err)
	}
	if n.Text != "Image deleted" {
		t.Errorf("unexpected notice %+v", n)
	}
	if c.State() != Loaded || len(rec.queries) != 2 {
		t.Errorf("expected reload, got state %s after %d calls", c.State(), len(rec.queries))
	}
}

func TestFailed_RaisesNoticeOnly(t *testing.T) {
	rec := &recorder{}
	c := New(rec.list, 10)
	c.Refresh(context.Background())
	gen := c.Gen()

	n := c.Failed(errors.New("order #7: failed to fetch QR sessions: 500 Internal Server Error"))
	if !n.IsError() {
		t.Error("expected error notice")
	}
	if c.State() != Loaded || len(c.Items()) != 1 || c.Gen() != gen {
		t.Errorf("expected list untouched, got %s with %d items", c.State(), len(c.Items()))
	}
	if c.Notice() == nil || c.Notice().Text != n.Text {
		t.Errorf("unexpected notice %+v", c.Notice())
	}
}
