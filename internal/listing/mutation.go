// ABOUTME: Create/update/delete coordination for list screens
// ABOUTME: A successful write invalidates the list; a failed one only raises a notice

package listing

import "context"

// NoticeKind distinguishes success and failure notices
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is the transient message shown after a mutation
type Notice struct {
	Kind NoticeKind
	Text string
}

// IsError reports whether the notice reports a failure
func (n Notice) IsError() bool {
	return n.Kind == NoticeError
}

// Mutated records the outcome of a write. On success the list is invalidated
// and the returned request refetches the current query; on failure the list
// is left as it was and req is nil.
func (c *Controller[T]) Mutated(success string, err error) (Notice, *Request) {
	if err != nil {
		return c.Failed(err), nil
	}
	n := Notice{Kind: NoticeSuccess, Text: success}
	c.notice = &n
	req := c.Begin()
	return n, &req
}

// Mutate runs one write and, when it succeeds, reloads the list synchronously.
// The returned error is the write's error; a failed reload shows up in State.
func (c *Controller[T]) Mutate(ctx context.Context, success string, write func(context.Context) error) (Notice, error) {
	err := write(ctx)
	n, req := c.Mutated(success, err)
	if req != nil {
		c.Apply(c.Fetch(ctx, *req))
	}
	return n, err
}

// Failed raises an error notice without touching the list, e.g. when a
// detail view opened from this list could not load.
func (c *Controller[T]) Failed(err error) Notice {
	n := Notice{Kind: NoticeError, Text: err.Error()}
	c.notice = &n
	return n
}

// ClearNotice dismisses the current notice
func (c *Controller[T]) ClearNotice() {
	c.notice = nil
}
