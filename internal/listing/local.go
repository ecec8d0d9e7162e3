// ABOUTME: Adapters between resource clients and the controller's Lister
// ABOUTME: LocalPages pages a collection in memory for endpoints that return everything

package listing

import (
	"context"

	"github.com/igvshop/igv-admin/internal/client"
)

// LocalPages wraps a lister whose backend ignores paging. The full result is
// fetched for the search text and sliced to the requested page locally.
func LocalPages[T any](all func(ctx context.Context, search string) ([]T, error)) Lister[T] {
	return func(ctx context.Context, q Query) (*client.Page[T], error) {
		items, err := all(ctx, q.Search)
		if err != nil {
			return nil, err
		}
		return client.Paginate(items, q.Page, q.PageSize), nil
	}
}
