package keyset

import (
	"context"
	"slices"
	"sort"

	"github.com/bimakw/token-holdings/internal/domain/errs"
)

// FetchFunc loads up to limit items that sort strictly after the cursor, in
// canonical order. A nil cursor means the start of the listing.
type FetchFunc[T, K any] func(ctx context.Context, after *K, limit int) ([]T, error)

// Page is one page of a keyset traversal
type Page[T, K any] struct {
	Items []T

	// HasMore is true when at least one item follows the last one in Items
	HasMore bool

	// Next is the sort key of the last item in Items, set only when HasMore
	Next *K
}

// Paginate fetches the page of at most pageSize items following after.
// It asks fetch for one extra item to learn whether the listing continues.
func Paginate[T, K any](
	ctx context.Context,
	fetch FetchFunc[T, K],
	key func(T) K,
	after *K,
	pageSize int,
) (*Page[T, K], error) {
	if pageSize <= 0 {
		return nil, errs.InvalidArgument("page size must be positive, got %d", pageSize)
	}

	items, err := fetch(ctx, after, pageSize+1)
	if err != nil {
		return nil, err
	}

	page := &Page[T, K]{Items: items}
	if len(items) > pageSize {
		page.Items = items[:pageSize]
		page.HasMore = true
		next := key(page.Items[pageSize-1])
		page.Next = &next
	}
	if page.Items == nil {
		page.Items = make([]T, 0)
	}

	return page, nil
}

// Sort orders items canonically
func Sort[T, K any](items []T, key func(T) K, order Order[K]) {
	slices.SortStableFunc(items, func(a, b T) int {
		return order.Compare(key(a), key(b))
	})
}

// Window returns at most limit items of sorted that follow after. sorted must
// already be in the canonical order of order.
func Window[T, K any](sorted []T, key func(T) K, order Order[K], after *K, limit int) []T {
	start := 0
	if after != nil {
		cond := order.After(*after)
		// the boundary condition is monotone over a sorted slice
		start = sort.Search(len(sorted), func(i int) bool {
			return cond.Match(key(sorted[i]))
		})
	}

	end := len(sorted)
	if limit >= 0 && start+limit < end {
		end = start + limit
	}

	out := make([]T, end-start)
	copy(out, sorted[start:end])
	return out
}
