package services

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/bimakw/token-holdings/internal/config"
	"github.com/bimakw/token-holdings/internal/domain/errs"
	"github.com/bimakw/token-holdings/internal/domain/keyset"
)

// clampPageSize rejects non-positive sizes and caps the rest at the
// configured maximum
func clampPageSize(cfg config.PaginationConfig, size int) (int, error) {
	if size <= 0 {
		return 0, errs.InvalidArgument("page_size must be positive, got %d", size)
	}
	if size > cfg.MaxPageSize {
		return cfg.MaxPageSize, nil
	}
	return size, nil
}

// parseAddress validates a hex address
func parseAddress(field, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, errs.InvalidArgument("%s %q is not a hex address", field, value)
	}
	return common.HexToAddress(value), nil
}

// fetchPage loads one page and the listing's total size concurrently
func fetchPage[T, K any](
	ctx context.Context,
	fetch keyset.FetchFunc[T, K],
	key func(T) K,
	after *K,
	pageSize int,
	count func(ctx context.Context) (int64, error),
) (*keyset.Page[T, K], int64, error) {
	var (
		page  *keyset.Page[T, K]
		total int64
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = keyset.Paginate(gCtx, fetch, key, after, pageSize)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = count(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return page, total, nil
}
