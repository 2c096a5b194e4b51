package repositories

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bimakw/token-holdings/internal/domain/cursor"
	"github.com/bimakw/token-holdings/internal/domain/entities"
)

// HoldingRepository reads an owner's resolved holdings: one row per token,
// taken from the latest snapshot, with a positive balance
type HoldingRepository interface {
	// ListHoldings returns up to limit holdings of owner sorted after the
	// cursor in cursor.TypeNameOrder. A nil cursor starts from the first holding.
	ListHoldings(ctx context.Context, owner common.Address, after *cursor.TypeName, limit int) ([]entities.TokenHolding, error)

	// CountHoldings returns the number of holdings of owner
	CountHoldings(ctx context.Context, owner common.Address) (int64, error)
}
