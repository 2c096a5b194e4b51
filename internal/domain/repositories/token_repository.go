package repositories

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bimakw/token-holdings/internal/domain/cursor"
	"github.com/bimakw/token-holdings/internal/domain/entities"
)

// TokenRepository defines the interface for token data operations
type TokenRepository interface {
	// GetByAddress retrieves a token by its contract address, nil when unknown
	GetByAddress(ctx context.Context, address common.Address) (*entities.Token, error)

	// GetByAddresses retrieves the known tokens among the given addresses
	GetByAddresses(ctx context.Context, addresses []common.Address) ([]entities.Token, error)

	// ListByMarketRank returns up to limit tokens sorted after the cursor in
	// cursor.MarketRankOrder. A nil cursor starts from the first token.
	ListByMarketRank(ctx context.Context, after *cursor.MarketRank, limit int) ([]entities.Token, error)

	// Count returns the total number of tokens
	Count(ctx context.Context) (int64, error)
}
