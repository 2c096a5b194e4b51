package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bimakw/token-holdings/internal/domain/cursor"
	"github.com/bimakw/token-holdings/internal/domain/entities"
	"github.com/bimakw/token-holdings/internal/domain/keyset"
	"github.com/bimakw/token-holdings/internal/domain/repositories"
)

// Ensure TokenRepo implements TokenRepository
var _ repositories.TokenRepository = (*TokenRepo)(nil)

const tokenColumns = `contract_address_hash, name, symbol, type, decimals,
	circulating_market_cap, holder_count, inserted_at, updated_at`

// TokenRepo implements TokenRepository using PostgreSQL
type TokenRepo struct {
	db *sqlx.DB
}

// NewTokenRepo creates a new token repository
func NewTokenRepo(db *sqlx.DB) *TokenRepo {
	return &TokenRepo{db: db}
}

// GetByAddress retrieves a token by its contract address
func (r *TokenRepo) GetByAddress(ctx context.Context, address common.Address) (*entities.Token, error) {
	var token entities.Token
	query := `SELECT ` + tokenColumns + ` FROM tokens WHERE contract_address_hash = $1`

	if err := r.db.GetContext(ctx, &token, query, address.Bytes()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("get token", err)
	}

	return &token, nil
}

// GetByAddresses retrieves the known tokens among addresses
func (r *TokenRepo) GetByAddresses(ctx context.Context, addresses []common.Address) ([]entities.Token, error) {
	if len(addresses) == 0 {
		return []entities.Token{}, nil
	}

	hashes := make(pq.ByteaArray, len(addresses))
	for i, a := range addresses {
		hashes[i] = a.Bytes()
	}

	tokens := []entities.Token{}
	query := `SELECT ` + tokenColumns + ` FROM tokens WHERE contract_address_hash = ANY($1)`

	if err := r.db.SelectContext(ctx, &tokens, query, hashes); err != nil {
		return nil, storageError("get tokens", err)
	}

	return tokens, nil
}

// ListByMarketRank returns tokens ordered by market cap, holder count and name
func (r *TokenRepo) ListByMarketRank(ctx context.Context, after *cursor.MarketRank, limit int) ([]entities.Token, error) {
	query, args := marketRankQuery(after, limit)

	tokens := []entities.Token{}
	if err := r.db.SelectContext(ctx, &tokens, query, args...); err != nil {
		return nil, storageError("list tokens", err)
	}

	return tokens, nil
}

// Count returns the total number of tokens
func (r *TokenRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM tokens`); err != nil {
		return 0, storageError("count tokens", err)
	}
	return count, nil
}

func marketRankQuery(after *cursor.MarketRank, limit int) (string, []interface{}) {
	var args []interface{}
	where := ""
	if after != nil {
		cond, condArgs := keyset.Where(cursor.MarketRankOrder.After(*after), 1)
		where = "WHERE " + cond
		args = condArgs
	}
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT %s FROM tokens %s ORDER BY %s LIMIT $%d`,
		tokenColumns, where, cursor.MarketRankOrder.OrderBy(), len(args))
	return query, args
}
