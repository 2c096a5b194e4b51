package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/bimakw/token-holdings/internal/domain/cursor"
	"github.com/bimakw/token-holdings/internal/domain/entities"
	"github.com/bimakw/token-holdings/internal/domain/errs"
	"github.com/bimakw/token-holdings/internal/domain/keyset"
	"github.com/bimakw/token-holdings/internal/domain/repositories"
)

// Ensure HoldingRepo implements HoldingRepository
var _ repositories.HoldingRepository = (*HoldingRepo)(nil)

// latestHoldings selects, for owner $1, the snapshot rows at the latest block
// of each known token. ties counts the rows sharing that block; rows with a
// zero balance are kept when tied so the conflict is still reported.
const latestHoldings = `
	WITH latest AS (
		SELECT
			token_contract_address_hash,
			block_number,
			COALESCE(value, 0) AS value,
			inserted_at,
			COUNT(*) OVER (PARTITION BY token_contract_address_hash, block_number) AS ties,
			block_number = MAX(block_number) OVER (PARTITION BY token_contract_address_hash) AS is_latest
		FROM address_token_balances
		WHERE address_hash = $1
	),
	holdings AS (
		SELECT
			t.contract_address_hash,
			t.name,
			t.symbol,
			t.type,
			t.decimals,
			t.circulating_market_cap,
			t.holder_count,
			l.value AS balance,
			l.block_number,
			l.inserted_at,
			l.ties
		FROM latest l
		JOIN tokens t ON t.contract_address_hash = l.token_contract_address_hash
		WHERE l.is_latest AND (l.value > 0 OR l.ties > 1)
	)`

// holdingRow holds one row of the holdings query
type holdingRow struct {
	ContractAddress      common.Address      `db:"contract_address_hash"`
	Name                 *string             `db:"name"`
	Symbol               *string             `db:"symbol"`
	Type                 entities.TokenType  `db:"type"`
	Decimals             *int64              `db:"decimals"`
	CirculatingMarketCap decimal.NullDecimal `db:"circulating_market_cap"`
	HolderCount          *int64              `db:"holder_count"`
	Balance              decimal.Decimal     `db:"balance"`
	BlockNumber          int64               `db:"block_number"`
	InsertedAt           time.Time           `db:"inserted_at"`
	Ties                 int64               `db:"ties"`
}

func (row holdingRow) holding(owner common.Address) entities.TokenHolding {
	return entities.TokenHolding{
		Owner:                owner,
		ContractAddress:      row.ContractAddress,
		Name:                 row.Name,
		Symbol:               row.Symbol,
		Type:                 row.Type,
		Decimals:             row.Decimals,
		Balance:              row.Balance,
		BlockNumber:          row.BlockNumber,
		InsertedAt:           row.InsertedAt,
		CirculatingMarketCap: row.CirculatingMarketCap,
		HolderCount:          row.HolderCount,
	}
}

// HoldingRepo implements HoldingRepository using PostgreSQL
type HoldingRepo struct {
	db *sqlx.DB
}

// NewHoldingRepo creates a new holding repository
func NewHoldingRepo(db *sqlx.DB) *HoldingRepo {
	return &HoldingRepo{db: db}
}

// ListHoldings returns one page of the owner's holdings in type/name order
func (r *HoldingRepo) ListHoldings(ctx context.Context, owner common.Address, after *cursor.TypeName, limit int) ([]entities.TokenHolding, error) {
	query, args := holdingsQuery(owner, after, limit)

	var rows []holdingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storageError("list holdings", err)
	}

	holdings := make([]entities.TokenHolding, 0, len(rows))
	for _, row := range rows {
		if row.Ties > 1 {
			return nil, errs.IntegrityViolation("%d snapshots of token %s for owner %s share block %d",
				row.Ties, row.ContractAddress.Hex(), owner.Hex(), row.BlockNumber)
		}
		holdings = append(holdings, row.holding(owner))
	}

	return holdings, nil
}

// CountHoldings returns the number of tokens the owner currently holds
func (r *HoldingRepo) CountHoldings(ctx context.Context, owner common.Address) (int64, error) {
	query := latestHoldings + `
	SELECT COUNT(DISTINCT contract_address_hash) FROM holdings WHERE balance > 0`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, owner.Bytes()); err != nil {
		return 0, storageError("count holdings", err)
	}
	return count, nil
}

func holdingsQuery(owner common.Address, after *cursor.TypeName, limit int) (string, []interface{}) {
	args := []interface{}{owner.Bytes()}
	where := ""
	if after != nil {
		cond, condArgs := keyset.Where(cursor.TypeNameOrder.After(*after), len(args)+1)
		where = "WHERE " + cond
		args = append(args, condArgs...)
	}
	args = append(args, limit)

	query := fmt.Sprintf(`%s
	SELECT * FROM holdings %s ORDER BY %s LIMIT $%d`,
		latestHoldings, where, cursor.TypeNameOrder.OrderBy(), len(args))
	return query, args
}
