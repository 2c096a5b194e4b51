package entities

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// TokenHolding is the current, positive balance of one token held by an
// owner, taken from the owner's most recent snapshot for that token
type TokenHolding struct {
	Owner                common.Address
	ContractAddress      common.Address
	Name                 *string
	Symbol               *string
	Type                 TokenType
	Decimals             *int64
	Balance              decimal.Decimal
	BlockNumber          int64
	InsertedAt           time.Time
	CirculatingMarketCap decimal.NullDecimal
	HolderCount          *int64
}

// NewTokenHolding builds a holding from its representative snapshot and the
// token's metadata
func NewTokenHolding(s BalanceSnapshot, t Token) TokenHolding {
	return TokenHolding{
		Owner:                s.Owner,
		ContractAddress:      s.ContractAddress,
		Name:                 t.Name,
		Symbol:               t.Symbol,
		Type:                 t.Type,
		Decimals:             t.Decimals,
		Balance:              s.Value,
		BlockNumber:          s.BlockNumber,
		InsertedAt:           s.InsertedAt,
		CirculatingMarketCap: t.CirculatingMarketCap,
		HolderCount:          t.HolderCount,
	}
}
