package entities

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// TokenType classifies a token contract. Listings order types by plain byte
// comparison of their names.
type TokenType string

const (
	TokenTypeERC20   TokenType = "ERC-20"
	TokenTypeERC721  TokenType = "ERC-721"
	TokenTypeERC1155 TokenType = "ERC-1155"
	TokenTypeERC404  TokenType = "ERC-404"
)

// Token represents a token contract and its market attributes
type Token struct {
	ContractAddress      common.Address      `db:"contract_address_hash"`
	Name                 *string             `db:"name"`
	Symbol               *string             `db:"symbol"`
	Type                 TokenType           `db:"type"`
	Decimals             *int64              `db:"decimals"`
	CirculatingMarketCap decimal.NullDecimal `db:"circulating_market_cap"`
	HolderCount          *int64              `db:"holder_count"`
	InsertedAt           time.Time           `db:"inserted_at"`
	UpdatedAt            time.Time           `db:"updated_at"`
}
