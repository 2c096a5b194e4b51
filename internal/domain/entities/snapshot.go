package entities

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// BalanceSnapshot is a historical balance of one token for one owner,
// recorded at a block number
type BalanceSnapshot struct {
	Owner           common.Address  `db:"address_hash"`
	ContractAddress common.Address  `db:"token_contract_address_hash"`
	Value           decimal.Decimal `db:"value"`
	BlockNumber     int64           `db:"block_number"`
	InsertedAt      time.Time       `db:"inserted_at"`
}
