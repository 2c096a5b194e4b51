package testutil

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/bimakw/token-holdings/internal/domain/entities"
)

// Common test addresses
var (
	USDTAddress  = common.HexToAddress("0xdac17f958d2ee523a2206206994597c13d831ec7")
	USDCAddress  = common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	DAIAddress   = common.HexToAddress("0x6b175474e89094c44da98b954eedeac495271d0f")
	AliceAddress = common.HexToAddress("0x1111111111111111111111111111111111111111")
	BobAddress   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

// BaseTime is the default inserted_at of fixtures
var BaseTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// CreateTestToken creates a test token with default values
func CreateTestToken(opts ...TokenOption) entities.Token {
	name := "Tether USD"
	symbol := "USDT"
	decimals := int64(6)
	t := entities.Token{
		ContractAddress: USDTAddress,
		Name:            &name,
		Symbol:          &symbol,
		Type:            entities.TokenTypeERC20,
		Decimals:        &decimals,
		InsertedAt:      BaseTime,
		UpdatedAt:       BaseTime,
	}

	for _, opt := range opts {
		opt(&t)
	}

	return t
}

type TokenOption func(*entities.Token)

func TokenWithAddress(addr common.Address) TokenOption {
	return func(t *entities.Token) {
		t.ContractAddress = addr
	}
}

func TokenWithName(name string) TokenOption {
	return func(t *entities.Token) {
		t.Name = &name
	}
}

func TokenWithoutName() TokenOption {
	return func(t *entities.Token) {
		t.Name = nil
	}
}

func TokenWithSymbol(symbol string) TokenOption {
	return func(t *entities.Token) {
		t.Symbol = &symbol
	}
}

func TokenWithType(tokenType entities.TokenType) TokenOption {
	return func(t *entities.Token) {
		t.Type = tokenType
	}
}

func TokenWithDecimals(dec int64) TokenOption {
	return func(t *entities.Token) {
		t.Decimals = &dec
	}
}

func TokenWithMarketCap(marketCap string) TokenOption {
	return func(t *entities.Token) {
		t.CirculatingMarketCap = decimal.NewNullDecimal(decimal.RequireFromString(marketCap))
	}
}

func TokenWithHolderCount(count int64) TokenOption {
	return func(t *entities.Token) {
		t.HolderCount = &count
	}
}

// CreateTestSnapshot creates a balance snapshot with default values
func CreateTestSnapshot(opts ...SnapshotOption) entities.BalanceSnapshot {
	s := entities.BalanceSnapshot{
		Owner:           AliceAddress,
		ContractAddress: USDTAddress,
		Value:           decimal.NewFromInt(1000000), // 1 USDT
		BlockNumber:     12345678,
		InsertedAt:      BaseTime,
	}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

type SnapshotOption func(*entities.BalanceSnapshot)

func SnapshotWithOwner(addr common.Address) SnapshotOption {
	return func(s *entities.BalanceSnapshot) {
		s.Owner = addr
	}
}

func SnapshotWithContract(addr common.Address) SnapshotOption {
	return func(s *entities.BalanceSnapshot) {
		s.ContractAddress = addr
	}
}

func SnapshotWithValue(value string) SnapshotOption {
	return func(s *entities.BalanceSnapshot) {
		s.Value = decimal.RequireFromString(value)
	}
}

func SnapshotWithBlock(num int64) SnapshotOption {
	return func(s *entities.BalanceSnapshot) {
		s.BlockNumber = num
	}
}

func SnapshotWithInsertedAt(at time.Time) SnapshotOption {
	return func(s *entities.BalanceSnapshot) {
		s.InsertedAt = at
	}
}
