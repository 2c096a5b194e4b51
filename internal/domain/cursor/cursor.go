// Package cursor defines the two listing sort modes and their cursors.
//
// A cursor is the sort key of the last item a client has seen. It travels
// between requests as an opaque token (see Encode) and is turned back into
// the exact key that produced it, so the next page resumes strictly after
// that item even when rows were inserted or deleted in between.
package cursor

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/bimakw/token-holdings/internal/domain/entities"
)

// SortMode names a listing order
type SortMode string

const (
	// ModeTypeName orders an owner's holdings by token type, then name
	ModeTypeName SortMode = "type_name"

	// ModeMarketRank orders tokens by market cap, then holder count, then name
	ModeMarketRank SortMode = "market_rank"
)

// Cursor is one of TypeName or MarketRank
type Cursor interface {
	Mode() SortMode
	isCursor()
}

// TypeName is the sort key of an owner's holding
type TypeName struct {
	Name            *string
	Type            entities.TokenType
	InsertedAt      time.Time
	ContractAddress common.Address
}

// Mode implements Cursor
func (TypeName) Mode() SortMode { return ModeTypeName }

func (TypeName) isCursor() {}

// MarketRank is the sort key of a token in the global listing
type MarketRank struct {
	MarketCap       decimal.NullDecimal
	HolderCount     *int64
	Name            *string
	ContractAddress common.Address
}

// Mode implements Cursor
func (MarketRank) Mode() SortMode { return ModeMarketRank }

func (MarketRank) isCursor() {}

// FromHolding returns the sort key of h
func FromHolding(h entities.TokenHolding) TypeName {
	return TypeName{
		Name:            h.Name,
		Type:            h.Type,
		InsertedAt:      h.InsertedAt,
		ContractAddress: h.ContractAddress,
	}
}

// FromToken returns the sort key of t
func FromToken(t entities.Token) MarketRank {
	return MarketRank{
		MarketCap:       t.CirculatingMarketCap,
		HolderCount:     t.HolderCount,
		Name:            t.Name,
		ContractAddress: t.ContractAddress,
	}
}
