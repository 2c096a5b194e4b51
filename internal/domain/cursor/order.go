package cursor

import (
	"bytes"
	"cmp"
	"strings"

	"github.com/bimakw/token-holdings/internal/domain/keyset"
)

// Columns refer to the holdings and tokens relations built by the storage
// layer. Text is compared under the "C" collation so the database agrees with
// the byte-wise comparison done here.

// TypeNameOrder is type DESC, lower(name) ASC NULLS LAST, inserted_at DESC,
// contract address ASC
var TypeNameOrder = keyset.MustOrder(
	keyset.Field[TypeName]{
		Column:    `type COLLATE "C"`,
		Direction: keyset.Descending,
		Compare:   func(a, b TypeName) int { return strings.Compare(string(a.Type), string(b.Type)) },
		Arg:       func(k TypeName) interface{} { return string(k.Type) },
	},
	keyset.Field[TypeName]{
		Column:   `lower(name) COLLATE "C"`,
		Nullable: true,
		Compare:  func(a, b TypeName) int { return compareNames(a.Name, b.Name) },
		IsNull:   func(k TypeName) bool { return k.Name == nil },
		Arg:      func(k TypeName) interface{} { return strings.ToLower(*k.Name) },
	},
	keyset.Field[TypeName]{
		Column:    "inserted_at",
		Direction: keyset.Descending,
		Compare:   func(a, b TypeName) int { return a.InsertedAt.Compare(b.InsertedAt) },
		Arg:       func(k TypeName) interface{} { return k.InsertedAt },
	},
	keyset.Field[TypeName]{
		Column:  "contract_address_hash",
		Compare: func(a, b TypeName) int { return bytes.Compare(a.ContractAddress[:], b.ContractAddress[:]) },
		Arg:     func(k TypeName) interface{} { return k.ContractAddress.Bytes() },
	},
)

// MarketRankOrder is circulating_market_cap DESC NULLS LAST, holder_count
// DESC NULLS LAST, lower(name) ASC NULLS LAST, contract address ASC
var MarketRankOrder = keyset.MustOrder(
	keyset.Field[MarketRank]{
		Column:    "circulating_market_cap",
		Direction: keyset.Descending,
		Nullable:  true,
		Compare:   func(a, b MarketRank) int { return a.MarketCap.Decimal.Cmp(b.MarketCap.Decimal) },
		IsNull:    func(k MarketRank) bool { return !k.MarketCap.Valid },
		Arg:       func(k MarketRank) interface{} { return k.MarketCap.Decimal },
	},
	keyset.Field[MarketRank]{
		Column:    "holder_count",
		Direction: keyset.Descending,
		Nullable:  true,
		Compare:   func(a, b MarketRank) int { return cmp.Compare(*a.HolderCount, *b.HolderCount) },
		IsNull:    func(k MarketRank) bool { return k.HolderCount == nil },
		Arg:       func(k MarketRank) interface{} { return *k.HolderCount },
	},
	keyset.Field[MarketRank]{
		Column:   `lower(name) COLLATE "C"`,
		Nullable: true,
		Compare:  func(a, b MarketRank) int { return compareNames(a.Name, b.Name) },
		IsNull:   func(k MarketRank) bool { return k.Name == nil },
		Arg:      func(k MarketRank) interface{} { return strings.ToLower(*k.Name) },
	},
	keyset.Field[MarketRank]{
		Column:  "contract_address_hash",
		Compare: func(a, b MarketRank) int { return bytes.Compare(a.ContractAddress[:], b.ContractAddress[:]) },
		Arg:     func(k MarketRank) interface{} { return k.ContractAddress.Bytes() },
	},
)

func compareNames(a, b *string) int {
	return strings.Compare(strings.ToLower(*a), strings.ToLower(*b))
}
