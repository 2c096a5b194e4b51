// Package snapshot resolves an owner's current token holdings from the
// history of balance snapshots written by the ingestion pipeline.
package snapshot

import (
	"bytes"
	"slices"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bimakw/token-holdings/internal/domain/entities"
	"github.com/bimakw/token-holdings/internal/domain/errs"
)

// TokenLookup returns the metadata of a token contract, or false when the
// token is unknown
type TokenLookup func(contract common.Address) (entities.Token, bool)

// Latest returns the snapshots of owner that carry the highest block number
// of their token, ordered by contract address. Several snapshots of one token
// are returned when they share that block number.
func Latest(owner common.Address, snapshots []entities.BalanceSnapshot) []entities.BalanceSnapshot {
	groups := make(map[common.Address][]entities.BalanceSnapshot)
	for _, s := range snapshots {
		if s.Owner != owner {
			continue
		}
		group, ok := groups[s.ContractAddress]
		switch {
		case !ok || s.BlockNumber > group[0].BlockNumber:
			groups[s.ContractAddress] = []entities.BalanceSnapshot{s}
		case s.BlockNumber == group[0].BlockNumber:
			groups[s.ContractAddress] = append(group, s)
		}
	}

	latest := make([]entities.BalanceSnapshot, 0, len(groups))
	for _, group := range groups {
		latest = append(latest, group...)
	}
	slices.SortStableFunc(latest, func(a, b entities.BalanceSnapshot) int {
		return bytes.Compare(a.ContractAddress[:], b.ContractAddress[:])
	})
	return latest
}

// Resolve returns one holding per token for which owner's latest snapshot has
// a positive value, ordered by contract address. Snapshots of tokens unknown
// to lookup are skipped.
//
// Two snapshots sharing the latest block number of a token violate the
// uniqueness the ingestion pipeline guarantees; Resolve reports them as
// errs.ErrIntegrityViolation instead of picking one.
func Resolve(owner common.Address, snapshots []entities.BalanceSnapshot, lookup TokenLookup) ([]entities.TokenHolding, error) {
	latest := Latest(owner, snapshots)

	holdings := make([]entities.TokenHolding, 0, len(latest))
	for i := 0; i < len(latest); {
		j := i + 1
		for j < len(latest) && latest[j].ContractAddress == latest[i].ContractAddress {
			j++
		}
		if j-i > 1 {
			return nil, errs.IntegrityViolation("%d snapshots of token %s for owner %s share block %d",
				j-i, latest[i].ContractAddress.Hex(), owner.Hex(), latest[i].BlockNumber)
		}

		s := latest[i]
		i = j

		if !s.Value.IsPositive() {
			continue
		}
		token, ok := lookup(s.ContractAddress)
		if !ok {
			continue
		}
		holdings = append(holdings, entities.NewTokenHolding(s, token))
	}

	return holdings, nil
}

// LookupFrom builds a TokenLookup over a fixed token list
func LookupFrom(tokens []entities.Token) TokenLookup {
	byAddress := make(map[common.Address]entities.Token, len(tokens))
	for _, t := range tokens {
		byAddress[t.ContractAddress] = t
	}
	return func(contract common.Address) (entities.Token, bool) {
		t, ok := byAddress[contract]
		return t, ok
	}
}
