// Package memory provides an in-process storage collaborator. It answers the
// same queries as the Postgres repositories, evaluating the resolver and the
// keyset boundary in Go instead of SQL.
package memory

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bimakw/token-holdings/internal/domain/cursor"
	"github.com/bimakw/token-holdings/internal/domain/entities"
	"github.com/bimakw/token-holdings/internal/domain/errs"
	"github.com/bimakw/token-holdings/internal/domain/keyset"
	"github.com/bimakw/token-holdings/internal/domain/repositories"
	"github.com/bimakw/token-holdings/internal/domain/snapshot"
)

var (
	_ repositories.HoldingRepository  = (*Store)(nil)
	_ repositories.SnapshotRepository = (*Store)(nil)
	_ repositories.TokenRepository    = (*Store)(nil)
)

// Store keeps tokens and balance snapshots in memory
type Store struct {
	mu        sync.RWMutex
	snapshots []entities.BalanceSnapshot
	tokens    map[common.Address]entities.Token
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		tokens: make(map[common.Address]entities.Token),
	}
}

// PutTokens inserts or replaces tokens by contract address
func (s *Store) PutTokens(tokens ...entities.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tokens {
		s.tokens[t.ContractAddress] = t
	}
}

// AddSnapshots appends balance snapshots
func (s *Store) AddSnapshots(snapshots ...entities.BalanceSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snapshots...)
}

// ListHoldings implements repositories.HoldingRepository
func (s *Store) ListHoldings(ctx context.Context, owner common.Address, after *cursor.TypeName, limit int) ([]entities.TokenHolding, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage("list holdings", err)
	}

	holdings, err := s.resolve(owner)
	if err != nil {
		return nil, err
	}

	keyset.Sort(holdings, cursor.FromHolding, cursor.TypeNameOrder)
	return keyset.Window(holdings, cursor.FromHolding, cursor.TypeNameOrder, after, limit), nil
}

// CountHoldings implements repositories.HoldingRepository
func (s *Store) CountHoldings(ctx context.Context, owner common.Address) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, errs.Storage("count holdings", err)
	}

	holdings, err := s.resolve(owner)
	if err != nil {
		return 0, err
	}
	return int64(len(holdings)), nil
}

// LatestSnapshots implements repositories.SnapshotRepository
func (s *Store) LatestSnapshots(ctx context.Context, owner common.Address) ([]entities.BalanceSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage("get latest snapshots", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot.Latest(owner, s.snapshots), nil
}

// GetByAddress implements repositories.TokenRepository
func (s *Store) GetByAddress(ctx context.Context, address common.Address) (*entities.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage("get token", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tokens[address]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// GetByAddresses implements repositories.TokenRepository
func (s *Store) GetByAddresses(ctx context.Context, addresses []common.Address) ([]entities.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage("get tokens", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	tokens := make([]entities.Token, 0, len(addresses))
	seen := make(map[common.Address]bool, len(addresses))
	for _, a := range addresses {
		if t, ok := s.tokens[a]; ok && !seen[a] {
			tokens = append(tokens, t)
			seen[a] = true
		}
	}
	return tokens, nil
}

// ListByMarketRank implements repositories.TokenRepository
func (s *Store) ListByMarketRank(ctx context.Context, after *cursor.MarketRank, limit int) ([]entities.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage("list tokens", err)
	}

	s.mu.RLock()
	tokens := make([]entities.Token, 0, len(s.tokens))
	for _, t := range s.tokens {
		tokens = append(tokens, t)
	}
	s.mu.RUnlock()

	keyset.Sort(tokens, cursor.FromToken, cursor.MarketRankOrder)
	return keyset.Window(tokens, cursor.FromToken, cursor.MarketRankOrder, after, limit), nil
}

// Count implements repositories.TokenRepository
func (s *Store) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, errs.Storage("count tokens", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.tokens)), nil
}

func (s *Store) resolve(owner common.Address) ([]entities.TokenHolding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot.Resolve(owner, s.snapshots, func(contract common.Address) (entities.Token, bool) {
		t, ok := s.tokens[contract]
		return t, ok
	})
}
