package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bimakw/token-holdings/internal/domain/cursor"
	"github.com/bimakw/token-holdings/internal/domain/entities"
	"github.com/bimakw/token-holdings/internal/domain/repositories"
	"github.com/bimakw/token-holdings/internal/infrastructure/memory"
)

var (
	_ repositories.HoldingRepository  = (*MockHoldingRepository)(nil)
	_ repositories.SnapshotRepository = (*MockSnapshotRepository)(nil)
	_ repositories.TokenRepository    = (*MockTokenRepository)(nil)
)

type MockCall struct {
	Method string
	Args   []interface{}
}

// callLog records the calls made to a mock
type callLog struct {
	mu    sync.Mutex
	Calls []MockCall
}

func (c *callLog) record(method string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls = append(c.Calls, MockCall{Method: method, Args: args})
}

// CallCount returns how many times method was called
func (c *callLog) CallCount(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.Calls {
		if call.Method == method {
			n++
		}
	}
	return n
}

// MockHoldingRepository is a mock implementation of HoldingRepository. Without
// hooks it answers from the shared in-memory store.
type MockHoldingRepository struct {
	callLog
	store *memory.Store

	// Function hooks for custom behavior
	ListHoldingsFunc  func(ctx context.Context, owner common.Address, after *cursor.TypeName, limit int) ([]entities.TokenHolding, error)
	CountHoldingsFunc func(ctx context.Context, owner common.Address) (int64, error)
}

func NewMockHoldingRepository(store *memory.Store) *MockHoldingRepository {
	return &MockHoldingRepository{store: store}
}

func (m *MockHoldingRepository) ListHoldings(ctx context.Context, owner common.Address, after *cursor.TypeName, limit int) ([]entities.TokenHolding, error) {
	m.record("ListHoldings", owner, after, limit)

	if m.ListHoldingsFunc != nil {
		return m.ListHoldingsFunc(ctx, owner, after, limit)
	}
	return m.store.ListHoldings(ctx, owner, after, limit)
}

func (m *MockHoldingRepository) CountHoldings(ctx context.Context, owner common.Address) (int64, error) {
	m.record("CountHoldings", owner)

	if m.CountHoldingsFunc != nil {
		return m.CountHoldingsFunc(ctx, owner)
	}
	return m.store.CountHoldings(ctx, owner)
}

// MockSnapshotRepository is a mock implementation of SnapshotRepository
type MockSnapshotRepository struct {
	callLog
	store *memory.Store

	LatestSnapshotsFunc func(ctx context.Context, owner common.Address) ([]entities.BalanceSnapshot, error)
}

func NewMockSnapshotRepository(store *memory.Store) *MockSnapshotRepository {
	return &MockSnapshotRepository{store: store}
}

func (m *MockSnapshotRepository) LatestSnapshots(ctx context.Context, owner common.Address) ([]entities.BalanceSnapshot, error) {
	m.record("LatestSnapshots", owner)

	if m.LatestSnapshotsFunc != nil {
		return m.LatestSnapshotsFunc(ctx, owner)
	}
	return m.store.LatestSnapshots(ctx, owner)
}

// MockTokenRepository is a mock implementation of TokenRepository
type MockTokenRepository struct {
	callLog
	store *memory.Store

	GetByAddressFunc     func(ctx context.Context, address common.Address) (*entities.Token, error)
	GetByAddressesFunc   func(ctx context.Context, addresses []common.Address) ([]entities.Token, error)
	ListByMarketRankFunc func(ctx context.Context, after *cursor.MarketRank, limit int) ([]entities.Token, error)
	CountFunc            func(ctx context.Context) (int64, error)
}

func NewMockTokenRepository(store *memory.Store) *MockTokenRepository {
	return &MockTokenRepository{store: store}
}

func (m *MockTokenRepository) GetByAddress(ctx context.Context, address common.Address) (*entities.Token, error) {
	m.record("GetByAddress", address)

	if m.GetByAddressFunc != nil {
		return m.GetByAddressFunc(ctx, address)
	}
	return m.store.GetByAddress(ctx, address)
}

func (m *MockTokenRepository) GetByAddresses(ctx context.Context, addresses []common.Address) ([]entities.Token, error) {
	m.record("GetByAddresses", addresses)

	if m.GetByAddressesFunc != nil {
		return m.GetByAddressesFunc(ctx, addresses)
	}
	return m.store.GetByAddresses(ctx, addresses)
}

func (m *MockTokenRepository) ListByMarketRank(ctx context.Context, after *cursor.MarketRank, limit int) ([]entities.Token, error) {
	m.record("ListByMarketRank", after, limit)

	if m.ListByMarketRankFunc != nil {
		return m.ListByMarketRankFunc(ctx, after, limit)
	}
	return m.store.ListByMarketRank(ctx, after, limit)
}

func (m *MockTokenRepository) Count(ctx context.Context) (int64, error) {
	m.record("Count")

	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return m.store.Count(ctx)
}

// Repositories bundles the mocks over one shared store
type Repositories struct {
	Store     *memory.Store
	Holdings  *MockHoldingRepository
	Snapshots *MockSnapshotRepository
	Tokens    *MockTokenRepository
}

// NewRepositories creates the repository mocks over an empty store
func NewRepositories() *Repositories {
	store := memory.NewStore()
	return &Repositories{
		Store:     store,
		Holdings:  NewMockHoldingRepository(store),
		Snapshots: NewMockSnapshotRepository(store),
		Tokens:    NewMockTokenRepository(store),
	}
}

// MockHealthChecker is a mock implementation of HealthChecker
type MockHealthChecker struct {
	mu sync.RWMutex

	Healthy bool
	Error   error
	Calls   []MockCall
}

func NewMockHealthChecker(healthy bool) *MockHealthChecker {
	var err error
	if !healthy {
		err = errors.New("health check failed")
	}
	return &MockHealthChecker{
		Healthy: healthy,
		Error:   err,
		Calls:   make([]MockCall, 0),
	}
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: "HealthCheck", Args: nil})
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Error
}

func (m *MockHealthChecker) SetHealthy(healthy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Healthy = healthy
	if healthy {
		m.Error = nil
	} else {
		m.Error = errors.New("health check failed")
	}
}
