package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bimakw/token-holdings/internal/config"
	"github.com/bimakw/token-holdings/internal/domain/cursor"
	"github.com/bimakw/token-holdings/internal/domain/entities"
	"github.com/bimakw/token-holdings/internal/domain/errs"
	"github.com/bimakw/token-holdings/internal/domain/repositories"
	"github.com/bimakw/token-holdings/internal/domain/snapshot"
	"github.com/bimakw/token-holdings/internal/infrastructure/metrics"
)

// HoldingsService provides business logic for an owner's token holdings
type HoldingsService struct {
	holdingRepo  repositories.HoldingRepository
	snapshotRepo repositories.SnapshotRepository
	tokenRepo    repositories.TokenRepository
	pagination   config.PaginationConfig
	metrics      *metrics.ListingMetrics
	logger       *zap.Logger
}

// NewHoldingsService creates a new holdings service
func NewHoldingsService(
	holdingRepo repositories.HoldingRepository,
	snapshotRepo repositories.SnapshotRepository,
	tokenRepo repositories.TokenRepository,
	pagination config.PaginationConfig,
	metrics *metrics.ListingMetrics,
	logger *zap.Logger,
) *HoldingsService {
	return &HoldingsService{
		holdingRepo:  holdingRepo,
		snapshotRepo: snapshotRepo,
		tokenRepo:    tokenRepo,
		pagination:   pagination,
		metrics:      metrics,
		logger:       logger,
	}
}

// HoldingDTO is the API representation of a token holding
type HoldingDTO struct {
	ContractAddress      string              `json:"contract_address"`
	Name                 *string             `json:"name"`
	Symbol               *string             `json:"symbol"`
	Type                 string              `json:"type"`
	Decimals             *int64              `json:"decimals"`
	Balance              decimal.Decimal     `json:"balance"`
	BalanceFormatted     string              `json:"balance_formatted,omitempty"`
	BlockNumber          int64               `json:"block_number"`
	InsertedAt           string              `json:"inserted_at"`
	CirculatingMarketCap decimal.NullDecimal `json:"circulating_market_cap"`
	HolderCount          *int64              `json:"holder_count"`
}

// HoldingsPageResponse is the API response for one page of holdings
type HoldingsPageResponse struct {
	Data       []HoldingDTO `json:"data"`
	NextCursor string       `json:"next_cursor,omitempty"`
	HasMore    bool         `json:"has_more"`
	Total      int64        `json:"total"`
}

// HoldingsResponse is the API response for the unpaginated holdings of an owner
type HoldingsResponse struct {
	Owner string       `json:"owner"`
	Data  []HoldingDTO `json:"data"`
}

// ListHoldings returns the page of owner's holdings following cursorToken,
// in type then name order. An empty cursorToken starts from the first holding.
func (s *HoldingsService) ListHoldings(ctx context.Context, owner, cursorToken string, pageSize int) (*HoldingsPageResponse, error) {
	ownerAddr, err := parseAddress("owner", owner)
	if err != nil {
		return nil, err
	}
	limit, err := clampPageSize(s.pagination, pageSize)
	if err != nil {
		return nil, err
	}
	after, err := cursor.DecodeTypeName(cursorToken)
	if err != nil {
		return nil, err
	}

	fetch := func(ctx context.Context, after *cursor.TypeName, limit int) ([]entities.TokenHolding, error) {
		return s.holdingRepo.ListHoldings(ctx, ownerAddr, after, limit)
	}
	count := func(ctx context.Context) (int64, error) {
		return s.holdingRepo.CountHoldings(ctx, ownerAddr)
	}

	page, total, err := fetchPage(ctx, fetch, cursor.FromHolding, after, limit, count)
	if err != nil {
		s.observeFailure(err, ownerAddr)
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	response := &HoldingsPageResponse{
		Data:    make([]HoldingDTO, len(page.Items)),
		HasMore: page.HasMore,
		Total:   total,
	}
	for i, h := range page.Items {
		response.Data[i] = holdingToDTO(h)
	}
	if page.Next != nil {
		if response.NextCursor, err = cursor.Encode(*page.Next); err != nil {
			return nil, fmt.Errorf("failed to encode cursor: %w", err)
		}
	}

	s.metrics.ObservePage(cursor.ModeTypeName, len(response.Data))
	return response, nil
}

// Resolve returns every current holding of owner, ordered by contract address
func (s *HoldingsService) Resolve(ctx context.Context, owner string) (*HoldingsResponse, error) {
	ownerAddr, err := parseAddress("owner", owner)
	if err != nil {
		return nil, err
	}

	snapshots, err := s.snapshotRepo.LatestSnapshots(ctx, ownerAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshots: %w", err)
	}

	seen := make(map[common.Address]bool, len(snapshots))
	contracts := make([]common.Address, 0, len(snapshots))
	for _, snap := range snapshots {
		if !seen[snap.ContractAddress] {
			seen[snap.ContractAddress] = true
			contracts = append(contracts, snap.ContractAddress)
		}
	}

	tokens, err := s.tokenRepo.GetByAddresses(ctx, contracts)
	if err != nil {
		return nil, fmt.Errorf("failed to get tokens: %w", err)
	}

	holdings, err := snapshot.Resolve(ownerAddr, snapshots, snapshot.LookupFrom(tokens))
	if err != nil {
		s.observeFailure(err, ownerAddr)
		return nil, fmt.Errorf("failed to resolve holdings: %w", err)
	}

	response := &HoldingsResponse{
		Owner: ownerAddr.Hex(),
		Data:  make([]HoldingDTO, len(holdings)),
	}
	for i, h := range holdings {
		response.Data[i] = holdingToDTO(h)
	}

	return response, nil
}

func (s *HoldingsService) observeFailure(err error, owner common.Address) {
	if errors.Is(err, errs.ErrIntegrityViolation) {
		s.metrics.ObserveIntegrityViolation()
		s.logger.Error("Conflicting balance snapshots",
			zap.Error(err),
			zap.String("owner", owner.Hex()),
		)
	}
}

// holdingToDTO converts a holding entity to a DTO
func holdingToDTO(h entities.TokenHolding) HoldingDTO {
	dto := HoldingDTO{
		ContractAddress:      h.ContractAddress.Hex(),
		Name:                 h.Name,
		Symbol:               h.Symbol,
		Type:                 string(h.Type),
		Decimals:             h.Decimals,
		Balance:              h.Balance,
		BlockNumber:          h.BlockNumber,
		InsertedAt:           h.InsertedAt.UTC().Format(timeLayout),
		CirculatingMarketCap: h.CirculatingMarketCap,
		HolderCount:          h.HolderCount,
	}
	if h.Decimals != nil {
		dto.BalanceFormatted = h.Balance.Shift(-int32(*h.Decimals)).String()
	}
	return dto
}
