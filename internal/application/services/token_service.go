package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bimakw/token-holdings/internal/config"
	"github.com/bimakw/token-holdings/internal/domain/cursor"
	"github.com/bimakw/token-holdings/internal/domain/entities"
	"github.com/bimakw/token-holdings/internal/domain/repositories"
	"github.com/bimakw/token-holdings/internal/infrastructure/metrics"
)

const timeLayout = time.RFC3339Nano

// TokenService provides business logic for token queries
type TokenService struct {
	tokenRepo  repositories.TokenRepository
	pagination config.PaginationConfig
	metrics    *metrics.ListingMetrics
	logger     *zap.Logger
}

// NewTokenService creates a new token service
func NewTokenService(
	tokenRepo repositories.TokenRepository,
	pagination config.PaginationConfig,
	metrics *metrics.ListingMetrics,
	logger *zap.Logger,
) *TokenService {
	return &TokenService{
		tokenRepo:  tokenRepo,
		pagination: pagination,
		metrics:    metrics,
		logger:     logger,
	}
}

// TokenDTO is the API representation of a token
type TokenDTO struct {
	ContractAddress      string              `json:"contract_address"`
	Name                 *string             `json:"name"`
	Symbol               *string             `json:"symbol"`
	Type                 string              `json:"type"`
	Decimals             *int64              `json:"decimals"`
	CirculatingMarketCap decimal.NullDecimal `json:"circulating_market_cap"`
	HolderCount          *int64              `json:"holder_count"`
	InsertedAt           string              `json:"inserted_at"`
	UpdatedAt            string              `json:"updated_at"`
}

// TokenPageResponse is the API response for one page of tokens
type TokenPageResponse struct {
	Data       []TokenDTO `json:"data"`
	NextCursor string     `json:"next_cursor,omitempty"`
	HasMore    bool       `json:"has_more"`
	Total      int64      `json:"total"`
}

// TokenResponse is the API response for single token queries
type TokenResponse struct {
	Data TokenDTO `json:"data"`
}

// ListTokens returns the page of tokens following cursorToken, ranked by
// market cap, then holder count, then name
func (s *TokenService) ListTokens(ctx context.Context, cursorToken string, pageSize int) (*TokenPageResponse, error) {
	limit, err := clampPageSize(s.pagination, pageSize)
	if err != nil {
		return nil, err
	}
	after, err := cursor.DecodeMarketRank(cursorToken)
	if err != nil {
		return nil, err
	}

	page, total, err := fetchPage(ctx, s.tokenRepo.ListByMarketRank, cursor.FromToken, after, limit, s.tokenRepo.Count)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}

	response := &TokenPageResponse{
		Data:    make([]TokenDTO, len(page.Items)),
		HasMore: page.HasMore,
		Total:   total,
	}
	for i, t := range page.Items {
		response.Data[i] = tokenToDTO(t)
	}
	if page.Next != nil {
		if response.NextCursor, err = cursor.Encode(*page.Next); err != nil {
			return nil, fmt.Errorf("failed to encode cursor: %w", err)
		}
	}

	s.metrics.ObservePage(cursor.ModeMarketRank, len(response.Data))
	return response, nil
}

// GetByAddress retrieves a single token by contract address, nil when unknown
func (s *TokenService) GetByAddress(ctx context.Context, address string) (*TokenResponse, error) {
	contract, err := parseAddress("address", address)
	if err != nil {
		return nil, err
	}

	token, err := s.tokenRepo.GetByAddress(ctx, contract)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	if token == nil {
		return nil, nil
	}

	s.logger.Debug("Token found", zap.String("address", contract.Hex()))
	return &TokenResponse{Data: tokenToDTO(*token)}, nil
}

// tokenToDTO converts a token entity to a DTO
func tokenToDTO(t entities.Token) TokenDTO {
	return TokenDTO{
		ContractAddress:      t.ContractAddress.Hex(),
		Name:                 t.Name,
		Symbol:               t.Symbol,
		Type:                 string(t.Type),
		Decimals:             t.Decimals,
		CirculatingMarketCap: t.CirculatingMarketCap,
		HolderCount:          t.HolderCount,
		InsertedAt:           t.InsertedAt.UTC().Format(timeLayout),
		UpdatedAt:            t.UpdatedAt.UTC().Format(timeLayout),
	}
}
