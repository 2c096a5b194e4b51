package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/token-holdings/internal/application/services"
	"github.com/bimakw/token-holdings/internal/config"
)

// HoldingsHandler handles HTTP requests for an owner's token holdings
type HoldingsHandler struct {
	service    *services.HoldingsService
	pagination config.PaginationConfig
	logger     *zap.Logger
}

// NewHoldingsHandler creates a new holdings handler
func NewHoldingsHandler(service *services.HoldingsService, pagination config.PaginationConfig, logger *zap.Logger) *HoldingsHandler {
	return &HoldingsHandler{
		service:    service,
		pagination: pagination,
		logger:     logger,
	}
}

// RegisterRoutes registers the holdings routes
func (h *HoldingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/addresses/{address}/tokens", h.ListTokens)
	r.Get("/addresses/{address}/holdings", h.GetHoldings)
}

// ListTokens handles GET /api/v1/addresses/{address}/tokens
func (h *HoldingsHandler) ListTokens(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	size, err := pageSize(r, h.pagination.DefaultPageSize)
	if err != nil {
		respondFailure(w, h.logger, err, "Failed to list holdings")
		return
	}

	response, err := h.service.ListHoldings(r.Context(), address, r.URL.Query().Get("cursor"), size)
	if err != nil {
		respondFailure(w, h.logger, err, "Failed to list holdings", zap.String("address", address))
		return
	}

	respondJSON(w, http.StatusOK, response)
}

// GetHoldings handles GET /api/v1/addresses/{address}/holdings
func (h *HoldingsHandler) GetHoldings(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	response, err := h.service.Resolve(r.Context(), address)
	if err != nil {
		respondFailure(w, h.logger, err, "Failed to get holdings", zap.String("address", address))
		return
	}

	respondJSON(w, http.StatusOK, response)
}
