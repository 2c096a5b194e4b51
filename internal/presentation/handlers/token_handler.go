package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/token-holdings/internal/application/services"
	"github.com/bimakw/token-holdings/internal/config"
)

// TokenHandler handles HTTP requests for tokens
type TokenHandler struct {
	service    *services.TokenService
	pagination config.PaginationConfig
	logger     *zap.Logger
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(service *services.TokenService, pagination config.PaginationConfig, logger *zap.Logger) *TokenHandler {
	return &TokenHandler{
		service:    service,
		pagination: pagination,
		logger:     logger,
	}
}

// RegisterRoutes registers the token routes
func (h *TokenHandler) RegisterRoutes(r chi.Router) {
	r.Get("/tokens", h.ListTokens)
	r.Get("/tokens/{address}", h.GetByAddress)
}

// ListTokens handles GET /api/v1/tokens
func (h *TokenHandler) ListTokens(w http.ResponseWriter, r *http.Request) {
	size, err := pageSize(r, h.pagination.DefaultPageSize)
	if err != nil {
		respondFailure(w, h.logger, err, "Failed to list tokens")
		return
	}

	response, err := h.service.ListTokens(r.Context(), r.URL.Query().Get("cursor"), size)
	if err != nil {
		respondFailure(w, h.logger, err, "Failed to list tokens")
		return
	}

	respondJSON(w, http.StatusOK, response)
}

// GetByAddress handles GET /api/v1/tokens/{address}
func (h *TokenHandler) GetByAddress(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	response, err := h.service.GetByAddress(r.Context(), address)
	if err != nil {
		respondFailure(w, h.logger, err, "Failed to get token", zap.String("address", address))
		return
	}

	if response == nil {
		respondError(w, http.StatusNotFound, "token not found")
		return
	}

	respondJSON(w, http.StatusOK, response)
}
