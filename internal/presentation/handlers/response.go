package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/bimakw/token-holdings/internal/domain/errs"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondFailure maps a service error to its status code. Client errors echo
// their reason; server errors are logged and answered with message.
func respondFailure(w http.ResponseWriter, logger *zap.Logger, err error, message string, fields ...zap.Field) {
	switch {
	case errors.Is(err, errs.ErrInvalidArgument):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrStorageUnavailable):
		logger.Warn(message, append(fields, zap.Error(err))...)
		respondError(w, http.StatusServiceUnavailable, message)
	default:
		logger.Error(message, append(fields, zap.Error(err))...)
		respondError(w, http.StatusInternalServerError, message)
	}
}

// pageSize reads the page_size query parameter. An absent value yields def;
// range checks are left to the services.
func pageSize(r *http.Request, def int) (int, error) {
	v := r.URL.Query().Get("page_size")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.InvalidArgument("page_size %q is not an integer", v)
	}
	return n, nil
}
