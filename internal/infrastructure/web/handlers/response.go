package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"crypto-registry-service/internal/application/dto"
	"crypto-registry-service/internal/domain/entities"
	"crypto-registry-service/internal/infrastructure/logging"
	"crypto-registry-service/internal/infrastructure/provider/coingecko"
	"crypto-registry-service/internal/infrastructure/repositories/cache"
)

// writeJSONResponse writes a JSON response preserving the request context
func writeJSONResponse(ctx context.Context, w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.ErrorWithError(ctx, "Failed to encode JSON response", err, logging.Fields{
			logging.FieldHTTPStatusCode: statusCode,
		})
	}
}

// writeErrorResponse writes an error response
func writeErrorResponse(ctx context.Context, w http.ResponseWriter, statusCode int, errorCode, message string) {
	resp := dto.NewErrorResponseWithCode(errorCode, message, strconv.Itoa(statusCode))
	writeJSONResponse(ctx, w, statusCode, resp)
}

// errorStatus traduce errores del dominio e infraestructura a código HTTP
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, entities.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_PARAMETER"
	case errors.Is(err, entities.ErrCryptocurrencyNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, entities.ErrCryptocurrencyExists):
		return http.StatusConflict, "ALREADY_EXISTS"
	case errors.Is(err, entities.ErrCoinNotResolved):
		return http.StatusUnprocessableEntity, "COIN_NOT_RESOLVED"
	case errors.Is(err, entities.ErrPriceNotAvailable):
		return http.StatusNotFound, "PRICE_NOT_AVAILABLE"
	case errors.Is(err, coingecko.ErrRateLimited):
		return http.StatusServiceUnavailable, "UPSTREAM_RATE_LIMITED"
	case errors.Is(err, coingecko.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE"
	case errors.Is(err, cache.ErrCacheUnavailable):
		return http.StatusServiceUnavailable, "CACHE_UNAVAILABLE"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "TIMEOUT"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// writeServiceError loguea según severidad y responde con el código mapeado
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error, fields logging.Fields) {
	status, code := errorStatus(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		logging.ErrorWithError(ctx, "Request failed", err, fields)
		if status == http.StatusInternalServerError {
			message = "internal server error"
		}
	} else {
		logging.InfoWithError(ctx, "Request rejected", err, fields)
	}

	writeErrorResponse(ctx, w, status, code, message)
}

// NotFound responde 404 en JSON para rutas desconocidas
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(r.Context(), w, http.StatusNotFound, "NOT_FOUND", "route not found: "+r.URL.Path)
}

// MethodNotAllowed responde 405 en JSON
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(r.Context(), w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
}
