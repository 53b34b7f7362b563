package dto

import (
	"time"
)

// CryptocurrencyResponse representa una entrada del registro
// @Description Registered cryptocurrency (symbol deployed on a platform)
type CryptocurrencyResponse struct {
	ID        uint      `json:"id" example:"1"`
	Symbol    string    `json:"symbol" example:"usdc"`
	Platform  string    `json:"platform" example:"ethereum"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-01T10:30:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-01-01T10:30:00Z"`
}

// CryptocurrencyListResponse es una página del registro
// @Description Paginated list of registered cryptocurrencies
type CryptocurrencyListResponse struct {
	Items  []CryptocurrencyResponse `json:"items"`
	Total  int64                    `json:"total" example:"42"`
	Offset int                      `json:"offset" example:"0"`
	Limit  int                      `json:"limit" example:"10"`
}

// PriceResponse es el precio de una entrada del registro
// @Description Current price of a registered cryptocurrency
type PriceResponse struct {
	ID       uint    `json:"id" example:"1"`
	Symbol   string  `json:"symbol" example:"usdc"`
	Platform string  `json:"platform" example:"ethereum"`
	CoinID   string  `json:"coin_id" example:"usd-coin"`
	Currency string  `json:"currency" example:"usd"`
	Price    float64 `json:"price" example:"0.9998"`
	Status   string  `json:"status" example:"fresh" enums:"fresh,stale"` // Origen del precio
	Stale    bool    `json:"stale" example:"false"`                      // true si el proveedor falló y se sirvió cache
}

// CoinPlatformsResponse lista los coins que usan un símbolo y sus plataformas
// @Description Provider coins matching a symbol with their platforms
type CoinPlatformsResponse struct {
	Symbol string              `json:"symbol" example:"usdc"`
	Coins  []CoinPlatformsItem `json:"coins"`
}

// CoinPlatformsItem es un coin del proveedor
type CoinPlatformsItem struct {
	ID        string   `json:"id" example:"usd-coin"`
	Platforms []string `json:"platforms" example:"ethereum,solana"`
}

// ErrorResponse represents a standard error response for endpoints
// @Description Standard error response for endpoints
type ErrorResponse struct {
	Error   string `json:"error" example:"NOT_FOUND" validate:"required"`        // Main error message
	Message string `json:"message,omitempty" example:"cryptocurrency not found"` // Detailed error description
	Code    string `json:"code,omitempty" example:"404"`                         // HTTP error code or internal code
}

// HealthResponse represents the health check response with service status
// @Description Health check response with service status
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy" validate:"required" enums:"healthy,ready,unhealthy"` // Overall service status
	Timestamp time.Time         `json:"timestamp" example:"2023-12-01T10:30:00Z" validate:"required"`                 // When the health check was performed
	Services  map[string]string `json:"services,omitempty" example:"cache:ready,database:ready"`                      // Individual service statuses
}

// NewErrorResponse creates a new error response
func NewErrorResponse(error string, message string) *ErrorResponse {
	return &ErrorResponse{
		Error:   error,
		Message: message,
	}
}

// NewErrorResponseWithCode creates an error response with code
func NewErrorResponseWithCode(error string, message string, code string) *ErrorResponse {
	return &ErrorResponse{
		Error:   error,
		Message: message,
		Code:    code,
	}
}

// NewHealthResponse creates a health check response
func NewHealthResponse(status string, services map[string]string) *HealthResponse {
	return &HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Services:  services,
	}
}
