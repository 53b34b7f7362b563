package dto

import (
	"fmt"
	"strconv"
	"strings"

	"crypto-registry-service/internal/domain/entities"
	"crypto-registry-service/pkg/validator"
)

// CreateCryptocurrencyRequest es el body de POST /api/cryptocurrencies
type CreateCryptocurrencyRequest struct {
	Symbol   string `json:"symbol" example:"usdc" validate:"required,max=32,coinsymbol"`
	Platform string `json:"platform" example:"ethereum" validate:"required,max=128"`
}

// Normalize recorta espacios antes de validar
func (r *CreateCryptocurrencyRequest) Normalize() {
	r.Symbol = strings.TrimSpace(r.Symbol)
	r.Platform = strings.TrimSpace(r.Platform)
}

// Validate valida la request
func (r *CreateCryptocurrencyRequest) Validate() error {
	r.Normalize()
	return wrapValidation(validator.ValidateStruct(r))
}

// UpdateCryptocurrencyRequest es el body de PUT /api/cryptocurrencies/{id}. Los campos ausentes no se modifican.
type UpdateCryptocurrencyRequest struct {
	Symbol   *string `json:"symbol,omitempty" example:"usdc" validate:"omitempty,min=1,max=32,coinsymbol"`
	Platform *string `json:"platform,omitempty" example:"solana" validate:"omitempty,min=1,max=128"`
}

// Validate valida la request
func (r *UpdateCryptocurrencyRequest) Validate() error {
	if r.Symbol == nil && r.Platform == nil {
		return fmt.Errorf("%w: at least one of symbol or platform is required", entities.ErrInvalidInput)
	}
	if r.Symbol != nil {
		trimmed := strings.TrimSpace(*r.Symbol)
		r.Symbol = &trimmed
	}
	if r.Platform != nil {
		trimmed := strings.TrimSpace(*r.Platform)
		r.Platform = &trimmed
	}
	return wrapValidation(validator.ValidateStruct(r))
}

// ListQuery representa ?offset=&limit= del listado
type ListQuery struct {
	Offset int
	Limit  int
}

// NewListQuery parsea la paginación; valores ausentes quedan en 0 y el servicio aplica defaults
func NewListQuery(offsetParam, limitParam string) (*ListQuery, error) {
	query := &ListQuery{}

	if offsetParam != "" {
		offset, err := strconv.Atoi(offsetParam)
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("%w: offset must be a non-negative integer", entities.ErrInvalidInput)
		}
		query.Offset = offset
	}

	if limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 1 {
			return nil, fmt.Errorf("%w: limit must be a positive integer", entities.ErrInvalidInput)
		}
		query.Limit = limit
	}

	return query, nil
}

// ParseID parsea el {id} de la ruta
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid id %q", entities.ErrInvalidInput, raw)
	}
	return uint(id), nil
}

// ParseCurrency normaliza ?currency=; vacío usa la moneda por defecto
func ParseCurrency(raw, fallback string) (string, error) {
	currency := strings.ToLower(strings.TrimSpace(raw))
	if currency == "" {
		return fallback, nil
	}
	if len(currency) > 10 {
		return "", fmt.Errorf("%w: invalid currency %q", entities.ErrInvalidInput, raw)
	}
	for _, c := range currency {
		if c < 'a' || c > 'z' {
			return "", fmt.Errorf("%w: invalid currency %q", entities.ErrInvalidInput, raw)
		}
	}
	return currency, nil
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", entities.ErrInvalidInput, err)
}
