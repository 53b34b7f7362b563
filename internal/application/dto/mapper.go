package dto

import (
	"crypto-registry-service/internal/domain/entities"
	"crypto-registry-service/internal/domain/interfaces"
)

// CryptocurrencyMapper maneja la conversión entre entidades del dominio y DTOs
type CryptocurrencyMapper struct{}

// NewCryptocurrencyMapper crea una nueva instancia del mapper
func NewCryptocurrencyMapper() *CryptocurrencyMapper {
	return &CryptocurrencyMapper{}
}

func (m *CryptocurrencyMapper) ToResponse(crypto *entities.Cryptocurrency) CryptocurrencyResponse {
	return CryptocurrencyResponse{
		ID:        crypto.ID,
		Symbol:    crypto.Symbol,
		Platform:  crypto.Platform,
		CreatedAt: crypto.CreatedAt,
		UpdatedAt: crypto.UpdatedAt,
	}
}

// ToListResponse siempre retorna items no nulo para que el JSON sea [] y no null
func (m *CryptocurrencyMapper) ToListResponse(items []entities.Cryptocurrency, total int64, offset, limit int) *CryptocurrencyListResponse {
	responses := make([]CryptocurrencyResponse, len(items))
	for i := range items {
		responses[i] = m.ToResponse(&items[i])
	}

	return &CryptocurrencyListResponse{
		Items:  responses,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}
}

func (m *CryptocurrencyMapper) ToPriceResponse(price *interfaces.CryptocurrencyPrice) *PriceResponse {
	return &PriceResponse{
		ID:       price.Cryptocurrency.ID,
		Symbol:   price.Cryptocurrency.Symbol,
		Platform: price.Cryptocurrency.Platform,
		CoinID:   price.CoinID,
		Currency: price.Currency,
		Price:    price.Price,
		Status:   string(price.Result.Status),
		Stale:    price.Result.IsStale(),
	}
}

func (m *CryptocurrencyMapper) ToCoinPlatformsResponse(symbol string, index entities.CoinPlatformIndex) *CoinPlatformsResponse {
	coins := make([]CoinPlatformsItem, len(index))
	for i, entry := range index {
		coins[i] = CoinPlatformsItem{ID: entry.ID, Platforms: entry.Platforms}
	}

	return &CoinPlatformsResponse{
		Symbol: symbol,
		Coins:  coins,
	}
}
