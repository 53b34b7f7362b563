package interfaces

import (
	"context"

	"crypto-registry-service/internal/domain/entities"
)

// CoinResolver traduce (symbol, platform) al coin-id del proveedor
type CoinResolver interface {
	// GetAllCoinsPlatforms retorna el catálogo completo (cache-first)
	GetAllCoinsPlatforms(ctx context.Context) ([]entities.Coin, error)

	// GetCoinsPlatforms filtra el catálogo por símbolo (case-insensitive)
	GetCoinsPlatforms(ctx context.Context, symbol string) (entities.CoinPlatformIndex, error)

	// GetCoinID retorna el primer coin del símbolo desplegado en la plataforma
	GetCoinID(ctx context.Context, symbol, platform string) (string, bool, error)
}

// PriceFetcher obtiene precios con fallback a cache
type PriceFetcher interface {
	GetPrice(ctx context.Context, coinID, currency string) (entities.PriceResult, error)
}

// CryptocurrencyPrice es el precio resuelto para una entrada del registro
type CryptocurrencyPrice struct {
	Cryptocurrency *entities.Cryptocurrency
	CoinID         string
	Currency       string
	Price          float64
	Result         entities.PriceResult
}

// CryptocurrencyService define los casos de uso del registro
type CryptocurrencyService interface {
	List(ctx context.Context, offset, limit int) ([]entities.Cryptocurrency, int64, error)
	Get(ctx context.Context, id uint) (*entities.Cryptocurrency, error)
	Create(ctx context.Context, symbol, platform string) (*entities.Cryptocurrency, error)
	Update(ctx context.Context, id uint, symbol, platform *string) (*entities.Cryptocurrency, error)
	Delete(ctx context.Context, id uint) error

	// GetPrice encadena registro -> resolver -> fetcher
	GetPrice(ctx context.Context, id uint, currency string) (*CryptocurrencyPrice, error)
}
