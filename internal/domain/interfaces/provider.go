package interfaces

import (
	"context"

	"crypto-registry-service/internal/domain/entities"
)

// CoinProvider es la fuente externa de catálogo y precios (CoinGecko)
type CoinProvider interface {
	// GetCoinsList descarga el catálogo completo con plataformas
	GetCoinsList(ctx context.Context) ([]entities.Coin, error)

	// GetSimplePrice consulta el precio actual de los coins en una moneda
	GetSimplePrice(ctx context.Context, coinIDs []string, currency string) (entities.PriceQuote, error)
}
