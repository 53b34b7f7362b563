package interfaces

import (
	"context"

	"crypto-registry-service/internal/domain/entities"
)

// CryptocurrencyRepository persiste las entradas del registro
type CryptocurrencyRepository interface {
	List(ctx context.Context, offset, limit int) ([]entities.Cryptocurrency, int64, error)
	GetByID(ctx context.Context, id uint) (*entities.Cryptocurrency, error)
	GetBySymbolPlatform(ctx context.Context, symbol, platform string) (*entities.Cryptocurrency, error)
	Create(ctx context.Context, crypto *entities.Cryptocurrency) error
	Update(ctx context.Context, crypto *entities.Cryptocurrency) error
	Delete(ctx context.Context, id uint) error
}
