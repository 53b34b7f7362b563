package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crypto-registry-service/internal/domain/entities"

	"gorm.io/gorm"
)

// CryptocurrencyRepository implementa el repositorio del registro sobre gorm
type CryptocurrencyRepository struct {
	db *gorm.DB
}

func NewCryptocurrencyRepository(db *gorm.DB) *CryptocurrencyRepository {
	return &CryptocurrencyRepository{db: db}
}

func (r *CryptocurrencyRepository) List(ctx context.Context, offset, limit int) ([]entities.Cryptocurrency, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.Cryptocurrency{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count cryptocurrencies: %w", err)
	}

	items := make([]entities.Cryptocurrency, 0, limit)
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list cryptocurrencies: %w", err)
	}

	return items, total, nil
}

func (r *CryptocurrencyRepository) GetByID(ctx context.Context, id uint) (*entities.Cryptocurrency, error) {
	var crypto entities.Cryptocurrency
	if err := r.db.WithContext(ctx).First(&crypto, id).Error; err != nil {
		return nil, translate(err)
	}
	return &crypto, nil
}

func (r *CryptocurrencyRepository) GetBySymbolPlatform(ctx context.Context, symbol, platform string) (*entities.Cryptocurrency, error) {
	var crypto entities.Cryptocurrency
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND platform = ?", symbol, platform).
		First(&crypto).Error
	if err != nil {
		return nil, translate(err)
	}
	return &crypto, nil
}

func (r *CryptocurrencyRepository) Create(ctx context.Context, crypto *entities.Cryptocurrency) error {
	if err := r.db.WithContext(ctx).Create(crypto).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Update persiste symbol y platform de una entrada existente
func (r *CryptocurrencyRepository) Update(ctx context.Context, crypto *entities.Cryptocurrency) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&entities.Cryptocurrency{}).
		Where("id = ?", crypto.ID).
		Updates(map[string]interface{}{
			"symbol":     crypto.Symbol,
			"platform":   crypto.Platform,
			"updated_at": now,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.ErrCryptocurrencyNotFound
	}

	crypto.UpdatedAt = now
	return nil
}

func (r *CryptocurrencyRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Cryptocurrency{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.ErrCryptocurrencyNotFound
	}
	return nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return entities.ErrCryptocurrencyNotFound
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %v", entities.ErrCryptocurrencyExists, err)
	default:
		return err
	}
}
