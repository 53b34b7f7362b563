package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crypto-registry-service/internal/domain/entities"
	"crypto-registry-service/internal/domain/interfaces"
	"crypto-registry-service/internal/infrastructure/logging"
	"crypto-registry-service/internal/infrastructure/metrics"
	"crypto-registry-service/internal/infrastructure/repositories/cache"
)

// CatalogCacheKey es la única entrada de cache del catálogo completo
const CatalogCacheKey = "coingecko:coins:list"

// coinResolver implements the CoinResolver interface
type coinResolver struct {
	provider interfaces.CoinProvider
	cache    interfaces.CacheStore
	log      logging.BusinessLogger
}

// NewCoinResolver creates a new coin resolver
func NewCoinResolver(provider interfaces.CoinProvider, store interfaces.CacheStore) interfaces.CoinResolver {
	return &coinResolver{
		provider: provider,
		cache:    store,
		log:      logging.Business(),
	}
}

// GetAllCoinsPlatforms es cache-first: solo descarga el catálogo si la entrada
// no existe o expiró. Un fallo de descarga se propaga aunque haya existido un
// catálogo anterior.
func (r *coinResolver) GetAllCoinsPlatforms(ctx context.Context) ([]entities.Coin, error) {
	var coins []entities.Coin
	found, err := r.cache.Get(ctx, CatalogCacheKey, &coins)
	if err != nil {
		return nil, fmt.Errorf("read coin catalog from cache: %w", err)
	}
	if found {
		return coins, nil
	}

	start := time.Now()
	coins, err = r.provider.GetCoinsList(ctx)
	if err != nil {
		metrics.RecordCatalogRefresh(false, 0)
		return nil, fmt.Errorf("download coin catalog: %w", err)
	}

	metrics.RecordCatalogRefresh(true, len(coins))
	r.log.CatalogRefreshed(ctx, len(coins), float64(time.Since(start).Nanoseconds())/1e6)

	if err := r.cache.Set(ctx, CatalogCacheKey, coins, cache.CatalogTTL); err != nil {
		// El catálogo ya está en memoria; se sirve aunque no se haya podido cachear
		logging.WarnWithError(ctx, "Failed to cache coin catalog", err, logging.Fields{
			logging.FieldCacheKey:     CatalogCacheKey,
			logging.FieldCatalogCoins: len(coins),
		})
	}

	return coins, nil
}

// GetCoinsPlatforms filtra el catálogo por símbolo sin distinguir mayúsculas
func (r *coinResolver) GetCoinsPlatforms(ctx context.Context, symbol string) (entities.CoinPlatformIndex, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return entities.CoinPlatformIndex{}, nil
	}

	coins, err := r.GetAllCoinsPlatforms(ctx)
	if err != nil {
		return nil, err
	}

	index := entities.CoinPlatformIndex{}
	for _, coin := range coins {
		if coin.MatchesSymbol(symbol) {
			index = append(index, entities.CoinPlatforms{
				ID:        coin.ID,
				Platforms: coin.PlatformNames(),
			})
		}
	}

	return index, nil
}

// GetCoinID retorna el primer coin del símbolo, en orden de catálogo, desplegado
// en la plataforma indicada. La plataforma se compara de forma exacta.
func (r *coinResolver) GetCoinID(ctx context.Context, symbol, platform string) (string, bool, error) {
	index, err := r.GetCoinsPlatforms(ctx, symbol)
	if err != nil {
		return "", false, err
	}

	coinID, found := index.CoinIDFor(platform)
	return coinID, found, nil
}
