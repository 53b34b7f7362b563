package services

import (
	"context"
	"fmt"
	"strings"

	"crypto-registry-service/internal/domain/entities"
	"crypto-registry-service/internal/domain/interfaces"
	"crypto-registry-service/internal/infrastructure/logging"
	"crypto-registry-service/internal/infrastructure/metrics"
	"crypto-registry-service/internal/infrastructure/repositories/cache"
)

// PriceCacheKey arma la clave price:{coinId}:{currency}
func PriceCacheKey(coinID, currency string) string {
	return fmt.Sprintf("price:%s:%s", coinID, strings.ToLower(currency))
}

// priceFetcher implements the PriceFetcher interface
type priceFetcher struct {
	provider interfaces.CoinProvider
	cache    interfaces.CacheStore
	log      logging.BusinessLogger
}

// NewPriceFetcher creates a new price fetcher
func NewPriceFetcher(provider interfaces.CoinProvider, store interfaces.CacheStore) interfaces.PriceFetcher {
	return &priceFetcher{
		provider: provider,
		cache:    store,
		log:      logging.Business(),
	}
}

// GetPrice siempre intenta el proveedor primero. El cache solo se usa como
// respaldo cuando el proveedor falla o no trae datos para el coin.
func (f *priceFetcher) GetPrice(ctx context.Context, coinID, currency string) (entities.PriceResult, error) {
	currency = strings.ToLower(strings.TrimSpace(currency))
	key := PriceCacheKey(coinID, currency)

	f.log.PriceRequested(ctx, coinID, currency)

	cached := f.readCached(ctx, key, coinID)

	fresh, err := f.provider.GetSimplePrice(ctx, []string{coinID}, currency)
	if err != nil {
		if cached != nil {
			logging.WarnWithError(ctx, "Price provider failed, serving cached quote", err, logging.Fields{
				logging.FieldCoinID:   coinID,
				logging.FieldCurrency: currency,
			})
			return f.served(ctx, coinID, currency, entities.StaleResult(cached, err)), nil
		}

		metrics.RecordPriceLookup(currency, "error")
		f.log.PriceLookupFailed(ctx, coinID, currency, err)
		return entities.PriceResult{}, fmt.Errorf("fetch price for %s in %s: %w", coinID, currency, err)
	}

	if fresh.Has(coinID) {
		if err := f.cache.Set(ctx, key, fresh, cache.PriceTTL); err != nil {
			logging.WarnWithError(ctx, "Failed to cache fresh quote", err, logging.Fields{
				logging.FieldCacheKey: key,
			})
		}
		return f.served(ctx, coinID, currency, entities.FreshResult(fresh)), nil
	}

	if cached != nil {
		return f.served(ctx, coinID, currency, entities.StaleResult(cached, nil)), nil
	}

	metrics.RecordPriceLookup(currency, string(entities.QuoteEmpty))
	return entities.EmptyResult(), nil
}

// readCached retorna el quote cacheado solo si tiene datos del coin. Un cache
// caído se trata como ausencia de respaldo.
func (f *priceFetcher) readCached(ctx context.Context, key, coinID string) entities.PriceQuote {
	var cached entities.PriceQuote
	found, err := f.cache.Get(ctx, key, &cached)
	if err != nil {
		logging.WarnWithError(ctx, "Cached quote unavailable", err, logging.Fields{
			logging.FieldCacheKey: key,
		})
		return nil
	}
	if !found || !cached.Has(coinID) {
		return nil
	}
	return cached
}

func (f *priceFetcher) served(ctx context.Context, coinID, currency string, result entities.PriceResult) entities.PriceResult {
	price, _ := result.Quote.Price(coinID, currency)
	metrics.RecordPriceLookup(currency, string(result.Status))
	f.log.PriceServed(ctx, coinID, currency, price, string(result.Status))
	return result
}
