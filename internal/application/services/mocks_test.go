package services

import (
	"context"
	"time"

	"crypto-registry-service/internal/domain/entities"
	"crypto-registry-service/internal/domain/interfaces"
	"crypto-registry-service/internal/infrastructure/repositories/cache"

	"github.com/stretchr/testify/mock"
)

// MockCoinProvider es un mock del proveedor externo
type MockCoinProvider struct {
	mock.Mock
}

func (m *MockCoinProvider) GetCoinsList(ctx context.Context) ([]entities.Coin, error) {
	args := m.Called(ctx)
	coins, _ := args.Get(0).([]entities.Coin)
	return coins, args.Error(1)
}

func (m *MockCoinProvider) GetSimplePrice(ctx context.Context, coinIDs []string, currency string) (entities.PriceQuote, error) {
	args := m.Called(ctx, coinIDs, currency)
	quote, _ := args.Get(0).(entities.PriceQuote)
	return quote, args.Error(1)
}

// MockCacheStore permite simular un backend caído
type MockCacheStore struct {
	mock.Mock
}

func (m *MockCacheStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockRepository es un mock del repositorio del registro
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, offset, limit int) ([]entities.Cryptocurrency, int64, error) {
	args := m.Called(ctx, offset, limit)
	items, _ := args.Get(0).([]entities.Cryptocurrency)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*entities.Cryptocurrency, error) {
	args := m.Called(ctx, id)
	crypto, _ := args.Get(0).(*entities.Cryptocurrency)
	return crypto, args.Error(1)
}

func (m *MockRepository) GetBySymbolPlatform(ctx context.Context, symbol, platform string) (*entities.Cryptocurrency, error) {
	args := m.Called(ctx, symbol, platform)
	crypto, _ := args.Get(0).(*entities.Cryptocurrency)
	return crypto, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, crypto *entities.Cryptocurrency) error {
	return m.Called(ctx, crypto).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, crypto *entities.Cryptocurrency) error {
	return m.Called(ctx, crypto).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// MockPriceFetcher es un mock del fetcher
type MockPriceFetcher struct {
	mock.Mock
}

func (m *MockPriceFetcher) GetPrice(ctx context.Context, coinID, currency string) (entities.PriceResult, error) {
	args := m.Called(ctx, coinID, currency)
	return args.Get(0).(entities.PriceResult), args.Error(1)
}

func newMemoryStore() interfaces.CacheStore {
	return cache.NewStore(cache.NewMemoryCache())
}

func sampleCatalog() []entities.Coin {
	return []entities.Coin{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", Platforms: map[string]string{}},
		{ID: "usd-coin", Symbol: "usdc", Name: "USDC", Platforms: map[string]string{"ethereum": "0xa0b8", "solana": "EPjF"}},
		{ID: "bridged-usdc", Symbol: "USDC", Name: "Bridged USDC", Platforms: map[string]string{"ethereum": "0xdead", "polygon-pos": "0x2791"}},
		{ID: "wrapped-bitcoin", Symbol: "wbtc", Name: "Wrapped Bitcoin", Platforms: map[string]string{"ethereum": "0x2260"}},
	}
}
