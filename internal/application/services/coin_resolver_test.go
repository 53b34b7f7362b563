package services

import (
	"context"
	"errors"
	"testing"

	"crypto-registry-service/internal/domain/entities"
	"crypto-registry-service/internal/infrastructure/repositories/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===== CATÁLOGO CACHE-FIRST =====

func TestCoinResolver_CatalogIsDownloadedOnce(t *testing.T) {
	provider := new(MockCoinProvider)
	provider.On("GetCoinsList", mock.Anything).Return(sampleCatalog(), nil).Once()

	store := newMemoryStore()
	resolver := NewCoinResolver(provider, store)
	ctx := context.Background()

	first, err := resolver.GetAllCoinsPlatforms(ctx)
	require.NoError(t, err)
	second, err := resolver.GetAllCoinsPlatforms(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	provider.AssertNumberOfCalls(t, "GetCoinsList", 1)

	exists, err := store.Exists(ctx, CatalogCacheKey)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCoinResolver_CachedCatalogSkipsProvider(t *testing.T) {
	provider := new(MockCoinProvider)
	store := newMemoryStore()
	require.NoError(t, store.Set(context.Background(), CatalogCacheKey, sampleCatalog(), cache.CatalogTTL))

	coins, err := NewCoinResolver(provider, store).GetAllCoinsPlatforms(context.Background())
	require.NoError(t, err)
	assert.Len(t, coins, 4)
	provider.AssertNotCalled(t, "GetCoinsList", mock.Anything)
}

func TestCoinResolver_ProviderFailurePropagates(t *testing.T) {
	upstreamErr := errors.New("provider unavailable")
	provider := new(MockCoinProvider)
	provider.On("GetCoinsList", mock.Anything).Return(nil, upstreamErr)

	_, err := NewCoinResolver(provider, newMemoryStore()).GetAllCoinsPlatforms(context.Background())
	assert.ErrorIs(t, err, upstreamErr)
}

func TestCoinResolver_CacheReadFailurePropagates(t *testing.T) {
	provider := new(MockCoinProvider)
	store := new(MockCacheStore)
	store.On("Get", mock.Anything, CatalogCacheKey, mock.Anything).Return(false, cache.ErrCacheUnavailable)

	_, err := NewCoinResolver(provider, store).GetAllCoinsPlatforms(context.Background())
	assert.ErrorIs(t, err, cache.ErrCacheUnavailable)
	provider.AssertNotCalled(t, "GetCoinsList", mock.Anything)
}

func TestCoinResolver_CacheWriteFailureStillServesCatalog(t *testing.T) {
	provider := new(MockCoinProvider)
	provider.On("GetCoinsList", mock.Anything).Return(sampleCatalog(), nil)

	store := new(MockCacheStore)
	store.On("Get", mock.Anything, CatalogCacheKey, mock.Anything).Return(false, nil)
	store.On("Set", mock.Anything, CatalogCacheKey, mock.Anything, cache.CatalogTTL).Return(cache.ErrCacheUnavailable)

	coins, err := NewCoinResolver(provider, store).GetAllCoinsPlatforms(context.Background())
	require.NoError(t, err)
	assert.Len(t, coins, 4)
	store.AssertExpectations(t)
}

// ===== ÍNDICE POR SÍMBOLO =====

func TestCoinResolver_GetCoinsPlatforms(t *testing.T) {
	provider := new(MockCoinProvider)
	provider.On("GetCoinsList", mock.Anything).Return(sampleCatalog(), nil)
	resolver := NewCoinResolver(provider, newMemoryStore())
	ctx := context.Background()

	t.Run("coin without platforms maps to itself", func(t *testing.T) {
		index, err := resolver.GetCoinsPlatforms(ctx, "btc")
		require.NoError(t, err)
		assert.Equal(t, map[string][]string{"bitcoin": {"bitcoin"}}, index.Map())
	})

	t.Run("symbol match is case-insensitive", func(t *testing.T) {
		for _, symbol := range []string{"usdc", "USDC", "UsDc"} {
			index, err := resolver.GetCoinsPlatforms(ctx, symbol)
			require.NoError(t, err)
			assert.Equal(t, entities.CoinPlatformIndex{
				{ID: "usd-coin", Platforms: []string{"ethereum", "solana"}},
				{ID: "bridged-usdc", Platforms: []string{"ethereum", "polygon-pos"}},
			}, index, symbol)
		}
	})

	t.Run("unknown symbol yields empty index", func(t *testing.T) {
		index, err := resolver.GetCoinsPlatforms(ctx, "nope")
		require.NoError(t, err)
		assert.True(t, index.IsEmpty())
	})

	t.Run("blank symbol yields empty index", func(t *testing.T) {
		index, err := resolver.GetCoinsPlatforms(ctx, "  ")
		require.NoError(t, err)
		assert.True(t, index.IsEmpty())
	})
}

// ===== RESOLUCIÓN DE COIN-ID =====

func TestCoinResolver_GetCoinID(t *testing.T) {
	provider := new(MockCoinProvider)
	provider.On("GetCoinsList", mock.Anything).Return(sampleCatalog(), nil)
	resolver := NewCoinResolver(provider, newMemoryStore())

	tests := []struct {
		name      string
		symbol    string
		platform  string
		wantID    string
		wantFound bool
	}{
		{name: "native coin", symbol: "btc", platform: "bitcoin", wantID: "bitcoin", wantFound: true},
		{name: "first match in catalog order wins", symbol: "usdc", platform: "ethereum", wantID: "usd-coin", wantFound: true},
		{name: "second coin only platform", symbol: "USDC", platform: "polygon-pos", wantID: "bridged-usdc", wantFound: true},
		{name: "platform match is case-sensitive", symbol: "usdc", platform: "Ethereum", wantFound: false},
		{name: "platform not declared", symbol: "wbtc", platform: "solana", wantFound: false},
		{name: "unknown symbol", symbol: "doge", platform: "dogecoin", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coinID, found, err := resolver.GetCoinID(context.Background(), tt.symbol, tt.platform)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantID, coinID)
		})
	}

	provider.AssertNumberOfCalls(t, "GetCoinsList", 1)
}
