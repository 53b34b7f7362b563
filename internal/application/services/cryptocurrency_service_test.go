package services

import (
	"context"
	"errors"
	"testing"

	"crypto-registry-service/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeResolver resuelve contra el catálogo de ejemplo sin pasar por cache
type fakeResolver struct {
	coins []entities.Coin
	err   error
}

func (r *fakeResolver) GetAllCoinsPlatforms(ctx context.Context) ([]entities.Coin, error) {
	return r.coins, r.err
}

func (r *fakeResolver) GetCoinsPlatforms(ctx context.Context, symbol string) (entities.CoinPlatformIndex, error) {
	if r.err != nil {
		return nil, r.err
	}
	var idx entities.CoinPlatformIndex
	for _, coin := range r.coins {
		if coin.MatchesSymbol(symbol) {
			idx = append(idx, entities.CoinPlatforms{ID: coin.ID, Platforms: coin.PlatformNames()})
		}
	}
	return idx, nil
}

func (r *fakeResolver) GetCoinID(ctx context.Context, symbol, platform string) (string, bool, error) {
	idx, err := r.GetCoinsPlatforms(ctx, symbol)
	if err != nil {
		return "", false, err
	}
	id, ok := idx.CoinIDFor(platform)
	return id, ok, nil
}

func newTestService(repo *MockRepository, fetcher *MockPriceFetcher, validateCoins bool) *cryptocurrencyService {
	return NewCryptocurrencyService(repo, &fakeResolver{coins: sampleCatalog()}, fetcher, validateCoins).(*cryptocurrencyService)
}

func stored(id uint, symbol, platform string) *entities.Cryptocurrency {
	return &entities.Cryptocurrency{ID: id, Symbol: symbol, Platform: platform}
}

// ===== LISTADO =====

func TestCryptocurrencyService_ListClampsPagination(t *testing.T) {
	tests := []struct {
		name           string
		offset, limit  int
		expectedOffset int
		expectedLimit  int
	}{
		{"Defaults", 0, 0, 0, DefaultPageLimit},
		{"Offset negativo", -5, 20, 0, 20},
		{"Limit excesivo", 10, 1000, 10, MaxPageLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("List", mock.Anything, tt.expectedOffset, tt.expectedLimit).
				Return([]entities.Cryptocurrency{*stored(1, "btc", "bitcoin")}, int64(1), nil)

			items, total, err := newTestService(repo, nil, true).List(context.Background(), tt.offset, tt.limit)
			require.NoError(t, err)
			assert.Len(t, items, 1)
			assert.Equal(t, int64(1), total)
			repo.AssertExpectations(t)
		})
	}
}

// ===== ALTA =====

func TestCryptocurrencyService_CreateNormalizesAndStores(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetBySymbolPlatform", mock.Anything, "usdc", "ethereum").Return(nil, entities.ErrCryptocurrencyNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *entities.Cryptocurrency) bool {
		return c.Symbol == "usdc" && c.Platform == "ethereum"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Cryptocurrency).ID = 7
	}).Return(nil)

	crypto, err := newTestService(repo, nil, true).Create(context.Background(), "  USDC ", " ethereum ")
	require.NoError(t, err)
	assert.Equal(t, uint(7), crypto.ID)
	assert.Equal(t, "usdc", crypto.Symbol)
	assert.Equal(t, "ethereum", crypto.Platform)
	repo.AssertExpectations(t)
}

func TestCryptocurrencyService_CreateRejectsInvalidInput(t *testing.T) {
	repo := new(MockRepository)
	service := newTestService(repo, nil, true)

	_, err := service.Create(context.Background(), " ", "ethereum")
	assert.ErrorIs(t, err, entities.ErrInvalidInput)

	_, err = service.Create(context.Background(), "usdc", "")
	assert.ErrorIs(t, err, entities.ErrInvalidInput)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCryptocurrencyService_CreateDuplicate(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetBySymbolPlatform", mock.Anything, "btc", "bitcoin").Return(stored(1, "btc", "bitcoin"), nil)

	_, err := newTestService(repo, nil, true).Create(context.Background(), "BTC", "bitcoin")
	assert.ErrorIs(t, err, entities.ErrCryptocurrencyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCryptocurrencyService_CreateUnresolvableCoin(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetBySymbolPlatform", mock.Anything, "usdc", "tron").Return(nil, entities.ErrCryptocurrencyNotFound)

	_, err := newTestService(repo, nil, true).Create(context.Background(), "usdc", "tron")
	assert.ErrorIs(t, err, entities.ErrCoinNotResolved)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCryptocurrencyService_CreateWithoutCoinValidation(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetBySymbolPlatform", mock.Anything, "usdc", "tron").Return(nil, entities.ErrCryptocurrencyNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := newTestService(repo, nil, false).Create(context.Background(), "usdc", "tron")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCryptocurrencyService_CreateRepositoryFailure(t *testing.T) {
	dbErr := errors.New("connection reset")
	repo := new(MockRepository)
	repo.On("GetBySymbolPlatform", mock.Anything, "btc", "bitcoin").Return(nil, dbErr)

	_, err := newTestService(repo, nil, true).Create(context.Background(), "btc", "bitcoin")
	assert.ErrorIs(t, err, dbErr)
}

// ===== ACTUALIZACIÓN =====

func TestCryptocurrencyService_UpdatePartial(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, uint(3)).Return(stored(3, "usdc", "ethereum"), nil)
	repo.On("GetBySymbolPlatform", mock.Anything, "usdc", "solana").Return(nil, entities.ErrCryptocurrencyNotFound)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *entities.Cryptocurrency) bool {
		return c.ID == 3 && c.Symbol == "usdc" && c.Platform == "solana"
	})).Return(nil)

	platform := "solana"
	crypto, err := newTestService(repo, nil, true).Update(context.Background(), 3, nil, &platform)
	require.NoError(t, err)
	assert.Equal(t, "solana", crypto.Platform)
	repo.AssertExpectations(t)
}

func TestCryptocurrencyService_UpdateNoChanges(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, uint(3)).Return(stored(3, "usdc", "ethereum"), nil)

	symbol := "USDC"
	crypto, err := newTestService(repo, nil, true).Update(context.Background(), 3, &symbol, nil)
	require.NoError(t, err)
	assert.Equal(t, "usdc", crypto.Symbol)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCryptocurrencyService_UpdateConflictsWithOtherEntry(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, uint(3)).Return(stored(3, "usdc", "ethereum"), nil)
	repo.On("GetBySymbolPlatform", mock.Anything, "usdc", "solana").Return(stored(4, "usdc", "solana"), nil)

	platform := "solana"
	_, err := newTestService(repo, nil, true).Update(context.Background(), 3, nil, &platform)
	assert.ErrorIs(t, err, entities.ErrCryptocurrencyExists)
}

func TestCryptocurrencyService_UpdateNotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, uint(99)).Return(nil, entities.ErrCryptocurrencyNotFound)

	symbol := "btc"
	_, err := newTestService(repo, nil, true).Update(context.Background(), 99, &symbol, nil)
	assert.ErrorIs(t, err, entities.ErrCryptocurrencyNotFound)
}

func TestCryptocurrencyService_Delete(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Delete", mock.Anything, uint(5)).Return(nil)
	repo.On("Delete", mock.Anything, uint(6)).Return(entities.ErrCryptocurrencyNotFound)

	service := newTestService(repo, nil, true)
	assert.NoError(t, service.Delete(context.Background(), 5))
	assert.ErrorIs(t, service.Delete(context.Background(), 6), entities.ErrCryptocurrencyNotFound)
}

// ===== PRECIO =====

func TestCryptocurrencyService_GetPriceFresh(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, uint(1)).Return(stored(1, "btc", "bitcoin"), nil)

	fetcher := new(MockPriceFetcher)
	fetcher.On("GetPrice", mock.Anything, "bitcoin", "eur").
		Return(entities.FreshResult(entities.PriceQuote{"bitcoin": {"eur": 58000}}), nil)

	price, err := newTestService(repo, fetcher, true).GetPrice(context.Background(), 1, " EUR ")
	require.NoError(t, err)
	assert.Equal(t, "bitcoin", price.CoinID)
	assert.Equal(t, "eur", price.Currency)
	assert.Equal(t, 58000.0, price.Price)
	assert.False(t, price.Result.IsStale())
}

func TestCryptocurrencyService_GetPriceDefaultCurrencyAndStale(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, uint(2)).Return(stored(2, "usdc", "ethereum"), nil)

	fetcher := new(MockPriceFetcher)
	fetcher.On("GetPrice", mock.Anything, "usd-coin", DefaultCurrency).
		Return(entities.StaleResult(entities.PriceQuote{"usd-coin": {"usd": 0.999}}, errors.New("HTTP 503")), nil)

	price, err := newTestService(repo, fetcher, true).GetPrice(context.Background(), 2, "")
	require.NoError(t, err)
	assert.Equal(t, "usd-coin", price.CoinID, "first coin in catalog order wins")
	assert.True(t, price.Result.IsStale())
	assert.Equal(t, 0.999, price.Price)
}

func TestCryptocurrencyService_GetPriceErrors(t *testing.T) {
	upstreamErr := errors.New("upstream down")

	tests := []struct {
		name     string
		entry    *entities.Cryptocurrency
		repoErr  error
		result   entities.PriceResult
		fetchErr error
		expected error
	}{
		{
			name:     "Entrada inexistente",
			repoErr:  entities.ErrCryptocurrencyNotFound,
			expected: entities.ErrCryptocurrencyNotFound,
		},
		{
			name:     "Plataforma desconocida",
			entry:    stored(1, "usdc", "tron"),
			expected: entities.ErrCoinNotResolved,
		},
		{
			name:     "Sin datos",
			entry:    stored(1, "btc", "bitcoin"),
			result:   entities.EmptyResult(),
			expected: entities.ErrPriceNotAvailable,
		},
		{
			name:     "Moneda ausente en el quote",
			entry:    stored(1, "btc", "bitcoin"),
			result:   entities.FreshResult(entities.PriceQuote{"bitcoin": {"eur": 1}}),
			expected: entities.ErrPriceNotAvailable,
		},
		{
			name:     "Fallo duro del fetcher",
			entry:    stored(1, "btc", "bitcoin"),
			fetchErr: upstreamErr,
			expected: upstreamErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("GetByID", mock.Anything, uint(1)).Return(tt.entry, tt.repoErr)

			fetcher := new(MockPriceFetcher)
			fetcher.On("GetPrice", mock.Anything, "bitcoin", "usd").Return(tt.result, tt.fetchErr)

			_, err := newTestService(repo, fetcher, true).GetPrice(context.Background(), 1, "usd")
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
