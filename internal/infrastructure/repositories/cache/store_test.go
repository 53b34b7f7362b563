package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBackend es un mock de interfaces.CacheBackend
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockBackend) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockBackend) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockBackend) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockBackend) Close() error {
	return m.Called().Error(0)
}

type sampleValue struct {
	ID        string            `json:"id"`
	Platforms map[string]string `json:"platforms"`
	Tags      []string          `json:"tags"`
	Score     float64           `json:"score"`
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	store := NewStore(NewMemoryCache())
	ctx := context.Background()

	t.Run("struct", func(t *testing.T) {
		in := sampleValue{
			ID:        "usd-coin",
			Platforms: map[string]string{"ethereum": "0xa0b8", "solana": "EPjF"},
			Tags:      []string{"stable"},
			Score:     0.99,
		}
		require.NoError(t, store.Set(ctx, "struct", in, 0))

		var out sampleValue
		found, err := store.Get(ctx, "struct", &out)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, in, out)
	})

	t.Run("nested map", func(t *testing.T) {
		in := map[string]map[string]float64{"bitcoin": {"usd": 64000.5, "eur": 59000}}
		require.NoError(t, store.Set(ctx, "quote", in, PriceTTL))

		var out map[string]map[string]float64
		found, err := store.Get(ctx, "quote", &out)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, in, out)
	})

	t.Run("slice", func(t *testing.T) {
		in := []string{"a", "b", "c"}
		require.NoError(t, store.Set(ctx, "slice", in, CatalogTTL))

		var out []string
		found, err := store.Get(ctx, "slice", &out)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, in, out)
	})
}

func TestStore_GetMissIsNotAnError(t *testing.T) {
	store := NewStore(NewMemoryCache())

	var out map[string]interface{}
	found, err := store.Get(context.Background(), "missing", &out)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, out)
}

func TestStore_EntriesExpireAfterTTL(t *testing.T) {
	clock := newFakeClock()
	store := NewStore(newMemoryCacheWithClock(clock))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "price:bitcoin:usd", map[string]int{"x": 1}, PriceTTL))

	clock.Advance(PriceTTL - time.Second)
	var out map[string]int
	found, err := store.Get(ctx, "price:bitcoin:usd", &out)
	require.NoError(t, err)
	assert.True(t, found)

	clock.Advance(time.Second)
	found, err = store.Get(ctx, "price:bitcoin:usd", &out)
	require.NoError(t, err)
	assert.False(t, found)

	exists, err := store.Exists(ctx, "price:bitcoin:usd")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStore_NonPositiveTTLUsesDefaultTier(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want time.Duration
	}{
		{name: "zero", ttl: 0, want: DefaultTTL},
		{name: "negative", ttl: -time.Second, want: DefaultTTL},
		{name: "price tier", ttl: PriceTTL, want: PriceTTL},
		{name: "catalog tier", ttl: CatalogTTL, want: CatalogTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := new(MockBackend)
			backend.On("Set", mock.Anything, "k", `{"a":1}`, tt.want).Return(nil)

			store := NewStore(backend)
			require.NoError(t, store.Set(context.Background(), "k", map[string]int{"a": 1}, tt.ttl))
			backend.AssertExpectations(t)
		})
	}
}

func TestStore_TTLTiers(t *testing.T) {
	assert.Equal(t, 300*time.Second, DefaultTTL)
	assert.Equal(t, 1800*time.Second, PriceTTL)
	assert.Equal(t, 86400*time.Second, CatalogTTL)
}

func TestStore_BackendFailuresSurfaceAsUnavailable(t *testing.T) {
	boom := errors.New("connection refused")
	ctx := context.Background()

	backend := new(MockBackend)
	backend.On("Get", mock.Anything, "k").Return("", boom)
	backend.On("Set", mock.Anything, "k", "1", DefaultTTL).Return(boom)
	backend.On("Delete", mock.Anything, "k").Return(boom)
	backend.On("Exists", mock.Anything, "k").Return(false, boom)
	backend.On("Ping", mock.Anything).Return(boom)

	store := NewStore(backend)

	var out int
	found, err := store.Get(ctx, "k", &out)
	assert.False(t, found)
	assert.ErrorIs(t, err, ErrCacheUnavailable)
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, store.Set(ctx, "k", 1, 0), ErrCacheUnavailable)
	assert.ErrorIs(t, store.Delete(ctx, "k"), ErrCacheUnavailable)

	_, err = store.Exists(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheUnavailable)

	assert.ErrorIs(t, store.Ping(ctx), ErrCacheUnavailable)
}

func TestStore_UndecodableEntryIsTreatedAsMiss(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Get", mock.Anything, "k").Return("not-json", nil)

	var out map[string]string
	found, err := NewStore(backend).Get(context.Background(), "k", &out)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestStore_UnencodableValue(t *testing.T) {
	backend := new(MockBackend)

	err := NewStore(backend).Set(context.Background(), "k", make(chan int), 0)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheUnavailable)
	backend.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStore_OperationTimeoutIsApplied(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Get", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= 250*time.Millisecond
	}), "k").Return("", ErrKeyNotFound)

	store := NewStore(backend, WithOperationTimeout(250*time.Millisecond))

	var out string
	found, err := store.Get(context.Background(), "k", &out)
	assert.NoError(t, err)
	assert.False(t, found)
	backend.AssertExpectations(t)
}

func TestStore_DeleteAndExists(t *testing.T) {
	store := NewStore(NewMemoryCache())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v", 0))

	exists, err := store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, "k"))

	exists, err = store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}
