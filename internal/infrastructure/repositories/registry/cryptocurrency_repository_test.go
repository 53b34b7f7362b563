package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"crypto-registry-service/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB abre una base sqlite en memoria propia de cada test
func setupTestDB(t *testing.T) *Database {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := Open(Config{
		Driver: DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seed(t *testing.T, repo *CryptocurrencyRepository, pairs ...[2]string) []*entities.Cryptocurrency {
	t.Helper()

	created := make([]*entities.Cryptocurrency, 0, len(pairs))
	for _, pair := range pairs {
		crypto := entities.NewCryptocurrency(pair[0], pair[1])
		require.NoError(t, repo.Create(context.Background(), crypto))
		created = append(created, crypto)
	}
	return created
}

func TestCryptocurrencyRepository_CreateAndGet(t *testing.T) {
	repo := NewCryptocurrencyRepository(setupTestDB(t).DB)
	ctx := context.Background()

	crypto := entities.NewCryptocurrency("USDC", "ethereum")
	require.NoError(t, repo.Create(ctx, crypto))
	assert.NotZero(t, crypto.ID)
	assert.False(t, crypto.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, crypto.ID)
	require.NoError(t, err)
	assert.Equal(t, "usdc", byID.Symbol)
	assert.Equal(t, "ethereum", byID.Platform)

	byPair, err := repo.GetBySymbolPlatform(ctx, "usdc", "ethereum")
	require.NoError(t, err)
	assert.Equal(t, crypto.ID, byPair.ID)
}

func TestCryptocurrencyRepository_NotFound(t *testing.T) {
	repo := NewCryptocurrencyRepository(setupTestDB(t).DB)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, entities.ErrCryptocurrencyNotFound)

	_, err = repo.GetBySymbolPlatform(ctx, "btc", "bitcoin")
	assert.ErrorIs(t, err, entities.ErrCryptocurrencyNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, 42), entities.ErrCryptocurrencyNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &entities.Cryptocurrency{ID: 42, Symbol: "btc", Platform: "bitcoin"}), entities.ErrCryptocurrencyNotFound)
}

func TestCryptocurrencyRepository_DuplicatePair(t *testing.T) {
	repo := NewCryptocurrencyRepository(setupTestDB(t).DB)
	seed(t, repo, [2]string{"usdc", "ethereum"})

	err := repo.Create(context.Background(), entities.NewCryptocurrency("usdc", "ethereum"))
	assert.ErrorIs(t, err, entities.ErrCryptocurrencyExists)

	// mismo símbolo en otra plataforma es válido
	assert.NoError(t, repo.Create(context.Background(), entities.NewCryptocurrency("usdc", "solana")))
}

func TestCryptocurrencyRepository_Update(t *testing.T) {
	repo := NewCryptocurrencyRepository(setupTestDB(t).DB)
	ctx := context.Background()
	created := seed(t, repo, [2]string{"usdc", "ethereum"}, [2]string{"usdc", "solana"})

	entry := *created[0]
	entry.Platform = "polygon-pos"
	require.NoError(t, repo.Update(ctx, &entry))

	stored, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "polygon-pos", stored.Platform)

	entry.Platform = "solana"
	assert.ErrorIs(t, repo.Update(ctx, &entry), entities.ErrCryptocurrencyExists)
}

func TestCryptocurrencyRepository_ListPagination(t *testing.T) {
	repo := NewCryptocurrencyRepository(setupTestDB(t).DB)
	seed(t, repo,
		[2]string{"btc", "bitcoin"},
		[2]string{"eth", "ethereum"},
		[2]string{"usdc", "ethereum"},
		[2]string{"usdc", "solana"},
		[2]string{"wbtc", "ethereum"},
	)

	items, total, err := repo.List(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, items, 2)
	assert.Equal(t, "btc", items[0].Symbol)
	assert.Equal(t, "eth", items[1].Symbol)

	items, total, err = repo.List(context.Background(), 4, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, items, 1)
	assert.Equal(t, "wbtc", items[0].Symbol)
}

func TestCryptocurrencyRepository_Delete(t *testing.T) {
	repo := NewCryptocurrencyRepository(setupTestDB(t).DB)
	ctx := context.Background()
	created := seed(t, repo, [2]string{"btc", "bitcoin"})

	require.NoError(t, repo.Delete(ctx, created[0].ID))

	_, err := repo.GetByID(ctx, created[0].ID)
	assert.ErrorIs(t, err, entities.ErrCryptocurrencyNotFound)
}

func TestDatabase_PingAndDriver(t *testing.T) {
	db := setupTestDB(t)
	assert.Equal(t, DriverSQLite, db.Driver())
	assert.NoError(t, db.Ping(context.Background()))
}

func TestOpen_Validation(t *testing.T) {
	_, err := Open(Config{Driver: "mysql"})
	assert.ErrorContains(t, err, "unsupported database driver")

	_, err = Open(Config{Driver: DriverPostgres})
	assert.ErrorContains(t, err, "requires a dsn")
}

func TestSQLiteDSN(t *testing.T) {
	dsn, err := sqliteDSN(Config{})
	require.NoError(t, err)
	assert.Equal(t, "file::memory:?cache=shared", dsn)

	dsn, err = sqliteDSN(Config{DSN: "file:custom.db"})
	require.NoError(t, err)
	assert.Equal(t, "file:custom.db", dsn)

	path := filepath.Join(t.TempDir(), "data", "registry.db")
	dsn, err = sqliteDSN(Config{Path: path})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dsn, "file:"))
	assert.DirExists(t, filepath.Dir(path))
}
