package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crypto-registry-service/internal/domain/entities"
	"crypto-registry-service/internal/domain/interfaces"
	"crypto-registry-service/internal/infrastructure/logging"
	"crypto-registry-service/internal/infrastructure/metrics"
)

const (
	DefaultCurrency  = "usd"
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// cryptocurrencyService implements the CryptocurrencyService interface
type cryptocurrencyService struct {
	repo          interfaces.CryptocurrencyRepository
	resolver      interfaces.CoinResolver
	fetcher       interfaces.PriceFetcher
	validateCoins bool
}

// NewCryptocurrencyService crea el servicio del registro. Con validateCoins
// activo, create/update rechazan pares (symbol, platform) que el proveedor no conoce.
func NewCryptocurrencyService(
	repo interfaces.CryptocurrencyRepository,
	resolver interfaces.CoinResolver,
	fetcher interfaces.PriceFetcher,
	validateCoins bool,
) interfaces.CryptocurrencyService {
	return &cryptocurrencyService{
		repo:          repo,
		resolver:      resolver,
		fetcher:       fetcher,
		validateCoins: validateCoins,
	}
}

func (s *cryptocurrencyService) List(ctx context.Context, offset, limit int) ([]entities.Cryptocurrency, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	return s.repo.List(ctx, offset, limit)
}

func (s *cryptocurrencyService) Get(ctx context.Context, id uint) (*entities.Cryptocurrency, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *cryptocurrencyService) Create(ctx context.Context, symbol, platform string) (*entities.Cryptocurrency, error) {
	crypto := entities.NewCryptocurrency(symbol, platform)
	if err := validateEntry(crypto); err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, crypto, 0); err != nil {
		return nil, err
	}

	if err := s.ensureResolvable(ctx, crypto); err != nil {
		return nil, err
	}

	err := s.repo.Create(ctx, crypto)
	metrics.RecordRegistryOperation("create", err)
	if err != nil {
		return nil, err
	}

	logging.Business().RegistryChanged(ctx, "create", crypto.ID, crypto.Symbol, crypto.Platform)
	return crypto, nil
}

// Update aplica solo los campos presentes
func (s *cryptocurrencyService) Update(ctx context.Context, id uint, symbol, platform *string) (*entities.Cryptocurrency, error) {
	crypto, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *crypto
	if symbol != nil {
		updated.Symbol = entities.NormalizeSymbol(*symbol)
	}
	if platform != nil {
		updated.Platform = entities.NormalizePlatform(*platform)
	}

	if updated.Symbol == crypto.Symbol && updated.Platform == crypto.Platform {
		return crypto, nil
	}

	if err := validateEntry(&updated); err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, &updated, id); err != nil {
		return nil, err
	}

	if err := s.ensureResolvable(ctx, &updated); err != nil {
		return nil, err
	}

	err = s.repo.Update(ctx, &updated)
	metrics.RecordRegistryOperation("update", err)
	if err != nil {
		return nil, err
	}

	logging.Business().RegistryChanged(ctx, "update", updated.ID, updated.Symbol, updated.Platform)
	return &updated, nil
}

func (s *cryptocurrencyService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	metrics.RecordRegistryOperation("delete", err)
	if err == nil {
		logging.Business().RegistryChanged(ctx, "delete", id, "", "")
	}
	return err
}

// GetPrice resuelve registro -> coin-id -> precio
func (s *cryptocurrencyService) GetPrice(ctx context.Context, id uint, currency string) (*interfaces.CryptocurrencyPrice, error) {
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	crypto, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	coinID, found, err := s.resolver.GetCoinID(ctx, crypto.Symbol, crypto.Platform)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s on %s", entities.ErrCoinNotResolved, crypto.Symbol, crypto.Platform)
	}

	result, err := s.fetcher.GetPrice(ctx, coinID, currency)
	if err != nil {
		return nil, err
	}

	price, ok := result.Quote.Price(coinID, currency)
	if !result.HasData() || !ok {
		return nil, fmt.Errorf("%w: %s in %s", entities.ErrPriceNotAvailable, coinID, currency)
	}

	return &interfaces.CryptocurrencyPrice{
		Cryptocurrency: crypto,
		CoinID:         coinID,
		Currency:       currency,
		Price:          price,
		Result:         result,
	}, nil
}

func validateEntry(crypto *entities.Cryptocurrency) error {
	if crypto.Symbol == "" {
		return fmt.Errorf("%w: symbol is required", entities.ErrInvalidInput)
	}
	if crypto.Platform == "" {
		return fmt.Errorf("%w: platform is required", entities.ErrInvalidInput)
	}
	return nil
}

// ensureUnique verifica el par (symbol, platform) ignorando la entrada excludeID
func (s *cryptocurrencyService) ensureUnique(ctx context.Context, crypto *entities.Cryptocurrency, excludeID uint) error {
	existing, err := s.repo.GetBySymbolPlatform(ctx, crypto.Symbol, crypto.Platform)
	if err != nil {
		if errors.Is(err, entities.ErrCryptocurrencyNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return fmt.Errorf("%w: %s on %s", entities.ErrCryptocurrencyExists, crypto.Symbol, crypto.Platform)
	}
	return nil
}

func (s *cryptocurrencyService) ensureResolvable(ctx context.Context, crypto *entities.Cryptocurrency) error {
	if !s.validateCoins {
		return nil
	}

	_, found, err := s.resolver.GetCoinID(ctx, crypto.Symbol, crypto.Platform)
	if err != nil {
		return err
	}
	if !found {
		logging.Business().ValidationFailed(ctx, crypto.Symbol+"@"+crypto.Platform, "no provider coin matches symbol and platform")
		return fmt.Errorf("%w: %s on %s", entities.ErrCoinNotResolved, crypto.Symbol, crypto.Platform)
	}
	return nil
}
