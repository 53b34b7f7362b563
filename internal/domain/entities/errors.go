package entities

import "errors"

var (
	// ErrCryptocurrencyNotFound la entrada del registro no existe
	ErrCryptocurrencyNotFound = errors.New("cryptocurrency not found")
	// ErrCryptocurrencyExists el par (symbol, platform) ya está registrado
	ErrCryptocurrencyExists = errors.New("cryptocurrency already exists")
	// ErrInvalidInput datos de entrada inválidos
	ErrInvalidInput = errors.New("invalid input")
	// ErrCoinNotResolved el par (symbol, platform) no corresponde a ningún coin del proveedor
	ErrCoinNotResolved = errors.New("coin not resolved for symbol and platform")
	// ErrPriceNotAvailable ni el proveedor ni el cache tienen precio
	ErrPriceNotAvailable = errors.New("price not available")
)
