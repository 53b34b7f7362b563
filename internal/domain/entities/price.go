package entities

import "strings"

// PriceQuote es la forma de /simple/price: coin-id -> moneda -> precio.
type PriceQuote map[string]map[string]float64

// Has indica si el quote trae datos para el coin
func (q PriceQuote) Has(coinID string) bool {
	if q == nil {
		return false
	}
	prices, ok := q[coinID]
	return ok && len(prices) > 0
}

// Price retorna el precio del coin en la moneda indicada
func (q PriceQuote) Price(coinID, currency string) (float64, bool) {
	if !q.Has(coinID) {
		return 0, false
	}
	price, ok := q[coinID][strings.ToLower(currency)]
	return price, ok
}

// QuoteStatus discrimina el origen de un resultado de precio
type QuoteStatus string

const (
	// QuoteFresh viene del proveedor en esta misma llamada
	QuoteFresh QuoteStatus = "fresh"
	// QuoteStale viene del cache porque el proveedor falló o no trajo datos
	QuoteStale QuoteStatus = "stale"
	// QuoteEmpty: ni proveedor ni cache tienen datos
	QuoteEmpty QuoteStatus = "empty"
)

// PriceResult es el resultado de una consulta de precio. Los fallos duros
// se reportan como error aparte, nunca como un resultado.
type PriceResult struct {
	Status QuoteStatus `json:"status"`
	Quote  PriceQuote  `json:"quote,omitempty"`
	// Cause es el fallo del proveedor que provocó un resultado Stale, si lo hubo
	Cause error `json:"-"`
}

func FreshResult(quote PriceQuote) PriceResult {
	return PriceResult{Status: QuoteFresh, Quote: quote}
}

func StaleResult(quote PriceQuote, cause error) PriceResult {
	return PriceResult{Status: QuoteStale, Quote: quote, Cause: cause}
}

func EmptyResult() PriceResult {
	return PriceResult{Status: QuoteEmpty}
}

// IsStale indica que el precio viene de cache
func (r PriceResult) IsStale() bool {
	return r.Status == QuoteStale
}

// HasData indica si el resultado trae precio utilizable
func (r PriceResult) HasData() bool {
	return r.Status != QuoteEmpty
}
