package entities

import (
	"sort"
	"strings"
)

// Coin es una entrada del catálogo completo del proveedor (/coins/list?include_platform=true).
// Platforms mapea nombre de plataforma -> dirección del contrato.
type Coin struct {
	ID        string            `json:"id"`
	Symbol    string            `json:"symbol"`
	Name      string            `json:"name"`
	Platforms map[string]string `json:"platforms"`
}

// PlatformNames retorna las plataformas declaradas ordenadas. Una moneda sin
// plataformas (p.ej. bitcoin) se considera desplegada en sí misma: [ID].
func (c Coin) PlatformNames() []string {
	names := make([]string, 0, len(c.Platforms))
	for name := range c.Platforms {
		if name == "" {
			continue
		}
		names = append(names, name)
	}

	if len(names) == 0 {
		return []string{c.ID}
	}

	sort.Strings(names)
	return names
}

// MatchesSymbol compara símbolos sin distinguir mayúsculas
func (c Coin) MatchesSymbol(symbol string) bool {
	return strings.EqualFold(c.Symbol, strings.TrimSpace(symbol))
}

// HasPlatform compara la plataforma de forma exacta (case-sensitive)
func (c Coin) HasPlatform(platform string) bool {
	for _, name := range c.PlatformNames() {
		if name == platform {
			return true
		}
	}
	return false
}

// CoinPlatforms asocia un coin-id con sus plataformas
type CoinPlatforms struct {
	ID        string   `json:"id"`
	Platforms []string `json:"platforms"`
}

// CoinPlatformIndex conserva el orden del catálogo. Vacío significa símbolo desconocido.
type CoinPlatformIndex []CoinPlatforms

// IsEmpty indica que ningún coin coincide con el símbolo
func (idx CoinPlatformIndex) IsEmpty() bool {
	return len(idx) == 0
}

// Map retorna la vista coin-id -> plataformas
func (idx CoinPlatformIndex) Map() map[string][]string {
	m := make(map[string][]string, len(idx))
	for _, entry := range idx {
		m[entry.ID] = entry.Platforms
	}
	return m
}

// CoinIDFor retorna el primer coin (en orden de catálogo) desplegado en la plataforma.
func (idx CoinPlatformIndex) CoinIDFor(platform string) (string, bool) {
	for _, entry := range idx {
		for _, name := range entry.Platforms {
			if name == platform {
				return entry.ID, true
			}
		}
	}
	return "", false
}
