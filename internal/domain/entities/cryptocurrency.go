package entities

import (
	"strings"
	"time"
)

// Cryptocurrency es una entrada del registro: un símbolo desplegado en una plataforma concreta.
// El par (Symbol, Platform) es único.
type Cryptocurrency struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Symbol    string    `json:"symbol" gorm:"size:32;not null;uniqueIndex:idx_cryptocurrency_symbol_platform"`
	Platform  string    `json:"platform" gorm:"size:128;not null;uniqueIndex:idx_cryptocurrency_symbol_platform"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName mantiene el nombre de tabla histórico
func (Cryptocurrency) TableName() string {
	return "cryptocurrency"
}

func NewCryptocurrency(symbol, platform string) *Cryptocurrency {
	return &Cryptocurrency{
		Symbol:   NormalizeSymbol(symbol),
		Platform: NormalizePlatform(platform),
	}
}

// NormalizeSymbol deja el símbolo en minúsculas y sin espacios.
func NormalizeSymbol(symbol string) string {
	return strings.ToLower(strings.TrimSpace(symbol))
}

// NormalizePlatform solo recorta espacios; la comparación de plataformas es exacta.
func NormalizePlatform(platform string) string {
	return strings.TrimSpace(platform)
}
