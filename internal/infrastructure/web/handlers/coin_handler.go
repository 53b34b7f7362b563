package handlers

import (
	"net/http"
	"strings"

	"crypto-registry-service/internal/application/dto"
	"crypto-registry-service/internal/domain/interfaces"
	"crypto-registry-service/internal/infrastructure/logging"

	"github.com/gorilla/mux"
)

// CoinHandler expone el catálogo del proveedor
type CoinHandler struct {
	resolver interfaces.CoinResolver
	mapper   *dto.CryptocurrencyMapper
}

func NewCoinHandler(resolver interfaces.CoinResolver) *CoinHandler {
	return &CoinHandler{
		resolver: resolver,
		mapper:   dto.NewCryptocurrencyMapper(),
	}
}

// GetPlatforms godoc
// @Summary Platforms available for a symbol
// @Description Lists provider coins whose symbol matches (case-insensitive) and the platforms each one is deployed on. An empty list means the symbol is unknown.
// @Tags coins
// @Produce json
// @Param symbol path string true "Coin symbol" example(usdc)
// @Success 200 {object} dto.CoinPlatformsResponse
// @Failure 503 {object} dto.ErrorResponse "Catalog unavailable"
// @Router /api/coins/{symbol}/platforms [get]
func (h *CoinHandler) GetPlatforms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	symbol := strings.ToLower(strings.TrimSpace(mux.Vars(r)["symbol"]))

	index, err := h.resolver.GetCoinsPlatforms(ctx, symbol)
	if err != nil {
		writeServiceError(ctx, w, err, logging.Fields{logging.FieldSymbol: symbol})
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, h.mapper.ToCoinPlatformsResponse(symbol, index))
}
