package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"crypto-registry-service/internal/application/dto"
	"crypto-registry-service/internal/application/services"
	"crypto-registry-service/internal/domain/entities"
	"crypto-registry-service/internal/domain/interfaces"
	"crypto-registry-service/internal/infrastructure/logging"

	"github.com/gorilla/mux"
)

// maxBodyBytes limita el body de POST/PUT
const maxBodyBytes = 64 << 10

// CryptocurrencyHandler handles the registry endpoints under /api/cryptocurrencies
type CryptocurrencyHandler struct {
	service interfaces.CryptocurrencyService
	mapper  *dto.CryptocurrencyMapper
}

// NewCryptocurrencyHandler creates a new instance of the registry handler
func NewCryptocurrencyHandler(service interfaces.CryptocurrencyService) *CryptocurrencyHandler {
	return &CryptocurrencyHandler{
		service: service,
		mapper:  dto.NewCryptocurrencyMapper(),
	}
}

// List godoc
// @Summary List registered cryptocurrencies
// @Description Returns a page of the registry ordered by id.
// @Tags cryptocurrencies
// @Produce json
// @Param offset query int false "Items to skip" default(0) minimum(0)
// @Param limit query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.CryptocurrencyListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination parameters"
// @Router /api/cryptocurrencies [get]
func (h *CryptocurrencyHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query, err := dto.NewListQuery(r.URL.Query().Get("offset"), r.URL.Query().Get("limit"))
	if err != nil {
		writeServiceError(ctx, w, err, nil)
		return
	}

	limit := query.Limit
	if limit == 0 {
		limit = services.DefaultPageLimit
	}
	if limit > services.MaxPageLimit {
		limit = services.MaxPageLimit
	}

	items, total, err := h.service.List(ctx, query.Offset, limit)
	if err != nil {
		writeServiceError(ctx, w, err, nil)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, h.mapper.ToListResponse(items, total, query.Offset, limit))
}

// Create godoc
// @Summary Register a cryptocurrency
// @Description Registers a (symbol, platform) pair. When coin validation is enabled the pair must resolve to a provider coin.
// @Tags cryptocurrencies
// @Accept json
// @Produce json
// @Param request body dto.CreateCryptocurrencyRequest true "Symbol and platform"
// @Success 201 {object} dto.CryptocurrencyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid body"
// @Failure 409 {object} dto.ErrorResponse "Pair already registered"
// @Failure 422 {object} dto.ErrorResponse "Pair does not match any provider coin"
// @Failure 503 {object} dto.ErrorResponse "Provider or cache unavailable"
// @Router /api/cryptocurrencies [post]
func (h *CryptocurrencyHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request dto.CreateCryptocurrencyRequest
	if err := decodeBody(w, r, &request); err != nil {
		writeServiceError(ctx, w, err, nil)
		return
	}

	if err := request.Validate(); err != nil {
		logging.Business().ValidationFailed(ctx, request.Symbol+"@"+request.Platform, err.Error())
		writeServiceError(ctx, w, err, nil)
		return
	}

	crypto, err := h.service.Create(ctx, request.Symbol, request.Platform)
	if err != nil {
		writeServiceError(ctx, w, err, logging.Fields{
			logging.FieldSymbol:   request.Symbol,
			logging.FieldPlatform: request.Platform,
		})
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/cryptocurrencies/%d", crypto.ID))
	writeJSONResponse(ctx, w, http.StatusCreated, h.mapper.ToResponse(crypto))
}

// Get godoc
// @Summary Get a registered cryptocurrency
// @Tags cryptocurrencies
// @Produce json
// @Param id path int true "Registry id"
// @Success 200 {object} dto.CryptocurrencyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /api/cryptocurrencies/{id} [get]
func (h *CryptocurrencyHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := dto.ParseID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(ctx, w, err, nil)
		return
	}

	crypto, err := h.service.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, w, err, logging.Fields{logging.FieldCryptoID: id})
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, h.mapper.ToResponse(crypto))
}

// Update godoc
// @Summary Update a registered cryptocurrency
// @Description Partial update; absent fields keep their value.
// @Tags cryptocurrencies
// @Accept json
// @Produce json
// @Param id path int true "Registry id"
// @Param request body dto.UpdateCryptocurrencyRequest true "Fields to change"
// @Success 200 {object} dto.CryptocurrencyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid id or body"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 409 {object} dto.ErrorResponse "Pair already registered"
// @Failure 422 {object} dto.ErrorResponse "Pair does not match any provider coin"
// @Router /api/cryptocurrencies/{id} [put]
func (h *CryptocurrencyHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := dto.ParseID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(ctx, w, err, nil)
		return
	}

	var request dto.UpdateCryptocurrencyRequest
	if err := decodeBody(w, r, &request); err != nil {
		writeServiceError(ctx, w, err, nil)
		return
	}

	if err := request.Validate(); err != nil {
		writeServiceError(ctx, w, err, logging.Fields{logging.FieldCryptoID: id})
		return
	}

	crypto, err := h.service.Update(ctx, id, request.Symbol, request.Platform)
	if err != nil {
		writeServiceError(ctx, w, err, logging.Fields{logging.FieldCryptoID: id})
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, h.mapper.ToResponse(crypto))
}

// Delete godoc
// @Summary Delete a registered cryptocurrency
// @Tags cryptocurrencies
// @Param id path int true "Registry id"
// @Success 204 "Deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /api/cryptocurrencies/{id} [delete]
func (h *CryptocurrencyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := dto.ParseID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(ctx, w, err, nil)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		writeServiceError(ctx, w, err, logging.Fields{logging.FieldCryptoID: id})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetPrice godoc
// @Summary Current price of a registered cryptocurrency
// @Description Resolves the entry to a provider coin and returns its price. When the provider fails the last cached price is served with stale=true.
// @Tags cryptocurrencies
// @Produce json
// @Param id path int true "Registry id"
// @Param currency query string false "Quote currency" default(usd)
// @Success 200 {object} dto.PriceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid id or currency"
// @Failure 404 {object} dto.ErrorResponse "Entry unknown, coin not resolved or no price available"
// @Failure 503 {object} dto.ErrorResponse "Provider unavailable and nothing cached"
// @Router /api/cryptocurrencies/{id}/price [get]
func (h *CryptocurrencyHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := dto.ParseID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(ctx, w, err, nil)
		return
	}

	currency, err := dto.ParseCurrency(r.URL.Query().Get("currency"), services.DefaultCurrency)
	if err != nil {
		writeServiceError(ctx, w, err, nil)
		return
	}

	price, err := h.service.GetPrice(ctx, id, currency)
	if err != nil {
		fields := logging.Fields{logging.FieldCryptoID: id, logging.FieldCurrency: currency}
		// en lectura un par sin coin es simplemente "no encontrado"
		if errors.Is(err, entities.ErrCoinNotResolved) {
			logging.InfoWithError(ctx, "Request rejected", err, fields)
			writeErrorResponse(ctx, w, http.StatusNotFound, "COIN_NOT_RESOLVED", err.Error())
			return
		}
		writeServiceError(ctx, w, err, fields)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, h.mapper.ToPriceResponse(price))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", entities.ErrInvalidInput, err)
	}
	return nil
}
