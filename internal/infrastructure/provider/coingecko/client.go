package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"crypto-registry-service/internal/domain/entities"
	"crypto-registry-service/internal/infrastructure/logging"
	"crypto-registry-service/internal/infrastructure/metrics"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL      = "https://api.coingecko.com/api/v3"
	DefaultTimeout      = 10 * time.Second
	DefaultAPIKeyHeader = "x-cg-demo-api-key"
	DefaultUserAgent    = "crypto-registry-service/1.0"

	serviceName = "coingecko"

	endpointCoinsList   = "/coins/list"
	endpointSimplePrice = "/simple/price"
)

// Options configura el cliente. RequestsPerMinute <= 0 desactiva el throttle.
type Options struct {
	BaseURL           string
	APIKey            string
	APIKeyHeader      string
	Timeout           time.Duration
	RequestsPerMinute int
	UserAgent         string
}

// Client implementa interfaces.CoinProvider contra la API pública de CoinGecko.
// No reintenta: un fallo se reporta al caller, que decide el fallback.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	log     logging.ExternalAPILogger
}

// NewClient crea una nueva instancia del cliente
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", opts.UserAgent)

	if opts.APIKey != "" {
		header := opts.APIKeyHeader
		if header == "" {
			header = DefaultAPIKeyHeader
		}
		rc.SetHeader(header, opts.APIKey)
	}

	return &Client{
		resty:   rc,
		limiter: newLimiter(opts.RequestsPerMinute),
		log:     logging.ExternalAPI(),
	}
}

func newLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}

	burst := requestsPerMinute / 6
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), burst)
}

// GetCoinsList descarga el catálogo completo con plataformas
func (c *Client) GetCoinsList(ctx context.Context) ([]entities.Coin, error) {
	var coins []entities.Coin
	err := c.get(ctx, endpointCoinsList, map[string]string{
		"include_platform": "true",
	}, &coins)
	if err != nil {
		return nil, err
	}
	// el catálogo se cachea un día: un body vacío o "null" no puede pasar como éxito
	if coins == nil {
		return nil, fmt.Errorf("%w: GET %s: empty coin catalog", ErrUpstreamUnavailable, endpointCoinsList)
	}
	return coins, nil
}

// GetSimplePrice consulta /simple/price. Un coin desconocido no es error:
// el proveedor simplemente lo omite de la respuesta.
func (c *Client) GetSimplePrice(ctx context.Context, coinIDs []string, currency string) (entities.PriceQuote, error) {
	if len(coinIDs) == 0 {
		return entities.PriceQuote{}, nil
	}

	quote := entities.PriceQuote{}
	err := c.get(ctx, endpointSimplePrice, map[string]string{
		"ids":           strings.Join(coinIDs, ","),
		"vs_currencies": strings.ToLower(currency),
	}, &quote)
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query map[string]string, result interface{}) error {
	waitStart := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: waiting for rate limiter: %w", ErrUpstreamUnavailable, err)
	}
	waited := time.Since(waitStart)
	metrics.RecordThrottleWait(serviceName, waited.Seconds())
	c.log.Throttled(ctx, serviceName, float64(waited.Milliseconds()))

	c.log.RequestStarted(ctx, serviceName, endpoint, http.MethodGet)

	start := time.Now()
	resp, err := c.resty.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(result).
		ForceContentType("application/json").
		Get(endpoint)
	duration := time.Since(start)
	durationMs := float64(duration.Nanoseconds()) / 1e6

	if err != nil {
		metrics.RecordExternalAPICall(serviceName, endpoint, 0, duration.Seconds())
		c.log.RequestFailed(ctx, serviceName, endpoint, 0, err, durationMs)
		return fmt.Errorf("%w: GET %s: %w", ErrUpstreamUnavailable, endpoint, err)
	}

	status := resp.StatusCode()
	metrics.RecordExternalAPICall(serviceName, endpoint, status, duration.Seconds())

	if !resp.IsSuccess() {
		statusErr := fmt.Errorf("%w: GET %s: HTTP %d", ErrUpstreamUnavailable, endpoint, status)
		if status == http.StatusTooManyRequests {
			statusErr = fmt.Errorf("%w: GET %s: HTTP %d: %w", ErrUpstreamUnavailable, endpoint, status, ErrRateLimited)
		}
		c.log.RequestFailed(ctx, serviceName, endpoint, status, statusErr, durationMs)
		return statusErr
	}

	c.log.RequestCompleted(ctx, serviceName, endpoint, status, durationMs)
	return nil
}
