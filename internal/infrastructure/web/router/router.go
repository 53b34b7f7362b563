package router

import (
	"net/http"
	"path/filepath"

	_ "crypto-registry-service/internal/docs" // registra la spec swagger
	"crypto-registry-service/internal/infrastructure/metrics"
	"crypto-registry-service/internal/infrastructure/web/handlers"
	"crypto-registry-service/internal/infrastructure/web/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers agrupa los handlers que expone el router
type Handlers struct {
	Cryptocurrency *handlers.CryptocurrencyHandler
	Coin           *handlers.CoinHandler
	Health         *handlers.HealthHandler
}

// Options configura lo que no son endpoints de la API. StaticDir vacío desactiva
// la UI; RateLimiter nil desactiva el límite por cliente.
type Options struct {
	StaticDir   string
	RateLimiter *middleware.RateLimiter
}

// New arma el router con la cadena de middleware completa. La cadena envuelve
// al router entero para cubrir también 404 y preflight CORS.
func New(h Handlers, opts Options) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	// API en el router raíz: con un Subrouter el 405 se pierde y sale 404
	r.HandleFunc("/api/cryptocurrencies", h.Cryptocurrency.List).Methods(http.MethodGet)
	r.HandleFunc("/api/cryptocurrencies", h.Cryptocurrency.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/cryptocurrencies/{id}", h.Cryptocurrency.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/cryptocurrencies/{id}", h.Cryptocurrency.Update).Methods(http.MethodPut)
	r.HandleFunc("/api/cryptocurrencies/{id}", h.Cryptocurrency.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/api/cryptocurrencies/{id}/price", h.Cryptocurrency.GetPrice).Methods(http.MethodGet)
	r.HandleFunc("/api/coins/{symbol}/platforms", h.Coin.GetPlatforms).Methods(http.MethodGet)

	r.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.Health.Ready).Methods(http.MethodGet)

	// Monitoring endpoints
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Documentation endpoints
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.HandleFunc("/docs", redirectToSwagger)
	r.HandleFunc("/docs/", redirectToSwagger)

	if opts.StaticDir != "" {
		registerStatic(r, opts.StaticDir)
	}

	var handler http.Handler = r
	if opts.RateLimiter != nil {
		handler = opts.RateLimiter.Handler(handler)
	}
	handler = middleware.CORSMiddleware(handler)
	handler = metrics.HTTPMetricsMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestTracingMiddleware(handler)
	return handler
}

func redirectToSwagger(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
}

// registerStatic sirve la UI: index en /, assets en /static/ y el favicon svg
func registerStatic(r *mux.Router, dir string) {
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(dir))),
	).Methods(http.MethodGet, http.MethodHead)

	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(dir, "index.html"))
	}).Methods(http.MethodGet, http.MethodHead)

	r.HandleFunc("/favicon.ico", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		http.ServeFile(w, req, filepath.Join(dir, "favicon.svg"))
	}).Methods(http.MethodGet, http.MethodHead)
}
