package middleware

import (
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"crypto-registry-service/internal/application/dto"
	"crypto-registry-service/internal/infrastructure/logging"
	"crypto-registry-service/internal/infrastructure/metrics"

	"golang.org/x/time/rate"
)

const (
	defaultIdleTTL         = 30 * time.Minute
	defaultCleanupInterval = 10 * time.Minute
)

// RateLimiter limita requests entrantes por cliente (IP) con un token bucket
// de x/time/rate por cliente
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter

	limit rate.Limit
	burst int

	skipPaths       map[string]bool
	idleTTL         time.Duration
	cleanupInterval time.Duration
	lastCleanup     time.Time
	now             func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter crea el limitador. requestsPerSecond es el ritmo sostenido y
// burst la capacidad del bucket.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}

	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
		// operational endpoints are never throttled
		skipPaths: map[string]bool{
			"/health":  true,
			"/ready":   true,
			"/metrics": true,
		},
		idleTTL:         defaultIdleTTL,
		cleanupInterval: defaultCleanupInterval,
		lastCleanup:     time.Now(),
		now:             time.Now,
	}
}

// Handler returns the HTTP middleware handler
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.skipPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		clientID := clientIDFromRequest(r)
		limiter := rl.limiterFor(clientID)

		allowed := limiter.AllowN(rl.now(), 1)
		metrics.RecordRateLimitResult(allowed)

		if !allowed {
			logging.Warn(r.Context(), "Rate limit exceeded", logging.Fields{
				"client_id":                clientID,
				logging.FieldHTTPMethod:    r.Method,
				logging.FieldHTTPPath:      r.URL.Path,
				logging.FieldHTTPUserAgent: r.UserAgent(),
			})
			rl.writeRateLimitError(w, limiter)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(limiter.TokensAt(rl.now()))))
		next.ServeHTTP(w, r)
	})
}

// Clients retorna cuántos clientes tienen bucket activo
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) limiterFor(clientID string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.maybeCleanup(now)

	client, ok := rl.clients[clientID]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[clientID] = client
	}
	client.lastSeen = now
	return client.limiter
}

// maybeCleanup descarta buckets de clientes inactivos. Requiere el lock tomado.
func (rl *RateLimiter) maybeCleanup(now time.Time) {
	if now.Sub(rl.lastCleanup) < rl.cleanupInterval {
		return
	}

	for id, client := range rl.clients {
		if now.Sub(client.lastSeen) > rl.idleTTL {
			delete(rl.clients, id)
		}
	}
	rl.lastCleanup = now
}

func (rl *RateLimiter) writeRateLimitError(w http.ResponseWriter, limiter *rate.Limiter) {
	retryAfter := 1
	if rl.limit > 0 {
		missing := 1 - limiter.TokensAt(rl.now())
		retryAfter = int(math.Ceil(missing / float64(rl.limit)))
		if retryAfter < 1 {
			retryAfter = 1
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	w.WriteHeader(http.StatusTooManyRequests)

	_ = json.NewEncoder(w).Encode(dto.NewErrorResponseWithCode(
		"RATE_LIMIT_EXCEEDED",
		fmt.Sprintf("rate limit exceeded, retry in %ds", retryAfter),
		strconv.Itoa(http.StatusTooManyRequests),
	))
}

// clientIDFromRequest usa la primera IP de X-Forwarded-For, luego X-Real-IP y
// por último RemoteAddr sin puerto
func clientIDFromRequest(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
