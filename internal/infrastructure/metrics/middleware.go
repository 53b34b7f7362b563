package metrics

import (
	"net/http"
	"strings"
	"time"
)

// HTTPMetricsMiddleware collects HTTP metrics for Prometheus
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		wrapped := &responseWriterMetrics{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		// Path normalizado para no disparar la cardinalidad con ids
		normalizedPath := normalizePath(r.URL.Path)

		next.ServeHTTP(wrapped, r)

		RecordHTTPRequest(r.Method, normalizedPath, wrapped.statusCode, time.Since(startTime).Seconds(), wrapped.written)
	})
}

// responseWriterMetrics wraps http.ResponseWriter to capture metrics
type responseWriterMetrics struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriterMetrics) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriterMetrics) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// normalizePath reemplaza los segmentos dinámicos por placeholders
func normalizePath(path string) string {
	if path == "/" {
		return "/"
	}

	path = strings.TrimSuffix(path, "/")
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")

	switch {
	case path == "/health", path == "/ready", path == "/metrics", path == "/favicon.ico":
		return path
	case strings.HasPrefix(path, "/swagger"), path == "/docs":
		return "/swagger"
	case strings.HasPrefix(path, "/static/"):
		return "/static/*"
	case path == "/api/cryptocurrencies":
		return path
	case strings.HasPrefix(path, "/api/cryptocurrencies/"):
		if len(segments) == 4 && segments[3] == "price" {
			return "/api/cryptocurrencies/{id}/price"
		}
		if len(segments) == 3 {
			return "/api/cryptocurrencies/{id}"
		}
		return "/api/cryptocurrencies/*"
	case strings.HasPrefix(path, "/api/coins/"):
		if len(segments) == 4 && segments[3] == "platforms" {
			return "/api/coins/{symbol}/platforms"
		}
		return "/api/coins/*"
	case strings.HasPrefix(path, "/api/"):
		return "/api/*"
	default:
		return "/unknown"
	}
}
