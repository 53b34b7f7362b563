package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"crypto-registry-service/internal/application/dto"
	"crypto-registry-service/internal/domain/interfaces"
	"crypto-registry-service/internal/infrastructure/logging"
)

const readinessTimeout = 2 * time.Second

// HealthHandler maneja los endpoints de health check
type HealthHandler struct {
	dependencies map[string]interfaces.Pinger
}

// NewHealthHandler recibe las dependencias a verificar en /ready, por nombre
func NewHealthHandler(dependencies map[string]interfaces.Pinger) *HealthHandler {
	return &HealthHandler{
		dependencies: dependencies,
	}
}

// Health godoc
// @Summary Basic health check
// @Description Verifies that the service is running. Responds quickly without checking external dependencies.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is running correctly"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{
		"service": "running",
	}

	writeJSONResponse(r.Context(), w, http.StatusOK, dto.NewHealthResponse("healthy", services))
}

// Ready godoc
// @Summary Readiness check
// @Description Pings the cache backend and the registry database. The price provider is not checked: its failures are covered by the stale fallback.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is ready to receive traffic"
// @Failure 503 {object} dto.HealthResponse "Service is not ready - dependencies are failing"
// @Router /ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(h.dependencies))
	for name := range h.dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	services := make(map[string]string, len(names)+1)
	ready := true
	for _, name := range names {
		if err := h.dependencies[name].Ping(ctx); err != nil {
			logging.WarnWithError(ctx, "Readiness dependency failing", err, logging.Fields{
				"dependency": name,
			})
			services[name] = "error: " + err.Error()
			ready = false
			continue
		}
		services[name] = "ready"
	}

	if !ready {
		writeJSONResponse(r.Context(), w, http.StatusServiceUnavailable, dto.NewHealthResponse("unhealthy", services))
		return
	}

	services["service"] = "ready"
	writeJSONResponse(r.Context(), w, http.StatusOK, dto.NewHealthResponse("ready", services))
}
