package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"crypto-registry-service/internal/domain/interfaces"
	"crypto-registry-service/internal/infrastructure/logging"

	"github.com/robfig/cron/v3"
)

const defaultWarmupTimeout = 2 * time.Minute

// CatalogWarmer mantiene caliente la entrada de cache del catálogo. Siempre
// pasa por el resolver, así que si el catálogo sigue en cache no descarga nada.
type CatalogWarmer struct {
	resolver   interfaces.CoinResolver
	cron       *cron.Cron
	spec       string
	timeout    time.Duration
	runOnStart bool
	enabled    bool

	// base se cancela en Stop; cubre tanto los ticks del cron como el run inicial
	base    context.Context
	cancel  context.CancelFunc
	running sync.WaitGroup
}

// Option personaliza el CatalogWarmer
type Option func(*CatalogWarmer)

// WithCron inyecta un cron ya configurado, útil en tests
func WithCron(c *cron.Cron) Option {
	return func(w *CatalogWarmer) {
		if c != nil {
			w.cron = c
		}
	}
}

// WithTimeout limita cada ejecución
func WithTimeout(timeout time.Duration) Option {
	return func(w *CatalogWarmer) {
		if timeout > 0 {
			w.timeout = timeout
		}
	}
}

// WithRunOnStart dispara una ejecución inmediata al arrancar
func WithRunOnStart(enabled bool) Option {
	return func(w *CatalogWarmer) {
		w.runOnStart = enabled
	}
}

// NewCatalogWarmer crea el job. Un spec vacío lo deshabilita.
func NewCatalogWarmer(resolver interfaces.CoinResolver, spec string, opts ...Option) *CatalogWarmer {
	w := &CatalogWarmer{
		resolver: resolver,
		spec:     strings.TrimSpace(spec),
		timeout:  defaultWarmupTimeout,
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.cron == nil {
		w.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	w.enabled = w.resolver != nil && w.spec != ""
	w.base, w.cancel = context.WithCancel(context.Background())
	return w
}

// Enabled indica si hay un schedule configurado
func (w *CatalogWarmer) Enabled() bool {
	return w.enabled
}

// Start registra el job y arranca el cron
func (w *CatalogWarmer) Start() error {
	if !w.enabled {
		logging.Info(context.Background(), "Catalog warm-up disabled", nil)
		return nil
	}

	if _, err := w.cron.AddFunc(w.spec, func() {
		_ = w.Run(w.base)
	}); err != nil {
		return fmt.Errorf("schedule catalog warm-up %q: %w", w.spec, err)
	}

	w.cron.Start()
	logging.Info(context.Background(), "Catalog warm-up scheduled", logging.Fields{
		"schedule": w.spec,
	})

	if w.runOnStart {
		w.running.Add(1)
		go func() {
			defer w.running.Done()
			_ = w.Run(w.base)
		}()
	}

	return nil
}

// Stop cancela los warm-ups en curso, detiene el cron y espera a que terminen
// (el job del cron y el run inicial) o a que venza ctx
func (w *CatalogWarmer) Stop(ctx context.Context) error {
	w.cancel()
	if !w.enabled {
		return nil
	}

	cronDone := w.cron.Stop()
	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		w.running.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("catalog warm-up did not stop: %w", ctx.Err())
	}
}

// Run ejecuta un warm-up. Los errores se loguean; el próximo tick reintenta.
func (w *CatalogWarmer) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	ctx = logging.WithRequestID(ctx, "catalog-warmup")
	start := time.Now()

	coins, err := w.resolver.GetAllCoinsPlatforms(ctx)
	if err != nil {
		logging.WarnWithError(ctx, "Catalog warm-up failed", err, logging.NewFieldBuilder().
			WithDuration(time.Since(start)).
			Build())
		return err
	}

	logging.Debug(ctx, "Catalog warm-up completed", logging.NewFieldBuilder().
		WithDuration(time.Since(start)).
		WithCustomField(logging.FieldCatalogCoins, len(coins)).
		Build())
	return nil
}
