package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"statusgate/internal/platform/config"
	"statusgate/internal/platform/httpserver"
	"statusgate/internal/platform/logger"
	platformmetrics "statusgate/internal/platform/metrics"
	"statusgate/internal/platform/secrets"
	"statusgate/internal/status/handler"
	statusmetrics "statusgate/internal/status/metrics"
	"statusgate/internal/status/provider"
	"statusgate/internal/status/queue"
	"statusgate/internal/status/service"
	"statusgate/pkg/platform/circuit"
)

// main loads config and credentials, wires the resolver behind the HTTP
// adapter and the queue consumer, and runs both until a signal arrives.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Logger)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("statusgate stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	creds, err := secrets.FromConfig(cfg.Secrets).Load(ctx)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}

	stores, err := buildStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stores.Close()

	platformmetrics.New().RecordStartup(cfg.Store.Backend, cfg.Queue.Backend)
	m := statusmetrics.New()

	opts := []provider.Option{
		provider.WithReason(cfg.Provider.Reason),
		provider.WithObserver(m),
	}
	if cfg.Provider.BreakerFailures > 0 {
		opts = append(opts, provider.WithBreaker(circuit.New("provider",
			circuit.WithFailureThreshold(cfg.Provider.BreakerFailures),
			circuit.WithCooldown(cfg.Provider.BreakerCooldown),
		)))
	}
	client := provider.NewHTTPClient(cfg.Provider.BaseURL, cfg.Provider.Timeout, opts...)
	decoder := provider.NewPayloadDecoder(creds.PayloadSecret)

	newService := func(p service.Provider, resolveTimeout time.Duration) *service.Service {
		return service.New(p, decoder, stores.resolved, stores.pending, creds,
			service.WithLogger(log),
			service.WithMetrics(m),
			service.WithTTLs(cfg.Status.PendingTTL, cfg.Status.ResolvedTTL),
			service.WithResolveTimeout(resolveTimeout),
		)
	}
	interactive := newService(client, 0)
	background := newService(client.WithTimeout(cfg.Queue.ProviderTimeout), cfg.Queue.ResolveTimeout)

	processor := queue.NewProcessor(background, cfg.Queue.ResolveTimeout, log, m)
	bus, err := buildQueue(ctx, cfg, processor, log)
	if err != nil {
		return err
	}
	defer bus.Close()

	h := handler.New(interactive, bus.publisher, log, m)
	srv := httpserver.New(cfg.Server, newRouter(h, stores, log))

	log.Info("starting statusgate",
		"addr", cfg.Server.Addr,
		"store", cfg.Store.Backend,
		"queue", cfg.Queue.Backend,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, srv, cfg.Server, log)
	})
	g.Go(func() error {
		err := bus.run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	return g.Wait()
}
