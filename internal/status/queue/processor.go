// Package queue fans bulk requests out to background resolution.
package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"statusgate/internal/status/metrics"
	"statusgate/internal/status/models"
	"statusgate/pkg/requestcontext"
)

// Publisher hands one subject to background resolution.
type Publisher interface {
	Publish(ctx context.Context, subject string) error
}

// Resolver is satisfied by the status service.
type Resolver interface {
	Resolve(ctx context.Context, raw string) models.Outcome
}

// Processor resolves one queued subject and logs the outcome. It never
// fails: the caller acknowledges the message once Handle returns.
type Processor struct {
	resolver Resolver
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewProcessor(resolver Resolver, timeout time.Duration, logger *slog.Logger, m *metrics.Metrics) *Processor {
	return &Processor{resolver: resolver, timeout: timeout, logger: logger, metrics: m}
}

func (p *Processor) Handle(ctx context.Context, subject string) models.Outcome {
	ctx = requestcontext.WithRequestID(ctx, uuid.NewString())
	ctx = requestcontext.WithTime(ctx, time.Now())
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	out := p.resolver.Resolve(ctx, subject)
	p.metrics.IncrementConsumed(string(out.Kind))
	p.logger.InfoContext(ctx, "queued status resolved",
		"request_id", requestcontext.RequestID(ctx),
		"subject", subject,
		"outcome", out.Kind,
		"message", out.Message,
		"colour", out.ColorCode,
	)
	return out
}
