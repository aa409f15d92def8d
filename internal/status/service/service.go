// Package service resolves a subject's verification status against the
// cached result, any in-flight provider workflow, and the provider itself.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"statusgate/internal/platform/secrets"
	"statusgate/internal/status/metrics"
	"statusgate/internal/status/models"
	"statusgate/internal/status/provider"
	"statusgate/pkg/domain"
	"statusgate/pkg/platform/sentinel"
	"statusgate/pkg/requestcontext"
)

// Provider is the verification provider's three-call workflow.
type Provider interface {
	ObtainToken(ctx context.Context, apiKey, username, password string) (string, error)
	SubmitRequest(ctx context.Context, apiKey, token string, subject domain.SubjectID, traceID string) (string, error)
	FetchStatus(ctx context.Context, apiKey, token, requestID string) (provider.StatusResult, error)
}

// PayloadDecoder verifies the signed payload of an approved status.
type PayloadDecoder interface {
	Decode(signed string) (provider.Payload, error)
}

// ResolvedStore returns sentinel.ErrNotFound for absent subjects.
type ResolvedStore interface {
	Find(ctx context.Context, id domain.SubjectID) (*models.ResolvedStatus, error)
	Save(ctx context.Context, record *models.ResolvedStatus) error
	Delete(ctx context.Context, id domain.SubjectID) error
	List(ctx context.Context) ([]models.ResolvedStatus, error)
}

// PendingStore returns sentinel.ErrNotFound for absent subjects.
type PendingStore interface {
	Find(ctx context.Context, id domain.SubjectID) (*models.PendingRequest, error)
	Save(ctx context.Context, request *models.PendingRequest) error
	Delete(ctx context.Context, id domain.SubjectID) error
}

const (
	DefaultPendingTTL     = 54 * time.Minute              // 0.9 hours
	DefaultResolvedTTL    = 21*time.Hour + 36*time.Minute // 0.9 days
	DefaultResolveTimeout = 30 * time.Second
)

// Service is safe for concurrent use. Concurrent resolutions of the same
// subject within one process share a single run; separate processes may
// still race and overwrite each other's pending record.
type Service struct {
	provider Provider
	decoder  PayloadDecoder
	resolved ResolvedStore
	pending  PendingStore
	creds    secrets.Credentials

	pendingTTL     time.Duration
	resolvedTTL    time.Duration
	resolveTimeout time.Duration
	traceID        func(time.Time) string

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	flights singleflight.Group
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTTLs overrides the record lifetimes; zero keeps the default.
func WithTTLs(pendingTTL, resolvedTTL time.Duration) Option {
	return func(s *Service) {
		if pendingTTL > 0 {
			s.pendingTTL = pendingTTL
		}
		if resolvedTTL > 0 {
			s.resolvedTTL = resolvedTTL
		}
	}
}

// WithResolveTimeout bounds one shared resolution run. The run outlives any
// single caller, so this is its only deadline.
func WithResolveTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.resolveTimeout = d
		}
	}
}

func WithTraceIDGenerator(gen func(time.Time) string) Option {
	return func(s *Service) {
		if gen != nil {
			s.traceID = gen
		}
	}
}

func New(p Provider, decoder PayloadDecoder, resolved ResolvedStore, pending PendingStore, creds secrets.Credentials, opts ...Option) *Service {
	s := &Service{
		provider:       p,
		decoder:        decoder,
		resolved:       resolved,
		pending:        pending,
		creds:          creds,
		pendingTTL:     DefaultPendingTTL,
		resolvedTTL:    DefaultResolvedTTL,
		resolveTimeout: DefaultResolveTimeout,
		traceID:        provider.NewTraceID,
		logger:         slog.Default(),
		tracer:         otel.Tracer("statusgate/status"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve never returns an error; every failure is folded into the outcome.
func (s *Service) Resolve(ctx context.Context, raw string) models.Outcome {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "status.Resolve")
	defer span.End()

	var outcome models.Outcome
	id, err := domain.ParseSubjectID(raw)
	if err != nil {
		outcome = models.InvalidInput(raw)
	} else {
		outcome = s.join(ctx, span, id)
	}

	span.SetAttributes(attribute.String("status.outcome", string(outcome.Kind)))
	s.metrics.IncrementOutcome(string(outcome.Kind))
	s.metrics.ObserveResolveLatency(time.Since(start))
	s.logger.InfoContext(ctx, "status resolved",
		"request_id", requestcontext.RequestID(ctx),
		"subject", raw,
		"outcome", outcome.Kind,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return outcome
}

// join waits for the subject's shared run, starting one if none is in
// flight. The run is detached from the caller that started it; a caller that
// goes away gets an upstream failure while the others keep waiting.
func (s *Service) join(ctx context.Context, span trace.Span, id domain.SubjectID) models.Outcome {
	ch := s.flights.DoChan(id.String(), func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.resolveTimeout)
		defer cancel()
		return s.resolve(runCtx, id), nil
	})
	select {
	case res := <-ch:
		span.SetAttributes(attribute.Bool("status.shared", res.Shared))
		return res.Val.(models.Outcome)
	case <-ctx.Done():
		s.logger.WarnContext(ctx, "caller left before status resolved",
			"request_id", requestcontext.RequestID(ctx),
			"subject", id.String(),
			"error", ctx.Err(),
		)
		return models.UpstreamFailure(id.String(), models.MessageRequestFailure)
	}
}

func (s *Service) resolve(ctx context.Context, id domain.SubjectID) models.Outcome {
	subject := id.String()
	log := s.logger.With("request_id", requestcontext.RequestID(ctx), "subject", subject)

	if rec := s.cachedApproval(ctx, log, id); rec != nil {
		return models.Success(subject, rec.Message, rec.ColorCode)
	}

	req := s.livePending(ctx, log, id)
	if req == nil {
		var failure *models.Outcome
		req, failure = s.startRequest(ctx, log, id)
		if failure != nil {
			return *failure
		}
	}

	result, err := s.provider.FetchStatus(ctx, s.creds.APIKey, req.Token, req.RequestID)
	if err != nil {
		log.WarnContext(ctx, "failed to fetch status from provider",
			"provider_request_id", req.RequestID,
			"category", provider.CategoryOf(err),
			"error", err,
		)
		return models.UpstreamFailure(subject, models.MessageStatusFailure)
	}

	switch result.State {
	case models.RequestStatePending:
		return models.Pending(subject)

	case models.RequestStateApproved:
		payload, err := s.decoder.Decode(result.SignedPayload)
		if err != nil {
			log.ErrorContext(ctx, "signed status payload failed verification",
				"provider_request_id", req.RequestID,
				"error", err,
			)
			return models.IntegrityFailure(subject)
		}
		s.saveResolved(ctx, log, &models.ResolvedStatus{
			SubjectID:      id,
			Message:        payload.Message,
			Classification: models.ClassificationApproved,
			ColorCode:      payload.ColorCode,
			ExpiresAt:      requestcontext.Now(ctx).Add(s.resolvedTTL),
		})
		s.deletePending(ctx, log, id)
		return models.Success(subject, payload.Message, payload.ColorCode)

	default:
		// Unknown provider values land here too and are indistinguishable
		// from an explicit denial.
		log.InfoContext(ctx, "provider request not approved", "provider_state", result.RawState)
		s.saveResolved(ctx, log, &models.ResolvedStatus{
			SubjectID:      id,
			Message:        models.MessageRejected,
			Classification: models.ClassificationRejected,
			ColorCode:      models.NeutralColor,
			ExpiresAt:      requestcontext.Now(ctx).Add(s.resolvedTTL),
		})
		s.deletePending(ctx, log, id)
		return models.Rejected(subject)
	}
}

// cachedApproval returns an unexpired Approved record, or nil. Read failures
// are treated as a miss.
func (s *Service) cachedApproval(ctx context.Context, log *slog.Logger, id domain.SubjectID) *models.ResolvedStatus {
	rec, err := s.resolved.Find(ctx, id)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		s.metrics.IncrementCacheLookup("miss")
		return nil
	case err != nil:
		s.metrics.IncrementCacheLookup("error")
		s.metrics.IncrementStoreError("resolved", "find")
		log.WarnContext(ctx, "resolved status lookup failed, continuing without cache", "error", err)
		return nil
	case rec.IsExpired(requestcontext.Now(ctx)):
		s.metrics.IncrementCacheLookup("stale")
		return nil
	case !rec.IsApproved():
		s.metrics.IncrementCacheLookup("not_approved")
		return nil
	}
	s.metrics.IncrementCacheLookup("hit")
	return rec
}

// livePending returns an unexpired pending request, or nil.
func (s *Service) livePending(ctx context.Context, log *slog.Logger, id domain.SubjectID) *models.PendingRequest {
	req, err := s.pending.Find(ctx, id)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementStoreError("pending", "find")
			log.WarnContext(ctx, "pending request lookup failed, starting a new request", "error", err)
		}
		return nil
	}
	if req.IsExpired(requestcontext.Now(ctx)) {
		return nil
	}
	s.metrics.IncrementPending("reused")
	return req
}

// startRequest obtains a token, submits a new request and records it as
// pending. On failure it returns the outcome to report instead.
func (s *Service) startRequest(ctx context.Context, log *slog.Logger, id domain.SubjectID) (*models.PendingRequest, *models.Outcome) {
	subject := id.String()

	token, err := s.provider.ObtainToken(ctx, s.creds.APIKey, s.creds.Username, s.creds.Password)
	if err != nil {
		log.WarnContext(ctx, "failed to obtain provider token",
			"category", provider.CategoryOf(err),
			"error", err,
		)
		out := models.UpstreamFailure(subject, models.MessageTokenFailure)
		return nil, &out
	}

	traceID := s.traceID(requestcontext.Now(ctx))
	requestID, err := s.provider.SubmitRequest(ctx, s.creds.APIKey, token, id, traceID)
	if err != nil {
		log.WarnContext(ctx, "failed to submit provider request",
			"trace_id", traceID,
			"category", provider.CategoryOf(err),
			"error", err,
		)
		out := models.UpstreamFailure(subject, models.MessageRequestFailure)
		return nil, &out
	}

	req := &models.PendingRequest{
		SubjectID: id,
		Token:     token,
		RequestID: requestID,
		ExpiresAt: requestcontext.Now(ctx).Add(s.pendingTTL),
	}
	if err := s.pending.Save(ctx, req); err != nil {
		s.metrics.IncrementStoreError("pending", "save")
		log.WarnContext(ctx, "failed to save pending request", "provider_request_id", requestID, "error", err)
	}
	s.metrics.IncrementPending("created")
	log.InfoContext(ctx, "submitted provider request", "provider_request_id", requestID, "trace_id", traceID)
	return req, nil
}

func (s *Service) saveResolved(ctx context.Context, log *slog.Logger, rec *models.ResolvedStatus) {
	if err := s.resolved.Save(ctx, rec); err != nil {
		s.metrics.IncrementStoreError("resolved", "save")
		log.WarnContext(ctx, "failed to save resolved status", "classification", rec.Classification, "error", err)
	}
}

func (s *Service) deletePending(ctx context.Context, log *slog.Logger, id domain.SubjectID) {
	if err := s.pending.Delete(ctx, id); err != nil {
		s.metrics.IncrementStoreError("pending", "delete")
		log.WarnContext(ctx, "failed to delete pending request", "error", err)
	}
}

// List returns the unexpired resolved statuses as listing views.
func (s *Service) List(ctx context.Context) ([]models.StatusView, error) {
	records, err := s.resolved.List(ctx)
	if err != nil {
		s.metrics.IncrementStoreError("resolved", "list")
		return nil, fmt.Errorf("list resolved statuses: %w", err)
	}

	now := requestcontext.Now(ctx)
	views := make([]models.StatusView, 0, len(records))
	for i := range records {
		if records[i].IsExpired(now) {
			continue
		}
		views = append(views, models.ViewOf(&records[i]))
	}
	return views, nil
}
