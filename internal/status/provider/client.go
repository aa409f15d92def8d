package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"statusgate/internal/status/models"
	"statusgate/pkg/domain"
	"statusgate/pkg/platform/circuit"
)

const (
	tokenPath  = "/token"
	submitPath = "/userstatus"
	statusPath = "/userstatusbyreqid"

	defaultReason = "Office entry"
	maxErrorBody  = 4 << 10
)

// StatusResult is the decoded reply of FetchStatus.
type StatusResult struct {
	State models.RequestState
	// RawState is the provider's string, kept for logs.
	RawState      string
	SignedPayload string
}

// Observer receives per-call timings.
type Observer interface {
	ObserveProviderCall(operation, result string, d time.Duration)
	SetBreakerOpen(open bool)
}

// HTTPClient talks to the verification provider's JSON API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	reason     string
	breaker    *circuit.Breaker
	observer   Observer
	tracer     trace.Tracer
}

type Option func(*HTTPClient)

// WithReason overrides the "reason" sent with each submission.
func WithReason(reason string) Option {
	return func(h *HTTPClient) {
		if reason != "" {
			h.reason = reason
		}
	}
}

// WithBreaker makes calls fail fast while the breaker is open.
func WithBreaker(b *circuit.Breaker) Option {
	return func(h *HTTPClient) {
		h.breaker = b
	}
}

func WithObserver(o Observer) Option {
	return func(h *HTTPClient) {
		h.observer = o
	}
}

// NewHTTPClient builds a client. timeout bounds every call.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    timeout,
		reason:     defaultReason,
		tracer:     otel.Tracer("statusgate/provider"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTimeout returns a copy of the client with a different per-call budget.
// The breaker and observer are shared.
func (c *HTTPClient) WithTimeout(timeout time.Duration) *HTTPClient {
	cp := *c
	cp.timeout = timeout
	return &cp
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type submitRequest struct {
	PhoneNumber string `json:"phone_number"`
	TraceID     string `json:"trace_id"`
	Reason      string `json:"reason"`
}

type submitResponse struct {
	RequestID string `json:"requestId"`
}

type statusRequest struct {
	RequestID string `json:"requestId"`
}

type statusResponse struct {
	RequestStatus string `json:"request_status"`
	SignedStatus  string `json:"as_status"`
}

// ObtainToken exchanges account credentials for a session token.
func (c *HTTPClient) ObtainToken(ctx context.Context, apiKey, username, password string) (string, error) {
	resp, err := postJSON[tokenRequest, tokenResponse](ctx, c, OpObtainToken, tokenPath, apiKey, "",
		tokenRequest{Username: username, Password: password})
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &Error{Category: ErrorBadData, Operation: OpObtainToken, StatusCode: http.StatusOK, Underlying: errors.New("empty token")}
	}
	return resp.Token, nil
}

// SubmitRequest asks the provider to start an approval workflow for subject.
func (c *HTTPClient) SubmitRequest(ctx context.Context, apiKey, token string, subject domain.SubjectID, traceID string) (string, error) {
	resp, err := postJSON[submitRequest, submitResponse](ctx, c, OpSubmitRequest, submitPath, apiKey, token,
		submitRequest{PhoneNumber: subject.String(), TraceID: traceID, Reason: c.reason})
	if err != nil {
		return "", err
	}
	if resp.RequestID == "" {
		return "", &Error{Category: ErrorBadData, Operation: OpSubmitRequest, StatusCode: http.StatusOK, Underlying: errors.New("empty request id")}
	}
	return resp.RequestID, nil
}

// FetchStatus polls the state of a submitted request.
func (c *HTTPClient) FetchStatus(ctx context.Context, apiKey, token, requestID string) (StatusResult, error) {
	resp, err := postJSON[statusRequest, statusResponse](ctx, c, OpFetchStatus, statusPath, apiKey, token,
		statusRequest{RequestID: requestID})
	if err != nil {
		return StatusResult{}, err
	}
	return StatusResult{
		State:         models.ParseRequestState(resp.RequestStatus),
		RawState:      resp.RequestStatus,
		SignedPayload: resp.SignedStatus,
	}, nil
}

func postJSON[Req any, Resp any](ctx context.Context, c *HTTPClient, op Operation, path, apiKey, token string, req Req) (*Resp, error) {
	ctx, span := c.tracer.Start(ctx, "provider."+string(op),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("provider.operation", string(op))),
	)
	defer span.End()

	start := time.Now()
	resp, err := c.do(ctx, op, path, apiKey, token, req)
	c.record(op, err, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(CategoryOf(err)))
		return nil, err
	}

	var out Resp
	if err := json.Unmarshal(resp, &out); err != nil {
		return nil, &Error{Category: ErrorBadData, Operation: op, StatusCode: http.StatusOK, Underlying: fmt.Errorf("decode response: %w", err)}
	}
	return &out, nil
}

func (c *HTTPClient) do(ctx context.Context, op Operation, path, apiKey, token string, req any) ([]byte, error) {
	if c.breaker != nil && !c.breaker.Allow() {
		return nil, &Error{Category: ErrorProviderOutage, Operation: op, Underlying: fmt.Errorf("%s breaker: %w", c.breaker.Name(), ErrCircuitOpen)}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &Error{Category: ErrorInternal, Operation: op, Underlying: fmt.Errorf("encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Category: ErrorInternal, Operation: op, Underlying: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("accept", "application/json")
	httpReq.Header.Set("x-api-key", apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Category: transportCategory(err), Operation: op, Underlying: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &Error{
			Category:   categoryForStatus(resp.StatusCode),
			Operation:  op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Category: transportCategory(err), Operation: op, StatusCode: resp.StatusCode, Underlying: fmt.Errorf("read response: %w", err)}
	}
	return raw, nil
}

func (c *HTTPClient) record(op Operation, err error, d time.Duration) {
	result := "ok"
	if err != nil {
		result = string(CategoryOf(err))
	}
	if c.observer != nil {
		c.observer.ObserveProviderCall(string(op), result, d)
	}
	if c.breaker == nil || errors.Is(err, ErrCircuitOpen) {
		return
	}

	var change circuit.StateChange
	if err != nil && countsAgainstBreaker(CategoryOf(err)) {
		_, change = c.breaker.RecordFailure()
	} else if err == nil {
		_, change = c.breaker.RecordSuccess()
	}
	if c.observer != nil && (change.Opened || change.Closed) {
		c.observer.SetBreakerOpen(c.breaker.IsOpen())
	}
}

// Only availability failures trip the breaker.
func countsAgainstBreaker(cat ErrorCategory) bool {
	return cat == ErrorTimeout || cat == ErrorProviderOutage || cat == ErrorRateLimited
}

func transportCategory(err error) ErrorCategory {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorTimeout
	}
	return ErrorProviderOutage
}
