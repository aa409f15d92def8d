package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"statusgate/internal/status/models"
	"statusgate/pkg/domain"
	"statusgate/pkg/platform/circuit"
)

type recordedCall struct {
	path    string
	headers http.Header
	body    map[string]any
}

type fakeProvider struct {
	mu       sync.Mutex
	calls    []recordedCall
	handlers map[string]http.HandlerFunc
}

func (f *fakeProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{path: r.URL.Path, headers: r.Header.Clone(), body: body})
	h := f.handlers[r.URL.Path]
	f.mu.Unlock()
	if h == nil {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

func (f *fakeProvider) handle(path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[path] = h
}

func (f *fakeProvider) lastCall() recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func jsonReply(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

type fakeObserver struct {
	mu      sync.Mutex
	results []string
	open    *bool
}

func (o *fakeObserver) ObserveProviderCall(operation, result string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, operation+":"+result)
}

func (o *fakeObserver) SetBreakerOpen(open bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.open = &open
}

type ClientSuite struct {
	suite.Suite
	fake     *fakeProvider
	server   *httptest.Server
	observer *fakeObserver
	client   *HTTPClient
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.fake = &fakeProvider{handlers: map[string]http.HandlerFunc{}}
	s.server = httptest.NewServer(s.fake)
	s.observer = &fakeObserver{}
	s.client = NewHTTPClient(s.server.URL, time.Second, WithObserver(s.observer))
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestObtainToken() {
	ctx := context.Background()

	s.Run("sends credentials without authorization header", func() {
		s.fake.handle(tokenPath, jsonReply(http.StatusOK, map[string]string{"token": "T1"}))

		token, err := s.client.ObtainToken(ctx, "key", "user", "pass")
		s.Require().NoError(err)
		s.Equal("T1", token)

		call := s.fake.lastCall()
		s.Equal("key", call.headers.Get("x-api-key"))
		s.Equal("application/json", call.headers.Get("accept"))
		s.Equal("application/json", call.headers.Get("Content-Type"))
		s.Empty(call.headers.Get("Authorization"))
		s.Equal("user", call.body["username"])
		s.Equal("pass", call.body["password"])
	})

	s.Run("non-200 carries status and body", func() {
		s.fake.handle(tokenPath, jsonReply(http.StatusUnauthorized, map[string]string{"error_message": "bad creds"}))

		_, err := s.client.ObtainToken(ctx, "key", "user", "wrong")
		var pe *Error
		s.Require().ErrorAs(err, &pe)
		s.Equal(ErrorAuthentication, pe.Category)
		s.Equal(OpObtainToken, pe.Operation)
		s.Equal(http.StatusUnauthorized, pe.StatusCode)
		s.Contains(pe.Body, "bad creds")
	})

	s.Run("empty token is bad data", func() {
		s.fake.handle(tokenPath, jsonReply(http.StatusOK, map[string]string{}))

		_, err := s.client.ObtainToken(ctx, "key", "user", "pass")
		s.Equal(ErrorBadData, CategoryOf(err))
	})
}

func (s *ClientSuite) TestSubmitRequest() {
	ctx := context.Background()
	s.fake.handle(submitPath, jsonReply(http.StatusOK, map[string]string{"requestId": "R1"}))

	id, err := s.client.SubmitRequest(ctx, "key", "T1", domain.MustSubjectID("+919876543210"), "2026-01-02-03:04:05-ABC12")
	s.Require().NoError(err)
	s.Equal("R1", id)

	call := s.fake.lastCall()
	s.Equal("T1", call.headers.Get("Authorization"))
	s.Equal("+919876543210", call.body["phone_number"])
	s.Equal("2026-01-02-03:04:05-ABC12", call.body["trace_id"])
	s.Equal("Office entry", call.body["reason"])
}

func (s *ClientSuite) TestFetchStatus() {
	ctx := context.Background()

	tests := []struct {
		raw  string
		want models.RequestState
	}{
		{"Approved", models.RequestStateApproved},
		{"Pending", models.RequestStatePending},
		{"Denied", models.RequestStateRejected},
	}
	for _, tt := range tests {
		s.Run(tt.raw, func() {
			s.fake.handle(statusPath, jsonReply(http.StatusOK, map[string]string{
				"request_status": tt.raw,
				"as_status":      "signed",
			}))

			res, err := s.client.FetchStatus(ctx, "key", "T1", "R1")
			s.Require().NoError(err)
			s.Equal(tt.want, res.State)
			s.Equal(tt.raw, res.RawState)
			s.Equal("signed", res.SignedPayload)
			s.Equal("R1", s.fake.lastCall().body["requestId"])
		})
	}

	s.Run("server error is an outage", func() {
		s.fake.handle(statusPath, jsonReply(http.StatusBadGateway, map[string]string{}))

		_, err := s.client.FetchStatus(ctx, "key", "T1", "R1")
		s.Equal(ErrorProviderOutage, CategoryOf(err))
	})

	s.Run("malformed body is bad data", func() {
		s.fake.handle(statusPath, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		})

		_, err := s.client.FetchStatus(ctx, "key", "T1", "R1")
		s.Equal(ErrorBadData, CategoryOf(err))
	})
}

func (s *ClientSuite) TestTimeout() {
	release := make(chan struct{})
	defer close(release)
	s.fake.handle(tokenPath, func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})

	client := s.client.WithTimeout(20 * time.Millisecond)
	_, err := client.ObtainToken(context.Background(), "key", "user", "pass")
	s.Equal(ErrorTimeout, CategoryOf(err))
}

func (s *ClientSuite) TestObserverRecordsResults() {
	s.fake.handle(tokenPath, jsonReply(http.StatusOK, map[string]string{"token": "T1"}))
	s.fake.handle(submitPath, jsonReply(http.StatusTooManyRequests, map[string]string{}))

	_, _ = s.client.ObtainToken(context.Background(), "key", "u", "p")
	_, _ = s.client.SubmitRequest(context.Background(), "key", "T1", domain.MustSubjectID("+919876543210"), "t")

	s.Equal([]string{"token:ok", "submit:rate_limited"}, s.observer.results)
}

func TestBreakerFailsFast(t *testing.T) {
	var hits int
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	now := time.Now()
	breaker := circuit.New("provider",
		circuit.WithFailureThreshold(2),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	observer := &fakeObserver{}
	client := NewHTTPClient(server.URL, time.Second, WithBreaker(breaker), WithObserver(observer))

	for range 2 {
		_, err := client.ObtainToken(context.Background(), "key", "u", "p")
		require.Error(t, err)
	}
	require.True(t, breaker.IsOpen())
	require.NotNil(t, observer.open)
	assert.True(t, *observer.open)

	_, err := client.ObtainToken(context.Background(), "key", "u", "p")
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, ErrorProviderOutage, CategoryOf(err))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, hits, "open circuit must not reach the provider")
}

func TestBadCredentialsDoNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	breaker := circuit.New("provider", circuit.WithFailureThreshold(1))
	client := NewHTTPClient(server.URL, time.Second, WithBreaker(breaker))

	_, err := client.ObtainToken(context.Background(), "key", "u", "p")
	require.Error(t, err)
	assert.False(t, breaker.IsOpen())
}

func TestBreakerRecoveryCompletesWorkflow(t *testing.T) {
	var mu sync.Mutex
	healthy := false
	tokens := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		switch r.URL.Path {
		case tokenPath:
			tokens++
			jsonReply(http.StatusOK, map[string]string{"token": "T"})(w, r)
		case submitPath:
			jsonReply(http.StatusOK, map[string]string{"requestId": "R"})(w, r)
		case statusPath:
			jsonReply(http.StatusOK, map[string]string{"request_status": "Pending"})(w, r)
		}
	}))
	defer server.Close()

	now := time.Now()
	breaker := circuit.New("provider",
		circuit.WithFailureThreshold(1),
		circuit.WithCooldown(10*time.Second),
		circuit.WithClock(func() time.Time { return now }),
	)
	observer := &fakeObserver{}
	client := NewHTTPClient(server.URL, time.Second, WithBreaker(breaker), WithObserver(observer))
	ctx := context.Background()

	_, err := client.ObtainToken(ctx, "key", "u", "p")
	require.Error(t, err)
	require.True(t, breaker.IsOpen())

	mu.Lock()
	healthy = true
	mu.Unlock()
	now = now.Add(11 * time.Second)

	token, err := client.ObtainToken(ctx, "key", "u", "p")
	require.NoError(t, err)
	requestID, err := client.SubmitRequest(ctx, "key", token, domain.MustSubjectID("+919876543210"), "trace")
	require.NoError(t, err, "follow-up call during recovery must reach the provider")
	assert.Equal(t, "R", requestID)
	assert.False(t, breaker.IsOpen())

	result, err := client.FetchStatus(ctx, "key", token, requestID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatePending, result.State)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, tokens)
	require.NotNil(t, observer.open)
	assert.False(t, *observer.open)
}
