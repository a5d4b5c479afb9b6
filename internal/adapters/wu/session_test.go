package wu

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(server *httptest.Server, budget int) *Session {
	return &Session{
		Endpoint:    server.URL,
		RetryBudget: budget,
		HTTPClient:  server.Client(),
		Logger:      discardLogger(),
	}
}

func TestEnsureReadyUsesSuppliedToken(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	session := newTestSession(server, 3)
	session.Token = "supplied"

	require.NoError(t, session.EnsureReady(context.Background()))
	assert.Equal(t, "supplied", session.Token)
	assert.Zero(t, calls.Load())
}

func TestEnsureReadyAcquiresCookie(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, soapContentType, r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Contains(t, string(body), "ClientWebService/GetCookie")
		_, _ = w.Write([]byte(getCookieResponse("issued-cookie")))
	}))
	defer server.Close()

	session := newTestSession(server, 3)
	require.NoError(t, session.EnsureReady(context.Background()))
	assert.Equal(t, "issued-cookie", session.Token)
}

func TestEnsureReadyRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(getCookieResponse("third-time")))
	}))
	defer server.Close()

	session := newTestSession(server, 3)
	require.NoError(t, session.EnsureReady(context.Background()))
	assert.Equal(t, "third-time", session.Token)
	assert.EqualValues(t, 3, calls.Load())
}

func TestEnsureReadyExhaustsRetryBudget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		budget   int
		attempts int32
	}{
		{name: "zero budget", budget: 0, attempts: 1},
		{name: "default budget", budget: 3, attempts: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				// A well-formed reply without a cookie counts as a failure too.
				_, _ = w.Write([]byte(`<Envelope><Body><GetCookieResponse /></Body></Envelope>`))
			}))
			defer server.Close()

			session := newTestSession(server, tt.budget)
			err := session.EnsureReady(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCookieUnavailable)
			assert.ErrorIs(t, err, ErrUnexpectedLayout)
			assert.Equal(t, tt.attempts, calls.Load())
			assert.Empty(t, session.Token)
		})
	}
}

func TestEnsureReadyStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestSession(server, 3).EnsureReady(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSessionDefaults(t *testing.T) {
	t.Parallel()

	session, err := NewSession(SessionConfig{Token: "  padded  "})
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, session.Endpoint)
	assert.Equal(t, "padded", session.Token)
	assert.Equal(t, 20*time.Second, session.HTTPClient.Timeout)

	_, err = NewSession(SessionConfig{RetryBudget: -1})
	assert.ErrorContains(t, err, "must not be negative")
}

func TestPostReportsStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestSession(server, 0).post(context.Background(), []byte("<x/>"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "status 403"))
}

func TestPostRejectsOversizedResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("a"), maxResponseBytes+1))
	}))
	defer server.Close()

	_, err := newTestSession(server, 0).post(context.Background(), []byte("<x/>"))
	require.ErrorIs(t, err, ErrResponseTooLarge)
	assert.ErrorContains(t, err, "more than 16777216 bytes")
}

func TestPostAcceptsResponseAtLimit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("a"), maxResponseBytes))
	}))
	defer server.Close()

	data, err := newTestSession(server, 0).post(context.Background(), []byte("<x/>"))
	require.NoError(t, err)
	assert.Len(t, data, maxResponseBytes)
}
