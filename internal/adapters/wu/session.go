package wu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/versiondb-watch/internal/ports"
)

const maxResponseBytes = 16 << 20

var ErrResponseTooLarge = errors.New("response exceeds size limit")

// ErrCookieUnavailable means the service never issued a session cookie within
// the retry budget. It ends the run.
var ErrCookieUnavailable = fmt.Errorf("%w: session cookie unavailable", ports.ErrSourceUnavailable)

// Session is the per-run state shared by every request to the vendor service.
type Session struct {
	Endpoint          string
	Token             string
	RetryBudget       int
	Timeout           time.Duration
	InsecureTransport bool

	HTTPClient *http.Client
	Logger     *slog.Logger
}

type SessionConfig struct {
	Endpoint          string
	Token             string
	RetryBudget       int
	Timeout           time.Duration
	InsecureTransport bool
	Logger            *slog.Logger
}

func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.RetryBudget < 0 {
		return nil, fmt.Errorf("retry budget must not be negative, got %d", cfg.RetryBudget)
	}

	client, err := NewHTTPClient(cfg.InsecureTransport, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Session{
		Endpoint:          cfg.Endpoint,
		Token:             strings.TrimSpace(cfg.Token),
		RetryBudget:       cfg.RetryBudget,
		Timeout:           cfg.Timeout,
		InsecureTransport: cfg.InsecureTransport,
		HTTPClient:        client,
		Logger:            cfg.Logger,
	}, nil
}

// EnsureReady makes sure the session holds a cookie, asking the service for
// one when none was supplied.
func (s *Session) EnsureReady(ctx context.Context) error {
	if s.Token != "" {
		s.logger().Debug("using supplied session cookie")
		return nil
	}

	s.logger().Debug("requesting session cookie", "endpoint", s.Endpoint)
	body, err := BuildGetCookieRequest(GetCookieParams{Endpoint: s.Endpoint})
	if err != nil {
		return fmt.Errorf("build cookie request: %w", err)
	}

	err = s.retry(ctx, "cookie acquisition", func(ctx context.Context) error {
		response, err := s.post(ctx, body)
		if err != nil {
			return err
		}
		token, err := ExtractCookie(response)
		if err != nil {
			return err
		}
		s.Token = token
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCookieUnavailable, err)
	}

	s.logger().Debug("session cookie acquired")
	return nil
}

// retry counts down from RetryBudget+1; every value above zero is one
// attempt. A warning precedes attempts whose counter is below the budget.
func (s *Session) retry(ctx context.Context, op string, attempt func(context.Context) error) error {
	var lastErr error
	for count := s.RetryBudget + 1; count > 0; count-- {
		if err := ctx.Err(); err != nil {
			return err
		}
		if count < s.RetryBudget {
			s.logger().Warn(op+" failed, retrying", "attempts_left", count)
		}

		lastErr = attempt(ctx)
		if lastErr == nil {
			return nil
		}
		s.logger().Error(op+" attempt failed", "error", lastErr)
	}

	return lastErr
}

func (s *Session) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", soapContentType)

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(data) > maxResponseBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxResponseBytes)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return data, nil
}

func (s *Session) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

func (s *Session) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
