package ntfy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/versiondb-watch/internal/ports"
)

const (
	DefaultURL        = "https://ntfy.projectxero.top/mc-w10-versiondb-auto-update"
	DefaultServerURL  = "https://github.com"
	DefaultRepository = "ddf8196/mc-w10-versiondb-auto-update"

	notificationTitle   = "New version detected"
	maxNtfyResponseSize = 1 << 20
	defaultTimeout      = 20 * time.Second
)

type Config struct {
	URL        string
	Token      string
	ServerURL  string
	Repository string
}

// Notifier publishes one message per new version to an ntfy topic.
type Notifier struct {
	Config     Config
	HTTPClient *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier uses a plain verifying client, never the vendor transport.
func NewNotifier(cfg Config) (*Notifier, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("ntfy token is required")
	}
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.Repository == "" {
		cfg.Repository = DefaultRepository
	}

	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse ntfy url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("ntfy url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("ntfy url host is required")
	}

	return &Notifier{
		Config:     cfg,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

type publishResponse struct {
	ID    string `json:"id"`
	Topic string `json:"topic"`
}

type errorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

func (n *Notifier) Notify(ctx context.Context, msg ports.Notification) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Config.URL, strings.NewReader(Message(msg)))
	if err != nil {
		return fmt.Errorf("create ntfy request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.Config.Token)
	req.Header.Set("Title", notificationTitle)
	req.Header.Set("Click", n.CommitURL(msg.CommitID))

	resp, err := n.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var payload errorResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxNtfyResponseSize)).Decode(&payload); err != nil || payload.Error == "" {
			return fmt.Errorf("send ntfy notification: status %d", resp.StatusCode)
		}
		return fmt.Errorf("send ntfy notification: status %d: %s", resp.StatusCode, payload.Error)
	}

	var payload publishResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxNtfyResponseSize)).Decode(&payload); err != nil {
		return fmt.Errorf("decode ntfy response: %w", err)
	}

	return nil
}

// Message renders the notification body, e.g. "Minecraft Preview 1.21.50.20".
func Message(msg ports.Notification) string {
	var b strings.Builder
	b.WriteString(msg.AppName)
	b.WriteString(" ")
	if msg.Preview {
		b.WriteString("Preview ")
	}
	b.WriteString(msg.Version)
	return b.String()
}

func (n *Notifier) CommitURL(commitID string) string {
	return strings.TrimRight(n.Config.ServerURL, "/") + "/" + strings.Trim(n.Config.Repository, "/") + "/commit/" + commitID
}

func (n *Notifier) httpClient() *http.Client {
	if n.HTTPClient != nil {
		return n.HTTPClient
	}
	return http.DefaultClient
}
