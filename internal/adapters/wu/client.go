package wu

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/bnema/versiondb-watch/internal/domain"
	"github.com/bnema/versiondb-watch/internal/ports"
)

var ErrFetchExhausted = errors.New("fetching updates failed after all retries")

// Client queries app categories over an established Session.
type Client struct {
	Session     *Session
	ReleaseType string
}

var _ ports.UpdateSource = (*Client)(nil)

func NewClient(session *Session) *Client {
	return &Client{Session: session, ReleaseType: DefaultReleaseType}
}

// FetchUpdates returns the SyncUpdates response for categoryID with HTML
// entities decoded, so the embedded update XML becomes part of the document.
func (c *Client) FetchUpdates(ctx context.Context, categoryID string) (string, error) {
	if err := c.Session.EnsureReady(ctx); err != nil {
		return "", err
	}

	c.Session.logger().Debug("fetching updates", "category_id", categoryID)
	body, err := BuildSyncUpdatesRequest(SyncUpdatesParams{
		Endpoint:    c.Session.Endpoint,
		Cookie:      c.Session.Token,
		CategoryID:  categoryID,
		ReleaseType: c.ReleaseType,
	})
	if err != nil {
		return "", err
	}

	var response []byte
	err = c.Session.retry(ctx, "fetch updates", func(ctx context.Context) error {
		data, err := c.Session.post(ctx, body)
		if err != nil {
			return err
		}
		response = data
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: category %s: %w", ErrFetchExhausted, categoryID, err)
	}

	return html.UnescapeString(string(response)), nil
}

func (c *Client) FetchUpdateRecords(ctx context.Context, categoryID string) ([]domain.UpdateRecord, error) {
	body, err := c.FetchUpdates(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	records, err := ParseUpdateRecords(body)
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, err)
	}

	c.Session.logger().Debug("parsed update records", "category_id", categoryID, "count", len(records))
	return records, nil
}
