package ports

import (
	"context"
	"errors"

	"github.com/bnema/versiondb-watch/internal/domain"
)

// ErrSourceUnavailable marks failures that make every further check
// pointless, such as a session that could not be established. A run stops
// at the first one.
var ErrSourceUnavailable = errors.New("update source unavailable")

// UpdateSource returns the update records the vendor lists for a category.
type UpdateSource interface {
	FetchUpdateRecords(ctx context.Context, categoryID string) ([]domain.UpdateRecord, error)
}
