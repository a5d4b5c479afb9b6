package ports

import (
	"context"

	"github.com/bnema/versiondb-watch/internal/domain"
)

type LedgerRepository interface {
	Load(ctx context.Context) (domain.Ledger, error)
	Save(ctx context.Context, ledger domain.Ledger) error
	Path() string
}

type ChangelogRepository interface {
	// Prepare checks that lines can be inserted for channel without writing.
	Prepare(ctx context.Context, channel domain.ReleaseChannel) error
	Insert(ctx context.Context, channel domain.ReleaseChannel, lines []string) error
	Path() string
}
