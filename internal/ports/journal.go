package ports

import (
	"context"
	"time"
)

type CheckOutcome string

const (
	OutcomeUpToDate   CheckOutcome = "up_to_date"
	OutcomeNewVersion CheckOutcome = "new_version"
	OutcomeFailed     CheckOutcome = "failed"
)

type JournalEntry struct {
	RunID      string
	Target     string
	Channel    string
	Outcome    CheckOutcome
	Version    string
	Matched    int
	Published  bool
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Journal keeps a local history of check outcomes.
type Journal interface {
	Record(ctx context.Context, entry JournalEntry) error
	Recent(ctx context.Context, limit int) ([]JournalEntry, error)
}
