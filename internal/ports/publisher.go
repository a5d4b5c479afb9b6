package ports

import (
	"context"
	"errors"
)

// ErrPublishDisabled is returned by publishers switched off for the run.
var ErrPublishDisabled = errors.New("publishing disabled")

// Publisher records changed files in version control and returns the commit id.
type Publisher interface {
	Publish(ctx context.Context, message string, paths ...string) (string, error)
}

type Notification struct {
	AppName  string
	Version  string
	Preview  bool
	CommitID string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
