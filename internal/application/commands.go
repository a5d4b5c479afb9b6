package application

import (
	"github.com/bnema/versiondb-watch/internal/domain"
)

const DefaultAppName = "Minecraft"

type Options struct {
	// AppName prefixes commit messages and notifications.
	AppName string
	// DryRun reconciles in memory only: nothing is written, published or
	// journaled.
	DryRun bool
	// Progress, when set, hears about each target as Run reaches it.
	Progress Progress
}

// Progress observes a run target by target.
type Progress interface {
	TargetStarted(target domain.MonitorTarget)
	TargetFinished(result CheckResult)
}

// CheckResult describes what one target check observed and did.
type CheckResult struct {
	Target domain.MonitorTarget
	// Matched counts records whose moniker belongs to the target.
	Matched int
	Lines   []string
	// NewVersion is the canonical version acted upon when Novel is set.
	NewVersion string
	Novel      bool
	DryRun     bool
	Published  bool
	CommitID   string
	PublishErr error
	Notified   bool
	Err        error
}

// CommitMessage is the message recorded for a new version, e.g.
// "Minecraft 1.21.50.20 (Preview)".
func CommitMessage(appName, version string, channel domain.ReleaseChannel) string {
	message := appName + " " + version
	if channel == domain.ChannelPreview {
		message += " (Preview)"
	}
	return message
}
