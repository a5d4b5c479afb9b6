package report

import (
	"errors"
	"testing"
	"time"

	"github.com/bnema/versiondb-watch/internal/application"
	"github.com/bnema/versiondb-watch/internal/domain"
	"github.com/bnema/versiondb-watch/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	releaseTarget = domain.DefaultTargets()[0]
	previewTarget = domain.DefaultTargets()[1]
)

func TestRenderResults(t *testing.T) {
	output, err := RenderResults([]application.CheckResult{
		{
			Target:     releaseTarget,
			Matched:    3,
			NewVersion: "1.21.41.1",
			Novel:      true,
			Published:  true,
			CommitID:   "0123456789abcdef",
			Notified:   true,
		},
		{
			Target:  previewTarget,
			Matched: 2,
		},
	}, Options{})

	require.NoError(t, err)
	assert.Contains(t, output, "targets: 2")
	assert.Contains(t, output, "Microsoft.MinecraftUWP (Release)")
	assert.Contains(t, output, "matched: 3 records")
	assert.Contains(t, output, "new version 1.21.41.1")
	assert.Contains(t, output, "commit: 0123456789ab")
	assert.NotContains(t, output, "0123456789abcdef")
	assert.Contains(t, output, "(notified)")
	assert.Contains(t, output, "Microsoft.MinecraftWindowsBeta (Preview)")
	assert.Contains(t, output, "up to date")
}

func TestRenderResultsFailures(t *testing.T) {
	output, err := RenderResults([]application.CheckResult{
		{Target: releaseTarget, Err: errors.New("fetching updates failed after all retries")},
		{Target: previewTarget, NewVersion: "1.21.50.20", Novel: true, PublishErr: errors.New("git push: exit status 128")},
		{Target: releaseTarget, NewVersion: "1.21.42.1", Novel: true, DryRun: true},
		{Target: previewTarget, NewVersion: "1.21.50.21", Novel: true},
	}, Options{})

	require.NoError(t, err)
	assert.Contains(t, output, "failed: fetching updates failed after all retries")
	assert.Contains(t, output, "publish failed: git push: exit status 128")
	assert.Contains(t, output, "new version 1.21.42.1 [dry run]")
	assert.Contains(t, output, "not published")
}

func TestRenderResultsEmpty(t *testing.T) {
	output, err := RenderResults(nil, Options{})

	require.NoError(t, err)
	assert.Contains(t, output, "No targets checked.")
}

func TestRenderVersions(t *testing.T) {
	groups := []application.ChannelVersions{
		{Channel: domain.ChannelRelease, Entries: []domain.LedgerEntry{
			{Version: "1.21.40.1", UpdateID: "id-a", Channel: domain.ChannelRelease},
			{Version: "1.21.41.1", UpdateID: "id-b", Channel: domain.ChannelRelease},
			{Version: "1.21.42.10", UpdateID: "id-c", Channel: domain.ChannelRelease},
		}},
		{Channel: domain.ChannelPreview, Entries: []domain.LedgerEntry{
			{Version: "1.21.50.20", UpdateID: "id-p", Channel: domain.ChannelPreview},
		}},
	}

	output, err := RenderVersions(groups, Options{})
	require.NoError(t, err)
	assert.Contains(t, output, "versions: 4")
	assert.Contains(t, output, "Release (3)")
	assert.Contains(t, output, "1.21.40.1   id-a")
	assert.Contains(t, output, "1.21.42.10  id-c")
	assert.Contains(t, output, "Preview (1)")

	output, err = RenderVersions(groups, Options{Latest: 1})
	require.NoError(t, err)
	assert.Contains(t, output, "... 2 older")
	assert.NotContains(t, output, "id-a")
	assert.Contains(t, output, "id-c")
	assert.Contains(t, output, "id-p")
}

func TestRenderVersionsEmpty(t *testing.T) {
	output, err := RenderVersions([]application.ChannelVersions{}, Options{})

	require.NoError(t, err)
	assert.Contains(t, output, "No versions recorded.")
}

func TestRenderHistory(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	output, err := RenderHistory([]ports.JournalEntry{
		{
			Target:    releaseTarget.PackageFamilyName,
			Channel:   "Release",
			Outcome:   ports.OutcomeNewVersion,
			Version:   "1.21.41.1",
			Published: true,
			StartedAt: now.Add(-90 * time.Minute),
		},
		{
			Target:    previewTarget.PackageFamilyName,
			Channel:   "Preview",
			Outcome:   ports.OutcomeNewVersion,
			Version:   "1.21.50.20",
			StartedAt: now.Add(-5 * time.Minute),
		},
		{
			Target:    releaseTarget.PackageFamilyName,
			Channel:   "Release",
			Outcome:   ports.OutcomeFailed,
			Error:     "status 503",
			StartedAt: now.Add(-48 * time.Hour),
		},
		{
			Target:    releaseTarget.PackageFamilyName,
			Channel:   "Release",
			Outcome:   ports.OutcomeUpToDate,
			StartedAt: now.Add(-10 * time.Second),
		},
	}, Options{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "checks: 4")
	assert.Contains(t, output, "1 hour ago Microsoft.MinecraftUWP/Release new 1.21.41.1")
	assert.Contains(t, output, "5 minutes ago Microsoft.MinecraftWindowsBeta/Preview new 1.21.50.20 [unpublished]")
	assert.Contains(t, output, "12:00 on 16 Oct Microsoft.MinecraftUWP/Release failed: status 503")
	assert.Contains(t, output, "just now Microsoft.MinecraftUWP/Release up to date")
}

func TestFormatAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
		now  time.Time
		want string
	}{
		{name: "zero", want: "unknown"},
		{name: "no clock", at: now, want: "2026-10-18T12:00:00Z"},
		{name: "seconds", at: now.Add(-30 * time.Second), now: now, want: "just now"},
		{name: "one minute", at: now.Add(-time.Minute), now: now, want: "1 minute ago"},
		{name: "hours", at: now.Add(-3 * time.Hour), now: now, want: "3 hours ago"},
		{name: "days", at: now.Add(-25 * time.Hour), now: now, want: "11:00 on 17 Oct"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatAge(tt.at, tt.now))
		})
	}
}
