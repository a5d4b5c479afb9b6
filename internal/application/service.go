package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bnema/versiondb-watch/internal/domain"
	"github.com/bnema/versiondb-watch/internal/ports"
	"github.com/google/uuid"
)

type Dependencies struct {
	Source    ports.UpdateSource
	Ledger    ports.LedgerRepository
	Changelog ports.ChangelogRepository
	Publisher ports.Publisher
	// Notifier and Journal are optional.
	Notifier ports.Notifier
	Journal  ports.Journal
	Clock    ports.Clock
	Logger   *slog.Logger
}

// Service reconciles vendor update listings with the ledger.
type Service struct {
	source    ports.UpdateSource
	ledger    ports.LedgerRepository
	changelog ports.ChangelogRepository
	publisher ports.Publisher
	notifier  ports.Notifier
	journal   ports.Journal
	clock     ports.Clock
	logger    *slog.Logger
	opts      Options
}

func NewService(deps Dependencies, opts Options) *Service {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if opts.AppName == "" {
		opts.AppName = DefaultAppName
	}

	return &Service{
		source:    deps.Source,
		ledger:    deps.Ledger,
		changelog: deps.Changelog,
		publisher: deps.Publisher,
		notifier:  deps.Notifier,
		journal:   deps.Journal,
		clock:     deps.Clock,
		logger:    deps.Logger,
		opts:      opts,
	}
}

// Run checks targets one after another. A failed check is logged and
// recorded in its result; only an unavailable update source stops the run.
func (s *Service) Run(ctx context.Context, targets []domain.MonitorTarget) ([]CheckResult, error) {
	if len(targets) == 0 {
		return nil, domain.ErrNoMonitorTargets
	}

	runID := uuid.NewString()
	results := make([]CheckResult, 0, len(targets))
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		s.logger.Info(strings.Repeat("-", 100))
		if s.opts.Progress != nil {
			s.opts.Progress.TargetStarted(target)
		}
		startedAt := s.clock.Now()
		result, err := s.CheckForUpdate(ctx, target)
		if err != nil {
			result.Err = err
			s.logger.Error("error occurred while checking for updates",
				"package_family_name", target.PackageFamilyName, "error", err)
		}
		s.record(ctx, runID, result, startedAt)
		if s.opts.Progress != nil {
			s.opts.Progress.TargetFinished(result)
		}
		results = append(results, result)

		if errors.Is(err, ports.ErrSourceUnavailable) {
			return results, err
		}
	}
	s.logger.Info(strings.Repeat("-", 100))

	return results, nil
}

// CheckForUpdate runs one target check. When the newest x64 build is not in
// the ledger it is recorded, the changelog gains every matching record, and
// the change is published and announced.
func (s *Service) CheckForUpdate(ctx context.Context, target domain.MonitorTarget) (CheckResult, error) {
	result := CheckResult{Target: target, DryRun: s.opts.DryRun}
	logger := s.logger.With("package_family_name", target.PackageFamilyName, "channel", target.Channel.String())
	logger.Debug("checking for updates")

	ledger, err := s.ledger.Load(ctx)
	if err != nil {
		return result, fmt.Errorf("load ledger: %w", err)
	}

	identityName := target.IdentityName()
	records, err := s.source.FetchUpdateRecords(ctx, target.CategoryID)
	if err != nil {
		return result, err
	}

	updated := ledger.Clone()
	newVersion := true
	version := ""
	for _, record := range records {
		if !strings.Contains(record.PackageMoniker, identityName) {
			continue
		}
		result.Matched++
		result.Lines = append(result.Lines, record.ChangelogLine())

		identity, err := domain.SplitMoniker(record.PackageMoniker)
		if err != nil {
			return result, err
		}
		if identity.Arch != domain.ArchX64 {
			logger.Debug("not tracking architecture", "moniker", record.PackageMoniker, "arch", identity.Arch)
			continue
		}

		canonical, err := domain.Canonicalize(identity.Version, false)
		if err != nil {
			return result, err
		}

		// Once any x64 build is known the flag stays off, and the reported
		// version is the last x64 build seen.
		version = canonical
		if updated.Contains(canonical, target.Channel) {
			newVersion = false
		}
		if newVersion {
			if err := updated.Append(domain.LedgerEntry{
				Version:  canonical,
				UpdateID: record.UpdateID,
				Channel:  target.Channel,
			}); err != nil {
				return result, err
			}
		}
	}

	if !newVersion || version == "" {
		logger.Info(identityName + " is up to date")
		logger.Debug("checked for updates", "matched", result.Matched)
		return result, nil
	}

	result.Novel = true
	result.NewVersion = version
	logger.Info("new version found for "+identityName, "version", version)

	if s.opts.DryRun {
		logger.Info("dry run, leaving ledger and changelog untouched", "lines", len(result.Lines))
		return result, nil
	}

	if err := s.changelog.Prepare(ctx, target.Channel); err != nil {
		return result, fmt.Errorf("prepare changelog: %w", err)
	}
	if err := s.ledger.Save(ctx, updated); err != nil {
		return result, fmt.Errorf("save ledger: %w", err)
	}
	if err := s.changelog.Insert(ctx, target.Channel, result.Lines); err != nil {
		return result, fmt.Errorf("update changelog: %w", err)
	}

	s.publish(ctx, logger, &result)
	logger.Debug("checked for updates", "matched", result.Matched)
	return result, nil
}

func (s *Service) publish(ctx context.Context, logger *slog.Logger, result *CheckResult) {
	message := CommitMessage(s.opts.AppName, result.NewVersion, result.Target.Channel)
	commitID, err := s.publisher.Publish(ctx, message, s.ledger.Path(), s.changelog.Path())
	if errors.Is(err, ports.ErrPublishDisabled) {
		logger.Info("publishing disabled, changes left in the working tree")
		return
	}
	if err != nil {
		result.PublishErr = err
		logger.Error("failed to publish new version", "error", err)
		return
	}

	result.Published = true
	result.CommitID = commitID
	logger.Debug("published new version", "commit", commitID)

	if s.notifier == nil {
		return
	}

	err = s.notifier.Notify(ctx, ports.Notification{
		AppName:  s.opts.AppName,
		Version:  result.NewVersion,
		Preview:  result.Target.Channel == domain.ChannelPreview,
		CommitID: commitID,
	})
	if err != nil {
		logger.Error("failed to push notification", "error", err)
		return
	}
	result.Notified = true
}

// record journals a finished check. Journal failures never fail the run.
func (s *Service) record(ctx context.Context, runID string, result CheckResult, startedAt time.Time) {
	if s.journal == nil || s.opts.DryRun {
		return
	}

	entry := ports.JournalEntry{
		RunID:      runID,
		Target:     result.Target.PackageFamilyName,
		Channel:    result.Target.Channel.String(),
		Outcome:    ports.OutcomeUpToDate,
		Version:    result.NewVersion,
		Matched:    result.Matched,
		Published:  result.Published,
		StartedAt:  startedAt,
		FinishedAt: s.clock.Now(),
	}
	switch {
	case result.Err != nil:
		entry.Outcome = ports.OutcomeFailed
		entry.Error = result.Err.Error()
	case result.Novel:
		entry.Outcome = ports.OutcomeNewVersion
		if result.PublishErr != nil {
			entry.Error = result.PublishErr.Error()
		}
	}

	if err := s.journal.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record check in journal", "error", err)
	}
}
