package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	sqlitejournal "github.com/bnema/versiondb-watch/internal/adapters/journal/sqlite"
	"github.com/bnema/versiondb-watch/internal/adapters/notify/ntfy"
	"github.com/bnema/versiondb-watch/internal/adapters/publish/git"
	"github.com/bnema/versiondb-watch/internal/adapters/render/report"
	filerepo "github.com/bnema/versiondb-watch/internal/adapters/repo/file"
	"github.com/bnema/versiondb-watch/internal/adapters/wu"
	"github.com/bnema/versiondb-watch/internal/application"
	"github.com/bnema/versiondb-watch/internal/config"
	"github.com/bnema/versiondb-watch/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	cfg             config.Config
	logger          *slog.Logger
	service         *application.Service
	journal         *sqlitejournal.Journal
	resultsRenderer func([]application.CheckResult, report.Options) (string, error)
	versionRenderer func([]application.ChannelVersions, report.Options) (string, error)
	historyRenderer func([]ports.JournalEntry, report.Options) (string, error)
	now             func() time.Time
}

type wireOptions struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	LogOutput  io.Writer
	DryRun     bool
	NoPublish  bool
	Progress   application.Progress
}

func wireApp(opts wireOptions) (*app, error) {
	v := viper.New()
	cfg, err := config.Load(v, opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.Log.Format = opts.LogFormat
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	logger, err := newLogger(opts.LogOutput, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	session, err := wu.NewSession(wu.SessionConfig{
		Endpoint:          cfg.Endpoint,
		Token:             cfg.Cookie,
		RetryBudget:       cfg.Retry.Max,
		Timeout:           cfg.Retry.Timeout,
		InsecureTransport: cfg.Transport.Insecure,
		Logger:            logger,
	})
	if err != nil {
		return nil, fmt.Errorf("wire update session: %w", err)
	}

	// The file repositories read ledger.path and changelog.path from v.
	ledger, err := filerepo.NewLedgerRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire ledger repository: %w", err)
	}
	changelog, err := filerepo.NewChangelogRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire changelog repository: %w", err)
	}

	publisher := git.NewPublisher(git.Config{
		Enabled:   cfg.Git.Enabled && !opts.NoPublish,
		Dir:       filepath.Dir(ledger.Path()),
		Remote:    cfg.Git.Remote,
		UserName:  cfg.Git.UserName,
		UserEmail: cfg.Git.UserEmail,
	})

	deps := application.Dependencies{
		Source:    wu.NewClient(session),
		Ledger:    ledger,
		Changelog: changelog,
		Publisher: publisher,
		Clock:     ports.SystemClock{},
		Logger:    logger,
	}

	if cfg.Notify.Active() {
		notifier, err := ntfy.NewNotifier(ntfy.Config{
			URL:        cfg.Notify.URL,
			Token:      cfg.Notify.Token,
			ServerURL:  cfg.Notify.ServerURL,
			Repository: cfg.Notify.Repository,
		})
		if err != nil {
			return nil, fmt.Errorf("wire notifier: %w", err)
		}
		deps.Notifier = notifier
	} else if cfg.Notify.Enabled {
		logger.Warn("notifications enabled without a token, skipping")
	}

	a := &app{
		cfg:             cfg,
		logger:          logger,
		resultsRenderer: report.RenderResults,
		versionRenderer: report.RenderVersions,
		historyRenderer: report.RenderHistory,
		now:             time.Now,
	}

	if cfg.Journal.Path != "" {
		journal, err := sqlitejournal.Open(cfg.Journal.Path)
		if err != nil {
			logger.Warn("run journal unavailable", "path", cfg.Journal.Path, "error", err)
		} else {
			a.journal = journal
			deps.Journal = journal
		}
	}

	a.service = application.NewService(deps, application.Options{
		AppName:  cfg.AppName,
		DryRun:   opts.DryRun,
		Progress: opts.Progress,
	})

	return a, nil
}

func (a *app) Close() error {
	if a.journal == nil {
		return nil
	}
	if err := a.journal.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
