package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bnema/versiondb-watch/internal/adapters/render/report"
	"github.com/bnema/versiondb-watch/internal/application"
	"github.com/bnema/versiondb-watch/internal/domain"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type checkFlags struct {
	targetIndex int
	dryRun      bool
	noPublish   bool
	progress    bool
	asJSON      bool
}

type checkResultOutput struct {
	PackageFamilyName string   `json:"package_family_name"`
	Channel           string   `json:"channel"`
	Matched           int      `json:"matched"`
	Lines             []string `json:"lines,omitempty"`
	NewVersion        string   `json:"new_version,omitempty"`
	Novel             bool     `json:"novel"`
	DryRun            bool     `json:"dry_run,omitempty"`
	Published         bool     `json:"published"`
	CommitID          string   `json:"commit_id,omitempty"`
	Notified          bool     `json:"notified"`
	PublishError      string   `json:"publish_error,omitempty"`
	Error             string   `json:"error,omitempty"`
}

func newCheckCmd(global *globalFlags) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the configured targets for new versions",
		Long:  "Check each configured target in order. A new x64 build is appended to the ledger, its records are added to the changelog, and the change is committed, pushed and announced.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, global, flags)
		},
	}

	cmd.Flags().IntVar(&flags.targetIndex, "target", -1, "Only check the target at this index")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Report new versions without writing, publishing or journaling")
	cmd.Flags().BoolVar(&flags.noPublish, "no-publish", false, "Write the ledger and changelog but skip git and notifications")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "Show a spinner on an interactive terminal while checking")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Output results as JSON")

	return cmd
}

func runCheck(cmd *cobra.Command, global *globalFlags, flags *checkFlags) error {
	stderr := cmd.ErrOrStderr()
	showSpinner := flags.progress && isTerminal(stderr)

	// Logs are held back while the spinner owns the terminal.
	var heldLogs bytes.Buffer
	var progress *checkProgress
	opts := global.wireOptions()
	opts.DryRun = flags.dryRun
	opts.NoPublish = flags.noPublish
	opts.LogOutput = stderr
	if showSpinner {
		progress = &checkProgress{}
		opts.LogOutput = &heldLogs
		opts.Progress = progress
	}

	app, err := wireApp(opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			app.logger.Warn("failed to close journal", "error", closeErr)
		}
	}()

	targets, err := app.cfg.MonitorTargets()
	if err != nil {
		return err
	}
	targets, err = selectTargets(targets, flags.targetIndex)
	if err != nil {
		return err
	}

	var results []application.CheckResult
	run := func(ctx context.Context) error {
		var runErr error
		results, runErr = app.service.Run(ctx, targets)
		return runErr
	}

	var runErr error
	if showSpinner {
		runErr = runCheckSpinner(cmd.Context(), stderr, progress, run)
		_, _ = heldLogs.WriteTo(stderr)
	} else {
		runErr = run(cmd.Context())
	}

	if err := writeCheckOutput(cmd, app, results, flags.asJSON); err != nil {
		return err
	}

	return runErr
}

func selectTargets(targets []domain.MonitorTarget, index int) ([]domain.MonitorTarget, error) {
	if index < 0 {
		return targets, nil
	}
	if index >= len(targets) {
		return nil, fmt.Errorf("target index %d out of range, %d targets configured", index, len(targets))
	}
	return targets[index : index+1], nil
}

func writeCheckOutput(cmd *cobra.Command, app *app, results []application.CheckResult, asJSON bool) error {
	if asJSON {
		output := make([]checkResultOutput, 0, len(results))
		for _, result := range results {
			output = append(output, toCheckResultOutput(result))
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	rendered, err := app.resultsRenderer(results, report.Options{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render results: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func toCheckResultOutput(result application.CheckResult) checkResultOutput {
	output := checkResultOutput{
		PackageFamilyName: result.Target.PackageFamilyName,
		Channel:           result.Target.Channel.String(),
		Matched:           result.Matched,
		Lines:             result.Lines,
		NewVersion:        result.NewVersion,
		Novel:             result.Novel,
		DryRun:            result.DryRun,
		Published:         result.Published,
		CommitID:          result.CommitID,
		Notified:          result.Notified,
	}
	if result.PublishErr != nil {
		output.PublishError = result.PublishErr.Error()
	}
	if result.Err != nil {
		output.Error = result.Err.Error()
	}
	return output
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
