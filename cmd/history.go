package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/versiondb-watch/internal/adapters/render/report"
	"github.com/spf13/cobra"
)

const defaultHistoryLimit = 20

func newHistoryCmd(global *globalFlags) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent checks from the local run journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}

			opts := global.wireOptions()
			opts.LogOutput = cmd.ErrOrStderr()
			app, err := wireApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			entries, err := app.service.History(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			rendered, err := app.historyRenderer(entries, report.Options{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render history: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "Number of checks to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output history as JSON")

	return cmd
}
