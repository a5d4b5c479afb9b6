package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/versiondb-watch/internal/adapters/render/report"
	"github.com/bnema/versiondb-watch/internal/application"
	"github.com/bnema/versiondb-watch/internal/domain"
	"github.com/spf13/cobra"
)

type versionEntryOutput struct {
	Version  string `json:"version"`
	UpdateID string `json:"update_id"`
}

type channelVersionsOutput struct {
	Channel  string               `json:"channel"`
	Versions []versionEntryOutput `json:"versions"`
}

func newVersionsCmd(global *globalFlags) *cobra.Command {
	var (
		channel string
		latest  int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List versions recorded in the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter *domain.ReleaseChannel
			if channel != "" {
				parsed, err := domain.ParseReleaseChannel(channel)
				if err != nil {
					return err
				}
				filter = &parsed
			}

			opts := global.wireOptions()
			opts.LogOutput = cmd.ErrOrStderr()
			app, err := wireApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			groups, err := app.service.ListVersions(cmd.Context(), filter)
			if err != nil {
				return err
			}

			return writeVersionsOutput(cmd, app, groups, latest, asJSON)
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "", "Only list one channel: release, beta or preview")
	cmd.Flags().IntVar(&latest, "latest", 0, "Show only the newest N versions per channel")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output versions as JSON")

	return cmd
}

func writeVersionsOutput(cmd *cobra.Command, app *app, groups []application.ChannelVersions, latest int, asJSON bool) error {
	if asJSON {
		output := make([]channelVersionsOutput, 0, len(groups))
		for _, group := range groups {
			entries := group.Entries
			if latest > 0 && len(entries) > latest {
				entries = entries[len(entries)-latest:]
			}

			versions := make([]versionEntryOutput, 0, len(entries))
			for _, entry := range entries {
				versions = append(versions, versionEntryOutput{Version: entry.Version, UpdateID: entry.UpdateID})
			}
			output = append(output, channelVersionsOutput{Channel: group.Channel.String(), Versions: versions})
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	rendered, err := app.versionRenderer(groups, report.Options{Now: app.now(), Latest: latest})
	if err != nil {
		return fmt.Errorf("render versions: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
