package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	configFile string
	logLevel   string
	logFormat  string
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "versiondb",
		Short:         "versiondb: track Minecraft builds published through Windows Update",
		Long:          "versiondb polls the Windows Update delivery service for new Minecraft builds, records them in the version ledger and changelog, then commits, pushes and announces each new version.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", envOrDefault("VERSIONDB_CONFIG", ""), "Config file (default ./versiondb.toml when present)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(
		newVersionCmd(),
		newCheckCmd(flags),
		newVersionsCmd(flags),
		newHistoryCmd(flags),
		newConfigCmd(flags),
	)

	return rootCmd
}

func (f *globalFlags) wireOptions() wireOptions {
	return wireOptions{
		ConfigFile: f.configFile,
		LogLevel:   f.logLevel,
		LogFormat:  f.logFormat,
	}
}
