// Package cmd implements the kit command line.
package cmd

import (
	"github.com/iamNilotpal/kit/config"
	"github.com/iamNilotpal/kit/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries state shared by all subcommands once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *zap.SugaredLogger
}

// load reads the configuration file, if any, and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	cfg := config.DefaultConfig()
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}

	log, err := logger.NewWithOptions("kit", logger.Options{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	return nil
}

// NewRootCmd creates and returns the root cobra command for the kit CLI.
// It sets up all subcommands, command groups and the shared configuration.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "kit",
		Short: "kit - compression, formatting and identifier helpers",
		Long: `kit exposes a set of small helpers from the command line.

Use subcommands to perform different operations:
  - gzip, gunzip: compress and restore files, keeping the original name
  - formats: list archive formats and the compressor each resolves to
  - id: generate random identifiers
  - size, duration: render byte counts and durations for humans`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	groupArchive := "archive"
	groupFormat := "format"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupArchive,
		Title: "Archive Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupFormat,
		Title: "Formatting Commands",
	})

	gzipCmd := newGzipCmd(a)
	gunzipCmd := newGunzipCmd(a)
	formatsCmd := newFormatsCmd(a)
	idCmd := newIDCmd(a)
	sizeCmd := newSizeCmd(a)
	durationCmd := newDurationCmd(a)

	gzipCmd.GroupID = groupArchive
	gunzipCmd.GroupID = groupArchive
	formatsCmd.GroupID = groupArchive
	idCmd.GroupID = groupFormat
	sizeCmd.GroupID = groupFormat
	durationCmd.GroupID = groupFormat

	rootCmd.AddCommand(gzipCmd, gunzipCmd, formatsCmd, idCmd, sizeCmd, durationCmd)

	return rootCmd
}
