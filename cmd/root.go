// Package cmd provides the root command and CLI setup for covmerge.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mouse-blink/covmerge/internal/adapter"
	"github.com/mouse-blink/covmerge/internal/config"
	"github.com/mouse-blink/covmerge/internal/controller"
	"github.com/mouse-blink/covmerge/internal/domain"
)

var settings = config.New()
var logger = zap.NewNop()
var workflow domain.Workflow

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "covmerge",
		Short: "Browser code coverage aggregator",
		Long: `covmerge merges per-page browser coverage reports into one covered
range set per resource, writes the covered part of every script and
stylesheet, and summarises how much of each resource was used.

Resources whose content differs between pages, or that never came with
content, are excluded and listed in excluded.txt and excludedEmpty.txt.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.ReadFile(settings); err != nil {
				return err
			}

			l, err := newLogger(settings.GetBool(config.KeyVerbose))
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			logger = l

			if workflow == nil {
				workflow = newWorkflow(cmd, logger)
			}

			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
	}
	cmd.PersistentFlags().BoolP(config.KeyVerbose, "v", false, "enable debug logging")
	cmd.PersistentFlags().String(config.KeyConfig, "", "path to a YAML config file")
	_ = config.BindFlags(settings, cmd.PersistentFlags())

	return cmd
}

// Execute adds all child commands to the root command and runs it with a
// context cancelled on SIGINT or SIGTERM.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg.Build()
}

func newWorkflow(cmd *cobra.Command, logger *zap.Logger) domain.Workflow {
	fs := adapter.NewLocalCoverageFS()

	return domain.NewWorkflow(
		fs,
		adapter.NewJSONReportDecoder(),
		adapter.SHA256Fingerprint,
		adapter.NewReportStore(fs),
		controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout())),
		logger,
	)
}
