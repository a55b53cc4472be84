package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"VirtualScreening/internal/app"
	"VirtualScreening/internal/config"
	"VirtualScreening/internal/logging"
)

var (
	configFile    string
	logLevel      string
	withDashboard bool
	dashInput     string
	dashOutput    string
)

var rootCmd = &cobra.Command{
	Use:           "screening",
	Short:         "Virtual screening of natural substrates against synthetic inhibitors",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch compounds, compute descriptors, score, store and export",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, logger, _ := build()
		summary, err := application.Run(cmd.Context(), withDashboard)
		if err != nil {
			return err
		}
		logger.Info("run complete",
			"processed", summary.Processed,
			"stored", summary.Stored,
			"skipped", summary.Skipped,
			"exported", summary.Exported)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Rewrite the export files from the existing result store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, logger, _ := build()
		exported, err := application.Export(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info("export complete", "files", exported)
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render the comparison dashboard from the exported CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, logger, cfg := build()
		input, output := cfg.Dashboard.Input, cfg.Dashboard.Output
		if dashInput != "" {
			input = dashInput
		}
		if dashOutput != "" {
			output = dashOutput
		}
		if err := application.Dashboard(cmd.Context(), input, output); err != nil {
			return err
		}
		logger.Info("dashboard saved", "path", output)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to YAML config (defaults to $SCREENING_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	runCmd.Flags().BoolVar(&withDashboard, "dashboard", false, "Render the dashboard after exporting")

	dashboardCmd.Flags().StringVar(&dashInput, "input", "", "CSV to read (defaults to dashboard.input)")
	dashboardCmd.Flags().StringVar(&dashOutput, "output", "", "PNG to write (defaults to dashboard.output)")

	rootCmd.AddCommand(runCmd, exportCmd, dashboardCmd)
}

func loadConfig() config.Config {
	cfg := config.Load(configFile)
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg
}

func build() (*app.Application, *slog.Logger, config.Config) {
	cfg := loadConfig()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	return app.New(cfg, logger), logger, cfg
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.New("error", "text").Error("application stopped", "error", err)
		stop()
		os.Exit(1)
	}
}
