package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "treeslice",
		Short: "Tree cross-section intake from field photos",
		Long: `Treeslice turns field photos of tree cross-sections into inspection records.

Each photo is read for its capture time and GPS position, fingerprinted with a
perceptual hash and paired with a diameter measurement. Records can be reviewed
in the web interface or processed in bulk from the command line and exported
as CSV, Parquet, YAML or JSON.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			if !cmd.Flags().Changed("log-level") {
				if env := os.Getenv("LOG_LEVEL"); env != "" {
					logLevel = env
				}
			}
			setupLogger(logLevel)
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to a YAML config file (default treeslice.yaml when present)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newInspectCmd())

	return cmd
}

func setupLogger(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))
}
