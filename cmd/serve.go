package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/treeslice/internal/config"
	"github.com/lehigh-university-libraries/treeslice/internal/handlers"
	"github.com/lehigh-university-libraries/treeslice/internal/inspection"
	"github.com/lehigh-university-libraries/treeslice/internal/measurement"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for the intake interface",
		Long: `Starts the Treeslice web interface on the specified port.

The web interface lets you upload cross-section photos, review the extracted
capture time, GPS position and suggested diameter, and save each one as an
inspection record. Saved records can be downloaded in any export format.`,
		Example: `  # Start server on default port 8888
  treeslice serve

  # Start server on custom port with a vision model suggesting diameters
  TREESLICE_MEASUREMENT_SOURCE=ollama treeslice serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			source, err := measurement.NewSource(cfg.Measurement)
			if err != nil {
				return err
			}

			handler := handlers.New(inspection.NewSession(source), cfg)

			// Set up routes
			mux := http.NewServeMux()
			handler.Routes(mux)

			addr := ":" + cfg.Port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Treeslice interface available",
					"addr", addr,
					"url", "http://localhost"+addr,
					"measurement_source", source.Name())
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}
