package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lehigh-university-libraries/treeslice/internal/export"
	"github.com/lehigh-university-libraries/treeslice/internal/inspection"
	"github.com/lehigh-university-libraries/treeslice/internal/measurement"
	"github.com/lehigh-university-libraries/treeslice/internal/models"
	"github.com/spf13/cobra"
)

type inspectOptions struct {
	treeID    string
	location  string
	timestamp *string
	diameter  *float64
	output    string
	format    string
	distance  int
}

func newInspectCmd() *cobra.Command {
	var (
		opts      inspectOptions
		diameter  float64
		timestamp string
	)

	cmd := &cobra.Command{
		Use:   "inspect [files...]",
		Short: "Process cross-section photos into inspection records",
		Long: `Runs each photo through metadata extraction, fingerprinting and
classification, saving one inspection record per photo in the order given.

The records are printed as a table and written to the output file. Photos that
cannot be decoded are reported and skipped.`,
		Example: `  # Record two photos of the same tree at 35 cm
  treeslice inspect slice1.jpg slice2.jpg --id T-104 --location "ROW 12" --diameter 35

  # Let a simulated source suggest diameters and export Parquet
  TREESLICE_MEASUREMENT_SOURCE=simulated treeslice inspect photos/*.jpg --format parquet`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			source, err := measurement.NewSource(cfg.Measurement)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("diameter") {
				opts.diameter = &diameter
			}
			if cmd.Flags().Changed("timestamp") {
				opts.timestamp = &timestamp
			}
			if !cmd.Flags().Changed("max-distance") {
				opts.distance = cfg.DuplicateDistance
			}
			if opts.output == "" {
				opts.output = export.Filename(opts.format)
			}

			records, err := runInspect(cmd.Context(), inspection.NewSession(source), args, opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			slog.Info("Export written", "path", opts.output, "format", opts.format, "records", len(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.treeID, "id", "", "Tree identifier (default Unknown)")
	cmd.Flags().StringVar(&opts.location, "location", "", "Location, e.g. a ROW corridor")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "Timestamp used when a photo has none")
	cmd.Flags().Float64Var(&diameter, "diameter", 0, "Diameter in centimeters (default: the source's suggestion)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default tree_data.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", export.FormatCSV, "Export format: csv, parquet, yaml, json")
	cmd.Flags().IntVar(&opts.distance, "max-distance", 10, "Hamming distance at or below which photos are flagged as near duplicates")

	return cmd
}

// runInspect analyzes and saves each file in order, then renders and exports
// the result set. Per-file failures are logged and do not stop the run.
func runInspect(ctx context.Context, session *inspection.Session, files []string, opts inspectOptions, out io.Writer) ([]models.InspectionRecord, error) {
	// saved[i] is the file behind records[i]
	var saved []string
	for _, path := range files {
		if err := inspectFile(ctx, session, path, opts); err != nil {
			slog.Error("Skipping photo", "path", path, "err", err)
			continue
		}
		saved = append(saved, path)
	}

	records := session.Records()
	if len(records) == 0 {
		return nil, errors.New("no photos could be processed")
	}

	fmt.Fprintln(out, export.RenderTable(records))

	for _, pair := range inspection.NearDuplicates(records, opts.distance) {
		slog.Warn("Possible duplicate photos",
			"first", saved[pair.First],
			"second", saved[pair.Second],
			"distance", pair.Distance)
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := export.Write(f, opts.format, records); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", opts.output, err)
	}

	return records, nil
}

func inspectFile(ctx context.Context, session *inspection.Session, path string, opts inspectOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	analysis, err := session.Analyze(ctx, inspection.Upload{Filename: filepath.Base(path), Data: data})
	if err != nil {
		return err
	}

	_, err = session.Confirm(analysis.ID, inspection.Confirmation{
		TreeID:     opts.treeID,
		Location:   opts.location,
		Timestamp:  opts.timestamp,
		DiameterCM: opts.diameter,
	})
	if err != nil {
		_ = session.Discard(analysis.ID)
		return err
	}
	return nil
}
