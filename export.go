package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/akashkendre1298/vastureports/model"
	"github.com/akashkendre1298/vastureports/service"
)

type exportOptions struct {
	kind   string
	start  int
	end    int
	format string
	outDir string
}

func newExportCmd(configPath *string) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate one report and write it to disk",
		Example: "  vastureports export --kind clients --start 1 --end 3 --format xlsx\n" +
			"  vastureports export --kind cases --start 4 --end 4 --out ./reports",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			reports, err := newReportService(cfg, nil)
			if err != nil {
				return err
			}
			return runExport(cmd, reports, opts)
		},
	}

	cmd.Flags().StringVar(&opts.kind, "kind", "", "report type: clients, cases or executives")
	cmd.Flags().IntVar(&opts.start, "start", 1, "first month (1-12)")
	cmd.Flags().IntVar(&opts.end, "end", 12, "last month (1-12)")
	cmd.Flags().StringVar(&opts.format, "format", "pdf", "output format: pdf or xlsx")
	cmd.Flags().StringVar(&opts.outDir, "out", ".", "directory to write the report to")

	return cmd
}

func runExport(cmd *cobra.Command, reports *service.ReportService, opts *exportOptions) error {
	kind, err := model.ParseReportKind(opts.kind)
	if err != nil {
		kind = ""
	}
	format, err := model.ParseOutputFormat(opts.format)
	if err != nil {
		return err
	}

	sel := model.Selection{
		Kind:   kind,
		Months: model.MonthRange{Start: opts.start, End: opts.end},
		Format: format,
	}

	artifact, err := reports.Run(cmd.Context(), sel)
	switch {
	case errors.Is(err, service.ErrNoReportTypeSelected):
		return errors.New("Please select a report type.")
	case err != nil:
		return err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(opts.outDir, artifact.Filename)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(artifact.Data))
	return nil
}
