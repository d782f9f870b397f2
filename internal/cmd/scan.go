package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/omopscript/internal/display"
	"github.com/harrison/omopscript/internal/models"
	"github.com/harrison/omopscript/internal/scanner"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List discovered entries and their inferred dates",
		Long: `Scan the configured extract directories and print every entry in the
order it would be imported, with its inferred date and source type.
Nothing is written. Log output goes to stderr so the table can be piped.

Examples:
  omopscript scan
  omopscript scan --type cosd --type rtds`,
		Args: cobra.NoArgs,
		RunE: runScan,
	}

	cmd.Flags().StringSlice("type", nil, "Only list entries of these source types (cds, cosd, sact, rtds)")

	return cmd
}

// typeFilter parses the --type values. An empty result keeps every type.
func typeFilter(cmd *cobra.Command) (map[models.SourceType]bool, error) {
	values, err := cmd.Flags().GetStringSlice("type")
	if err != nil {
		return nil, err
	}
	keep := make(map[models.SourceType]bool, len(values))
	for _, v := range values {
		st, err := models.ParseSourceType(v)
		if err != nil {
			return nil, err
		}
		keep[st] = true
	}
	return keep, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	keep, err := typeFilter(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateSources(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, closeLog, err := newRunLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	result, err := scanner.New(log).ScanAll(sourceDirectories(cfg))
	if err != nil {
		return err
	}

	files := result.Files
	if len(keep) > 0 {
		files = nil
		for _, f := range result.Files {
			if keep[f.Type] {
				files = append(files, f)
			}
		}
	}

	out := cmd.OutOrStdout()
	if err := display.RenderScanTable(out, models.SortByDate(files), cfg.DateLayout); err != nil {
		return err
	}

	summary := models.Summarize(files)
	fmt.Fprintf(out, "\n%d entries, %d with unknown dates\n", summary.Total, summary.Unknown)
	return nil
}
