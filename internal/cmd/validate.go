package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/omopscript/internal/config"
	"github.com/harrison/omopscript/internal/fileutil"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and source directories",
		Long: `Load the configuration and check that:
  - every required setting is present
  - the log level is valid
  - each source directory exists and is a directory

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return validateConfigWithOutput(cfg, cmd.OutOrStdout())
		},
	}

	return cmd
}

// validateConfigWithOutput validates cfg and reports each directory to output
func validateConfigWithOutput(cfg *config.Config, output io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	dirs := []struct {
		setting string
		path    string
	}{
		{"cds_directory", cfg.CDSDirectory},
		{"cosd_directory", cfg.COSDDirectory},
		{"sact_directory", cfg.SACTDirectory},
		{"rtds_directory", cfg.RTDSDirectory},
	}

	invalid := 0
	for _, d := range dirs {
		if fileutil.IsDir(d.path) {
			fmt.Fprintf(output, "✓ %s: %s\n", d.setting, d.path)
			continue
		}
		invalid++
		fmt.Fprintf(output, "✗ %s: %s is not a directory\n", d.setting, d.path)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d source directories are invalid", invalid, len(dirs))
	}

	fmt.Fprintln(output, "Configuration is valid")
	return nil
}
