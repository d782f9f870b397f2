package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for omopscript.
// Running it without a subcommand behaves like "omopscript generate".
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "omopscript",
		Short: "Generate OMOP import scripts from extract directories",
		Long: `omopscript scans the CDS, COSD, SACT and RTDS extract directories,
infers a date for every file from its name, and writes two PowerShell
scripts that drive the OMOP import tool in date order:

  stage-only.ps1            clear staging, then stage every file
  stage-and-transform.ps1   stage, transform and clear each file, then purge

Configuration is read from omopscript.yaml, omopscript.yml or
appsettings.json in the working directory unless --config is given.`,
		Version: Version,
		Args:    cobra.NoArgs,
		RunE:    runGenerate,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	addConfigFlags(cmd.PersistentFlags())
	addGenerateFlags(cmd.Flags())

	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}
