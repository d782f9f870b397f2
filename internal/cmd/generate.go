package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/harrison/omopscript/internal/display"
	"github.com/harrison/omopscript/internal/scanner"
	"github.com/harrison/omopscript/internal/script"
)

func addGenerateFlags(flags *pflag.FlagSet) {
	flags.String("output", "", "Directory to write the scripts to (overrides output_path)")
	flags.String("tool", "", "OMOP tool executable used in the scripts (overrides tool_path)")
	flags.Bool("dry-run", false, "Print the script instead of writing files")
	flags.Bool("stage-only", false, "Only produce stage-only.ps1")
}

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Scan the extract directories and write both import scripts",
		Long: `Scan the configured CDS, COSD, SACT and RTDS directories and write
stage-only.ps1 and stage-and-transform.ps1 to the output directory.

Entries whose date cannot be inferred from the name are still imported,
before every dated entry, and are listed in a warning.

Log lines and warnings go to stderr. Stdout carries only progress and, with
--dry-run, the script itself, so it can be redirected into a .ps1 file.

Examples:
  omopscript generate
  omopscript generate --config appsettings.json
  omopscript generate --output ./scripts --tool "C:\OMOP\omop.exe"
  omopscript generate --stage-only
  omopscript generate --dry-run > stage-and-transform.ps1`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	addGenerateFlags(cmd.Flags())

	return cmd
}

// runGenerate implements the generate command logic
func runGenerate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Generating omop script.")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, closeLog, err := newRunLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	generator, err := script.NewGenerator(script.Options{
		ToolPath:   cfg.ToolPath,
		DateLayout: cfg.DateLayout,
	})
	if err != nil {
		return err
	}

	result, err := scanner.New(log).ScanAll(sourceDirectories(cfg))
	if err != nil {
		log.LogError(err.Error())
		return err
	}
	log.LogSummary(result.Summary())

	if len(result.Unparsed) > 0 {
		display.WarnUnparsedDates(result.Unparsed).Display(cmd.ErrOrStderr())
	}

	stageOnly, _ := cmd.Flags().GetBool("stage-only")

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		display.DisplayDryRun(out, cfg.OutputPath)
		fmt.Fprint(out, generator.Render(result.Files, stageOnly))
		return nil
	}

	var paths []string
	total := 2
	if stageOnly {
		total = 1
		var path string
		if path, err = generator.Write(cfg.OutputPath, result.Files, true); err == nil {
			paths = []string{path}
		}
	} else {
		paths, err = generator.WriteAll(cfg.OutputPath, result.Files)
	}
	progress := display.NewProgressIndicator(out, total)
	progress.Start(cfg.OutputPath)
	for _, p := range paths {
		progress.Step(p)
	}
	if err != nil {
		log.LogError(err.Error())
		return err
	}
	progress.Complete()

	return nil
}
