// Package display formats user-facing terminal output for omopscript:
// warnings about entries whose date could not be inferred, progress while
// the scripts are written, and the table printed by the scan command.
//
// # Warning Messages
//
//	warning := display.WarnUnparsedDates(result.Unparsed)
//	warning.Display(os.Stderr)
//
// # Progress Indicators
//
//	progress := display.NewProgressIndicator(os.Stdout, 2)
//	progress.Start(outputDir)
//	progress.Step("stage-only.ps1")
//	progress.Step("stage-and-transform.ps1")
//	progress.Complete()
//
// # Scan Tables
//
//	display.RenderScanTable(os.Stdout, result.Files, "2006-01-02")
//
// Colors come from fatih/color and are only emitted when the writer is a
// terminal. All functions accept io.Writer for testability.
package display
