// Package script renders the PowerShell import scripts that drive the OMOP
// tool through stage clear, stage load, transform and purge.
package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harrison/omopscript/internal/filelock"
	"github.com/harrison/omopscript/internal/models"
)

// Output file names
const (
	StageOnlyFileName         = "stage-only.ps1"
	StageAndTransformFileName = "stage-and-transform.ps1"
)

// DefaultDateLayout is used when Options.DateLayout is empty
const DefaultDateLayout = "2006-01-02"

// ErrNoToolPath is returned by NewGenerator when no tool path is given
var ErrNoToolPath = errors.New("tool path is required")

// Options configures a Generator
type Options struct {
	// ToolPath is the OMOP tool executable. Relative paths are invoked as .\<path>.
	ToolPath string
	// DateLayout formats dates in progress lines and comments.
	DateLayout string
}

// Generator renders import scripts. It holds no per-run state, so the same
// input always renders the same bytes.
type Generator struct {
	cmd        commandSet
	dateLayout string
}

// NewGenerator creates a Generator from opts
func NewGenerator(opts Options) (*Generator, error) {
	if strings.TrimSpace(opts.ToolPath) == "" {
		return nil, ErrNoToolPath
	}
	layout := opts.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}
	return &Generator{
		cmd:        commandSet{tool: invocation(opts.ToolPath)},
		dateLayout: layout,
	}, nil
}

// FileName returns the output file name for the variant
func FileName(stageOnly bool) string {
	if stageOnly {
		return StageOnlyFileName
	}
	return StageAndTransformFileName
}

// Render builds the script text. Files are sorted by date, keeping discovery
// order for ties, so entries with an unknown date come first.
//
// The stage-only variant loads every file. The full variant additionally
// transforms and clears the type after each load and purges once at the end.
func (g *Generator) Render(files []models.DataFile, stageOnly bool) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
	}

	line("# Clear staging tables.")
	for _, t := range models.HeaderTypeOrder {
		line(g.cmd.stageClear(t))
	}

	line("# Stage and transform.")

	sorted := models.SortByDate(files)
	for i, f := range sorted {
		date := f.Date.Format(g.dateLayout)

		line("")
		line(fmt.Sprintf(`Write-Output "Importing item %d of %d. (%s)"`, i+1, len(sorted), date))
		line("# " + date)
		line(g.cmd.stageLoad(f.Type, f.Path))

		if !stageOnly {
			line(g.cmd.transform(f.Type))
			line(g.cmd.stageClear(f.Type))
		}
	}

	if !stageOnly {
		line(g.cmd.purge())
	}

	return b.String()
}

// Write renders one variant into outputDir and returns the written path
func (g *Generator) Write(outputDir string, files []models.DataFile, stageOnly bool) (string, error) {
	written, err := filelock.WriteAll(outputDir, filelock.Output{
		Name: FileName(stageOnly),
		Data: []byte(g.Render(files, stageOnly)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to write script: %w", err)
	}
	return written[0], nil
}

// WriteAll renders both variants into outputDir, stage-only first. If the
// second write fails the first script is left in place.
func (g *Generator) WriteAll(outputDir string, files []models.DataFile) ([]string, error) {
	written, err := filelock.WriteAll(outputDir,
		filelock.Output{Name: StageOnlyFileName, Data: []byte(g.Render(files, true))},
		filelock.Output{Name: StageAndTransformFileName, Data: []byte(g.Render(files, false))},
	)
	if err != nil {
		return written, fmt.Errorf("failed to write scripts: %w", err)
	}
	return written, nil
}
