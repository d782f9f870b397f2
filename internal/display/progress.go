package display

import (
	"fmt"
	"io"
	"path/filepath"
)

// ProgressIndicator reports the scripts written by a generate run
type ProgressIndicator struct {
	writer  io.Writer
	total   int
	current int
	color   bool
}

// NewProgressIndicator creates a progress indicator for total items
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer: w,
		total:  total,
		color:  wantsColor(w),
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start(outputDir string) {
	fmt.Fprintf(p.writer, "Writing scripts to %s:\n", outputDir)
}

// Step displays progress for the current item as "[N/Total] basename"
func (p *ProgressIndicator) Step(filename string) {
	p.current++
	line := fmt.Sprintf("  [%d/%d] %s\n", p.current, p.total, filepath.Base(filename))
	fmt.Fprint(p.writer, paint(p.color, colorCyan, line))
}

// Complete displays the success line
func (p *ProgressIndicator) Complete() {
	fmt.Fprint(p.writer, paint(p.color, colorGreen, "✓"))
	noun := "scripts"
	if p.current == 1 {
		noun = "script"
	}
	fmt.Fprintf(p.writer, " Wrote %d %s\n", p.current, noun)
}

// DisplayDryRun announces that nothing will be written
func DisplayDryRun(w io.Writer, outputDir string) {
	fmt.Fprintf(w, "Dry run: scripts would be written to %s\n", outputDir)
}
