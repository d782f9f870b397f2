package display

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/harrison/omopscript/internal/models"
)

// UnknownDateLabel is printed in place of a date that could not be inferred
const UnknownDateLabel = "unknown"

// RenderScanTable writes one row per entry with its date, type and path.
// Rows keep the order of files.
func RenderScanTable(out io.Writer, files []models.DataFile, layout string) error {
	if len(files) == 0 {
		_, err := fmt.Fprintln(out, "No entries found.")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTYPE\tPATH")

	for _, f := range files {
		date := UnknownDateLabel
		if f.HasKnownDate() {
			date = f.Date.Format(layout)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", date, f.Type, f.Path)
	}

	return tw.Flush()
}
