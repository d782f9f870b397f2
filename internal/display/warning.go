package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/harrison/omopscript/internal/models"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)

	// Colorize forces ANSI colors on or off. Nil means detect from the writer.
	Colorize *bool
}

// Display shows a formatted warning, in yellow on a terminal
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		if len(w.Files) == 1 {
			b.WriteString("    Affected entry:\n")
		} else {
			b.WriteString("    Affected entries:\n")
		}
		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	enabled := wantsColor(out)
	if w.Colorize != nil {
		enabled = *w.Colorize
	}
	fmt.Fprint(out, paint(enabled, colorYellow, b.String()))
}

// WarnUnparsedDates creates a warning listing entries without an inferred
// date. They are still imported, ahead of every dated entry.
func WarnUnparsedDates(files []models.DataFile) Warning {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, fmt.Sprintf("[%s] %s", f.Type, f.Path))
	}

	noun := "entries"
	if len(files) == 1 {
		noun = "entry"
	}

	return Warning{
		Title:      fmt.Sprintf("%d %s with no date in the name", len(files), noun),
		Message:    "These will be imported before all dated entries.",
		Files:      paths,
		Suggestion: "Rename the files to include a date if import order matters.",
	}
}
