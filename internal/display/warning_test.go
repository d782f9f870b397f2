package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/harrison/omopscript/internal/models"
)

func boolPtr(b bool) *bool { return &b }

// withNoColor sets the global color.NoColor for the duration of a test
func withNoColor(t *testing.T, v bool) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = v
	t.Cleanup(func() { color.NoColor = prev })
}

func TestDisplayWarning_TitleOnly(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{Title: "Configuration Missing"}

	w.Display(&buf)

	output := buf.String()
	if !strings.Contains(output, "⚠️  Warning: Configuration Missing") {
		t.Errorf("Expected title line in output, got: %q", output)
	}
	// a buffer is not a terminal
	if strings.Contains(output, "\x1b[") {
		t.Errorf("Expected no ANSI codes when writing to a buffer, got: %q", output)
	}
	if strings.Contains(output, "Suggestion:") || strings.Contains(output, "Affected") {
		t.Errorf("Optional sections should be omitted, got: %q", output)
	}
}

func TestDisplayWarning_ForcedColor(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{Title: "Colored", Colorize: boolPtr(true)}

	w.Display(&buf)

	output := buf.String()
	if !strings.HasPrefix(output, "\x1b[33m") {
		t.Errorf("Expected yellow ANSI prefix, got: %q", output)
	}
	if !strings.HasSuffix(output, "\x1b[0m") {
		t.Errorf("Expected ANSI reset suffix, got: %q", output)
	}
}

func TestDisplayWarning_ForcedColorResetsWhenNoColorIsSet(t *testing.T) {
	withNoColor(t, true)

	var buf bytes.Buffer
	w := Warning{Title: "Colored", Message: "body", Colorize: boolPtr(true)}
	w.Display(&buf)

	want := "\x1b[33m⚠️  Warning: Colored\n    body\n\x1b[0m"
	if buf.String() != want {
		t.Errorf("Display() = %q, want %q", buf.String(), want)
	}
}

func TestDisplayWarning_ForcedOffWritesNoEscapes(t *testing.T) {
	withNoColor(t, false)

	var buf bytes.Buffer
	w := Warning{Title: "Plain", Colorize: boolPtr(false)}
	w.Display(&buf)

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected no ANSI codes, got %q", buf.String())
	}
}

func TestDisplayWarning_WithMessage(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{
		Title:   "Deprecated Setting",
		Message: "omop_tool is now tool_path",
	}

	w.Display(&buf)

	if !strings.Contains(buf.String(), "\n    omop_tool is now tool_path\n") {
		t.Errorf("Expected indented message in output, got: %q", buf.String())
	}
}

func TestDisplayWarning_WithFiles(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		wantText string
	}{
		{
			name:     "single entry",
			files:    []string{"/data/cds/extract.csv"},
			wantText: "Affected entry:",
		},
		{
			name:     "multiple entries",
			files:    []string{"/data/cds/a.csv", "/data/cds/b.csv", "/data/rtds/x/c.zip"},
			wantText: "Affected entries:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := Warning{Title: "Undated", Files: tt.files}

			w.Display(&buf)

			output := buf.String()
			if !strings.Contains(output, tt.wantText) {
				t.Errorf("Expected %q in output, got: %s", tt.wantText, output)
			}
			for i, file := range tt.files {
				expected := strings.Repeat(" ", 6) + string(rune('1'+i)) + ". " + file
				if !strings.Contains(output, expected) {
					t.Errorf("Expected entry %q in output, got: %s", expected, output)
				}
			}
		})
	}
}

func TestDisplayWarning_WithSuggestion(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{
		Title:      "Missing Directory",
		Suggestion: "Check cds_directory in omopscript.yaml",
	}

	w.Display(&buf)

	output := buf.String()
	if !strings.Contains(output, "    Suggestion:\n    Check cds_directory in omopscript.yaml\n") {
		t.Errorf("Expected suggestion block in output, got: %q", output)
	}
}

func TestDisplayWarning_SectionOrder(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{
		Title:      "Title",
		Message:    "Message",
		Files:      []string{"file"},
		Suggestion: "Suggestion text",
	}

	w.Display(&buf)

	output := buf.String()
	order := []string{"Title", "Message", "Affected entry:", "1. file", "Suggestion:", "Suggestion text"}
	last := -1
	for _, part := range order {
		idx := strings.Index(output, part)
		if idx <= last {
			t.Fatalf("Expected %q after previous section, got: %q", part, output)
		}
		last = idx
	}
}

func TestWarnUnparsedDates(t *testing.T) {
	files := []models.DataFile{
		{Path: "/data/cds/nounderscore.csv", Type: models.SourceCDS},
		{Path: "/data/rtds/b1/readme", Type: models.SourceRTDS, Date: time.Time{}},
	}

	w := WarnUnparsedDates(files)

	if w.Title != "2 entries with no date in the name" {
		t.Errorf("unexpected title %q", w.Title)
	}
	if len(w.Files) != 2 || w.Files[0] != "[cds] /data/cds/nounderscore.csv" || w.Files[1] != "[rtds] /data/rtds/b1/readme" {
		t.Errorf("unexpected files %v", w.Files)
	}
	if w.Suggestion == "" || w.Message == "" {
		t.Error("Expected message and suggestion to be set")
	}

	single := WarnUnparsedDates(files[:1])
	if single.Title != "1 entry with no date in the name" {
		t.Errorf("unexpected singular title %q", single.Title)
	}
}
