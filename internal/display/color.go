package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// wantsColor reports whether ANSI colors should be written to w
func wantsColor(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// paint wraps s in the escape sequence for attr and a reset. The codes are
// written directly: fatih/color's Fprint skips the reset when color.NoColor
// is set, even on a Color that was forced on.
func paint(enabled bool, attr color.Attribute, s string) string {
	if !enabled {
		return s
	}
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", attr, s)
}

const (
	colorYellow = color.FgYellow
	colorCyan   = color.FgCyan
	colorGreen  = color.FgGreen
)
