package script

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/harrison/omopscript/internal/models"
)

// windowsDrivePath matches "C:\..." and "C:/..."
var windowsDrivePath = regexp.MustCompile(`^[A-Za-z]:[\\/]`)

// psEscaper escapes the characters PowerShell interprets inside a
// double-quoted string
var psEscaper = strings.NewReplacer("`", "``", `"`, "`\"", "$", "`$")

// quote wraps s in double quotes for PowerShell
func quote(s string) string {
	return `"` + psEscaper.Replace(s) + `"`
}

// isRootedToolPath reports whether the tool path must be used as-is rather
// than relative to the script's working directory. Both Windows and POSIX
// forms are recognised since the scripts are usually generated on one
// platform and run on another.
func isRootedToolPath(p string) bool {
	switch {
	case strings.HasPrefix(p, `\`), strings.HasPrefix(p, "/"):
		return true
	case strings.HasPrefix(p, `.\`), strings.HasPrefix(p, "./"):
		return true
	case strings.HasPrefix(p, `..\`), strings.HasPrefix(p, "../"):
		return true
	}
	return windowsDrivePath.MatchString(p)
}

// invocation renders how the tool is called at the start of each line
func invocation(toolPath string) string {
	target := toolPath
	if !isRootedToolPath(toolPath) {
		target = `.\` + toolPath
	}
	if strings.IndexFunc(target, unicode.IsSpace) >= 0 {
		return "& " + quote(target)
	}
	return target
}

// commandSet renders the four tool verbs for a fixed invocation
type commandSet struct {
	tool string
}

func (c commandSet) stageClear(t models.SourceType) string {
	return fmt.Sprintf("%s stage clear --type %s", c.tool, t)
}

func (c commandSet) stageLoad(t models.SourceType, path string) string {
	return fmt.Sprintf("%s stage load --type %s %s", c.tool, t, quote(path))
}

func (c commandSet) transform(t models.SourceType) string {
	return fmt.Sprintf("%s transform --type %s", c.tool, t)
}

func (c commandSet) purge() string {
	return c.tool + " purge"
}
