package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Listing holds the immediate entries of one directory
type Listing struct {
	// Dir is the directory that was listed
	Dir string
	// Files contains paths of non-directory entries, sorted by name
	Files []string
	// Dirs contains paths of subdirectories, sorted by name
	Dirs []string
}

// All returns files followed by directories
func (l *Listing) All() []string {
	all := make([]string, 0, len(l.Files)+len(l.Dirs))
	all = append(all, l.Files...)
	all = append(all, l.Dirs...)
	return all
}

// Len returns the total number of entries
func (l *Listing) Len() int {
	return len(l.Files) + len(l.Dirs)
}

// ListEntries lists the immediate files and subdirectories of dir.
// Returned paths are dir joined with the entry name.
func ListEntries(dir string) (*Listing, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	// os.ReadDir returns entries sorted by filename
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	listing := &Listing{
		Dir:   dir,
		Files: make([]string, 0, len(entries)),
		Dirs:  make([]string, 0),
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if isDirEntry(path, entry) {
			listing.Dirs = append(listing.Dirs, path)
		} else {
			listing.Files = append(listing.Files, path)
		}
	}

	return listing, nil
}

// SubDirectories returns the immediate subdirectories of dir whose base name
// satisfies keep. A nil keep returns every subdirectory.
func SubDirectories(dir string, keep func(name string) bool) ([]string, error) {
	listing, err := ListEntries(dir)
	if err != nil {
		return nil, err
	}
	if keep == nil {
		return listing.Dirs, nil
	}

	dirs := make([]string, 0, len(listing.Dirs))
	for _, d := range listing.Dirs {
		if keep(filepath.Base(d)) {
			dirs = append(dirs, d)
		}
	}
	return dirs, nil
}

// IsIntegerName reports whether a directory name is a whole number such as "2021".
// Surrounding whitespace and a leading sign are accepted.
func IsIntegerName(name string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(name))
	return err == nil
}

// IsDir reports whether path exists and is a directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isDirEntry(path string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
