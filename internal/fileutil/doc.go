// Package fileutil provides the directory listing used to discover extract files.
//
// Extract feeds are laid out at most two levels deep, so listings are always
// one level: the immediate files and immediate subdirectories of a directory.
//
// # Ordering
//
// Files are returned before directories, and each group is sorted by name.
// The import order of files that share an inferred date depends on this, so
// the listing must be deterministic across runs and platforms.
//
// # Symlinks
//
// A symlink is classified by what it points at. A dangling symlink is
// reported as a file so that it still appears in the generated script.
//
// # Usage
//
//	listing, err := fileutil.ListEntries("/data/cds")
//	if err != nil {
//	    return err
//	}
//	for _, path := range listing.All() {
//	    fmt.Println(path)
//	}
//
// Year directories only:
//
//	years, err := fileutil.SubDirectories("/data/sact", fileutil.IsIntegerName)
package fileutil
