package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SourceType identifies which extract feed a file belongs to
type SourceType string

const (
	SourceCDS  SourceType = "cds"
	SourceCOSD SourceType = "cosd"
	SourceSACT SourceType = "sact"
	SourceRTDS SourceType = "rtds"
)

// HeaderTypeOrder is the order in which staging tables are cleared at the top of
// every generated script. It does not depend on which types were discovered.
var HeaderTypeOrder = []SourceType{SourceCDS, SourceRTDS, SourceSACT, SourceCOSD}

// ScanTypeOrder is the order in which source directories are scanned and their
// files concatenated before sorting.
var ScanTypeOrder = []SourceType{SourceCDS, SourceCOSD, SourceSACT, SourceRTDS}

// UnknownDate is the sort key given to files whose date could not be inferred.
// It is the zero time.Time, which sorts before every real date.
var UnknownDate = time.Time{}

// IsValid reports whether s is one of the four known source types
func (s SourceType) IsValid() bool {
	switch s {
	case SourceCDS, SourceCOSD, SourceSACT, SourceRTDS:
		return true
	default:
		return false
	}
}

// String returns the lowercase tag used on the import tool command line
func (s SourceType) String() string {
	return string(s)
}

// ParseSourceType converts a case-insensitive tag into a SourceType
func ParseSourceType(value string) (SourceType, error) {
	st := SourceType(strings.ToLower(strings.TrimSpace(value)))
	if !st.IsValid() {
		return "", fmt.Errorf("unknown source type %q (expected cds, cosd, sact or rtds)", value)
	}
	return st, nil
}

// DataFile is a discovered extract file or unpacked extract directory
type DataFile struct {
	Path  string     // Path as discovered (configured directory joined with entry name)
	Type  SourceType // Source feed the entry was found under
	Date  time.Time  // Inferred date, or UnknownDate
	Dated bool       // Date was inferred from the name
}

// NewDataFile builds a DataFile from an optional extracted date.
// When ok is false the entry keeps UnknownDate so it sorts first.
func NewDataFile(path string, sourceType SourceType, date time.Time, ok bool) DataFile {
	if !ok {
		date = UnknownDate
	}
	return DataFile{Path: path, Type: sourceType, Date: date, Dated: ok}
}

// HasKnownDate returns true if a date was inferred for the file. A name that
// really reads 00010101 is known even though its date equals UnknownDate.
func (f DataFile) HasKnownDate() bool {
	return f.Dated
}

// SortByDate returns a copy of files ordered by ascending date.
// Files sharing a date keep their discovery order.
func SortByDate(files []DataFile) []DataFile {
	sorted := make([]DataFile, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
