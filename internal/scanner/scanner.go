// Package scanner discovers extract files for each source type and dates them.
package scanner

import (
	"fmt"
	"path/filepath"

	"github.com/harrison/omopscript/internal/dates"
	"github.com/harrison/omopscript/internal/fileutil"
	"github.com/harrison/omopscript/internal/logger"
	"github.com/harrison/omopscript/internal/models"
)

// Directories holds the configured root directory of each source type
type Directories struct {
	CDS  string
	COSD string
	SACT string
	RTDS string
}

// For returns the directory configured for sourceType
func (d Directories) For(sourceType models.SourceType) string {
	switch sourceType {
	case models.SourceCDS:
		return d.CDS
	case models.SourceCOSD:
		return d.COSD
	case models.SourceSACT:
		return d.SACT
	case models.SourceRTDS:
		return d.RTDS
	default:
		return ""
	}
}

// Result is the outcome of scanning every source directory
type Result struct {
	// Files holds one entry per discovered file or directory, in discovery order
	Files []models.DataFile
	// Unparsed holds the entries whose date could not be inferred
	Unparsed []models.DataFile
}

// Summary counts the result per source type
func (r *Result) Summary() models.ScanSummary {
	return models.Summarize(r.Files)
}

// Scanner walks source directories and builds DataFile records
type Scanner struct {
	logger logger.Logger
}

// New creates a Scanner that reports progress and unparseable names to log.
// A nil log discards all messages.
func New(log logger.Logger) *Scanner {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Scanner{logger: log}
}

// scanDirectory appends a DataFile to res for every immediate file and
// subdirectory of dir. Subdirectories count as entries because some archives
// are unpacked into a directory named after the original zip.
//
// Entries whose name yields no date are logged, given models.UnknownDate and
// also appended to res.Unparsed.
func (s *Scanner) scanDirectory(res *Result, dir string, sourceType models.SourceType, extract dates.Extractor) error {
	if extract == nil {
		return fmt.Errorf("no date extractor for source type %q", sourceType)
	}

	listing, err := fileutil.ListEntries(dir)
	if err != nil {
		return fmt.Errorf("failed to scan %s directory %s: %w", sourceType, dir, err)
	}

	for _, path := range listing.All() {
		s.logger.LogInfo(fmt.Sprintf("Parsing %s", path))

		date, ok := extract(filepath.Base(path))
		f := models.NewDataFile(path, sourceType, date, ok)
		if !ok {
			s.logger.LogWarn(fmt.Sprintf("Cannot parse date from %s filename %s.", sourceType, path))
			res.Unparsed = append(res.Unparsed, f)
		}
		res.Files = append(res.Files, f)
	}

	return nil
}

// ScanCDS scans the CDS directory one level deep
func (s *Scanner) ScanCDS(dir string) ([]models.DataFile, error) {
	return s.scanOne(models.SourceCDS, dir)
}

// ScanCOSD scans the COSD directory one level deep
func (s *Scanner) ScanCOSD(dir string) ([]models.DataFile, error) {
	return s.scanOne(models.SourceCOSD, dir)
}

// ScanSACT scans each year directory ("2020", "2021", ...) under dir.
// Other subdirectories and loose files in dir are ignored.
func (s *Scanner) ScanSACT(dir string) ([]models.DataFile, error) {
	return s.scanOne(models.SourceSACT, dir)
}

// ScanRTDS scans every subdirectory under dir. Loose files in dir are ignored.
func (s *Scanner) ScanRTDS(dir string) ([]models.DataFile, error) {
	return s.scanOne(models.SourceRTDS, dir)
}

func (s *Scanner) scanOne(sourceType models.SourceType, dir string) ([]models.DataFile, error) {
	res := &Result{}
	if err := s.scanType(res, sourceType, dir); err != nil {
		return nil, err
	}
	return res.Files, nil
}

// scanType applies the directory layout of sourceType: CDS and COSD entries
// sit directly in dir, SACT entries under year directories and RTDS entries
// under any subdirectory.
func (s *Scanner) scanType(res *Result, sourceType models.SourceType, dir string) error {
	extract := dates.ForType(sourceType)
	switch sourceType {
	case models.SourceSACT:
		return s.scanSubDirectories(res, dir, sourceType, extract, fileutil.IsIntegerName)
	case models.SourceRTDS:
		return s.scanSubDirectories(res, dir, sourceType, extract, nil)
	default:
		return s.scanDirectory(res, dir, sourceType, extract)
	}
}

func (s *Scanner) scanSubDirectories(res *Result, dir string, sourceType models.SourceType, extract dates.Extractor, keep func(string) bool) error {
	subDirs, err := fileutil.SubDirectories(dir, keep)
	if err != nil {
		return fmt.Errorf("failed to scan %s directory %s: %w", sourceType, dir, err)
	}

	for _, sub := range subDirs {
		if err := s.scanDirectory(res, sub, sourceType, extract); err != nil {
			return err
		}
	}
	return nil
}

// ScanAll scans the four source directories in the order cds, cosd, sact, rtds
// and concatenates the results. The first directory that cannot be read
// aborts the scan.
func (s *Scanner) ScanAll(dirs Directories) (*Result, error) {
	result := &Result{}
	for _, sourceType := range models.ScanTypeOrder {
		dir := dirs.For(sourceType)
		s.logger.LogDebug(fmt.Sprintf("Scanning %s directory %s", sourceType, dir))

		if err := s.scanType(result, sourceType, dir); err != nil {
			return nil, err
		}
	}
	return result, nil
}
