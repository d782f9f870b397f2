package dates

import (
	"strings"
	"time"

	"github.com/harrison/omopscript/internal/models"
)

// Extractor infers a date from a bare file or directory name (no directory part)
type Extractor func(name string) (time.Time, bool)

// cosdFixedFormatMinLength is the shortest name the fixed-position COSD
// layout applies to, e.g. "COSD_INFOFLEX(CT)_RTH_2020-04-01_2020-04-30_2020-06-01T10_28_19.zip"
const cosdFixedFormatMinLength = 35

// cosdFixedFormatOffset and cosdFixedFormatLength locate the first date in that layout
const (
	cosdFixedFormatOffset = 22
	cosdFixedFormatLength = 10
)

// firstOf chains strategies, returning the first date any of them finds
func firstOf(strategies ...Extractor) Extractor {
	return func(name string) (time.Time, bool) {
		for _, strategy := range strategies {
			if t, ok := strategy(name); ok {
				return t, true
			}
		}
		return time.Time{}, false
	}
}

// unlessWordedMonth only runs strategy for names without a month name
func unlessWordedMonth(strategy Extractor) Extractor {
	return func(name string) (time.Time, bool) {
		if _, found := MonthFromName(name); found {
			return time.Time{}, false
		}
		return strategy(name)
	}
}

// wholeNameShortDate handles directories named exactly yyyyMMdd
func wholeNameShortDate(name string) (time.Time, bool) {
	return ParseShortDate(name)
}

// wordedMonthAndYear handles names like "March 2023 Submission Final.zip"
// and "RTH_RTDS_Apr_2020_6.zip". The result is the first day of that month.
func wordedMonthAndYear(name string) (time.Time, bool) {
	month, ok := MonthFromName(name)
	if !ok {
		return time.Time{}, false
	}
	year, ok := YearFromName(name)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
}

// lastSegmentShortDate handles "ABC_DEF_20230115.csv": the first eight
// characters after the final underscore.
func lastSegmentShortDate(name string) (time.Time, bool) {
	parts := strings.Split(name, "_")
	if len(parts) == 1 {
		return time.Time{}, false
	}
	text, ok := substring(parts[len(parts)-1], 0, len(shortDateLayout))
	if !ok {
		return time.Time{}, false
	}
	return ParseShortDate(text)
}

// sactOffsetShortDate handles "SACT_v3-20230101-20230131.csv"
func sactOffsetShortDate(name string) (time.Time, bool) {
	text, ok := substring(name, 8, len(shortDateLayout))
	if !ok {
		return time.Time{}, false
	}
	return ParseShortDate(text)
}

// cosdFixedFormat reads the period start date from the InfoFlex export layout
func cosdFixedFormat(name string) (time.Time, bool) {
	if len([]rune(name)) < cosdFixedFormatMinLength {
		return time.Time{}, false
	}
	text, ok := substring(name, cosdFixedFormatOffset, cosdFixedFormatLength)
	if !ok {
		return time.Time{}, false
	}
	return ParseLooseDate(text)
}

var (
	// CDS extracts carry a yyyyMMdd stamp after the last underscore
	CDS Extractor = lastSegmentShortDate

	// COSD submissions are either hand-named with a worded month or are
	// fixed-layout InfoFlex exports. A worded month without a year is unknown.
	COSD Extractor = firstOf(wordedMonthAndYear, unlessWordedMonth(cosdFixedFormat))

	// SACT files carry the period start at a fixed offset
	SACT Extractor = sactOffsetShortDate

	// RTDS entries are either yyyyMMdd directories or worded month archives
	RTDS Extractor = firstOf(wholeNameShortDate, wordedMonthAndYear)
)

// ForType returns the extractor for a source type, or nil for an unknown type
func ForType(sourceType models.SourceType) Extractor {
	switch sourceType {
	case models.SourceCDS:
		return CDS
	case models.SourceCOSD:
		return COSD
	case models.SourceSACT:
		return SACT
	case models.SourceRTDS:
		return RTDS
	default:
		return nil
	}
}
