package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The token patterns below are heuristics over free-form submission names.
// They can match numbers that are not years (version or record counts, for
// example "May 15 records") and month names inside other words ("Decision").
// That behaviour is relied on by existing extract archives and is kept as is.
var (
	wordedMonthPattern = regexp.MustCompile(`(?i)(January|Jan|February|Feb|March|Mar|April|Apr|May|June|Jun|July|Jul|August|Aug|September|Sep|October|Oct|November|Nov|December|Dec)`)

	// a year 2000-2999 between a leading space/underscore and a trailing underscore/period/space
	fourDigitYearPattern = regexp.MustCompile(`[ _](2\d{3})[_\. ]`)

	// the trailing class is underscore plus the whole range space..period,
	// so it also accepts characters such as '(' ',' and '-'
	twoDigitYearPattern = regexp.MustCompile(`[ _](\d{2})[_ -\.]`)
)

var monthsByName = map[string]time.Month{
	"january":   time.January,
	"jan":       time.January,
	"february":  time.February,
	"feb":       time.February,
	"march":     time.March,
	"mar":       time.March,
	"april":     time.April,
	"apr":       time.April,
	"may":       time.May,
	"june":      time.June,
	"jun":       time.June,
	"july":      time.July,
	"jul":       time.July,
	"august":    time.August,
	"aug":       time.August,
	"september": time.September,
	"sep":       time.September,
	"october":   time.October,
	"oct":       time.October,
	"november":  time.November,
	"nov":       time.November,
	"december":  time.December,
	"dec":       time.December,
}

// MonthFromName returns the month of the leftmost English month name (full or
// three-letter abbreviation, any case) appearing anywhere in name.
func MonthFromName(name string) (time.Month, bool) {
	match := wordedMonthPattern.FindStringSubmatch(name)
	if match == nil {
		return 0, false
	}
	month, ok := monthsByName[strings.ToLower(match[1])]
	return month, ok
}

// FourDigitYear returns the first separator-delimited 2xxx year token in name
func FourDigitYear(name string) (int, bool) {
	return firstYearToken(fourDigitYearPattern, name, 0)
}

// TwoDigitYear returns the first separator-delimited two digit token in name,
// read as a year in the 2000s.
func TwoDigitYear(name string) (int, bool) {
	return firstYearToken(twoDigitYearPattern, name, 2000)
}

// YearFromName prefers a four digit year token and falls back to a two digit one
func YearFromName(name string) (int, bool) {
	if year, ok := FourDigitYear(name); ok {
		return year, true
	}
	return TwoDigitYear(name)
}

func firstYearToken(pattern *regexp.Regexp, name string, base int) (int, bool) {
	match := pattern.FindStringSubmatch(name)
	if match == nil {
		return 0, false
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return base + value, true
}
