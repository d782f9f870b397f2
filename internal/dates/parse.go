// Package dates infers calendar dates from extract file and directory names.
//
// Every function here is pure and total: a name that does not follow any
// known convention yields ok == false rather than an error or panic.
package dates

import (
	"strings"
	"time"
)

// shortDateLayout is the compact yyyyMMdd form used throughout the extract feeds
const shortDateLayout = "20060102"

// looseLayouts are tried in order by ParseLooseDate
var looseLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2006.01.02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"02-Jan-2006",
	"2 Jan 2006",
	"2 January 2006",
	time.RFC3339,
}

// ParseShortDate parses text as a strict yyyyMMdd date.
// The text must be exactly eight ASCII digits naming a real calendar day.
func ParseShortDate(text string) (time.Time, bool) {
	if len(text) != len(shortDateLayout) {
		return time.Time{}, false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return time.Time{}, false
		}
	}

	t, err := time.Parse(shortDateLayout, text)
	if err != nil || t.Year() < 1 {
		return time.Time{}, false
	}
	return t, true
}

// ParseLooseDate parses a date or date-time string in any of a handful of
// common layouts. Surrounding whitespace is ignored. Only the calendar day of
// the result is meaningful to callers.
func ParseLooseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	for _, layout := range looseLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// substring returns length characters of s starting at character offset start.
// Offsets count runes, not bytes.
func substring(s string, start, length int) (string, bool) {
	r := []rune(s)
	if start < 0 || length < 0 || start+length > len(r) {
		return "", false
	}
	return string(r[start : start+length]), true
}
