package normalize

import (
	"regexp"
	"strconv"
	"time"

	"github.com/gaurav-prasanna/flyerpipe/core"
)

// datePattern matches day-first dates such as "22. 03. 2025" or "1.3.2025",
// but not digits that are part of a longer number.
var datePattern = regexp.MustCompile(`\b(\d{1,2})\.\s*(\d{1,2})\.\s*(\d{4})\b`)

// rangeSeparator splits "from - to" ranges. En and em dashes show up in
// copy-pasted shop texts.
var rangeSeparator = regexp.MustCompile(`[-\x{2013}\x{2014}]`)

// ParseRange extracts the validity window from a flyer's date text.
//
// The first date becomes validFrom. validTo is the first date after a range
// separator that follows validFrom. Either value is core.Unknown when it
// cannot be determined.
func ParseRange(text string) (validFrom, validTo string) {
	loc := datePattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return core.Unknown, core.Unknown
	}
	validFrom = canonicalDate(text[loc[2]:loc[3]], text[loc[4]:loc[5]], text[loc[6]:loc[7]])

	rest := text[loc[1]:]
	sep := rangeSeparator.FindStringIndex(rest)
	if sep == nil {
		return validFrom, core.Unknown
	}

	m := datePattern.FindStringSubmatch(rest[sep[1]:])
	if m == nil {
		return validFrom, core.Unknown
	}
	return validFrom, canonicalDate(m[1], m[2], m[3])
}

// canonicalDate formats a day-first date as YYYY-MM-DD, or returns
// core.Unknown for impossible dates like 31. 02.
func canonicalDate(day, month, year string) string {
	d, err := strconv.Atoi(day)
	if err != nil {
		return core.Unknown
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return core.Unknown
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return core.Unknown
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m || t.Year() != y {
		return core.Unknown
	}
	return t.Format(core.DateLayout)
}

// IsValid reports whether the flyer is current on the calendar day of today.
//
// An unknown or unparsable ValidFrom is never valid. An unknown ValidTo
// leaves the window open-ended.
func IsValid(f core.Flyer, today time.Time) bool {
	from, ok := parseCanonical(f.ValidFrom)
	if !ok {
		return false
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(from) {
		return false
	}

	if f.ValidTo == core.Unknown {
		return true
	}
	to, ok := parseCanonical(f.ValidTo)
	if !ok {
		return false
	}
	return !day.After(to)
}

func parseCanonical(s string) (time.Time, bool) {
	if s == core.Unknown {
		return time.Time{}, false
	}
	t, err := time.Parse(core.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
