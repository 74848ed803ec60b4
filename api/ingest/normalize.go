package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"RecoveryDesk/api/constants"

	"github.com/shopspring/decimal"
)

// Spreadsheet serial dates count days from 1899-12-30; that anchor already
// absorbs the 1900 leap-year quirk for any modern date.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Numeric values above this are millisecond Unix timestamps, not serials.
const unixMillisCutoff = 10_000_000_000

var (
	isoPrefixRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	dmyRe       = regexp.MustCompile(`^(\d{1,2})[/\.-](\d{1,2})[/\.-](\d{2,4})$`)
	dmyTimeRe   = regexp.MustCompile(`^(\d{1,2})[/\.-](\d{1,2})[/\.-](\d{2,4})[ T](\d{1,2}):(\d{2})(?::(\d{2}))?$`)
)

// Free-text layouts tried in local time so "08 Dec 2025" keeps its calendar
// day instead of shifting across midnight UTC.
var freeTextLayouts = []string{
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2-Jan-2006",
	"02-Jan-06",
	"2006/01/02",
	constants.DateFormatISO,
	time.RFC3339,
}

func serialToTime(f float64) time.Time {
	return serialEpoch.Add(time.Duration(f * float64(24*time.Hour)))
}

// NormalizeOptionalDate converts a raw cell value into a canonical
// YYYY-MM-DD string. The tier order matters: numeric-looking strings are
// always treated as spreadsheet serials so a bare "45000" never reaches the
// free-text parser and gets read as a huge year.
func NormalizeOptionalDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return serialToTime(f).UTC().Format(constants.DateFormat), true
	}
	if m := isoPrefixRe.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3]), true
	}
	if m := dmyRe.FindStringSubmatch(s); m != nil {
		if d, ok := dmyToDay(m[1], m[2], m[3]); ok {
			return d, true
		}
	}
	for _, layout := range freeTextLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.Format(constants.DateFormat), true
		}
	}
	return "", false
}

// NormalizeDate is NormalizeOptionalDate with "" for failure. An absent date
// stays absent; it is never substituted with today.
func NormalizeDate(raw string) string {
	d, _ := NormalizeOptionalDate(raw)
	return d
}

// NormalizeDateTime converts a raw cell into "YYYY-MM-DD HH:MM:SS". Very
// large numerics are millisecond Unix timestamps; other numerics are serials
// whose fractional part carries the time of day. On total failure the
// original raw string is returned unchanged so the source value stays
// visible to the user.
func NormalizeDateTime(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return raw
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f > unixMillisCutoff {
			return time.UnixMilli(int64(f)).Format(constants.DateTimeFormat)
		}
		return serialToTime(f).UTC().Format(constants.DateTimeFormat)
	}
	if m := dmyTimeRe.FindStringSubmatch(s); m != nil {
		if d, ok := dmyToDay(m[1], m[2], m[3]); ok {
			hh, _ := strconv.Atoi(m[4])
			mm, _ := strconv.Atoi(m[5])
			ss := 0
			if m[6] != "" {
				ss, _ = strconv.Atoi(m[6])
			}
			if hh < 24 && mm < 60 && ss < 60 {
				return fmt.Sprintf("%s %02d:%02d:%02d", d, hh, mm, ss)
			}
		}
	}
	if m := isoPrefixRe.FindStringSubmatch(s); m != nil {
		day := fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
		for _, layout := range []string{constants.DateTimeFormat, constants.DateFormatISO, time.RFC3339} {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t.Format(constants.DateTimeFormat)
			}
		}
		return day + " 00:00:00"
	}
	if m := dmyRe.FindStringSubmatch(s); m != nil {
		if d, ok := dmyToDay(m[1], m[2], m[3]); ok {
			return d + " 00:00:00"
		}
	}
	for _, layout := range freeTextLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.Format(constants.DateTimeFormat)
		}
	}
	return raw
}

// dmyToDay builds a YYYY-MM-DD string from day/month/year captures.
// Two-digit years read as 2000+year.
func dmyToDay(dayS, monS, yearS string) (string, bool) {
	day, _ := strconv.Atoi(dayS)
	mon, _ := strconv.Atoi(monS)
	year, _ := strconv.Atoi(yearS)
	if len(yearS) <= 2 {
		year += 2000
	}
	if mon < 1 || mon > 12 || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, time.Month(mon), day, 0, 0, 0, 0, time.UTC)
	// reject rollovers like 31/02
	if t.Day() != day || int(t.Month()) != mon {
		return "", false
	}
	return t.Format(constants.DateFormat), true
}

var currencyStripper = strings.NewReplacer("₹", "", "$", "", "€", "", "£", "", ",", "", " ", "")

// NormalizeNumber strips currency decoration and parses a float. Empty or
// unparsable input yields 0, never NaN and never an error.
func NormalizeNumber(raw string) float64 {
	s := strings.TrimSpace(currencyStripper.Replace(raw))
	if s == "" || s == "-" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// NormalizeBoolean treats yes/true/1/y (any case) as true, everything else
// including empty as false.
func NormalizeBoolean(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "true", "1", "y":
		return true
	}
	return false
}
