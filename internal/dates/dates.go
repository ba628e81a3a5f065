// Package dates provides calendar arithmetic for the fixed 365-day content year.
//
// The content calendar deliberately uses non-leap-year month lengths: there is
// no February 29 slot, so every year maps onto the same 365 storage paths.
package dates

import (
	"fmt"
	"strings"
)

// daysInMonth holds the number of days per month in a non-leap year.
var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

var monthNames = [12]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// TotalDays is the number of dates in the content calendar.
const TotalDays = 365

// MonthName returns the lowercase name for a 1-12 month number.
func MonthName(month int) (string, bool) {
	if month < 1 || month > 12 {
		return "", false
	}
	return monthNames[month-1], true
}

// MonthNumber returns the 1-12 number for a case-insensitive month name.
func MonthNumber(name string) (int, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range monthNames {
		if n == lower {
			return i + 1, true
		}
	}
	return 0, false
}

// Normalize canonicalizes a month given either as a 1-12 number or as a
// case-insensitive name, returning the lowercase month name.
func Normalize(month any) (string, error) {
	switch m := month.(type) {
	case int:
		if name, ok := MonthName(m); ok {
			return name, nil
		}
		return "", fmt.Errorf("month number out of range: %d", m)
	case string:
		if num, ok := MonthNumber(m); ok {
			name, _ := MonthName(num)
			return name, nil
		}
		return "", fmt.Errorf("unknown month name: %q", m)
	default:
		return "", fmt.Errorf("unsupported month type %T", month)
	}
}

// DaysIn returns the number of days in a 1-12 month, or 0 for an invalid month.
func DaysIn(month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return daysInMonth[month-1]
}

// Valid reports whether (month, day) names a slot in the content calendar.
func Valid(month, day int) bool {
	return month >= 1 && month <= 12 && day >= 1 && day <= daysInMonth[month-1]
}

// PadDay returns the zero-padded two-digit form of a day used in filenames.
func PadDay(day int) string {
	return fmt.Sprintf("%02d", day)
}

// Title returns the capitalized form of a lowercase month name.
func Title(monthName string) string {
	if monthName == "" {
		return ""
	}
	return strings.ToUpper(monthName[:1]) + monthName[1:]
}

// Display returns the human-readable form of a date, e.g. "July 4".
func Display(monthName string, day int) string {
	if monthName == "" {
		return fmt.Sprintf("%d", day)
	}
	return fmt.Sprintf("%s %d", Title(monthName), day)
}

// Ordinal returns the zero-based position of (month, day) within the year.
// Used to compute how many dates a resumed run skips.
func Ordinal(month, day int) int {
	n := 0
	for m := 1; m < month; m++ {
		n += daysInMonth[m-1]
	}
	return n + day - 1
}
