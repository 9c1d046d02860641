// Package dates centralizes the fixed string formats the store uses for
// dates of birth and registration timestamps.
package dates

import (
	"fmt"
	"time"
)

const (
	// DatePattern is the dd/MM/yyyy layout dates of birth are stored in.
	// Ordering on this format must go through ParseDate; lexical order of
	// the raw strings is not calendar order.
	DatePattern = "02/01/2006"

	// TimestampPattern is the layout for registration timestamps.
	TimestampPattern = "02/01/2006 15:04"

	// ISODatePattern is the yyyy-MM-dd layout accepted on registration input.
	ISODatePattern = "2006-01-02"
)

// FormatDate renders t in the stored dd/MM/yyyy format.
func FormatDate(t time.Time) string {
	return t.Format(DatePattern)
}

// ParseDate parses a stored dd/MM/yyyy value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DatePattern, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatTimestamp renders t in the stored registration-timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampPattern)
}

// ParseISODate parses a yyyy-MM-dd input value.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(ISODatePattern, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
