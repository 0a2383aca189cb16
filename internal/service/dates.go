package service

import (
	"fmt"
	"time"
)

const (
	dateLayout           = "2006-01-02"
	localTimestampLayout = "2006-01-02T15:04:05"
)

// ParseDate accepts ISO-8601 calendar dates and timestamps, with or
// without a zone offset. Clients send all three forms.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range []string{dateLayout, time.RFC3339, localTimestampLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format %q, use YYYY-MM-DD", value)
}
