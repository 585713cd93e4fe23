package dashboard

import (
	"fmt"
	"time"
)

const (
	// DisplayLayout is the local date-time layout of list views (dd/mm/yyyy).
	DisplayLayout = "02/01/2006 15:04:05"
	// InputLayout matches a datetime-local form control: minute precision.
	InputLayout = "2006-01-02T15:04"

	notAvailable = "N/A"
)

// FormatDateTime renders a timestamp for list display in local time.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return notAvailable
	}
	return t.In(time.Local).Format(DisplayLayout)
}

// FormatDateTimeInput renders a timestamp for the edit form, truncated to the minute.
func FormatDateTimeInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(time.Local).Truncate(time.Minute).Format(InputLayout)
}

// ParseDateTimeInput is the inverse of FormatDateTimeInput.
func ParseDateTimeInput(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(InputLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date-time %q: %w", s, err)
	}
	return t, nil
}

func formatDuration(minutes *int) string {
	if minutes == nil || *minutes == 0 {
		return ""
	}
	return fmt.Sprintf("%d min", *minutes)
}
