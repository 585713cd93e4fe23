package models

import (
	"bytes"
	"fmt"
	"time"
)

// SigxTimeFormat is the naive ISO 8601 layout the backend writes (Python isoformat without tz).
const SigxTimeFormat = "2006-01-02T15:04:05"

var sigxParseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	SigxTimeFormat,
	"2006-01-02T15:04",
}

// Time wraps time.Time so that null, empty and naive timestamps decode cleanly.
// Naive values are interpreted in time.Local.
type Time struct {
	time.Time
}

func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// ParseTime accepts every layout the backend is known to emit.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range sigxParseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		t.Time = time.Time{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("timestamp must be a string, got %s", data)
	}
	parsed, err := ParseTime(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.In(time.Local).Format(SigxTimeFormat) + `"`), nil
}

// MarshalYAML keeps --yaml output in the same layout as --json.
func (t Time) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.In(time.Local).Format(SigxTimeFormat), nil
}
