package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

var flexTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// FlexTime accepts RFC3339 timestamps, local date-times without a zone, and plain dates.
type FlexTime struct {
	time.Time
}

func ParseFlexTime(s string) (time.Time, error) {
	for _, layout := range flexTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}

func (ft *FlexTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		ft.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &dateError{raw: string(data)}
	}
	if s == "" {
		ft.Time = time.Time{}
		return nil
	}

	t, err := ParseFlexTime(s)
	if err != nil {
		return &dateError{raw: s}
	}
	ft.Time = t
	return nil
}

func (ft FlexTime) MarshalJSON() ([]byte, error) {
	if ft.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ft.Format(time.RFC3339))
}

// Or returns the wrapped time, or fallback when unset.
func (ft *FlexTime) Or(fallback time.Time) time.Time {
	if ft == nil || ft.IsZero() {
		return fallback
	}
	return ft.Time
}

type dateError struct {
	raw string
}

func (e *dateError) Error() string {
	return fmt.Sprintf("invalid date %s", e.raw)
}
