package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Date is a calendar date without a time of day, carried as an OpenAPI
// "date" value. The zero Date means the date was not supplied.
type Date struct {
	d openapi_types.Date
}

// NewDate returns the calendar date of y-m-d.
func NewDate(year int, month time.Month, day int) Date {
	return Date{d: openapi_types.Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(openapi_types.DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{d: openapi_types.Date{Time: t}}, nil
}

func (d Date) IsZero() bool { return d.d.IsZero() }

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time { return d.d.Time }

func (d Date) After(o Date) bool { return d.d.After(o.d.Time) }

func (d Date) AddDays(n int) Date { return DateOf(d.d.AddDate(0, 0, n)) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.d.Format(openapi_types.DateFormat)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return d.d.MarshalJSON()
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(`""`)) {
		*d = Date{}
		return nil
	}
	var parsed openapi_types.Date
	if err := parsed.UnmarshalJSON(b); err == nil {
		*d = DateOf(parsed.Time)
		return nil
	}
	// Accept full timestamps from clients that serialize Date objects.
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	*d = DateOf(t.UTC())
	return nil
}
