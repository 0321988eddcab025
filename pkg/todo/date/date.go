// Package date implements the calendar date value attached to todos.
// A Date carries no time-of-day and no timezone; the zero value means
// "no due date".
package date

import (
	"errors"
	"time"
)

var ErrParsing = errors.New("error parsing date")

// Layout is the canonical string form.
const Layout = "2006-01-02"

type Date struct {
	t time.Time
}

func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func Today() Date {
	now := time.Now()
	return New(now.Year(), now.Month(), now.Day())
}

// formats accepted by Parse. "2006-1-2" also matches zero-padded input,
// so "2024-2-1" and "2024-02-01" parse to the same Date.
var formats = []string{
	"2006-1-2",
	"2006/1/2",
	"2 Jan 2006",
	"Jan 2 2006",
}

// Parse reads a calendar date. The empty string parses to the zero
// (unset) Date.
func Parse(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return New(t.Year(), t.Month(), t.Day()), nil
		}
	}
	return Date{}, ErrParsing
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// String returns the canonical form, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(Layout)
}

func (d Date) Time() time.Time {
	return d.t
}

func (d Date) Equal(o Date) bool {
	return d.t.Equal(o.t)
}

func (d Date) Before(o Date) bool {
	return d.t.Before(o.t)
}

// Compare orders dates chronologically: -1 if d is earlier than o,
// 0 if equal, +1 if later.
func (d Date) Compare(o Date) int {
	return d.t.Compare(o.t)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(bs []byte) error {
	s := string(bs)
	if s == "null" {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrParsing
	}
	parsed, err := Parse(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
