package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO-8601 calendar date layout used on the wire and in storage.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day or zone. The zero Date means
// "absent"; 0001-01-01 is a present, valid date.
type Date struct {
	t     time.Time
	valid bool
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t: t, valid: true}, nil
}

// MustParseDate is ParseDate for literals; it panics on bad input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool { return !d.valid }

// String renders the date as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if !d.valid {
		return ""
	}
	return d.t.Format(DateLayout)
}
