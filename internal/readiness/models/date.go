package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	dErrors "readiness/pkg/domain-errors"
)

// DisplayLayout is the user-facing date format: zero-padded day and month,
// four-digit year.
const DisplayLayout = "02.01.2006"

const isoLayout = "2006-01-02"

// Date is a calendar day without time-of-day or zone. The zero value means
// "absent". Dates are normalised to midnight UTC internally so day arithmetic
// never crosses a DST boundary.
type Date struct {
	t time.Time
}

// NewDate builds a Date from its calendar components. Out-of-range values
// normalise the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf strips the time-of-day from t, keeping the calendar day as seen in
// t's own location.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate leniently parses a stored date. ISO dates, RFC 3339 timestamps
// and display-format dates are accepted; anything else, including legacy
// placeholder years before 1901, yields the zero Date.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	for _, layout := range []string{isoLayout, time.RFC3339Nano, "2006-01-02 15:04:05", DisplayLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return plausible(DateOf(t))
		}
	}
	if len(s) > len(isoLayout) {
		if t, err := time.Parse(isoLayout, s[:len(isoLayout)]); err == nil {
			return plausible(DateOf(t))
		}
	}
	return Date{}
}

// ParseDisplay strictly parses a dd.mm.yyyy date.
func ParseDisplay(s string) (Date, error) {
	t, err := time.Parse(DisplayLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, dErrors.Wrap(err, dErrors.CodeValidation, "date must be in dd.mm.yyyy format")
	}
	return DateOf(t), nil
}

func plausible(d Date) Date {
	if d.t.Year() <= 1900 {
		return Date{}
	}
	return d
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// AddDays returns d shifted by n days. The zero Date stays zero.
func (d Date) AddDays(n int) Date {
	if d.IsZero() {
		return d
	}
	return Date{t: d.t.AddDate(0, 0, n)}
}

// AddMonths returns d shifted by n calendar months, overflowing into the next
// month the way time.AddDate does (31 Jan + 1 month = 3 Mar or 2 Mar).
func (d Date) AddMonths(n int) Date {
	if d.IsZero() {
		return d
	}
	return Date{t: d.t.AddDate(0, n, 0)}
}

// DaysUntil returns the number of whole days from d to other; negative when
// other is earlier.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return d.t
}

// Display formats d as dd.mm.yyyy, or "" when absent.
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DisplayLayout)
}

// ISO formats d as yyyy-mm-dd, or "" when absent.
func (d Date) ISO() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(isoLayout)
}

func (d Date) String() string {
	return d.ISO()
}

// LaterDate returns the later of a and b, ignoring absent values.
func LaterDate(a, b Date) Date {
	switch {
	case a.IsZero():
		return b
	case b.IsZero():
		return a
	case b.After(a):
		return b
	default:
		return a
	}
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.ISO()), nil
}

// UnmarshalText never fails: unparsable input becomes the zero Date.
func (d *Date) UnmarshalText(text []byte) error {
	*d = ParseDate(string(text))
	return nil
}

// Scan implements sql.Scanner. Values the driver cannot express as a date
// become the zero Date rather than failing the whole row.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = plausible(DateOf(v))
	case string:
		*d = ParseDate(v)
	case []byte:
		*d = ParseDate(string(v))
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
	return nil
}

// Value implements driver.Valuer. Dates are stored as ISO text; the zero
// Date is stored as NULL.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.ISO(), nil
}
