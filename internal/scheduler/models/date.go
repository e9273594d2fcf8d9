package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
)

// DateLayout is the only accepted textual form of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar date without time or zone. It is stored as TEXT in
// DateLayout form, so lexical order is chronological order.
type Date struct {
	t time.Time
}

// ParseDate parses a YYYY-MM-DD literal. Anything that is not a real
// calendar date in exactly that form is rejected with ErrInvalidArgument.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Format(DateLayout) != s {
		return Date{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", common.ErrInvalidArgument, s)
	}
	return Date{t: t}, nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	return d.t.Format(DateLayout)
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) Equal(o Date) bool {
	return d.t.Equal(o.t)
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		d.t = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
