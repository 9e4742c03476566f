// Package types implements value types shared across the OMSP tracker.
package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Month is the year-month key a budget ledger row is scoped to.
type Month time.Time

// NewMonth returns the Month for the given year and month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which t occurs, in t's location.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// ParseMonth parses a "YYYY-MM" string.
func ParseMonth(value string) (Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(value))
	if err != nil {
		return Month{}, fmt.Errorf("parse month %q: %w", value, err)
	}
	return MonthOf(t), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	t := time.Time(m)
	return fmt.Sprintf("%04d-%02d", t.Year(), t.Month())
}

// MarshalJSON implements the json.Marshaler interface.
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface. It accepts
// "YYYY-MM" and, for convenience, full "YYYY-MM-DD" dates.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	pattern := "2006-01"
	if len(value) == len("2006-01-02") {
		pattern = "2006-01-02"
	}

	t, err := time.Parse(pattern, value)
	if err != nil {
		return fmt.Errorf("parse month %q: %w", value, err)
	}
	*m = MonthOf(t)
	return nil
}

// Scan reads the value from the database.
func (m *Month) Scan(value interface{}) error {
	nullTime := &sql.NullTime{}
	if err := nullTime.Scan(value); err != nil {
		return err
	}
	*m = MonthOf(nullTime.Time)
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (m Month) Value() (driver.Value, error) {
	t := time.Time(m)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the column type used by gorm.
func (Month) GormDataType() string {
	return "date"
}

// IsZero reports whether the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddMonths returns the month shifted by the given number of months.
func (m Month) AddMonths(months int) Month {
	return Month(time.Time(m).AddDate(0, months, 0))
}

// Equal reports whether m and n represent the same year-month.
func (m Month) Equal(n Month) bool {
	return m.String() == n.String()
}

// Before reports whether m is before n.
func (m Month) Before(n Month) bool {
	return time.Time(m).Before(time.Time(n))
}
