package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date stored in a DATE column.
type Date struct {
	time.Time
}

// NewDate truncates t to midnight UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD or a full RFC3339 timestamp.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return NewDate(t), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return NewDate(t), nil
	}
	return Date{}, fmt.Errorf("invalid date %q", raw)
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON renders the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts the formats understood by ParseDate. An empty string
// yields the zero Date, which update payloads use to clear a stored date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return d.UnmarshalParam(raw)
}

// UnmarshalParam lets gin bind dates from form and query values.
func (d *Date) UnmarshalParam(raw string) error {
	if strings.TrimSpace(raw) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// CommaList is a list of strings persisted as one comma joined column.
type CommaList []string

// SplitCommaList splits raw on commas, trimming entries and dropping empties.
func SplitCommaList(raw string) CommaList {
	parts := strings.Split(raw, ",")
	out := make(CommaList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String joins the list with ", ".
func (l CommaList) String() string {
	return strings.Join(l, ", ")
}

// Value implements driver.Valuer.
func (l CommaList) Value() (driver.Value, error) {
	return l.String(), nil
}

// Scan implements sql.Scanner.
func (l *CommaList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = CommaList{}
	case []byte:
		*l = SplitCommaList(string(v))
	case string:
		*l = SplitCommaList(v)
	default:
		return fmt.Errorf("cannot scan %T into CommaList", src)
	}
	return nil
}

// MarshalJSON always renders an array, never null.
func (l CommaList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// UnmarshalJSON accepts either a comma separated string or an array of strings.
func (l *CommaList) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*l = SplitCommaList(raw)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("certifications must be a string or an array of strings")
	}
	out := make(CommaList, 0, len(items))
	for _, item := range items {
		out = append(out, SplitCommaList(item)...)
	}
	*l = out
	return nil
}

// ListOptions bounds list queries.
type ListOptions struct {
	Limit  int
	Offset int
}

// MaxListLimit caps explicit page sizes.
const MaxListLimit = 500

// Normalize clamps the page size to MaxListLimit and negative values to zero.
// A zero limit means "no limit".
func (o ListOptions) Normalize() ListOptions {
	if o.Limit < 0 {
		o.Limit = 0
	}
	if o.Limit > MaxListLimit {
		o.Limit = MaxListLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
