package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number keeps the raw text of a numeric field so validation can report
// non-numeric input instead of failing the whole decode.
type Number string

// UnmarshalJSON accepts a JSON number or a string.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(strings.TrimSpace(s))
		return nil
	}
	*n = Number(data)
	return nil
}

// UnmarshalParam binds form values.
func (n *Number) UnmarshalParam(raw string) error {
	*n = Number(strings.TrimSpace(raw))
	return nil
}

// Int parses the number as a whole integer.
func (n Number) Int() (int, bool) {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// Float parses the number as a finite float.
func (n Number) Float() (float64, bool) {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Empty reports whether no digits were supplied.
func (n Number) Empty() bool {
	return strings.TrimSpace(string(n)) == ""
}
