package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Int is an integer that decodes from a JSON number or a numeric string.
type Int int64

// NewInt returns a pointer to v as an Int.
func NewInt(v int64) *Int {
	i := Int(v)
	return &i
}

// Int64 returns the value, or 0 for a nil receiver.
func (i *Int) Int64() int64 {
	if i == nil {
		return 0
	}
	return int64(*i)
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := parseInteger(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		*i = Int(v)
		return nil
	}
	v, err := parseInteger(string(data))
	if err != nil {
		return err
	}
	*i = Int(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (i Int) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(i), 10)), nil
}

func parseInteger(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("empty integer value")
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return int64(f), nil
}
