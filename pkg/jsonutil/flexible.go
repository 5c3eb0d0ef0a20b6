package jsonutil

import (
	"fmt"
	"strconv"
	"strings"
)

// FlexibleInt64 decodes a JSON number or a numeric string. Models asked to
// echo numeric identifiers sometimes quote them; both forms must round-trip.
type FlexibleInt64 int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexibleInt64) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}

	s = strings.Trim(s, `"`)
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fmt.Errorf("not an integer: %q", string(data))
	}
	*f = FlexibleInt64(v)
	return nil
}

// Int64 returns the underlying value.
func (f FlexibleInt64) Int64() int64 {
	return int64(f)
}

// FlexibleBool decodes a JSON boolean, or the strings "true"/"false" that
// some models emit instead.
type FlexibleBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexibleBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	switch strings.ToLower(s) {
	case "true":
		*f = true
	case "false", "null", "":
		*f = false
	default:
		return fmt.Errorf("not a boolean: %q", string(data))
	}
	return nil
}

// Bool returns the underlying value.
func (f FlexibleBool) Bool() bool {
	return bool(f)
}
