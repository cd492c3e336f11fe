package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is the raw text of a setting. The accessors interpret it; none of
// them modify it.
type Value string

func (v Value) String() string {
	return string(v)
}

func (v Value) Float() (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", string(v))
	}
	return f, nil
}

// Int accepts integers and integral floats such as "8.0".
func (v Value) Int() (int, error) {
	s := strings.TrimSpace(string(v))
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not an integer: %q", string(v))
	}
	// float64(math.MaxInt) rounds up to 2^63, which int cannot hold
	if f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0, fmt.Errorf("not an integer: %q", string(v))
	}
	return int(f), nil
}

// Bool accepts the usual spellings: True/False in any case, yes/no, on/off,
// 1/0 and the single letters t/f and y/n.
func (v Value) Bool() (bool, error) {
	switch strings.ToLower(strings.TrimSpace(string(v))) {
	case "true", "t", "yes", "y", "on", "1":
		return true, nil
	case "false", "f", "no", "n", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", string(v))
}

// Strings splits a comma-separated value into trimmed, non-empty parts.
func (v Value) Strings() []string {
	var out []string
	for _, part := range strings.Split(string(v), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Floats parses a comma-separated numeric sequence such as "8, 4.944".
func (v Value) Floats() ([]float64, error) {
	parts := v.Strings()
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty sequence")
	}
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("element %d of %q is not a number", i, string(v))
		}
		out[i] = f
	}
	return out, nil
}
