// Package as provides best-effort conversions from string input (environment
// variables and the like) to typed values. Conversions never fail the caller:
// invalid input yields an *Error sentinel that flows through ordinary data
// structures until a validator discovers it with full path context.
package as

import (
	"encoding/base64"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Error is the deferred cast-failure sentinel. It implements error; schemas
// that do not explicitly expect an error type fail on it with its message.
type Error struct{ msg string }

func (e *Error) Error() string { return e.msg }

// Errorf builds a cast-failure sentinel.
func Errorf(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// String returns v unchanged when it is a string, a sentinel otherwise.
func String(v any) any {
	if s, ok := v.(string); ok {
		return s
	}
	return Errorf("invalid string value %v", v)
}

var prefixedNumber = regexp.MustCompile(`^[+-]?0[xXoObB]`)

// Number parses a decimal number (optional sign, fraction, exponent) or an
// explicitly prefixed hexadecimal, octal or binary integer. Non-finite
// results are rejected.
func Number(v any) any {
	s, ok := v.(string)
	if !ok {
		return Errorf("invalid number value %v", v)
	}
	if prefixedNumber.MatchString(s) {
		i, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return Errorf("invalid number value %q", s)
		}
		return float64(i)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Errorf("invalid number value %q", s)
	}
	return f
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	time.UnixDate,
}

// Date parses a date/time string, trying the common layouts in order.
func Date(v any) any {
	s, ok := v.(string)
	if !ok {
		return Errorf("invalid date value %v", v)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil && !t.IsZero() {
			return t
		}
	}
	return Errorf("invalid date value %q", s)
}

var durationPattern = regexp.MustCompile(`^([+-]?\d+(?:\.\d+)?)(ms|s|m|h|d|w)?$`)

var durationFactors = map[string]float64{
	"ms": 1,
	"s":  1000,
	"m":  60 * 1000,
	"h":  60 * 60 * 1000,
	"d":  24 * 60 * 60 * 1000,
	"w":  7 * 24 * 60 * 60 * 1000,
}

// Time parses "<number><unit>" with unit in ms/s/m/h/d/w (ms when omitted)
// into milliseconds, optionally divided by a caller-supplied conversion
// factor, floored. Time("90s", 1000) is 90 seconds expressed in seconds.
func Time(v any, divider ...float64) any {
	s, ok := v.(string)
	if !ok {
		return Errorf("invalid time value %v", v)
	}
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return Errorf("invalid time value %q", s)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Errorf("invalid time value %q", s)
	}
	unit := m[2]
	if unit == "" {
		unit = "ms"
	}
	out := n * durationFactors[unit]
	if len(divider) > 0 {
		out /= divider[0]
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return Errorf("invalid time value %q", s)
	}
	return int64(math.Floor(out))
}

// Boolean matches case-insensitively against 0/1/true/false/enabled/disabled.
func Boolean(v any) any {
	s, ok := v.(string)
	if !ok {
		return Errorf("invalid boolean value %v", v)
	}
	switch strings.ToLower(s) {
	case "1", "true", "enabled":
		return true
	case "0", "false", "disabled":
		return false
	}
	return Errorf("invalid boolean value %q", s)
}

// Array splits a string on the delimiter ("," when omitted).
func Array(v any, delimiter ...string) any {
	s, ok := v.(string)
	if !ok {
		return Errorf("invalid array value %v", v)
	}
	sep := ","
	if len(delimiter) > 0 {
		sep = delimiter[0]
	}
	return strings.Split(s, sep)
}

// JSON parses JSON text into the generic value shape.
func JSON(v any) any {
	s, ok := v.(string)
	if !ok {
		return Errorf("invalid json value %v", v)
	}
	var out any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return Errorf("invalid json value %q: %v", s, err)
	}
	return out
}

// Base64 decodes base64 text to UTF-8 text.
func Base64(v any) any {
	s, ok := v.(string)
	if !ok {
		return Errorf("invalid base64 value %v", v)
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Errorf("invalid base64 value %q: %v", s, err)
	}
	return string(b)
}
