package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseError reports a malformed duration, size, or pattern string. Parse
// errors indicate a user input mistake and abort the run before any scanning
// begins.
type ParseError struct {
	Input string
	Kind  string
	Hint  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Input, e.Hint)
}

const day = 24 * time.Hour

// Duration units accepted on the wire: days, weeks, months (30d), years (365d).
var durationUnits = map[string]time.Duration{
	"d": day,
	"w": 7 * day,
	"m": 30 * day,
	"y": 365 * day,
}

var sizeUnits = map[string]int64{
	"b":  1,
	"kb": 1 << 10,
	"mb": 1 << 20,
	"gb": 1 << 30,
	"tb": 1 << 40,
}

var (
	durationRe = regexp.MustCompile(`^(\d+)\s*([dwmyDWMY])$`)
	sizeRe     = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(b|kb|mb|gb|tb)$`)
)

// ParseDuration parses an age string like "30d", "6m" or "1y" into a
// time.Duration.
func ParseDuration(s string) (time.Duration, error) {
	m := durationRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, &ParseError{Input: s, Kind: "age", Hint: "use <number><unit> (e.g. 30d, 6m, 1y)"}
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, &ParseError{Input: s, Kind: "age", Hint: "number out of range"}
	}
	return time.Duration(n) * durationUnits[strings.ToLower(m[2])], nil
}

// ParseSize parses a size string like "100MB" or "1.5GB" into a byte count.
// Units are binary (1KB = 1024B); fractional values are truncated to whole
// bytes.
func ParseSize(s string) (int64, error) {
	m := sizeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, &ParseError{Input: s, Kind: "size", Hint: "use <number><unit> (e.g. 100MB, 1.5GB)"}
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, &ParseError{Input: s, Kind: "size", Hint: "number out of range"}
	}
	return int64(value * float64(sizeUnits[strings.ToLower(m[2])])), nil
}
