package util

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseBool accepts the strconv forms plus yes/no and on/off
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}

	return strconv.ParseBool(value)
}

// ParseInt parses a base-prefixed integer ("42", "0x2a", "0b101")
func ParseInt(value string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(value), 0, 64)
}

// ParseFloat parses a 64-bit float
func ParseFloat(value string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}

// ParseDuration parses a Go duration, accepting a bare integer as seconds
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	return time.ParseDuration(value)
}

// ParseTime parses a date/time in any format dateparse recognizes, in the given location
func ParseTime(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	return dateparse.ParseIn(strings.TrimSpace(value), loc)
}

// SplitValues splits value on delim, dropping nothing. A zero delim returns value unchanged.
func SplitValues(value string, delim rune) []string {
	if delim == 0 {
		return []string{value}
	}

	return strings.Split(value, string(delim))
}
