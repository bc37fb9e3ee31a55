package util

import "strconv"

// Number is the result of ParseNumeric
type Number struct {
	Int        int64
	Float      float64
	IsInt      bool
	IsFloat    bool
	IsNegative bool
}

// ParseNumeric parses s as an integer (any base prefix) or, failing that, as a float
func ParseNumeric(s string) (n Number, ok bool) {
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		n.Int = i
		n.IsInt = true
		n.IsNegative = i < 0
		return n, true
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n.Float = f
		n.IsFloat = true
		n.IsNegative = f < 0
		return n, true
	}

	return n, false
}

// IsNegativeNumber reports whether s is a minus sign followed by a number, such as "-5",
// "-1.5e3" or "-0"
func IsNegativeNumber(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	if c := s[1]; (c < '0' || c > '9') && c != '.' {
		return false
	}
	_, ok := ParseNumeric(s)

	return ok
}
