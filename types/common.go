// Package types holds the enums and ranges shared by the argmatch packages.
package types

// Unbounded marks a Range maximum with no upper limit
const Unbounded = -1

// ArgKind describes the value shape of an argument (Flag, Single, Multi)
type ArgKind int

const (
	Flag   ArgKind = iota // Flag denotes an argument which takes no value
	Single                // Single denotes an argument taking exactly one value per occurrence
	Multi                 // Multi denotes an argument taking a bounded or unbounded number of values per occurrence
)

// String returns the string representation of an ArgKind
func (k ArgKind) String() string {
	switch k {
	case Flag:
		return "flag"
	case Single:
		return "single"
	case Multi:
		return "multi"
	}
	return "unknown"
}

// ParseArgKind is the inverse of ArgKind.String
func ParseArgKind(s string) (ArgKind, bool) {
	switch s {
	case "flag", "":
		return Flag, true
	case "single":
		return Single, true
	case "multi":
		return Multi, true
	}
	return Flag, false
}

// GroupPolicy is the cardinality constraint applied to the members of a Group
type GroupPolicy int

const (
	MultipleAllowed GroupPolicy = iota // no constraint beyond membership
	ExactlyOne                         // exactly one member must fire
	AtLeastOne                         // one or more members must fire
)

// String returns the string representation of a GroupPolicy
func (g GroupPolicy) String() string {
	switch g {
	case MultipleAllowed:
		return "multiple"
	case ExactlyOne:
		return "exactly-one"
	case AtLeastOne:
		return "at-least-one"
	}
	return "unknown"
}

// ParseGroupPolicy is the inverse of GroupPolicy.String
func ParseGroupPolicy(s string) (GroupPolicy, bool) {
	switch s {
	case "multiple", "":
		return MultipleAllowed, true
	case "exactly-one":
		return ExactlyOne, true
	case "at-least-one":
		return AtLeastOne, true
	}
	return MultipleAllowed, false
}

// ValueSource records where the values bound to an argument came from.
// Sources are ordered by priority: a higher source is never overwritten by a lower one.
type ValueSource int

const (
	SourceNone        ValueSource = iota // not bound
	SourceDefault                        // declared default materialized by the validator
	SourceEnv                            // environment variable fallback
	SourceCommandLine                    // explicit token on the command line
)

// String returns the string representation of a ValueSource
func (v ValueSource) String() string {
	switch v {
	case SourceDefault:
		return "default"
	case SourceEnv:
		return "env"
	case SourceCommandLine:
		return "command-line"
	}
	return "none"
}

// Explicit is true for sources which count as "present" (command line or environment)
func (v ValueSource) Explicit() bool {
	return v == SourceCommandLine || v == SourceEnv
}

// Range is an inclusive [Min, Max] bound. Max may be Unbounded.
type Range struct {
	Min int
	Max int
}

// Exactly returns the Range [n, n]
func Exactly(n int) Range {
	return Range{Min: n, Max: n}
}

// AtLeast returns the Range [n, Unbounded]
func AtLeast(n int) Range {
	return Range{Min: n, Max: Unbounded}
}

// Between returns the Range [lo, hi]
func Between(lo, hi int) Range {
	return Range{Min: lo, Max: hi}
}

// IsUnbounded reports whether the range has no upper limit
func (r Range) IsUnbounded() bool {
	return r.Max == Unbounded
}

// Contains reports whether n lies within the range
func (r Range) Contains(n int) bool {
	if n < r.Min {
		return false
	}
	return r.IsUnbounded() || n <= r.Max
}

// Reached reports whether n is at or beyond the upper limit
func (r Range) Reached(n int) bool {
	return !r.IsUnbounded() && n >= r.Max
}

// Valid reports whether the range is well-formed
func (r Range) Valid() bool {
	if r.Min < 0 {
		return false
	}
	return r.IsUnbounded() || r.Max >= r.Min
}
