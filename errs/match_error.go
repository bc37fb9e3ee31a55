package errs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/napalu/argmatch/i18n"
	"github.com/napalu/argmatch/types"
)

// MatchError is the structured error produced by the tokenizer, matcher and validator.
// Kind is one of the parse-time sentinels in this package; errors.Is(err, ErrXxx)
// matches on it. Only the fields relevant to a kind are set.
type MatchError struct {
	Kind *i18n.TrError

	// Arg is the id of the argument the error is about
	Arg string
	// Other is the second argument id for conflicts, or the dependent argument for requirements
	Other string
	// Text is the offending raw token
	Text string
	// Index is the position of Text in the raw argument list, -1 when not applicable
	Index int
	// Group is the id of the violated group
	Group string
	// Members lists the group members which fired (or all members when none fired)
	Members []string
	// Expected is the permitted range for counts (values, occurrences, group members)
	Expected types.Range
	// Found is the actual count
	Found int
	// CommandPath is the path of command names from the root to the command in scope
	CommandPath []string
	// Candidates lists the names an ambiguous prefix could resolve to
	Candidates []string
	// Suggestions lists advisory corrections supplied by a suggester
	Suggestions []string

	key string
}

func newMatchError(kind *i18n.TrError, path []string) *MatchError {
	return &MatchError{
		Kind:        kind,
		Index:       -1,
		CommandPath: append([]string(nil), path...),
		key:         kind.Key(),
	}
}

// Error renders the error through the default message provider
func (e *MatchError) Error() string {
	return i18n.DefaultProvider().Sprintf(e.key, e.args()...)
}

// Unwrap returns the kind sentinel
func (e *MatchError) Unwrap() error {
	return e.Kind
}

// MessageKey returns the translation key used to render the error
func (e *MatchError) MessageKey() string {
	return e.key
}

// Path returns the command path joined by spaces
func (e *MatchError) Path() string {
	return strings.Join(e.CommandPath, " ")
}

func (e *MatchError) args() []interface{} {
	switch e.key {
	case ErrUnknownArgumentKey, ErrUnknownSubcommandKey, ErrUnexpectedPositionalKey:
		return []interface{}{e.Text, e.Path()}
	case ErrAmbiguousArgumentKey, ErrAmbiguousSubcommandKey:
		return []interface{}{e.Text, e.Path(), strings.Join(e.Candidates, ", ")}
	case ErrTooFewValuesKey:
		return []interface{}{e.Arg, e.Expected.Min, e.Found}
	case ErrTooManyValuesKey, ErrTooManyOccurrencesKey:
		return []interface{}{e.Arg, e.Expected.Max, e.Found}
	case ErrMissingRequiredArgumentKey:
		return []interface{}{e.Arg, e.Path()}
	case ErrMissingRequiredByKey, ErrConflictingArgumentsKey:
		return []interface{}{e.Arg, e.Other}
	case ErrGroupExactlyOneKey:
		return []interface{}{e.Group, strings.Join(e.Members, ", "), e.Found}
	case ErrGroupAtLeastOneKey:
		return []interface{}{e.Group, strings.Join(e.Members, ", ")}
	case ErrOccurrenceCountViolationKey:
		return []interface{}{e.Arg, FormatRange(e.Expected), e.Found}
	case ErrInvalidUnicodeKey:
		return []interface{}{e.Index}
	case ErrMissingSubcommandKey:
		return []interface{}{e.Path()}
	case ErrRecursionDepthExceededKey:
		return []interface{}{e.Expected.Max}
	}

	return nil
}

// FormatRange renders a range as "n", "n..m" or "n.."
func FormatRange(r types.Range) string {
	switch {
	case r.IsUnbounded():
		return strconv.Itoa(r.Min) + ".."
	case r.Min == r.Max:
		return strconv.Itoa(r.Min)
	}

	return fmt.Sprintf("%d..%d", r.Min, r.Max)
}

// UnknownArgument reports a flag which does not resolve in the command in scope
func UnknownArgument(text string, index int, path []string) *MatchError {
	e := newMatchError(ErrUnknownArgument, path)
	e.Text = text
	e.Index = index

	return e
}

// AmbiguousArgument reports a long-flag prefix matching more than one argument
func AmbiguousArgument(text string, index int, path, candidates []string) *MatchError {
	e := UnknownArgument(text, index, path)
	e.Candidates = candidates
	e.key = ErrAmbiguousArgumentKey

	return e
}

// UnknownSubcommand reports a token which names no subcommand of a command expecting one
func UnknownSubcommand(text string, index int, path []string) *MatchError {
	e := newMatchError(ErrUnknownSubcommand, path)
	e.Text = text
	e.Index = index

	return e
}

// AmbiguousSubcommand reports a subcommand prefix matching more than one subcommand
func AmbiguousSubcommand(text string, index int, path, candidates []string) *MatchError {
	e := UnknownSubcommand(text, index, path)
	e.Candidates = candidates
	e.key = ErrAmbiguousSubcommandKey

	return e
}

// UnexpectedPositional reports a positional token no positional argument or subcommand accepts
func UnexpectedPositional(text string, index int, path []string) *MatchError {
	e := newMatchError(ErrUnexpectedPositional, path)
	e.Text = text
	e.Index = index

	return e
}

// TooFewValues reports an argument which received fewer values than its minimum
func TooFewValues(arg string, expected types.Range, found int, path []string) *MatchError {
	e := newMatchError(ErrTooFewValues, path)
	e.Arg = arg
	e.Expected = expected
	e.Found = found

	return e
}

// TooManyValues reports an argument which received more values than its maximum
func TooManyValues(arg string, expected types.Range, found int, path []string) *MatchError {
	e := newMatchError(ErrTooManyValues, path)
	e.Arg = arg
	e.Expected = expected
	e.Found = found

	return e
}

// TooManyOccurrences reports an argument given more often than its maximum
func TooManyOccurrences(arg string, expected types.Range, found int, path []string) *MatchError {
	e := newMatchError(ErrTooManyOccurrences, path)
	e.Arg = arg
	e.Expected = expected
	e.Found = found

	return e
}

// MissingRequiredArgument reports an absent required argument
func MissingRequiredArgument(arg string, path []string) *MatchError {
	e := newMatchError(ErrMissingRequiredArgument, path)
	e.Arg = arg

	return e
}

// MissingRequiredBy reports an absent argument which a present argument requires
func MissingRequiredBy(arg, requiredBy string, path []string) *MatchError {
	e := MissingRequiredArgument(arg, path)
	e.Other = requiredBy
	e.key = ErrMissingRequiredByKey

	return e
}

// ConflictingArguments reports two present arguments which exclude each other
func ConflictingArguments(arg, other string, path []string) *MatchError {
	e := newMatchError(ErrConflictingArguments, path)
	e.Arg = arg
	e.Other = other

	return e
}

// GroupCardinalityViolation reports a group whose firing member count is outside of expected
func GroupCardinalityViolation(group string, members []string, expected types.Range, found int, path []string) *MatchError {
	e := newMatchError(ErrGroupCardinalityViolation, path)
	e.Group = group
	e.Members = members
	e.Expected = expected
	e.Found = found
	if expected.IsUnbounded() {
		e.key = ErrGroupAtLeastOneKey
	}

	return e
}

// OccurrenceCountViolation reports an occurrence count outside of the declared range
func OccurrenceCountViolation(arg string, expected types.Range, found int, path []string) *MatchError {
	e := newMatchError(ErrOccurrenceCountViolation, path)
	e.Arg = arg
	e.Expected = expected
	e.Found = found

	return e
}

// InvalidUnicode reports a raw token which is not valid UTF-8
func InvalidUnicode(index int, path []string) *MatchError {
	e := newMatchError(ErrInvalidUnicode, path)
	e.Index = index

	return e
}

// MissingSubcommand reports a command configured to require a subcommand which received none
func MissingSubcommand(path []string) *MatchError {
	return newMatchError(ErrMissingSubcommand, path)
}

// RecursionDepthExceeded reports that subcommand descent went past the configured cap
func RecursionDepthExceeded(maxDepth int, path []string) *MatchError {
	e := newMatchError(ErrRecursionDepthExceeded, path)
	e.Expected = types.Exactly(maxDepth)

	return e
}
