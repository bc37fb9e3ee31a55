package argmatch

import (
	"fmt"
	"strings"

	"github.com/napalu/argmatch/types"
)

// Argument defines a flag, an option taking values or a positional argument.
// An Argument is a builder value: it is deep-copied when the owning Command tree is
// frozen by NewParser, so later changes have no effect on an existing Parser.
type Argument struct {
	// Short is the single-character name used as -x; zero when absent
	Short rune
	// Long is the name used as --name
	Long string
	// Aliases are alternative long names
	Aliases []string
	// Index makes the argument positional; positionals are filled in ascending index order
	Index *int
	// Kind is the value shape: Flag (no value), Single (one value) or Multi (NumValues)
	Kind types.ArgKind
	// NumValues is the number of values per occurrence of a Multi argument; nil means one or more
	NumValues *types.Range
	// Occurrences bounds how many times the argument may be given; defaults to 0..1
	Occurrences *types.Range
	// Default values are bound when the argument is absent
	Default []string
	// Required arguments must be present or defaulted
	Required bool
	// Conflicts lists argument or group ids which must not be present together with this argument
	Conflicts []string
	// Requires lists argument or group ids which must be present when this argument is
	Requires []string
	// Env names the environment variable supplying a fallback value
	Env string
	// EnvFromID derives Env from the argument id and the command's env prefix
	EnvFromID bool
	// Global arguments are resolvable in every descendant command and bind at the declaring command
	Global bool
	// SubcommandExempt waives Required once a subcommand of the declaring command was chosen
	SubcommandExempt bool
	// AllowHyphenValues lets a pending argument consume flag-shaped tokens as values
	AllowHyphenValues bool
	// ValueDelimiter splits each raw value into several values; zero disables splitting
	ValueDelimiter rune
	Description    string

	err error
}

// NewArg convenience initialization method to configure arguments. A configuration error is
// kept and reported when the argument is added to a Command.
func NewArg(configs ...ConfigureArgumentFunc) *Argument {
	argument := &Argument{}
	argument.err = argument.Set(configs...)

	return argument
}

// Set configures the Argument instance with the provided ConfigureArgumentFunc(s),
// and returns an error if a configuration results in an error.
//
// Usage example:
//
//	arg := &Argument{}
//	err := arg.Set(
//	    WithShort('o'),
//	    WithKind(types.Single),
//	    SetRequired(true),
//	)
//	if err != nil {
//	    // handle error
//	}
func (a *Argument) Set(configs ...ConfigureArgumentFunc) error {
	var err error
	for _, config := range configs {
		config(a, &err)
		if err != nil {
			return err
		}
	}

	return nil
}

// IsPositional reports whether the argument is matched by position rather than by name
func (a *Argument) IsPositional() bool {
	return a.Index != nil
}

// String returns a string representation of the Argument instance
func (a *Argument) String() string {
	return strings.TrimLeft(fmt.Sprintf("%s %s %s", a.names(), a.description(), a.required()), " ")
}

func (a *Argument) names() string {
	if a.IsPositional() {
		return fmt.Sprintf("<%d>", *a.Index)
	}
	var parts []string
	if a.Short != 0 {
		parts = append(parts, "-"+string(a.Short))
	}
	if a.Long != "" {
		parts = append(parts, "--"+a.Long)
	}

	return strings.Join(parts, ", ")
}

func (a *Argument) required() string {
	if a.Required {
		return "(required)"
	}

	return "(optional)"
}

func (a *Argument) description() string {
	if len(a.Default) > 0 {
		return fmt.Sprintf("%q (defaults to: %s)", a.Description, strings.Join(a.Default, ","))
	}

	return fmt.Sprintf("%q", a.Description)
}

func (a *Argument) clone() *Argument {
	c := *a
	c.Aliases = append([]string(nil), a.Aliases...)
	c.Default = append([]string(nil), a.Default...)
	c.Conflicts = append([]string(nil), a.Conflicts...)
	c.Requires = append([]string(nil), a.Requires...)
	if a.Index != nil {
		idx := *a.Index
		c.Index = &idx
	}
	if a.NumValues != nil {
		num := *a.NumValues
		c.NumValues = &num
	}
	if a.Occurrences != nil {
		occ := *a.Occurrences
		c.Occurrences = &occ
	}

	return &c
}
