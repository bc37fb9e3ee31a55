package argmatch

import (
	"fmt"
	"unicode"

	"github.com/napalu/argmatch/errs"
	"github.com/napalu/argmatch/types"
)

// WithShort sets the single-character name of the argument. Short flags can be clustered
// on the command line:
//
//	-vvv -xf archive.tar
func WithShort(short rune) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		if short == '-' || short == '=' || unicode.IsSpace(short) || !unicode.IsPrint(short) {
			*err = errs.ErrInvalidOption.WithArgs(fmt.Sprintf("short name %q", short))
			return
		}
		argument.Short = short
	}
}

// WithLong sets the long name of the argument, used as --name
func WithLong(long string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		if !validLongName(long) {
			*err = errs.ErrInvalidOption.WithArgs(fmt.Sprintf("long name %q", long))
			return
		}
		argument.Long = long
	}
}

// WithAliases adds alternative long names
func WithAliases(aliases ...string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		for _, alias := range aliases {
			if !validLongName(alias) {
				*err = errs.ErrInvalidOption.WithArgs(fmt.Sprintf("alias %q", alias))
				return
			}
		}
		argument.Aliases = append(argument.Aliases, aliases...)
	}
}

// WithIndex makes the argument positional. Positionals are filled in ascending index order;
// a Flag argument becomes Single.
func WithIndex(index int) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		if index < 0 {
			*err = errs.ErrInvalidOption.WithArgs(fmt.Sprintf("positional index must be non-negative, got: %d", index))
			return
		}
		argument.Index = &index
		if argument.Kind == types.Flag {
			argument.Kind = types.Single
		}
	}
}

// WithKind sets the value shape:
//  1. Flag - takes no value, only its occurrences are counted
//  2. Single - takes exactly one value per occurrence
//  3. Multi - takes NumValues values per occurrence (one or more when NumValues is not set)
func WithKind(kind types.ArgKind) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Kind = kind
	}
}

// WithNumValues sets the number of values per occurrence and makes the argument Multi
func WithNumValues(r types.Range) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		if !r.Valid() || r.Max == 0 {
			*err = errs.ErrInvalidOption.WithArgs("number of values " + errs.FormatRange(r))
			return
		}
		argument.Kind = types.Multi
		argument.NumValues = &r
	}
}

// WithOccurrences bounds how many times the argument may be given. Use types.AtLeast(0)
// for counters such as -vvv.
func WithOccurrences(r types.Range) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		if !r.Valid() || r.Max == 0 {
			*err = errs.ErrInvalidOption.WithArgs("occurrences " + errs.FormatRange(r))
			return
		}
		argument.Occurrences = &r
	}
}

// WithDefault sets the values bound when the argument is absent
func WithDefault(values ...string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Default = append([]string(nil), values...)
	}
}

// SetRequired when true, the argument must be supplied (a default satisfies the requirement)
func SetRequired(required bool) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Required = required
	}
}

// WithConflicts lists argument or group ids which must not be present together with the argument
func WithConflicts(ids ...string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Conflicts = append(argument.Conflicts, ids...)
	}
}

// WithRequires lists argument or group ids which must be present when the argument is
func WithRequires(ids ...string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Requires = append(argument.Requires, ids...)
	}
}

// WithEnv names the environment variable supplying a fallback value. The variable is
// consulted only when the argument is absent from the command line, and wins over a default.
func WithEnv(name string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Env = name
	}
}

// WithEnvFromID derives the environment variable name from the argument id and the
// env prefix of the owning command, e.g. id "logLevel" with prefix "APP" gives APP_LOG_LEVEL
func WithEnvFromID() ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.EnvFromID = true
	}
}

// SetGlobal makes the argument resolvable in every descendant command
func SetGlobal(global bool) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Global = global
	}
}

// SetSubcommandExempt waives Required once a subcommand of the declaring command was chosen
func SetSubcommandExempt(exempt bool) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.SubcommandExempt = exempt
	}
}

// SetAllowHyphenValues lets the argument consume values starting with '-', even when they
// name a known flag
func SetAllowHyphenValues(allow bool) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.AllowHyphenValues = allow
	}
}

// WithValueDelimiter splits every raw value on delim, so that --tag a,b binds two values
func WithValueDelimiter(delim rune) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.ValueDelimiter = delim
	}
}

// WithDescription the description is used by help renderers
func WithDescription(description string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Description = description
	}
}

func validLongName(name string) bool {
	if name == "" || name[0] == '-' {
		return false
	}
	for _, r := range name {
		if r == '=' || unicode.IsSpace(r) {
			return false
		}
	}

	return true
}
