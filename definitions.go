package argmatch

import (
	"log/slog"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/napalu/argmatch/env"
)

// ConfigureArgumentFunc is used when defining Argument options
type ConfigureArgumentFunc func(argument *Argument, err *error)

// ConfigureCommandFunc is used when defining Command options
type ConfigureCommandFunc func(command *Command)

// ConfigureParserFunc is used when defining Parser options
type ConfigureParserFunc func(parser *Parser, err *error)

// NameConversionFunc converts an argument id to a flag or environment variable name
type NameConversionFunc func(string) string

// Built-in conversion strategies
var (
	// ToKebabCase converts a string to kebab case "my-flag-name"
	ToKebabCase = func(s string) string {
		return strcase.ToKebab(s)
	}

	// ToSnakeCase converts a string to snake case "my_flag_name"
	ToSnakeCase = func(s string) string {
		return strcase.ToSnake(s)
	}

	// ToScreamingSnake converts a string to screaming snake case "MY_FLAG_NAME"
	ToScreamingSnake = func(s string) string {
		return strcase.ToScreamingSnake(s)
	}

	// ToLowerCamel converts a string to lower camel case "myFlagName"
	ToLowerCamel = func(s string) string {
		return strcase.ToLowerCamel(s)
	}

	// ToLowerCase converts a string to lower case "myflagname"
	ToLowerCase = func(s string) string {
		return strings.ToLower(s)
	}

	DefaultFlagNameConverter = ToKebabCase
	DefaultEnvNameConverter  = ToScreamingSnake
)

// DefaultMaxDepth caps subcommand nesting, both when a Command tree is frozen and when it is matched
const DefaultMaxDepth = 32

// Parser matches argument vectors against a frozen Definition. A Parser is immutable
// once built and may be shared by any number of goroutines.
type Parser struct {
	def       *Definition
	failFast  bool
	env       env.Resolver
	suggester Suggester
	logger    *slog.Logger
	maxDepth  int
}
