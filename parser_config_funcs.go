package argmatch

import (
	"fmt"
	"log/slog"

	"github.com/napalu/argmatch/env"
	"github.com/napalu/argmatch/errs"
)

// WithFailFast reports only the first validation error instead of collecting every error
// into an *errs.ValidationError
func WithFailFast(failFast bool) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.failFast = failFast
	}
}

// WithEnvResolver sets the source of environment fallback values. The process environment is used by default.
func WithEnvResolver(resolver env.Resolver) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		if resolver == nil {
			*err = errs.ErrInvalidOption.WithArgs("nil env resolver")
			return
		}
		parser.env = resolver
	}
}

// WithSuggester sets the collaborator proposing corrections for unknown flags and subcommands.
// A nil suggester disables suggestions.
func WithSuggester(suggester Suggester) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.suggester = suggester
	}
}

// WithLogger enables Debug-level traces of matching and validation
func WithLogger(logger *slog.Logger) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		if logger == nil {
			*err = errs.ErrInvalidOption.WithArgs("nil logger")
			return
		}
		parser.logger = logger
	}
}

// WithMaxDepth caps subcommand nesting
func WithMaxDepth(depth int) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		if depth < 0 {
			*err = errs.ErrInvalidOption.WithArgs(fmt.Sprintf("max depth must be non-negative, got: %d", depth))
			return
		}
		parser.maxDepth = depth
	}
}
