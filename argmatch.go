// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT licensee
// which can be found in the LICENSE file.

// Package argmatch matches command-line arguments against a declarative command tree.
//
// A tree of Command values, each owning Argument definitions, Group constraints and
// subcommands, is frozen into an immutable Definition by NewParser. Parse then runs
// three stages over the raw tokens:
//
//	tokenize - classify each token as a long flag, a short cluster, a positional or the -- marker
//	match    - bind values to argument ids and descend into subcommands
//	validate - apply environment fallbacks and defaults, then check requirements,
//	           conflicts, groups and occurrence counts
//
// The result is an ArgMatches snapshot or a structured error from the errs package.
// Matching errors abort immediately; validation errors are collected into an
// *errs.ValidationError unless WithFailFast is set.
//
// Arguments are configured with functional options:
//
//	root := argmatch.NewCommand(
//		argmatch.WithName("app"),
//		argmatch.WithArg("verbose", argmatch.NewArg(
//			argmatch.WithShort('v'),
//			argmatch.WithOccurrences(types.AtLeast(0)))),
//		argmatch.WithSubcommands(argmatch.NewCommand(
//			argmatch.WithName("run"),
//			argmatch.WithArg("target", argmatch.NewArg(
//				argmatch.WithKind(types.Single),
//				argmatch.SetRequired(true))))))
//	parser, err := argmatch.NewParser(root)
//	matches, err := parser.Parse(os.Args[1:])
package argmatch

import (
	"log/slog"

	"github.com/napalu/argmatch/env"
	"github.com/napalu/argmatch/parse"
)

// NewParser freezes root into a Definition and applies the parser options. The caller should
// always test for error on return because Parser will be nil when the command tree or an
// option is invalid.
func NewParser(root *Command, configs ...ConfigureParserFunc) (*Parser, error) {
	p := &Parser{
		env:       env.OSResolver{},
		suggester: DefaultSuggester,
		logger:    slog.New(slog.DiscardHandler),
		maxDepth:  DefaultMaxDepth,
	}

	var err error
	for _, config := range configs {
		config(p, &err)
		if err != nil {
			return nil, err
		}
	}

	p.def, err = newDefinition(root, p.maxDepth)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// MustParser is like NewParser but panics on an invalid command tree. An invalid tree is a
// programming error, so this is intended for package-level initialization.
func MustParser(root *Command, configs ...ConfigureParserFunc) *Parser {
	p, err := NewParser(root, configs...)
	if err != nil {
		panic(err)
	}

	return p
}

// Definition returns the frozen command tree
func (p *Parser) Definition() *Definition {
	return p.def
}

// Parse matches args (without the program name) and validates the result. On failure the
// error is an *errs.MatchError or an *errs.ValidationError. Parse has no side effects on the
// Parser and is safe for concurrent use.
func (p *Parser) Parse(args []string) (*ArgMatches, error) {
	m := newMatcher(p, args)
	state, err := m.run()
	if err != nil {
		p.logger.Debug("match failed", "error", err)
		return nil, err
	}

	v := &validator{parser: p, def: p.def, state: state}
	if err := v.run(); err != nil {
		p.logger.Debug("validation failed", "error", err)
		return nil, err
	}

	return newArgMatches(state), nil
}

// ParseString splits s with shell quoting rules and parses the resulting tokens
func (p *Parser) ParseString(s string) (*ArgMatches, error) {
	args, err := parse.Split(s)
	if err != nil {
		return nil, err
	}

	return p.Parse(args)
}
