// Command argmatch matches an argument vector against a YAML or TOML command schema and
// prints the outcome as JSON. It is a debugging aid for schema authors:
//
//	argmatch --schema git.yaml -- commit -m "fix" a.go
//
// Exit status is 0 on a match, 1 when the arguments do not match and 2 on usage errors.
package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/napalu/argmatch"
	"github.com/napalu/argmatch/errs"
	"github.com/napalu/argmatch/schema"
	"github.com/napalu/argmatch/types"
	"golang.org/x/text/language"
)

const (
	exitOK      = 0
	exitNoMatch = 1
	exitUsage   = 2
	defaultLang = "en"
	programName = "argmatch"
)

type matchJSON struct {
	Command    string     `json:"command"`
	Path       []string   `json:"path"`
	Args       []argJSON  `json:"args"`
	Trailing   []string   `json:"trailing,omitempty"`
	Subcommand *matchJSON `json:"subcommand,omitempty"`
}

type argJSON struct {
	ID          string   `json:"id"`
	Values      []string `json:"values,omitempty"`
	Occurrences int      `json:"occurrences"`
	Source      string   `json:"source"`
}

type errorJSON struct {
	Kind        string   `json:"kind"`
	Message     string   `json:"message"`
	Path        []string `json:"path"`
	Arg         string   `json:"arg,omitempty"`
	Other       string   `json:"other,omitempty"`
	Text        string   `json:"text,omitempty"`
	Index       *int     `json:"index,omitempty"`
	Group       string   `json:"group,omitempty"`
	Members     []string `json:"members,omitempty"`
	Expected    string   `json:"expected,omitempty"`
	Found       *int     `json:"found,omitempty"`
	Candidates  []string `json:"candidates,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type resultJSON struct {
	Matched bool        `json:"matched"`
	Match   *matchJSON  `json:"match,omitempty"`
	Errors  []errorJSON `json:"errors,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func cliParser() *argmatch.Parser {
	return argmatch.MustParser(argmatch.NewCommand(
		argmatch.WithName(programName),
		argmatch.WithCommandDescription("match arguments against a command schema"),
		argmatch.SetPassthrough(true),
		argmatch.WithArg("schema", argmatch.NewArg(
			argmatch.WithShort('s'),
			argmatch.WithKind(types.Single),
			argmatch.SetRequired(true),
			argmatch.WithDescription("YAML or TOML schema file"))),
		argmatch.WithArg("failFast", argmatch.NewArg(
			argmatch.WithDescription("stop at the first error"))),
		argmatch.WithArg("lang", argmatch.NewArg(
			argmatch.WithShort('l'),
			argmatch.WithKind(types.Single),
			argmatch.WithDefault(defaultLang),
			argmatch.WithEnv("ARGMATCH_LANG"),
			argmatch.WithDescription("language of error messages"))),
		argmatch.WithArg("verbose", argmatch.NewArg(
			argmatch.WithShort('v'),
			argmatch.WithDescription("log matcher transitions to stderr"))),
	))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.NewWithOptions(stderr, log.Options{Prefix: programName})

	opts, err := cliParser().Parse(args)
	if err != nil {
		logger.Error("invalid invocation", "err", err)
		return exitUsage
	}

	if verbose, _ := opts.GetBool("verbose"); verbose {
		logger.SetLevel(log.DebugLevel)
	}

	lang, _ := opts.Get("lang")
	tag, err := language.Parse(lang)
	if err != nil {
		logger.Error("invalid language", "lang", lang, "err", err)
		return exitUsage
	}
	matched := errs.SetLanguage(tag)
	logger.Debug("language selected", "requested", tag, "using", matched)

	path, _ := opts.Get("schema")
	root, err := schema.LoadFile(path)
	if err != nil {
		logger.Error("cannot load schema", "err", err)
		return exitUsage
	}

	failFast, _ := opts.GetBool("failFast")
	p, err := argmatch.NewParser(root,
		argmatch.WithFailFast(failFast),
		argmatch.WithLogger(slog.New(logger)),
	)
	if err != nil {
		logger.Error("invalid schema", "schema", path, "err", err)
		return exitUsage
	}

	m, err := p.Parse(opts.Trailing())
	res := resultJSON{Matched: err == nil}
	code := exitOK
	if err != nil {
		matchErrs := errs.AsMatchErrors(err)
		if len(matchErrs) == 0 {
			logger.Error("match failed", "err", err)
			return exitUsage
		}
		for _, me := range matchErrs {
			res.Errors = append(res.Errors, toErrorJSON(me))
		}
		code = exitNoMatch
	} else {
		res.Match = toMatchJSON(m)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		logger.Error("cannot write result", "err", err)
		return exitUsage
	}

	return code
}

func toMatchJSON(m *argmatch.ArgMatches) *matchJSON {
	if m == nil {
		return nil
	}
	out := &matchJSON{
		Command:  m.Name(),
		Path:     m.CommandPath(),
		Args:     []argJSON{},
		Trailing: m.Trailing(),
	}
	for _, id := range m.IDs() {
		out.Args = append(out.Args, argJSON{
			ID:          id,
			Values:      m.GetAll(id),
			Occurrences: m.Occurrences(id),
			Source:      m.Source(id).String(),
		})
	}
	_, sub, _ := m.Subcommand()
	out.Subcommand = toMatchJSON(sub)

	return out
}

func toErrorJSON(me *errs.MatchError) errorJSON {
	out := errorJSON{
		Kind:        me.MessageKey(),
		Message:     me.Error(),
		Path:        me.CommandPath,
		Arg:         me.Arg,
		Other:       me.Other,
		Text:        me.Text,
		Group:       me.Group,
		Members:     me.Members,
		Candidates:  me.Candidates,
		Suggestions: me.Suggestions,
	}
	if me.Index >= 0 {
		index := me.Index
		out.Index = &index
	}
	if me.Expected != (types.Range{}) || me.Found != 0 {
		found := me.Found
		out.Found = &found
		out.Expected = errs.FormatRange(me.Expected)
	}

	return out
}
