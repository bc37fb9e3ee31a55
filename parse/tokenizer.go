package parse

import (
	"strings"
	"unicode/utf8"

	"github.com/napalu/argmatch/errs"
	"github.com/napalu/argmatch/internal/util"
)

// Context describes the command in scope. The matcher supplies it on every pull so
// that classification follows the active command as the matcher descends.
type Context interface {
	// ShortTakesValue reports whether the short flag r takes at least one value.
	// Unknown characters report false.
	ShortTakesValue(r rune) bool
	// AllowNegativeNumbers reports whether tokens such as "-5" are positional
	AllowNegativeNumbers() bool
	// AllowInvalidUTF8 disables the UTF-8 check on raw tokens
	AllowInvalidUTF8() bool
	// Path is the command path used in error context
	Path() []string
}

// Tokenizer turns raw tokens into classified tokens lazily. It owns the Cursor;
// tokens are produced in order and each is consumed exactly once.
type Tokenizer struct {
	cursor       *Cursor
	optionsEnded bool
}

// NewTokenizer creates a Tokenizer over args
func NewTokenizer(args []string) *Tokenizer {
	return &Tokenizer{cursor: NewCursor(args)}
}

// Next consumes and classifies the next raw token. The boolean is false once the
// tokens are exhausted. An end-of-options marker switches every following token to
// Positional until ResetOptionsEnded is called.
func (t *Tokenizer) Next(ctx Context) (Token, bool, error) {
	raw, idx, ok := t.cursor.Peek()
	if !ok {
		return Token{}, false, nil
	}
	tok, err := t.classify(raw, idx, ctx)
	if err != nil {
		return Token{}, false, err
	}
	t.cursor.Next()
	if tok.Kind == EndOfOptions {
		t.optionsEnded = true
	}

	return tok, true, nil
}

// Peek classifies the next raw token without consuming it
func (t *Tokenizer) Peek(ctx Context) (Token, bool, error) {
	raw, idx, ok := t.cursor.Peek()
	if !ok {
		return Token{}, false, nil
	}
	tok, err := t.classify(raw, idx, ctx)
	if err != nil {
		return Token{}, false, err
	}

	return tok, true, nil
}

// NextValue consumes the next raw token verbatim as a Value
func (t *Tokenizer) NextValue(ctx Context) (Token, bool, error) {
	raw, idx, ok := t.cursor.Peek()
	if !ok {
		return Token{}, false, nil
	}
	if err := checkUTF8(raw, idx, ctx); err != nil {
		return Token{}, false, err
	}
	t.cursor.Next()

	return Token{Kind: Value, Raw: raw, Index: idx, Value: raw, HasValue: true}, true, nil
}

// Remaining consumes every raw token left, verbatim
func (t *Tokenizer) Remaining() []string {
	return t.cursor.Drain()
}

// Len returns the number of raw tokens left
func (t *Tokenizer) Len() int {
	return t.cursor.Len()
}

// OptionsEnded reports whether an end-of-options marker was consumed in the current scope
func (t *Tokenizer) OptionsEnded() bool {
	return t.optionsEnded
}

// ResetOptionsEnded re-enables flag classification, used when descending into a subcommand
func (t *Tokenizer) ResetOptionsEnded() {
	t.optionsEnded = false
}

func (t *Tokenizer) classify(raw string, idx int, ctx Context) (Token, error) {
	if err := checkUTF8(raw, idx, ctx); err != nil {
		return Token{}, err
	}

	if t.optionsEnded {
		return positional(raw, idx), nil
	}

	switch {
	case raw == "--":
		return Token{Kind: EndOfOptions, Raw: raw, Index: idx}, nil
	case strings.HasPrefix(raw, "--"):
		tok := Token{Kind: LongFlag, Raw: raw, Index: idx, Name: raw[2:]}
		if name, value, found := strings.Cut(raw[2:], "="); found {
			tok.Name = name
			tok.Value = value
			tok.HasValue = true
		}
		return tok, nil
	case len(raw) > 1 && raw[0] == '-':
		if ctx.AllowNegativeNumbers() && util.IsNegativeNumber(raw) {
			return positional(raw, idx), nil
		}
		return classifyCluster(raw, idx, ctx), nil
	}

	return positional(raw, idx), nil
}

// classifyCluster splits "-abc" into its characters. The first character which takes
// a value ends the cluster; whatever follows it (minus one leading '=') is its inline value.
// A '=' after a character which takes no value also starts an inline value, which the
// matcher rejects.
func classifyCluster(raw string, idx int, ctx Context) Token {
	tok := Token{Kind: ShortCluster, Raw: raw, Index: idx}
	rest := raw[1:]
	for len(rest) > 0 {
		r, size := utf8.DecodeRuneInString(rest)
		tok.Shorts = append(tok.Shorts, r)
		rest = rest[size:]

		if ctx.ShortTakesValue(r) {
			if rest != "" {
				tok.Value = strings.TrimPrefix(rest, "=")
				tok.HasValue = true
			}
			return tok
		}
		if strings.HasPrefix(rest, "=") {
			tok.Value = rest[1:]
			tok.HasValue = true
			return tok
		}
	}

	return tok
}

func positional(raw string, idx int) Token {
	return Token{Kind: Positional, Raw: raw, Index: idx, Value: raw}
}

func checkUTF8(raw string, idx int, ctx Context) error {
	if ctx.AllowInvalidUTF8() || utf8.ValidString(raw) {
		return nil
	}

	return errs.InvalidUnicode(idx, ctx.Path())
}
