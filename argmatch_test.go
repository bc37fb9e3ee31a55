package argmatch

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/napalu/argmatch/errs"
	"github.com/napalu/argmatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseWith(t *testing.T, root *Command, args ...string) (*ArgMatches, error) {
	t.Helper()
	p, err := NewParser(root)
	require.NoError(t, err)

	return p.Parse(args)
}

func mustMatch(t *testing.T, root *Command, args ...string) *ArgMatches {
	t.Helper()
	m, err := parseWith(t, root, args...)
	require.NoError(t, err)

	return m
}

// firstMatchError returns the first *errs.MatchError carried by err
func firstMatchError(t *testing.T, err error) *errs.MatchError {
	t.Helper()
	all := errs.AsMatchErrors(err)
	require.NotEmpty(t, all, "expected a match error, got %v", err)

	return all[0]
}

func TestParse_EmptyInputReportsDefaultsAndAbsence(t *testing.T) {
	root := NewCommand(
		WithName("app"),
		WithArg("name", NewArg(WithKind(types.Single), WithDefault("anon"))),
		WithArg("verbose", NewArg(WithShort('v'))),
		WithArg("files", NewArg(WithIndex(0), WithNumValues(types.AtLeast(1)))),
	)

	m := mustMatch(t, root)

	name, ok := m.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "anon", name)
	assert.True(t, m.IsDefaulted("name"))
	assert.False(t, m.IsPresent("name"))
	assert.Equal(t, 0, m.Occurrences("name"))

	assert.False(t, m.Contains("verbose"))
	assert.False(t, m.Contains("files"))
	assert.Nil(t, m.GetAll("files"))
	assert.Empty(t, m.SubcommandPath())
}

func TestParse_TooManyOccurrences(t *testing.T) {
	root := NewCommand(
		WithName("app"),
		WithArg("foo", NewArg(WithKind(types.Single))),
	)

	_, err := parseWith(t, root, "--foo", "a", "--foo", "b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrTooManyOccurrences))

	me := firstMatchError(t, err)
	assert.Equal(t, "foo", me.Arg)
	assert.Equal(t, 2, me.Found)
	assert.Equal(t, types.Between(0, 1), me.Expected)
	assert.Equal(t, []string{"app"}, me.CommandPath)
}

func TestParse_InlineAndSeparateValuesAreEquivalent(t *testing.T) {
	root := func() *Command {
		return NewCommand(
			WithName("app"),
			WithArg("foo", NewArg(WithKind(types.Single))),
		)
	}

	separate := mustMatch(t, root(), "--foo", "bar")
	inline := mustMatch(t, root(), "--foo=bar")

	assert.Equal(t, []string{"bar"}, separate.GetAll("foo"))
	assert.Equal(t, separate.GetAll("foo"), inline.GetAll("foo"))
	assert.Equal(t, separate.Occurrences("foo"), inline.Occurrences("foo"))

	empty := mustMatch(t, root(), "--foo=")
	assert.Equal(t, []string{""}, empty.GetAll("foo"))
}

func TestParse_ShortClusters(t *testing.T) {
	root := func() *Command {
		return NewCommand(
			WithName("app"),
			WithArg("a", NewArg(WithShort('a'))),
			WithArg("b", NewArg(WithShort('b'), WithKind(types.Single))),
		)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"separate value", []string{"-ab", "val"}},
		{"inline suffix", []string{"-abval"}},
		{"inline equals", []string{"-ab=val"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustMatch(t, root(), tt.args...)
			assert.True(t, m.IsPresent("a"))
			v, ok := m.Get("b")
			assert.True(t, ok)
			assert.Equal(t, "val", v)
		})
	}

	_, err := parseWith(t, root(), "-a=1")
	assert.True(t, errors.Is(err, errs.ErrTooManyValues), "a flag cannot take an inline value")
}

func TestParse_EndOfOptions(t *testing.T) {
	root := NewCommand(
		WithName("app"),
		WithArg("foo", NewArg()),
		WithArg("input", NewArg(WithIndex(0))),
	)

	m := mustMatch(t, root, "--", "--foo")
	v, _ := m.Get("input")
	assert.Equal(t, "--foo", v)
	assert.False(t, m.Contains("foo"))
}

func TestParse_GroupExactlyOne(t *testing.T) {
	root := func() *Command {
		return NewCommand(
			WithName("app"),
			WithArg("x", NewArg()),
			WithArg("y", NewArg()),
			WithGroup(NewGroup("mode", types.ExactlyOne, "x", "y")),
		)
	}

	tests := []struct {
		name    string
		args    []string
		wantErr bool
		found   int
	}{
		{"both", []string{"--x", "--y"}, true, 2},
		{"neither", nil, true, 0},
		{"only x", []string{"--x"}, false, 0},
		{"only y", []string{"--y"}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseWith(t, root(), tt.args...)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrGroupCardinalityViolation))
			me := firstMatchError(t, err)
			assert.Equal(t, "mode", me.Group)
			assert.Equal(t, tt.found, me.Found)
			assert.Equal(t, types.Exactly(1), me.Expected)
		})
	}
}

func TestParse_ConflictsIgnoreCommandLineOrder(t *testing.T) {
	root := func() *Command {
		return NewCommand(
			WithName("app"),
			WithArg("a", NewArg(WithConflicts("b"))),
			WithArg("b", NewArg(WithConflicts("a"))),
		)
	}

	for _, args := range [][]string{{"--a", "--b"}, {"--b", "--a"}} {
		_, err := parseWith(t, root(), args...)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrConflictingArguments))

		all := errs.AsMatchErrors(err)
		require.Len(t, all, 1, "a symmetric conflict should be reported once")
		assert.Equal(t, "a", all[0].Arg)
		assert.Equal(t, "b", all[0].Other)
	}
}

func TestParse_SubcommandDelegation(t *testing.T) {
	root := func() *Command {
		return NewCommand(
			WithName("app"),
			WithSubcommands(NewCommand(
				WithName("run"),
				WithArg("target", NewArg(WithKind(types.Single), SetRequired(true))),
			)),
		)
	}

	m := mustMatch(t, root(), "run", "--target", "x")
	assert.Equal(t, []string{"run"}, m.SubcommandPath())
	name, sub, ok := m.Subcommand()
	require.True(t, ok)
	assert.Equal(t, "run", name)
	v, _ := sub.Get("target")
	assert.Equal(t, "x", v)
	assert.Same(t, sub, m.Leaf())
	assert.Equal(t, []string{"app", "run"}, sub.CommandPath())

	_, err := parseWith(t, root(), "run")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrMissingRequiredArgument))
	me := firstMatchError(t, err)
	assert.Equal(t, "target", me.Arg)
	assert.Equal(t, []string{"app", "run"}, me.CommandPath)
}

func TestParse_UnknownArgument(t *testing.T) {
	root := NewCommand(
		WithName("app"),
		WithArg("verbose", NewArg(WithShort('v'))),
		WithArg("name", NewArg(WithKind(types.Single))),
	)

	_, err := parseWith(t, root, "--name", "x", "--verbos")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrUnknownArgument))
	me := firstMatchError(t, err)
	assert.Equal(t, "--verbos", me.Text)
	assert.Equal(t, 2, me.Index)
	assert.Equal(t, []string{"--verbose"}, me.Suggestions)

	_, err = parseWith(t, root, "-vz")
	me = firstMatchError(t, err)
	assert.Equal(t, "-z", me.Text)

	_, err = parseWith(t, root, "-5")
	assert.True(t, errors.Is(err, errs.ErrUnknownArgument), "negative numbers are flags unless allowed")
}

func TestParse_GreedyValues(t *testing.T) {
	root := func(configs ...ConfigureCommandFunc) *Command {
		return NewCommand(append([]ConfigureCommandFunc{
			WithName("app"),
			WithArg("files", NewArg(WithNumValues(types.AtLeast(1)))),
			WithArg("verbose", NewArg(WithShort('v'))),
			WithArg("rest", NewArg(WithIndex(0))),
		}, configs...)...)
	}

	m := mustMatch(t, root(), "--files", "a", "b", "-v")
	assert.Equal(t, []string{"a", "b"}, m.GetAll("files"))
	assert.True(t, m.IsPresent("verbose"))

	m = mustMatch(t, root(), "--files", "a", "--unknown", "-x")
	assert.Equal(t, []string{"a", "--unknown", "-x"}, m.GetAll("files"), "unknown flag-shaped tokens are values")

	_, err := parseWith(t, root(SetStopAtFlag(true)), "--files", "a", "--unknown")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrUnknownArgument))

	m = mustMatch(t, root(), "--files", "a", "--", "b")
	assert.Equal(t, []string{"a"}, m.GetAll("files"), "the end-of-options marker closes a pending argument")
	rest, _ := m.Get("rest")
	assert.Equal(t, "b", rest)
}

func TestParse_TooFewValues(t *testing.T) {
	root := func() *Command {
		return NewCommand(
			WithName("app"),
			WithArg("pair", NewArg(WithNumValues(types.Exactly(2)))),
			WithArg("name", NewArg(WithKind(types.Single))),
			WithArg("verbose", NewArg(WithShort('v'))),
		)
	}

	tests := []struct {
		name  string
		args  []string
		arg   string
		found int
	}{
		{"exhausted", []string{"--pair", "a"}, "pair", 1},
		{"closed by known flag", []string{"--pair", "a", "-v"}, "pair", 1},
		{"single closed by known flag", []string{"--name", "-v"}, "name", 0},
		{"single at end", []string{"--name"}, "name", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseWith(t, root(), tt.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrTooFewValues))
			me := firstMatchError(t, err)
			assert.Equal(t, tt.arg, me.Arg)
			assert.Equal(t, tt.found, me.Found)
		})
	}

	m := mustMatch(t, root(), "--pair", "a", "b", "--name", "n")
	assert.Equal(t, []string{"a", "b"}, m.GetAll("pair"))
}

func TestParse_HyphenValues(t *testing.T) {
	root := NewCommand(
		WithName("app"),
		WithArg("expr", NewArg(WithKind(types.Single), SetAllowHyphenValues(true))),
		WithArg("verbose", NewArg(WithShort('v'))),
	)

	m := mustMatch(t, root, "--expr", "-v")
	v, _ := m.Get("expr")
	assert.Equal(t, "-v", v)
	assert.False(t, m.Contains("verbose"))
}

func TestParse_NegativeNumbers(t *testing.T) {
	root := NewCommand(
		WithName("app"),
		SetAllowNegativeNumbers(true),
		WithArg("offset", NewArg(WithKind(types.Single))),
		WithArg("n", NewArg(WithIndex(0))),
	)

	m := mustMatch(t, root, "-5", "--offset", "-1.5")
	n, _ := m.Get("n")
	assert.Equal(t, "-5", n)
	off, err := m.GetFloat("offset")
	require.NoError(t, err)
	assert.Equal(t, -1.5, off)

	m = mustMatch(t, root, "-0", "--offset", "-0.0")
	n, _ = m.Get("n")
	assert.Equal(t, "-0", n)
	offRaw, _ := m.Get("offset")
	assert.Equal(t, "-0.0", offRaw)
}

func TestParse_ValueDelimiter(t *testing.T) {
	root := NewCommand(
		WithName("app"),
		WithArg("tags", NewArg(
			WithNumValues(types.AtLeast(1)),
			WithOccurrences(types.AtLeast(0)),
			WithValueDelimiter(','))),
		WithArg("pair", NewArg(WithNumValues(types.Exactly(2)), WithValueDelimiter(','))),
	)
	p := MustParser(root)

	m, err := p.Parse([]string{"--tags", "a,b", "--tags=c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, m.GetAll("tags"))
	assert.Equal(t, 2, m.Occurrences("tags"))

	m, err = p.Parse([]string{"--pair=x,y"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, m.GetAll("pair"))

	_, err = p.Parse([]string{"--pair=a,b,c"})
	assert.True(t, errors.Is(err, errs.ErrTooManyValues))
	assert.Equal(t, 3, firstMatchError(t, err).Found)
}

func TestParse_PositionalValueDelimiter(t *testing.T) {
	root := NewCommand(
		WithName("app"),
		WithArg("hosts", NewArg(WithIndex(0), WithKind(types.Multi), WithValueDelimiter(','))),
	)
	m := mustMatch(t, root, "x,y", "z")
	assert.Equal(t, []string{"x", "y", "z"}, m.GetAll("hosts"))
	assert.Equal(t, 1, m.Occurrences("hosts"))

	pair := NewCommand(
		WithName("app"),
		WithArg("pair", NewArg(WithIndex(0), WithNumValues(types.Exactly(2)), WithValueDelimiter(':'))),
	)
	m = mustMatch(t, pair, "k:v")
	assert.Equal(t, []string{"k", "v"}, m.GetAll("pair"))

	_, err := parseWith(t, pair, "a:b:c")
	assert.True(t, errors.Is(err, errs.ErrTooManyValues))
	assert.Equal(t, 3, firstMatchError(t, err).Found)
}

func TestParse_Counter(t *testing.T) {
	root := NewCommand(
		WithName("app"),
		WithArg("verbose", NewArg(WithShort('v'), WithOccurrences(types.AtLeast(0)))),
	)

	m := mustMatch(t, root, "-vvv", "--verbose")
	assert.Equal(t, 4, m.Occurrences("verbose"))
	n, err := m.GetInt("verbose")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestParse_InferLongArgs(t *testing.T) {
	root := NewCommand(
		WithName("app"),
		SetInferLongArgs(true),
		WithArg("verbose", NewArg()),
		WithArg("version", NewArg()),
		WithArg("color", NewArg(WithAliases("colour"))),
	)
	p := MustParser(root)

	m, err := p.Parse([]string{"--verb", "--col"})
	require.NoError(t, err)
	assert.True(t, m.IsPresent("verbose"))
	assert.True(t, m.IsPresent("color"), "a prefix shared only by the names of one argument is unique")

	m, err = p.Parse([]string{"--version"})
	require.NoError(t, err)
	assert.True(t, m.IsPresent("version"))

	_, err = p.Parse([]string{"--ver"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrUnknownArgument))
	me := firstMatchError(t, err)
	assert.Equal(t, []string{"--verbose", "--version"}, me.Candidates)
	assert.Equal(t, errs.ErrAmbiguousArgumentKey, me.MessageKey())
}

func TestParse_Subcommands(t *testing.T) {
	tree := func(configs ...ConfigureCommandFunc) *Command {
		return NewCommand(append([]ConfigureCommandFunc{
			WithName("app"),
			WithSubcommands(
				NewCommand(WithName("run"), WithCommandAliases("r0"),
					WithArg("force", NewArg()),
					WithArg("p", NewArg(WithIndex(0)))),
				NewCommand(WithName("rebuild")),
			),
		}, configs...)...)
	}

	t.Run("alias", func(t *testing.T) {
		m := mustMatch(t, tree(), "r0", "--force")
		assert.Equal(t, []string{"run"}, m.SubcommandPath())
	})

	t.Run("inference", func(t *testing.T) {
		m := mustMatch(t, tree(SetInferSubcommands(true)), "ru")
		assert.Equal(t, []string{"run"}, m.SubcommandPath())

		_, err := parseWith(t, tree(SetInferSubcommands(true)), "r")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrUnknownSubcommand))
		me := firstMatchError(t, err)
		assert.Equal(t, errs.ErrAmbiguousSubcommandKey, me.MessageKey())
		assert.Equal(t, []string{"r0", "rebuild", "run"}, me.Candidates)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := parseWith(t, tree(), "rn")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrUnknownSubcommand))
		me := firstMatchError(t, err)
		assert.Equal(t, "rn", me.Text)
		assert.Contains(t, me.Suggestions, "run")
	})

	t.Run("end of options is reset in the subcommand", func(t *testing.T) {
		m := mustMatch(t, tree(), "--", "run", "--force", "x")
		leaf := m.Leaf()
		assert.True(t, leaf.IsPresent("force"))
		p, _ := leaf.Get("p")
		assert.Equal(t, "x", p)
	})

	t.Run("parent flags are out of scope", func(t *testing.T) {
		root := tree(WithArg("quiet", NewArg()))
		_, err := parseWith(t, root, "run", "--quiet")
		assert.True(t, errors.Is(err, errs.ErrUnknownArgument))

		m := mustMatch(t, tree(WithArg("quiet", NewArg())), "--quiet", "run")
		assert.True(t, m.IsPresent("quiet"))
	})

	t.Run("required", func(t *testing.T) {
		_, err := parseWith(t, tree(SetSubcommandRequired(true)))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrMissingSubcommand))
		assert.Equal(t, []string{"app"}, firstMatchError(t, err).CommandPath)
	})
}

func TestParse_PositionalsAndSubcommands(t *testing.T) {
	tree := func(configs ...ConfigureCommandFunc) *Command {
		return NewCommand(append([]ConfigureCommandFunc{
			WithName("app"),
			WithArg("file", NewArg(WithIndex(0))),
			WithSubcommands(NewCommand(WithName("run"))),
		}, configs...)...)
	}

	m := mustMatch(t, tree(), "f.txt", "run")
	f, _ := m.Get("file")
	assert.Equal(t, "f.txt", f)
	assert.Equal(t, []string{"run"}, m.SubcommandPath())

	m = mustMatch(t, tree(), "run")
	f, _ = m.Get("file")
	assert.Equal(t, "run", f, "positionals are filled before subcommands are looked up")
	assert.Empty(t, m.SubcommandPath())

	m = mustMatch(t, tree(SetSubcommandsFirst(true)), "run")
	assert.Equal(t, []string{"run"}, m.SubcommandPath())
	assert.False(t, m.Contains("file"))

	_, err := parseWith(t, tree(), "a", "b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrUnexpectedPositional))
	me := firstMatchError(t, err)
	assert.Equal(t, "b", me.Text)
	assert.Equal(t, 1, me.Index)
}

func TestParse_PositionalOrder(t *testing.T) {
	root := NewCommand(
		WithName("app"),
		WithArg("verbose", NewArg(WithShort('v'))),
		WithArg("files", NewArg(WithIndex(2), WithNumValues(types.AtLeast(1)))),
		WithArg("dst", NewArg(WithIndex(1))),
		WithArg("src", NewArg(WithIndex(0))),
	)

	m := mustMatch(t, root, "a", "-v", "b", "c", "d")
	src, _ := m.Get("src")
	dst, _ := m.Get("dst")
	assert.Equal(t, "a", src)
	assert.Equal(t, "b", dst)
	assert.Equal(t, []string{"c", "d"}, m.GetAll("files"))
	assert.True(t, m.IsPresent("verbose"))
	assert.Equal(t, 1, m.Occurrences("files"))
}

func TestParse_PositionalOccurrences(t *testing.T) {
	root := func() *Command {
		return NewCommand(
			WithName("app"),
			WithArg("src", NewArg(WithIndex(0), WithKind(types.Single), WithOccurrences(types.Between(2, 3)))),
		)
	}

	m := mustMatch(t, root(), "a", "b")
	assert.Equal(t, []string{"a", "b"}, m.GetAll("src"))
	assert.Equal(t, 2, m.Occurrences("src"))

	m = mustMatch(t, root(), "a", "b", "c")
	assert.Equal(t, 3, m.Occurrences("src"))

	_, err := parseWith(t, root(), "a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrOccurrenceCountViolation))
	me := firstMatchError(t, err)
	assert.Equal(t, "src", me.Arg)
	assert.Equal(t, 1, me.Found)

	_, err = parseWith(t, root())
	assert.True(t, errors.Is(err, errs.ErrOccurrenceCountViolation))
	assert.Equal(t, 0, firstMatchError(t, err).Found)

	_, err = parseWith(t, root(), "a", "b", "c", "d")
	assert.True(t, errors.Is(err, errs.ErrUnexpectedPositional))
	assert.Equal(t, "d", firstMatchError(t, err).Text)
}

func TestParse_PositionalOccurrencesSpillToNext(t *testing.T) {
	root := NewCommand(
		WithName("app"),
		WithArg("pairs", NewArg(WithIndex(0), WithNumValues(types.Exactly(2)), WithOccurrences(types.Between(1, 2)))),
		WithArg("rest", NewArg(WithIndex(1))),
	)

	m := mustMatch(t, root, "a", "b", "c", "d", "e")
	assert.Equal(t, []string{"a", "b", "c", "d"}, m.GetAll("pairs"))
	assert.Equal(t, 2, m.Occurrences("pairs"))
	rest, _ := m.Get("rest")
	assert.Equal(t, "e", rest)

	_, err := parseWith(t, root, "a", "b", "c")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrTooFewValues))
	me := firstMatchError(t, err)
	assert.Equal(t, "pairs", me.Arg)
	assert.Equal(t, 1, me.Found)
}

func TestParse_Passthrough(t *testing.T) {
	root := NewCommand(
		WithName("app"),
		SetPassthrough(true),
		SetUnknownAsPositional(true),
		WithArg("verbose", NewArg(WithShort('v'))),
	)

	m := mustMatch(t, root, "-v", "cmd", "--x", "-y", "--", "-v")
	assert.True(t, m.IsPresent("verbose"))
	assert.Equal(t, []string{"cmd", "--x", "-y", "-v"}, m.Trailing())
	assert.Equal(t, 1, m.Occurrences("verbose"))
}

func TestParse_GlobalArguments(t *testing.T) {
	root := NewCommand(
		WithName("app"),
		WithArg("verbose", NewArg(WithShort('v'), SetGlobal(true), WithOccurrences(types.AtLeast(0)))),
		WithSubcommands(NewCommand(WithName("run"),
			WithSubcommands(NewCommand(WithName("fast"))))),
	)

	m := mustMatch(t, root, "-v", "run", "-v", "fast", "--verbose")
	assert.Equal(t, 3, m.Occurrences("verbose"), "global arguments bind at the declaring command")
	assert.False(t, m.Leaf().Contains("verbose"))
	assert.Equal(t, []string{"run", "fast"}, m.SubcommandPath())
}

func TestParse_InvalidUnicode(t *testing.T) {
	root := func(configs ...ConfigureCommandFunc) *Command {
		return NewCommand(append([]ConfigureCommandFunc{
			WithName("app"),
			WithArg("input", NewArg(WithIndex(0))),
		}, configs...)...)
	}

	_, err := parseWith(t, root(), "\xff")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidUnicode))
	assert.Equal(t, 0, firstMatchError(t, err).Index)

	m := mustMatch(t, root(SetAllowInvalidUTF8(true)), "\xff")
	v, _ := m.Get("input")
	assert.Equal(t, "\xff", v)
}

func TestParse_ParseString(t *testing.T) {
	p := MustParser(NewCommand(
		WithName("app"),
		WithArg("name", NewArg(WithKind(types.Single))),
	))

	m, err := p.ParseString(`--name "a b"`)
	require.NoError(t, err)
	v, _ := m.Get("name")
	assert.Equal(t, "a b", v)

	_, err = p.ParseString(`--name "unterminated`)
	assert.Error(t, err)
}

func TestParse_DoesNotMutateParser(t *testing.T) {
	p := MustParser(NewCommand(
		WithName("app"),
		WithArg("name", NewArg(WithKind(types.Single))),
	))

	_, err := p.Parse([]string{"--name", "a"})
	require.NoError(t, err)
	m, err := p.Parse([]string{"--name", "b"})
	require.NoError(t, err, "a second parse should not see occurrences of the first")
	v, _ := m.Get("name")
	assert.Equal(t, "b", v)
}

func TestParse_Concurrent(t *testing.T) {
	p := MustParser(NewCommand(
		WithName("app"),
		WithArg("verbose", NewArg(WithShort('v'), WithOccurrences(types.AtLeast(0)), SetGlobal(true))),
		WithArg("name", NewArg(WithKind(types.Single))),
		WithSubcommands(NewCommand(
			WithName("run"),
			WithArg("target", NewArg(WithKind(types.Single), SetRequired(true))),
		)),
	))

	const workers = 64
	var wg sync.WaitGroup
	failures := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			args := []string{"--name", fmt.Sprint(i), "run", "--target", fmt.Sprint(i * 2)}
			for j := 0; j < i%4; j++ {
				args = append(args, "-v")
			}
			m, err := p.Parse(args)
			if err != nil {
				failures <- err.Error()
				return
			}
			name, _ := m.Get("name")
			target, _ := m.Leaf().Get("target")
			if name != fmt.Sprint(i) || target != fmt.Sprint(i*2) || m.Occurrences("verbose") != i%4 {
				failures <- fmt.Sprintf("worker %d: name=%s target=%s verbose=%d", i, name, target, m.Occurrences("verbose"))
			}
		}(i)
	}
	wg.Wait()
	close(failures)

	for f := range failures {
		t.Error(f)
	}
}
