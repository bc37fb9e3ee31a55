package argmatch

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/napalu/argmatch/errs"
	"github.com/napalu/argmatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserConfigFuncs_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config ConfigureParserFunc
	}{
		{"nil env resolver", WithEnvResolver(nil)},
		{"nil logger", WithLogger(nil)},
		{"negative depth", WithMaxDepth(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewParser(NewCommand(WithName("app")), tt.config)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, errs.ErrInvalidOption), "got %v", err)
		})
	}
}

func TestWithSuggester(t *testing.T) {
	root := func() *Command {
		return NewCommand(WithName("app"), WithArg("verbose", NewArg()))
	}

	p, err := NewParser(root(), WithSuggester(nil))
	require.NoError(t, err)
	_, err = p.Parse([]string{"--verbos"})
	assert.Empty(t, firstMatchError(t, err).Suggestions, "a nil suggester disables suggestions")

	var seen []string
	custom := SuggesterFunc(func(input string, candidates []string) []string {
		seen = candidates
		return []string{strings.ToUpper(input)}
	})
	p, err = NewParser(root(), WithSuggester(custom))
	require.NoError(t, err)
	_, err = p.Parse([]string{"--verbos"})
	me := firstMatchError(t, err)
	assert.Equal(t, []string{"--VERBOS"}, me.Suggestions)
	assert.Equal(t, []string{"--verbose"}, seen)
	assert.True(t, errors.Is(err, errs.ErrUnknownArgument), "suggestions never change the error kind")
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p, err := NewParser(NewCommand(
		WithName("app"),
		WithArg("name", NewArg(WithKind(types.Single))),
		WithSubcommands(NewCommand(WithName("run"))),
	), WithLogger(logger))
	require.NoError(t, err)

	_, err = p.Parse([]string{"--name", "x", "run"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "argument opened")
	assert.Contains(t, out, "value bound")
	assert.Contains(t, out, "subcommand entered")
	assert.Contains(t, out, "command validated")
}

func TestWithMaxDepth_Parse(t *testing.T) {
	root := NewCommand(
		WithName("app"),
		WithSubcommands(NewCommand(WithName("a"), WithSubcommands(NewCommand(WithName("b"))))),
	)

	p, err := NewParser(root, WithMaxDepth(2))
	require.NoError(t, err)
	m, err := p.Parse([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, m.SubcommandPath())

	// the frozen tree is shallower than the cap, so the parse-time guard only fires
	// when the parser is constructed by hand with a smaller cap
	p.maxDepth = 1
	_, err = p.Parse([]string{"a", "b"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrRecursionDepthExceeded))
}

func TestLevenshteinSuggester(t *testing.T) {
	s := LevenshteinSuggester{MaxDistance: 2}
	assert.Equal(t, []string{"--version"}, s.Suggest("--versio", []string{"--verbose", "--version", "--name"}))
	assert.Empty(t, s.Suggest("--zzz", []string{"--verbose"}))
}
