package argmatch

import (
	"errors"
	"testing"

	"github.com/napalu/argmatch/errs"
	"github.com/napalu/argmatch/types"
	"github.com/stretchr/testify/assert"
)

func TestArgumentConfigFuncs(t *testing.T) {
	tests := []struct {
		name    string
		config  ConfigureArgumentFunc
		check   func(t *testing.T, a *Argument)
		wantErr error
	}{
		{
			name:   "short",
			config: WithShort('v'),
			check: func(t *testing.T, a *Argument) {
				assert.Equal(t, 'v', a.Short)
			},
		},
		{
			name:    "short dash",
			config:  WithShort('-'),
			wantErr: errs.ErrInvalidOption,
		},
		{
			name:    "short equals",
			config:  WithShort('='),
			wantErr: errs.ErrInvalidOption,
		},
		{
			name:   "long",
			config: WithLong("dry-run"),
			check: func(t *testing.T, a *Argument) {
				assert.Equal(t, "dry-run", a.Long)
			},
		},
		{
			name:    "long with equals",
			config:  WithLong("a=b"),
			wantErr: errs.ErrInvalidOption,
		},
		{
			name:    "long with leading dash",
			config:  WithLong("-x"),
			wantErr: errs.ErrInvalidOption,
		},
		{
			name:    "empty long",
			config:  WithLong(""),
			wantErr: errs.ErrInvalidOption,
		},
		{
			name:   "aliases",
			config: WithAliases("colour", "colr"),
			check: func(t *testing.T, a *Argument) {
				assert.Equal(t, []string{"colour", "colr"}, a.Aliases)
			},
		},
		{
			name:    "alias with space",
			config:  WithAliases("ok", "not ok"),
			wantErr: errs.ErrInvalidOption,
		},
		{
			name:   "index turns a flag into a single value",
			config: WithIndex(0),
			check: func(t *testing.T, a *Argument) {
				assert.True(t, a.IsPositional())
				assert.Equal(t, 0, *a.Index)
				assert.Equal(t, types.Single, a.Kind)
			},
		},
		{
			name:    "negative index",
			config:  WithIndex(-1),
			wantErr: errs.ErrInvalidOption,
		},
		{
			name:   "num values",
			config: WithNumValues(types.Between(1, 3)),
			check: func(t *testing.T, a *Argument) {
				assert.Equal(t, types.Multi, a.Kind)
				assert.Equal(t, types.Between(1, 3), *a.NumValues)
			},
		},
		{
			name:    "num values inverted",
			config:  WithNumValues(types.Between(3, 1)),
			wantErr: errs.ErrInvalidOption,
		},
		{
			name:    "num values zero",
			config:  WithNumValues(types.Exactly(0)),
			wantErr: errs.ErrInvalidOption,
		},
		{
			name:   "occurrences",
			config: WithOccurrences(types.AtLeast(0)),
			check: func(t *testing.T, a *Argument) {
				assert.Equal(t, types.AtLeast(0), *a.Occurrences)
			},
		},
		{
			name:    "occurrences negative",
			config:  WithOccurrences(types.Between(-1, 2)),
			wantErr: errs.ErrInvalidOption,
		},
		{
			name:   "default",
			config: WithDefault("a", "b"),
			check: func(t *testing.T, a *Argument) {
				assert.Equal(t, []string{"a", "b"}, a.Default)
			},
		},
		{
			name:   "references",
			config: WithConflicts("x", "y"),
			check: func(t *testing.T, a *Argument) {
				assert.Equal(t, []string{"x", "y"}, a.Conflicts)
			},
		},
		{
			name:   "requires",
			config: WithRequires("z"),
			check: func(t *testing.T, a *Argument) {
				assert.Equal(t, []string{"z"}, a.Requires)
			},
		},
		{
			name:   "env",
			config: WithEnv("APP_TOKEN"),
			check: func(t *testing.T, a *Argument) {
				assert.Equal(t, "APP_TOKEN", a.Env)
			},
		},
		{
			name:   "delimiter",
			config: WithValueDelimiter(','),
			check: func(t *testing.T, a *Argument) {
				assert.Equal(t, ',', a.ValueDelimiter)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arg := &Argument{}
			err := arg.Set(tt.config)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			assert.NoError(t, err)
			tt.check(t, arg)
		})
	}
}

func TestArgumentConfigFuncs_Toggles(t *testing.T) {
	arg := NewArg(
		SetRequired(true),
		SetGlobal(true),
		SetSubcommandExempt(true),
		SetAllowHyphenValues(true),
		WithEnvFromID(),
		WithDescription("toggles"),
	)

	assert.True(t, arg.Required)
	assert.True(t, arg.Global)
	assert.True(t, arg.SubcommandExempt)
	assert.True(t, arg.AllowHyphenValues)
	assert.True(t, arg.EnvFromID)
	assert.Equal(t, "toggles", arg.Description)
}
