// Package schema loads command definitions from YAML and TOML documents.
//
// A document describes the root command; subcommands nest under "subcommands":
//
//	name: git
//	settings:
//	  infer_subcommands: true
//	args:
//	  - id: verbose
//	    short: v
//	    global: true
//	    occurrences: {min: 0}
//	subcommands:
//	  - name: commit
//	    args:
//	      - id: message
//	        short: m
//	        kind: single
//	        required: true
//
// The returned *argmatch.Command is an ordinary builder value and still has to be frozen
// with argmatch.NewParser, which performs every structural check.
package schema

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/napalu/argmatch"
	"github.com/napalu/argmatch/errs"
	"github.com/napalu/argmatch/types"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a schema document
type Format int

const (
	YAML Format = iota
	TOML
)

// String returns the string representation of a Format
func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	}
	return "unknown"
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}

	return YAML, errs.ErrUnknownSchemaFormat.WithArgs(path)
}

// CommandSpec is the document form of an argmatch.Command
type CommandSpec struct {
	Name        string        `yaml:"name" toml:"name"`
	Aliases     []string      `yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	Description string        `yaml:"description,omitempty" toml:"description,omitempty"`
	Settings    Settings      `yaml:"settings,omitempty" toml:"settings,omitempty"`
	Args        []ArgSpec     `yaml:"args,omitempty" toml:"args,omitempty"`
	Groups      []GroupSpec   `yaml:"groups,omitempty" toml:"groups,omitempty"`
	Subcommands []CommandSpec `yaml:"subcommands,omitempty" toml:"subcommands,omitempty"`
}

// Settings mirrors the behavior switches of argmatch.Command
type Settings struct {
	Passthrough          bool   `yaml:"passthrough,omitempty" toml:"passthrough,omitempty"`
	AllowNegativeNumbers bool   `yaml:"allow_negative_numbers,omitempty" toml:"allow_negative_numbers,omitempty"`
	StopAtFlag           bool   `yaml:"stop_at_flag,omitempty" toml:"stop_at_flag,omitempty"`
	InferLongArgs        bool   `yaml:"infer_long_args,omitempty" toml:"infer_long_args,omitempty"`
	InferSubcommands     bool   `yaml:"infer_subcommands,omitempty" toml:"infer_subcommands,omitempty"`
	SubcommandRequired   bool   `yaml:"subcommand_required,omitempty" toml:"subcommand_required,omitempty"`
	SubcommandsFirst     bool   `yaml:"subcommands_first,omitempty" toml:"subcommands_first,omitempty"`
	UnknownAsPositional  bool   `yaml:"unknown_as_positional,omitempty" toml:"unknown_as_positional,omitempty"`
	AllowInvalidUTF8     bool   `yaml:"allow_invalid_utf8,omitempty" toml:"allow_invalid_utf8,omitempty"`
	NameConverter        string `yaml:"name_converter,omitempty" toml:"name_converter,omitempty"`
	EnvPrefix            string `yaml:"env_prefix,omitempty" toml:"env_prefix,omitempty"`
}

// ArgSpec is the document form of an argmatch.Argument
type ArgSpec struct {
	ID                string     `yaml:"id" toml:"id"`
	Short             string     `yaml:"short,omitempty" toml:"short,omitempty"`
	Long              string     `yaml:"long,omitempty" toml:"long,omitempty"`
	Aliases           []string   `yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	Index             *int       `yaml:"index,omitempty" toml:"index,omitempty"`
	Kind              string     `yaml:"kind,omitempty" toml:"kind,omitempty"`
	Values            *RangeSpec `yaml:"values,omitempty" toml:"values,omitempty"`
	Occurrences       *RangeSpec `yaml:"occurrences,omitempty" toml:"occurrences,omitempty"`
	Default           []string   `yaml:"default,omitempty" toml:"default,omitempty"`
	Required          bool       `yaml:"required,omitempty" toml:"required,omitempty"`
	Conflicts         []string   `yaml:"conflicts,omitempty" toml:"conflicts,omitempty"`
	Requires          []string   `yaml:"requires,omitempty" toml:"requires,omitempty"`
	Env               string     `yaml:"env,omitempty" toml:"env,omitempty"`
	EnvFromID         bool       `yaml:"env_from_id,omitempty" toml:"env_from_id,omitempty"`
	Global            bool       `yaml:"global,omitempty" toml:"global,omitempty"`
	SubcommandExempt  bool       `yaml:"subcommand_exempt,omitempty" toml:"subcommand_exempt,omitempty"`
	AllowHyphenValues bool       `yaml:"allow_hyphen_values,omitempty" toml:"allow_hyphen_values,omitempty"`
	ValueDelimiter    string     `yaml:"value_delimiter,omitempty" toml:"value_delimiter,omitempty"`
	Description       string     `yaml:"description,omitempty" toml:"description,omitempty"`
}

// RangeSpec is an inclusive count range; a missing max means unbounded
type RangeSpec struct {
	Min int  `yaml:"min" toml:"min"`
	Max *int `yaml:"max,omitempty" toml:"max,omitempty"`
}

// Range converts the document form to a types.Range
func (r RangeSpec) Range() types.Range {
	if r.Max == nil {
		return types.AtLeast(r.Min)
	}

	return types.Between(r.Min, *r.Max)
}

// GroupSpec is the document form of an argmatch.Group
type GroupSpec struct {
	ID            string   `yaml:"id" toml:"id"`
	Policy        string   `yaml:"policy,omitempty" toml:"policy,omitempty"`
	Members       []string `yaml:"members" toml:"members"`
	CountDefaults bool     `yaml:"count_defaults,omitempty" toml:"count_defaults,omitempty"`
}

var converters = map[string]argmatch.NameConversionFunc{
	"kebab":           argmatch.ToKebabCase,
	"snake":           argmatch.ToSnakeCase,
	"screaming-snake": argmatch.ToScreamingSnake,
	"lower-camel":     argmatch.ToLowerCamel,
	"lower":           argmatch.ToLowerCase,
}

// LoadFile reads path and decodes it in the format its extension names
func LoadFile(path string) (*argmatch.Command, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cmd, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cmd, nil
}

// Decode decodes data in format and builds the command tree it describes
func Decode(data []byte, format Format) (*argmatch.Command, error) {
	spec, err := DecodeSpec(data, format)
	if err != nil {
		return nil, err
	}

	return spec.Build()
}

// DecodeSpec decodes data without building it. Unknown keys are rejected.
func DecodeSpec(data []byte, format Format) (*CommandSpec, error) {
	var spec CommandSpec
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&spec); err != nil {
			return nil, err
		}
	case TOML:
		md, err := toml.Decode(string(data), &spec)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errs.ErrUnknownSchemaKeys.WithArgs(strings.Join(keys, ", "))
		}
	default:
		return nil, errs.ErrUnknownSchemaFormat.WithArgs(fmt.Sprintf("%d", int(format)))
	}

	return &spec, nil
}

// Build converts the document form into an argmatch.Command tree
func (s *CommandSpec) Build() (*argmatch.Command, error) {
	return s.build(nil)
}

func (s *CommandSpec) build(parent []string) (*argmatch.Command, error) {
	path := append(append([]string(nil), parent...), s.Name)
	where := strings.Join(path, " ")

	configs := []argmatch.ConfigureCommandFunc{
		argmatch.WithName(s.Name),
		argmatch.WithCommandAliases(s.Aliases...),
		argmatch.WithCommandDescription(s.Description),
		argmatch.SetPassthrough(s.Settings.Passthrough),
		argmatch.SetAllowNegativeNumbers(s.Settings.AllowNegativeNumbers),
		argmatch.SetStopAtFlag(s.Settings.StopAtFlag),
		argmatch.SetInferLongArgs(s.Settings.InferLongArgs),
		argmatch.SetInferSubcommands(s.Settings.InferSubcommands),
		argmatch.SetSubcommandRequired(s.Settings.SubcommandRequired),
		argmatch.SetSubcommandsFirst(s.Settings.SubcommandsFirst),
		argmatch.SetUnknownAsPositional(s.Settings.UnknownAsPositional),
		argmatch.SetAllowInvalidUTF8(s.Settings.AllowInvalidUTF8),
	}
	if s.Settings.NameConverter != "" {
		conv, ok := converters[s.Settings.NameConverter]
		if !ok {
			return nil, fmt.Errorf("%s: %w", where, errs.ErrInvalidNameConverter.WithArgs(s.Settings.NameConverter))
		}
		configs = append(configs, argmatch.WithNameConverter(conv))
	}
	if s.Settings.EnvPrefix != "" {
		configs = append(configs, argmatch.WithEnvPrefix(s.Settings.EnvPrefix))
	}
	cmd := argmatch.NewCommand(configs...)

	for _, a := range s.Args {
		arg, err := a.build()
		if err != nil {
			return nil, fmt.Errorf("%s: argument %q: %w", where, a.ID, err)
		}
		if err := cmd.AddArg(a.ID, arg); err != nil {
			return nil, fmt.Errorf("%s: %w", where, err)
		}
	}

	for _, g := range s.Groups {
		policy, ok := types.ParseGroupPolicy(g.Policy)
		if !ok {
			return nil, fmt.Errorf("%s: %w", where, errs.ErrInvalidPolicy.WithArgs(g.ID, g.Policy))
		}
		group := argmatch.NewGroup(g.ID, policy, g.Members...)
		group.CountDefaults = g.CountDefaults
		if err := cmd.AddGroup(group); err != nil {
			return nil, fmt.Errorf("%s: %w", where, err)
		}
	}

	for i := range s.Subcommands {
		sub, err := s.Subcommands[i].build(path)
		if err != nil {
			return nil, err
		}
		cmd.AddSubcommand(sub)
	}

	return cmd, nil
}

func (a *ArgSpec) build() (*argmatch.Argument, error) {
	kind, ok := types.ParseArgKind(a.Kind)
	if !ok {
		return nil, errs.ErrInvalidKind.WithArgs(a.Kind)
	}

	configs := []argmatch.ConfigureArgumentFunc{
		argmatch.WithKind(kind),
		argmatch.SetRequired(a.Required),
		argmatch.SetGlobal(a.Global),
		argmatch.SetSubcommandExempt(a.SubcommandExempt),
		argmatch.SetAllowHyphenValues(a.AllowHyphenValues),
	}
	if a.Short != "" {
		r, size := utf8.DecodeRuneInString(a.Short)
		if size != len(a.Short) || r == utf8.RuneError {
			return nil, errs.ErrInvalidShort.WithArgs(a.Short)
		}
		configs = append(configs, argmatch.WithShort(r))
	}
	if a.Long != "" {
		configs = append(configs, argmatch.WithLong(a.Long))
	}
	if len(a.Aliases) > 0 {
		configs = append(configs, argmatch.WithAliases(a.Aliases...))
	}
	if a.Index != nil {
		configs = append(configs, argmatch.WithIndex(*a.Index))
	}
	if a.Values != nil {
		configs = append(configs, argmatch.WithNumValues(a.Values.Range()))
	}
	if a.Occurrences != nil {
		configs = append(configs, argmatch.WithOccurrences(a.Occurrences.Range()))
	}
	if len(a.Default) > 0 {
		configs = append(configs, argmatch.WithDefault(a.Default...))
	}
	if len(a.Conflicts) > 0 {
		configs = append(configs, argmatch.WithConflicts(a.Conflicts...))
	}
	if len(a.Requires) > 0 {
		configs = append(configs, argmatch.WithRequires(a.Requires...))
	}
	if a.Env != "" {
		configs = append(configs, argmatch.WithEnv(a.Env))
	}
	if a.EnvFromID {
		configs = append(configs, argmatch.WithEnvFromID())
	}
	if a.ValueDelimiter != "" {
		r, size := utf8.DecodeRuneInString(a.ValueDelimiter)
		if size != len(a.ValueDelimiter) || r == utf8.RuneError {
			return nil, errs.ErrInvalidDelimiter.WithArgs(a.ValueDelimiter)
		}
		configs = append(configs, argmatch.WithValueDelimiter(r))
	}
	if a.Description != "" {
		configs = append(configs, argmatch.WithDescription(a.Description))
	}

	arg := &argmatch.Argument{}
	if err := arg.Set(configs...); err != nil {
		return nil, err
	}

	return arg, nil
}
