package argmatch

import (
	"github.com/napalu/argmatch/errs"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Command defines a command and its subcommands. A Command is a builder value; NewParser
// freezes a Command tree into an immutable Definition.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Subcommands []*Command

	// Passthrough collects positional tokens which nothing accepts as trailing values instead of failing
	Passthrough bool
	// AllowNegativeNumbers treats tokens such as -5 or -1.5 as positionals (or values)
	AllowNegativeNumbers bool
	// StopAtFlag closes a pending argument at the first flag-shaped token, even an unknown one
	StopAtFlag bool
	// InferLongArgs resolves unique prefixes of long names
	InferLongArgs bool
	// InferSubcommands resolves unique prefixes of subcommand names
	InferSubcommands bool
	// SubcommandRequired fails the match when the command is the last one matched
	SubcommandRequired bool
	// SubcommandsFirst descends into a subcommand named by a positional token even when
	// positional arguments are not yet saturated
	SubcommandsFirst bool
	// UnknownAsPositional treats unknown flag-shaped tokens as positional text
	UnknownAsPositional bool
	// AllowInvalidUTF8 disables the UTF-8 check on raw tokens
	AllowInvalidUTF8 bool
	// NameConverter derives long names from argument ids; inherited by subcommands when nil
	NameConverter NameConversionFunc
	// EnvPrefix prefixes environment variable names derived with WithEnvFromID; inherited when empty
	EnvPrefix string

	args   *orderedmap.OrderedMap[string, *Argument]
	groups *orderedmap.OrderedMap[string, *Group]
	err    error
}

// NewCommand creates and returns a new Command object. This function takes variadic `ConfigureCommandFunc` functions to customize the created command.
func NewCommand(configs ...ConfigureCommandFunc) *Command {
	cmd := &Command{}
	cmd.Set(configs...)

	return cmd
}

// Set is a helper config function that allows setting multiple configuration functions on a command.
func (c *Command) Set(configs ...ConfigureCommandFunc) {
	for _, config := range configs {
		config(c)
	}
}

// AddArg adds an argument identified by id. The id is the key used to query ArgMatches and
// to reference the argument from conflicts, requirements and groups.
func (c *Command) AddArg(id string, argument *Argument) error {
	if id == "" {
		return errs.ErrEmptyArgID.WithArgs(c.Name)
	}
	if argument == nil {
		argument = NewArg()
	}
	if argument.err != nil {
		return argument.err
	}
	c.ensureInit()
	if _, found := c.args.Get(id); found {
		return errs.ErrDuplicateArg.WithArgs(id, c.Name)
	}
	c.args.Set(id, argument)

	return nil
}

// AddGroup adds a group constraint over arguments of the command
func (c *Command) AddGroup(group *Group) error {
	if group == nil || group.ID == "" {
		return errs.ErrInvalidOption.WithArgs("group without id")
	}
	c.ensureInit()
	if _, found := c.groups.Get(group.ID); found {
		return errs.ErrDuplicateGroup.WithArgs(group.ID, c.Name)
	}
	c.groups.Set(group.ID, group)

	return nil
}

// AddSubcommand appends a subcommand
func (c *Command) AddSubcommand(sub *Command) {
	c.Subcommands = append(c.Subcommands, sub)
}

// Arg returns the argument registered under id
func (c *Command) Arg(id string) (*Argument, bool) {
	if c.args == nil {
		return nil, false
	}

	return c.args.Get(id)
}

// Group returns the group registered under id
func (c *Command) Group(id string) (*Group, bool) {
	if c.groups == nil {
		return nil, false
	}

	return c.groups.Get(id)
}

// ArgIDs returns the argument ids in declaration order
func (c *Command) ArgIDs() []string {
	if c.args == nil {
		return nil
	}
	ids := make([]string, 0, c.args.Len())
	for pair := c.args.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}

	return ids
}

func (c *Command) ensureInit() {
	if c.args == nil {
		c.args = orderedmap.New[string, *Argument]()
	}
	if c.groups == nil {
		c.groups = orderedmap.New[string, *Group]()
	}
}

// recordErr keeps the first error raised by a ConfigureCommandFunc; NewParser reports it
func (c *Command) recordErr(err error) {
	if c.err == nil && err != nil {
		c.err = err
	}
}
