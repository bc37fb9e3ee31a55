package argmatch

// WithName sets the name for the command. The name is used to invoke the command from the command line.
func WithName(name string) ConfigureCommandFunc {
	return func(command *Command) {
		command.Name = name
	}
}

// WithCommandAliases adds alternative names the command can be invoked with
func WithCommandAliases(aliases ...string) ConfigureCommandFunc {
	return func(command *Command) {
		command.Aliases = append(command.Aliases, aliases...)
	}
}

// WithCommandDescription sets the description for the command. This description helps users to understand what the command does.
func WithCommandDescription(description string) ConfigureCommandFunc {
	return func(command *Command) {
		command.Description = description
	}
}

// WithArg is a wrapper for AddArg. Errors are reported by NewParser.
func WithArg(id string, argument *Argument) ConfigureCommandFunc {
	return func(command *Command) {
		command.recordErr(command.AddArg(id, argument))
	}
}

// WithGroup is a wrapper for AddGroup. Errors are reported by NewParser.
func WithGroup(group *Group) ConfigureCommandFunc {
	return func(command *Command) {
		command.recordErr(command.AddGroup(group))
	}
}

// WithSubcommands function takes a list of subcommands and associates them with a command.
func WithSubcommands(subcommands ...*Command) ConfigureCommandFunc {
	return func(command *Command) {
		command.Subcommands = append(command.Subcommands, subcommands...)
	}
}

// SetPassthrough collects unexpected positional tokens as trailing values instead of failing
func SetPassthrough(passthrough bool) ConfigureCommandFunc {
	return func(command *Command) {
		command.Passthrough = passthrough
	}
}

// SetAllowNegativeNumbers treats tokens such as -5 as positionals rather than short flags
func SetAllowNegativeNumbers(allow bool) ConfigureCommandFunc {
	return func(command *Command) {
		command.AllowNegativeNumbers = allow
	}
}

// SetStopAtFlag closes a pending argument at the first flag-shaped token. By default an
// unknown flag-shaped token is consumed as a value.
func SetStopAtFlag(stop bool) ConfigureCommandFunc {
	return func(command *Command) {
		command.StopAtFlag = stop
	}
}

// SetInferLongArgs resolves unique prefixes of long names
func SetInferLongArgs(infer bool) ConfigureCommandFunc {
	return func(command *Command) {
		command.InferLongArgs = infer
	}
}

// SetInferSubcommands resolves unique prefixes of subcommand names
func SetInferSubcommands(infer bool) ConfigureCommandFunc {
	return func(command *Command) {
		command.InferSubcommands = infer
	}
}

// SetSubcommandRequired function is used to require one of the subcommands.
func SetSubcommandRequired(required bool) ConfigureCommandFunc {
	return func(command *Command) {
		command.SubcommandRequired = required
	}
}

// SetSubcommandsFirst tries subcommand names before positional arguments
func SetSubcommandsFirst(first bool) ConfigureCommandFunc {
	return func(command *Command) {
		command.SubcommandsFirst = first
	}
}

// SetUnknownAsPositional treats unknown flags as positional text
func SetUnknownAsPositional(unknown bool) ConfigureCommandFunc {
	return func(command *Command) {
		command.UnknownAsPositional = unknown
	}
}

// SetAllowInvalidUTF8 accepts raw tokens which are not valid UTF-8
func SetAllowInvalidUTF8(allow bool) ConfigureCommandFunc {
	return func(command *Command) {
		command.AllowInvalidUTF8 = allow
	}
}

// WithNameConverter sets the function deriving long names from argument ids
func WithNameConverter(converter NameConversionFunc) ConfigureCommandFunc {
	return func(command *Command) {
		command.NameConverter = converter
	}
}

// WithEnvPrefix sets the prefix of environment variable names derived with WithEnvFromID
func WithEnvPrefix(prefix string) ConfigureCommandFunc {
	return func(command *Command) {
		command.EnvPrefix = prefix
	}
}
