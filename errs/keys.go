// Package errs contains the error taxonomy produced while building a definition,
// tokenizing, matching and validating.
// This file contains constants for all translation keys.
package errs

const (
	prefixKey = "argmatch"
)

const (
	ErrorPrefixKey = prefixKey + ".error"
)

// Parse-time keys (tokenizer, matcher, validator)
const (
	ErrUnknownArgumentKey          = ErrorPrefixKey + ".unknown_argument"
	ErrAmbiguousArgumentKey        = ErrorPrefixKey + ".ambiguous_argument"
	ErrUnknownSubcommandKey        = ErrorPrefixKey + ".unknown_subcommand"
	ErrAmbiguousSubcommandKey      = ErrorPrefixKey + ".ambiguous_subcommand"
	ErrUnexpectedPositionalKey     = ErrorPrefixKey + ".unexpected_positional"
	ErrTooFewValuesKey             = ErrorPrefixKey + ".too_few_values"
	ErrTooManyValuesKey            = ErrorPrefixKey + ".too_many_values"
	ErrTooManyOccurrencesKey       = ErrorPrefixKey + ".too_many_occurrences"
	ErrMissingRequiredArgumentKey  = ErrorPrefixKey + ".missing_required_argument"
	ErrMissingRequiredByKey        = ErrorPrefixKey + ".missing_required_by"
	ErrConflictingArgumentsKey     = ErrorPrefixKey + ".conflicting_arguments"
	ErrGroupExactlyOneKey          = ErrorPrefixKey + ".group_exactly_one"
	ErrGroupAtLeastOneKey          = ErrorPrefixKey + ".group_at_least_one"
	ErrOccurrenceCountViolationKey = ErrorPrefixKey + ".occurrence_count_violation"
	ErrInvalidUnicodeKey           = ErrorPrefixKey + ".invalid_unicode"
	ErrMissingSubcommandKey        = ErrorPrefixKey + ".missing_subcommand"
	ErrRecursionDepthExceededKey   = ErrorPrefixKey + ".recursion_depth_exceeded"
	ErrValidationFailedKey         = ErrorPrefixKey + ".validation_failed"
)

// Definition (build-time) keys
const (
	ErrNilCommandKey          = ErrorPrefixKey + ".nil_command"
	ErrEmptyNameKey           = ErrorPrefixKey + ".empty_name"
	ErrEmptyArgIDKey          = ErrorPrefixKey + ".empty_arg_id"
	ErrDuplicateArgKey        = ErrorPrefixKey + ".duplicate_arg"
	ErrDuplicateShortKey      = ErrorPrefixKey + ".duplicate_short"
	ErrDuplicateLongKey       = ErrorPrefixKey + ".duplicate_long"
	ErrDuplicateSubcommandKey = ErrorPrefixKey + ".duplicate_subcommand"
	ErrDuplicateGroupKey      = ErrorPrefixKey + ".duplicate_group"
	ErrDuplicateIndexKey      = ErrorPrefixKey + ".duplicate_index"
	ErrUnboundedNotLastKey    = ErrorPrefixKey + ".unbounded_not_last"
	ErrInvalidArityKey        = ErrorPrefixKey + ".invalid_arity"
	ErrInvalidOccurrencesKey  = ErrorPrefixKey + ".invalid_occurrences"
	ErrUnknownReferenceKey    = ErrorPrefixKey + ".unknown_reference"
	ErrFlagWithDefaultKey     = ErrorPrefixKey + ".flag_with_default"
	ErrPositionalWithNameKey  = ErrorPrefixKey + ".positional_with_name"
	ErrUnreachableArgKey      = ErrorPrefixKey + ".unreachable_arg"
	ErrMaxDepthExceededKey    = ErrorPrefixKey + ".max_depth_exceeded"
	ErrInvalidOptionKey       = ErrorPrefixKey + ".invalid_option"
)

// Schema keys
const (
	ErrUnknownSchemaFormatKey  = ErrorPrefixKey + ".schema_unknown_format"
	ErrUnknownSchemaKeysKey    = ErrorPrefixKey + ".schema_unknown_keys"
	ErrInvalidKindKey          = ErrorPrefixKey + ".schema_invalid_kind"
	ErrInvalidPolicyKey        = ErrorPrefixKey + ".schema_invalid_policy"
	ErrInvalidShortKey         = ErrorPrefixKey + ".schema_invalid_short"
	ErrInvalidDelimiterKey     = ErrorPrefixKey + ".schema_invalid_delimiter"
	ErrInvalidNameConverterKey = ErrorPrefixKey + ".schema_invalid_name_converter"
)

// Result model keys
const (
	ErrConversionKey = ErrorPrefixKey + ".conversion"
	ErrNoValueKey    = ErrorPrefixKey + ".no_value"
)
