package errs

import (
	"github.com/napalu/argmatch/i18n"
	"golang.org/x/text/language"
)

// Parse-time error kinds. Every *MatchError unwraps to exactly one of these.
var (
	ErrUnknownArgument           = i18n.NewError(ErrUnknownArgumentKey)
	ErrUnknownSubcommand         = i18n.NewError(ErrUnknownSubcommandKey)
	ErrUnexpectedPositional      = i18n.NewError(ErrUnexpectedPositionalKey)
	ErrTooFewValues              = i18n.NewError(ErrTooFewValuesKey)
	ErrTooManyValues             = i18n.NewError(ErrTooManyValuesKey)
	ErrTooManyOccurrences        = i18n.NewError(ErrTooManyOccurrencesKey)
	ErrMissingRequiredArgument   = i18n.NewError(ErrMissingRequiredArgumentKey)
	ErrConflictingArguments      = i18n.NewError(ErrConflictingArgumentsKey)
	ErrGroupCardinalityViolation = i18n.NewError(ErrGroupExactlyOneKey)
	ErrOccurrenceCountViolation  = i18n.NewError(ErrOccurrenceCountViolationKey)
	ErrInvalidUnicode            = i18n.NewError(ErrInvalidUnicodeKey)
	ErrMissingSubcommand         = i18n.NewError(ErrMissingSubcommandKey)
	ErrRecursionDepthExceeded    = i18n.NewError(ErrRecursionDepthExceededKey)
	ErrValidationFailed          = i18n.NewError(ErrValidationFailedKey)
)

// Definition errors, reported when a command tree is frozen
var (
	ErrNilCommand          = i18n.NewError(ErrNilCommandKey)
	ErrEmptyName           = i18n.NewError(ErrEmptyNameKey)
	ErrEmptyArgID          = i18n.NewError(ErrEmptyArgIDKey)
	ErrDuplicateArg        = i18n.NewError(ErrDuplicateArgKey)
	ErrDuplicateShort      = i18n.NewError(ErrDuplicateShortKey)
	ErrDuplicateLong       = i18n.NewError(ErrDuplicateLongKey)
	ErrDuplicateSubcommand = i18n.NewError(ErrDuplicateSubcommandKey)
	ErrDuplicateGroup      = i18n.NewError(ErrDuplicateGroupKey)
	ErrDuplicateIndex      = i18n.NewError(ErrDuplicateIndexKey)
	ErrUnboundedNotLast    = i18n.NewError(ErrUnboundedNotLastKey)
	ErrInvalidArity        = i18n.NewError(ErrInvalidArityKey)
	ErrInvalidOccurrences  = i18n.NewError(ErrInvalidOccurrencesKey)
	ErrUnknownReference    = i18n.NewError(ErrUnknownReferenceKey)
	ErrFlagWithDefault     = i18n.NewError(ErrFlagWithDefaultKey)
	ErrPositionalWithName  = i18n.NewError(ErrPositionalWithNameKey)
	ErrUnreachableArg      = i18n.NewError(ErrUnreachableArgKey)
	ErrMaxDepthExceeded    = i18n.NewError(ErrMaxDepthExceededKey)
	ErrInvalidOption       = i18n.NewError(ErrInvalidOptionKey)
)

// Schema errors, reported while decoding a declarative command tree
var (
	ErrUnknownSchemaFormat  = i18n.NewError(ErrUnknownSchemaFormatKey)
	ErrUnknownSchemaKeys    = i18n.NewError(ErrUnknownSchemaKeysKey)
	ErrInvalidKind          = i18n.NewError(ErrInvalidKindKey)
	ErrInvalidPolicy        = i18n.NewError(ErrInvalidPolicyKey)
	ErrInvalidShort         = i18n.NewError(ErrInvalidShortKey)
	ErrInvalidDelimiter     = i18n.NewError(ErrInvalidDelimiterKey)
	ErrInvalidNameConverter = i18n.NewError(ErrInvalidNameConverterKey)
)

// Result model errors
var (
	ErrConversion = i18n.NewError(ErrConversionKey)
	ErrNoValue    = i18n.NewError(ErrNoValueKey)
)

// SetLanguage switches the language every error in this package renders in.
// The closest supported language is used; unsupported languages fall back to English.
func SetLanguage(lang language.Tag) language.Tag {
	bundle := i18n.Default()
	matched := bundle.Match(lang)
	i18n.SetDefaultMessageProvider(i18n.NewBundleMessageProvider(bundle, matched))

	return matched
}
