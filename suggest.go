package argmatch

import "github.com/napalu/argmatch/internal/util"

// Suggester proposes corrections for an unknown flag or subcommand. Suggestions are
// advisory: they are attached to the error and never change the outcome of a match.
type Suggester interface {
	Suggest(input string, candidates []string) []string
}

// SuggesterFunc adapts a function to the Suggester interface
type SuggesterFunc func(input string, candidates []string) []string

// Suggest calls f
func (f SuggesterFunc) Suggest(input string, candidates []string) []string {
	return f(input, candidates)
}

// LevenshteinSuggester proposes candidates within MaxDistance edits of the input
type LevenshteinSuggester struct {
	MaxDistance int
}

// DefaultSuggester is used unless WithSuggester overrides it
var DefaultSuggester Suggester = LevenshteinSuggester{MaxDistance: 2}

// Suggest returns the closest candidates, nearest first
func (s LevenshteinSuggester) Suggest(input string, candidates []string) []string {
	return util.ClosestMatches(input, candidates, s.MaxDistance)
}
