package argmatch

import (
	"time"

	"github.com/napalu/argmatch/errs"
	"github.com/napalu/argmatch/internal/util"
	"github.com/napalu/argmatch/types"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type matchedArg struct {
	values      []string
	occurrences int
	source      types.ValueSource
}

// ArgMatches is the read-only result of a successful Parse for one command on the chosen
// path. The matches of the chosen subcommand hang off it; global arguments are reported by
// the command declaring them. Every accessor returns copies, so an ArgMatches can be shared
// freely between goroutines.
type ArgMatches struct {
	name     string
	path     []string
	args     *orderedmap.OrderedMap[string, matchedArg]
	trailing []string
	sub      *ArgMatches
}

func newArgMatches(state *matchState) *ArgMatches {
	var next *ArgMatches
	for i := len(state.levels) - 1; i >= 0; i-- {
		lv := state.levels[i]
		am := &ArgMatches{
			name:     lv.node.name,
			path:     lv.node.path,
			args:     orderedmap.New[string, matchedArg](),
			trailing: util.Clone(lv.trailing),
			sub:      next,
		}
		for pair := lv.bindings.Oldest(); pair != nil; pair = pair.Next() {
			b := pair.Value
			if b.source == types.SourceNone {
				continue
			}
			am.args.Set(pair.Key, matchedArg{
				values:      util.Clone(b.values),
				occurrences: b.occurrences,
				source:      b.source,
			})
		}
		next = am
	}

	return next
}

// Name returns the name of the command these matches belong to
func (m *ArgMatches) Name() string {
	return m.name
}

// CommandPath returns the path of command names from the root to this command
func (m *ArgMatches) CommandPath() []string {
	return append([]string(nil), m.path...)
}

// SubcommandPath returns the names of the subcommands chosen below this command, in order
func (m *ArgMatches) SubcommandPath() []string {
	path := []string{}
	for s := m.sub; s != nil; s = s.sub {
		path = append(path, s.name)
	}

	return path
}

// Subcommand returns the name and matches of the chosen subcommand
func (m *ArgMatches) Subcommand() (string, *ArgMatches, bool) {
	if m.sub == nil {
		return "", nil, false
	}

	return m.sub.name, m.sub, true
}

// Leaf returns the matches of the deepest chosen command
func (m *ArgMatches) Leaf() *ArgMatches {
	leaf := m
	for leaf.sub != nil {
		leaf = leaf.sub
	}

	return leaf
}

// IDs returns the ids of bound arguments: command-line arguments in the order they were
// first seen, then environment and default bindings
func (m *ArgMatches) IDs() []string {
	ids := make([]string, 0, m.args.Len())
	for pair := m.args.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}

	return ids
}

// Get returns the first value bound to id
func (m *ArgMatches) Get(id string) (string, bool) {
	a, found := m.args.Get(id)
	if !found || len(a.values) == 0 {
		return "", false
	}

	return a.values[0], true
}

// GetAll returns every value bound to id, across occurrences
func (m *ArgMatches) GetAll(id string) []string {
	a, _ := m.args.Get(id)

	return util.Clone(a.values)
}

// Occurrences returns how many times id was given. Defaulted arguments report 0 and
// environment values report 1.
func (m *ArgMatches) Occurrences(id string) int {
	a, _ := m.args.Get(id)

	return a.occurrences
}

// Source returns where the values of id came from
func (m *ArgMatches) Source(id string) types.ValueSource {
	a, _ := m.args.Get(id)

	return a.source
}

// Contains reports whether id is bound, explicitly or from a default
func (m *ArgMatches) Contains(id string) bool {
	_, found := m.args.Get(id)

	return found
}

// IsPresent reports whether id was given on the command line or through the environment
func (m *ArgMatches) IsPresent(id string) bool {
	return m.Source(id).Explicit()
}

// IsDefaulted reports whether the values of id are its declared default
func (m *ArgMatches) IsDefaulted(id string) bool {
	return m.Source(id) == types.SourceDefault
}

// Trailing returns the tokens collected by a passthrough command
func (m *ArgMatches) Trailing() []string {
	return util.Clone(m.trailing)
}

// GetBool interprets the value of id as a boolean. A flag is true when it occurred;
// an absent argument is false.
func (m *ArgMatches) GetBool(id string) (bool, error) {
	a, found := m.args.Get(id)
	if !found {
		return false, nil
	}
	if len(a.values) == 0 {
		return a.occurrences > 0, nil
	}
	b, err := util.ParseBool(a.values[0])
	if err != nil {
		return false, errs.ErrConversion.WithArgs(a.values[0], id, "bool").Wrap(err)
	}

	return b, nil
}

// GetInt interprets the value of id as an integer. A flag without value reports its occurrence count.
func (m *ArgMatches) GetInt(id string) (int, error) {
	a, found := m.args.Get(id)
	if !found {
		return 0, errs.ErrNoValue.WithArgs(id)
	}
	if len(a.values) == 0 {
		return a.occurrences, nil
	}
	i, err := util.ParseInt(a.values[0])
	if err != nil {
		return 0, errs.ErrConversion.WithArgs(a.values[0], id, "int").Wrap(err)
	}

	return int(i), nil
}

// GetFloat interprets the value of id as a float64
func (m *ArgMatches) GetFloat(id string) (float64, error) {
	value, err := m.value(id)
	if err != nil {
		return 0, err
	}
	f, err := util.ParseFloat(value)
	if err != nil {
		return 0, errs.ErrConversion.WithArgs(value, id, "float").Wrap(err)
	}

	return f, nil
}

// GetDuration interprets the value of id as a duration; a bare integer is a number of seconds
func (m *ArgMatches) GetDuration(id string) (time.Duration, error) {
	value, err := m.value(id)
	if err != nil {
		return 0, err
	}
	d, err := util.ParseDuration(value)
	if err != nil {
		return 0, errs.ErrConversion.WithArgs(value, id, "duration").Wrap(err)
	}

	return d, nil
}

// GetTime interprets the value of id as a date/time in any common layout, in loc
// (time.Local when nil)
func (m *ArgMatches) GetTime(id string, loc *time.Location) (time.Time, error) {
	value, err := m.value(id)
	if err != nil {
		return time.Time{}, err
	}
	t, err := util.ParseTime(value, loc)
	if err != nil {
		return time.Time{}, errs.ErrConversion.WithArgs(value, id, "time").Wrap(err)
	}

	return t, nil
}

func (m *ArgMatches) value(id string) (string, error) {
	value, found := m.Get(id)
	if !found {
		return "", errs.ErrNoValue.WithArgs(id)
	}

	return value, nil
}
