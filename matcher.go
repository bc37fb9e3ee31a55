package argmatch

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/napalu/argmatch/errs"
	"github.com/napalu/argmatch/internal/util"
	"github.com/napalu/argmatch/parse"
	"github.com/napalu/argmatch/types"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// binding accumulates the values and occurrences of one argument during a match
type binding struct {
	values      []string
	occurrences int
	// current counts the values of the latest positional occurrence
	current int
	source  types.ValueSource
}

// level is the match state of one command on the chosen path
type level struct {
	node     *node
	bindings *orderedmap.OrderedMap[string, *binding]
	trailing []string
}

func newLevel(n *node) *level {
	return &level{node: n, bindings: orderedmap.New[string, *binding]()}
}

func (l *level) get(id string) (*binding, bool) {
	return l.bindings.Get(id)
}

func (l *level) binding(id string) *binding {
	b, found := l.bindings.Get(id)
	if !found {
		b = &binding{}
		l.bindings.Set(id, b)
	}

	return b
}

// matchState is owned by a single Parse call
type matchState struct {
	levels []*level
}

func (s *matchState) leaf() *level {
	return s.levels[len(s.levels)-1]
}

// pending is an argument opened by a flag which still accepts values
type pending struct {
	arg  *argDef
	bind *binding
	got  int
}

// matcher consumes classified tokens against the command in scope. It implements
// parse.Context so that the tokenizer classifies against the current command.
type matcher struct {
	parser  *Parser
	def     *Definition
	tk      *parse.Tokenizer
	state   *matchState
	cur     *level
	pending *pending
	log     *slog.Logger
}

func newMatcher(p *Parser, args []string) *matcher {
	root := newLevel(p.def.nodes[0])

	return &matcher{
		parser: p,
		def:    p.def,
		tk:     parse.NewTokenizer(args),
		state:  &matchState{levels: []*level{root}},
		cur:    root,
		log:    p.logger,
	}
}

// ShortTakesValue implements parse.Context
func (m *matcher) ShortTakesValue(r rune) bool {
	a := m.def.visibleShort(m.cur.node, r)

	return a != nil && a.takesValue()
}

// AllowNegativeNumbers implements parse.Context
func (m *matcher) AllowNegativeNumbers() bool {
	return m.cur.node.settings.AllowNegativeNumbers
}

// AllowInvalidUTF8 implements parse.Context
func (m *matcher) AllowInvalidUTF8() bool {
	return m.cur.node.settings.AllowInvalidUTF8
}

// Path implements parse.Context
func (m *matcher) Path() []string {
	return m.cur.node.path
}

func (m *matcher) run() (*matchState, error) {
	for {
		if err := m.fillPending(); err != nil {
			return nil, err
		}
		tok, ok, err := m.tk.Next(m)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		m.log.Debug("token", "kind", tok.Kind, "raw", tok.Raw, "index", tok.Index, "command", strings.Join(m.Path(), " "))

		switch tok.Kind {
		case parse.EndOfOptions:
			err = m.closePending()
		case parse.LongFlag:
			err = m.matchLong(tok)
		case parse.ShortCluster:
			err = m.matchShort(tok)
		default:
			err = m.matchPositional(tok)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := m.closePending(); err != nil {
		return nil, err
	}
	if n := m.cur.node; n.settings.SubcommandRequired && len(n.children) > 0 {
		return nil, errs.MissingSubcommand(n.path)
	}

	return m.state, nil
}

// fillPending feeds the open argument from the following tokens until it is saturated or
// the next token is not a value for it. A flag-shaped token is a value when the argument
// allows hyphen values, or when it resolves to no known flag and the command does not stop
// at flags.
func (m *matcher) fillPending() error {
	for m.pending != nil {
		p := m.pending
		if p.arg.arity.Reached(p.got) {
			m.pending = nil
			return nil
		}
		tok, ok, err := m.tk.Peek(m)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if !m.acceptsValue(p.arg, tok) {
			return m.closePending()
		}
		val, _, err := m.tk.NextValue(m)
		if err != nil {
			return err
		}
		if err := m.bindValue(p, val.Value); err != nil {
			return err
		}
	}

	return nil
}

func (m *matcher) acceptsValue(a *argDef, tok parse.Token) bool {
	switch tok.Kind {
	case parse.Positional, parse.Value:
		return true
	case parse.EndOfOptions:
		return false
	}
	if a.decl.AllowHyphenValues {
		return true
	}
	if m.resolvesFlag(tok) {
		return false
	}

	return !m.cur.node.settings.StopAtFlag
}

func (m *matcher) resolvesFlag(tok parse.Token) bool {
	n := m.cur.node
	if tok.Kind == parse.ShortCluster {
		return len(tok.Shorts) > 0 && m.def.visibleShort(n, tok.Shorts[0]) != nil
	}
	if m.def.visibleLong(n, tok.Name) != nil {
		return true
	}
	if n.settings.InferLongArgs {
		return len(m.longCandidates(tok.Name)) > 0
	}

	return false
}

func (m *matcher) bindValue(p *pending, raw string) error {
	parts := util.SplitValues(raw, p.arg.decl.ValueDelimiter)
	p.got += len(parts)
	if !p.arg.arity.IsUnbounded() && p.got > p.arg.arity.Max {
		return errs.TooManyValues(p.arg.id, p.arg.arity, p.got, m.Path())
	}
	p.bind.values = append(p.bind.values, parts...)
	m.log.Debug("value bound", "arg", p.arg.id, "value", raw)

	return nil
}

func (m *matcher) closePending() error {
	p := m.pending
	if p == nil {
		return nil
	}
	m.pending = nil
	if p.got < p.arg.arity.Min {
		return errs.TooFewValues(p.arg.id, p.arg.arity, p.got, m.Path())
	}

	return nil
}

// levelOf returns the level of the command declaring a, which differs from the current
// level for global arguments
func (m *matcher) levelOf(a *argDef) *level {
	for i := len(m.state.levels) - 1; i >= 0; i-- {
		if m.state.levels[i].node.id == a.owner {
			return m.state.levels[i]
		}
	}

	return m.cur
}

// open records an occurrence of a and binds its inline value, leaving it pending when it
// accepts more values
func (m *matcher) open(a *argDef, hasInline bool, inline string) error {
	b := m.levelOf(a).binding(a.id)
	b.occurrences++
	b.source = types.SourceCommandLine
	if !a.occurrences.IsUnbounded() && b.occurrences > a.occurrences.Max {
		return errs.TooManyOccurrences(a.id, a.occurrences, b.occurrences, m.Path())
	}
	m.log.Debug("argument opened", "arg", a.id, "occurrence", b.occurrences)

	if !a.takesValue() {
		if hasInline {
			return errs.TooManyValues(a.id, a.arity, 1, m.Path())
		}
		return nil
	}

	p := &pending{arg: a, bind: b}
	if hasInline {
		if err := m.bindValue(p, inline); err != nil {
			return err
		}
	}
	if !a.arity.Reached(p.got) {
		m.pending = p
	}

	return nil
}

func (m *matcher) matchLong(tok parse.Token) error {
	a, err := m.resolveLong(tok)
	if err != nil {
		return err
	}
	if a == nil {
		if m.cur.node.settings.UnknownAsPositional {
			return m.matchPositional(tok)
		}
		return m.unknownArgument(tok.FlagText(), tok.Index)
	}

	return m.open(a, tok.HasValue, tok.Value)
}

func (m *matcher) resolveLong(tok parse.Token) (*argDef, error) {
	n := m.cur.node
	if a := m.def.visibleLong(n, tok.Name); a != nil {
		return a, nil
	}
	if !n.settings.InferLongArgs {
		return nil, nil
	}

	names := m.longCandidates(tok.Name)
	distinct := map[string]*argDef{}
	for _, name := range names {
		a := m.def.visibleLong(n, name)
		distinct[a.id] = a
	}
	switch len(distinct) {
	case 0:
		return nil, nil
	case 1:
		return m.def.visibleLong(n, names[0]), nil
	}

	candidates := make([]string, len(names))
	for i, name := range names {
		candidates[i] = "--" + name
	}

	return nil, errs.AmbiguousArgument(tok.FlagText(), tok.Index, m.Path(), candidates)
}

// longCandidates returns the sorted long names resolvable in the current command which start with prefix
func (m *matcher) longCandidates(prefix string) []string {
	if prefix == "" {
		return nil
	}
	visible := m.def.visibleLongNames(m.cur.node)
	names := make([]string, 0, len(visible))
	for name := range visible {
		names = append(names, name)
	}
	sort.Strings(names)

	return util.HasPrefixMatches(prefix, names)
}

func (m *matcher) matchShort(tok parse.Token) error {
	for i, r := range tok.Shorts {
		a := m.def.visibleShort(m.cur.node, r)
		if a == nil {
			if i == 0 && m.cur.node.settings.UnknownAsPositional {
				return m.matchPositional(tok)
			}
			return m.unknownArgument("-"+string(r), tok.Index)
		}
		last := i == len(tok.Shorts)-1
		if err := m.open(a, last && tok.HasValue, tok.Value); err != nil {
			return err
		}
	}

	return nil
}

func (m *matcher) unknownArgument(text string, index int) error {
	e := errs.UnknownArgument(text, index, m.Path())
	if m.parser.suggester == nil {
		return e
	}

	visible := m.def.visibleLongNames(m.cur.node)
	candidates := make([]string, 0, len(visible))
	for name := range visible {
		candidates = append(candidates, "--"+name)
	}
	sort.Strings(candidates)
	e.Suggestions = m.parser.suggester.Suggest(text, candidates)

	return e
}

// matchPositional binds tok to the first unsaturated positional, or descends into the
// subcommand it names. SubcommandsFirst reverses that order.
func (m *matcher) matchPositional(tok parse.Token) error {
	n := m.cur.node
	if n.settings.SubcommandsFirst && len(n.children) > 0 {
		child, err := m.resolveSubcommand(tok)
		if err != nil {
			return err
		}
		if child >= 0 {
			return m.descend(child)
		}
	}

	if a := m.nextPositional(); a != nil {
		return m.bindPositional(a, tok)
	}

	if len(n.children) > 0 && !n.settings.SubcommandsFirst {
		child, err := m.resolveSubcommand(tok)
		if err != nil {
			return err
		}
		if child >= 0 {
			return m.descend(child)
		}
	}

	if n.settings.Passthrough {
		m.cur.trailing = append(m.cur.trailing, tok.Raw)
		m.log.Debug("trailing", "value", tok.Raw)
		return nil
	}
	if len(n.children) > 0 && len(n.positionals) == 0 {
		return m.unknownSubcommand(tok)
	}

	return errs.UnexpectedPositional(tok.Raw, tok.Index, m.Path())
}

// nextPositional returns the first positional which accepts another value, either within
// its latest occurrence or by starting a new one
func (m *matcher) nextPositional() *argDef {
	for _, a := range m.cur.node.positionals {
		b, found := m.cur.get(a.id)
		if !found || b.occurrences == 0 {
			return a
		}
		if !a.arity.Reached(b.current) || !a.occurrences.Reached(b.occurrences) {
			return a
		}
	}

	return nil
}

// bindPositional adds tok to a, opening a new occurrence once the latest one holds the
// maximum number of values
func (m *matcher) bindPositional(a *argDef, tok parse.Token) error {
	b := m.cur.binding(a.id)
	if b.occurrences == 0 || a.arity.Reached(b.current) {
		b.occurrences++
		b.current = 0
	}
	parts := util.SplitValues(tok.Raw, a.decl.ValueDelimiter)
	b.current += len(parts)
	if !a.arity.IsUnbounded() && b.current > a.arity.Max {
		return errs.TooManyValues(a.id, a.arity, b.current, m.Path())
	}
	b.values = append(b.values, parts...)
	b.source = types.SourceCommandLine
	m.log.Debug("positional bound", "arg", a.id, "value", tok.Raw, "occurrence", b.occurrences)

	return nil
}

// resolveSubcommand returns the arena index of the subcommand named by tok, or -1
func (m *matcher) resolveSubcommand(tok parse.Token) (int, error) {
	n := m.cur.node
	if child, found := n.subNames[tok.Raw]; found {
		return child, nil
	}
	if !n.settings.InferSubcommands || tok.Raw == "" {
		return -1, nil
	}

	names := make([]string, 0, len(n.subNames))
	for name := range n.subNames {
		names = append(names, name)
	}
	sort.Strings(names)
	matches := util.HasPrefixMatches(tok.Raw, names)

	distinct := map[int]struct{}{}
	for _, name := range matches {
		distinct[n.subNames[name]] = struct{}{}
	}
	switch len(distinct) {
	case 0:
		return -1, nil
	case 1:
		return n.subNames[matches[0]], nil
	}

	return -1, errs.AmbiguousSubcommand(tok.Raw, tok.Index, m.Path(), matches)
}

func (m *matcher) descend(child int) error {
	if m.cur.node.depth+1 > m.parser.maxDepth {
		return errs.RecursionDepthExceeded(m.parser.maxDepth, m.Path())
	}

	lv := newLevel(m.def.nodes[child])
	m.state.levels = append(m.state.levels, lv)
	m.cur = lv
	m.tk.ResetOptionsEnded()
	m.log.Debug("subcommand entered", "command", strings.Join(lv.node.path, " "))

	return nil
}

func (m *matcher) unknownSubcommand(tok parse.Token) error {
	e := errs.UnknownSubcommand(tok.Raw, tok.Index, m.Path())
	if m.parser.suggester == nil {
		return e
	}

	names := make([]string, 0, len(m.cur.node.subNames))
	for name := range m.cur.node.subNames {
		names = append(names, name)
	}
	sort.Strings(names)
	e.Suggestions = m.parser.suggester.Suggest(tok.Raw, names)

	return e
}
