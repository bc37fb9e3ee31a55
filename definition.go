package argmatch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/napalu/argmatch/errs"
	"github.com/napalu/argmatch/types"
)

// Definition is the frozen, read-only form of a Command tree. Commands are stored in an
// arena and refer to each other by index; the root is node 0.
type Definition struct {
	nodes []*node
}

type node struct {
	id       int
	parent   int
	depth    int
	name     string
	aliases  []string
	desc     string
	path     []string
	children []int
	subNames map[string]int
	settings Command

	args        []*argDef
	argIndex    map[string]*argDef
	shorts      map[rune]*argDef
	longs       map[string]*argDef
	positionals []*argDef
	groups      []*groupDef
	groupIndex  map[string]*groupDef
}

type argDef struct {
	id          string
	owner       int
	arity       types.Range
	occurrences types.Range
	env         string
	decl        *Argument
}

type groupDef struct {
	id            string
	policy        types.GroupPolicy
	members       []string
	countDefaults bool
}

func (a *argDef) takesValue() bool {
	return a.arity.Max != 0
}

func (a *argDef) positional() bool {
	return a.decl.Index != nil
}

// display renders the name the argument is known by on the command line
func (a *argDef) display() string {
	switch {
	case a.positional():
		return a.id
	case a.decl.Long != "":
		return "--" + a.decl.Long
	}

	return "-" + string(a.decl.Short)
}

func newDefinition(root *Command, maxDepth int) (*Definition, error) {
	if root == nil {
		return nil, errs.ErrNilCommand
	}
	d := &Definition{}
	if err := d.add(root, -1, 0, maxDepth, ToKebabCase, ""); err != nil {
		return nil, err
	}
	for _, n := range d.nodes {
		if err := d.checkReferences(n); err != nil {
			return nil, err
		}
	}

	return d, nil
}

func (d *Definition) add(cmd *Command, parent, depth, maxDepth int, conv NameConversionFunc, envPrefix string) error {
	if cmd == nil {
		return errs.ErrNilCommand
	}
	if cmd.err != nil {
		return cmd.err
	}
	if cmd.Name == "" {
		return errs.ErrEmptyName.WithArgs(depth)
	}
	if depth > maxDepth {
		return errs.ErrMaxDepthExceeded.WithArgs(cmd.Name, maxDepth)
	}

	n := &node{
		id:         len(d.nodes),
		parent:     parent,
		depth:      depth,
		name:       cmd.Name,
		aliases:    append([]string(nil), cmd.Aliases...),
		desc:       cmd.Description,
		settings:   *cmd,
		subNames:   map[string]int{},
		argIndex:   map[string]*argDef{},
		shorts:     map[rune]*argDef{},
		longs:      map[string]*argDef{},
		groupIndex: map[string]*groupDef{},
	}
	n.settings.Subcommands = nil
	n.settings.args = nil
	n.settings.groups = nil
	if parent >= 0 {
		n.path = append(append([]string(nil), d.nodes[parent].path...), cmd.Name)
	} else {
		n.path = []string{cmd.Name}
	}
	if cmd.NameConverter != nil {
		conv = cmd.NameConverter
	}
	if cmd.EnvPrefix != "" {
		envPrefix = cmd.EnvPrefix
	}
	d.nodes = append(d.nodes, n)

	if err := d.addArgs(n, cmd, conv, envPrefix); err != nil {
		return err
	}
	if err := d.addGroups(n, cmd); err != nil {
		return err
	}

	for _, sub := range cmd.Subcommands {
		if sub == nil {
			return errs.ErrNilCommand
		}
		childID := len(d.nodes)
		for _, name := range append([]string{sub.Name}, sub.Aliases...) {
			if _, found := n.subNames[name]; found {
				return errs.ErrDuplicateSubcommand.WithArgs(name, cmd.Name)
			}
			n.subNames[name] = childID
		}
		if err := d.add(sub, n.id, depth+1, maxDepth, conv, envPrefix); err != nil {
			return err
		}
		n.children = append(n.children, childID)
	}

	return nil
}

func (d *Definition) addArgs(n *node, cmd *Command, conv NameConversionFunc, envPrefix string) error {
	if cmd.args == nil {
		return nil
	}
	indices := map[int]*argDef{}
	for pair := cmd.args.Oldest(); pair != nil; pair = pair.Next() {
		a := &argDef{id: pair.Key, owner: n.id, decl: pair.Value.clone()}
		if err := a.normalize(cmd.Name, conv, envPrefix); err != nil {
			return err
		}

		if a.positional() {
			if other, found := indices[*a.decl.Index]; found {
				return errs.ErrDuplicateIndex.WithArgs(*a.decl.Index, a.id, other.id, cmd.Name)
			}
			indices[*a.decl.Index] = a
			n.positionals = append(n.positionals, a)
		}
		if a.decl.Short != 0 {
			if other := d.visibleShort(n, a.decl.Short); other != nil {
				return errs.ErrDuplicateShort.WithArgs(string(a.decl.Short), a.id, other.id, cmd.Name)
			}
			n.shorts[a.decl.Short] = a
		}
		for _, long := range a.longNames() {
			if other := d.visibleLong(n, long); other != nil {
				return errs.ErrDuplicateLong.WithArgs(long, a.id, other.id, cmd.Name)
			}
			n.longs[long] = a
		}
		n.args = append(n.args, a)
		n.argIndex[a.id] = a
	}

	sort.SliceStable(n.positionals, func(i, j int) bool {
		return *n.positionals[i].decl.Index < *n.positionals[j].decl.Index
	})
	for i, p := range n.positionals {
		if (p.arity.IsUnbounded() || p.occurrences.IsUnbounded()) && i != len(n.positionals)-1 {
			return errs.ErrUnboundedNotLast.WithArgs(p.id, cmd.Name)
		}
	}

	return nil
}

func (d *Definition) addGroups(n *node, cmd *Command) error {
	if cmd.groups == nil {
		return nil
	}
	for pair := cmd.groups.Oldest(); pair != nil; pair = pair.Next() {
		g := pair.Value
		if _, found := n.argIndex[g.ID]; found {
			return errs.ErrDuplicateGroup.WithArgs(g.ID, cmd.Name)
		}
		for _, m := range g.Members {
			if _, found := n.argIndex[m]; !found {
				return errs.ErrUnknownReference.WithArgs(m, g.ID, cmd.Name)
			}
		}
		gd := &groupDef{
			id:            g.ID,
			policy:        g.Policy,
			members:       append([]string(nil), g.Members...),
			countDefaults: g.CountDefaults,
		}
		n.groups = append(n.groups, gd)
		n.groupIndex[gd.id] = gd
	}

	return nil
}

// normalize derives arity, occurrences, names and env binding, and checks the argument invariants
func (a *argDef) normalize(cmdName string, conv NameConversionFunc, envPrefix string) error {
	s := a.decl
	switch s.Kind {
	case types.Flag:
		a.arity = types.Exactly(0)
	case types.Single:
		a.arity = types.Exactly(1)
	case types.Multi:
		a.arity = types.AtLeast(1)
		if s.NumValues != nil {
			a.arity = *s.NumValues
		}
	default:
		return errs.ErrInvalidArity.WithArgs(a.id, fmt.Sprintf("kind %d", s.Kind))
	}
	if !a.arity.Valid() || (s.Kind == types.Multi && a.arity.Max == 0) {
		return errs.ErrInvalidArity.WithArgs(a.id, errs.FormatRange(a.arity))
	}

	a.occurrences = types.Between(0, 1)
	if s.Occurrences != nil {
		a.occurrences = *s.Occurrences
	}
	if !a.occurrences.Valid() || a.occurrences.Max == 0 {
		return errs.ErrInvalidOccurrences.WithArgs(a.id, errs.FormatRange(a.occurrences))
	}

	if a.positional() {
		if s.Short != 0 || s.Long != "" || len(s.Aliases) > 0 {
			return errs.ErrPositionalWithName.WithArgs(a.id)
		}
		if s.Kind == types.Flag {
			return errs.ErrInvalidArity.WithArgs(a.id, errs.FormatRange(a.arity))
		}
	} else if s.Short == 0 && s.Long == "" {
		s.Long = conv(a.id)
		if !validLongName(s.Long) {
			return errs.ErrUnreachableArg.WithArgs(a.id, cmdName)
		}
	}
	if s.Kind == types.Flag && len(s.Default) > 0 {
		return errs.ErrFlagWithDefault.WithArgs(a.id)
	}

	a.env = s.Env
	if a.env == "" && s.EnvFromID {
		a.env = DefaultEnvNameConverter(a.id)
		if envPrefix != "" {
			a.env = DefaultEnvNameConverter(envPrefix) + "_" + a.env
		}
	}

	return nil
}

func (a *argDef) longNames() []string {
	if a.decl.Long == "" {
		return a.decl.Aliases
	}

	return append([]string{a.decl.Long}, a.decl.Aliases...)
}

// checkReferences verifies that conflicts and requirements name arguments or groups of the same command
func (d *Definition) checkReferences(n *node) error {
	for _, a := range n.args {
		for _, ref := range append(append([]string(nil), a.decl.Conflicts...), a.decl.Requires...) {
			if _, found := n.argIndex[ref]; found {
				continue
			}
			if _, found := n.groupIndex[ref]; found {
				continue
			}
			return errs.ErrUnknownReference.WithArgs(ref, a.id, n.name)
		}
	}

	return nil
}

// visibleShort resolves a short name in n, then in the global arguments of its ancestors
func (d *Definition) visibleShort(n *node, r rune) *argDef {
	if a, found := n.shorts[r]; found {
		return a
	}
	for p := n.parent; p >= 0; p = d.nodes[p].parent {
		if a, found := d.nodes[p].shorts[r]; found && a.decl.Global {
			return a
		}
	}

	return nil
}

// visibleLong resolves a long name or alias in n, then in the global arguments of its ancestors
func (d *Definition) visibleLong(n *node, name string) *argDef {
	if a, found := n.longs[name]; found {
		return a
	}
	for p := n.parent; p >= 0; p = d.nodes[p].parent {
		if a, found := d.nodes[p].longs[name]; found && a.decl.Global {
			return a
		}
	}

	return nil
}

// visibleLongNames lists every long name resolvable in n
func (d *Definition) visibleLongNames(n *node) map[string]*argDef {
	names := make(map[string]*argDef, len(n.longs))
	for p := n.parent; p >= 0; p = d.nodes[p].parent {
		for name, a := range d.nodes[p].longs {
			if a.decl.Global {
				names[name] = a
			}
		}
	}
	for name, a := range n.longs {
		names[name] = a
	}

	return names
}

// Root returns the root command
func (d *Definition) Root() CommandInfo {
	return d.info(d.nodes[0])
}

// Lookup returns the command reached by following path from the root. Aliases are accepted.
func (d *Definition) Lookup(path ...string) (CommandInfo, bool) {
	n := d.nodes[0]
	for _, name := range path {
		child, found := n.subNames[name]
		if !found {
			return CommandInfo{}, false
		}
		n = d.nodes[child]
	}

	return d.info(n), true
}

// CommandInfo is a read-only description of a frozen command, for help renderers and other collaborators
type CommandInfo struct {
	Name        string
	Aliases     []string
	Description string
	Path        []string
	Subcommands []string
	Args        []ArgInfo
	Groups      []Group
}

// ArgInfo is a read-only description of a frozen argument
type ArgInfo struct {
	ID          string
	Short       rune
	Long        string
	Aliases     []string
	Index       int
	Kind        types.ArgKind
	NumValues   types.Range
	Occurrences types.Range
	Default     []string
	Required    bool
	Global      bool
	Env         string
	Description string
}

// IsPositional reports whether the argument is matched by position
func (a ArgInfo) IsPositional() bool {
	return a.Index >= 0
}

// FullPath returns the command path joined by spaces
func (c CommandInfo) FullPath() string {
	return strings.Join(c.Path, " ")
}

func (d *Definition) info(n *node) CommandInfo {
	ci := CommandInfo{
		Name:        n.name,
		Aliases:     append([]string(nil), n.aliases...),
		Description: n.desc,
		Path:        append([]string(nil), n.path...),
	}
	for _, c := range n.children {
		ci.Subcommands = append(ci.Subcommands, d.nodes[c].name)
	}
	for _, a := range n.args {
		ai := ArgInfo{
			ID:          a.id,
			Short:       a.decl.Short,
			Long:        a.decl.Long,
			Aliases:     append([]string(nil), a.decl.Aliases...),
			Index:       -1,
			Kind:        a.decl.Kind,
			NumValues:   a.arity,
			Occurrences: a.occurrences,
			Default:     append([]string(nil), a.decl.Default...),
			Required:    a.decl.Required,
			Global:      a.decl.Global,
			Env:         a.env,
			Description: a.decl.Description,
		}
		if a.positional() {
			ai.Index = *a.decl.Index
		}
		ci.Args = append(ci.Args, ai)
	}
	for _, g := range n.groups {
		group := NewGroup(g.id, g.policy, g.members...)
		group.CountDefaults = g.countDefaults
		ci.Groups = append(ci.Groups, *group)
	}

	return ci
}

func (g *groupDef) expected() types.Range {
	return (&Group{Policy: g.policy}).Expected()
}
