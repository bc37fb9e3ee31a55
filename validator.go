package argmatch

import (
	"strings"

	"github.com/napalu/argmatch/errs"
	"github.com/napalu/argmatch/internal/util"
	"github.com/napalu/argmatch/types"
)

// validator runs once matching has finished. Every level on the chosen path is checked;
// an ancestor's arguments stay in scope unless they are marked subcommand-exempt.
type validator struct {
	parser *Parser
	def    *Definition
	state  *matchState
	found  []error
}

func (v *validator) run() error {
	for _, lv := range v.state.levels {
		v.injectEnv(lv)
		if v.full() {
			return v.found[0]
		}
		v.applyDefaults(lv)
	}

	last := len(v.state.levels) - 1
	for i, lv := range v.state.levels {
		v.checkLevel(lv, i == last)
		if v.full() {
			return v.found[0]
		}
		v.parser.logger.Debug("command validated", "command", strings.Join(lv.node.path, " "), "errors", len(v.found))
	}

	if len(v.found) == 0 {
		return nil
	}

	return &errs.ValidationError{Errors: v.found}
}

// full reports whether fail-fast mode has an error to report
func (v *validator) full() bool {
	return v.parser.failFast && len(v.found) > 0
}

func (v *validator) report(err error) {
	if v.full() {
		return
	}
	v.found = append(v.found, err)
}

// injectEnv binds environment values to arguments absent from the command line. A flag
// counts as present when its variable holds a true value.
func (v *validator) injectEnv(lv *level) {
	for _, a := range lv.node.args {
		if a.env == "" {
			continue
		}
		if b, found := lv.get(a.id); found && b.source != types.SourceNone {
			continue
		}
		raw, ok := v.parser.env.Lookup(a.env)
		if !ok {
			continue
		}

		if !a.takesValue() {
			on, err := util.ParseBool(raw)
			if err != nil || !on {
				v.parser.logger.Debug("env flag ignored", "arg", a.id, "env", a.env, "value", raw)
				continue
			}
			b := lv.binding(a.id)
			b.occurrences = 1
			b.source = types.SourceEnv
			continue
		}

		values := util.SplitValues(raw, a.decl.ValueDelimiter)
		if !a.arity.IsUnbounded() && len(values) > a.arity.Max {
			v.report(errs.TooManyValues(a.id, a.arity, len(values), lv.node.path))
			continue
		}
		if len(values) < a.arity.Min {
			v.report(errs.TooFewValues(a.id, a.arity, len(values), lv.node.path))
			continue
		}
		b := lv.binding(a.id)
		b.values = values
		b.occurrences = 1
		b.source = types.SourceEnv
		v.parser.logger.Debug("env bound", "arg", a.id, "env", a.env)
	}
}

func (v *validator) applyDefaults(lv *level) {
	for _, a := range lv.node.args {
		if len(a.decl.Default) == 0 {
			continue
		}
		if b, found := lv.get(a.id); found && b.source != types.SourceNone {
			continue
		}
		b := lv.binding(a.id)
		b.values = append([]string(nil), a.decl.Default...)
		b.source = types.SourceDefault
	}
}

func (v *validator) checkLevel(lv *level, leaf bool) {
	n := lv.node
	waived := func(a *argDef) bool {
		return !leaf && a.decl.SubcommandExempt
	}

	for _, a := range n.args {
		if !a.decl.Required || waived(a) {
			continue
		}
		if b, found := lv.get(a.id); !found || b.source == types.SourceNone {
			v.report(errs.MissingRequiredArgument(a.id, n.path))
		}
	}

	for _, a := range n.args {
		if !v.present(lv, a.id) {
			continue
		}
		for _, ref := range a.decl.Requires {
			if !v.refPresent(lv, ref, a.id) {
				v.report(errs.MissingRequiredBy(ref, a.id, n.path))
			}
		}
	}

	v.checkConflicts(lv)

	for _, g := range n.groups {
		var firing []string
		for _, id := range g.members {
			b, found := lv.get(id)
			if !found {
				continue
			}
			if b.source.Explicit() || (g.countDefaults && b.source == types.SourceDefault) {
				firing = append(firing, id)
			}
		}
		expected := g.expected()
		if expected.Contains(len(firing)) {
			continue
		}
		members := firing
		if len(members) == 0 {
			members = append([]string(nil), g.members...)
		}
		v.report(errs.GroupCardinalityViolation(g.id, members, expected, len(firing), n.path))
	}

	for _, a := range n.args {
		if waived(a) {
			continue
		}
		b, found := lv.get(a.id)
		if a.positional() && found && b.source == types.SourceCommandLine && b.current < a.arity.Min {
			v.report(errs.TooFewValues(a.id, a.arity, b.current, n.path))
		}
		switch {
		case found && b.source.Explicit():
			if b.occurrences < a.occurrences.Min {
				v.report(errs.OccurrenceCountViolation(a.id, a.occurrences, b.occurrences, n.path))
			}
		case found && b.source == types.SourceDefault, a.decl.Required:
			// satisfied by the default, or already reported as missing
		case a.occurrences.Min > 0:
			v.report(errs.OccurrenceCountViolation(a.id, a.occurrences, 0, n.path))
		}
	}
}

// checkConflicts reports each conflicting pair once, naming the argument declared first
func (v *validator) checkConflicts(lv *level) {
	n := lv.node
	seen := map[string]struct{}{}
	for _, a := range n.args {
		if !v.present(lv, a.id) {
			continue
		}
		for _, ref := range a.decl.Conflicts {
			others := []string{ref}
			if g, isGroup := n.groupIndex[ref]; isGroup {
				others = g.members
			}
			for _, other := range others {
				if other == a.id || !v.present(lv, other) {
					continue
				}
				key := pairKey(a.id, other)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				v.report(errs.ConflictingArguments(a.id, other, n.path))
			}
		}
	}
}

// present reports whether id was given on the command line or through the environment
func (v *validator) present(lv *level, id string) bool {
	b, found := lv.get(id)

	return found && b.source.Explicit()
}

// refPresent resolves ref as an argument or as a group, which is present when any member
// other than except is
func (v *validator) refPresent(lv *level, ref, except string) bool {
	g, isGroup := lv.node.groupIndex[ref]
	if !isGroup {
		return v.present(lv, ref)
	}
	for _, id := range g.members {
		if id != except && v.present(lv, id) {
			return true
		}
	}

	return false
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}

	return a + "\x00" + b
}
