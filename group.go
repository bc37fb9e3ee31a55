package argmatch

import "github.com/napalu/argmatch/types"

// Group constrains the joint presence of arguments declared in the same command
type Group struct {
	ID      string
	Policy  types.GroupPolicy
	Members []string
	// CountDefaults counts members bound from a default as firing
	CountDefaults bool
}

// NewGroup creates a group over members
func NewGroup(id string, policy types.GroupPolicy, members ...string) *Group {
	return &Group{
		ID:      id,
		Policy:  policy,
		Members: append([]string(nil), members...),
	}
}

// Expected returns the permitted number of firing members
func (g *Group) Expected() types.Range {
	switch g.Policy {
	case types.ExactlyOne:
		return types.Exactly(1)
	case types.AtLeastOne:
		return types.AtLeast(1)
	}

	return types.AtLeast(0)
}
