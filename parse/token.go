package parse

import (
	"strconv"
	"strings"
)

// TokenKind is the syntactic role of a raw token
type TokenKind int

const (
	Positional   TokenKind = iota // bare text (or anything after the end-of-options marker)
	LongFlag                      // --name or --name=value
	ShortCluster                  // -abc, -ovalue, -o=value
	EndOfOptions                  // --
	Value                         // raw token pulled as the value of an open argument
)

// String returns the string representation of a TokenKind
func (k TokenKind) String() string {
	switch k {
	case Positional:
		return "positional"
	case LongFlag:
		return "long"
	case ShortCluster:
		return "short"
	case EndOfOptions:
		return "end-of-options"
	case Value:
		return "value"
	}
	return "unknown"
}

// Token is a classified raw token
type Token struct {
	Kind TokenKind
	// Raw is the token exactly as it appeared in the argument list
	Raw string
	// Index is the position of Raw in the argument list
	Index int
	// Name is the flag name of a LongFlag, without dashes
	Name string
	// Shorts holds the characters of a ShortCluster which precede any inline value
	Shorts []rune
	// Value is the inline value of a flag (after '=' or the remainder of a cluster),
	// or the text of a Positional or Value token
	Value string
	// HasValue distinguishes an empty inline value ("--name=") from none ("--name")
	HasValue bool
}

// IsFlag reports whether the token is flag-shaped
func (t Token) IsFlag() bool {
	return t.Kind == LongFlag || t.Kind == ShortCluster
}

// FlagText renders the flag part of the token (without an inline value), e.g. "--name" or "-b"
func (t Token) FlagText() string {
	switch t.Kind {
	case LongFlag:
		return "--" + t.Name
	case ShortCluster:
		return "-" + string(t.Shorts)
	}
	return t.Raw
}

func (t Token) String() string {
	var sb strings.Builder
	sb.WriteString(t.Kind.String())
	sb.WriteByte('(')
	sb.WriteString(strconv.Quote(t.Raw))
	sb.WriteByte(')')

	return sb.String()
}
