// Package env supplies fallback raw values for arguments bound to environment variables.
package env

import (
	"os"
	"sort"
)

// Resolver defines an interface for environment resolution.
type Resolver interface {
	// Lookup returns the value of the environment variable named by key and
	// whether it is set. A variable set to the empty string is considered set.
	Lookup(key string) (string, bool)

	// Environ returns a slice of strings in the form "key=value" representing the environment,
	// similar to os.Environ.
	Environ() []string
}

// OSResolver resolves variables from the process environment.
type OSResolver struct{}

// Lookup wraps os.LookupEnv
func (OSResolver) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Environ wraps os.Environ
func (OSResolver) Environ() []string {
	return os.Environ()
}

// MapResolver resolves variables from a fixed map. It is useful in tests and
// when parsing on behalf of another process.
type MapResolver map[string]string

// Lookup returns the mapped value
func (m MapResolver) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Environ returns the map as sorted "key=value" pairs
func (m MapResolver) Environ() []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)

	return out
}
