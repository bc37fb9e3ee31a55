package util

// Clone returns a copy of s which is nil when s is empty
func Clone[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}

	return append([]T(nil), s...)
}

// HasPrefixMatches returns every name which starts with prefix. An exact match is returned alone.
func HasPrefixMatches(prefix string, names []string) []string {
	var matches []string
	for _, n := range names {
		if n == prefix {
			return []string{n}
		}
		if len(n) > len(prefix) && n[:len(prefix)] == prefix {
			matches = append(matches, n)
		}
	}

	return matches
}
