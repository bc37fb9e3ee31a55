package util

import "sort"

// LevenshteinDistance calculates the Levenshtein distance between two strings, rune-wise
func LevenshteinDistance(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}

// ClosestMatches returns the candidates within maxDistance of input, closest first.
// Ties keep the candidate order.
func ClosestMatches(input string, candidates []string, maxDistance int) []string {
	type scored struct {
		name string
		dist int
	}

	var found []scored
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c]; dup || c == "" {
			continue
		}
		seen[c] = struct{}{}
		if d := LevenshteinDistance(input, c); d <= maxDistance {
			found = append(found, scored{name: c, dist: d})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].dist < found[j].dist
	})

	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.name
	}

	return out
}
