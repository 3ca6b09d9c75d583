package driver

import (
	"sort"
	"strings"
)

// ResolveImport applies solc's longest-prefix-match remapping rule to path.
// Implemented as a sorted-by-length linear scan rather than a trie: at the
// scale a single project's remapping table reaches (a handful to a few
// dozen entries), an O(n log n) sort once plus an O(n) scan per import is
// simpler and obviously correct.
func ResolveImport(remaps []Remapping, path string) (string, bool) {
	sorted := make([]Remapping, len(remaps))
	copy(sorted, remaps)
	sort.Slice(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})

	for _, r := range sorted {
		if strings.HasPrefix(path, r.Prefix) {
			return r.Target + strings.TrimPrefix(path, r.Prefix), true
		}
	}

	return path, false
}

// ParseRemappingString splits one "prefix=target" entry the way solc's CLI
// does.
func ParseRemappingString(s string) (Remapping, error) {
	prefix, target, ok := strings.Cut(s, "=")
	if !ok {
		return Remapping{}, ErrBadRemapping
	}

	return Remapping{Prefix: prefix, Target: target}, nil
}

// ParseRemappingStrings parses a batch, stopping at the first malformed
// entry and returning its error with no partial result — callers that need
// partial results should call ParseRemappingString directly.
func ParseRemappingStrings(ss []string) ([]Remapping, error) {
	out := make([]Remapping, 0, len(ss))
	for _, s := range ss {
		r, err := ParseRemappingString(s)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, nil
}
