package jsonval

import "sort"

// Fields returns the sorted set of distinct dotted field paths reachable in
// a batch of records. Every mapping key is descended recursively. Sequences
// are sampled from their first element only, and paths under a sequence stay
// index-agnostic (reported as parent.key), since schema is assumed uniform
// across the batch. Scalars are leaves; an empty mapping or empty sequence
// reports its own path. An empty batch yields no paths.
func Fields(batch []Value) []string {
	set := make(map[string]struct{})
	for _, rec := range batch {
		collectPaths(rec, "", set)
	}
	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func collectPaths(v Value, prefix string, set map[string]struct{}) {
	switch v.kind {
	case KindMapping:
		if len(v.mapping) == 0 {
			record(prefix, set)
			return
		}
		for key, child := range v.mapping {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			collectPaths(child, path, set)
		}
	case KindSequence:
		if len(v.sequence) == 0 {
			record(prefix, set)
			return
		}
		first := v.sequence[0]
		if first.kind == KindMapping || first.kind == KindSequence {
			collectPaths(first, prefix, set)
		} else {
			record(prefix, set)
		}
	case KindScalar:
		record(prefix, set)
	}
}

// record skips the empty prefix so a degenerate top-level value never
// produces a path.
func record(prefix string, set map[string]struct{}) {
	if prefix != "" {
		set[prefix] = struct{}{}
	}
}
