// Package agg has aggregation logic for incident batches.
package agg

import (
	"fmt"
	"sort"

	"incsight/internal/contract"
	"incsight/internal/jsonval"
	"incsight/schema"
)

// TopCounts groups a batch by the value resolved at groupBy, counts
// occurrences per distinct value, and returns the topN most frequent entries
// ordered by count descending. Ties are broken by first appearance in the
// batch. Every record is counted exactly once: records where the field is
// absent or null land in the missing bucket, so entry counts always sum to
// the batch size when topN covers all distinct values.
func TopCounts(batch []jsonval.Value, groupBy string, topN int) (schema.AnalysisResult, error) {
	if topN <= 0 {
		return schema.AnalysisResult{}, fmt.Errorf("%w: top must be a positive integer, got %d", contract.ErrInput, topN)
	}

	// 1. Resolve the field on every record and count string-form keys
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, rec := range batch {
		key := groupKey(rec, groupBy)
		if _, ok := counts[key]; !ok {
			firstSeen[key] = i
		}
		counts[key]++
	}

	// 2. Order by count descending, ties by first appearance
	entries := make([]schema.ValueCount, 0, len(counts))
	for value, count := range counts {
		entries = append(entries, schema.ValueCount{Value: value, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Value] < firstSeen[entries[j].Value]
	})

	// 3. Truncate to the requested top-N
	distinct := len(entries)
	if len(entries) > topN {
		entries = entries[:topN]
	}

	return schema.AnalysisResult{
		GroupBy:     groupBy,
		TotalCount:  len(batch),
		Entries:     entries,
		DistinctLen: distinct,
	}, nil
}

// groupKey renders the grouping key for one record. Absent fields and JSON
// nulls both count under the missing bucket. Values whose string form equals
// the bucket name merge with it, matching how the bucket behaves as a
// regular grouping key everywhere downstream.
func groupKey(rec jsonval.Value, groupBy string) string {
	v := rec.Get(groupBy)
	if v.IsAbsent() || v.IsNull() {
		return schema.MissingBucket
	}
	return v.String()
}
