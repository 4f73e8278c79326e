package jsonval

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBatch(t *testing.T, data string) []Value {
	t.Helper()
	var raw []any
	require.NoError(t, json.Unmarshal([]byte(data), &raw))
	batch := make([]Value, len(raw))
	for i, r := range raw {
		batch[i] = Decode(r)
	}
	return batch
}

func TestFields(t *testing.T) {
	tests := []struct {
		name  string
		batch string
		want  []string
	}{
		{
			name:  "empty batch",
			batch: `[]`,
			want:  []string{},
		},
		{
			name:  "flat record",
			batch: `[{"service": "api", "priority": 1}]`,
			want:  []string{"priority", "service"},
		},
		{
			name:  "nested mappings",
			batch: `[{"owner": {"id": "t1", "meta": {"region": "us"}}}]`,
			want:  []string{"owner.id", "owner.meta.region"},
		},
		{
			name:  "sequence of mappings is index agnostic",
			batch: `[{"tags": [{"key": "env", "value": "prod"}, {"key": "tier"}]}]`,
			want:  []string{"tags.key", "tags.value"},
		},
		{
			name:  "sequence sampled from first element only",
			batch: `[{"tags": [{"key": "env"}, {"key": "tier", "extra": "ignored"}]}]`,
			want:  []string{"tags.key"},
		},
		{
			name:  "sequence of scalars is a leaf",
			batch: `[{"labels": ["a", "b"]}]`,
			want:  []string{"labels"},
		},
		{
			name:  "empty sequence reports own path",
			batch: `[{"tags": []}]`,
			want:  []string{"tags"},
		},
		{
			name:  "empty mapping reports own path",
			batch: `[{"meta": {}}]`,
			want:  []string{"meta"},
		},
		{
			name:  "union across records",
			batch: `[{"service": "api"}, {"owner": {"id": "t1"}}, {"service": "web", "region": "eu"}]`,
			want:  []string{"owner.id", "region", "service"},
		},
		{
			name:  "null is a leaf",
			batch: `[{"note": null}]`,
			want:  []string{"note"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fields(decodeBatch(t, tt.batch))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldsUniformSchemaCount(t *testing.T) {
	// On a uniform-schema batch the path count equals the distinct leaf
	// paths of a single record.
	batch := decodeBatch(t, `[
		{"service": "api", "owner": {"id": "t1"}, "tags": [{"key": "env", "value": "prod"}]},
		{"service": "web", "owner": {"id": "t2"}, "tags": [{"key": "env", "value": "dev"}]},
		{"service": "db", "owner": {"id": "t3"}, "tags": [{"key": "tier", "value": "1"}]}
	]`)
	got := Fields(batch)
	assert.Equal(t, []string{"owner.id", "service", "tags.key", "tags.value"}, got)
	assert.Len(t, Fields(batch[:1]), len(got))
}
