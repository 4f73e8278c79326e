package jsonval

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, data string) Value {
	t.Helper()
	var raw any
	require.NoError(t, json.Unmarshal([]byte(data), &raw))
	return Decode(raw)
}

func TestGetTraversal(t *testing.T) {
	record := decodeJSON(t, `{
		"service": "api",
		"priority": 2,
		"resolved": true,
		"owner": {"id": "team-1", "meta": {"region": "us-east"}},
		"tags": [{"key": "env", "value": "prod"}],
		"note": null
	}`)

	tests := []struct {
		name     string
		path     string
		wantKind Kind
		wantStr  string
	}{
		{name: "top level scalar", path: "service", wantKind: KindScalar, wantStr: "api"},
		{name: "numeric scalar", path: "priority", wantKind: KindScalar, wantStr: "2"},
		{name: "bool scalar", path: "resolved", wantKind: KindScalar, wantStr: "true"},
		{name: "nested path", path: "owner.meta.region", wantKind: KindScalar, wantStr: "us-east"},
		{name: "intermediate mapping", path: "owner", wantKind: KindMapping, wantStr: `{"id":"team-1","meta":{"region":"us-east"}}`},
		{name: "null is present", path: "note", wantKind: KindScalar, wantStr: "null"},
		{name: "missing key", path: "severity", wantKind: KindAbsent, wantStr: ""},
		{name: "missing nested key", path: "owner.meta.zone", wantKind: KindAbsent, wantStr: ""},
		{name: "descend into scalar", path: "service.name", wantKind: KindAbsent, wantStr: ""},
		{name: "descend into null", path: "note.detail", wantKind: KindAbsent, wantStr: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := record.Get(tt.path)
			assert.Equal(t, tt.wantKind, got.Kind())
			assert.Equal(t, tt.wantStr, got.String())
		})
	}
}

func TestGetSequenceStopsTraversal(t *testing.T) {
	record := decodeJSON(t, `{"tags": [{"key": "env", "value": "prod"}, {"key": "tier", "value": "1"}]}`)

	// A segment resolving to a sequence returns the sequence itself.
	got := record.Get("tags")
	assert.Equal(t, KindSequence, got.Kind())
	assert.Equal(t, `[{"key":"env","value":"prod"},{"key":"tier","value":"1"}]`, got.String())

	// Remaining segments after a sequence are not applied.
	assert.Equal(t, got, record.Get("tags.key"))
	assert.Equal(t, got, record.Get("tags.0.key"))
}

func TestGetNonMappingRecord(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "scalar record", data: `"just a string"`},
		{name: "numeric record", data: `42`},
		{name: "null record", data: `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := decodeJSON(t, tt.data)
			assert.True(t, v.Get("anything").IsAbsent())
		})
	}
}

func TestGetNeverPanics(t *testing.T) {
	record := decodeJSON(t, `{"a": {"b": [1, 2]}, "c": null, "d": ""}`)
	paths := []string{"", ".", "a.b.c.d.e", "c.x.y", "d.d.d", "...", "a..b"}
	for _, p := range paths {
		got := record.Get(p)
		// Either a concrete value reachable by direct traversal, or absent.
		assert.Contains(t, []Kind{KindAbsent, KindScalar, KindMapping, KindSequence}, got.Kind())
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "string bare", data: `"prod"`, want: "prod"},
		{name: "integer form", data: `7`, want: "7"},
		{name: "float form", data: `2.5`, want: "2.5"},
		{name: "bool", data: `false`, want: "false"},
		{name: "null", data: `null`, want: "null"},
		{name: "sequence compact", data: `["a", 1, true]`, want: `["a",1,true]`},
		{name: "mapping sorted keys", data: `{"b": 2, "a": 1}`, want: `{"a":1,"b":2}`},
		{name: "nested", data: `{"x": {"y": [1]}}`, want: `{"x":{"y":[1]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeJSON(t, tt.data).String())
		})
	}
}

func TestAbsentZeroValue(t *testing.T) {
	var v Value
	assert.True(t, v.IsAbsent())
	assert.Equal(t, "", v.String())
	assert.Nil(t, v.ToAny())
	assert.True(t, v.Get("any.path").IsAbsent())
}

func TestToAnyRoundTrip(t *testing.T) {
	data := `{"service":"api","count":3,"tags":[{"key":"env"}],"meta":null}`
	v := decodeJSON(t, data)

	var want any
	require.NoError(t, json.Unmarshal([]byte(data), &want))
	assert.Equal(t, want, v.ToAny())
}
