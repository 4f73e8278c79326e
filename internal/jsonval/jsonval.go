// Package jsonval models arbitrary incident JSON as a typed recursive value
// with explicit traversal. Incident records have no contractual schema, so
// every lookup goes through Value instead of type assertions at call sites.
package jsonval

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the variants of a Value.
type Kind int

// All value kinds. The zero Value is absent.
const (
	KindAbsent Kind = iota
	KindScalar
	KindMapping
	KindSequence
)

// Value is one node of a decoded JSON document: a scalar (string, number,
// bool or null), a mapping, a sequence, or the absent marker returned by
// failed lookups.
type Value struct {
	kind     Kind
	scalar   any
	mapping  map[string]Value
	sequence []Value
}

// AbsentValue is returned by lookups that resolve to nothing.
var AbsentValue = Value{kind: KindAbsent}

// Decode converts a value produced by encoding/json (nil, bool, float64,
// string, json.Number, []any or map[string]any) into a Value tree.
func Decode(raw any) Value {
	switch t := raw.(type) {
	case nil, bool, float64, string, json.Number:
		return Value{kind: KindScalar, scalar: t}
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, child := range t {
			m[k] = Decode(child)
		}
		return Value{kind: KindMapping, mapping: m}
	case []any:
		s := make([]Value, len(t))
		for i, child := range t {
			s[i] = Decode(child)
		}
		return Value{kind: KindSequence, sequence: s}
	default:
		// Unexpected decoder output is treated as an opaque scalar.
		return Value{kind: KindScalar, scalar: t}
	}
}

// Kind returns the variant of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the value is the absent marker.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// IsNull reports whether the value is a present JSON null.
func (v Value) IsNull() bool {
	return v.kind == KindScalar && v.scalar == nil
}

// Get resolves a dotted field path against the value. Traversal descends
// nested mappings segment by segment. A missing key or a type mismatch
// (descending into a scalar) yields the absent marker, never an error.
// A segment that resolves to a sequence returns that sequence itself;
// remaining segments are not applied and elements are never fanned out.
func (v Value) Get(path string) Value {
	cur := v
	for _, seg := range strings.Split(path, ".") {
		if cur.kind != KindMapping {
			return AbsentValue
		}
		child, ok := cur.mapping[seg]
		if !ok {
			return AbsentValue
		}
		if child.kind == KindSequence {
			return child
		}
		cur = child
	}
	return cur
}

// ToAny rebuilds the encoding/json representation of the value. Absent
// rebuilds as nil.
func (v Value) ToAny() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindMapping:
		m := make(map[string]any, len(v.mapping))
		for k, child := range v.mapping {
			m[k] = child.ToAny()
		}
		return m
	case KindSequence:
		s := make([]any, len(v.sequence))
		for i, child := range v.sequence {
			s[i] = child.ToAny()
		}
		return s
	default:
		return nil
	}
}

// String renders the canonical grouping-key form of the value. Scalars
// render like their JSON encoding except strings, which render bare.
// Mappings and sequences render as compact JSON with sorted keys, so
// structurally equal values always share one grouping key. Absent renders
// as the empty string; callers bucket absent values before grouping.
func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		switch s := v.scalar.(type) {
		case nil:
			return "null"
		case string:
			return s
		case bool:
			return strconv.FormatBool(s)
		case float64:
			return strconv.FormatFloat(s, 'g', -1, 64)
		case json.Number:
			return s.String()
		default:
			return fmt.Sprintf("%v", s)
		}
	case KindMapping, KindSequence:
		b, err := json.Marshal(v.ToAny())
		if err != nil {
			return fmt.Sprintf("%v", v.ToAny())
		}
		return string(b)
	default:
		return ""
	}
}
