package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// ValueKind discriminates the two shapes a collected value can take.
type ValueKind uint8

const (
	// KindScalar holds a single string (text-like inputs, dropdowns, radios).
	KindScalar ValueKind = iota
	// KindSet holds the checked option values of a checkbox group.
	KindSet
)

func (k ValueKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSet:
		return "set"
	default:
		return fmt.Sprintf("ValueKind(%d)", uint8(k))
	}
}

// Value is the tagged union stored per field. The zero Value is an empty
// scalar.
type Value struct {
	kind   ValueKind
	scalar string
	items  []string
}

// Scalar builds a single-string value.
func Scalar(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// Set builds a set value. Duplicates are dropped, first occurrence wins.
func Set(items ...string) Value {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !slices.Contains(out, item) {
			out = append(out, item)
		}
	}
	return Value{kind: KindSet, items: out}
}

// ZeroValue returns the initial value for a field type.
func ZeroValue(t FieldType) Value {
	if t.ValueKind() == KindSet {
		return Set()
	}
	return Scalar("")
}

// Kind reports the union tag.
func (v Value) Kind() ValueKind {
	return v.kind
}

// String returns the scalar content. Sets render as a comma separated list.
func (v Value) String() string {
	if v.kind == KindSet {
		return strings.Join(v.items, ", ")
	}
	return v.scalar
}

// Items returns a copy of the set members; nil for scalars.
func (v Value) Items() []string {
	if v.kind != KindSet {
		return nil
	}
	return slices.Clone(v.items)
}

// Contains reports set membership. Scalars compare by equality, which is what
// radio and dropdown controls need to mark the selected option.
func (v Value) Contains(item string) bool {
	if v.kind == KindSet {
		return slices.Contains(v.items, item)
	}
	return v.scalar == item
}

// Blank reports whether the value counts as "not provided": a whitespace-only
// scalar or an empty set.
func (v Value) Blank() bool {
	if v.kind == KindSet {
		return len(v.items) == 0
	}
	return strings.TrimSpace(v.scalar) == ""
}

// With returns a copy of a set value with item added or removed. Scalars are
// returned unchanged.
func (v Value) With(item string, present bool) Value {
	if v.kind != KindSet {
		return v
	}
	items := slices.Clone(v.items)
	idx := slices.Index(items, item)
	switch {
	case present && idx < 0:
		items = append(items, item)
	case !present && idx >= 0:
		items = slices.Delete(items, idx, idx+1)
	}
	return Value{kind: KindSet, items: items}
}

// Equal compares two values including their kind. Set order is significant.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	if v.kind == KindSet {
		return slices.Equal(v.items, other.items)
	}
	return v.scalar == other.scalar
}

// MarshalJSON encodes scalars as strings and sets as string arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindSet {
		items := v.items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	}
	return json.Marshal(v.scalar)
}

// UnmarshalJSON accepts either a string or an array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Scalar(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("model: value must be a string or string array: %w", err)
	}
	*v = Set(items...)
	return nil
}

// Values maps field ids to their current value.
type Values map[string]Value

// NewValues seeds every field of the form with the zero value of its type.
func NewValues(form FormStructure) Values {
	values := make(Values)
	for _, section := range form.Sections {
		for _, field := range section.Fields {
			values[field.FieldID] = ZeroValue(field.Type)
		}
	}
	return values
}

// Get returns the stored value or the zero value of the field's type.
func (vs Values) Get(field FormField) Value {
	if v, ok := vs[field.FieldID]; ok {
		return v
	}
	return ZeroValue(field.Type)
}

// Clone returns an independent copy.
func (vs Values) Clone() Values {
	if vs == nil {
		return nil
	}
	out := make(Values, len(vs))
	for k, v := range vs {
		if v.kind == KindSet {
			v.items = slices.Clone(v.items)
		}
		out[k] = v
	}
	return out
}

// Payload flattens the map into plain Go values (string or []string), the
// shape handed to submission sinks.
func (vs Values) Payload() map[string]any {
	out := make(map[string]any, len(vs))
	for k, v := range vs {
		if v.kind == KindSet {
			out[k] = v.Items()
			if out[k] == nil {
				out[k] = []string{}
			}
			continue
		}
		out[k] = v.scalar
	}
	return out
}
