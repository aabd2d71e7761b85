package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Record is the read-only capability surface shared by Mutable and
// Immutable. Equality and ordering are defined across both variants.
type Record interface {
	Get(name string) (any, error)
	GetOr(name string, def any) any
	Has(name string) bool
	Len() int
	All() iter.Seq2[string, any]
	ToDict(exclude ...string) *Dict
	ToJSON(exclude ...string) ([]byte, error)
	Equal(other Record) bool
	Compare(other Record) (int, error)
}

var (
	_ Record = (*Mutable)(nil)
	_ Record = (*Immutable)(nil)
)

// storeToDict projects the store onto an ordered Dict, skipping excluded
// names. Values pass through as-is; nested records are not expanded.
func storeToDict(st *attrStore, exclude []string) *Dict {
	d := NewDict()
	for _, f := range st.pairs() {
		if slices.Contains(exclude, f.Name) {
			continue
		}
		d.Set(f.Name, f.Value)
	}
	return d
}

// storeToJSON serializes the dict projection. The intermediate value is
// exactly the ToDict result, so any value json cannot represent surfaces
// as SERIALIZATION_ERROR.
func storeToJSON(st *attrStore, exclude []string) ([]byte, error) {
	b, err := json.Marshal(storeToDict(st, exclude))
	if err != nil {
		var re *Error
		if errors.As(err, &re) {
			return nil, re
		}
		return nil, newSerializationError("", "to_json", err)
	}
	return b, nil
}

// storeFilterByType returns the attributes whose values classify as t.
func storeFilterByType(st *attrStore, t Type) *Dict {
	d := NewDict()
	for _, f := range st.pairs() {
		if TypeOf(f.Value) == t {
			d.Set(f.Name, f.Value)
		}
	}
	return d
}

// storeEqualKeys compares only the named attributes; a key absent from
// both sides counts as equal.
func storeEqualKeys(st *attrStore, other Record, keys []string) bool {
	if other == nil {
		return false
	}
	for _, k := range keys {
		ok := st.has(k)
		if ok != other.Has(k) {
			return false
		}
		if !ok {
			continue
		}
		av, _ := st.get(k, "equal_keys")
		bv, _ := other.Get(k)
		if !valuesEqual(av, bv) {
			return false
		}
	}
	return true
}

// mergedFields returns st's pairs overlaid with other's, other winning on
// shared names, new names appended in other's order.
func mergedFields(st *attrStore, other Record) []Field {
	fields := st.pairs()
	for name, value := range other.All() {
		fields = append(fields, Field{Name: name, Value: value})
	}
	return fields
}

// remainingFields returns st's pairs minus the named attributes.
func remainingFields(st *attrStore, names []string) []Field {
	var fields []Field
	for _, f := range st.pairs() {
		if slices.Contains(names, f.Name) {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// storeString renders a record as "Kind{name: value, ...}" in store order.
func storeString(kind string, st *attrStore) string {
	var b strings.Builder
	b.WriteString(kind)
	b.WriteByte('{')
	for i, f := range st.pairs() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", f.Name, f.Value)
	}
	b.WriteByte('}')
	return b.String()
}
