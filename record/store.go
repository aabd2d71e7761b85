package record

import (
	"iter"
	"reflect"

	"golang.org/x/text/unicode/norm"
)

// attrStore is the single canonical attribute container behind both record
// variants. It keeps insertion order: declared attributes first in
// declaration order, then dynamic attributes in assignment order.
type attrStore struct {
	schema *Schema
	names  []string
	values map[string]any
	frozen bool
}

// newStore initializes a store from ordered construction fields.
//
// Declared attributes take the supplied value if present, else the default,
// else stay unset. Supplied values for undeclared names become dynamic,
// untyped attributes. A duplicated field name keeps its first position with
// the last value winning.
func newStore(schema *Schema, fields []Field) (*attrStore, error) {
	st := &attrStore{
		schema: schema,
		values: make(map[string]any, len(fields)+schema.Len()),
	}

	supplied := make(map[string]any, len(fields))
	var order []string
	for _, f := range fields {
		name := norm.NFC.String(f.Name)
		if _, seen := supplied[name]; !seen {
			order = append(order, name)
		}
		supplied[name] = f.Value
	}

	for _, d := range schema.Decls() {
		v, ok := supplied[d.Name]
		switch {
		case ok:
			v = normalizeValue(v)
			if !d.Constraint.Allows(v) {
				return nil, newTypeMismatch(d.Name, "initialize", d.Constraint, TypeOf(v))
			}
			st.names = append(st.names, d.Name)
			st.values[d.Name] = v
		case d.HasDefault:
			st.names = append(st.names, d.Name)
			st.values[d.Name] = d.Default
		}
	}

	for _, name := range order {
		if _, declared := schema.Lookup(name); declared {
			continue
		}
		st.names = append(st.names, name)
		st.values[name] = normalizeValue(supplied[name])
	}

	return st, nil
}

func (st *attrStore) get(name, op string) (any, error) {
	name = norm.NFC.String(name)
	v, ok := st.values[name]
	if !ok {
		return nil, newAttributeMissing(name, op)
	}
	return v, nil
}

// validate normalizes a value and checks it against a declared constraint
// without applying it. Used by set and by atomic batch updates.
func (st *attrStore) validate(name string, v any, op string) (string, any, error) {
	name = norm.NFC.String(name)
	v = normalizeValue(v)
	if d, ok := st.schema.Lookup(name); ok && !d.Constraint.Allows(v) {
		return "", nil, newTypeMismatch(name, op, d.Constraint, TypeOf(v))
	}
	return name, v, nil
}

func (st *attrStore) set(name string, v any, op string) error {
	if st.frozen {
		return newImmutableViolation(norm.NFC.String(name), op)
	}
	name, v, err := st.validate(name, v, op)
	if err != nil {
		return err
	}
	if _, ok := st.values[name]; !ok {
		st.names = append(st.names, name)
	}
	st.values[name] = v
	return nil
}

func (st *attrStore) delete(name, op string) error {
	name = norm.NFC.String(name)
	if st.frozen {
		return newImmutableViolation(name, op)
	}
	if _, ok := st.values[name]; !ok {
		return newAttributeMissing(name, op)
	}
	delete(st.values, name)
	for i, n := range st.names {
		if n == name {
			st.names = append(st.names[:i], st.names[i+1:]...)
			break
		}
	}
	return nil
}

func (st *attrStore) has(name string) bool {
	_, ok := st.values[norm.NFC.String(name)]
	return ok
}

func (st *attrStore) len() int {
	return len(st.names)
}

// pairs returns an ordered snapshot of the store contents.
func (st *attrStore) pairs() []Field {
	out := make([]Field, 0, len(st.names))
	for _, n := range st.names {
		out = append(out, Field{Name: n, Value: st.values[n]})
	}
	return out
}

// all yields (name, value) pairs in store order. The sequence is a live
// view over the store at iteration time, not a frozen snapshot.
func (st *attrStore) all() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, n := range st.names {
			if !yield(n, st.values[n]) {
				return
			}
		}
	}
}

// clone produces an independent, unfrozen store with the same contents.
// Values are copied shallowly; nested mutable values stay shared.
func (st *attrStore) clone() *attrStore {
	out := &attrStore{
		schema: st.schema,
		names:  make([]string, len(st.names)),
		values: make(map[string]any, len(st.values)),
	}
	copy(out.names, st.names)
	for k, v := range st.values {
		out.values[k] = v
	}
	return out
}

// equalTo reports structural equality against any record's read surface:
// same keys, equal values, order-insensitive.
func (st *attrStore) equalTo(other Record) bool {
	if other == nil || st.len() != other.Len() {
		return false
	}
	for _, n := range st.names {
		ov, err := other.Get(n)
		if err != nil {
			return false
		}
		if !valuesEqual(st.values[n], ov) {
			return false
		}
	}
	return true
}

// valuesEqual is the single definition of value equality used everywhere.
// Deep comparison; values were normalized on write, so numeric widths
// never disagree.
func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
