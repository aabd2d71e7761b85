package record

import "iter"

// Mutable is a record supporting in-place mutation. Declared attributes
// re-validate their constraint on every write; dynamic attributes are
// untyped. Not safe for concurrent use without external synchronization.
type Mutable struct {
	store *attrStore
}

// New builds a Mutable from ordered (name, value) fields. Declared
// attributes take the supplied value if present, else their default, else
// stay unset; unknown names become dynamic attributes. A supplied value
// violating a declared constraint fails with TYPE_MISMATCH.
//
// schema may be nil, in which case every attribute is dynamic.
func New(schema *Schema, fields ...Field) (*Mutable, error) {
	st, err := newStore(schema, fields)
	if err != nil {
		return nil, err
	}
	return &Mutable{store: st}, nil
}

// MustNew is New that panics on error. Intended for fixtures and examples.
func MustNew(schema *Schema, fields ...Field) *Mutable {
	r, err := New(schema, fields...)
	if err != nil {
		panic(err)
	}
	return r
}

// FromDict builds a Mutable from an ordered dict via the normal validated
// construction path.
func FromDict(schema *Schema, d *Dict) (*Mutable, error) {
	return New(schema, d.Pairs()...)
}

// FromJSON decodes a JSON object and builds a Mutable from it. Malformed
// JSON fails with SERIALIZATION_ERROR; constraint violations fail with
// TYPE_MISMATCH as in New.
func FromJSON(schema *Schema, data []byte) (*Mutable, error) {
	d := NewDict()
	if err := d.UnmarshalJSON(data); err != nil {
		return nil, newSerializationError("", "from_json", err)
	}
	return FromDict(schema, d)
}

// Get returns the attribute value, or ATTRIBUTE_MISSING if it was never set.
func (r *Mutable) Get(name string) (any, error) {
	return r.store.get(name, "get")
}

// GetOr returns the attribute value, or def if the attribute is absent.
func (r *Mutable) GetOr(name string, def any) any {
	v, err := r.store.get(name, "get")
	if err != nil {
		return def
	}
	return v
}

// Set writes an attribute, re-validating a declared constraint if one
// exists. New names become dynamic attributes appended in assignment order.
func (r *Mutable) Set(name string, v any) error {
	return r.store.set(name, v, "set")
}

// Delete removes an attribute; ATTRIBUTE_MISSING if absent.
func (r *Mutable) Delete(name string) error {
	return r.store.delete(name, "delete")
}

// Has reports whether the attribute is currently set.
func (r *Mutable) Has(name string) bool {
	return r.store.has(name)
}

// Len returns the number of currently-set attributes.
func (r *Mutable) Len() int {
	return r.store.len()
}

// All yields (name, value) pairs in store order. Each call starts a fresh
// sequence reflecting current contents.
func (r *Mutable) All() iter.Seq2[string, any] {
	return r.store.all()
}

// Update applies Set for each field in order, validating each
// independently. Updates are NOT transactional: if a field fails, updates
// applied before it remain in place and the error is returned.
func (r *Mutable) Update(fields ...Field) error {
	for _, f := range fields {
		if err := r.store.set(f.Name, f.Value, "update"); err != nil {
			return err
		}
	}
	return nil
}

// UpdateDefaults sets only attributes that are not yet set, leaving
// existing values untouched.
func (r *Mutable) UpdateDefaults(fields ...Field) error {
	for _, f := range fields {
		if r.store.has(f.Name) {
			continue
		}
		if err := r.store.set(f.Name, f.Value, "update_defaults"); err != nil {
			return err
		}
	}
	return nil
}

// Copy returns an independent Mutable with the same contents. The copy is
// shallow: nested mutable values are shared by reference.
func (r *Mutable) Copy() *Mutable {
	return &Mutable{store: r.store.clone()}
}

// Freeze returns an Immutable snapshot with independent storage. The
// original stays mutable.
func (r *Mutable) Freeze() *Immutable {
	st := r.store.clone()
	st.frozen = true
	return &Immutable{store: st}
}

// ToDict returns an ordered mapping of all attributes except the excluded
// names.
func (r *Mutable) ToDict(exclude ...string) *Dict {
	return storeToDict(r.store, exclude)
}

// ToJSON serializes the ToDict projection; values the serializer cannot
// represent fail with SERIALIZATION_ERROR.
func (r *Mutable) ToJSON(exclude ...string) ([]byte, error) {
	return storeToJSON(r.store, exclude)
}

// Equal reports structural equality: same keys, equal values.
func (r *Mutable) Equal(other Record) bool {
	return r.store.equalTo(other)
}

// EqualKeys compares only the named attributes.
func (r *Mutable) EqualKeys(other Record, keys ...string) bool {
	return storeEqualKeys(r.store, other, keys)
}

// Compare orders two records over their name-sorted (name, value) pairs.
// Returns TYPE_MISMATCH if a compared value is not orderable.
func (r *Mutable) Compare(other Record) (int, error) {
	return compareRecords(r.store, other)
}

// Less reports whether r orders before other.
func (r *Mutable) Less(other Record) (bool, error) {
	c, err := r.Compare(other)
	return c < 0, err
}

// Merge returns a new Mutable holding r's attributes overlaid with other's,
// other winning on shared names. r's schema carries over, so declared
// constraints still apply to the merged values.
func (r *Mutable) Merge(other Record) (*Mutable, error) {
	return New(r.store.schema, mergedFields(r.store, other)...)
}

// Without returns a new Mutable holding r's attributes minus the named
// ones.
func (r *Mutable) Without(names ...string) (*Mutable, error) {
	return New(r.store.schema, remainingFields(r.store, names)...)
}

// FilterByType returns the attributes whose values classify as t.
func (r *Mutable) FilterByType(t Type) *Dict {
	return storeFilterByType(r.store, t)
}

func (r *Mutable) String() string {
	return storeString("Mutable", r.store)
}
