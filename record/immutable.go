package record

import "iter"

// Immutable is a record whose store is frozen after construction. It is
// an independent type, not a Mutable wrapper: it owns its own copy of the
// data, so no external mutation path exists. Every mutating entry point
// fails with IMMUTABLE_VIOLATION and leaves the record unchanged;
// "modifications" go through WithValue and WithUpdates, which produce new
// instances. Immutable records are safe to share across concurrent readers.
type Immutable struct {
	store *attrStore
}

// NewImmutable builds a frozen record. Construction validates exactly as
// New; the store is frozen afterwards.
func NewImmutable(schema *Schema, fields ...Field) (*Immutable, error) {
	st, err := newStore(schema, fields)
	if err != nil {
		return nil, err
	}
	st.frozen = true
	return &Immutable{store: st}, nil
}

// MustNewImmutable is NewImmutable that panics on error.
func MustNewImmutable(schema *Schema, fields ...Field) *Immutable {
	r, err := NewImmutable(schema, fields...)
	if err != nil {
		panic(err)
	}
	return r
}

// ImmutableFromDict builds a frozen record from an ordered dict.
func ImmutableFromDict(schema *Schema, d *Dict) (*Immutable, error) {
	return NewImmutable(schema, d.Pairs()...)
}

// ImmutableFromJSON decodes a JSON object into a frozen record.
func ImmutableFromJSON(schema *Schema, data []byte) (*Immutable, error) {
	d := NewDict()
	if err := d.UnmarshalJSON(data); err != nil {
		return nil, newSerializationError("", "from_json", err)
	}
	return ImmutableFromDict(schema, d)
}

// Get returns the attribute value, or ATTRIBUTE_MISSING if it was never set.
func (r *Immutable) Get(name string) (any, error) {
	return r.store.get(name, "get")
}

// GetOr returns the attribute value, or def if the attribute is absent.
func (r *Immutable) GetOr(name string, def any) any {
	v, err := r.store.get(name, "get")
	if err != nil {
		return def
	}
	return v
}

// Set always fails with IMMUTABLE_VIOLATION naming the attribute.
func (r *Immutable) Set(name string, v any) error {
	return r.store.set(name, v, "set")
}

// Delete always fails with IMMUTABLE_VIOLATION naming the attribute.
func (r *Immutable) Delete(name string) error {
	return r.store.delete(name, "delete")
}

// Update always fails with IMMUTABLE_VIOLATION, naming the first field
// when one is given. Use WithUpdates to derive a modified instance.
func (r *Immutable) Update(fields ...Field) error {
	if len(fields) == 0 {
		return newImmutableViolation("", "update")
	}
	return r.store.set(fields[0].Name, fields[0].Value, "update")
}

// Has reports whether the attribute is currently set.
func (r *Immutable) Has(name string) bool {
	return r.store.has(name)
}

// Len returns the number of currently-set attributes.
func (r *Immutable) Len() int {
	return r.store.len()
}

// All yields (name, value) pairs in store order.
func (r *Immutable) All() iter.Seq2[string, any] {
	return r.store.all()
}

// WithValue returns a new Immutable whose store is a full copy of r with
// one attribute replaced (or added). r is untouched. Type validation
// applies exactly as on a mutable set.
func (r *Immutable) WithValue(name string, v any) (*Immutable, error) {
	st := r.store.clone()
	if err := st.set(name, v, "with_value"); err != nil {
		return nil, err
	}
	st.frozen = true
	return &Immutable{store: st}, nil
}

// WithUpdates returns a new Immutable reflecting every requested change.
// The batch is atomic: all changes are validated before any is applied, so
// on error the caller gets nil and r is untouched — no partially-updated
// instance is ever produced.
func (r *Immutable) WithUpdates(fields ...Field) (*Immutable, error) {
	for _, f := range fields {
		if _, _, err := r.store.validate(f.Name, f.Value, "with_updates"); err != nil {
			return nil, err
		}
	}
	st := r.store.clone()
	for _, f := range fields {
		if err := st.set(f.Name, f.Value, "with_updates"); err != nil {
			return nil, err
		}
	}
	st.frozen = true
	return &Immutable{store: st}, nil
}

// Copy returns a new frozen Immutable with independent storage.
func (r *Immutable) Copy() *Immutable {
	st := r.store.clone()
	st.frozen = true
	return &Immutable{store: st}
}

// Thaw returns a Mutable with independent storage — the explicit escape
// hatch back into the mutable world. r itself stays frozen.
func (r *Immutable) Thaw() *Mutable {
	return &Mutable{store: r.store.clone()}
}

// ToDict returns an ordered mapping of all attributes except the excluded
// names.
func (r *Immutable) ToDict(exclude ...string) *Dict {
	return storeToDict(r.store, exclude)
}

// ToJSON serializes the ToDict projection.
func (r *Immutable) ToJSON(exclude ...string) ([]byte, error) {
	return storeToJSON(r.store, exclude)
}

// Equal reports structural equality: same keys, equal values.
func (r *Immutable) Equal(other Record) bool {
	return r.store.equalTo(other)
}

// EqualKeys compares only the named attributes.
func (r *Immutable) EqualKeys(other Record, keys ...string) bool {
	return storeEqualKeys(r.store, other, keys)
}

// Compare orders two records over their name-sorted (name, value) pairs.
func (r *Immutable) Compare(other Record) (int, error) {
	return compareRecords(r.store, other)
}

// Less reports whether r orders before other.
func (r *Immutable) Less(other Record) (bool, error) {
	c, err := r.Compare(other)
	return c < 0, err
}

// Merge returns a new Immutable holding r's attributes overlaid with
// other's, other winning on shared names.
func (r *Immutable) Merge(other Record) (*Immutable, error) {
	return NewImmutable(r.store.schema, mergedFields(r.store, other)...)
}

// Without returns a new Immutable holding r's attributes minus the named
// ones.
func (r *Immutable) Without(names ...string) (*Immutable, error) {
	return NewImmutable(r.store.schema, remainingFields(r.store, names)...)
}

// FilterByType returns the attributes whose values classify as t.
func (r *Immutable) FilterByType(t Type) *Dict {
	return storeFilterByType(r.store, t)
}

func (r *Immutable) String() string {
	return storeString("Immutable", r.store)
}
