package record

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Field is a (name, value) pair used for record construction and updates.
type Field struct {
	Name  string
	Value any
}

// F is a shorthand Field constructor for ergonomic call sites.
//
// Example: New(schema, F("name", "Alice"), F("age", 25))
func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// Decl is one declared attribute: a name, an optional type constraint, and
// an optional default. Declarations are fixed once made.
type Decl struct {
	Name       string
	Constraint Constraint
	Default    any
	HasDefault bool
}

// Schema holds the ordered attribute declarations for a record class.
//
// A Schema must be fully declared before records are built from it;
// records hold a reference to their schema, so declaring new attributes
// after construction is caller misuse. A nil *Schema is valid and means
// every attribute is dynamic.
type Schema struct {
	decls []Decl
	index map[string]int
}

// NewSchema creates an empty schema.
func NewSchema() *Schema {
	return &Schema{index: make(map[string]int)}
}

// DeclOption configures a declaration.
type DeclOption func(*Decl)

// WithDefault sets the default value used when construction supplies no
// value for the attribute. The default is validated against the constraint
// at declaration time.
func WithDefault(v any) DeclOption {
	return func(d *Decl) {
		d.Default = v
		d.HasDefault = true
	}
}

// Declare registers an attribute. Names are NFC-normalized so dot-style and
// key-style access agree on Unicode names. Declaring the same name twice is
// an error, as is a default that violates the constraint.
func (s *Schema) Declare(name string, c Constraint, opts ...DeclOption) error {
	name = norm.NFC.String(name)
	if _, ok := s.index[name]; ok {
		return fmt.Errorf("attribute %q already declared", name)
	}

	d := Decl{Name: name, Constraint: c}
	for _, opt := range opts {
		opt(&d)
	}
	if d.HasDefault {
		d.Default = normalizeValue(d.Default)
		if !c.Allows(d.Default) {
			return newTypeMismatch(name, "declare", c, TypeOf(d.Default))
		}
	}

	s.index[name] = len(s.decls)
	s.decls = append(s.decls, d)
	return nil
}

// MustDeclare is Declare that panics on error, returning the schema for
// chained declaration at package init or in tests.
func (s *Schema) MustDeclare(name string, c Constraint, opts ...DeclOption) *Schema {
	if err := s.Declare(name, c, opts...); err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the declaration for a (normalized) name.
func (s *Schema) Lookup(name string) (Decl, bool) {
	if s == nil {
		return Decl{}, false
	}
	i, ok := s.index[norm.NFC.String(name)]
	if !ok {
		return Decl{}, false
	}
	return s.decls[i], true
}

// Decls returns a copy of the declarations in declaration order.
func (s *Schema) Decls() []Decl {
	if s == nil {
		return nil
	}
	out := make([]Decl, len(s.decls))
	copy(out, s.decls)
	return out
}

// Len returns the number of declared attributes.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.decls)
}
