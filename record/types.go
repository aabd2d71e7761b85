package record

import (
	"math"
	"reflect"
	"slices"
	"strings"
)

// Type classifies an attribute value for constraint checking.
// The set is deliberately small: values outside it classify as TypeOther
// and can only be carried by unconstrained (dynamic or any-typed) slots.
type Type string

const (
	TypeString Type = "string"
	TypeInt    Type = "int"
	TypeFloat  Type = "float"
	TypeBool   Type = "bool"
	TypeList   Type = "list"
	TypeMap    Type = "map"
	TypeNull   Type = "null"
	TypeAny    Type = "any"

	// TypeOther classifies values outside the core set (structs, channels,
	// time.Time, ...). It is a classification result, not a declarable
	// constraint member; use TypeAny to admit such values.
	TypeOther Type = "other"
)

// validTypes lists the type names accepted in constraint declarations.
var validTypes = []Type{
	TypeString, TypeInt, TypeFloat, TypeBool, TypeList, TypeMap, TypeNull, TypeAny,
}

// ParseType maps a type name to a Type. Used by schema file loading.
func ParseType(name string) (Type, bool) {
	t := Type(name)
	if slices.Contains(validTypes, t) {
		return t, true
	}
	return "", false
}

// TypeOf classifies a value. Classification happens after normalization,
// so all integer widths report TypeInt and both float widths TypeFloat.
func TypeOf(v any) Type {
	switch v.(type) {
	case nil:
		return TypeNull
	case string:
		return TypeString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInt
	case float32, float64:
		return TypeFloat
	case bool:
		return TypeBool
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return TypeList
	case reflect.Map:
		return TypeMap
	default:
		return TypeOther
	}
}

// normalizeValue collapses numeric widths so that structural equality and
// JSON round-trips are deterministic: signed and unsigned integers become
// int64, float32 becomes float64. Unsigned values above MaxInt64 pass
// through as-is rather than wrapping. All other values pass through
// untouched (storage is shallow; nested mutable values are shared by
// reference).
func normalizeValue(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		if uint64(n) <= math.MaxInt64 {
			return int64(n)
		}
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		if n <= math.MaxInt64 {
			return int64(n)
		}
	case float32:
		return float64(n)
	}
	return v
}

// Constraint is a union of acceptable Types for a declared attribute.
// An empty constraint admits every value, as does one containing TypeAny.
type Constraint []Type

// T builds a constraint from one or more types.
//
// Example: T(TypeString), T(TypeInt, TypeFloat).
func T(types ...Type) Constraint {
	return Constraint(types)
}

// Nullable builds a constraint that additionally admits null, modeling
// optional fields.
func Nullable(types ...Type) Constraint {
	return append(Constraint(types), TypeNull)
}

// Allows reports whether a (normalized) value satisfies the constraint.
func (c Constraint) Allows(v any) bool {
	if len(c) == 0 || slices.Contains(c, TypeAny) {
		return true
	}
	return slices.Contains(c, TypeOf(v))
}

// String renders the constraint as a pipe-separated union, e.g. "string|null".
func (c Constraint) String() string {
	if len(c) == 0 {
		return string(TypeAny)
	}
	parts := make([]string, len(c))
	for i, t := range c {
		parts[i] = string(t)
	}
	return strings.Join(parts, "|")
}
