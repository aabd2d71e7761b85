package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointSchema(t *testing.T) *Schema {
	t.Helper()
	return NewSchema().
		MustDeclare("x", T(TypeInt)).
		MustDeclare("y", T(TypeInt))
}

func TestImmutableConstruction(t *testing.T) {
	s := pointSchema(t)

	r, err := NewImmutable(s, F("x", 10), F("y", 20))
	require.NoError(t, err)
	assert.Equal(t, int64(10), r.GetOr("x", nil))
	assert.Equal(t, int64(20), r.GetOr("y", nil))

	_, err = NewImmutable(s, F("x", "ten"))
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))
}

func TestImmutableRejectsMutation(t *testing.T) {
	r := MustNewImmutable(pointSchema(t), F("x", 10), F("y", 20))
	before := r.ToDict()

	err := r.Set("x", 15)
	require.Error(t, err)
	assert.True(t, IsImmutableViolation(err))

	var re *Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "x", re.Attr)
	assert.Equal(t, "set", re.Op)

	err = r.Delete("y")
	require.Error(t, err)
	assert.True(t, IsImmutableViolation(err))

	err = r.Update(F("x", 1), F("y", 2))
	require.Error(t, err)
	assert.True(t, IsImmutableViolation(err))

	// An empty batch is still a mutation attempt on a frozen record.
	err = r.Update()
	require.Error(t, err)
	assert.True(t, IsImmutableViolation(err))

	// Strong exception safety: the store is unchanged after every failed
	// mutation.
	after := r.ToDict()
	assert.Equal(t, before.Pairs(), after.Pairs())
}

func TestWithValue(t *testing.T) {
	r := MustNewImmutable(pointSchema(t), F("x", 10), F("y", 20))

	r2, err := r.WithValue("x", 15)
	require.NoError(t, err)
	assert.Equal(t, int64(15), r2.GetOr("x", nil))
	assert.Equal(t, int64(10), r.GetOr("x", nil)) // original untouched

	// Validation applies exactly as on a mutable set.
	_, err = r.WithValue("x", "fifteen")
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))

	// The derived instance is frozen too.
	err = r2.Set("x", 0)
	assert.True(t, IsImmutableViolation(err))
}

func TestWithUpdatesAtomicity(t *testing.T) {
	r := MustNewImmutable(pointSchema(t), F("x", 10), F("y", 20))

	// One valid and one invalid change: nothing is applied.
	r2, err := r.WithUpdates(F("x", 11), F("y", "twenty"))
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))
	assert.Nil(t, r2)
	assert.Equal(t, int64(10), r.GetOr("x", nil))
	assert.Equal(t, int64(20), r.GetOr("y", nil))

	r2, err = r.WithUpdates(F("x", 11), F("y", 21))
	require.NoError(t, err)
	assert.Equal(t, int64(11), r2.GetOr("x", nil))
	assert.Equal(t, int64(21), r2.GetOr("y", nil))
	assert.Equal(t, int64(10), r.GetOr("x", nil))
}

func TestImmutableCopyAndThaw(t *testing.T) {
	r := MustNewImmutable(pointSchema(t), F("x", 10), F("y", 20))

	c := r.Copy()
	assert.True(t, r.Equal(c))
	assert.True(t, IsImmutableViolation(c.Set("x", 1)))

	m := r.Thaw()
	assert.True(t, r.Equal(m))
	require.NoError(t, m.Set("x", 99))
	assert.Equal(t, int64(10), r.GetOr("x", nil)) // independent storage
}

func TestFreezeSnapshot(t *testing.T) {
	m := MustNew(nil, F("a", 1))
	frozen := m.Freeze()

	// The original keeps mutating; the snapshot does not follow.
	require.NoError(t, m.Set("a", 2))
	assert.Equal(t, int64(1), frozen.GetOr("a", nil))
}

func TestImmutableDerivedViews(t *testing.T) {
	r := MustNewImmutable(nil, F("x", 1), F("y", "s"))

	m, err := r.Merge(MustNewImmutable(nil, F("z", 3)))
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())
	assert.True(t, IsImmutableViolation(m.Set("w", 0)))

	w, err := r.Without("y")
	require.NoError(t, err)
	assert.False(t, w.Has("y"))

	assert.Equal(t, []string{"x"}, r.FilterByType(TypeInt).Keys())
	assert.Equal(t, "Immutable{x: 1, y: s}", r.String())
}
