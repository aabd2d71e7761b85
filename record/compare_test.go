package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareOrdersByNameThenValue(t *testing.T) {
	a := MustNew(nil, F("x", 1))
	b := MustNew(nil, F("x", 2))
	c := MustNew(nil, F("y", 1))

	cmp, err := a.Compare(b)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = b.Compare(a)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	// Names order before values: "x" < "y".
	cmp, err = b.Compare(c)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = a.Compare(a.Copy())
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestCompareIgnoresInsertionOrder(t *testing.T) {
	// The projection sorts pairs by name, so insertion order is irrelevant.
	a := MustNew(nil, F("b", 2), F("a", 1))
	b := MustNew(nil, F("a", 1), F("b", 2))

	cmp, err := a.Compare(b)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestComparePrefixOrdersFirst(t *testing.T) {
	shorter := MustNew(nil, F("a", 1))
	longer := MustNew(nil, F("a", 1), F("b", 2))

	less, err := shorter.Less(longer)
	require.NoError(t, err)
	assert.True(t, less)
}

func TestCompareValueKinds(t *testing.T) {
	// Numeric comparison crosses int/float.
	a := MustNew(nil, F("n", 2))
	b := MustNew(nil, F("n", 2.5))
	cmp, err := a.Compare(b)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	// Bools: false < true.
	a = MustNew(nil, F("f", false))
	b = MustNew(nil, F("f", true))
	cmp, err = a.Compare(b)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	// Strings.
	a = MustNew(nil, F("s", "apple"))
	b = MustNew(nil, F("s", "banana"))
	cmp, err = a.Compare(b)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)
}

func TestCompareLargeIntegers(t *testing.T) {
	// Adjacent int64 values above 2^53 collapse to the same float64, so
	// integer comparison must stay in the integer domain to agree with
	// equality.
	lo := MustNew(nil, F("n", int64(1)<<60))
	hi := MustNew(nil, F("n", int64(1)<<60+1))

	cmp, err := lo.Compare(hi)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = hi.Compare(lo)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	assert.False(t, lo.Equal(hi))

	// Mixed int/float stays exact at the same magnitude: float64(2^60) is
	// exactly 2^60, one below hi.
	f := MustNew(nil, F("n", float64(int64(1)<<60)))
	cmp, err = hi.Compare(f)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	cmp, err = lo.Compare(f)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestCompareUnorderable(t *testing.T) {
	a := MustNew(nil, F("v", []any{1}))
	b := MustNew(nil, F("v", []any{2}))

	_, err := a.Compare(b)
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))

	// Mismatched kinds under the same name are unorderable too.
	a = MustNew(nil, F("v", "str"))
	b = MustNew(nil, F("v", 1))
	_, err = a.Compare(b)
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))

	// Works across variants.
	_, err = a.Compare(MustNewImmutable(nil, F("v", 1)))
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))
}
