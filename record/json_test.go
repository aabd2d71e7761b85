package record

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSONGolden(t *testing.T) {
	s := NewSchema().
		MustDeclare("name", T(TypeString)).
		MustDeclare("age", T(TypeInt)).
		MustDeclare("active", T(TypeBool), WithDefault(true))

	r := MustNew(s, F("name", "Alice"), F("age", 25), F("tags", []any{"go", "json"}))

	data, err := r.ToJSON()
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "user", data)
}

func TestToJSONExclude(t *testing.T) {
	r := MustNew(nil, F("id", 1), F("secret", "hunter2"), F("name", "x"))

	data, err := r.ToJSON("secret")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"name":"x"}`, string(data))
}

func TestToJSONUnrepresentable(t *testing.T) {
	r := MustNew(nil, F("ch", make(chan int)))

	_, err := r.ToJSON()
	require.Error(t, err)
	assert.True(t, IsSerializationError(err))
}

func TestFromJSONRoundTrip(t *testing.T) {
	s := NewSchema().
		MustDeclare("name", T(TypeString)).
		MustDeclare("age", T(TypeInt))

	orig := MustNew(s, F("name", "Alice"), F("age", 25), F("score", 99.5))

	data, err := orig.ToJSON()
	require.NoError(t, err)

	back, err := FromJSON(s, data)
	require.NoError(t, err)
	assert.True(t, orig.Equal(back))

	// Key order survives the round trip.
	var origNames, backNames []string
	for name := range orig.All() {
		origNames = append(origNames, name)
	}
	for name := range back.All() {
		backNames = append(backNames, name)
	}
	assert.Equal(t, origNames, backNames)
}

func TestFromJSONValidates(t *testing.T) {
	s := NewSchema().MustDeclare("age", T(TypeInt))

	_, err := FromJSON(s, []byte(`{"age":"old"}`))
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))
}

func TestFromJSONMalformed(t *testing.T) {
	_, err := FromJSON(nil, []byte(`{"age":`))
	require.Error(t, err)
	assert.True(t, IsSerializationError(err))

	_, err = FromJSON(nil, []byte(`[1,2]`))
	require.Error(t, err)
	assert.True(t, IsSerializationError(err))
}

func TestFromDict(t *testing.T) {
	d := NewDict()
	d.Set("b", 2)
	d.Set("a", 1)

	r, err := FromDict(nil, d)
	require.NoError(t, err)
	assert.Equal(t, int64(2), r.GetOr("b", nil))

	var names []string
	for name := range r.All() {
		names = append(names, name)
	}
	assert.Equal(t, []string{"b", "a"}, names)
}

func TestImmutableFromJSON(t *testing.T) {
	r, err := ImmutableFromJSON(nil, []byte(`{"x":1}`))
	require.NoError(t, err)
	assert.True(t, IsImmutableViolation(r.Set("x", 2)))
}
