package nistitl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubFieldScalar(t *testing.T) {
	sf := NewSubField(DefaultSubFieldMask)
	require.NoError(t, sf.SetValue("hello"))
	v, ok := sf.Value()
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
	assert.Equal(t, 0, sf.Len())
	assert.Equal(t, []byte("hello"), sf.serialize())
}

func TestSubFieldItems(t *testing.T) {
	sf := NewSubField(DefaultSubFieldMask)
	require.NoError(t, sf.SetItems([]string{"a", "b", "c"}))
	assert.Equal(t, 3, sf.Len())
	it, err := sf.Item(1)
	require.NoError(t, err)
	assert.Equal(t, "b", it)
	assert.Equal(t, "a\x1fb\x1fc", string(sf.serialize()))
}

func TestSubFieldMaskEnforcement(t *testing.T) {
	scalarOnly := NewSubField(SubFieldS)
	assert.Error(t, scalarOnly.SetItems([]string{"x"}))

	itemsOnly := NewSubField(SubFieldI)
	assert.Error(t, itemsOnly.SetValue("x"))
	require.NoError(t, itemsOnly.AppendItem("x"))
	assert.Equal(t, 1, itemsOnly.Len())
}

func TestSubFieldValueItemsMutuallyExclusive(t *testing.T) {
	sf := NewSubField(DefaultSubFieldMask)
	require.NoError(t, sf.SetValue("x"))
	require.NoError(t, sf.SetItems([]string{"a"}))
	_, hasScalar := sf.Value()
	assert.False(t, hasScalar)
	assert.Equal(t, 1, sf.Len())
}

func TestSubFieldEmptySerialize(t *testing.T) {
	sf := NewSubField(DefaultSubFieldMask)
	assert.Empty(t, sf.serialize())
}
