package nistitl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAsciiRecordType1Defaults(t *testing.T) {
	opts := DefaultOptions()
	r1, err := NewAsciiRecord(1, true, &opts)
	require.NoError(t, err)

	for _, tc := range []struct {
		tag   int
		alias string
	}{
		{1, "LEN"}, {2, "VER"}, {3, "CNT"}, {4, "TOT"}, {5, "DAT"},
		{7, "DAI"}, {8, "ORI"}, {9, "TCN"}, {11, "NSR"}, {12, "NTR"},
	} {
		f, err := r1.FieldByTag(tc.tag)
		require.NoError(t, err, "tag %d", tc.tag)
		assert.Equal(t, tc.alias, f.Alias)
	}
	ver, _ := r1.FieldByTag(2)
	v, _ := ver.Scalar()
	assert.Equal(t, DefaultVersion, v)
}

func TestNewAsciiRecordNonType1Defaults(t *testing.T) {
	opts := DefaultOptions()
	r2, err := NewAsciiRecord(2, true, &opts)
	require.NoError(t, err)
	assert.Equal(t, 2, len(r2.fields))
	idc, err := r2.FieldByTag(2)
	require.NoError(t, err)
	assert.Equal(t, "IDC", idc.Alias)
}

func TestAddFieldDuplicateTag(t *testing.T) {
	opts := DefaultOptions()
	r2, err := NewAsciiRecord(2, false, &opts)
	require.NoError(t, err)
	f1 := NewField(2, 5, "", DefaultFieldMask)
	require.NoError(t, f1.SetScalar("a"))
	require.NoError(t, r2.AddField(f1))

	f2 := NewField(2, 5, "", DefaultFieldMask)
	require.NoError(t, f2.SetScalar("b"))
	err = r2.AddField(f2)
	require.Error(t, err)
	kind, _ := KindOf(err)
	assert.Equal(t, BadTagDuplicate, kind)
}

func TestAddFieldDuplicateAlias(t *testing.T) {
	opts := DefaultOptions()
	r2, err := NewAsciiRecord(2, false, &opts)
	require.NoError(t, err)
	f1 := NewField(2, 5, "FOO", DefaultFieldMask)
	require.NoError(t, f1.SetScalar("a"))
	require.NoError(t, r2.AddField(f1))

	f2 := NewField(2, 6, "FOO", DefaultFieldMask)
	require.NoError(t, f2.SetScalar("b"))
	err = r2.AddField(f2)
	require.Error(t, err)
	kind, _ := KindOf(err)
	assert.Equal(t, BadAliasDuplicate, kind)
}

func TestAddFieldWrongRecordNumber(t *testing.T) {
	opts := DefaultOptions()
	r2, err := NewAsciiRecord(2, false, &opts)
	require.NoError(t, err)
	f := NewField(9, 5, "", DefaultFieldMask)
	require.NoError(t, f.SetScalar("a"))
	err = r2.AddField(f)
	require.Error(t, err)
	kind, _ := KindOf(err)
	assert.Equal(t, BadRecordNumber, kind)
}

func TestAttributeStyleAccess(t *testing.T) {
	opts := DefaultOptions()
	r2, err := NewAsciiRecord(2, true, &opts)
	require.NoError(t, err)

	require.NoError(t, r2.SetByAlias("IDC", "3"))
	v, err := r2.ByAlias("IDC")
	require.NoError(t, err)
	assert.Equal(t, ValueInt, v.Kind)
	assert.Equal(t, 3, v.Int)

	_, err = r2.ByAlias("NOPE")
	require.Error(t, err)
	kind, _ := KindOf(err)
	assert.Equal(t, UnknownAttribute, kind)
}

func TestAutosortOrdersByTag(t *testing.T) {
	opts := DefaultOptions()
	r2, err := NewAsciiRecord(2, false, &opts)
	require.NoError(t, err)
	r2.Autosort = true

	f9 := NewField(2, 9, "", DefaultFieldMask)
	require.NoError(t, f9.SetScalar("nine"))
	f5 := NewField(2, 5, "", DefaultFieldMask)
	require.NoError(t, f5.SetScalar("five"))
	require.NoError(t, r2.AddField(f9))
	require.NoError(t, r2.AddField(f5))

	out := string(r2.render())
	assert.True(t, indexOf([]byte(out), []byte("2.005:five")) < indexOf([]byte(out), []byte("2.009:nine")))
}

func TestLenFixedPoint(t *testing.T) {
	opts := DefaultOptions()
	r2, err := NewAsciiRecord(2, true, &opts)
	require.NoError(t, err)
	out := r2.Serialize()
	assert.Equal(t, len(out), r2.LEN())
}
