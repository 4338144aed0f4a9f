package nistitl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliasTableKnownEntries(t *testing.T) {
	alias, ok := AliasForTag(1, 3)
	require.True(t, ok)
	assert.Equal(t, "CNT", alias)

	tag, ok := TagForAlias(10, "DATA")
	require.True(t, ok)
	assert.Equal(t, 999, tag)

	dataTag, ok := TagForData(13)
	require.True(t, ok)
	assert.Equal(t, 999, dataTag)

	_, ok = TagForData(2)
	assert.False(t, ok, "record type 2 has no DATA trailer")
}

func TestMergeAliasOverrides(t *testing.T) {
	require.NoError(t, MergeAliasOverrides(strings.NewReader("30:\n  1: LEN\n  2: IDC\n  3: CUSTOM\n")))
	alias, ok := AliasForTag(30, 3)
	require.True(t, ok)
	assert.Equal(t, "CUSTOM", alias)
}
