package nistitl

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryRecordFraming(t *testing.T) {
	br, err := NewBinaryRecord(4, 7, []byte("data"))
	require.NoError(t, err)
	out := br.Serialize()
	assert.Equal(t, uint32(9), binary.BigEndian.Uint32(out[0:4]))
	assert.Equal(t, byte(7), out[4])
	assert.Equal(t, []byte("data"), out[5:])
}

func TestBinaryRecordRejectsNonBinaryType(t *testing.T) {
	_, err := NewBinaryRecord(10, 1, nil)
	require.Error(t, err)
	kind, _ := KindOf(err)
	assert.Equal(t, BadRecordNumber, kind)
}

type fixedHeader struct {
	IMT uint32
	SRC uint16
}

func TestBinaryRecordPackUnpack(t *testing.T) {
	br, err := NewBinaryRecord(4, 1, nil)
	require.NoError(t, err)

	require.NoError(t, br.Pack(fixedHeader{IMT: 1, SRC: 2}, []byte("trailer")))
	assert.Equal(t, []byte("trailer"), br.Payload()[6:])

	var hdr fixedHeader
	rest, err := br.Unpack(&hdr)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), hdr.IMT)
	assert.Equal(t, uint16(2), hdr.SRC)
	assert.Equal(t, []byte("trailer"), rest)
}
