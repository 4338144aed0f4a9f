package nistitl

import (
	"bytes"
	"encoding/binary"
	"reflect"
)

// BinaryRecord is a fully binary record (type 3-8): 4-byte big-endian total
// length, 1-byte IDC, then an opaque payload. It has no FS terminator.
type BinaryRecord struct {
	Type        int
	idc         int
	payload     []byte
	packedShape string
}

// binaryRecordTypes are the record types carried as BinaryRecord rather
// than AsciiRecord.
var binaryRecordTypes = map[int]bool{3: true, 4: true, 5: true, 6: true, 7: true, 8: true}

// IsBinaryRecordType reports whether t is one of the fully-binary record
// types (3-8).
func IsBinaryRecordType(t int) bool { return binaryRecordTypes[t] }

// NewBinaryRecord returns a BinaryRecord of the given type.
func NewBinaryRecord(recordType, idc int, payload []byte) (*BinaryRecord, error) {
	if !IsBinaryRecordType(recordType) {
		return nil, newErr(BadRecordNumber, "record type %d is not a binary record type", recordType)
	}
	return &BinaryRecord{Type: recordType, idc: idc, payload: append([]byte(nil), payload...)}, nil
}

// IDC returns the record's image designation character.
func (br *BinaryRecord) IDC() int { return br.idc }

// SetIDC sets the record's IDC.
func (br *BinaryRecord) SetIDC(idc int) { br.idc = idc }

// Payload returns the record's opaque payload.
func (br *BinaryRecord) Payload() []byte { return br.payload }

// SetPayload replaces the record's payload.
func (br *BinaryRecord) SetPayload(p []byte) { br.payload = append([]byte(nil), p...) }

// RecordType implements Record.
func (br *BinaryRecord) RecordType() int { return br.Type }

// Pack encodes v (a fixed-size struct, per encoding/binary's rules) as the
// leading bytes of the payload, then appends trailing verbatim. It
// remembers v's type for String()'s benefit, mirroring the source's
// "format" bookkeeping on pack/unpack.
func (br *BinaryRecord) Pack(v interface{}, trailing []byte) error {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, v); err != nil {
		return newErr(BadContent, "pack: %s", err)
	}
	buf.Write(trailing)
	br.payload = buf.Bytes()
	br.packedShape = reflect.TypeOf(v).String()
	return nil
}

// Unpack decodes the leading fixed-size portion of the payload into v and
// returns whatever bytes remain.
func (br *BinaryRecord) Unpack(v interface{}) ([]byte, error) {
	size := binary.Size(v)
	if size < 0 || size > len(br.payload) {
		return nil, newErr(BadContent, "unpack: payload too short for %T", v)
	}
	if err := binary.Read(bytes.NewReader(br.payload[:size]), binary.BigEndian, v); err != nil {
		return nil, newErr(BadContent, "unpack: %s", err)
	}
	br.packedShape = reflect.TypeOf(v).String()
	return br.payload[size:], nil
}

// Serialize renders the 4-byte big-endian total length (5 + len(payload)),
// the 1-byte IDC, then the payload.
func (br *BinaryRecord) Serialize() []byte {
	out := make([]byte, 5+len(br.payload))
	binary.BigEndian.PutUint32(out[0:4], uint32(5+len(br.payload)))
	out[4] = byte(br.idc)
	copy(out[5:], br.payload)
	return out
}
