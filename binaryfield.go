package nistitl

import (
	"bytes"
	"fmt"
)

// BinaryField is the opaque trailing field of a mixed ASCII+binary record
// (e.g. tag 999 of a type-10 record). It may appear only as the last field
// of an AsciiRecord.
type BinaryField struct {
	Record int
	Tag    int
	Alias  string
	Bytes  []byte
}

// NewBinaryField returns a BinaryField carrying data.
func NewBinaryField(record, tag int, alias string, data []byte) *BinaryField {
	return &BinaryField{Record: record, Tag: tag, Alias: alias, Bytes: append([]byte(nil), data...)}
}

func (bf *BinaryField) fieldTag() int      { return bf.Tag }
func (bf *BinaryField) fieldAlias() string { return bf.Alias }
func (bf *BinaryField) isBinary() bool     { return true }

// serialize renders "{record}.{tag:03}:" followed by the raw bytes — no
// separators inside them; the record's trailing FS terminates the run.
func (bf *BinaryField) serialize() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d.%03d:", bf.Record, bf.Tag)
	buf.Write(bf.Bytes)
	return buf.Bytes()
}
