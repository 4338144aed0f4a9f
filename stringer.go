package nistitl

import (
	"fmt"
	"strings"
)

// String renders a short "type.tag: ALIAS : value" summary, supplementing
// the wire encoding with a human-readable form for debugging — this is
// presentation only, not the semantic validation the spec excludes.
func (f *Field) String() string {
	var value string
	if list, ok := f.Values(); ok {
		parts := make([]string, len(list))
		for i, v := range list {
			if v.HasScalar {
				parts[i] = v.Scalar
			} else {
				parts[i] = strings.Join(v.Items, ",")
			}
		}
		value = strings.Join(parts, " | ")
	} else {
		value, _ = f.Scalar()
	}
	return fmt.Sprintf("%d.%03d: %-6s: %s", f.Record, f.Tag, f.Alias, value)
}

// String renders a one-line summary of the binary trailer.
func (bf *BinaryField) String() string {
	return fmt.Sprintf("%d.%03d: %-6s: <%d bytes>", bf.Record, bf.Tag, bf.Alias, len(bf.Bytes))
}

// String renders every field of the record, one per line.
func (ar *AsciiRecord) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "record %d\n", ar.Type)
	for _, f := range ar.fields {
		switch fe := f.(type) {
		case *Field:
			fmt.Fprintln(&b, fe.String())
		case *BinaryField:
			fmt.Fprintln(&b, fe.String())
		}
	}
	return b.String()
}

// String renders the packed shape (if Pack/Unpack was used) and payload
// size, mirroring the source's pack/unpack "format" bookkeeping.
func (br *BinaryRecord) String() string {
	if br.packedShape != "" {
		return fmt.Sprintf("binary record %d idc=%d shape=%s len=%d", br.Type, br.idc, br.packedShape, len(br.payload))
	}
	return fmt.Sprintf("binary record %d idc=%d len=%d", br.Type, br.idc, len(br.payload))
}

// String renders every record of the message, one summary block each.
func (m *Message) String() string {
	var b strings.Builder
	for _, r := range m.records {
		switch rec := r.(type) {
		case *AsciiRecord:
			b.WriteString(rec.String())
		case *BinaryRecord:
			b.WriteString(rec.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}
