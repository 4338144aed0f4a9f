package nistitl

// encodeLatin1 and decodeLatin1 convert between a Go string (a sequence of
// runes) and its latin-1 (ISO-8859-1) byte representation. latin-1 maps
// code points 0x00-0xFF onto bytes 0x00-0xFF one-to-one, so the conversion
// is a direct cast with a range check — no table, no multi-byte sequences,
// nothing a general-purpose encoding package would buy over the two loops
// below. See DESIGN.md for why this is implemented on the standard library
// rather than an imported charmap.
func encodeLatin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			r = '?'
		}
		out = append(out, byte(r))
	}
	return out
}

func decodeLatin1(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}
