package nistitl

// The four control bytes that delimit a NIST-ITL transaction, from
// outermost to innermost: records end in FS, fields within a record are
// separated by GS, subfields within a field by RS, items within a subfield
// by US.
const (
	FS byte = 0x1C // record separator
	GS byte = 0x1D // field separator
	RS byte = 0x1E // subfield separator
	US byte = 0x1F // item separator
)
