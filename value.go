package nistitl

import "strconv"

// ValueKind discriminates the shape a Value carries.
type ValueKind int

const (
	ValueScalar ValueKind = iota
	ValueInt
	ValueList
	ValueBinary
)

// Value is the generic scalar|integer|list|binary variant returned by the
// attribute-style accessors (ByAlias/ByTag), per design note §9: a
// statically typed stand-in for the source's dynamic attribute access.
type Value struct {
	Kind   ValueKind
	Text   string
	Int    int
	List   []SubFieldValue
	Binary []byte
}

// valueOf converts a field entry's content into the generic Value shape.
func valueOf(fe fieldEntry) (Value, error) {
	switch f := fe.(type) {
	case *Field:
		if list, ok := f.Values(); ok {
			return Value{Kind: ValueList, List: list}, nil
		}
		scalar, _ := f.Scalar()
		if isNumericTag(f.Record, f.Tag) {
			n, err := strconv.Atoi(scalar)
			if err != nil {
				return Value{Kind: ValueScalar, Text: scalar}, nil
			}
			return Value{Kind: ValueInt, Int: n}, nil
		}
		return Value{Kind: ValueScalar, Text: scalar}, nil
	case *BinaryField:
		return Value{Kind: ValueBinary, Binary: f.Bytes}, nil
	default:
		return Value{}, newErr(BadTagName, "unknown field entry type")
	}
}

// isNumericTag reports whether record/tag holds a numerically-normalized
// scalar: record 1's tag 1 (LEN), and tag 2 (IDC) of every record other
// than type 1 (whose tag 2 is VER, kept as text).
func isNumericTag(record, tag int) bool {
	return (record == 1 && tag == 1) || (record != 1 && tag == 2)
}
