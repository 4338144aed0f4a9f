package nistitl

import "bytes"

// SubFieldMask gates which content a SubField may hold.
type SubFieldMask uint8

const (
	SubFieldS SubFieldMask = 1 << iota // permits a scalar value
	SubFieldI                          // permits items
)

// Has reports whether bit is set in m.
func (m SubFieldMask) Has(bit SubFieldMask) bool { return m&bit != 0 }

// DefaultSubFieldMask is the mask a bare SubField carries when built without
// an explicit one (scalar or items, either is legal).
const DefaultSubFieldMask = SubFieldS | SubFieldI

// SubField is an ordered sequence of items, or a single scalar value, never
// both. Which is legal is gated by its mask.
type SubField struct {
	mask     SubFieldMask
	value    string
	hasValue bool
	items    []string
}

// NewSubField returns an empty SubField with the given mask.
func NewSubField(mask SubFieldMask) *SubField {
	return &SubField{mask: mask}
}

// SetValue sets the scalar value, clearing any items. Fails BadSubFieldValue
// if S is not permitted by the mask.
func (sf *SubField) SetValue(v string) error {
	if !sf.mask.Has(SubFieldS) {
		return newErr(BadSubFieldValue, "scalar value not permitted by mask")
	}
	sf.value = v
	sf.hasValue = true
	sf.items = nil
	return nil
}

// SetItems replaces the item list, clearing any scalar value. Fails
// BadSubFieldValue if I is not permitted by the mask.
func (sf *SubField) SetItems(items []string) error {
	if !sf.mask.Has(SubFieldI) {
		return newErr(BadSubFieldValue, "items not permitted by mask")
	}
	sf.items = append([]string(nil), items...)
	sf.value = ""
	sf.hasValue = false
	return nil
}

// AppendItem appends a single item, clearing any scalar value.
func (sf *SubField) AppendItem(v string) error {
	if !sf.mask.Has(SubFieldI) {
		return newErr(BadSubFieldValue, "items not permitted by mask")
	}
	sf.items = append(sf.items, v)
	sf.value = ""
	sf.hasValue = false
	return nil
}

// Item returns the item at index i.
func (sf *SubField) Item(i int) (string, error) {
	if i < 0 || i >= len(sf.items) {
		return "", newErr(RecordNotFound, "item index %d out of range", i)
	}
	return sf.items[i], nil
}

// Len returns the number of items (0 if the subfield holds a scalar or is
// empty).
func (sf *SubField) Len() int { return len(sf.items) }

// Value returns the scalar and whether one is set.
func (sf *SubField) Value() (string, bool) { return sf.value, sf.hasValue }

// Items returns the item list, possibly nil.
func (sf *SubField) Items() []string { return sf.items }

// HasItems reports whether the subfield holds at least one item. SetItems
// with a nil or empty list leaves the subfield without items, so HasItems
// then reports false.
func (sf *SubField) HasItems() bool { return sf.items != nil }

// serialize renders the subfield per spec: items joined by US if present,
// else the scalar (or nothing), latin-1 encoded.
func (sf *SubField) serialize() []byte {
	if len(sf.items) > 0 {
		var buf bytes.Buffer
		for i, it := range sf.items {
			if i > 0 {
				buf.WriteByte(US)
			}
			buf.Write(encodeLatin1(it))
		}
		return buf.Bytes()
	}
	if !sf.hasValue || sf.value == "" {
		return nil
	}
	return encodeLatin1(sf.value)
}
