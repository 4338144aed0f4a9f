package nistitl

import (
	"bytes"
	"fmt"
)

// FieldMask gates which content a Field may hold.
type FieldMask uint8

const (
	FieldF FieldMask = 1 << iota // permits a scalar value
	FieldS                       // permits subfields carrying a scalar
	FieldI                       // permits subfields carrying items
)

// Has reports whether bit is set in m.
func (m FieldMask) Has(bit FieldMask) bool { return m&bit != 0 }

// DefaultFieldMask is the mask a plain tagged field carries unless told
// otherwise: any shape is legal.
const DefaultFieldMask = FieldF | FieldS | FieldI

// SubFieldValue is one element of a Field's structured (subfield-backed)
// value: either a scalar or an item list, mirroring SubField's own content.
type SubFieldValue struct {
	Scalar    string
	HasScalar bool
	Items     []string
}

// Field is a tagged unit of an AsciiRecord: a scalar value, or a sequence of
// SubFields, never both, gated by mask.
type Field struct {
	Record    int
	Tag       int
	Alias     string
	mask      FieldMask
	value     string
	hasValue  bool
	subfields []*SubField
}

// NewField returns an empty Field belonging to record/tag with the given
// mask and (possibly empty) alias.
func NewField(record, tag int, alias string, mask FieldMask) *Field {
	return &Field{Record: record, Tag: tag, Alias: alias, mask: mask}
}

// Mask returns the field's type mask.
func (f *Field) Mask() FieldMask { return f.mask }

// SetScalar sets the field's scalar value, clearing any subfields. Fails
// BadFieldValue if F is not permitted.
func (f *Field) SetScalar(v string) error {
	if !f.mask.Has(FieldF) {
		return newErr(BadFieldValue, "scalar value not permitted by mask on %d.%03d", f.Record, f.Tag)
	}
	f.value = v
	f.hasValue = true
	f.subfields = nil
	return nil
}

// SetInt sets the field's scalar value from an integer (used for the
// numeric LEN/IDC fields).
func (f *Field) SetInt(n int) error {
	return f.SetScalar(fmt.Sprintf("%d", n))
}

// Scalar returns the scalar value and whether one is set.
func (f *Field) Scalar() (string, bool) { return f.value, f.hasValue }

// AddSubfields appends subfields, validating each against the field's mask
// and then overwriting each subfield's own mask with the field's (S, I)
// bits. As a side effect it clears any previously set scalar value — this
// is intentional (see DESIGN.md) and must be preserved for round-trip
// correctness.
func (f *Field) AddSubfields(sfs ...*SubField) error {
	for _, sf := range sfs {
		if _, has := sf.Value(); has && !f.mask.Has(FieldS) {
			return newErr(BadSubFieldValue, "subfield scalar not permitted by field mask on %d.%03d", f.Record, f.Tag)
		}
		if sf.HasItems() && !f.mask.Has(FieldI) {
			return newErr(BadSubFieldValue, "subfield items not permitted by field mask on %d.%03d", f.Record, f.Tag)
		}
	}
	inherited := SubFieldMask(0)
	if f.mask.Has(FieldS) {
		inherited |= SubFieldS
	}
	if f.mask.Has(FieldI) {
		inherited |= SubFieldI
	}
	for _, sf := range sfs {
		sf.mask = inherited
	}
	f.value = ""
	f.hasValue = false
	f.subfields = append(f.subfields, sfs...)
	return nil
}

// SetListValue assigns a list-of-scalars or list-of-lists shape, as the
// attribute-style setter and the generic API both use. Each element of vs
// is either a string (a scalar subfield) or a []string (an items subfield).
func (f *Field) SetListValue(vs ...interface{}) error {
	if !f.mask.Has(FieldS) && !f.mask.Has(FieldI) {
		return newErr(BadFieldValue, "list value not permitted by mask on %d.%03d", f.Record, f.Tag)
	}
	built := make([]*SubField, 0, len(vs))
	for _, v := range vs {
		switch val := v.(type) {
		case string:
			sf := NewSubField(DefaultSubFieldMask)
			if err := sf.SetValue(val); err != nil {
				return err
			}
			built = append(built, sf)
		case []string:
			sf := NewSubField(DefaultSubFieldMask)
			if err := sf.SetItems(val); err != nil {
				return err
			}
			built = append(built, sf)
		default:
			return newErr(BadFieldValue, "unsupported subfield shape %T on %d.%03d", v, f.Record, f.Tag)
		}
	}
	f.subfields = nil
	return f.AddSubfields(built...)
}

// Subfield returns the subfield at index i.
func (f *Field) Subfield(i int) (*SubField, error) {
	if i < 0 || i >= len(f.subfields) {
		return nil, newErr(RecordNotFound, "subfield index %d out of range on %d.%03d", i, f.Record, f.Tag)
	}
	return f.subfields[i], nil
}

// Subfields returns the field's subfields in order.
func (f *Field) Subfields() []*SubField { return f.subfields }

// Len returns the number of subfields.
func (f *Field) Len() int { return len(f.subfields) }

// Reset clears both the scalar value and any subfields.
func (f *Field) Reset() {
	f.value = ""
	f.hasValue = false
	f.subfields = nil
}

// Values returns the field's value as the generic list-of-subfield-values
// shape, if subfields are present.
func (f *Field) Values() ([]SubFieldValue, bool) {
	if len(f.subfields) == 0 {
		return nil, false
	}
	out := make([]SubFieldValue, len(f.subfields))
	for i, sf := range f.subfields {
		scalar, has := sf.Value()
		out[i] = SubFieldValue{Scalar: scalar, HasScalar: has, Items: sf.Items()}
	}
	return out, true
}

func (f *Field) fieldTag() int      { return f.Tag }
func (f *Field) fieldAlias() string { return f.Alias }
func (f *Field) isBinary() bool     { return false }

// Serialize renders "{record}.{tag:03}:" followed by the scalar, or the
// subfields joined by RS.
func (f *Field) serialize() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d.%03d:", f.Record, f.Tag)
	if len(f.subfields) == 0 {
		if f.hasValue {
			buf.Write(encodeLatin1(f.value))
		}
		return buf.Bytes()
	}
	for i, sf := range f.subfields {
		if i > 0 {
			buf.WriteByte(RS)
		}
		buf.Write(sf.serialize())
	}
	return buf.Bytes()
}
