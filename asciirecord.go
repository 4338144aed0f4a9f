package nistitl

import (
	"bytes"
	"sort"
	"strconv"
	"time"
)

// fieldEntry is satisfied by both *Field and *BinaryField so an AsciiRecord
// can hold either in a single ordered slice.
type fieldEntry interface {
	fieldTag() int
	fieldAlias() string
	isBinary() bool
	serialize() []byte
}

// AsciiRecord is a tagged ASCII record: an ordered collection of fields (at
// most one of them binary, last in serialization order). A record built
// with autocreate starts with LEN and (except for type 1) IDC; one built
// without it starts empty and holds only the fields added to it.
type AsciiRecord struct {
	Type     int
	Autosort bool

	fields []fieldEntry
}

// NewAsciiRecord returns a new record of the given type. Unless autocreate
// is false, it is populated with the standard's default fields (LEN/VER/
// CNT/.../NTR for type 1; LEN/IDC otherwise). Creating a type 3, 5 or 6
// record logs a deprecation warning via opts.Log.
func NewAsciiRecord(recordType int, autocreate bool, opts *Options) (*AsciiRecord, error) {
	ar := &AsciiRecord{Type: recordType}
	if opts != nil {
		ar.Autosort = opts.Autosort
	}

	if opts != nil && opts.Log != nil && (recordType == 3 || recordType == 5 || recordType == 6) {
		opts.Log.Warn("record type %d is deprecated by NIST-ITL", recordType)
	}

	if !autocreate {
		return ar, nil
	}

	mustAdd := func(tag int, mask FieldMask, value string) error {
		f := NewField(recordType, tag, "", mask)
		if err := f.SetScalar(value); err != nil {
			return err
		}
		return ar.AddField(f)
	}

	if recordType == 1 {
		var clock func() time.Time = time.Now
		var tcnGen func() string = newTCN
		if opts != nil {
			if opts.Clock != nil {
				clock = opts.Clock
			}
			if opts.TCNGenerator != nil {
				tcnGen = opts.TCNGenerator
			}
		}
		steps := []struct {
			tag   int
			value string
		}{
			{1, "0"},
			{2, DefaultVersion},
			{3, ""},
			{4, ""},
			{5, clock().Format("20060102")},
			{7, "000"},
			{8, "000"},
			{9, tcnGen()},
			{11, "00.00"},
			{12, "00.00"},
		}
		for _, s := range steps {
			if err := mustAdd(s.tag, DefaultFieldMask, s.value); err != nil {
				return nil, err
			}
		}
		return ar, nil
	}

	if err := mustAdd(1, DefaultFieldMask, "0"); err != nil {
		return nil, err
	}
	if err := mustAdd(2, DefaultFieldMask, "0"); err != nil {
		return nil, err
	}
	return ar, nil
}

// AddField adds f to the record, assigning an alias from the static table
// if f has none and the table knows the tag.
func (ar *AsciiRecord) AddField(f *Field) error {
	if f.Record != ar.Type {
		return newErr(BadRecordNumber, "field record %d does not match record type %d", f.Record, ar.Type)
	}
	if _, err := ar.lookupByTag(f.Tag); err == nil {
		return newErr(BadTagDuplicate, "duplicate tag %d.%03d", ar.Type, f.Tag)
	}
	if f.Alias != "" {
		if _, err := ar.lookupByAlias(f.Alias); err == nil {
			return newErr(BadAliasDuplicate, "duplicate alias %q on record type %d", f.Alias, ar.Type)
		}
	}
	if f.Alias == "" {
		if alias, ok := AliasForTag(ar.Type, f.Tag); ok {
			f.Alias = alias
		}
	}
	ar.fields = append(ar.fields, f)
	return nil
}

// AddBinaryField adds a BinaryField, the same duplicate/record-number
// checks as AddField apply.
func (ar *AsciiRecord) AddBinaryField(bf *BinaryField) error {
	if bf.Record != ar.Type {
		return newErr(BadRecordNumber, "field record %d does not match record type %d", bf.Record, ar.Type)
	}
	if _, err := ar.lookupByTag(bf.Tag); err == nil {
		return newErr(BadTagDuplicate, "duplicate tag %d.%03d", ar.Type, bf.Tag)
	}
	if bf.Alias != "" {
		if _, err := ar.lookupByAlias(bf.Alias); err == nil {
			return newErr(BadAliasDuplicate, "duplicate alias %q on record type %d", bf.Alias, ar.Type)
		}
	}
	if bf.Alias == "" {
		if alias, ok := AliasForTag(ar.Type, bf.Tag); ok {
			bf.Alias = alias
		}
	}
	ar.fields = append(ar.fields, bf)
	return nil
}

func (ar *AsciiRecord) lookupByTag(tag int) (fieldEntry, error) {
	for _, f := range ar.fields {
		if f.fieldTag() == tag {
			return f, nil
		}
	}
	return nil, newErr(BadTagName, "no field with tag %d.%03d", ar.Type, tag)
}

func (ar *AsciiRecord) lookupByAlias(alias string) (fieldEntry, error) {
	for _, f := range ar.fields {
		if f.fieldAlias() == alias && alias != "" {
			return f, nil
		}
	}
	return nil, newErr(BadTagName, "no field with alias %q on record type %d", alias, ar.Type)
}

// FieldByTag returns the *Field with the given tag (not a *BinaryField).
func (ar *AsciiRecord) FieldByTag(tag int) (*Field, error) {
	fe, err := ar.lookupByTag(tag)
	if err != nil {
		return nil, err
	}
	f, ok := fe.(*Field)
	if !ok {
		return nil, newErr(BadTagName, "tag %d.%03d is a binary field", ar.Type, tag)
	}
	return f, nil
}

// FieldByAlias returns the *Field with the given alias.
func (ar *AsciiRecord) FieldByAlias(alias string) (*Field, error) {
	fe, err := ar.lookupByAlias(alias)
	if err != nil {
		return nil, err
	}
	f, ok := fe.(*Field)
	if !ok {
		return nil, newErr(BadTagName, "alias %q on record type %d is a binary field", alias, ar.Type)
	}
	return f, nil
}

// DeleteFieldByTag removes the field with the given tag.
func (ar *AsciiRecord) DeleteFieldByTag(tag int) error {
	for i, f := range ar.fields {
		if f.fieldTag() == tag {
			ar.fields = append(ar.fields[:i], ar.fields[i+1:]...)
			return nil
		}
	}
	return newErr(RecordNotFound, "no field with tag %d.%03d", ar.Type, tag)
}

// DeleteFieldByAlias removes the field with the given alias.
func (ar *AsciiRecord) DeleteFieldByAlias(alias string) error {
	for i, f := range ar.fields {
		if f.fieldAlias() == alias && alias != "" {
			ar.fields = append(ar.fields[:i], ar.fields[i+1:]...)
			return nil
		}
	}
	return newErr(RecordNotFound, "no field with alias %q on record type %d", alias, ar.Type)
}

// ByAlias implements the attribute-style getter: record.ALIAS.
func (ar *AsciiRecord) ByAlias(alias string) (Value, error) {
	fe, err := ar.lookupByAlias(alias)
	if err != nil {
		return Value{}, newErr(UnknownAttribute, "no such attribute %q", alias)
	}
	return valueOf(fe)
}

// ByTag implements the attribute-style getter: record._N.
func (ar *AsciiRecord) ByTag(tag int) (Value, error) {
	fe, err := ar.lookupByTag(tag)
	if err != nil {
		return Value{}, newErr(UnknownAttribute, "no such attribute %d", tag)
	}
	return valueOf(fe)
}

// SetByAlias implements the attribute-style setter: record.ALIAS = v.
// If no field with that alias exists, one is created from the static alias
// table (a BinaryField iff the alias is "DATA"); absent that, fails
// UnknownAttribute.
func (ar *AsciiRecord) SetByAlias(alias string, v string) error {
	if fe, err := ar.lookupByAlias(alias); err == nil {
		if bf, ok := fe.(*BinaryField); ok {
			bf.Bytes = []byte(v)
			return nil
		}
		return fe.(*Field).SetScalar(v)
	}
	tag, ok := TagForAlias(ar.Type, alias)
	if !ok {
		return newErr(UnknownAttribute, "no such attribute %q", alias)
	}
	return ar.setNewByTag(tag, alias, v)
}

// SetByTag implements the attribute-style setter: record._N = v.
func (ar *AsciiRecord) SetByTag(tag int, v string) error {
	if f, err := ar.FieldByTag(tag); err == nil {
		return f.SetScalar(v)
	}
	alias, _ := AliasForTag(ar.Type, tag)
	return ar.setNewByTag(tag, alias, v)
}

func (ar *AsciiRecord) setNewByTag(tag int, alias, v string) error {
	if alias == DataAlias {
		return ar.AddBinaryField(NewBinaryField(ar.Type, tag, alias, []byte(v)))
	}
	f := NewField(ar.Type, tag, alias, DefaultFieldMask)
	if err := f.SetScalar(v); err != nil {
		return err
	}
	return ar.AddField(f)
}

// LEN returns the current value of tag 1 (LEN).
func (ar *AsciiRecord) LEN() int {
	f, err := ar.FieldByTag(1)
	if err != nil {
		return 0
	}
	v, _ := f.Scalar()
	n, _ := strconv.Atoi(v)
	return n
}

// IDC returns the current value of tag 2 (IDC); 0 for a type-1 record,
// which has no IDC field.
func (ar *AsciiRecord) IDC() int {
	if ar.Type == 1 {
		return 0
	}
	f, err := ar.FieldByTag(2)
	if err != nil {
		return 0
	}
	v, _ := f.Scalar()
	n, _ := strconv.Atoi(v)
	return n
}

// SetIDC sets tag 2 (IDC). No-op on a type-1 record.
func (ar *AsciiRecord) SetIDC(n int) error {
	if ar.Type == 1 {
		return nil
	}
	f, err := ar.FieldByTag(2)
	if err != nil {
		return err
	}
	return f.SetInt(n)
}

// RecordType implements Record.
func (ar *AsciiRecord) RecordType() int { return ar.Type }

// orderedFields returns the non-binary fields in serialization order
// (ascending tag if Autosort, else insertion order) followed by the binary
// fields (at most one in practice), last.
func (ar *AsciiRecord) orderedFields() []fieldEntry {
	var plain, binary []fieldEntry
	for _, f := range ar.fields {
		if f.isBinary() {
			binary = append(binary, f)
		} else {
			plain = append(plain, f)
		}
	}
	if ar.Autosort {
		sort.SliceStable(plain, func(i, j int) bool { return plain[i].fieldTag() < plain[j].fieldTag() })
	}
	return append(plain, binary...)
}

// Serialize computes the LEN fixed point and renders the full record,
// terminated by FS.
func (ar *AsciiRecord) Serialize() []byte {
	lenField, err := ar.FieldByTag(1)
	if err != nil {
		// No LEN field (a record built without autocreate and never
		// given one) — serialize as-is, no fixed point to compute.
		return ar.render()
	}

	length := 0
	for i := 0; i < 6; i++ {
		_ = lenField.SetInt(length)
		body := ar.render()
		next := len(body)
		if next == length {
			return body
		}
		length = next
	}
	return ar.render()
}

func (ar *AsciiRecord) render() []byte {
	var buf bytes.Buffer
	for i, f := range ar.orderedFields() {
		if i > 0 {
			buf.WriteByte(GS)
		}
		buf.Write(f.serialize())
	}
	buf.WriteByte(FS)
	return buf.Bytes()
}
