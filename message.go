package nistitl

import (
	"bytes"
	"fmt"
)

// Record is implemented by both *AsciiRecord and *BinaryRecord, letting a
// Message hold either in a single ordered list.
type Record interface {
	RecordType() int
	IDC() int
	Serialize() []byte
}

// Message is an ordered list of records, the first always type 1. It
// derives CNT on demand and drives both serialization and parsing.
type Message struct {
	opts    Options
	records []Record
}

// NewMessage returns a Message with a freshly auto-populated type-1 record,
// the way constructing the source's Message always begins.
func NewMessage(opts Options) (*Message, error) {
	if err := opts.Valid(); err != nil {
		return nil, err
	}
	m := &Message{opts: opts}
	r1, err := NewAsciiRecord(1, true, &opts)
	if err != nil {
		return nil, err
	}
	m.records = append(m.records, r1)
	return m, nil
}

// Reset clears the message back to a single record-1, autocreated per
// autocreate, mirroring the source's reset(autocreate, autosort).
func (m *Message) Reset(autocreate, autosort bool) error {
	r1, err := NewAsciiRecord(1, autocreate, &m.opts)
	if err != nil {
		return err
	}
	r1.Autosort = autosort
	m.records = []Record{r1}
	return nil
}

// Record1 returns the message's type-1 record.
func (m *Message) Record1() *AsciiRecord {
	return m.records[0].(*AsciiRecord)
}

// NewAsciiRecord builds a record using the message's own Options (clock,
// TCN generator, logger), ready to be passed to AddRecord.
func (m *Message) NewAsciiRecord(recordType int, autocreate bool) (*AsciiRecord, error) {
	return NewAsciiRecord(recordType, autocreate, &m.opts)
}

// NewBinaryRecord builds a BinaryRecord of the given type, ready to be
// passed to AddRecord.
func (m *Message) NewBinaryRecord(recordType, idc int, payload []byte) (*BinaryRecord, error) {
	return NewBinaryRecord(recordType, idc, payload)
}

// AddRecord appends r. A second type-1 record fails CannotAddType1.
func (m *Message) AddRecord(r Record) error {
	if r.RecordType() == 1 {
		return newErr(CannotAddType1, "message already has a type-1 record")
	}
	m.records = append(m.records, r)
	return nil
}

// RemoveRecord removes the record at index i. Removing index 0 (the
// type-1 record) fails CannotDeleteType1.
func (m *Message) RemoveRecord(i int) error {
	if i == 0 {
		return newErr(CannotDeleteType1, "cannot delete the type-1 record")
	}
	if i < 0 || i >= len(m.records) {
		return newErr(RecordNotFound, "record index %d out of range", i)
	}
	m.records = append(m.records[:i], m.records[i+1:]...)
	return nil
}

// RemoveByKey removes the non-type-1 record matching (recordType, idc).
func (m *Message) RemoveByKey(recordType, idc int) error {
	for i := 1; i < len(m.records); i++ {
		r := m.records[i]
		if r.RecordType() == recordType && r.IDC() == idc {
			return m.RemoveRecord(i)
		}
	}
	return newErr(RecordNotFound, "no record of type %d idc %d", recordType, idc)
}

// Records returns every record in order.
func (m *Message) Records() []Record { return m.records }

// RecordsByType returns every record of the given type, in order.
func (m *Message) RecordsByType(recordType int) []Record {
	var out []Record
	for _, r := range m.records {
		if r.RecordType() == recordType {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the total number of records, including the type-1 record.
func (m *Message) Len() int { return len(m.records) }

// TOT delegates to the type-1 record's TOT field.
func (m *Message) TOT() (string, error) {
	v, err := m.Record1().ByAlias("TOT")
	if err != nil {
		return "", err
	}
	return v.Text, nil
}

// SetTOT delegates to the type-1 record's TOT field.
func (m *Message) SetTOT(v string) error {
	return m.Record1().SetByAlias("TOT", v)
}

// CNT computes the derived table of contents: (1, N) followed by (type,
// IDC) for every non-type-1 record in order, N being the non-type-1 record
// count.
func (m *Message) CNT() []SubFieldValue {
	n := len(m.records) - 1
	out := make([]SubFieldValue, 0, n+1)
	out = append(out, SubFieldValue{Items: []string{"1", fmt.Sprintf("%d", n)}})
	for i := 1; i < len(m.records); i++ {
		r := m.records[i]
		out = append(out, SubFieldValue{Items: []string{
			fmt.Sprintf("%d", r.RecordType()),
			fmt.Sprintf("%d", r.IDC()),
		}})
	}
	return out
}

// recomputeCNT rewrites record-1's CNT field (tag 3) from the current
// record list. CNT is derived state: never persisted by the caller,
// recomputed here before every serialize and checked again after parse.
func (m *Message) recomputeCNT() error {
	f, err := m.Record1().FieldByTag(3)
	if err != nil {
		return err
	}
	f.Reset()
	subfields := make([]*SubField, 0)
	for _, v := range m.CNT() {
		sf := NewSubField(SubFieldI)
		if err := sf.SetItems(v.Items); err != nil {
			return err
		}
		subfields = append(subfields, sf)
	}
	return f.AddSubfields(subfields...)
}

// Serialize recomputes CNT, then concatenates every record's own
// serialization in order — binary records contribute their 5-byte-header
// form with no terminator, ASCII records their FS-terminated form.
func (m *Message) Serialize() ([]byte, error) {
	if err := m.recomputeCNT(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	for _, r := range m.records {
		buf.Write(r.Serialize())
	}
	return buf.Bytes(), nil
}

// validateCNT checks the parsed record list against record-1's own CNT
// field, per spec: count must match, every subfield must carry exactly 2
// items, and the first subfield must be (1, N). A subsequent subfield is
// rejected only when both its type and its IDC differ from the
// corresponding record's, so an entry whose type matches but whose IDC
// does not (or whose IDC matches but whose type does not) is accepted.
// This is preserved intentionally: see DESIGN.md.
func (m *Message) validateCNT() error {
	f, err := m.Record1().FieldByTag(3)
	if err != nil {
		return wrap(err, BadContent, "record 1 has no CNT field")
	}
	values, ok := f.Values()
	if !ok || len(values) != len(m.records) {
		return newErr(BadContent, "CNT entry count does not match parsed record count")
	}
	for i, v := range values {
		if len(v.Items) != 2 {
			return newErr(BadContent, "CNT entry %d does not have exactly 2 items", i)
		}
	}
	if values[0].Items[0] != "1" || values[0].Items[1] != fmt.Sprintf("%d", len(m.records)-1) {
		return newErr(BadContent, "CNT header entry does not match (1, %d)", len(m.records)-1)
	}
	for i := 1; i < len(m.records); i++ {
		r := m.records[i]
		wantType := fmt.Sprintf("%d", r.RecordType())
		wantIDC := fmt.Sprintf("%d", r.IDC())
		gotType := values[i].Items[0]
		gotIDC := values[i].Items[1]
		if gotType != wantType && gotIDC != wantIDC {
			return newErr(BadContent, "CNT entry %d (%s,%s) does not match record (%s,%s)", i, gotType, gotIDC, wantType, wantIDC)
		}
	}
	return nil
}
