package nistitl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"
)

var (
	reRecordHeader  = regexp.MustCompile(`^(\d+)\.(\d+):(\d+)`)
	reFieldPrefix   = regexp.MustCompile(`^(\d+)\.(\d+):`)
	reWellFormedTag = regexp.MustCompile(`^\d+\.\d+:`)
)

// Parse decodes buf into the message, replacing its current contents. It
// implements the hybrid ASCII-tokenizer + binary-record demultiplexer
// algorithm driven by record 1's CNT, including the deferred
// NistTooShort/NistTooLong handling described in errors.go.
func (m *Message) Parse(buf []byte) error {
	if err := m.Reset(false, m.opts.Autosort); err != nil {
		return err
	}

	offset := 0
	for offset+4 < len(buf) {
		m.opts.Log.Debug("parse: offset=%d remaining=%d", offset, len(buf)-offset)

		if loc := reRecordHeader.FindSubmatch(buf[offset:]); loc != nil {
			consumed, err := m.parseAsciiRecordAt(buf, offset, loc)
			if err != nil {
				return err
			}
			offset += consumed
			continue
		}

		consumed, err := m.parseBinaryRecordAt(buf, offset)
		if err != nil {
			return err
		}
		offset += consumed
	}

	if offset < len(buf) {
		return newErr(NistTooLong, "trailing %d bytes after last record", len(buf)-offset)
	}
	return m.validateCNT()
}

// parseAsciiRecordAt processes the ASCII (or mixed ASCII+binary) record
// starting at offset, whose leading "r.001:LEN" token was already matched
// into loc. It returns the number of bytes consumed.
func (m *Message) parseAsciiRecordAt(buf []byte, offset int, loc [][]byte) (int, error) {
	recordType, _ := strconv.Atoi(string(loc[1]))
	declaredLen, _ := strconv.Atoi(string(loc[3]))

	tagForData, hasData := TagForData(recordType)

	var deferred *NistError
	length := declaredLen

	if offset+length > len(buf) {
		deferred = newErr(NistTooShort, "record at offset %d declares length %d, only %d bytes remain", offset, length, len(buf)-offset)
		length = len(buf) - offset
	} else {
		boundary := -1
		if idx := bytes.IndexByte(buf[offset:], FS); idx >= 0 {
			boundary = offset + idx
		}
		if hasData {
			marker := []byte(fmt.Sprintf("%d:", tagForData))
			if idx := bytes.Index(buf[offset:], marker); idx >= 0 {
				dataPos := offset + idx
				if boundary < 0 || dataPos < boundary {
					boundary = dataPos
				}
			}
		}
		if boundary < 0 {
			boundary = len(buf)
		}
		if boundary-offset > length {
			deferred = newErr(NistTooLong, "record at offset %d extends past its declared length %d", offset, length)
			length = boundary - offset
		}
	}

	recordBuf := buf[offset : offset+length]

	innerErr := m.parseOneAsciiRecord(recordBuf, recordType, tagForData, hasData)

	if deferred != nil {
		if innerErr != nil {
			return length, wrap(innerErr, deferred.Kind, "%s", deferred.msg)
		}
		return length, deferred
	}
	if innerErr != nil {
		return length, innerErr
	}
	return length, nil
}

// parseOneAsciiRecord parses a single (already length-bounded) record
// buffer, splitting off a mixed binary trailer first if tagForData is
// present and actually demarcated by a field boundary.
func (m *Message) parseOneAsciiRecord(recordBuf []byte, recordType, tagForData int, hasData bool) error {
	target, err := m.targetRecordFor(recordType)
	if err != nil {
		return err
	}

	if hasData {
		marker := []byte(fmt.Sprintf("%d:", tagForData))
		if p := bytes.Index(recordBuf, marker); p > 0 {
			q := p
			if idx := bytes.LastIndexByte(recordBuf[:p], GS); idx >= 0 {
				q = idx
			}
			if q != p {
				tagEnd := p + 4
				if tagEnd > len(recordBuf) {
					tagEnd = len(recordBuf)
				}
				if !reWellFormedTag.Match(recordBuf[q+1 : tagEnd]) {
					return newErr(BadTagFormat, "malformed tag preceding binary trailer at offset %d", p)
				}

				textPart := append(append([]byte(nil), recordBuf[:q]...), FS)
				if err := tokenizeAsciiRecord(textPart, recordType, target); err != nil {
					return err
				}

				binaryPart := recordBuf[tagEnd:]
				if len(binaryPart) > 0 && binaryPart[len(binaryPart)-1] == FS {
					binaryPart = binaryPart[:len(binaryPart)-1]
				}
				return target.AddBinaryField(NewBinaryField(recordType, tagForData, "", binaryPart))
			}
		}
	}

	return tokenizeAsciiRecord(recordBuf, recordType, target)
}

// targetRecordFor returns the record new field content should be written
// into: the message's existing record-1 for recordType==1, otherwise a
// freshly created (and appended) AsciiRecord.
func (m *Message) targetRecordFor(recordType int) (*AsciiRecord, error) {
	if recordType == 1 {
		return m.Record1(), nil
	}
	ar, err := NewAsciiRecord(recordType, false, &m.opts)
	if err != nil {
		return nil, err
	}
	ar.Autosort = true
	if err := m.AddRecord(ar); err != nil {
		return nil, err
	}
	return ar, nil
}

// parseBinaryRecordAt processes the fully-binary record (type 3-8) starting
// at offset: 4-byte big-endian length, 1-byte IDC, opaque payload. The
// record's type is not self-describing — it is deduced from record 1's
// CNT at the position this record occupies.
func (m *Message) parseBinaryRecordAt(buf []byte, offset int) (int, error) {
	length := int(binary.BigEndian.Uint32(buf[offset : offset+4]))
	idc := int(buf[offset+4])

	if offset+length > len(buf) {
		return 0, newErr(NistTooShort, "binary record at offset %d declares length %d, only %d bytes remain", offset, length, len(buf)-offset)
	}

	recordType, err := m.expectedTypeForNextRecord()
	if err != nil {
		return 0, err
	}

	payload := buf[offset+5 : offset+length]
	br, err := NewBinaryRecord(recordType, idc, payload)
	if err != nil {
		return 0, wrap(err, BadContent, "CNT declared type %d at this position is not a binary record type", recordType)
	}
	if err := m.AddRecord(br); err != nil {
		return 0, err
	}
	return length, nil
}

// expectedTypeForNextRecord reads record 1's CNT field to determine the
// type the record about to be parsed (at the current record count) must
// have.
func (m *Message) expectedTypeForNextRecord() (int, error) {
	f, err := m.Record1().FieldByTag(3)
	if err != nil {
		return 0, newErr(BadContent, "record 1 has no CNT field")
	}
	values, ok := f.Values()
	if !ok {
		return 0, newErr(BadContent, "CNT has no entries")
	}
	pos := len(m.records)
	if pos >= len(values) {
		return 0, newErr(BadContent, "CNT does not cover record position %d", pos)
	}
	if len(values[pos].Items) != 2 {
		return 0, newErr(BadContent, "CNT entry %d is malformed", pos)
	}
	t, err := strconv.Atoi(values[pos].Items[0])
	if err != nil {
		return 0, newErr(BadContent, "CNT entry %d has a non-numeric type", pos)
	}
	return t, nil
}

// tokenizeAsciiRecord is the ASCII tokenizer of spec §4.6.1, folded
// straight-line into the builder rather than driven through callbacks (no
// dynamic dispatch is needed at this granularity — see DESIGN.md).
func tokenizeAsciiRecord(buf []byte, recordType int, target *AsciiRecord) error {
	if len(buf) == 0 || buf[len(buf)-1] != FS {
		return newErr(RecordNotTerminated, "record type %d is not terminated by FS", recordType)
	}
	body := buf[:len(buf)-1]
	if len(body) == 0 {
		return nil
	}
	for _, fieldBuf := range bytes.Split(body, []byte{GS}) {
		if err := tokenizeField(fieldBuf, recordType, target); err != nil {
			return err
		}
	}
	return nil
}

func tokenizeField(fieldBuf []byte, recordType int, target *AsciiRecord) error {
	loc := reFieldPrefix.FindSubmatchIndex(fieldBuf)
	if loc == nil {
		return newErr(BadRecord, "field is missing a well-formed tag prefix")
	}
	r, _ := strconv.Atoi(string(fieldBuf[loc[2]:loc[3]]))
	tag, _ := strconv.Atoi(string(fieldBuf[loc[4]:loc[5]]))
	if r != recordType {
		return newErr(BadRecordNumber, "field tag %d.%03d does not belong to record type %d", r, tag, recordType)
	}
	rest := fieldBuf[loc[1]:]

	subBufs := bytes.Split(rest, []byte{RS})
	if len(subBufs) == 1 {
		items := bytes.Split(subBufs[0], []byte{US})
		if len(items) == 1 {
			return setOrReplaceScalar(target, recordType, tag, decodeLatin1(items[0]))
		}
	}

	subfields := make([]*SubField, 0, len(subBufs))
	for _, sb := range subBufs {
		items := bytes.Split(sb, []byte{US})
		sf := NewSubField(DefaultSubFieldMask)
		if len(items) == 1 {
			if err := sf.SetValue(decodeLatin1(items[0])); err != nil {
				return err
			}
		} else {
			strs := make([]string, len(items))
			for i, it := range items {
				strs[i] = decodeLatin1(it)
			}
			if err := sf.SetItems(strs); err != nil {
				return err
			}
		}
		subfields = append(subfields, sf)
	}
	return setOrReplaceSubfields(target, recordType, tag, subfields)
}

func setOrReplaceScalar(target *AsciiRecord, recordType, tag int, value string) error {
	if isNumericTag(recordType, tag) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return wrap(err, BadFieldValue, "tag %d.%03d requires a numeric value, got %q", recordType, tag, value)
		}
		if f, err := target.FieldByTag(tag); err == nil {
			return f.SetInt(n)
		}
		f := NewField(recordType, tag, "", DefaultFieldMask)
		if err := f.SetInt(n); err != nil {
			return err
		}
		return target.AddField(f)
	}
	if f, err := target.FieldByTag(tag); err == nil {
		return f.SetScalar(value)
	}
	f := NewField(recordType, tag, "", DefaultFieldMask)
	if err := f.SetScalar(value); err != nil {
		return err
	}
	return target.AddField(f)
}

func setOrReplaceSubfields(target *AsciiRecord, recordType, tag int, subfields []*SubField) error {
	if f, err := target.FieldByTag(tag); err == nil {
		return f.AddSubfields(subfields...)
	}
	f := NewField(recordType, tag, "", DefaultFieldMask)
	if err := f.AddSubfields(subfields...); err != nil {
		return err
	}
	return target.AddField(f)
}
