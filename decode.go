// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package bson

import "regexp"

// DecodeOptions configures Decode and DecodeAll. The zero value is not
// the default for every field (CompileRegex in particular defaults to
// true); use DefaultDecodeOptions or DefaultDecodeAllOptions to start
// from the documented defaults.
type DecodeOptions struct {
	// TZAware is accepted for API parity with other drivers. It has no
	// observable effect here: time.Time always carries a location, so
	// decoded datetimes are in time.UTC either way.
	TZAware bool
	// UUIDSubtype selects how Binary subtypes 3/4 are interpreted.
	UUIDSubtype UUIDSubtype
	// CompileRegex, when true, attempts to compile a decoded Regexp into
	// a *regexp.Regexp using the nearest equivalent Go regexp flags.
	CompileRegex bool
}

// DefaultDecodeOptions returns the options Decode uses when called with
// no special configuration: TZAware false, UUIDSubtype standard,
// CompileRegex true.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{TZAware: false, UUIDSubtype: UUIDStandard, CompileRegex: true}
}

// DefaultDecodeAllOptions is DefaultDecodeOptions with TZAware true,
// DecodeAll's default.
func DefaultDecodeAllOptions() DecodeOptions {
	opts := DefaultDecodeOptions()
	opts.TZAware = true
	return opts
}

// decodeState carries per-call configuration through the recursive
// descent. It holds no mutable cursor state of its own; buffer position
// is threaded explicitly through every decode function.
type decodeState struct {
	opts DecodeOptions
}

// Decode reads one document envelope from the front of buf and returns
// the decoded Document (or, if the document's keys match the DBRef
// shape, a DBRef) along with the remaining, unconsumed bytes.
func Decode(buf []byte, opts DecodeOptions) (interface{}, []byte, error) {
	if nativeDecode != nil {
		return nativeDecode(buf, opts)
	}
	d := &decodeState{opts: opts}
	value, pos, err := decodeDocumentEnvelope(d, buf, 0)
	if err != nil {
		return nil, nil, err
	}
	return value, buf[pos:], nil
}

// decodeDocumentEnvelope reads int32 length, validates bounds and the
// trailing NUL, decodes the element list, and applies the DBRef rewrite.
func decodeDocumentEnvelope(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	doc, end, err := decodeDocumentEnvelopeRaw(d, buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return rewriteDBRef(doc), end, nil
}

// decodeDocumentEnvelopeRaw is decodeDocumentEnvelope without the DBRef
// rewrite, used where the result must stay a *Document (array bodies,
// code-with-scope scopes).
func decodeDocumentEnvelopeRaw(d *decodeState, buf []byte, pos int) (*Document, int, error) {
	length, bodyStart, err := readInt32(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	if length < 5 {
		return nil, pos, invalidBSON("document length %d too small at offset %d", length, pos)
	}
	end := pos + int(length)
	if end < pos || end > len(buf) {
		return nil, pos, invalidBSON("document of length %d truncated at offset %d", length, pos)
	}
	if buf[end-1] != 0x00 {
		return nil, pos, invalidBSON("document missing trailing NUL at offset %d", pos)
	}

	doc, err := decodeElements(d, buf, bodyStart, end-1)
	if err != nil {
		return nil, pos, err
	}
	return doc, end, nil
}

// decodeElements decodes the e_list between start and stop (exclusive of
// the trailing NUL, which the caller has already validated) into a
// Document in encounter order.
func decodeElements(d *decodeState, buf []byte, start, stop int) (*Document, error) {
	if stop < start || stop > len(buf) {
		return nil, invalidBSON("malformed element list bounds [%d,%d)", start, stop)
	}
	doc := MakeDocument(4)
	pos := start
	for pos < stop {
		tag, next, err := readByte(buf, pos)
		if err != nil {
			return nil, err
		}
		pos = next

		key, next, err := readCString(buf, pos)
		if err != nil {
			return nil, err
		}
		pos = next

		decodeElem := dispatch[tag]
		if decodeElem == nil {
			return nil, invalidBSON("unsupported element tag 0x%02X for key %q", tag, key)
		}
		value, next, err := decodeElem(d, buf, pos)
		if err != nil {
			return nil, err
		}
		pos = next

		doc.Append(key, value)
	}
	if pos != stop {
		return nil, invalidBSON("element list overran its envelope")
	}
	return doc, nil
}

// rewriteDBRef turns doc into a DBRef if it carries both "$ref" and
// "$id" keys and "$ref" is a string, otherwise returns doc unchanged.
// A "$db" that is not a string is dropped. The trigger is key
// shape, not a type tag, so this runs after the document is fully
// decoded.
func rewriteDBRef(doc *Document) interface{} {
	refVal, hasRef := doc.Get("$ref")
	idVal, hasID := doc.Get("$id")
	if !hasRef || !hasID {
		return doc
	}
	ref, ok := refVal.(string)
	if !ok {
		return doc
	}

	var database *string
	if dbVal, ok := doc.Get("$db"); ok {
		if dbStr, ok := dbVal.(string); ok {
			database = &dbStr
		}
	}

	extra := MakeDocument(doc.Len())
	doc.Range(func(key string, value interface{}) bool {
		if key == "$ref" || key == "$id" || key == "$db" {
			return true
		}
		extra.Append(key, value)
		return true
	})

	return DBRef{Collection: ref, ID: idVal, Database: database, Extra: extra}
}

func decodeDoubleElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	v, pos, err := readDouble(buf, pos)
	return v, pos, err
}

func decodeStringElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	v, pos, err := readString(buf, pos)
	return v, pos, err
}

func decodeEmbeddedDocumentElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	return decodeDocumentEnvelope(d, buf, pos)
}

func decodeArrayElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	doc, end, err := decodeDocumentEnvelopeRaw(d, buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return arrayFromDocument(doc), end, nil
}

// arrayFromDocument walks keys "0", "1", ... in order, stopping at the
// first missing index; unexpected non-numeric keys are ignored.
func arrayFromDocument(doc *Document) Array {
	arr := make(Array, 0, doc.Len())
	for i := 0; ; i++ {
		val, ok := doc.Get(itoa(i))
		if !ok {
			break
		}
		arr = append(arr, val)
	}
	return arr
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	n := i
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

func decodeBinaryElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	length, pos, err := readInt32(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	subtype, pos, err := readByte(buf, pos)
	if err != nil {
		return nil, pos, err
	}

	switch subtype {
	case 2:
		innerLen, p, err := readInt32(buf, pos)
		if err != nil {
			return nil, pos, err
		}
		if innerLen != length-4 {
			return nil, pos, invalidBSON("binary subtype 2 inner length %d does not match outer length %d", innerLen, length-4)
		}
		data, p, err := readRawBytes(buf, p, int(innerLen))
		if err != nil {
			return nil, pos, err
		}
		return Binary{Subtype: subtype, Data: data}, p, nil
	case 3, 4:
		data, p, err := readRawBytes(buf, pos, int(length))
		if err != nil {
			return nil, pos, err
		}
		if length != 16 {
			return Binary{Subtype: subtype, Data: data}, p, nil
		}
		return decodeUUIDBytes(data, d.opts.UUIDSubtype), p, nil
	case 0:
		data, p, err := readRawBytes(buf, pos, int(length))
		if err != nil {
			return nil, pos, err
		}
		return data, p, nil
	default:
		data, p, err := readRawBytes(buf, pos, int(length))
		if err != nil {
			return nil, pos, err
		}
		return Binary{Subtype: subtype, Data: data}, p, nil
	}
}

func decodeUndefinedElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	return nil, pos, nil
}

func decodeObjectIDElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	data, pos, err := readRawBytes(buf, pos, 12)
	if err != nil {
		return nil, pos, err
	}
	var id ObjectID
	copy(id[:], data)
	return id, pos, nil
}

func decodeBooleanElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	b, pos, err := readByte(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return b == 0x01, pos, nil
}

func decodeUTCDateTimeElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	millis, pos, err := readInt64(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return fromMillis(millis, d.opts.TZAware), pos, nil
}

func decodeNullElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	return nil, pos, nil
}

func decodeRegexpElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	pattern, pos, err := readCString(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	flags, pos, err := readCString(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	re := Regexp{Pattern: pattern, Flags: flags}
	if !d.opts.CompileRegex {
		return re, pos, nil
	}
	if compiled, ok := tryCompileRegexp(re); ok {
		return compiled, pos, nil
	}
	return re, pos, nil
}

// tryCompileRegexp attempts to translate a BSON Regexp into a Go
// *regexp.Regexp. "l" (locale) and "x" (verbose/extended) have no Go
// regexp equivalent; those, and any pattern regexp/syntax rejects, fail
// the conversion so the caller can fall back to the raw Regexp value.
func tryCompileRegexp(re Regexp) (*regexp.Regexp, bool) {
	var inline string
	for _, f := range re.Flags {
		switch f {
		case 'i', 'm', 's':
			inline += string(f)
		case 'u':
			// Go regexp is Unicode-aware by default; nothing to add.
		case 'l', 'x':
			return nil, false
		default:
			return nil, false
		}
	}
	pattern := re.Pattern
	if inline != "" {
		pattern = "(?" + inline + ")" + pattern
	}
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, false
	}
	return compiled, true
}

func decodeDBPointerElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	collection, pos, err := readString(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	data, pos, err := readRawBytes(buf, pos, 12)
	if err != nil {
		return nil, pos, err
	}
	var id ObjectID
	copy(id[:], data)
	return DBRef{Collection: collection, ID: id}, pos, nil
}

func decodeCodeElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	code, pos, err := readString(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return Code{Code: code}, pos, nil
}

func decodeSymbolElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	// Symbol decodes as plain String, a documented lossy mapping.
	s, pos, err := readString(buf, pos)
	return s, pos, err
}

func decodeCodeWithScopeElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	// The outer length is read and discarded, not cross-checked against
	// 8 + len(code) + len(scope).
	_, pos, err := readInt32(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	code, pos, err := readString(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	scope, pos, err := decodeDocumentEnvelopeRaw(d, buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return Code{Code: code, Scope: scope}, pos, nil
}

func decodeInt32Elem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	v, pos, err := readInt32(buf, pos)
	return v, pos, err
}

func decodeTimestampElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	increment, pos, err := readUint32(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	seconds, pos, err := readUint32(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return Timestamp{Increment: increment, Seconds: seconds}, pos, nil
}

func decodeInt64Elem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	v, pos, err := readInt64(buf, pos)
	return v, pos, err
}

func decodeMinKeyElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	return MinKey{}, pos, nil
}

func decodeMaxKeyElem(d *decodeState, buf []byte, pos int) (interface{}, int, error) {
	return MaxKey{}, pos, nil
}
