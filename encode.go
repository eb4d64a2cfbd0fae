// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package bson

import (
	"math"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// EncodeOptions configures Encode.
type EncodeOptions struct {
	// CheckKeys, when true, rejects keys starting with "$" or containing
	// "." (the legacy MongoDB key restrictions) with an
	// InvalidDocumentError, at every nesting level except the synthetic
	// DBRef document and the scope document of a Code value. A key
	// containing an interior NUL byte is rejected
	// regardless of CheckKeys.
	CheckKeys bool
	// UUIDSubtype selects the wire subtype and byte layout used when
	// encoding a uuid.UUID value.
	UUIDSubtype UUIDSubtype
}

// DefaultEncodeOptions returns CheckKeys true, UUIDSubtype standard.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{CheckKeys: true, UUIDSubtype: UUIDStandard}
}

// Encode serializes doc to its BSON wire form. At the top level only,
// a field named "_id" is moved to the front of the element list if
// present; nested documents keep their given order untouched.
func Encode(doc *Document, opts EncodeOptions) ([]byte, error) {
	if nativeEncode != nil {
		return nativeEncode(doc, opts)
	}
	return encodeDocument("", doc, opts, true)
}

// encodeDocument writes one document envelope: a placeholder length,
// the e_list, and the terminating NUL, then backpatches the length.
func encodeDocument(path string, doc *Document, opts EncodeOptions, topLevel bool) ([]byte, error) {
	buf := make([]byte, 4, 64)

	keys := orderedKeys(doc, topLevel)
	var err error
	for _, key := range keys {
		val, _ := doc.Get(key)
		buf, err = encodeElement(buf, catpath(path, key), key, val, opts)
		if err != nil {
			return nil, err
		}
	}
	buf = append(buf, 0x00)

	putLength(buf)
	return buf, nil
}

// orderedKeys returns doc's keys in encoding order: unchanged, except
// that at the top level a key named "_id" (if present) is moved first.
func orderedKeys(doc *Document, topLevel bool) []string {
	keys := doc.Keys()
	if !topLevel {
		return keys
	}
	for i, k := range keys {
		if k == "_id" && i != 0 {
			reordered := make([]string, 0, len(keys))
			reordered = append(reordered, "_id")
			reordered = append(reordered, keys[:i]...)
			reordered = append(reordered, keys[i+1:]...)
			return reordered
		}
	}
	return keys
}

func putLength(buf []byte) {
	n := uint32(len(buf))
	buf[0] = byte(n)
	buf[1] = byte(n >> 8)
	buf[2] = byte(n >> 16)
	buf[3] = byte(n >> 24)
}

// catpath appends name to an error-reporting path, joined with ".".
func catpath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// checkKey rejects a key shape forbidden by CheckKeys: a leading "$"
// or a "." anywhere in the key. It applies at every nesting level except
// the synthetic DBRef document and a Code value's scope document.
// Interior NUL bytes are rejected by
// appendCString for every key regardless of CheckKeys.
func checkKey(path, key string, opts EncodeOptions) error {
	if !opts.CheckKeys {
		return nil
	}
	if len(key) > 0 && key[0] == '$' {
		return invalidDocument(path, "key %q must not start with '$'", key)
	}
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			return invalidDocument(path, "key %q must not contain '.'", key)
		}
	}
	return nil
}

// encodeElement dispatches on the dynamic type of val and appends one
// complete element (tag, key, payload) to buf.
func encodeElement(buf []byte, path, key string, val interface{}, opts EncodeOptions) ([]byte, error) {
	if err := checkKey(path, key, opts); err != nil {
		return nil, err
	}

	switch v := val.(type) {
	case nil:
		return encodeNullElem(buf, key, opts)
	case float64:
		return encodeDoubleElem(buf, key, v, opts)
	case string:
		return encodeStringElem(buf, key, v, opts)
	case bool:
		return encodeBooleanElem(buf, key, v, opts)
	case int32:
		return encodeInt32Elem(buf, key, v, opts)
	case int64:
		return encodeInt64Elem(buf, key, v, opts)
	case int:
		return encodeIntElem(buf, path, key, v, opts)
	case *big.Int:
		return encodeBigIntElem(buf, path, key, v, opts)
	case *Document:
		return encodeEmbeddedDocumentElem(buf, path, key, v, opts)
	case Array:
		return encodeArrayElem(buf, path, key, v, opts)
	case []byte:
		return encodeBinaryElem(buf, key, Binary{Subtype: 0, Data: v}, opts)
	case Binary:
		return encodeBinaryElem(buf, key, v, opts)
	case uuid.UUID:
		return encodeUUIDElem(buf, key, v, opts)
	case ObjectID:
		return encodeObjectIDElem(buf, key, v, opts)
	case time.Time:
		return encodeUTCDateTimeElem(buf, key, v, opts)
	case Regexp:
		return encodeRegexpElem(buf, key, v, opts)
	case Code:
		return encodeCodeElem(buf, path, key, v, opts)
	case Timestamp:
		return encodeTimestampElem(buf, key, v, opts)
	case MinKey:
		return encodeMinKeyElem(buf, key, opts)
	case MaxKey:
		return encodeMaxKeyElem(buf, key, opts)
	case DBRef:
		return encodeDBRefElem(buf, path, key, v, opts)
	default:
		return nil, typeError(path, val)
	}
}

func encodeNullElem(buf []byte, key string, opts EncodeOptions) ([]byte, error) {
	buf = append(buf, tagNull)
	return appendCString(buf, key, true, key)
}

func encodeDoubleElem(buf []byte, key string, v float64, opts EncodeOptions) ([]byte, error) {
	buf = append(buf, tagDouble)
	buf, err := appendCString(buf, key, true, key)
	if err != nil {
		return nil, err
	}
	return appendDouble(buf, v), nil
}

func encodeStringElem(buf []byte, key, v string, opts EncodeOptions) ([]byte, error) {
	buf = append(buf, tagString)
	buf, err := appendCString(buf, key, true, key)
	if err != nil {
		return nil, err
	}
	return appendString(buf, v, key)
}

func encodeBooleanElem(buf []byte, key string, v bool, opts EncodeOptions) ([]byte, error) {
	buf = append(buf, tagBoolean)
	buf, err := appendCString(buf, key, true, key)
	if err != nil {
		return nil, err
	}
	if v {
		return append(buf, 0x01), nil
	}
	return append(buf, 0x00), nil
}

func encodeInt32Elem(buf []byte, key string, v int32, opts EncodeOptions) ([]byte, error) {
	buf = append(buf, tagInt32)
	buf, err := appendCString(buf, key, true, key)
	if err != nil {
		return nil, err
	}
	return appendInt32(buf, v), nil
}

func encodeInt64Elem(buf []byte, key string, v int64, opts EncodeOptions) ([]byte, error) {
	buf = append(buf, tagInt64)
	buf, err := appendCString(buf, key, true, key)
	if err != nil {
		return nil, err
	}
	return appendInt64(buf, v), nil
}

// encodeIntElem selects integer width by magnitude: a native Go int
// encodes as Int32 if it fits, else as Int64.
func encodeIntElem(buf []byte, path, key string, v int, opts EncodeOptions) ([]byte, error) {
	if int64(int32(v)) == int64(v) {
		return encodeInt32Elem(buf, key, int32(v), opts)
	}
	return encodeInt64Elem(buf, key, int64(v), opts)
}

var (
	minInt32Big = big.NewInt(math.MinInt32)
	maxInt32Big = big.NewInt(math.MaxInt32)
	minInt64Big = big.NewInt(math.MinInt64)
	maxInt64Big = big.NewInt(math.MaxInt64)
)

// encodeBigIntElem is encodeIntElem for values that may exceed the
// native int range: a *big.Int encodes as Int32 if it fits, else Int64
// if it fits, else the document is rejected with Overflow.
func encodeBigIntElem(buf []byte, path, key string, v *big.Int, opts EncodeOptions) ([]byte, error) {
	if v.Cmp(minInt32Big) >= 0 && v.Cmp(maxInt32Big) <= 0 {
		return encodeInt32Elem(buf, key, int32(v.Int64()), opts)
	}
	if v.Cmp(minInt64Big) >= 0 && v.Cmp(maxInt64Big) <= 0 {
		return encodeInt64Elem(buf, key, v.Int64(), opts)
	}
	return nil, overflow(path, v)
}

func encodeEmbeddedDocumentElem(buf []byte, path, key string, v *Document, opts EncodeOptions) ([]byte, error) {
	buf = append(buf, tagEmbeddedDocument)
	buf, err := appendCString(buf, key, true, key)
	if err != nil {
		return nil, err
	}
	sub, err := encodeDocument(catpath(path, key), v, opts, false)
	if err != nil {
		return nil, err
	}
	return append(buf, sub...), nil
}

// encodeArrayElem encodes val as a BSON Array: a document whose keys
// are the decimal element indices in order.
func encodeArrayElem(buf []byte, path, key string, val Array, opts EncodeOptions) ([]byte, error) {
	buf = append(buf, tagArray)
	buf, err := appendCString(buf, key, true, key)
	if err != nil {
		return nil, err
	}
	arrPath := catpath(path, key)
	arrDoc := MakeDocument(len(val))
	for i, elem := range val {
		arrDoc.Append(itoa(i), elem)
	}
	// The synthetic index keys are plain digits, so the caller's
	// CheckKeys passes through unchanged: documents nested inside array
	// elements still get their keys checked.
	sub, err := encodeDocument(arrPath, arrDoc, opts, false)
	if err != nil {
		return nil, err
	}
	return append(buf, sub...), nil
}

func encodeBinaryElem(buf []byte, key string, val Binary, opts EncodeOptions) ([]byte, error) {
	buf = append(buf, tagBinary)
	buf, err := appendCString(buf, key, true, key)
	if err != nil {
		return nil, err
	}
	if val.Subtype == 2 {
		buf = appendInt32(buf, int32(len(val.Data)+4))
		buf = append(buf, val.Subtype)
		buf = appendInt32(buf, int32(len(val.Data)))
		return append(buf, val.Data...), nil
	}
	buf = appendInt32(buf, int32(len(val.Data)))
	buf = append(buf, val.Subtype)
	return append(buf, val.Data...), nil
}

func encodeUUIDElem(buf []byte, key string, v uuid.UUID, opts EncodeOptions) ([]byte, error) {
	buf = append(buf, tagBinary)
	buf, err := appendCString(buf, key, true, key)
	if err != nil {
		return nil, err
	}
	payload := encodeUUIDBytes(v, opts.UUIDSubtype)
	buf = appendInt32(buf, int32(len(payload)))
	buf = append(buf, opts.UUIDSubtype.wireSubtype())
	return append(buf, payload...), nil
}

func encodeObjectIDElem(buf []byte, key string, v ObjectID, opts EncodeOptions) ([]byte, error) {
	buf = append(buf, tagObjectID)
	buf, err := appendCString(buf, key, true, key)
	if err != nil {
		return nil, err
	}
	return append(buf, v[:]...), nil
}

func encodeUTCDateTimeElem(buf []byte, key string, v time.Time, opts EncodeOptions) ([]byte, error) {
	buf = append(buf, tagUTCDateTime)
	buf, err := appendCString(buf, key, true, key)
	if err != nil {
		return nil, err
	}
	return appendInt64(buf, toMillis(v)), nil
}

// canonicalFlagOrder is the fixed order regex flags are written in.
const canonicalFlagOrder = "ilmsux"

func encodeRegexpElem(buf []byte, key string, v Regexp, opts EncodeOptions) ([]byte, error) {
	buf = append(buf, tagRegexp)
	buf, err := appendCString(buf, key, true, key)
	if err != nil {
		return nil, err
	}
	buf, err = appendCString(buf, v.Pattern, true, key)
	if err != nil {
		return nil, err
	}
	return appendCString(buf, canonicalizeFlags(v.Flags), false, "")
}

// canonicalizeFlags reorders flags into canonical order and drops
// duplicates and unknown characters.
func canonicalizeFlags(flags string) string {
	present := make(map[byte]bool, len(flags))
	for i := 0; i < len(flags); i++ {
		present[flags[i]] = true
	}
	out := make([]byte, 0, len(canonicalFlagOrder))
	for i := 0; i < len(canonicalFlagOrder); i++ {
		if present[canonicalFlagOrder[i]] {
			out = append(out, canonicalFlagOrder[i])
		}
	}
	return string(out)
}

// encodeDBRefElem encodes a DBRef back to its document-level shape
// {$ref, $id, [$db], ...Extra} (tag 0x03), the inverse of decode's
// rewriteDBRef, rather than the legacy DBPointer tag.
func encodeDBRefElem(buf []byte, path, key string, v DBRef, opts EncodeOptions) ([]byte, error) {
	doc := MakeDocument(4)
	doc.Append("$ref", v.Collection)
	doc.Append("$id", v.ID)
	if v.Database != nil {
		doc.Append("$db", *v.Database)
	}
	if v.Extra != nil {
		v.Extra.Range(func(k string, val interface{}) bool {
			doc.Append(k, val)
			return true
		})
	}
	noCheckOpts := opts
	noCheckOpts.CheckKeys = false
	return encodeEmbeddedDocumentElem(buf, path, key, doc, noCheckOpts)
}

func encodeCodeElem(buf []byte, path, key string, v Code, opts EncodeOptions) ([]byte, error) {
	if v.Scope == nil {
		buf = append(buf, tagJavaScript)
		buf, err := appendCString(buf, key, true, key)
		if err != nil {
			return nil, err
		}
		return appendString(buf, v.Code, key)
	}

	buf = append(buf, tagCodeWithScope)
	buf, err := appendCString(buf, key, true, key)
	if err != nil {
		return nil, err
	}
	inner := make([]byte, 4)
	inner, err = appendString(inner, v.Code, key)
	if err != nil {
		return nil, err
	}
	noCheckOpts := opts
	noCheckOpts.CheckKeys = false
	scope, err := encodeDocument(catpath(path, key), v.Scope, noCheckOpts, false)
	if err != nil {
		return nil, err
	}
	inner = append(inner, scope...)
	putLength(inner)
	return append(buf, inner...), nil
}

func encodeTimestampElem(buf []byte, key string, v Timestamp, opts EncodeOptions) ([]byte, error) {
	buf = append(buf, tagTimestamp)
	buf, err := appendCString(buf, key, true, key)
	if err != nil {
		return nil, err
	}
	buf = appendUint32(buf, v.Increment)
	return appendUint32(buf, v.Seconds), nil
}

func encodeMinKeyElem(buf []byte, key string, opts EncodeOptions) ([]byte, error) {
	buf = append(buf, tagMinKey)
	return appendCString(buf, key, true, key)
}

func encodeMaxKeyElem(buf []byte, key string, opts EncodeOptions) ([]byte, error) {
	buf = append(buf, tagMaxKey)
	return appendCString(buf, key, true, key)
}
