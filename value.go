// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package bson

import (
	"fmt"

	"github.com/google/uuid"
)

// Array is the Go representation of a BSON array: a nested document whose
// keys are the decimal indices "0", "1", ... decoded back into a plain,
// order-preserving slice. Elements may be any supported Value.
type Array []interface{}

// Binary is the Go representation of a BSON Binary element whose subtype
// is not one of the specially-handled ones (0 delivers a raw []byte, 3/4
// deliver a uuid.UUID per the configured UUIDSubtype).
type Binary struct {
	Subtype byte
	Data    []byte
}

// ObjectID is a 12-byte BSON ObjectId. Unlike a []byte it is a value type,
// so a decoded ObjectID never aliases the buffer it was parsed from.
type ObjectID [12]byte

func (id ObjectID) String() string {
	return fmt.Sprintf("ObjectID(%x)", [12]byte(id))
}

// Regexp is an uninterpreted BSON regular expression: a pattern and its
// flag characters exactly as they appeared on the wire (or as supplied by
// the caller). See DecodeOptions.CompileRegex for the convenience of
// getting a compiled *regexp.Regexp back from Decode instead.
type Regexp struct {
	Pattern string
	Flags   string // canonical order: i l m s u x
}

// Code is a JavaScript Code value, optionally carrying a Scope document
// (BSON CodeWithScope). A nil Scope encodes as tag 0x0D (plain Code); a
// non-nil Scope encodes as tag 0x0F (Code w/ scope).
type Code struct {
	Code  string
	Scope *Document
}

// Timestamp is the BSON internal replication Timestamp. On the wire the
// increment precedes the seconds field; Timestamp keeps them as separate
// fields rather than packing them into one int64 so that order is not
// load-bearing in Go source the way it is in the wire format.
type Timestamp struct {
	Seconds   uint32
	Increment uint32
}

// DBRef is a logical cross-collection reference. It is produced both by
// the legacy DBPointer element (tag 0x0C, where ID is always an ObjectID)
// and by the document-level {$ref, $id, [$db], ...extra} rewrite (where ID
// may be any Value). Database is nil when no $db was present.
type DBRef struct {
	Collection string
	ID         interface{}
	Database   *string
	Extra      *Document
}

// MinKey compares lower than every other BSON value.
type MinKey struct{}

// MaxKey compares higher than every other BSON value.
type MaxKey struct{}

// UUID re-exports uuid.UUID as the Value used for Binary subtypes 3/4.
type UUID = uuid.UUID

// field is one (key, value) pair of a Document, kept in insertion order.
type field struct {
	key   string
	value interface{}
}

// Document is an ordered mapping from string keys to Values: the BSON
// document type. Order is preserved across decode and encode (the single
// exception being "_id" promotion at the top level of Encode). Document
// intentionally does not de-duplicate keys on Append, matching what the
// wire format itself permits; Set provides overwrite-if-present semantics
// for callers building a document programmatically.
type Document struct {
	fields []field
}

// NewDocument builds a Document from alternating key/value arguments, e.g.
// NewDocument("name", "ada", "age", int32(30)).
func NewDocument(pairs ...interface{}) (*Document, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("bson: NewDocument: odd number of arguments: %d", len(pairs))
	}
	doc := MakeDocument(len(pairs) / 2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, invalidDocument("", "NewDocument: argument %d is %T, not a string key", i, pairs[i])
		}
		doc.Append(key, pairs[i+1])
	}
	return doc, nil
}

// MakeDocument creates an empty Document with the given field capacity.
func MakeDocument(cap int) *Document {
	return &Document{fields: make([]field, 0, cap)}
}

// Append adds (key, value) to the end of the Document, regardless of
// whether key is already present. Used by the decoder, which must
// reproduce the wire order (and wire duplicates, however unlikely)
// exactly.
func (d *Document) Append(key string, value interface{}) *Document {
	d.fields = append(d.fields, field{key: key, value: value})
	return d
}

// Set overwrites the value of the first occurrence of key, or appends a
// new field if key is not present.
func (d *Document) Set(key string, value interface{}) *Document {
	for i := range d.fields {
		if d.fields[i].key == key {
			d.fields[i].value = value
			return d
		}
	}
	return d.Append(key, value)
}

// Get returns the value of the first occurrence of key and whether it was
// found.
func (d *Document) Get(key string) (interface{}, bool) {
	for _, f := range d.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Delete removes the first occurrence of key, if any.
func (d *Document) Delete(key string) {
	for i := range d.fields {
		if d.fields[i].key == key {
			d.fields = append(d.fields[:i], d.fields[i+1:]...)
			return
		}
	}
}

// Len returns the number of fields.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.fields)
}

// Keys returns the field keys in order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.fields))
	for i, f := range d.fields {
		keys[i] = f.key
	}
	return keys
}

// Range calls fn for every field in order, stopping early if fn returns
// false.
func (d *Document) Range(fn func(key string, value interface{}) bool) {
	for _, f := range d.fields {
		if !fn(f.key, f.value) {
			return
		}
	}
}

// Lookup walks a path of keys through nested Documents, returning the
// value found at the end of the path, if any.
func (d *Document) Lookup(path ...string) (interface{}, bool) {
	var cur interface{} = d
	for _, key := range path {
		doc, ok := cur.(*Document)
		if !ok {
			return nil, false
		}
		val, ok := doc.Get(key)
		if !ok {
			return nil, false
		}
		cur = val
	}
	return cur, true
}
