// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package bson

// DecodeAll decodes as many consecutive BSON documents as fill buf
// exactly. Any fault encountered is retagged as InvalidBSON (via
// wrapInvalidBSON), so a caller never needs to distinguish which layer
// of the decode produced the failure.
func DecodeAll(buf []byte, opts DecodeOptions) ([]interface{}, error) {
	var out []interface{}
	rest := buf
	for len(rest) > 0 {
		value, next, err := Decode(rest, opts)
		if err != nil {
			return nil, wrapInvalidBSON(err, "decode_all failed")
		}
		out = append(out, value)
		rest = next
	}
	return out, nil
}

// IsValid reports whether buf is exactly one well-formed BSON document
// with no trailing bytes. Any fault, or any leftover bytes after a
// successful decode, makes this false rather than propagating an error.
func IsValid(buf []byte) bool {
	_, rest, err := Decode(buf, DefaultDecodeOptions())
	if err != nil {
		return false
	}
	return len(rest) == 0
}
