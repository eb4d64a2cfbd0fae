// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package bson

// HasNative reports whether a native (cgo or assembly) accelerator is
// linked in for the hot encode/decode paths. This build never links
// one, so neither hook is set and HasNative returns false. An accelerator package would
// set nativeEncode/nativeDecode from an init function, flipping this
// to true; both hooks must behave exactly like the portable path,
// including the error kinds they produce.
func HasNative() bool {
	return nativeEncode != nil && nativeDecode != nil
}

// nativeEncode, when non-nil, replaces Encode's pure-Go body.
var nativeEncode func(doc *Document, opts EncodeOptions) ([]byte, error)

// nativeDecode, when non-nil, replaces Decode's pure-Go body.
var nativeDecode func(buf []byte, opts DecodeOptions) (interface{}, []byte, error)
