// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package bson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasNativeDefaultsFalse(t *testing.T) {
	assert.False(t, HasNative())
}

func TestHasNativeReflectsHooks(t *testing.T) {
	prevEncode, prevDecode := nativeEncode, nativeDecode
	defer func() { nativeEncode, nativeDecode = prevEncode, prevDecode }()

	nativeEncode = func(doc *Document, opts EncodeOptions) ([]byte, error) { return nil, nil }
	nativeDecode = func(buf []byte, opts DecodeOptions) (interface{}, []byte, error) { return nil, nil, nil }
	assert.True(t, HasNative())
}

func TestNativeHooksReplacePortablePath(t *testing.T) {
	prevEncode, prevDecode := nativeEncode, nativeDecode
	defer func() { nativeEncode, nativeDecode = prevEncode, prevDecode }()

	sentinel := []byte{0xDE, 0xAD}
	nativeEncode = func(doc *Document, opts EncodeOptions) ([]byte, error) { return sentinel, nil }
	nativeDecode = func(buf []byte, opts DecodeOptions) (interface{}, []byte, error) {
		return MakeDocument(0), buf, nil
	}

	got, err := Encode(MakeDocument(0), DefaultEncodeOptions())
	assert.NoError(t, err)
	assert.Equal(t, sentinel, got)

	val, rest, err := Decode([]byte{0x01}, DefaultDecodeOptions())
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x01}, rest)
	assert.Equal(t, 0, val.(*Document).Len())
}
