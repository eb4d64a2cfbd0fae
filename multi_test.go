// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package bson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAllMultipleDocuments(t *testing.T) {
	doc1 := MakeDocument(1)
	doc1.Append("a", int32(1))
	doc2 := MakeDocument(1)
	doc2.Append("b", int32(2))

	buf1, err := Encode(doc1, DefaultEncodeOptions())
	require.NoError(t, err)
	buf2, err := Encode(doc2, DefaultEncodeOptions())
	require.NoError(t, err)

	all := append(append([]byte{}, buf1...), buf2...)
	docs, err := DecodeAll(all, DefaultDecodeAllOptions())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	v, _ := docs[0].(*Document).Get("a")
	assert.Equal(t, int32(1), v)
	v, _ = docs[1].(*Document).Get("b")
	assert.Equal(t, int32(2), v)
}

func TestDecodeAllEmptyInput(t *testing.T) {
	docs, err := DecodeAll(nil, DefaultDecodeAllOptions())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

// Any structural fault anywhere in the stream aborts the whole call
// and surfaces as InvalidBSON, re-tagging lower-level faults.
func TestDecodeAllAbortsOnFault(t *testing.T) {
	doc := MakeDocument(1)
	doc.Append("a", int32(1))
	buf, err := Encode(doc, DefaultEncodeOptions())
	require.NoError(t, err)

	truncatedSecond := append(append([]byte{}, buf...), buf[:len(buf)-2]...)
	_, err = DecodeAll(truncatedSecond, DefaultDecodeAllOptions())
	require.Error(t, err)
	require.IsType(t, &InvalidBSONError{}, err)
}

// IsValid(b) iff Decode(b) succeeds and consumes all of b.
func TestIsValidMatchesDecodeConsumption(t *testing.T) {
	doc := MakeDocument(2)
	doc.Append("a", int32(1))
	doc.Append("nested", MakeDocument(0))
	buf, err := Encode(doc, DefaultEncodeOptions())
	require.NoError(t, err)

	assert.True(t, IsValid(buf))

	trailingGarbage := append(append([]byte{}, buf...), 0x01)
	val, rest, decErr := Decode(trailingGarbage, DefaultDecodeOptions())
	require.NoError(t, decErr)
	require.NotEmpty(t, rest)
	_ = val
	assert.False(t, IsValid(trailingGarbage))

	truncated := buf[:len(buf)-1]
	_, _, decErr = Decode(truncated, DefaultDecodeOptions())
	require.Error(t, decErr)
	assert.False(t, IsValid(truncated))
}
