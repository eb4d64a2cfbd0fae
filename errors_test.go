// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package bson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidBSONErrorMessage(t *testing.T) {
	err := invalidBSON("truncated at %d", 5)
	assert.Equal(t, "invalid BSON: truncated at 5", err.Error())
}

func TestInvalidBSONErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	wrapped := wrapInvalidBSON(cause, "decode_all failed")
	require.Error(t, wrapped)
	require.IsType(t, &InvalidBSONError{}, wrapped)
	assert.ErrorIs(t, wrapped, cause)
}

func TestWrapInvalidBSONPreservesExistingKind(t *testing.T) {
	original := invalidBSON("bad length")
	wrapped := wrapInvalidBSON(original, "decode_all failed")
	assert.Same(t, original, wrapped)
}

func TestWrapInvalidBSONNil(t *testing.T) {
	assert.Nil(t, wrapInvalidBSON(nil, "unused"))
}

func TestInvalidDocumentErrorMessage(t *testing.T) {
	err := invalidDocument("a.b", "key %q must not start with '$'", "$x")
	assert.Equal(t, `invalid document at "a.b": key "$x" must not start with '$'`, err.Error())

	noPath := invalidDocument("", "bad")
	assert.Equal(t, "invalid document: bad", noPath.Error())
}

func TestInvalidStringDataErrorMessage(t *testing.T) {
	err := invalidStringData("k")
	assert.Equal(t, `invalid string data at "k": not valid UTF-8`, err.Error())
}

func TestOverflowErrorMessage(t *testing.T) {
	err := overflow("n", "huge")
	assert.Contains(t, err.Error(), "overflow")
	assert.Contains(t, err.Error(), "huge")
}

func TestTypeErrorMessage(t *testing.T) {
	err := typeError("v", struct{}{})
	assert.Contains(t, err.Error(), "cannot encode value of type")
}
