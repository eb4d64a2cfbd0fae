// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package bson

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvalidBSONError reports a structural failure found while decoding:
// truncation, a missing trailing NUL, a bad length field, an unknown
// element tag, or invalid UTF-8 in a key or string.
type InvalidBSONError struct {
	Reason string
	cause  error
}

func (e *InvalidBSONError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("invalid BSON: %s: %v", e.Reason, e.cause)
	}
	return fmt.Sprintf("invalid BSON: %s", e.Reason)
}

func (e *InvalidBSONError) Unwrap() error { return e.cause }

// invalidBSON builds an InvalidBSONError with no further cause.
func invalidBSON(format string, args ...interface{}) error {
	return &InvalidBSONError{Reason: fmt.Sprintf(format, args...)}
}

// wrapInvalidBSON re-tags an arbitrary error as InvalidBSON, preserving it
// as the cause so errors.Unwrap/errors.Is can still recover it. Used by
// DecodeAll, where a fault from a lower layer must not leak its own error
// kind out of multi-document decode.
func wrapInvalidBSON(err error, reason string) error {
	if err == nil {
		return nil
	}
	if ib, ok := err.(*InvalidBSONError); ok {
		return ib
	}
	return &InvalidBSONError{Reason: reason, cause: errors.WithStack(err)}
}

// InvalidDocumentError reports an encode-time caller-policy failure: a
// non-string key, a forbidden '$'/'.' key when key checking is enabled, or
// a NUL byte inside a key or regex pattern.
type InvalidDocumentError struct {
	Path   string
	Reason string
}

func (e *InvalidDocumentError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid document at %q: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("invalid document: %s", e.Reason)
}

func invalidDocument(path, format string, args ...interface{}) error {
	return &InvalidDocumentError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// InvalidStringDataError reports an encode-time key or string value that
// is not valid UTF-8.
type InvalidStringDataError struct {
	Path string
}

func (e *InvalidStringDataError) Error() string {
	return fmt.Sprintf("invalid string data at %q: not valid UTF-8", e.Path)
}

func invalidStringData(path string) error {
	return &InvalidStringDataError{Path: path}
}

// OverflowError reports an integer outside the signed 64-bit range.
type OverflowError struct {
	Path  string
	Value interface{}
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("overflow at %q: %v does not fit in a signed 64-bit integer", e.Path, e.Value)
}

func overflow(path string, value interface{}) error {
	return &OverflowError{Path: path, Value: value}
}

// TypeError reports a value whose variant the encoder does not support.
type TypeError struct {
	Path  string
	Value interface{}
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("cannot encode value of type %T at %q", e.Value, e.Path)
}

func typeError(path string, value interface{}) error {
	return &TypeError{Path: path, Value: value}
}
