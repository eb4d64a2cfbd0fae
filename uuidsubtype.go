// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package bson

import "github.com/google/uuid"

// UUIDSubtype selects which of the three historically divergent byte
// orderings is used when reading or writing a Binary subtype 3/4 payload
// as a uuid.UUID. See doc.go for the on-wire layout each produces.
type UUIDSubtype int

const (
	// UUIDStandard stores the UUID's plain big-endian byte form. Uses
	// wire subtype 4.
	UUIDStandard UUIDSubtype = iota
	// UUIDJavaLegacy reverses each 8-byte half of the UUID's big-endian
	// form, matching the legacy Java driver. Uses wire subtype 3.
	UUIDJavaLegacy
	// UUIDCSharpLegacy stores the little-endian Microsoft GUID layout,
	// matching the legacy C# driver. Uses wire subtype 3.
	UUIDCSharpLegacy
)

// wireSubtype returns the Binary subtype byte used on the wire for this
// sub-encoding.
func (s UUIDSubtype) wireSubtype() byte {
	if s == UUIDStandard {
		return 4
	}
	return 3
}

// encodeUUIDBytes returns the 16 payload bytes for u under sub-encoding s.
func encodeUUIDBytes(u uuid.UUID, s UUIDSubtype) []byte {
	raw := u[:] // big-endian, as produced by uuid.UUID
	switch s {
	case UUIDJavaLegacy:
		out := make([]byte, 16)
		reverseInto(out[0:8], raw[0:8])
		reverseInto(out[8:16], raw[8:16])
		return out
	case UUIDCSharpLegacy:
		return toGUIDLittleEndian(raw)
	default: // UUIDStandard
		out := make([]byte, 16)
		copy(out, raw)
		return out
	}
}

// decodeUUIDBytes interprets 16 payload bytes as a uuid.UUID under
// sub-encoding s.
func decodeUUIDBytes(data []byte, s UUIDSubtype) uuid.UUID {
	var out [16]byte
	switch s {
	case UUIDJavaLegacy:
		reverseInto(out[0:8], data[0:8])
		reverseInto(out[8:16], data[8:16])
	case UUIDCSharpLegacy:
		copy(out[:], fromGUIDLittleEndian(data))
	default: // UUIDStandard
		copy(out[:], data)
	}
	return uuid.UUID(out)
}

func reverseInto(dst, src []byte) {
	for i := range src {
		dst[i] = src[len(src)-1-i]
	}
}

// toGUIDLittleEndian converts a big-endian UUID into the Microsoft GUID
// byte layout: the first three fields (4+2+2 bytes) are byte-reversed,
// the remaining 8 bytes (clock sequence + node) are left as-is.
func toGUIDLittleEndian(be []byte) []byte {
	out := make([]byte, 16)
	reverseInto(out[0:4], be[0:4])
	reverseInto(out[4:6], be[4:6])
	reverseInto(out[6:8], be[6:8])
	copy(out[8:16], be[8:16])
	return out
}

// fromGUIDLittleEndian is the inverse of toGUIDLittleEndian.
func fromGUIDLittleEndian(le []byte) []byte {
	out := make([]byte, 16)
	reverseInto(out[0:4], le[0:4])
	reverseInto(out[4:6], le[4:6])
	reverseInto(out[6:8], le[6:8])
	copy(out[8:16], le[8:16])
	return out
}
