// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package bson

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"sync/atomic"
	"time"
)

// processUnique is the 5-byte middle section shared by every ObjectID
// minted in this process, drawn from crypto/rand once at startup.
var processUnique = mustRandomBytes(5)

// objectIDCounter is the 3-byte big-endian tail of generated ObjectIDs,
// seeded randomly at startup and incremented atomically per ID. Only the
// low 24 bits are kept.
var objectIDCounter = binary.BigEndian.Uint32(append([]byte{0}, mustRandomBytes(3)...))

func mustRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic("bson: cannot read random bytes for ObjectID generation: " + err.Error())
	}
	return b
}

// NewObjectID mints a unique ObjectID:
//
//	+---+---+---+---+---+---+---+---+---+---+---+---+
//	|       A       |         B         |     C     |
//	+---+---+---+---+---+---+---+---+---+---+---+---+
//	  0   1   2   3   4   5   6   7   8   9  10  11
//	A = unix time (big endian), B = per-process random bytes,
//	C = incrementing counter (big endian), randomly seeded
func NewObjectID() ObjectID {
	var id ObjectID
	binary.BigEndian.PutUint32(id[0:4], uint32(time.Now().Unix()))
	copy(id[4:9], processUnique)
	c := atomic.AddUint32(&objectIDCounter, 1)
	id[9] = byte(c >> 16)
	id[10] = byte(c >> 8)
	id[11] = byte(c)
	return id
}
