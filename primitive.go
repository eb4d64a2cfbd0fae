// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package bson

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// readInt32 reads a little-endian int32 at pos, failing InvalidBSON if the
// buffer is too short.
func readInt32(buf []byte, pos int) (int32, int, error) {
	if pos < 0 || pos+4 > len(buf) {
		return 0, pos, invalidBSON("truncated int32 at offset %d", pos)
	}
	return int32(binary.LittleEndian.Uint32(buf[pos : pos+4])), pos + 4, nil
}

// readUint32 reads a little-endian uint32 at pos.
func readUint32(buf []byte, pos int) (uint32, int, error) {
	if pos < 0 || pos+4 > len(buf) {
		return 0, pos, invalidBSON("truncated uint32 at offset %d", pos)
	}
	return binary.LittleEndian.Uint32(buf[pos : pos+4]), pos + 4, nil
}

// readInt64 reads a little-endian int64 at pos.
func readInt64(buf []byte, pos int) (int64, int, error) {
	if pos < 0 || pos+8 > len(buf) {
		return 0, pos, invalidBSON("truncated int64 at offset %d", pos)
	}
	return int64(binary.LittleEndian.Uint64(buf[pos : pos+8])), pos + 8, nil
}

// readDouble reads a little-endian IEEE 754 binary64 at pos.
func readDouble(buf []byte, pos int) (float64, int, error) {
	if pos < 0 || pos+8 > len(buf) {
		return 0, pos, invalidBSON("truncated double at offset %d", pos)
	}
	bits := binary.LittleEndian.Uint64(buf[pos : pos+8])
	return math.Float64frombits(bits), pos + 8, nil
}

// readByte reads a single byte at pos.
func readByte(buf []byte, pos int) (byte, int, error) {
	if pos < 0 || pos >= len(buf) {
		return 0, pos, invalidBSON("truncated read at offset %d", pos)
	}
	return buf[pos], pos + 1, nil
}

// readCString scans forward from pos for the next NUL byte, decodes the
// intervening bytes as UTF-8, and returns the position just past the NUL.
func readCString(buf []byte, pos int) (string, int, error) {
	start := pos
	i := pos
	for i < len(buf) && buf[i] != 0x00 {
		i++
	}
	if i >= len(buf) {
		return "", pos, invalidBSON("unterminated cstring starting at offset %d", start)
	}
	s := buf[start:i]
	if !utf8.Valid(s) {
		return "", pos, invalidBSON("invalid UTF-8 in key at offset %d", start)
	}
	return string(s), i + 1, nil
}

// readString reads a BSON string: int32 length (including the trailing
// NUL), that many bytes, the last of which must be 0x00.
func readString(buf []byte, pos int) (string, int, error) {
	length, pos, err := readInt32(buf, pos)
	if err != nil {
		return "", pos, err
	}
	if length <= 0 {
		return "", pos, invalidBSON("non-positive string length %d at offset %d", length, pos)
	}
	end := pos + int(length)
	if end < pos || end > len(buf) {
		return "", pos, invalidBSON("truncated string at offset %d", pos)
	}
	if buf[end-1] != 0x00 {
		return "", pos, invalidBSON("string missing trailing NUL at offset %d", pos)
	}
	s := buf[pos : end-1]
	if !utf8.Valid(s) {
		return "", pos, invalidBSON("invalid UTF-8 in string at offset %d", pos)
	}
	return string(s), end, nil
}

// readRawBytes reads n raw bytes at pos.
func readRawBytes(buf []byte, pos, n int) ([]byte, int, error) {
	if n < 0 {
		return nil, pos, invalidBSON("negative length %d at offset %d", n, pos)
	}
	end := pos + n
	if end < pos || end > len(buf) {
		return nil, pos, invalidBSON("truncated read of %d bytes at offset %d", n, pos)
	}
	out := make([]byte, n)
	copy(out, buf[pos:end])
	return out, end, nil
}

// --- writers, appending to a byte slice ---

func appendInt32(buf []byte, v int32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	return append(buf, tmp[:]...)
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendInt64(buf []byte, v int64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	return append(buf, tmp[:]...)
}

func appendDouble(buf []byte, v float64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
	return append(buf, tmp[:]...)
}

// appendCString appends s followed by a NUL. checkKey, when true,
// rejects an interior NUL in s, which would otherwise truncate the
// cstring on the wire. Invalid UTF-8 is always rejected.
func appendCString(buf []byte, s string, checkKey bool, path string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return buf, invalidStringData(path)
	}
	if checkKey {
		for i := 0; i < len(s); i++ {
			if s[i] == 0x00 {
				return buf, invalidDocument(path, "key contains an interior NUL byte")
			}
		}
	}
	buf = append(buf, s...)
	return append(buf, 0x00), nil
}

// appendString appends a BSON string payload: int32 length (including
// trailing NUL), the bytes, then NUL.
func appendString(buf []byte, s string, path string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return buf, invalidStringData(path)
	}
	buf = appendInt32(buf, int32(len(s)+1))
	buf = append(buf, s...)
	return append(buf, 0x00), nil
}
