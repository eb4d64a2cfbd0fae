// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package bson

import "time"

// toMillis converts t to milliseconds since the Unix epoch, the BSON UTC
// datetime wire representation. Sub-millisecond precision is dropped via
// truncating division, not rounded.
func toMillis(t time.Time) int64 {
	utc := t.UTC()
	return utc.Unix()*1000 + int64(utc.Nanosecond())/1e6
}

// fromMillis reconstructs a time.Time from BSON UTC millis. tzAware has no
// observable effect in Go: time.Time always carries a location, so both
// branches produce a time.Time in time.UTC.
func fromMillis(millis int64, tzAware bool) time.Time {
	sec := millis / 1000
	rem := millis % 1000
	if rem < 0 {
		rem += 1000
		sec--
	}
	return time.Unix(sec, rem*int64(time.Millisecond)).UTC()
}
