package index

import (
	"encoding/binary"
	"time"
)

// key = undated(1) + invSec(8) + invNsec(4) + 0x00 + slug
//
// Ascending key order is newest first; undated articles sort after every
// dated one, and equal times fall back to the slug. Seconds and nanoseconds
// are stored apart so any year a date column can hold orders correctly.
const dateKeyHeader = 1 + 8 + 4 + 1

func makeDateSlugKey(date time.Time, slug string) []byte {
	buf := make([]byte, dateKeyHeader, dateKeyHeader+len(slug))

	if date.IsZero() {
		buf[0] = 1
	} else {
		// flip the sign bit so pre-1970 dates compare as smaller
		sec := uint64(date.Unix()) ^ (1 << 63)
		binary.BigEndian.PutUint64(buf[1:9], ^sec)
		binary.BigEndian.PutUint32(buf[9:13], ^uint32(date.Nanosecond()))
	}
	buf[13] = 0x00
	return append(buf, slug...)
}

func slugFromDateSlugKey(k []byte) string {
	if len(k) <= dateKeyHeader || k[dateKeyHeader-1] != 0x00 {
		return ""
	}
	return string(k[dateKeyHeader:])
}
