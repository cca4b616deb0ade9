package backup

import (
	"archive/zip"
	"encoding/binary"
	"time"
)

// extTimeExtraID is the "UT" extended timestamp extra field, written by
// archive/zip and Info-ZIP. It stores the modification time in Unix seconds.
const extTimeExtraID = 0x5455

// EntryModTime returns the modification time recorded for an archive entry.
//
// When the entry carries an extended timestamp the result has one-second
// precision and is independent of time zones. Otherwise only the MS-DOS
// fields are available; they hold local wall-clock time with two-second
// precision and are interpreted in the local time zone, the same way they
// were written. A zero time is returned when the DOS date is unset.
func EntryModTime(h *zip.FileHeader) time.Time {
	if hasExtendedTimestamp(h.Extra) {
		return h.Modified
	}
	return dosTime(h.ModifiedDate, h.ModifiedTime)
}

func hasExtendedTimestamp(extra []byte) bool {
	for len(extra) >= 4 {
		id := binary.LittleEndian.Uint16(extra[0:2])
		size := int(binary.LittleEndian.Uint16(extra[2:4]))
		extra = extra[4:]
		if size > len(extra) {
			return false
		}
		// Flag bit 0 says the modification time is present.
		if id == extTimeExtraID && size >= 5 && extra[0]&1 != 0 {
			return true
		}
		extra = extra[size:]
	}
	return false
}

func dosTime(date, clock uint16) time.Time {
	if date == 0 {
		return time.Time{}
	}
	return time.Date(
		int(date>>9)+1980,
		time.Month(date>>5&0xf),
		int(date&0x1f),
		int(clock>>11),
		int(clock>>5&0x3f),
		int(clock&0x1f)*2,
		0,
		time.Local,
	)
}
