package models

import (
	"strconv"
	"time"
)

// isoMillis matches the timestamp shape already present in stored records
// (UTC with millisecond precision and a literal Z).
const isoMillis = "2006-01-02T15:04:05.000Z"

// ISOTime formats t the way every stored createdAt/updatedAt field is kept.
func ISOTime(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

// ParseISOTime reads a stored timestamp; the zero time is returned for
// anything unparseable so read-side queries can treat it as "long ago".
func ParseISOTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// TimeID builds the time-based string IDs used for projects, tasks and
// events (millisecond epoch, matching existing records).
func TimeID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
