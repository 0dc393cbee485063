package store

import (
	"strings"
	"time"
)

// stampLayout is the minute-granularity creation prefix layout.
const stampLayout = "2006-01-02-15-04"

// stampPrefixLen is len("YYYY-MM-DD-HH-MM-").
const stampPrefixLen = 17

// timeNow is a package-level variable for testability.
// Tests can replace this to control time in assertions.
var timeNow = time.Now

// NextStamp returns the first minute-granularity stamp at or after now
// whose prefix collides with none of the existing filenames. Advancing
// by one minute carries into hours, days, months, and years through
// ordinary calendar arithmetic, so rapid successive creation within
// one minute still yields strictly ordered, unique filenames.
func NextStamp(now time.Time, existing []string) string {
	stamp := now
	for {
		prefix := stamp.Format(stampLayout) + "-"
		if !prefixTaken(prefix, existing) {
			return stamp.Format(stampLayout)
		}
		stamp = stamp.Add(time.Minute)
	}
}

func prefixTaken(prefix string, existing []string) bool {
	for _, name := range existing {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// DisplayStamp converts a filename prefix to a human-friendly form:
// "2026-02-17-21-27" → "2026-02-17 21:27".
func DisplayStamp(stamp string) string {
	if len(stamp) != stampPrefixLen-1 {
		return stamp
	}
	return stamp[:10] + " " + stamp[11:13] + ":" + stamp[14:16]
}
