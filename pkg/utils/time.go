package utils

import "time"

// NowRFC3339 returns the current time formatted for response timestamps
func NowRFC3339() string {
	return time.Now().Format(time.RFC3339)
}

// MillisSince returns whole milliseconds elapsed since start, for
// duration fields in request logs
func MillisSince(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
