package services

import "time"

// Clock yields the current ledger height. Heights are the time base for
// record timestamps and grant expiry; they never decrease.
type Clock interface {
	Now() uint64
}

// WallClock derives a ledger height from wall time, one height per interval.
// With the default interval a grant duration of 52560 heights spans roughly a
// year.
type WallClock struct {
	Interval time.Duration
}

func (c WallClock) Now() uint64 {
	interval := c.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	seconds := uint64(interval / time.Second)
	if seconds == 0 {
		// sub-second intervals floor to one height per second
		seconds = 1
	}
	return uint64(time.Now().Unix()) / seconds
}
