//go:build !tinygo

package hal

import "time"

type hostClock struct {
	start time.Time
}

func newHostClock() *hostClock {
	return &hostClock{start: time.Now()}
}

func (c *hostClock) NowMillis() uint64 {
	return uint64(time.Since(c.start) / time.Millisecond)
}
