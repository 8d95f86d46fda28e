//go:build tinygo && !baremetal

package hal

import (
	"fmt"
	"runtime"
	"time"
)

type tinyGoHostHAL struct {
	logger  *tinyGoHostLogger
	led     *tinyGoHostLED
	gpio    GPIO
	clock   *tinyGoHostClock
	i2c     *hostI2C
	spi     *hostSPI
	storage *hostStorage
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping, so I2C/SPI fall back to the same loopback buses as the
// non-TinyGo host build and Storage to a sandboxed directory.
func New() HAL {
	l := &tinyGoHostLogger{}
	return &tinyGoHostHAL{
		logger:  l,
		led:     &tinyGoHostLED{logger: l},
		gpio:    newVirtualGPIO(nil),
		clock:   newTinyGoHostClock(),
		i2c:     newHostI2C(),
		spi:     newHostSPI(),
		storage: newHostStorage(),
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) LED() LED         { return h.led }
func (h *tinyGoHostHAL) GPIO() GPIO       { return h.gpio }
func (h *tinyGoHostHAL) Clock() Clock     { return h.clock }
func (h *tinyGoHostHAL) I2C() I2C         { return h.i2c }
func (h *tinyGoHostHAL) SPI() SPI         { return h.spi }
func (h *tinyGoHostHAL) Storage() Storage { return h.storage }

type tinyGoHostClock struct {
	start time.Time
}

func newTinyGoHostClock() *tinyGoHostClock {
	return &tinyGoHostClock{start: time.Now()}
}

func (c *tinyGoHostClock) NowMillis() uint64 {
	return uint64(time.Since(c.start) / time.Millisecond)
}

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}

type tinyGoHostLED struct {
	on     bool
	logger *tinyGoHostLogger
}

func (l *tinyGoHostLED) High() {
	l.on = true
	l.logger.WriteLineString(fmt.Sprintf("led: HIGH (tinygo/%s)", runtime.GOOS))
}

func (l *tinyGoHostLED) Low() {
	l.on = false
	l.logger.WriteLineString(fmt.Sprintf("led: LOW (tinygo/%s)", runtime.GOOS))
}
