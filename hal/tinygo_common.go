//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

type tinyGoClock struct {
	start time.Time
}

func newTinyGoClock() *tinyGoClock {
	return &tinyGoClock{start: time.Now()}
}

func (c *tinyGoClock) NowMillis() uint64 {
	return uint64(time.Since(c.start) / time.Millisecond)
}

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }
