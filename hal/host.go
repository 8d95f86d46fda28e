//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

type hostHAL struct {
	logger  *hostLogger
	led     *hostLED
	gpio    GPIO
	clock   *hostClock
	i2c     *hostI2C
	spi     *hostSPI
	storage *hostStorage
}

// New returns a host HAL implementation, backed by virtual GPIO pins, a
// loopback I2C/SPI bus, and a sandboxed directory for Storage.
func New() HAL {
	logger := &hostLogger{w: os.Stdout}
	led := &hostLED{logger: logger}
	pins := []GPIOPin{newLEDPin("LED", led)}
	for i := 0; i < 7; i++ {
		pins = append(pins, newVirtualPin(fmt.Sprintf("GPIO%d", i+1), GPIOCapInput|GPIOCapOutput|GPIOCapPullUp|GPIOCapPullDown))
	}
	gpio := newVirtualGPIO(pins)
	return &hostHAL{
		logger:  logger,
		led:     led,
		gpio:    gpio,
		clock:   newHostClock(),
		i2c:     newHostI2C(),
		spi:     newHostSPI(),
		storage: newHostStorage(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) LED() LED         { return h.led }
func (h *hostHAL) GPIO() GPIO       { return h.gpio }
func (h *hostHAL) Clock() Clock     { return h.clock }
func (h *hostHAL) I2C() I2C         { return h.i2c }
func (h *hostHAL) SPI() SPI         { return h.spi }
func (h *hostHAL) Storage() Storage { return h.storage }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString("led: HIGH")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString("led: LOW")
}
