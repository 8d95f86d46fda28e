//go:build tinygo && baremetal && !picocalc

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger  *uartLogger
	led     *pinLED
	gpio    GPIO
	clock   *tinyGoClock
	i2c     *machineI2C
	spi     *machineSPI
	storage *sdStorage
}

// New returns a Pico 2 (RP2350) HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	led := &pinLED{pin: ledPin}
	return &tinyGoHAL{
		logger:  &uartLogger{uart: uart},
		led:     led,
		gpio:    newVirtualGPIO([]GPIOPin{newLEDPin("LED", led)}),
		clock:   newTinyGoClock(),
		i2c:     newMachineI2C(machine.I2C0),
		spi:     newMachineSPI(machine.SPI0),
		storage: newSDStorage(),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) GPIO() GPIO       { return h.gpio }
func (h *tinyGoHAL) Clock() Clock     { return h.clock }
func (h *tinyGoHAL) I2C() I2C         { return h.i2c }
func (h *tinyGoHAL) SPI() SPI         { return h.spi }
func (h *tinyGoHAL) Storage() Storage { return h.storage }
