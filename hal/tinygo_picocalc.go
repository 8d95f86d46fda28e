//go:build tinygo && baremetal && picocalc

package hal

import (
	"machine"
)

type picoCalcHAL struct {
	logger  *uartLogger
	led     *pinLED
	gpio    GPIO
	clock   *tinyGoClock
	i2c     *machineI2C
	spi     *machineSPI
	storage *sdStorage
}

// New returns a PicoCalc HAL implementation (Pico/Pico2 on the PicoCalc
// carrier). The carrier's display and keyboard are unused by this kernel —
// there are no display or input syscalls — so only UART, LED, I2C, SPI, and
// the SD card are wired.
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
	return &picoCalcHAL{
		logger:  &uartLogger{uart: uart},
		led:     led,
		gpio:    newVirtualGPIO([]GPIOPin{newLEDPin("LED", led)}),
		clock:   newTinyGoClock(),
		i2c:     newMachineI2C(machine.I2C1),
		spi:     newMachineSPI(machine.SPI0),
		storage: newSDStorage(),
	}
}

func (h *picoCalcHAL) Logger() Logger   { return h.logger }
func (h *picoCalcHAL) LED() LED         { return h.led }
func (h *picoCalcHAL) GPIO() GPIO       { return h.gpio }
func (h *picoCalcHAL) Clock() Clock     { return h.clock }
func (h *picoCalcHAL) I2C() I2C         { return h.i2c }
func (h *picoCalcHAL) SPI() SPI         { return h.spi }
func (h *picoCalcHAL) Storage() Storage { return h.storage }
