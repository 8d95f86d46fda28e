//go:build tinygo && baremetal

package hal

import "machine"

type machineI2C struct {
	bus *machine.I2C
}

func newMachineI2C(bus *machine.I2C) *machineI2C {
	return &machineI2C{bus: bus}
}

func (m *machineI2C) Begin(address uint8) error {
	return m.bus.Configure(machine.I2CConfig{})
}

func (m *machineI2C) WriteTo(address uint8, data []byte) (int, error) {
	if err := m.bus.Tx(uint16(address), data, nil); err != nil {
		return 0, err
	}
	return len(data), nil
}

func (m *machineI2C) ReadFrom(address uint8, buf []byte) (int, error) {
	if err := m.bus.Tx(uint16(address), nil, buf); err != nil {
		return 0, err
	}
	return len(buf), nil
}

type machineSPI struct {
	bus *machine.SPI
}

func newMachineSPI(bus *machine.SPI) *machineSPI {
	return &machineSPI{bus: bus}
}

func (m *machineSPI) Begin() error {
	return m.bus.Configure(machine.SPIConfig{})
}

func (m *machineSPI) Transfer(tx, rx []byte, length int) (int, error) {
	if tx == nil {
		tx = make([]byte, length)
	}
	if rx == nil {
		rx = make([]byte, length)
	}
	if err := m.bus.Tx(tx[:length], rx[:length]); err != nil {
		return 0, err
	}
	return length, nil
}

func (m *machineSPI) End() error { return nil }
