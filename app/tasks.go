package app

import "spark/kernel"

// seedDemoTasks creates the two tasks this image boots with: a blink task
// that toggles the LED GPIO pin on a steady cadence, and a storage
// self-test that writes a small marker file once. Neither
// is granted CapTaskCreation, CapI2C, or CapSPI.
func (s *System) seedDemoTasks() {
	s.K.BootstrapCreateTask("blink", 10, s.blinkEntry, kernel.CapGPIO|kernel.CapSD)
	s.K.BootstrapCreateTask("storage-selftest", 5, s.storageSelfTestEntry, kernel.CapSD)
}

func (s *System) blinkEntry() {
	const ledPin = 0

	level := s.K.Dispatch(kernel.KindGPIORead, kernel.Args{A1: ledPin})
	next := 1
	if level != 0 {
		next = 0
	}
	s.K.Dispatch(kernel.KindGPIOWrite, kernel.Args{A1: ledPin, A2: next})
	s.K.Dispatch(kernel.KindTaskSleep, kernel.Args{A1: 100})
}

func (s *System) storageSelfTestEntry() {
	if s.storageSelfTestDone {
		s.K.Dispatch(kernel.KindTaskSleep, kernel.Args{A1: 1000})
		return
	}
	s.storageSelfTestDone = true

	h := s.K.Dispatch(kernel.KindFileOpen, kernel.Args{Str: "/boot-selftest.txt", A1: 1})
	if h < 0 {
		s.K.Dispatch(kernel.KindSystemPrint, kernel.Args{Str: "storage self-test: open failed"})
		return
	}
	s.K.Dispatch(kernel.KindFileWrite, kernel.Args{A1: int(h), In: []byte("spark boot ok")})
	s.K.Dispatch(kernel.KindFileClose, kernel.Args{A1: int(h)})
	s.K.Dispatch(kernel.KindSystemPrint, kernel.Args{Str: "storage self-test: wrote /boot-selftest.txt"})
}
