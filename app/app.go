// Package app wires a HAL implementation into a booted kernel and drives
// its scheduler loop. It is the composition root both binaries (host and
// TinyGo) call into.
package app

import (
	"spark/hal"
	"spark/kernel"
)

// Config selects which demo tasks the boot sequence seeds. A production
// image would seed real workload tasks instead; this repo ships a blink
// task and a storage self-test so the scheduler has something observable
// to run.
type Config struct {
	SkipDemoTasks bool
}

// System owns the booted kernel.
type System struct {
	K *kernel.Kernel

	storageSelfTestDone bool
}

// New boots a kernel against h with default limits and, unless
// cfg.SkipDemoTasks is set, seeds the demo task set: a blink task and a
// storage self-test.
func New(h hal.HAL, cfg Config) (*System, error) {
	k := kernel.New(h, kernel.DefaultLimits())
	if err := k.Init(); err != nil {
		return nil, err
	}

	installPanicHandler(k, h)

	s := &System{K: k}
	if !cfg.SkipDemoTasks {
		s.seedDemoTasks()
	}
	return s, nil
}

// Tick advances the scheduler by exactly one quantum. Callers drive the
// loop; the kernel never spawns its own goroutine to do this.
func (s *System) Tick() {
	s.K.Schedule()
}

// Run ticks forever. It is the TinyGo entrypoint's whole main loop; the host
// entrypoint calls New and drives Tick itself.
func Run(h hal.HAL) {
	s, err := New(h, Config{})
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString("boot failed: " + err.Error())
		}
		return
	}
	for {
		s.Tick()
	}
}
