package app

import (
	"fmt"
	"strings"

	"spark/hal"
	"spark/kernel"
)

// installPanicHandler logs a delimited banner plus the task table and heap
// summary, then blinks the status LED forever. There is no display
// syscall surface to draw a panic screen onto, so the banner's only
// visible channel on hardware is the LED; on the host it also goes to
// stdout via the logger.
func installPanicHandler(k *kernel.Kernel, h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		l := h.Logger()
		if l != nil {
			l.WriteLineString("=== spark kernel panic ===")
			l.WriteLineString(fmt.Sprintf("task=%d value=%v", info.TaskID, info.Value))
			if len(info.Stack) == 0 {
				l.WriteLineString("stack: unavailable")
			}
			for _, f := range info.Stack {
				l.WriteLineString(fmt.Sprintf("  %s (%s)", f.EntryPoint, f.TaskName))
			}
		}
		k.DumpDiagnostics()
		if l != nil {
			l.WriteLineString(strings.Repeat("=", 26))
		}

		blinkForever(h)
	})
}

// blinkForever drives the LED at a fast, unmistakable fault cadence and
// never returns: a panic halts the system. The cadence itself comes from a
// clock-driven signal pin (high for 100ms out of every 200ms) rather than a
// hand-toggled loop.
func blinkForever(h hal.HAL) {
	led := h.LED()
	clock := h.Clock()
	if led == nil || clock == nil {
		select {}
	}
	pin := hal.NewCadencePin("panic", 200, 100, clock)
	for {
		level, err := pin.Read()
		if err != nil {
			led.High()
		} else if level {
			led.High()
		} else {
			led.Low()
		}
		spinUntil(clock, clock.NowMillis()+20)
	}
}

func spinUntil(clock hal.Clock, deadline uint64) {
	for clock.NowMillis() < deadline {
	}
}
