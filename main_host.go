//go:build !tinygo

package main

import (
	"flag"
	"fmt"
	"os"

	"spark/app"
	"spark/hal"
)

func main() {
	var headless bool
	var ticks uint64
	flag.BoolVar(&headless, "headless", false, "Run without the LED visualizer window.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N scheduler quanta in headless mode (0 = run forever).")
	flag.Parse()

	h := hal.New()
	s, err := app.New(h, app.Config{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if headless {
		for i := uint64(0); ticks == 0 || i < ticks; i++ {
			s.Tick()
		}
		return
	}

	go func() {
		for {
			s.Tick()
		}
	}()

	if err := hal.RunLEDWindow(h); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
