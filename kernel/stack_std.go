//go:build !tinygo

package kernel

import (
	"runtime"
)

// captureStackFrames uses runtime.Callers, available on builds that retain
// debug info.
func captureStackFrames(maxDepth int) []StackFrame {
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(3, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	out := make([]StackFrame, 0, n)
	for {
		frame, more := frames.Next()
		out = append(out, StackFrame{EntryPoint: frame.Function})
		if !more || len(out) >= maxDepth {
			break
		}
	}
	return out
}
