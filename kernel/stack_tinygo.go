//go:build tinygo

package kernel

// captureStackFrames has no debug-info-driven unwind on TinyGo baremetal
// targets; the snapshot degrades to the caller filling in {entry point,
// task name} per §9's design note.
func captureStackFrames(maxDepth int) []StackFrame {
	return nil
}
