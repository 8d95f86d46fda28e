package kernel

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// PanicInfo describes a fatal kernel condition, captured once and handed to
// the installed handler.
type PanicInfo struct {
	TaskID int
	Value  any
	Stack  []StackFrame
}

var (
	panicActive atomic.Bool
	panicOnce   sync.Once

	panicHandler atomic.Value // func(PanicInfo)
)

// InPanicMode reports whether any kernel instance in this process has
// triggered a fatal panic. The guard is process-wide by design: once heap
// corruption is detected, every kernel sharing the process is suspect.
func InPanicMode() bool {
	return panicActive.Load()
}

// SetPanicHandler installs a process-wide panic handler, invoked at most
// once. It must not itself panic.
func SetPanicHandler(fn func(PanicInfo)) {
	panicHandler.Store(fn)
}

func triggerPanic(info PanicInfo) {
	panicOnce.Do(func() {
		panicActive.Store(true)
		if v := panicHandler.Load(); v != nil {
			if fn, ok := v.(func(PanicInfo)); ok && fn != nil {
				fn(info)
			}
		}
	})
}

// DumpDiagnostics writes the task table and heap summary through the
// configured logger. The panic handler installed by the app package calls
// it; no syscall reaches it.
func (k *Kernel) DumpDiagnostics() {
	k.mu.Lock()
	tasks := make([]Task, 0, len(k.tasks))
	for _, t := range k.tasks {
		if t.State != TaskEmpty {
			tasks = append(tasks, t)
		}
	}
	heapLine := fmt.Sprintf("heap: used=%d capacity=%d available=%d", k.heap.used, len(k.heap.mem), len(k.heap.mem)-k.heap.used)
	k.mu.Unlock()

	k.logf("--- task list ---")
	for _, t := range tasks {
		k.logf("  [%d] %-16s state=%-8s priority=%d mem=%d", t.Slot, t.Name, t.State, t.Priority, t.MemoryUsed)
	}
	k.logf(heapLine)
}

// captureStack snapshots the current call stack for a task, degrading
// gracefully on platforms without unwind data: on those builds it is just
// {entry point, task name}.
func (k *Kernel) captureStack(slot int) []StackFrame {
	t := &k.tasks[slot]
	depth := k.limits.MaxStackTraceDepth
	if depth > maxStackTraceDepthCap {
		depth = maxStackTraceDepthCap
	}
	frames := captureStackFrames(depth)
	if len(frames) == 0 {
		return []StackFrame{{EntryPoint: "entry", TaskName: t.Name}}
	}
	return frames
}
