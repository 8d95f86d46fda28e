// Package kernel implements the cooperative scheduler, heap, IPC
// primitives, and syscall dispatcher for a single-address-space embedded
// kernel. There is no package-level mutable state: every piece of state
// lives on a *Kernel value created by New, so a test can run several
// independent kernels side by side.
package kernel

import (
	"fmt"
	"sync"

	"spark/hal"
)

// Limits bounds the fixed-size kernel tables. Production code uses
// DefaultLimits; tests may shrink tables to exercise exhaustion paths
// without allocating MaxTasks=8 worth of scaffolding.
type Limits struct {
	MaxTasks              int
	MaxFileHandles        int
	MaxDirHandles         int
	MailboxCapacity       int
	MaxSemaphores         int
	MaxStackTraceDepth    int
	HeapSizeBytes         int
	MessageMaxBytes       int
	WatchdogTimeoutMillis uint64
}

// DefaultLimits returns the production table sizes and timeouts.
func DefaultLimits() Limits {
	return Limits{
		MaxTasks:              8,
		MaxFileHandles:        16,
		MaxDirHandles:         4,
		MailboxCapacity:       16,
		MaxSemaphores:         8,
		MaxStackTraceDepth:    8,
		HeapSizeBytes:         64 * 1024,
		MessageMaxBytes:       64,
		WatchdogTimeoutMillis: 5000,
	}
}

// Kernel owns every piece of process-wide state: the task table, the heap,
// the mailbox ring per task, the semaphore table, and the file/dir handle
// tables. It is created once by New and never torn down, following an
// "init once, run forever" lifecycle — but as an explicit value, not
// package globals, so tests can instantiate more than one.
type Kernel struct {
	mu sync.Mutex

	hal    hal.HAL
	limits Limits

	initialized bool
	bootMillis  uint64

	tasks   []Task
	current int

	heap *heap

	mailboxes []mailbox

	semaphores []semaphore

	files []fileHandle
	dirs  []dirHandle

	watchdogLastCheck uint64

	idleRuns uint64
}

// New allocates a kernel with the given limits and hardware adaptor. Call
// Init before scheduling any task.
func New(h hal.HAL, limits Limits) *Kernel {
	return &Kernel{hal: h, limits: limits}
}

// Init clears every table, checks that storage is mounted (logging, not
// failing, when it is not), and creates the permanent idle task in slot 0. A second call is a no-op: Init is guarded by an
// initialized sentinel so it is safe to call defensively at any boot stage.
func (k *Kernel) Init() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.initialized {
		return nil
	}

	k.bootMillis = k.hal.Clock().NowMillis()

	k.tasks = make([]Task, k.limits.MaxTasks)
	k.mailboxes = make([]mailbox, k.limits.MaxTasks)
	for i := range k.mailboxes {
		k.mailboxes[i] = newMailbox(k.limits.MailboxCapacity)
	}
	k.semaphores = make([]semaphore, k.limits.MaxSemaphores)
	k.files = make([]fileHandle, k.limits.MaxFileHandles)
	k.dirs = make([]dirHandle, k.limits.MaxDirHandles)
	k.heap = newHeap(k.limits.HeapSizeBytes)

	if k.hal.Storage() != nil && !k.hal.Storage().Ready() {
		k.logf("storage: not ready, mount failed (continuing without SD)")
	}

	k.tasks[0] = Task{
		Slot:      0,
		State:     TaskReady,
		Name:      "idle",
		Priority:  0,
		Entry:     func() {},
		LastYield: k.bootMillis,
		LastRun:   k.bootMillis,
		Caps:      0,
	}
	k.current = 0
	k.watchdogLastCheck = k.bootMillis

	k.initialized = true
	k.logf("kernel: init complete, %d task slots, heap %d bytes", k.limits.MaxTasks, k.limits.HeapSizeBytes)
	return nil
}

func (k *Kernel) now() uint64 {
	return k.hal.Clock().NowMillis()
}

func (k *Kernel) logf(format string, args ...any) {
	if k.hal.Logger() == nil {
		return
	}
	k.hal.Logger().WriteLineString(fmt.Sprintf(format, args...))
}

// BootMillis returns the clock reading captured at Init.
func (k *Kernel) BootMillis() uint64 { return k.bootMillis }
