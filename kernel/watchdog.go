package kernel

// checkWatchdogLocked runs at most once per second. Any non-empty,
// non-sleeping task that has not yielded within WatchdogTimeoutMillis is
// forced from Running back to Ready and its yield clock is reset. The
// watchdog never kills a task — it only breaks a tight loop so the
// scheduler can pick someone else next quantum.
func (k *Kernel) checkWatchdogLocked(now uint64) {
	if now-k.watchdogLastCheck < 1000 {
		return
	}
	k.watchdogLastCheck = now

	for slot := 1; slot < len(k.tasks); slot++ {
		t := &k.tasks[slot]
		if t.State == TaskEmpty || t.State == TaskSleeping {
			continue
		}
		if now-t.LastYield > k.limits.WatchdogTimeoutMillis {
			k.logf("watchdog: task %q (slot %d) exceeded %dms without yielding, forcing ready", t.Name, slot, k.limits.WatchdogTimeoutMillis)
			if t.State == TaskRunning {
				t.State = TaskReady
			}
			t.LastYield = now
		}
	}
}
