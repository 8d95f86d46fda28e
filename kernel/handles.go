package kernel

import "spark/hal"

type fileHandle struct {
	inUse    bool
	owner    int
	canWrite bool
	backing  hal.File
}

type dirHandle struct {
	inUse   bool
	owner   int
	backing hal.Dir
}

// FileOpen refuses without CapSD on the current task, allocates the lowest
// free file-table entry, opens the backing file through hal.Storage, and
// records the handle as held by the current task so KillTask can reclaim
// it.
func (k *Kernel) FileOpen(path string, write bool) (int, Result) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.tasks[k.current].can(CapSD) {
		return 0, ResultPermission
	}
	storage := k.hal.Storage()
	if storage == nil || !storage.Ready() {
		return 0, ResultIOError
	}

	idx := -1
	for i := range k.files {
		if !k.files[i].inUse {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0, ResultNoMemory
	}

	f, err := storage.Open(path, write)
	if err != nil {
		return 0, ResultNotFound
	}

	k.files[idx] = fileHandle{inUse: true, owner: k.current, canWrite: write, backing: f}
	k.tasks[k.current].holdFile(idx)
	return idx, ResultOK
}

func (k *Kernel) fileLocked(h int) (*fileHandle, Result) {
	if h < 0 || h >= len(k.files) || !k.files[h].inUse {
		return nil, ResultInvalidParam
	}
	fh := &k.files[h]
	if fh.owner != k.current {
		return nil, ResultPermission
	}
	return fh, ResultOK
}

// FileRead reads into buf from the given handle.
func (k *Kernel) FileRead(h int, buf []byte) (int, Result) {
	k.mu.Lock()
	defer k.mu.Unlock()

	fh, res := k.fileLocked(h)
	if res != ResultOK {
		return 0, res
	}
	n, err := fh.backing.Read(buf)
	if err != nil && n == 0 {
		return 0, ResultIOError
	}
	return n, ResultOK
}

// FileWrite writes buf to the given handle; requires the handle's can-write bit.
func (k *Kernel) FileWrite(h int, buf []byte) (int, Result) {
	k.mu.Lock()
	defer k.mu.Unlock()

	fh, res := k.fileLocked(h)
	if res != ResultOK {
		return 0, res
	}
	if !fh.canWrite {
		return 0, ResultPermission
	}
	n, err := fh.backing.Write(buf)
	if err != nil {
		return 0, ResultIOError
	}
	return n, ResultOK
}

// FileClose releases the handle and clears the owning task's holds bit.
func (k *Kernel) FileClose(h int) Result {
	k.mu.Lock()
	defer k.mu.Unlock()

	fh, res := k.fileLocked(h)
	if res != ResultOK {
		return res
	}
	_ = fh.backing.Close()
	k.tasks[fh.owner].releaseFile(h)
	k.files[h] = fileHandle{}
	return ResultOK
}

// FileSize returns the current size in bytes of an open file handle.
func (k *Kernel) FileSize(h int) (int, Result) {
	k.mu.Lock()
	defer k.mu.Unlock()

	fh, res := k.fileLocked(h)
	if res != ResultOK {
		return 0, res
	}
	size, err := fh.backing.SizeBytes()
	if err != nil {
		return 0, ResultIOError
	}
	return int(size), ResultOK
}

// FileDelete removes a path from storage outright (no handle required).
func (k *Kernel) FileDelete(path string) Result {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.tasks[k.current].can(CapSD) {
		return ResultPermission
	}
	storage := k.hal.Storage()
	if storage == nil || !storage.Ready() {
		return ResultIOError
	}
	if err := storage.Remove(path); err != nil {
		return ResultNotFound
	}
	return ResultOK
}

// FileExists reports whether path exists on the backing storage.
func (k *Kernel) FileExists(path string) (bool, Result) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.tasks[k.current].can(CapSD) {
		return false, ResultPermission
	}
	storage := k.hal.Storage()
	if storage == nil || !storage.Ready() {
		return false, ResultIOError
	}
	return storage.Exists(path), ResultOK
}

// DirOpen allocates a directory handle over a path.
func (k *Kernel) DirOpen(path string) (int, Result) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.tasks[k.current].can(CapSD) {
		return 0, ResultPermission
	}
	storage := k.hal.Storage()
	if storage == nil || !storage.Ready() {
		return 0, ResultIOError
	}

	idx := -1
	for i := range k.dirs {
		if !k.dirs[i].inUse {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0, ResultNoMemory
	}

	d, err := storage.OpenDir(path)
	if err != nil {
		return 0, ResultNotFound
	}

	k.dirs[idx] = dirHandle{inUse: true, owner: k.current, backing: d}
	k.tasks[k.current].holdDir(idx)
	return idx, ResultOK
}

func (k *Kernel) dirLocked(h int) (*dirHandle, Result) {
	if h < 0 || h >= len(k.dirs) || !k.dirs[h].inUse {
		return nil, ResultInvalidParam
	}
	dh := &k.dirs[h]
	if dh.owner != k.current {
		return nil, ResultPermission
	}
	return dh, ResultOK
}

// DirRead yields one entry per call; ok is false at end of listing.
func (k *Kernel) DirRead(h int) (entry hal.DirEntry, ok bool, res Result) {
	k.mu.Lock()
	defer k.mu.Unlock()

	dh, res := k.dirLocked(h)
	if res != ResultOK {
		return hal.DirEntry{}, false, res
	}
	entry, ok, err := dh.backing.Next()
	if err != nil {
		return hal.DirEntry{}, false, ResultIOError
	}
	return entry, ok, ResultOK
}

// DirRewind restarts iteration from the beginning of the listing.
func (k *Kernel) DirRewind(h int) Result {
	k.mu.Lock()
	defer k.mu.Unlock()

	dh, res := k.dirLocked(h)
	if res != ResultOK {
		return res
	}
	if err := dh.backing.Rewind(); err != nil {
		return ResultIOError
	}
	return ResultOK
}

// DirCreate makes a new directory at path.
func (k *Kernel) DirCreate(path string) Result {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.tasks[k.current].can(CapSD) {
		return ResultPermission
	}
	storage := k.hal.Storage()
	if storage == nil || !storage.Ready() {
		return ResultIOError
	}
	if err := storage.Mkdir(path); err != nil {
		return ResultIOError
	}
	return ResultOK
}

// DirRemove removes a directory at path.
func (k *Kernel) DirRemove(path string) Result {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.tasks[k.current].can(CapSD) {
		return ResultPermission
	}
	storage := k.hal.Storage()
	if storage == nil || !storage.Ready() {
		return ResultIOError
	}
	if err := storage.Remove(path); err != nil {
		return ResultNotFound
	}
	return ResultOK
}

// DirClose releases a directory handle.
func (k *Kernel) DirClose(h int) Result {
	k.mu.Lock()
	defer k.mu.Unlock()

	dh, res := k.dirLocked(h)
	if res != ResultOK {
		return res
	}
	_ = dh.backing.Close()
	k.tasks[dh.owner].releaseDir(h)
	k.dirs[h] = dirHandle{}
	return ResultOK
}
