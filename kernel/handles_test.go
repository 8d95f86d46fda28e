package kernel

import "testing"

func TestFileOpenRequiresCapSD(t *testing.T) {
	k, _ := newTestKernel(smallLimits())
	slot, _ := k.BootstrapCreateTask("nosd", 1, nil, Capability(0))
	k.current = slot
	if _, res := k.FileOpen("/x.txt", true); res != ResultPermission {
		t.Fatalf("FileOpen without CapSD = %v, want ResultPermission", res)
	}
}

func TestFileWriteReadRoundTrip(t *testing.T) {
	k, _ := newTestKernel(smallLimits())
	slot, _ := k.BootstrapCreateTask("writer", 1, nil, defaultCaps)
	k.current = slot

	h, res := k.FileOpen("/note.txt", true)
	if res != ResultOK {
		t.Fatalf("FileOpen: %v", res)
	}
	if n, res := k.FileWrite(h, []byte("hello")); res != ResultOK || n != 5 {
		t.Fatalf("FileWrite: n=%d res=%v", n, res)
	}
	if size, res := k.FileSize(h); res != ResultOK || size != 5 {
		t.Fatalf("FileSize: size=%d res=%v", size, res)
	}
	if res := k.FileClose(h); res != ResultOK {
		t.Fatalf("FileClose: %v", res)
	}

	h2, res := k.FileOpen("/note.txt", false)
	if res != ResultOK {
		t.Fatalf("re-open: %v", res)
	}
	buf := make([]byte, 16)
	n, res := k.FileRead(h2, buf)
	if res != ResultOK {
		t.Fatalf("FileRead: %v", res)
	}
	if string(buf[:n]) != "hello" {
		t.Fatalf("FileRead got %q, want %q", buf[:n], "hello")
	}
}

func TestFileWriteRequiresWriteHandle(t *testing.T) {
	k, _ := newTestKernel(smallLimits())
	slot, _ := k.BootstrapCreateTask("writer", 1, nil, defaultCaps)
	k.current = slot

	h, _ := k.FileOpen("/seed.txt", true)
	k.FileWrite(h, []byte("seed"))
	k.FileClose(h)

	ro, res := k.FileOpen("/seed.txt", false)
	if res != ResultOK {
		t.Fatalf("open read-only: %v", res)
	}
	if _, res := k.FileWrite(ro, []byte("x")); res != ResultPermission {
		t.Fatalf("FileWrite on read-only handle = %v, want ResultPermission", res)
	}
}

func TestFileHandleOwnershipEnforced(t *testing.T) {
	k, _ := newTestKernel(smallLimits())
	owner, _ := k.BootstrapCreateTask("owner", 1, nil, defaultCaps)
	other, _ := k.BootstrapCreateTask("other", 1, nil, defaultCaps)

	k.current = owner
	h, _ := k.FileOpen("/mine.txt", true)

	k.current = other
	if _, res := k.FileRead(h, make([]byte, 4)); res != ResultPermission {
		t.Fatalf("FileRead by non-owner = %v, want ResultPermission", res)
	}
}

func TestFileOpenTableExhaustion(t *testing.T) {
	l := smallLimits()
	l.MaxFileHandles = 1
	k, _ := newTestKernel(l)
	slot, _ := k.BootstrapCreateTask("owner", 1, nil, defaultCaps)
	k.current = slot

	if _, res := k.FileOpen("/a.txt", true); res != ResultOK {
		t.Fatalf("first open: %v", res)
	}
	if _, res := k.FileOpen("/b.txt", true); res != ResultNoMemory {
		t.Fatalf("second open = %v, want ResultNoMemory", res)
	}
}

func TestDirReadEndOfListing(t *testing.T) {
	k, _ := newTestKernel(smallLimits())
	slot, _ := k.BootstrapCreateTask("lister", 1, nil, defaultCaps)
	k.current = slot

	d, res := k.DirOpen("/")
	if res != ResultOK {
		t.Fatalf("DirOpen: %v", res)
	}

	count := 0
	for {
		_, ok, res := k.DirRead(d)
		if res != ResultOK {
			t.Fatalf("DirRead: %v", res)
		}
		if !ok {
			break
		}
		count++
	}
	if count != 2 {
		t.Fatalf("got %d entries, want 2", count)
	}

	if res := k.DirRewind(d); res != ResultOK {
		t.Fatalf("DirRewind: %v", res)
	}
	_, ok, res := k.DirRead(d)
	if res != ResultOK || !ok {
		t.Fatalf("DirRead after rewind: ok=%v res=%v", ok, res)
	}
}

func TestFileCloseReleasesHold(t *testing.T) {
	k, _ := newTestKernel(smallLimits())
	slot, _ := k.BootstrapCreateTask("owner", 1, nil, defaultCaps)
	k.current = slot

	h, _ := k.FileOpen("/x.txt", true)
	if !k.tasks[slot].holdsFiles[h] {
		t.Fatal("expected hold recorded after open")
	}
	if res := k.FileClose(h); res != ResultOK {
		t.Fatalf("FileClose: %v", res)
	}
	if k.tasks[slot].holdsFiles[h] {
		t.Fatal("expected hold released after close")
	}
}
