package kernel

import "testing"

// TestMailboxFIFO is scenario 3: three sends from the same sender to the
// same recipient come back out in send order.
func TestMailboxFIFO(t *testing.T) {
	k, _ := newTestKernel(smallLimits())
	sender, res := k.BootstrapCreateTask("sender", 1, nil, defaultCaps)
	if res != ResultOK {
		t.Fatalf("create sender: %v", res)
	}
	receiver, res := k.BootstrapCreateTask("receiver", 1, nil, defaultCaps)
	if res != ResultOK {
		t.Fatalf("create receiver: %v", res)
	}

	k.current = sender
	for _, payload := range []string{"01", "02", "03"} {
		if res := k.Send(receiver, []byte(payload)); res != ResultOK {
			t.Fatalf("send %q: %v", payload, res)
		}
	}

	k.current = receiver
	buf := make([]byte, 16)
	for _, want := range []string{"01", "02", "03"} {
		n, from, res := k.Receive(buf)
		if res != ResultOK {
			t.Fatalf("receive: %v", res)
		}
		if from != sender {
			t.Fatalf("from = %d, want %d", from, sender)
		}
		if string(buf[:n]) != want {
			t.Fatalf("received %q, want %q", buf[:n], want)
		}
	}
}

// TestMailboxOverflow is scenario 4: filling the mailbox to capacity, the
// next send fails with NoMemory, and one receive reopens exactly one slot.
func TestMailboxOverflow(t *testing.T) {
	l := smallLimits()
	l.MailboxCapacity = 16
	k, _ := newTestKernel(l)

	sender, _ := k.BootstrapCreateTask("sender", 1, nil, defaultCaps)
	receiver, _ := k.BootstrapCreateTask("receiver", 1, nil, defaultCaps)
	k.current = sender

	for i := 0; i < 16; i++ {
		if res := k.Send(receiver, []byte{byte(i)}); res != ResultOK {
			t.Fatalf("send %d: %v", i, res)
		}
	}
	if res := k.Send(receiver, []byte{0xFF}); res != ResultNoMemory {
		t.Fatalf("17th send = %v, want ResultNoMemory", res)
	}

	k.current = receiver
	buf := make([]byte, 4)
	if _, _, res := k.Receive(buf); res != ResultOK {
		t.Fatalf("receive: %v", res)
	}

	k.current = sender
	if res := k.Send(receiver, []byte{0xAA}); res != ResultOK {
		t.Fatalf("send after drain: %v", res)
	}
}

func TestReceiveEmptyWouldBlock(t *testing.T) {
	k, _ := newTestKernel(smallLimits())
	buf := make([]byte, 4)
	if _, _, res := k.Receive(buf); res != ResultWouldBlock {
		t.Fatalf("Receive on empty mailbox = %v, want ResultWouldBlock", res)
	}
}

func TestSendUnknownTaskNotFound(t *testing.T) {
	k, _ := newTestKernel(smallLimits())
	if res := k.Send(99, []byte("x")); res != ResultNotFound {
		t.Fatalf("Send to unknown task = %v, want ResultNotFound", res)
	}
}

func TestSendPayloadTooLarge(t *testing.T) {
	k, _ := newTestKernel(smallLimits())
	receiver, _ := k.BootstrapCreateTask("receiver", 1, nil, defaultCaps)
	big := make([]byte, smallLimits().MessageMaxBytes+1)
	if res := k.Send(receiver, big); res != ResultInvalidParam {
		t.Fatalf("oversized send = %v, want ResultInvalidParam", res)
	}
}
