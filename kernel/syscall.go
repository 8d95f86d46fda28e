package kernel

import "spark/hal"

// Kind is the stable numeric syscall identifier. Tasks never call kernel
// methods directly from outside this package's intended use in tests;
// the uniform entry point is Dispatch.
type Kind int32

const (
	KindFileOpen Kind = iota
	KindFileClose
	KindFileRead
	KindFileWrite
	KindFileDelete
	KindFileExists
	KindFileSize

	KindDirOpen
	KindDirClose
	KindDirRead
	KindDirCreate
	KindDirRemove
	KindDirRewind

	KindMemAlloc
	KindMemFree
	KindMemInfo
	KindMemCompact

	KindTaskCreate
	KindTaskKill
	KindTaskYield
	KindTaskSleep
	KindTaskList

	KindIPCSend
	KindIPCReceive
	KindIPCPoll

	KindSemCreate
	KindSemWait
	KindSemPost
	KindSemDestroy

	KindGPIOPinMode
	KindGPIOWrite
	KindGPIORead
	KindGPIOAnalogRead
	KindGPIOAnalogWrite

	KindI2CBegin
	KindI2CWrite
	KindI2CRead
	KindI2CRequest

	KindSPIBegin
	KindSPITransfer
	KindSPIEnd

	KindSystemGetTime
	KindSystemPrint
	KindSystemDebugPrint
)

// Args bundles the four generic syscall arguments plus the byte buffers
// that file/mailbox/GPIO/I2C/SPI operations need to move data in and out.
// Each Kind interprets only the fields it needs; callers fill in the rest
// with zero values.
type Args struct {
	A1, A2, A3, A4 int
	Str            string
	In             []byte
	Out            []byte
}

// Dispatch is the single numbered entry point: it switches on kind,
// delegates to the named component operation (which itself enforces
// capability and ownership checks), and returns a signed Result.
func (k *Kernel) Dispatch(kind Kind, a Args) Result {
	switch kind {
	case KindFileOpen:
		h, res := k.FileOpen(a.Str, a.A1 != 0)
		if res != ResultOK {
			return res
		}
		return Result(h)
	case KindFileClose:
		return k.FileClose(a.A1)
	case KindFileRead:
		n, res := k.FileRead(a.A1, a.Out)
		if res != ResultOK {
			return res
		}
		return Result(n)
	case KindFileWrite:
		n, res := k.FileWrite(a.A1, a.In)
		if res != ResultOK {
			return res
		}
		return Result(n)
	case KindFileDelete:
		return k.FileDelete(a.Str)
	case KindFileExists:
		ok, res := k.FileExists(a.Str)
		if res != ResultOK {
			return res
		}
		if ok {
			return 1
		}
		return 0
	case KindFileSize:
		n, res := k.FileSize(a.A1)
		if res != ResultOK {
			return res
		}
		return Result(n)

	case KindDirOpen:
		h, res := k.DirOpen(a.Str)
		if res != ResultOK {
			return res
		}
		return Result(h)
	case KindDirClose:
		return k.DirClose(a.A1)
	case KindDirRead:
		_, ok, res := k.DirRead(a.A1)
		if res != ResultOK {
			return res
		}
		if ok {
			return 1
		}
		return 0
	case KindDirCreate:
		return k.DirCreate(a.Str)
	case KindDirRemove:
		return k.DirRemove(a.Str)
	case KindDirRewind:
		return k.DirRewind(a.A1)

	case KindMemAlloc:
		off, res := k.Alloc(a.A1)
		if res != ResultOK {
			return res
		}
		return Result(off)
	case KindMemFree:
		return k.Free(a.A1)
	case KindMemInfo:
		return Result(k.MemAvailable())
	case KindMemCompact:
		k.Compact()
		return ResultOK

	case KindTaskCreate:
		slot, res := k.CreateTask(a.Str, a.A1, nil)
		if res != ResultOK {
			return res
		}
		return Result(slot)
	case KindTaskKill:
		return k.KillTask(a.A1)
	case KindTaskYield:
		k.Yield()
		return ResultOK
	case KindTaskSleep:
		k.Sleep(uint64(a.A1))
		return ResultOK
	case KindTaskList:
		return Result(len(k.TaskList()))

	case KindIPCSend:
		return k.Send(a.A1, a.In)
	case KindIPCReceive:
		n, _, res := k.Receive(a.Out)
		if res != ResultOK {
			return res
		}
		return Result(n)
	case KindIPCPoll:
		return Result(k.Poll())

	case KindSemCreate:
		id, res := k.SemCreate(a.A1, a.A2, a.Str)
		if res != ResultOK {
			return res
		}
		return Result(id)
	case KindSemWait:
		return k.SemWait(a.A1, uint64(a.A2))
	case KindSemPost:
		return k.SemPost(a.A1)
	case KindSemDestroy:
		return k.SemDestroy(a.A1)

	case KindGPIOPinMode, KindGPIOWrite, KindGPIORead, KindGPIOAnalogRead, KindGPIOAnalogWrite:
		return k.dispatchGPIO(kind, a)

	case KindI2CBegin, KindI2CWrite, KindI2CRead, KindI2CRequest:
		return k.dispatchI2C(kind, a)

	case KindSPIBegin, KindSPITransfer, KindSPIEnd:
		return k.dispatchSPI(kind, a)

	case KindSystemGetTime:
		// Result is a signed 32-bit channel, so the reading is reported
		// modulo 2^31 ms: it rolls over to 0 about every 24.8 days of uptime
		// instead of turning negative and reading as an error kind.
		return Result(k.now() % (1 << 31))
	case KindSystemPrint:
		k.logf("%s", a.Str)
		return ResultOK
	case KindSystemDebugPrint:
		k.mu.Lock()
		name := k.tasks[k.current].Name
		slot := k.current
		k.mu.Unlock()
		k.logf("[%s:%d] %s", name, slot, a.Str)
		return ResultOK

	default:
		return ResultInvalidCall
	}
}

func (k *Kernel) dispatchGPIO(kind Kind, a Args) Result {
	k.mu.Lock()
	allowed := k.tasks[k.current].can(CapGPIO)
	k.mu.Unlock()
	if !allowed {
		return ResultPermission
	}

	gpio := k.hal.GPIO()
	if gpio == nil {
		return ResultIOError
	}
	pin := gpio.Pin(a.A1)
	if pin == nil {
		return ResultNotFound
	}

	switch kind {
	case KindGPIOPinMode:
		if err := pin.Configure(hal.GPIOMode(a.A2), hal.GPIOPull(a.A3)); err != nil {
			return ResultInvalidParam
		}
		return ResultOK
	case KindGPIOWrite, KindGPIOAnalogWrite:
		if err := pin.Write(a.A2 != 0); err != nil {
			return ResultInvalidParam
		}
		return ResultOK
	case KindGPIORead, KindGPIOAnalogRead:
		level, err := pin.Read()
		if err != nil {
			return ResultIOError
		}
		if level {
			return 1
		}
		return 0
	default:
		return ResultInvalidCall
	}
}

func (k *Kernel) dispatchI2C(kind Kind, a Args) Result {
	k.mu.Lock()
	allowed := k.tasks[k.current].can(CapI2C)
	k.mu.Unlock()
	if !allowed {
		return ResultPermission
	}

	bus := k.hal.I2C()
	if bus == nil {
		return ResultIOError
	}

	switch kind {
	case KindI2CBegin:
		if err := bus.Begin(uint8(a.A1)); err != nil {
			return ResultIOError
		}
		return ResultOK
	case KindI2CWrite:
		n, err := bus.WriteTo(uint8(a.A1), a.In)
		if err != nil {
			return ResultIOError
		}
		return Result(n)
	case KindI2CRead, KindI2CRequest:
		n, err := bus.ReadFrom(uint8(a.A1), a.Out)
		if err != nil {
			return ResultIOError
		}
		return Result(n)
	default:
		return ResultInvalidCall
	}
}

func (k *Kernel) dispatchSPI(kind Kind, a Args) Result {
	k.mu.Lock()
	allowed := k.tasks[k.current].can(CapSPI)
	k.mu.Unlock()
	if !allowed {
		return ResultPermission
	}

	bus := k.hal.SPI()
	if bus == nil {
		return ResultIOError
	}

	switch kind {
	case KindSPIBegin:
		if err := bus.Begin(); err != nil {
			return ResultIOError
		}
		return ResultOK
	case KindSPITransfer:
		n, err := bus.Transfer(a.In, a.Out, a.A1)
		if err != nil {
			return ResultIOError
		}
		return Result(n)
	case KindSPIEnd:
		if err := bus.End(); err != nil {
			return ResultIOError
		}
		return ResultOK
	default:
		return ResultInvalidCall
	}
}
