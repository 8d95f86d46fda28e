package kernel

import (
	"errors"
	"sync"

	"spark/hal"
)

// fakeClock is an injectable millisecond clock, so tests advance time by
// calling advance() instead of depending on wall time.
type fakeClock struct {
	mu  sync.Mutex
	now uint64
}

func (c *fakeClock) NowMillis() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(ms uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += ms
}

type fakeLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *fakeLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *fakeLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

type fakeLED struct {
	mu sync.Mutex
	on bool
}

func (l *fakeLED) High() { l.mu.Lock(); l.on = true; l.mu.Unlock() }
func (l *fakeLED) Low()  { l.mu.Lock(); l.on = false; l.mu.Unlock() }

type fakeGPIOPin struct {
	mu         sync.Mutex
	mode       hal.GPIOMode
	level      bool
	configured bool
}

func (p *fakeGPIOPin) Name() string       { return "fake" }
func (p *fakeGPIOPin) Caps() hal.GPIOCaps { return hal.GPIOCapInput | hal.GPIOCapOutput }
func (p *fakeGPIOPin) Configure(mode hal.GPIOMode, pull hal.GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
	p.configured = true
	return nil
}
func (p *fakeGPIOPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}
func (p *fakeGPIOPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	return nil
}

type fakeGPIO struct {
	pins []hal.GPIOPin
}

func (g *fakeGPIO) PinCount() int { return len(g.pins) }
func (g *fakeGPIO) Pin(id int) hal.GPIOPin {
	if id < 0 || id >= len(g.pins) {
		return nil
	}
	return g.pins[id]
}

type fakeI2C struct {
	begun bool
	last  []byte
}

func (b *fakeI2C) Begin(address uint8) error { b.begun = true; return nil }
func (b *fakeI2C) WriteTo(address uint8, data []byte) (int, error) {
	if !b.begun {
		return 0, errors.New("not begun")
	}
	b.last = append([]byte{}, data...)
	return len(data), nil
}
func (b *fakeI2C) ReadFrom(address uint8, buf []byte) (int, error) {
	if !b.begun {
		return 0, errors.New("not begun")
	}
	return copy(buf, b.last), nil
}

type fakeSPI struct{ begun bool }

func (b *fakeSPI) Begin() error { b.begun = true; return nil }
func (b *fakeSPI) Transfer(tx, rx []byte, length int) (int, error) {
	if !b.begun {
		return 0, errors.New("not begun")
	}
	for i := 0; i < length && i < len(rx); i++ {
		if i < len(tx) {
			rx[i] = tx[i]
		}
	}
	return length, nil
}
func (b *fakeSPI) End() error { b.begun = false; return nil }

type fakeFile struct {
	data []byte
	pos  int
}

func (f *fakeFile) Read(p []byte) (int, error) {
	n := copy(p, f.data[f.pos:])
	f.pos += n
	return n, nil
}
func (f *fakeFile) Write(p []byte) (int, error) {
	f.data = append(f.data[:f.pos], p...)
	f.pos += len(p)
	return len(p), nil
}
func (f *fakeFile) Close() error { return nil }
func (f *fakeFile) SizeBytes() (uint32, error) { return uint32(len(f.data)), nil }

type fakeDir struct {
	entries []hal.DirEntry
	pos     int
}

func (d *fakeDir) Next() (hal.DirEntry, bool, error) {
	if d.pos >= len(d.entries) {
		return hal.DirEntry{}, false, nil
	}
	e := d.entries[d.pos]
	d.pos++
	return e, true, nil
}
func (d *fakeDir) Rewind() error { d.pos = 0; return nil }
func (d *fakeDir) Close() error  { return nil }

type fakeStorage struct {
	mu    sync.Mutex
	ready bool
	files map[string]*fakeFile
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{ready: true, files: make(map[string]*fakeFile)}
}

func (s *fakeStorage) Ready() bool { return s.ready }

func (s *fakeStorage) Open(path string, write bool) (hal.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[path]
	if !ok {
		if !write {
			return nil, errors.New("not found")
		}
		f = &fakeFile{}
		s.files[path] = f
	}
	f.pos = 0
	return f, nil
}

func (s *fakeStorage) OpenDir(path string) (hal.Dir, error) {
	return &fakeDir{entries: []hal.DirEntry{{Name: "a.txt"}, {Name: "b.txt"}}}, nil
}

func (s *fakeStorage) Mkdir(path string) error { return nil }

func (s *fakeStorage) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[path]; !ok {
		return errors.New("not found")
	}
	delete(s.files, path)
	return nil
}

func (s *fakeStorage) Exists(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[path]
	return ok
}

type fakeHAL struct {
	logger  *fakeLogger
	led     *fakeLED
	clock   *fakeClock
	gpio    *fakeGPIO
	i2c     *fakeI2C
	spi     *fakeSPI
	storage *fakeStorage
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{
		logger:  &fakeLogger{},
		led:     &fakeLED{},
		clock:   &fakeClock{},
		gpio:    &fakeGPIO{pins: []hal.GPIOPin{&fakeGPIOPin{}, &fakeGPIOPin{}}},
		i2c:     &fakeI2C{},
		spi:     &fakeSPI{},
		storage: newFakeStorage(),
	}
}

func (h *fakeHAL) Logger() hal.Logger   { return h.logger }
func (h *fakeHAL) LED() hal.LED         { return h.led }
func (h *fakeHAL) GPIO() hal.GPIO       { return h.gpio }
func (h *fakeHAL) Clock() hal.Clock     { return h.clock }
func (h *fakeHAL) I2C() hal.I2C         { return h.i2c }
func (h *fakeHAL) SPI() hal.SPI         { return h.spi }
func (h *fakeHAL) Storage() hal.Storage { return h.storage }

func newTestKernel(limits Limits) (*Kernel, *fakeHAL) {
	h := newFakeHAL()
	k := New(h, limits)
	if err := k.Init(); err != nil {
		panic(err)
	}
	return k, h
}
