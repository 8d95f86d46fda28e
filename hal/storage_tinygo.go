//go:build tinygo && baremetal

package hal

import (
	"errors"
	"io"
	"os"

	"machine"

	"tinygo.org/x/drivers/sdcard"
	"tinygo.org/x/tinyfs"
	"tinygo.org/x/tinyfs/fatfs"
)

// sdStorage backs Storage with a FAT filesystem on an SD card, reachable
// over SPI0. It does not auto-format removable media: a card that fails to
// mount simply leaves Ready() false, and every syscall routed through it
// fails with IOError rather than risking the card's existing contents.
type sdStorage struct {
	sd  *sdcard.Device
	fat *fatfs.FATFS
}

func newSDStorage() *sdStorage {
	sd := sdcard.New(machine.SPI0, machine.GP18, machine.GP19, machine.GP16, machine.GP17)
	if err := sd.Configure(); err != nil {
		return &sdStorage{}
	}

	fat := fatfs.New(&sd).Configure(&fatfs.Config{SectorSize: fatfs.SectorSize})
	if err := fat.Mount(); err != nil {
		return &sdStorage{}
	}

	return &sdStorage{sd: &sd, fat: fat}
}

func (s *sdStorage) Ready() bool { return s.fat != nil }

func (s *sdStorage) Open(path string, write bool) (File, error) {
	if !s.Ready() {
		return nil, ErrNotImplemented
	}
	flags := os.O_RDONLY
	if write {
		flags = os.O_RDWR | os.O_CREATE
	}
	f, err := s.fat.OpenFile(path, flags)
	if err != nil {
		return nil, mapFatErr(err)
	}
	return &sdFile{f: f}, nil
}

func (s *sdStorage) OpenDir(path string) (Dir, error) {
	if !s.Ready() {
		return nil, ErrNotImplemented
	}
	f, err := s.fat.OpenFile(path, os.O_RDONLY)
	if err != nil {
		return nil, mapFatErr(err)
	}
	entries, err := f.Readdir(0)
	_ = f.Close()
	if err != nil {
		return nil, mapFatErr(err)
	}
	return &sdDir{entries: entries}, nil
}

func (s *sdStorage) Mkdir(path string) error {
	if !s.Ready() {
		return ErrNotImplemented
	}
	return mapFatErr(s.fat.Mkdir(path, 0o777))
}

func (s *sdStorage) Remove(path string) error {
	if !s.Ready() {
		return ErrNotImplemented
	}
	return mapFatErr(s.fat.Remove(path))
}

func (s *sdStorage) Exists(path string) bool {
	if !s.Ready() {
		return false
	}
	_, err := s.fat.Stat(path)
	return err == nil
}

type sdFile struct {
	f tinyfs.File
}

func (sf *sdFile) Read(p []byte) (int, error) {
	n, err := sf.f.Read(p)
	if errors.Is(err, io.EOF) {
		return n, io.EOF
	}
	return n, err
}

func (sf *sdFile) Write(p []byte) (int, error) { return sf.f.Write(p) }
func (sf *sdFile) Close() error                { return sf.f.Close() }

func (sf *sdFile) SizeBytes() (uint32, error) {
	off, err := sf.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := sf.f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := sf.f.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	return uint32(end), nil
}

type sdDirEntry = os.FileInfo

type sdDir struct {
	entries []sdDirEntry
	pos     int
}

func (sd *sdDir) Next() (DirEntry, bool, error) {
	if sd.pos >= len(sd.entries) {
		return DirEntry{}, false, nil
	}
	e := sd.entries[sd.pos]
	sd.pos++
	return DirEntry{Name: e.Name(), IsDir: e.IsDir(), SizeBytes: uint32(e.Size())}, true, nil
}

func (sd *sdDir) Rewind() error {
	sd.pos = 0
	return nil
}

func (sd *sdDir) Close() error { return nil }

func mapFatErr(err error) error {
	if err == nil {
		return nil
	}
	var fr fatfs.FileResult
	if errors.As(err, &fr) {
		switch fr {
		case fatfs.FileResultNoFile, fatfs.FileResultNoPath:
			return os.ErrNotExist
		case fatfs.FileResultExist:
			return os.ErrExist
		case fatfs.FileResultDenied, fatfs.FileResultLocked:
			return os.ErrPermission
		default:
			return err
		}
	}
	return err
}
