package ucsf

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Open reads and parses the spectrum at path. The file is mapped read-only
// while parsing where the platform allows it, with a plain read as
// fallback. Parse copies everything it keeps, so the mapping is released
// before returning and the File needs no Close.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 < 0 || size64 > int64(int(^uint(0)>>1)) {
		// Cannot index this file safely as []byte on this architecture.
		return nil, fmt.Errorf("ucsf: file too large to load: %d bytes", size64)
	}
	size := int(size64)

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		parsed, parseErr := Parse(data)
		_ = unix.Munmap(data)
		return parsed, parseErr
	}

	// Fallback path that does not require mmap support.
	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}
