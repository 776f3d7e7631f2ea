// Package volsource supplies journal.ByteSource implementations backed by
// an open file: a plain io.ReaderAt/io.WriterAt wrapper and an mmap-backed
// variant for large volume images.
package volsource

import "os"

// ReaderAtSource is the simplest journal.ByteSource: a thin wrapper over
// an *os.File opened for random access. It always satisfies
// journal.WritableByteSource; its writes succeed only when the file was
// opened for writing.
type ReaderAtSource struct {
	file *os.File
	size int64
}

// OpenReaderAtSource opens path and stats it for Size. readWrite selects
// os.O_RDWR over os.O_RDONLY, needed when the caller wants the tail-page
// flusher to patch the file in place rather than use an overlay.
func OpenReaderAtSource(path string, readWrite bool) (*ReaderAtSource, error) {
	flag := os.O_RDONLY
	if readWrite {
		flag = os.O_RDWR
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &ReaderAtSource{file: f, size: info.Size()}, nil
}

// NewReaderAtSource wraps an already-open file, taking ownership of it
// (Close will close it).
func NewReaderAtSource(f *os.File) (*ReaderAtSource, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return &ReaderAtSource{file: f, size: info.Size()}, nil
}

// ReadAt implements io.ReaderAt.
func (s *ReaderAtSource) ReadAt(p []byte, off int64) (int, error) {
	return s.file.ReadAt(p, off)
}

// WriteAt implements io.WriterAt. Callers that only opened the file
// read-only get an *os.PathError from the underlying file on first call.
func (s *ReaderAtSource) WriteAt(p []byte, off int64) (int, error) {
	return s.file.WriteAt(p, off)
}

// Size returns the file's length as of open time.
func (s *ReaderAtSource) Size() int64 { return s.size }

// Close releases the underlying file.
func (s *ReaderAtSource) Close() error { return s.file.Close() }
