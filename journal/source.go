package journal

import "io"

// ByteSource is the minimal random-access read surface LogFile needs.
// Implementations live in the volsource package: ReaderAtSource wraps an
// *os.File extracted via ExtractLogFile, MmapSource memory-maps it.
type ByteSource interface {
	io.ReaderAt
	Size() int64
}

// WritableByteSource additionally supports the in-place patch writes the
// tail flusher performs on v1.x pages. A source that only implements
// ByteSource still works: FlushTailPages falls back to an in-memory
// overlay that LogFile consults transparently on reads.
type WritableByteSource interface {
	ByteSource
	io.WriterAt
}
