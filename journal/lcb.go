package journal

import "math/bits"

// ControlBlock ("LCB") holds the derived constants needed to convert
// between LSNs, file offsets, and log pages for one $LogFile instance.
// It is built once from a selected RestartBlock and is immutable
// thereafter; every LSN arithmetic method on LogFile delegates here.
type ControlBlock struct {
	SystemPageSize    int64
	LogPageSize       int64
	FileSize          int64
	SeqNumberBits     uint
	LogPageDataOffset int64
	fileSizeBits      uint
}

// NewControlBlock derives a ControlBlock from the parameters carried in a
// restart block's LsnRestartArea and page header.
func NewControlBlock(systemPageSize, logPageSize uint32, fileSize int64, seqNumberBits uint32, logPageDataOffset uint16) ControlBlock {
	return ControlBlock{
		SystemPageSize:    int64(systemPageSize),
		LogPageSize:       int64(logPageSize),
		FileSize:          fileSize,
		SeqNumberBits:     uint(seqNumberBits),
		LogPageDataOffset: int64(logPageDataOffset),
		fileSizeBits:      uint(bits.Len64(uint64(fileSize))) - 3,
	}
}

// SeqNo extracts the sequence number component of an LSN: its high bits,
// above FileSizeBits.
func (cb ControlBlock) SeqNo(lsn uint64) uint64 {
	return lsn >> cb.fileSizeBits
}

// FileOffset computes the byte offset within $LogFile that an LSN
// addresses, discarding the sequence-number bits and restoring the
// 3 bits of precision LSNs drop (offsets are always 8-byte aligned).
func (cb ControlBlock) FileOffset(lsn uint64) int64 {
	seqBits := 64 - cb.fileSizeBits
	shifted := (lsn << seqBits) >> (seqBits - 3)
	return int64(shifted)
}

// PageOf rounds a file offset down to the start of its SystemPageSize
// page.
func (cb ControlBlock) PageOf(offset int64) int64 {
	return offset &^ (cb.SystemPageSize - 1)
}

// OffsetInPage returns the byte offset of an LSN's data within its
// LogPageSize page.
func (cb ControlBlock) OffsetInPage(lsn uint64) int64 {
	return cb.FileOffset(lsn) & (cb.LogPageSize - 1)
}

// LSNPage returns the file offset of the SystemPageSize page containing
// lsn. Like PageOf, this always masks against the system page size, not
// the log page size - the two only coincide on v1.x journals.
func (cb ControlBlock) LSNPage(lsn uint64) int64 {
	return cb.PageOf(cb.FileOffset(lsn))
}

// LSNOf reassembles an LSN from a file offset and a sequence number.
func (cb ControlBlock) LSNOf(offset int64, seqno uint64) uint64 {
	return uint64(offset>>3) | (seqno << cb.fileSizeBits)
}

// LogPageMask is LogPageSize-1, used to distinguish v1.x pages (whose
// Copy field is a page-aligned raw file offset, so its low log-page-size
// bits are clear) from v2.0+ pages (whose Copy field is instead an LSN).
func (cb ControlBlock) LogPageMask() int64 {
	return cb.LogPageSize - 1
}

// qalign rounds x up to the next 8-byte boundary, matching NTFS's
// in-page data alignment.
func qalign(x int64) int64 {
	return (x + 7) &^ 7
}
