package journal

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// logPageCacheSize is the record iterator's bounded page cache size, fixed
// at 4 per §4.6 of the core's design.
const logPageCacheSize = 4

// LogFile is an opened $LogFile: a selected restart block, its derived
// ControlBlock, and the (already-flushed) byte source the record
// iterator reads pages from.
type LogFile struct {
	src     ByteSource
	cb      ControlBlock
	overlay map[int64][]byte
	cache   *lru.Cache[int64, []byte]

	Restart      RestartBlock
	FirstLogPage int64
}

// Open builds a LogFile from a byte source and the restart block the
// caller selected (normally via SelectRestartBlock, though §9's "ambiguous
// source" note means callers sometimes deliberately pass the backup
// block). It runs the tail-page flusher as a side effect before any
// record can be iterated.
func Open(src ByteSource, restart RestartBlock) (*LogFile, error) {
	cb := NewControlBlock(
		restart.Header.SystemPageSize,
		restart.Header.LogPageSize,
		restart.Area.FileSize,
		restart.Area.SeqNumberBits,
		restart.Area.LogPageDataOffset,
	)

	flush, err := FlushTailPages(src, cb, restart.Header.MajorVersion)
	if err != nil {
		return nil, fmt.Errorf("journal: flushing tail pages: %w", err)
	}

	cache, err := lru.New[int64, []byte](logPageCacheSize)
	if err != nil {
		return nil, err
	}

	return &LogFile{
		src:          src,
		cb:           cb,
		overlay:      flush.Overlay,
		cache:        cache,
		Restart:      restart,
		FirstLogPage: flush.FirstLogPage,
	}, nil
}

// ControlBlock exposes the LCB derived for this journal, for reporters
// that need raw LSN arithmetic.
func (lf *LogFile) ControlBlock() ControlBlock { return lf.cb }

// getLogPage returns the fixed-up, post-flush contents of the log page at
// offset, consulting the tail-flush overlay and the LRU cache before
// touching the byte source.
func (lf *LogFile) getLogPage(offset int64) ([]byte, error) {
	return lf.ReadPage(offset)
}

// ReadPage returns the fixed-up, post-flush contents of the log page at
// offset, consulting the tail-flush overlay and the 4-entry LRU cache
// before touching the byte source. Exported for reporters that walk the
// logging area page-by-page rather than record-by-record (e.g. the
// dump-pages CLI command).
func (lf *LogFile) ReadPage(offset int64) ([]byte, error) {
	if lf.overlay != nil {
		if patched, ok := lf.overlay[offset]; ok {
			return patched, nil
		}
	}
	if page, ok := lf.cache.Get(offset); ok {
		return page, nil
	}

	buf := make([]byte, lf.cb.LogPageSize)
	if _, err := lf.src.ReadAt(buf, offset); err != nil {
		return nil, err
	}
	if err := ApplyFixup(buf, DefaultSectorSize); err != nil {
		return nil, err
	}

	lf.cache.Add(offset, buf)
	return buf, nil
}

// nextLogPage advances a log-area page offset, wrapping to FirstLogPage
// when it would run past FileSize.
func (lf *LogFile) nextLogPage(offset int64) int64 {
	next := offset + lf.cb.LogPageSize
	if next >= lf.cb.FileSize {
		return lf.FirstLogPage
	}
	return next
}

// Records returns a RecordIterator that produces every log record from
// startLSN up to the end of the current sequence epoch (i.e. until the
// log wraps past the sequence number startLSN began in).
func (lf *LogFile) Records(startLSN uint64) *RecordIterator {
	return &RecordIterator{
		lf:     lf,
		lsn:    startLSN,
		seqno0: lf.cb.SeqNo(startLSN),
		seqno:  lf.cb.SeqNo(startLSN),
	}
}

// RecordIterator is the lazy (LogRecord, client data) sequence described
// by §4.6. Call Next in a loop; a nil error with ok data means a record
// was produced, ErrEndOfJournal means the sequence ended cleanly, and any
// other error is fatal (journal corruption).
type RecordIterator struct {
	lf     *LogFile
	lsn    uint64
	seqno0 uint64
	seqno  uint64
	done   bool
}

// Next produces the next log record in LSN order, or a terminal error.
func (it *RecordIterator) Next() (LogRecordHeader, []byte, error) {
	if it.done {
		return LogRecordHeader{}, nil, ErrEndOfJournal
	}
	cb := it.lf.cb

	if cb.SeqNo(it.lsn) != it.seqno0 {
		it.done = true
		return LogRecordHeader{}, nil, ErrEndOfJournal
	}

	lsn := it.lsn
	seqno := it.seqno

	pageOffset := cb.LSNPage(lsn)
	pageData, err := it.lf.getLogPage(pageOffset)
	if err != nil {
		it.done = true
		return LogRecordHeader{}, nil, err
	}
	pageHeader := DecodeRecordPageHeader(pageData)

	if cb.SeqNo(pageHeader.Copy) < seqno {
		it.done = true
		return LogRecordHeader{}, nil, ErrEndOfJournal
	}

	offsetInPage := cb.OffsetInPage(lsn)
	if offsetInPage+LogRecordHeaderSize > int64(len(pageData)) {
		it.done = true
		return LogRecordHeader{}, nil, ErrEndOfJournal
	}
	record := DecodeLogRecordHeader(pageData[offsetInPage : offsetInPage+LogRecordHeaderSize])
	if record.ThisLSN != lsn {
		it.done = true
		return LogRecordHeader{}, nil, fmt.Errorf("%w: record declares 0x%x, iterator expected 0x%x", ErrLsnMismatch, record.ThisLSN, lsn)
	}

	clientDataOffset := qalign(offsetInPage + LogRecordHeaderSize)
	clientDataLastByte := pageOffset + clientDataOffset
	var clientData []byte

	for uint32(len(clientData)) < record.ClientDataLength {
		pageData, err = it.lf.getLogPage(pageOffset)
		if err != nil {
			it.done = true
			return LogRecordHeader{}, nil, err
		}
		pageHeader = DecodeRecordPageHeader(pageData)
		if cb.SeqNo(pageHeader.Copy) != seqno {
			it.done = true
			return LogRecordHeader{}, nil, ErrEndOfJournal
		}

		remaining := cb.LogPageSize - clientDataOffset
		if remaining > 0 {
			need := int64(record.ClientDataLength) - int64(len(clientData))
			toCopy := remaining
			if need < toCopy {
				toCopy = need
			}
			if clientDataOffset+toCopy > int64(len(pageData)) {
				it.done = true
				return LogRecordHeader{}, nil, ErrEndOfJournal
			}
			clientData = append(clientData, pageData[clientDataOffset:clientDataOffset+toCopy]...)
			clientDataLastByte = pageOffset + clientDataOffset + toCopy - 1
		}

		if uint32(len(clientData)) >= record.ClientDataLength {
			break
		}

		pageOffset = it.lf.nextLogPage(pageOffset)
		if pageOffset < clientDataLastByte {
			seqno++
		}
		clientDataOffset = cb.LogPageDataOffset
	}

	if pageHeader.Copy == lsn {
		nextPageOffset := it.lf.nextLogPage(cb.PageOf(clientDataLastByte))
		if nextPageOffset < clientDataLastByte {
			seqno++
		}
		it.lsn = cb.LSNOf(nextPageOffset+cb.LogPageDataOffset, seqno)
	} else {
		it.lsn = cb.LSNOf(qalign(clientDataLastByte+1), seqno)
	}
	it.seqno = seqno

	return record, clientData, nil
}
