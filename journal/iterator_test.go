package journal

import (
	"encoding/binary"
	"testing"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/stretchr/testify/require"
)

// newTestLogFile builds a LogFile directly over an in-memory source,
// bypassing Open/FlushTailPages - these tests exercise RecordIterator.Next
// against a logging area whose pages are already in their final,
// post-flush shape.
func newTestLogFile(t *testing.T, data []byte, cb ControlBlock, firstLogPage int64) *LogFile {
	t.Helper()
	cache, err := lru.New[int64, []byte](logPageCacheSize)
	require.NoError(t, err)
	return &LogFile{
		src:          &memSource{data: data},
		cb:           cb,
		cache:        cache,
		FirstLogPage: firstLogPage,
	}
}

func putLogRecordHeader(page []byte, offset int64, lsn uint64, clientDataLength uint32) {
	h := page[offset : offset+LogRecordHeaderSize]
	binary.LittleEndian.PutUint64(h[0:8], lsn)
	binary.LittleEndian.PutUint32(h[24:28], clientDataLength)
	binary.LittleEndian.PutUint32(h[32:36], RecordTypeClient)
}

func TestRecordIteratorSingleRecordThenWrapEndsEpoch(t *testing.T) {
	const pageSize = 512
	cb := NewControlBlock(pageSize, pageSize, pageSize, 32, RecordPageHeaderSize)

	page := make([]byte, pageSize)
	binary.LittleEndian.PutUint32(page[0:4], MagicRecordPage)

	lsn := cb.LSNOf(40, 0)
	binary.LittleEndian.PutUint64(page[8:16], lsn) // Copy: this is the only (and last) record to begin here
	putLogRecordHeader(page, 40, lsn, 8)

	payload := []byte("CLIENTDA")
	copy(page[88:96], payload)

	lf := newTestLogFile(t, page, cb, 0)
	it := lf.Records(lsn)

	record, clientData, err := it.Next()
	require.NoError(t, err)
	require.Equal(t, lsn, record.ThisLSN)
	require.EqualValues(t, RecordTypeClient, record.RecordType)
	require.Equal(t, payload, clientData)

	// The only page wraps back to itself; the wrapped sequence number no
	// longer matches what's stored in Copy, so the epoch ends here.
	_, _, err = it.Next()
	require.ErrorIs(t, err, ErrEndOfJournal)
}

func TestRecordIteratorRecordSpansTwoPages(t *testing.T) {
	const pageSize = 512
	const fileSize = 2 * pageSize
	cb := NewControlBlock(pageSize, pageSize, fileSize, 32, RecordPageHeaderSize)

	data := make([]byte, fileSize)
	page0 := data[0:pageSize]
	page1 := data[pageSize : 2*pageSize]

	binary.LittleEndian.PutUint32(page0[0:4], MagicRecordPage)
	binary.LittleEndian.PutUint32(page1[0:4], MagicRecordPage)

	lsn := cb.LSNOf(40, 0)
	binary.LittleEndian.PutUint64(page0[8:16], lsn) // this record is the last to begin on page0

	const clientDataLength = 450
	putLogRecordHeader(page0, 40, lsn, clientDataLength)

	part1 := make([]byte, pageSize-88) // 424 bytes: the rest of page0 after the header
	for i := range part1 {
		part1[i] = byte(i)
	}
	copy(page0[88:], part1)

	part2 := make([]byte, clientDataLength-len(part1)) // 26 bytes, at the head of page1's data area
	for i := range part2 {
		part2[i] = byte(0x80 + i)
	}
	copy(page1[RecordPageHeaderSize:], part2)

	lf := newTestLogFile(t, data, cb, 0)
	it := lf.Records(lsn)

	record, clientData, err := it.Next()
	require.NoError(t, err)
	require.Equal(t, lsn, record.ThisLSN)
	require.EqualValues(t, clientDataLength, record.ClientDataLength)

	want := append(append([]byte{}, part1...), part2...)
	require.Equal(t, want, clientData)
}

func TestRecordIteratorEmptyJournalEndsImmediately(t *testing.T) {
	const pageSize = 512
	cb := NewControlBlock(pageSize, pageSize, pageSize, 32, RecordPageHeaderSize)

	page := make([]byte, pageSize)
	binary.LittleEndian.PutUint32(page[0:4], MagicRecordPage)
	// Copy stays at its zero value: no record has ever begun on this page.

	lf := newTestLogFile(t, page, cb, 0)

	// Ask for records starting at sequence number 1; the page only ever
	// reached sequence number 0, so the epoch the caller asked for
	// never happened.
	startLSN := cb.LSNOf(40, 1)
	it := lf.Records(startLSN)

	_, _, err := it.Next()
	require.ErrorIs(t, err, ErrEndOfJournal)
}
