package journal

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeRestartTableHeaderAndEntries(t *testing.T) {
	const entrySize = 44
	data := make([]byte, RestartTableHeaderSize+2*entrySize)
	binary.LittleEndian.PutUint16(data[0:2], entrySize)
	binary.LittleEndian.PutUint16(data[2:4], 2)
	binary.LittleEndian.PutUint16(data[4:6], 2)

	h := DecodeRestartTableHeader(data)
	require.EqualValues(t, entrySize, h.EntrySize)
	require.EqualValues(t, 2, h.NumberOfEntries)

	entries := h.Entries(data)
	require.Len(t, entries, 2)
	require.Len(t, entries[0], entrySize)
}

func TestLocateRestartTableReadsAtRedoOffset(t *testing.T) {
	const entrySize = 44
	const redoOffset = ClientLogHeaderSize + 16 // non-zero, unaligned to the header

	record := make([]byte, redoOffset+RestartTableHeaderSize+entrySize)
	binary.LittleEndian.PutUint16(record[4:6], redoOffset) // ClientLogHeader.RedoOffset

	table := record[redoOffset:]
	binary.LittleEndian.PutUint16(table[0:2], entrySize)
	binary.LittleEndian.PutUint16(table[2:4], 1)
	binary.LittleEndian.PutUint16(table[4:6], 1)

	header, tableData := LocateRestartTable(record)
	require.EqualValues(t, entrySize, header.EntrySize)
	require.EqualValues(t, 1, header.NumberOfEntries)

	entries := header.Entries(tableData)
	require.Len(t, entries, 1)
}

func TestDecodeDirtyPageEntryTrailingLCNs(t *testing.T) {
	const entrySize = 44 + 16 // base + 2 extra LCNs
	data := make([]byte, entrySize)
	binary.LittleEndian.PutUint32(data[4:8], 7) // TargetAttribute
	binary.LittleEndian.PutUint64(data[20:28], 0x1234)
	binary.LittleEndian.PutUint64(data[36:44], 100)
	binary.LittleEndian.PutUint64(data[44:52], 200)

	e := DecodeDirtyPageEntry(data, entrySize)
	require.EqualValues(t, 7, e.TargetAttribute)
	require.EqualValues(t, 0x1234, e.VCN)
	require.Equal(t, []uint64{100, 200, 0}, e.LCNs) // third LCN slot left zero
}

func TestDecodeOpenAttributeEntryShapes(t *testing.T) {
	narrow := make([]byte, openAttributeEntry64Size)
	binary.LittleEndian.PutUint32(narrow[8:12], 0x80)
	binary.LittleEndian.PutUint64(narrow[16:24], 0xFEED)
	e := DecodeOpenAttributeEntry(narrow, openAttributeEntry64Size)
	require.False(t, e.Is32BitShape)
	require.EqualValues(t, 0x80, e.AttributeTypeCode)
	require.EqualValues(t, 0xFEED, e.FileReference)

	wide := make([]byte, openAttributeEntry32Size)
	binary.LittleEndian.PutUint32(wide[28:32], 0x90)
	e2 := DecodeOpenAttributeEntry(wide, openAttributeEntry32Size)
	require.True(t, e2.Is32BitShape)
	require.EqualValues(t, 0x90, e2.AttributeTypeCode)
}

func TestDecodeAttributeNameEntriesStopsAtTerminator(t *testing.T) {
	// Attribute names live after a ClientLogHeader, at its RedoOffset -
	// not at offset 0 of the record's client data.
	header := make([]byte, ClientLogHeaderSize)
	binary.LittleEndian.PutUint16(header[4:6], ClientLogHeaderSize) // RedoOffset

	var names []byte
	names = append(names, 0x01, 0x00, 0x04, 0x00, 0x00, 0x00) // index=1, length=4 bytes, reserved=0
	names = append(names, 0x4E, 0x00, 0x54, 0x00)             // "NT" (UTF-16LE, 4 bytes)
	names = append(names, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00) // terminator: index=0, length=0

	entries := DecodeAttributeNameEntries(append(header, names...))
	require.Len(t, entries, 1)
	require.EqualValues(t, 1, entries[0].Index)
	require.EqualValues(t, 4, entries[0].NameLength)
	require.Equal(t, "NT", entries[0].Name)
}
