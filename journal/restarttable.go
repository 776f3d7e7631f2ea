package journal

import "encoding/binary"

// RestartTableHeaderSize is the fixed size preceding a restart table's
// entries.
const RestartTableHeaderSize = 24

// RestartTableHeader precedes every restart table's entry array. EntrySize
// gives the stride between entries (which, for dirty-page entries, also
// determines how many trailing LCNs each entry carries).
type RestartTableHeader struct {
	EntrySize       uint16
	NumberOfEntries uint16
	NumberAllocated uint16
	FreeGoal        uint32
	FirstFree       uint32
	LastFree        uint32
}

// DecodeRestartTableHeader reads a RestartTableHeader from data.
func DecodeRestartTableHeader(data []byte) RestartTableHeader {
	return RestartTableHeader{
		EntrySize:       binary.LittleEndian.Uint16(data[0:2]),
		NumberOfEntries: binary.LittleEndian.Uint16(data[2:4]),
		NumberAllocated: binary.LittleEndian.Uint16(data[4:6]),
		FreeGoal:        binary.LittleEndian.Uint32(data[12:16]),
		FirstFree:       binary.LittleEndian.Uint32(data[16:20]),
		LastFree:        binary.LittleEndian.Uint32(data[20:24]),
	}
}

// Entries returns the byte slices for each of the table's allocated
// entry slots, each EntrySize bytes long, immediately following the
// header.
func (h RestartTableHeader) Entries(data []byte) [][]byte {
	var out [][]byte
	pos := RestartTableHeaderSize
	for i := 0; i < int(h.NumberAllocated) && pos+int(h.EntrySize) <= len(data); i++ {
		out = append(out, data[pos:pos+int(h.EntrySize)])
		pos += int(h.EntrySize)
	}
	return out
}

// LocateRestartTable finds a RestartTable embedded in a client log
// record's raw data. A restart table is never stored at the start of the
// record's client data - it follows a ClientLogHeader, at the header's
// RedoOffset - so this decodes that header first and hands back both the
// table header and the slice (starting at the table header itself) that
// Entries expects. Mirrors the reference tool's get_restart_table.
func LocateRestartTable(data []byte) (RestartTableHeader, []byte) {
	clientHeader := DecodeClientLogHeader(data)
	tableData := data[clientHeader.RedoOffset:]
	return DecodeRestartTableHeader(tableData), tableData
}

// dirtyPageBaseEntrySize is sizeof(DirtyPageEntry) with exactly one
// trailing LCN, the value the original tool derives lcns-per-entry from.
const dirtyPageBaseEntrySize = 44
const dirtyPageFixedSize = 36

// DirtyPageEntry records one dirty page pending write-back at the time
// the checkpoint was taken: which attribute it belongs to, its VCN, and
// the LCNs it maps to.
type DirtyPageEntry struct {
	AllocatedOrNextFree uint32
	TargetAttribute     uint32
	LengthOfTransfer    uint32
	LCNsToFollow        uint32
	VCN                 uint64
	OldestLSN           uint64
	LCNs                []uint64
}

// DecodeDirtyPageEntry reads one dirty-page table entry, including its
// variable trailing LCN array sized from entrySize.
func DecodeDirtyPageEntry(data []byte, entrySize uint16) DirtyPageEntry {
	e := DirtyPageEntry{
		AllocatedOrNextFree: binary.LittleEndian.Uint32(data[0:4]),
		TargetAttribute:     binary.LittleEndian.Uint32(data[4:8]),
		LengthOfTransfer:    binary.LittleEndian.Uint32(data[8:12]),
		LCNsToFollow:        binary.LittleEndian.Uint32(data[12:16]),
		VCN:                 binary.LittleEndian.Uint64(data[20:28]),
		OldestLSN:           binary.LittleEndian.Uint64(data[28:36]),
	}
	lcnCount := 1 + (int(entrySize)-dirtyPageBaseEntrySize)/8
	if lcnCount < 0 {
		lcnCount = 0
	}
	for i := 0; i < lcnCount; i++ {
		off := dirtyPageFixedSize + i*8
		if off+8 > len(data) {
			break
		}
		e.LCNs = append(e.LCNs, binary.LittleEndian.Uint64(data[off:off+8]))
	}
	return e
}

// openAttributeEntry64Size and openAttributeEntry32Size are the two
// table-slot shapes an open-attribute entry may take. Windows writes the
// narrower "64-bit layout" shape for table slots smaller than 0x2C bytes,
// and the wider "32-bit layout" shape otherwise; the names refer to the
// Windows build the shape originated on, not to field widths.
const (
	openAttributeEntry64Size = 36
	openAttributeEntry32Size = 44
	openAttributeShapeCutoff = 0x2C
)

// OpenAttributeEntry records one attribute open at checkpoint time.
type OpenAttributeEntry struct {
	AllocatedOrNextFree uint32
	FileReference       uint64
	LsnOfOpenRecord     uint64
	AttributeTypeCode   uint32
	Is32BitShape        bool
}

// DecodeOpenAttributeEntry reads one open-attribute table entry, selecting
// the decode shape from the entry's slot size.
func DecodeOpenAttributeEntry(data []byte, entrySize uint16) OpenAttributeEntry {
	if entrySize < openAttributeShapeCutoff {
		return OpenAttributeEntry{
			AllocatedOrNextFree: binary.LittleEndian.Uint32(data[0:4]),
			AttributeTypeCode:   binary.LittleEndian.Uint32(data[8:12]),
			FileReference:       binary.LittleEndian.Uint64(data[16:24]),
			LsnOfOpenRecord:     binary.LittleEndian.Uint64(data[24:32]),
		}
	}
	return OpenAttributeEntry{
		AllocatedOrNextFree: binary.LittleEndian.Uint32(data[0:4]),
		FileReference:       binary.LittleEndian.Uint64(data[8:16]),
		LsnOfOpenRecord:     binary.LittleEndian.Uint64(data[16:24]),
		AttributeTypeCode:   binary.LittleEndian.Uint32(data[28:32]),
		Is32BitShape:        true,
	}
}

// TransactionEntry records one transaction open at checkpoint time.
type TransactionEntry struct {
	AllocatedOrNextFree uint32
	TransactionState    uint8
	FirstLSN            uint64
	PreviousLSN         uint64
	UndoNextLSN         uint64
	UndoRecords         uint32
	UndoBytes           uint32
}

// DecodeTransactionEntry reads one transaction table entry.
func DecodeTransactionEntry(data []byte) TransactionEntry {
	return TransactionEntry{
		AllocatedOrNextFree: binary.LittleEndian.Uint32(data[0:4]),
		TransactionState:    data[4],
		FirstLSN:            binary.LittleEndian.Uint64(data[8:16]),
		PreviousLSN:         binary.LittleEndian.Uint64(data[16:24]),
		UndoNextLSN:         binary.LittleEndian.Uint64(data[24:32]),
		UndoRecords:         binary.LittleEndian.Uint32(data[32:36]),
		UndoBytes:           binary.LittleEndian.Uint32(data[36:40]),
	}
}

// AttributeNameEntry maps an open-attribute table index to the
// attribute's UTF-16LE name.
type AttributeNameEntry struct {
	Index      uint16
	NameLength uint16
	Name       string
}

// attributeNameEntryHeaderSize is the 6-byte prefix preceding each
// entry's name bytes: index(2) + name_length(2) + reserved(2).
const attributeNameEntryHeaderSize = 6

// DecodeAttributeNameEntries walks the variable-length attribute names
// table embedded in a client log record's raw data. As with
// LocateRestartTable, the table doesn't start at offset 0: it follows a
// ClientLogHeader, at the header's RedoOffset. Each entry is a 2-byte
// index, a 2-byte name length in bytes (not UTF-16 code units), a 2-byte
// reserved field, and name_length bytes of UTF-16LE name - a 6-byte
// stride plus the name. Decoding stops at the first entry whose index
// and length are both zero (the table's own terminator), matching
// parse_attribute_names in the reference tool.
func DecodeAttributeNameEntries(data []byte) []AttributeNameEntry {
	clientHeader := DecodeClientLogHeader(data)
	names := data[clientHeader.RedoOffset:]

	var out []AttributeNameEntry
	pos := 0
	for pos+attributeNameEntryHeaderSize <= len(names) {
		index := binary.LittleEndian.Uint16(names[pos : pos+2])
		length := binary.LittleEndian.Uint16(names[pos+2 : pos+4])
		if index == 0 && length == 0 {
			break
		}
		nameStart := pos + attributeNameEntryHeaderSize
		if nameStart+int(length) > len(names) {
			break
		}
		out = append(out, AttributeNameEntry{
			Index:      index,
			NameLength: length,
			Name:       decodeUTF16LE(names[nameStart : nameStart+int(length)]),
		})
		pos += attributeNameEntryHeaderSize + int(length)
	}
	return out
}
