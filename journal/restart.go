package journal

import "encoding/binary"

// RestartPageHeaderSize is the fixed size of a restart page's header.
const RestartPageHeaderSize = 30

// RestartPageHeader is the multi-sector header of a $LogFile restart page.
// $LogFile carries two of these (the primary at offset 0, the backup one
// system page later); whichever has the higher CurrentLSN in its restart
// area is authoritative.
type RestartPageHeader struct {
	MultiSectorHeader MultiSectorHeader
	ChkDskLSN         uint64
	SystemPageSize    uint32
	LogPageSize       uint32
	RestartOffset     uint16
	MinorVersion      uint16
	MajorVersion      uint16
}

func decodeRestartPageHeader(data []byte) RestartPageHeader {
	return RestartPageHeader{
		MultiSectorHeader: decodeMultiSectorHeader(data),
		ChkDskLSN:         binary.LittleEndian.Uint64(data[8:16]),
		SystemPageSize:    binary.LittleEndian.Uint32(data[16:20]),
		LogPageSize:       binary.LittleEndian.Uint32(data[20:24]),
		RestartOffset:     binary.LittleEndian.Uint16(data[24:26]),
		MinorVersion:      binary.LittleEndian.Uint16(data[26:28]),
		MajorVersion:      binary.LittleEndian.Uint16(data[28:30]),
	}
}

// LsnRestartAreaSize is the fixed size of LsnRestartArea, not counting the
// trailing client record array.
const LsnRestartAreaSize = 48

// LsnRestartArea is the restart area embedded in a restart page, giving
// the LSN arithmetic parameters and the location of the logging client
// array.
type LsnRestartArea struct {
	CurrentLSN           uint64
	LogClients           uint16
	ClientFreeList       uint16
	ClientInUseList      uint16
	Flags                uint16
	SeqNumberBits        uint32
	RestartAreaLength    uint16
	ClientArrayOffset    uint16
	FileSize             int64
	LastLsnDataLength    uint32
	LogRecordHeaderLength uint16
	LogPageDataOffset    uint16
	RestartLogOpenCount  uint32
}

func decodeLsnRestartArea(data []byte) LsnRestartArea {
	return LsnRestartArea{
		CurrentLSN:            binary.LittleEndian.Uint64(data[0:8]),
		LogClients:            binary.LittleEndian.Uint16(data[8:10]),
		ClientFreeList:        binary.LittleEndian.Uint16(data[10:12]),
		ClientInUseList:       binary.LittleEndian.Uint16(data[12:14]),
		Flags:                 binary.LittleEndian.Uint16(data[14:16]),
		SeqNumberBits:         binary.LittleEndian.Uint32(data[16:20]),
		RestartAreaLength:     binary.LittleEndian.Uint16(data[20:22]),
		ClientArrayOffset:     binary.LittleEndian.Uint16(data[22:24]),
		FileSize:              int64(binary.LittleEndian.Uint64(data[24:32])),
		LastLsnDataLength:     binary.LittleEndian.Uint32(data[32:36]),
		LogRecordHeaderLength: binary.LittleEndian.Uint16(data[36:38]),
		LogPageDataOffset:     binary.LittleEndian.Uint16(data[38:40]),
		RestartLogOpenCount:   binary.LittleEndian.Uint32(data[40:44]),
	}
}

// ClientRecordSize is the fixed size of one logging client record.
const ClientRecordSize = 96

// clientRecordNameMaxBytes bounds the UTF-16LE name field within a
// ClientRecord.
const clientRecordNameMaxBytes = 64

// ClientRecord describes one logging client (normally exactly one:
// "NTFS") registered in a restart area's client array.
type ClientRecord struct {
	OldestLSN        uint64
	ClientRestartLSN uint64
	PrevClient       uint16
	NextClient       uint16
	SeqNumber        uint16
	NameLength       uint32
	Name             string
}

func decodeClientRecord(data []byte) ClientRecord {
	nameLength := binary.LittleEndian.Uint32(data[28:32])
	nameBytes := int(nameLength)
	if nameBytes > clientRecordNameMaxBytes {
		nameBytes = clientRecordNameMaxBytes
	}
	return ClientRecord{
		OldestLSN:        binary.LittleEndian.Uint64(data[0:8]),
		ClientRestartLSN: binary.LittleEndian.Uint64(data[8:16]),
		PrevClient:       binary.LittleEndian.Uint16(data[16:18]),
		NextClient:       binary.LittleEndian.Uint16(data[18:20]),
		SeqNumber:        binary.LittleEndian.Uint16(data[20:22]),
		NameLength:       nameLength,
		Name:             decodeUTF16LE(data[32 : 32+nameBytes]),
	}
}

func decodeUTF16LE(b []byte) string {
	runes := make([]rune, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		runes = append(runes, rune(binary.LittleEndian.Uint16(b[i:i+2])))
	}
	return string(runes)
}

// RestartBlock is one of $LogFile's two top-level restart blocks, fully
// decoded: the page header, restart area, and client array.
type RestartBlock struct {
	Header      RestartPageHeader
	Area        LsnRestartArea
	Clients     []ClientRecord
	PageOffset  int64
}

// ReadRestartBlocks reads and fixes up both restart pages (at offset 0 and
// at SystemPageSize, using the SystemPageSize recorded in the first page's
// header) and returns them in page order. A page that fails fixup is
// omitted from the result rather than causing an error, since the other
// page may still be usable; ReadRestartBlocks only errors when neither
// page can be parsed at all.
func ReadRestartBlocks(logFile []byte) ([]RestartBlock, error) {
	if len(logFile) < RestartPageHeaderSize {
		return nil, ErrNoValidRestart
	}

	// The header fields lie in the first sector, clear of the sector-tail
	// bytes the fixup rewrites, so they can be read before either page is
	// fixed up; a torn first page then only drops that page below.
	firstHeader := decodeRestartPageHeader(logFile)
	systemPageSize := int(firstHeader.SystemPageSize)
	if systemPageSize <= 0 || systemPageSize > len(logFile) {
		return nil, ErrNoValidRestart
	}

	var blocks []RestartBlock
	for _, pageOffset := range []int64{0, int64(systemPageSize)} {
		if pageOffset+int64(systemPageSize) > int64(len(logFile)) {
			continue
		}
		page := make([]byte, systemPageSize)
		copy(page, logFile[pageOffset:pageOffset+int64(systemPageSize)])

		if err := ApplyFixup(page, DefaultSectorSize); err != nil {
			continue
		}
		header := decodeRestartPageHeader(page)
		if header.MultiSectorHeader.Magic != MagicRestartPage {
			continue
		}
		areaOffset := int(header.RestartOffset)
		if areaOffset+LsnRestartAreaSize > len(page) {
			continue
		}
		area := decodeLsnRestartArea(page[areaOffset:])

		clientsOffset := areaOffset + int(area.ClientArrayOffset)
		clients := make([]ClientRecord, 0, area.LogClients)
		for i := 0; i < int(area.LogClients); i++ {
			start := clientsOffset + i*ClientRecordSize
			if start+ClientRecordSize > len(page) {
				break
			}
			clients = append(clients, decodeClientRecord(page[start:start+ClientRecordSize]))
		}

		blocks = append(blocks, RestartBlock{
			Header:     header,
			Area:       area,
			Clients:    clients,
			PageOffset: pageOffset,
		})
	}

	if len(blocks) == 0 {
		return nil, ErrNoValidRestart
	}
	return blocks, nil
}

// SelectRestartBlock picks the authoritative restart block: the one with
// the higher CurrentLSN, per the NTFS rule that either restart page may
// lag the other after a crash mid-write.
func SelectRestartBlock(blocks []RestartBlock) (RestartBlock, error) {
	if len(blocks) == 0 {
		return RestartBlock{}, ErrNoValidRestart
	}
	best := blocks[0]
	for _, b := range blocks[1:] {
		if b.Area.CurrentLSN > best.Area.CurrentLSN {
			best = b
		}
	}
	return best, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
