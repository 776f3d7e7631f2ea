package journal

import "encoding/binary"

// MultiSectorHeaderSize is the on-disk size of MultiSectorHeader.
const MultiSectorHeaderSize = 8

// MultiSectorHeader opens every fixed-up NTFS structure: boot sector, MFT
// file record, and $LogFile restart/record pages alike. It locates the
// update sequence array that ApplyFixup consumes.
type MultiSectorHeader struct {
	Magic     uint32
	USAOffset uint16
	USACount  uint16
}

func decodeMultiSectorHeader(data []byte) MultiSectorHeader {
	return MultiSectorHeader{
		Magic:     binary.LittleEndian.Uint32(data[0:4]),
		USAOffset: binary.LittleEndian.Uint16(data[4:6]),
		USACount:  binary.LittleEndian.Uint16(data[6:8]),
	}
}

// Known MultiSectorHeader.Magic values.
const (
	MagicRestartPage uint32 = 0x52545352 // "RSTR"
	MagicRecordPage  uint32 = 0x44524352 // "RCRD"
	MagicFileRecord  uint32 = 0x454C4946 // "FILE"
	MagicBAAD        uint32 = 0x44414142 // "BAAD" - a page that failed fixup verification upstream
)
