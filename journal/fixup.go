package journal

// DefaultSectorSize is the sector size NTFS assumes when computing the
// update sequence array, regardless of the underlying media's physical
// sector size.
const DefaultSectorSize = 0x200

// ApplyFixup reverses the NTFS update-sequence-array transform in place.
// Every multi-sector structure (boot sector, MFT file record, $LogFile
// restart and record pages) stores a "valid" token in its first USA slot
// and the real bytes for each sector's final two bytes in the following
// slots; on disk, the last two bytes of every sector are overwritten with
// the valid token so a torn multi-sector write is detectable.
//
// ApplyFixup walks the sectors of page, swaps each sector's real tail
// bytes back out of the USA and the token back in, and verifies that the
// bytes it pulled from the sector tail equal the valid token. A mismatch
// means the page was torn: written only partially before capture.
func ApplyFixup(page []byte, sectorSize int) error {
	if sectorSize <= 0 || len(page) < MultiSectorHeaderSize {
		return ErrInvalidPageSize
	}
	header := decodeMultiSectorHeader(page)

	usaOffset := int(header.USAOffset)
	usaCount := int(header.USACount)
	if usaCount == 0 {
		return nil
	}
	if usaOffset+2 > len(page) {
		return ErrInvalidPageSize
	}

	validToken := [2]byte{page[usaOffset], page[usaOffset+1]}
	pos := usaOffset + 2

	for i := 1; i < usaCount; i++ {
		sectorTail := sectorSize*i - 2
		if sectorTail+2 > len(page) || pos+2 > len(page) {
			return ErrInvalidPageSize
		}

		realTail := [2]byte{page[pos], page[pos+1]}
		replaced := [2]byte{page[sectorTail], page[sectorTail+1]}

		page[pos], page[pos+1] = replaced[0], replaced[1]
		page[sectorTail], page[sectorTail+1] = realTail[0], realTail[1]

		if replaced != validToken {
			return ErrTornPage
		}
		pos += 2
	}
	return nil
}
