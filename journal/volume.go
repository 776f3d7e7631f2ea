package journal

import (
	"fmt"
	"io"
)

// MFTLogFileRecordNumber is the fixed MFT record number reserved for
// $LogFile on every NTFS volume.
const MFTLogFileRecordNumber = 2

// ExtractLogFile reads $LogFile's data stream out of a raw NTFS volume
// (or disk image) and returns it as a contiguous byte slice, ready to be
// handed to ReadRestartBlocks. It performs the full boot-sector walk: read
// the boot sector, compute the MFT record size and $LogFile's record
// offset, fix up that record, locate its non-resident $DATA attribute,
// decode the runlist, and read each extent in turn.
//
// Extents are never coalesced across runs: a sparse run contributes
// Length*clusterSize zero bytes, and each real run is read with its own
// ReadAt call, matching how $LogFile is laid out as discontiguous
// clusters on a live volume.
func ExtractLogFile(vol io.ReaderAt) ([]byte, error) {
	bootSectorBuf := make([]byte, 512)
	if _, err := vol.ReadAt(bootSectorBuf, 0); err != nil {
		return nil, fmt.Errorf("journal: reading boot sector: %w", err)
	}
	boot := DecodeBootSector(bootSectorBuf)
	clusterSize := boot.ClusterSize()
	recordSize := boot.FileRecordSize()

	recordOffset := boot.MFTOffset() + MFTLogFileRecordNumber*recordSize
	record := make([]byte, recordSize)
	if _, err := vol.ReadAt(record, recordOffset); err != nil {
		return nil, fmt.Errorf("journal: reading $LogFile MFT record: %w", err)
	}
	if err := ApplyFixup(record, DefaultSectorSize); err != nil {
		return nil, fmt.Errorf("journal: fixing up $LogFile MFT record: %w", err)
	}

	dataAttr, err := FindDataStream(record)
	if err != nil {
		return nil, err
	}

	// The attribute record's own bytes (for the mapping pairs offset) are
	// the same slice FindDataStream matched against; re-locate it to hand
	// to Runlist.
	attrBytes, err := attributeRecordBytes(record, dataAttr)
	if err != nil {
		return nil, err
	}
	extents := dataAttr.Runlist(attrBytes)
	if len(extents) == 0 {
		return nil, ErrNoDataAttribute
	}

	out := make([]byte, 0, dataAttr.DataSize)
	for _, ext := range extents {
		runBytes := ext.Length * clusterSize
		if ext.LCN == nil {
			out = append(out, make([]byte, runBytes)...)
			continue
		}
		buf := make([]byte, runBytes)
		if _, err := vol.ReadAt(buf, *ext.LCN*clusterSize); err != nil {
			return nil, fmt.Errorf("journal: reading $LogFile extent at VCN %d: %w", ext.VCN, err)
		}
		out = append(out, buf...)
	}

	if int64(len(out)) > dataAttr.DataSize && dataAttr.DataSize > 0 {
		out = out[:dataAttr.DataSize]
	}
	return out, nil
}

// attributeRecordBytes re-scans the file record to find the exact byte
// range FindDataStream matched, so the runlist decoder can be handed a
// slice whose offset 0 is the start of the attribute record (matching
// MappingPairsOffset's frame of reference).
func attributeRecordBytes(record []byte, want NonResidentAttributeRecord) ([]byte, error) {
	header := DecodeFileRecordSegmentHeader(record)
	pos := int(header.AttrOffset)

	for pos+4 <= len(record) {
		attrType := uint32FromLE(record[pos : pos+4])
		if attrType == AttrTypeEndMarker {
			break
		}
		if pos+AttributeRecordHeaderSize > len(record) {
			break
		}
		length := uint32FromLE(record[pos+4 : pos+8])
		if length == 0 || pos+int(length) > len(record) {
			break
		}
		if attrType == want.Type && int(length) == int(want.Length) {
			return record[pos : pos+int(length)], nil
		}
		pos += int(length)
	}
	return nil, ErrNoDataAttribute
}

func uint32FromLE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
