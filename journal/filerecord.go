package journal

import "encoding/binary"

// FileRecordSegmentHeaderSize is the fixed portion preceding a file
// record's attribute stream.
const FileRecordSegmentHeaderSize = 48

// Attribute type codes relevant to locating $LogFile's data stream.
const (
	AttrTypeData      uint32 = 0x80
	AttrTypeEndMarker uint32 = 0xFFFFFFFF
)

// FileRecordSegmentHeader is the header of one MFT file record (a "FILE"
// multi-sector structure).
type FileRecordSegmentHeader struct {
	MultiSectorHeader MultiSectorHeader
	LSN               uint64
	SequenceNumber    uint16
	ReferenceCount    uint16
	AttrOffset        uint16
	Flags             uint16
	FirstFreeByte     uint32
	BytesAvailable    uint32
	BaseRecord        uint64
	NextAttrInstance  uint16
	MFTRecordNumber   uint32
}

// DecodeFileRecordSegmentHeader reads a FileRecordSegmentHeader from an
// already fixed-up file record.
func DecodeFileRecordSegmentHeader(data []byte) FileRecordSegmentHeader {
	return FileRecordSegmentHeader{
		MultiSectorHeader: decodeMultiSectorHeader(data),
		LSN:               binary.LittleEndian.Uint64(data[8:16]),
		SequenceNumber:    binary.LittleEndian.Uint16(data[16:18]),
		ReferenceCount:    binary.LittleEndian.Uint16(data[18:20]),
		AttrOffset:        binary.LittleEndian.Uint16(data[20:22]),
		Flags:             binary.LittleEndian.Uint16(data[22:24]),
		FirstFreeByte:     binary.LittleEndian.Uint32(data[24:28]),
		BytesAvailable:    binary.LittleEndian.Uint32(data[28:32]),
		BaseRecord:        binary.LittleEndian.Uint64(data[32:40]),
		NextAttrInstance:  binary.LittleEndian.Uint16(data[40:42]),
		MFTRecordNumber:   binary.LittleEndian.Uint32(data[44:48]),
	}
}

// FindDataStream scans a fixed-up file record's attribute list for a
// non-resident $DATA attribute (type 0x80, form code 1) and returns its
// NonResidentAttributeRecord. It stops at the 0xFFFFFFFF end-of-attributes
// marker.
func FindDataStream(record []byte) (NonResidentAttributeRecord, error) {
	header := DecodeFileRecordSegmentHeader(record)
	pos := int(header.AttrOffset)

	for pos+4 <= len(record) {
		attrType := binary.LittleEndian.Uint32(record[pos : pos+4])
		if attrType == AttrTypeEndMarker {
			break
		}
		if pos+AttributeRecordHeaderSize > len(record) {
			break
		}
		length := binary.LittleEndian.Uint32(record[pos+4 : pos+8])
		if length == 0 || pos+int(length) > len(record) {
			break
		}
		formCode := record[pos+8]

		if attrType == AttrTypeData && formCode == 1 {
			return DecodeNonResidentAttributeRecord(record[pos : pos+int(length)]), nil
		}
		pos += int(length)
	}
	return NonResidentAttributeRecord{}, ErrNoDataAttribute
}
