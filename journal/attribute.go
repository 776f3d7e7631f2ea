package journal

import "encoding/binary"

// AttributeRecordHeaderSize is the size of the common prefix shared by
// resident and non-resident attribute records, up to the form-specific
// fields.
const AttributeRecordHeaderSize = 16

// NonResidentAttributeRecord describes a non-resident attribute, i.e. one
// whose data lives in clusters described by a runlist rather than inline
// in the file record. $LogFile's $DATA attribute is always non-resident.
type NonResidentAttributeRecord struct {
	Type               uint32
	Length             uint32
	FormCode           uint8
	NameLength         uint8
	NameOffset         uint16
	Flags              uint16
	Instance           uint16
	LowestVCN          int64
	HighestVCN         int64
	MappingPairsOffset uint16
	CompressionUnit    uint8
	AllocatedSize      int64
	DataSize           int64
	InitializedSize    int64
}

// DecodeNonResidentAttributeRecord decodes a non-resident attribute record
// from its raw bytes (as sliced out of a fixed-up file record by length).
func DecodeNonResidentAttributeRecord(data []byte) NonResidentAttributeRecord {
	r := NonResidentAttributeRecord{
		Type:               binary.LittleEndian.Uint32(data[0:4]),
		Length:             binary.LittleEndian.Uint32(data[4:8]),
		FormCode:           data[8],
		NameLength:         data[9],
		NameOffset:         binary.LittleEndian.Uint16(data[10:12]),
		Flags:              binary.LittleEndian.Uint16(data[12:14]),
		Instance:           binary.LittleEndian.Uint16(data[14:16]),
		LowestVCN:          int64(binary.LittleEndian.Uint64(data[16:24])),
		HighestVCN:         int64(binary.LittleEndian.Uint64(data[24:32])),
		MappingPairsOffset: binary.LittleEndian.Uint16(data[32:34]),
		CompressionUnit:    data[34],
	}
	if len(data) >= 72 {
		r.AllocatedSize = int64(binary.LittleEndian.Uint64(data[40:48]))
		r.DataSize = int64(binary.LittleEndian.Uint64(data[48:56]))
		r.InitializedSize = int64(binary.LittleEndian.Uint64(data[56:64]))
	}
	return r
}

// Runlist decodes the data stream's mapping pairs using its stored VCN and
// offset, starting VCN counting from LowestVCN.
func (r NonResidentAttributeRecord) Runlist(attrRecord []byte) []Extent {
	return DecodeRunlist(attrRecord, r.LowestVCN, int(r.MappingPairsOffset))
}
