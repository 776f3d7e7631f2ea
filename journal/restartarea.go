package journal

import "encoding/binary"

// RestartAreaSize is the fixed size of the client restart area described
// in this file (distinct from LsnRestartArea, the page-level restart
// area embedded directly in a restart page). This is the restart area a
// logging client's ClientRestartLSN points at, carrying the four restart
// table locations.
const RestartAreaSize = 64

// RestartArea is a logging client's restart area: the checkpoint LSN and
// the locations of its four restart tables (open attributes, attribute
// names, dirty pages, transactions).
type RestartArea struct {
	MajorVersion         uint32
	MinorVersion         uint32
	StartOfCheckpoint    uint64
	OpenAttrTableLSN     uint64
	AttrNamesLSN         uint64
	DirtyPagesTableLSN   uint64
	TransactionTableLSN  uint64
	OpenAttrTableLength   uint32
	AttrNamesLength       uint32
	DirtyPagesTableLength uint32
	TransactionTableLength uint32
}

// DecodeRestartArea reads a RestartArea from client data.
func DecodeRestartArea(data []byte) RestartArea {
	return RestartArea{
		MajorVersion:           binary.LittleEndian.Uint32(data[0:4]),
		MinorVersion:           binary.LittleEndian.Uint32(data[4:8]),
		StartOfCheckpoint:      binary.LittleEndian.Uint64(data[8:16]),
		OpenAttrTableLSN:       binary.LittleEndian.Uint64(data[16:24]),
		AttrNamesLSN:           binary.LittleEndian.Uint64(data[24:32]),
		DirtyPagesTableLSN:     binary.LittleEndian.Uint64(data[32:40]),
		TransactionTableLSN:    binary.LittleEndian.Uint64(data[40:48]),
		OpenAttrTableLength:    binary.LittleEndian.Uint32(data[48:52]),
		AttrNamesLength:        binary.LittleEndian.Uint32(data[52:56]),
		DirtyPagesTableLength:  binary.LittleEndian.Uint32(data[56:60]),
		TransactionTableLength: binary.LittleEndian.Uint32(data[60:64]),
	}
}
