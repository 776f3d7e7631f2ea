package journal

import "encoding/binary"

// RecordPageHeaderSize is the fixed size of a $LogFile record page header.
const RecordPageHeaderSize = 40

// RecordPageHeader is the header of one $LogFile record page (an "RCRD"
// multi-sector structure holding a run of log records).
//
// Copy is a union: on log format 1.x it holds the raw file offset of the
// logging-area page this page is a copy of (FileOffset); on 2.0+ file
// offsets are no longer stored here, so it holds the LSN of the last log
// record to begin on the page instead (LastLSN). Callers distinguish the two using ControlBlock.LogPageMask:
// a value whose low log-page-size bits are set can't be a page-aligned
// file offset, so it must be the 2.0+ LSN form.
type RecordPageHeader struct {
	MultiSectorHeader MultiSectorHeader
	Copy              uint64
	Flags             uint32
	PageCount         uint16
	PagePosition      uint16
	NextRecordOffset  uint16
	LastEndLSN        uint64
}

// DecodeRecordPageHeader reads a RecordPageHeader from a fixed-up record
// page.
func DecodeRecordPageHeader(data []byte) RecordPageHeader {
	return RecordPageHeader{
		MultiSectorHeader: decodeMultiSectorHeader(data),
		Copy:              binary.LittleEndian.Uint64(data[8:16]),
		Flags:             binary.LittleEndian.Uint32(data[16:20]),
		PageCount:         binary.LittleEndian.Uint16(data[20:22]),
		PagePosition:      binary.LittleEndian.Uint16(data[22:24]),
		NextRecordOffset:  binary.LittleEndian.Uint16(data[24:26]),
		LastEndLSN:        binary.LittleEndian.Uint64(data[32:40]),
	}
}

// LastLSN views Copy as the 2.0+ union member.
func (h RecordPageHeader) LastLSN() uint64 { return h.Copy }

// FileOffset views Copy as the 1.x union member.
func (h RecordPageHeader) FileOffset() int64 { return int64(h.Copy) }

// LogRecordHeaderSize is the fixed size of a log record's header, before
// its client data. Client data begins at qalign(offset + LogRecordHeaderSize).
const LogRecordHeaderSize = 44

// LogRecordHeader is the fixed header preceding every log record's
// client-specific payload.
type LogRecordHeader struct {
	ThisLSN            uint64
	ClientPreviousLSN  uint64
	ClientUndoNextLSN  uint64
	ClientDataLength   uint32
	ClientSeqNumber    uint16
	ClientIndex        uint16
	RecordType         uint32
	TransactionID      uint32
	Flags              uint16
}

// RecordTypeClient and RecordTypeRestart are the two values RecordType
// takes.
const (
	RecordTypeClient  uint32 = 1
	RecordTypeRestart uint32 = 2
)

// DecodeLogRecordHeader reads a LogRecordHeader from the first
// LogRecordHeaderSize bytes of data.
func DecodeLogRecordHeader(data []byte) LogRecordHeader {
	return LogRecordHeader{
		ThisLSN:           binary.LittleEndian.Uint64(data[0:8]),
		ClientPreviousLSN: binary.LittleEndian.Uint64(data[8:16]),
		ClientUndoNextLSN: binary.LittleEndian.Uint64(data[16:24]),
		ClientDataLength:  binary.LittleEndian.Uint32(data[24:28]),
		ClientSeqNumber:   binary.LittleEndian.Uint16(data[28:30]),
		ClientIndex:       binary.LittleEndian.Uint16(data[30:32]),
		RecordType:        binary.LittleEndian.Uint32(data[32:36]),
		TransactionID:     binary.LittleEndian.Uint32(data[36:40]),
		Flags:             binary.LittleEndian.Uint16(data[40:42]),
	}
}

// ClientLogHeaderSize is the fixed size of a client record's own header
// within its client data, covering the redo/undo descriptors and the
// first of its trailing LCN slots.
const ClientLogHeaderSize = 40

// ClientLogHeader describes the redo/undo operation pair carried in a
// client (record_type == RecordTypeClient) log record's client data.
// Decoding further operation-specific payloads (the bytes redo/undo
// actually replay) is left to callers; this package exposes them as the
// raw client-data bytes RecordIterator.Next returns.
type ClientLogHeader struct {
	RedoOperation       Opcode
	UndoOperation       Opcode
	RedoOffset          uint16
	RedoLength          uint16
	UndoOffset          uint16
	UndoLength          uint16
	TargetAttribute     uint16
	LCNsToFollow        uint16
	RecordOffset        uint16
	AttributeOffset     uint16
	ClusterBlockOffset  uint16
	TargetVCN           uint64
}

// DecodeClientLogHeader reads a ClientLogHeader from the start of a
// client record's client data.
func DecodeClientLogHeader(data []byte) ClientLogHeader {
	return ClientLogHeader{
		RedoOperation:      Opcode(binary.LittleEndian.Uint16(data[0:2])),
		UndoOperation:      Opcode(binary.LittleEndian.Uint16(data[2:4])),
		RedoOffset:         binary.LittleEndian.Uint16(data[4:6]),
		RedoLength:         binary.LittleEndian.Uint16(data[6:8]),
		UndoOffset:         binary.LittleEndian.Uint16(data[8:10]),
		UndoLength:         binary.LittleEndian.Uint16(data[10:12]),
		TargetAttribute:    binary.LittleEndian.Uint16(data[12:14]),
		LCNsToFollow:       binary.LittleEndian.Uint16(data[14:16]),
		RecordOffset:       binary.LittleEndian.Uint16(data[16:18]),
		AttributeOffset:    binary.LittleEndian.Uint16(data[18:20]),
		ClusterBlockOffset: binary.LittleEndian.Uint16(data[20:22]),
		TargetVCN:          binary.LittleEndian.Uint64(data[24:32]),
	}
}
