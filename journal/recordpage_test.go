package journal

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeRecordPageHeader(t *testing.T) {
	data := make([]byte, RecordPageHeaderSize)
	binary.LittleEndian.PutUint32(data[0:4], MagicRecordPage)
	binary.LittleEndian.PutUint64(data[8:16], 0xABCDEF)
	binary.LittleEndian.PutUint32(data[16:20], 1)
	binary.LittleEndian.PutUint16(data[20:22], 2)
	binary.LittleEndian.PutUint16(data[22:24], 1)
	binary.LittleEndian.PutUint16(data[24:26], 0x100)
	binary.LittleEndian.PutUint64(data[32:40], 0xFEED)

	h := DecodeRecordPageHeader(data)
	require.Equal(t, MagicRecordPage, h.MultiSectorHeader.Magic)
	require.EqualValues(t, 0xABCDEF, h.LastLSN())
	require.EqualValues(t, 2, h.PageCount)
	require.EqualValues(t, 1, h.PagePosition)
	require.EqualValues(t, 0x100, h.NextRecordOffset)
	require.EqualValues(t, 0xFEED, h.LastEndLSN)
}

func TestDecodeLogRecordHeader(t *testing.T) {
	data := make([]byte, LogRecordHeaderSize)
	binary.LittleEndian.PutUint64(data[0:8], 0x2000)
	binary.LittleEndian.PutUint64(data[8:16], 0x1000)
	binary.LittleEndian.PutUint64(data[16:24], 0x1800)
	binary.LittleEndian.PutUint32(data[24:28], 64)
	binary.LittleEndian.PutUint32(data[32:36], RecordTypeClient)
	binary.LittleEndian.PutUint32(data[36:40], 7)

	h := DecodeLogRecordHeader(data)
	require.EqualValues(t, 0x2000, h.ThisLSN)
	require.EqualValues(t, 0x1000, h.ClientPreviousLSN)
	require.EqualValues(t, 0x1800, h.ClientUndoNextLSN)
	require.EqualValues(t, 64, h.ClientDataLength)
	require.Equal(t, RecordTypeClient, h.RecordType)
	require.EqualValues(t, 7, h.TransactionID)
}

func TestDecodeClientLogHeaderOpcodes(t *testing.T) {
	data := make([]byte, ClientLogHeaderSize)
	binary.LittleEndian.PutUint16(data[0:2], uint16(OpUpdateResidentValue))
	binary.LittleEndian.PutUint16(data[2:4], uint16(OpNoop))

	h := DecodeClientLogHeader(data)
	require.Equal(t, OpUpdateResidentValue, h.RedoOperation)
	require.Equal(t, "UpdateResidentValue", h.RedoOperation.String())
	require.Equal(t, OpNoop, h.UndoOperation)
}
