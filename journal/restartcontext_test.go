package journal

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildRestartContextFixture lays out a two-page $LogFile: page 0 holds a
// client's restart area record, page 1 holds its open-attributes restart
// table record (addressed through a ClientLogHeader, per
// LocateRestartTable). Each page holds exactly one record, so no
// continuation logic is exercised here - that's iterator_test.go's job.
func buildRestartContextFixture(t *testing.T) (*LogFile, ControlBlock, uint64) {
	t.Helper()
	const pageSize = 512
	const fileSize = 2 * pageSize
	cb := NewControlBlock(pageSize, pageSize, fileSize, 32, RecordPageHeaderSize)

	data := make([]byte, fileSize)
	page0 := data[0:pageSize]
	page1 := data[pageSize : 2*pageSize]
	binary.LittleEndian.PutUint32(page0[0:4], MagicRecordPage)
	binary.LittleEndian.PutUint32(page1[0:4], MagicRecordPage)

	areaLSN := cb.LSNOf(40, 0)
	tableLSN := cb.LSNOf(pageSize+40, 0)

	binary.LittleEndian.PutUint64(page0[8:16], areaLSN)
	putLogRecordHeader(page0, 40, areaLSN, RestartAreaSize)
	area := page0[88 : 88+RestartAreaSize]
	binary.LittleEndian.PutUint64(area[16:24], tableLSN) // OpenAttrTableLSN

	const clientDataLength = ClientLogHeaderSize + RestartTableHeaderSize + 44
	binary.LittleEndian.PutUint64(page1[8:16], tableLSN)
	putLogRecordHeader(page1, 40, tableLSN, clientDataLength)
	clientData := page1[88 : 88+clientDataLength]
	binary.LittleEndian.PutUint16(clientData[4:6], ClientLogHeaderSize) // RedoOffset

	table := clientData[ClientLogHeaderSize:]
	binary.LittleEndian.PutUint16(table[0:2], 44) // EntrySize
	binary.LittleEndian.PutUint16(table[2:4], 1)  // NumberOfEntries
	binary.LittleEndian.PutUint16(table[4:6], 1)  // NumberAllocated

	entry := table[RestartTableHeaderSize:]
	binary.LittleEndian.PutUint64(entry[8:16], 0xFEEDFACE) // FileReference (wide shape)
	binary.LittleEndian.PutUint32(entry[28:32], 0x80)      // AttributeTypeCode (wide shape)

	lf := newTestLogFile(t, data, cb, 0)
	return lf, cb, areaLSN
}

func TestReadClientRestartContextLocatesOpenAttrTable(t *testing.T) {
	lf, _, areaLSN := buildRestartContextFixture(t)

	client := ClientRecord{Name: "NTFS", ClientRestartLSN: areaLSN}
	ctx, err := ReadClientRestartContext(lf, client)
	require.NoError(t, err)

	require.Equal(t, "NTFS", ctx.Client.Name)
	require.Len(t, ctx.OpenAttrs, 1)
	require.True(t, ctx.OpenAttrs[0].Is32BitShape)
	require.EqualValues(t, 0xFEEDFACE, ctx.OpenAttrs[0].FileReference)
	require.EqualValues(t, 0x80, ctx.OpenAttrs[0].AttributeTypeCode)

	require.Empty(t, ctx.AttrNames)
	require.Empty(t, ctx.DirtyPages)
	require.Empty(t, ctx.Transactions)
}

func TestFindClientLooksUpByName(t *testing.T) {
	block := RestartBlock{Clients: []ClientRecord{{Name: "NTFS"}}}

	c, err := FindClient(block, "NTFS")
	require.NoError(t, err)
	require.Equal(t, "NTFS", c.Name)

	_, err = FindClient(block, "Unknown")
	require.ErrorIs(t, err, ErrUnknownClient)
}
