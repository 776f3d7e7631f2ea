package journal

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeVolume is a minimal io.ReaderAt over an in-memory buffer, used to
// exercise ExtractLogFile without a real disk image.
type fakeVolume struct {
	data []byte
}

func (v *fakeVolume) ReadAt(p []byte, off int64) (int, error) {
	return copy(p, v.data[off:]), nil
}

func putU32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func putU64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }

// buildFakeVolume lays out a tiny volume: boot sector at 0, MFT starting
// at cluster 4, a $LogFile MFT record (record #2) whose $DATA attribute
// maps to a single 2-cluster run at LCN 10, holding payload.
func buildFakeVolume(t *testing.T, payload []byte) []byte {
	t.Helper()
	const (
		bytesPerSector    = 512
		sectorsPerCluster = 1
		clusterSize       = bytesPerSector * sectorsPerCluster
		mftLCN            = 4
		recordSize        = 1024
	)

	vol := make([]byte, 64*clusterSize)

	boot := make([]byte, 512)
	binary.LittleEndian.PutUint16(boot[0x0B:0x0D], bytesPerSector)
	boot[0x0D] = sectorsPerCluster
	putU64(boot[0x30:0x38], mftLCN)
	boot[0x40] = 0xF6 // int8(-10): FileRecordSize = 1<<10 = 1024
	copy(vol[0:512], boot)

	recordOffset := int64(mftLCN*clusterSize) + MFTLogFileRecordNumber*recordSize
	record := make([]byte, recordSize)
	putU32(record[0:4], MagicFileRecord)
	binary.LittleEndian.PutUint16(record[4:6], 0x2A) // USAOffset
	binary.LittleEndian.PutUint16(record[6:8], 3)    // USACount = sectors(1024/512=2)+1
	binary.LittleEndian.PutUint16(record[20:22], 0x38)

	attrOffset := 0x38
	attr := record[attrOffset:]
	putU32(attr[0:4], AttrTypeData)
	attrLen := uint32(72 + 8) // header+non-resident fixed fields + 8 bytes mapping pairs
	putU32(attr[4:8], attrLen)
	attr[8] = 1 // form code: non-resident
	binary.LittleEndian.PutUint16(attr[32:34], 64) // MappingPairsOffset within attribute record
	putU64(attr[48:56], uint64(len(payload)))       // DataSize

	// mapping pairs at attr[64:]: size byte 0x21 -> length width1, lcn width2
	mp := attr[64:]
	mp[0] = 0x21
	mp[1] = 2 // length = 2 clusters
	binary.LittleEndian.PutUint16(mp[2:4], 10) // lcn = 10
	mp[4] = 0x00                                // terminator

	putU32(record[attrOffset+int(attrLen):attrOffset+int(attrLen)+4], AttrTypeEndMarker)

	// USA fixup for the 2-sector record.
	usaOffset := 0x2A
	token := [2]byte{0xAB, 0xCD}
	record[usaOffset], record[usaOffset+1] = token[0], token[1]
	for i := 1; i <= 2; i++ {
		tail := bytesPerSector*i - 2
		slot := usaOffset + 2*i
		record[slot], record[slot+1] = record[tail], record[tail+1]
		record[tail], record[tail+1] = token[0], token[1]
	}

	copy(vol[recordOffset:recordOffset+recordSize], record)

	dataOffset := int64(10 * clusterSize)
	copy(vol[dataOffset:], payload)

	return vol
}

func TestExtractLogFileReadsDataRun(t *testing.T) {
	payload := bytes.Repeat([]byte{0x42}, 600)
	vol := buildFakeVolume(t, payload)

	data, err := ExtractLogFile(&fakeVolume{data: vol})
	require.NoError(t, err)
	require.Len(t, data, len(payload))
	require.True(t, bytes.Equal(data, payload))
}
