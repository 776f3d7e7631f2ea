package journal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildBootSector(bytesPerSector uint16, sectorsPerCluster uint8, mftLCN, mftMirrorLCN int64, clustersPerMFTRecord int8) []byte {
	data := make([]byte, 0x48)
	data[0x0B] = byte(bytesPerSector)
	data[0x0C] = byte(bytesPerSector >> 8)
	data[0x0D] = sectorsPerCluster
	putLE64(data[0x30:0x38], uint64(mftLCN))
	putLE64(data[0x38:0x40], uint64(mftMirrorLCN))
	data[0x40] = byte(clustersPerMFTRecord)
	return data
}

func putLE64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> uint(8*i))
	}
}

func TestDecodeBootSector(t *testing.T) {
	data := buildBootSector(512, 8, 786432, 2, -10)
	b := DecodeBootSector(data)

	require.EqualValues(t, 512, b.BytesPerSector)
	require.EqualValues(t, 8, b.SectorsPerCluster)
	require.EqualValues(t, 786432, b.MFTLCN)
	require.EqualValues(t, 2, b.MFTMirrorLCN)
	require.EqualValues(t, 4096, b.ClusterSize())
	require.EqualValues(t, 786432*4096, b.MFTOffset())
}

func TestFileRecordSizeFromClusterCount(t *testing.T) {
	data := buildBootSector(512, 8, 0, 0, 2)
	b := DecodeBootSector(data)
	require.EqualValues(t, 2*4096, b.FileRecordSize())
}

func TestFileRecordSizeFromNegativeLog2(t *testing.T) {
	data := buildBootSector(512, 8, 0, 0, -10)
	b := DecodeBootSector(data)
	require.EqualValues(t, 1024, b.FileRecordSize())
}
