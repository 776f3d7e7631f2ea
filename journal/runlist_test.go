package journal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadSignedLESignExtends(t *testing.T) {
	require.EqualValues(t, 0x7FFF, readSignedLE([]byte{0xFF, 0x7F}))
	require.EqualValues(t, -1, readSignedLE([]byte{0xFF, 0xFF}))
	require.EqualValues(t, -0x8000, readSignedLE([]byte{0x00, 0x80}))
}

func TestReadUnsignedLE(t *testing.T) {
	require.EqualValues(t, 0x0102, readUnsignedLE([]byte{0x02, 0x01}))
	require.EqualValues(t, 0xFF, readUnsignedLE([]byte{0xFF}))
}

func TestDecodeRunlistSingleRun(t *testing.T) {
	// size byte 0x21: length width 1, lcn width 2; length=0x10, lcn delta=0x1234
	data := []byte{0x21, 0x10, 0x34, 0x12, 0x00}
	extents := DecodeRunlist(data, 0, 0)
	require.Len(t, extents, 1)
	require.EqualValues(t, 0, extents[0].VCN)
	require.EqualValues(t, 0x10, extents[0].Length)
	require.NotNil(t, extents[0].LCN)
	require.EqualValues(t, 0x1234, *extents[0].LCN)
}

func TestDecodeRunlistSparseRun(t *testing.T) {
	// size byte 0x01: length width 1, lcn width 0 (sparse)
	data := []byte{0x01, 0x05, 0x00}
	extents := DecodeRunlist(data, 0, 0)
	require.Len(t, extents, 1)
	require.Nil(t, extents[0].LCN)
	require.EqualValues(t, 5, extents[0].Length)
}

func TestDecodeRunlistMultipleRunsAccumulateLCN(t *testing.T) {
	// first run: length=0x10, lcn delta=0x100 -> lcn=0x100
	// second run: length=0x10, lcn delta=-0x10 -> lcn=0xF0
	data := []byte{
		0x21, 0x10, 0x00, 0x01,
		0x21, 0x10, 0xF0, 0xFF,
		0x00,
	}
	extents := DecodeRunlist(data, 0, 0)
	require.Len(t, extents, 2)
	require.EqualValues(t, 0x100, *extents[0].LCN)
	require.EqualValues(t, 0x10, extents[1].VCN)
	require.EqualValues(t, 0xF0, *extents[1].LCN)
}
