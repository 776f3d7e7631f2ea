package journal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildFixupPage(t *testing.T, sectors int, sectorSize int, token [2]byte, tails [][2]byte) []byte {
	t.Helper()
	page := make([]byte, sectors*sectorSize)
	page[0], page[1], page[2], page[3] = 'R', 'C', 'R', 'D'
	usaOffset := 0x28
	usaCount := sectors + 1
	page[4] = byte(usaOffset)
	page[5] = byte(usaOffset >> 8)
	page[6] = byte(usaCount)
	page[7] = byte(usaCount >> 8)

	page[usaOffset], page[usaOffset+1] = token[0], token[1]
	pos := usaOffset + 2
	for i := 0; i < sectors; i++ {
		tail := sectorSize*(i+1) - 2
		page[pos], page[pos+1] = tails[i][0], tails[i][1]
		page[tail], page[tail+1] = token[0], token[1]
		pos += 2
	}
	return page
}

func TestApplyFixupRestoresSectorTails(t *testing.T) {
	token := [2]byte{0xAB, 0xCD}
	tails := [][2]byte{{0x11, 0x22}, {0x33, 0x44}}
	page := buildFixupPage(t, 2, 512, token, tails)

	require.NoError(t, ApplyFixup(page, 512))
	require.Equal(t, byte(0x11), page[510])
	require.Equal(t, byte(0x22), page[511])
	require.Equal(t, byte(0x33), page[1022])
	require.Equal(t, byte(0x44), page[1023])
}

func TestApplyFixupDetectsTornPage(t *testing.T) {
	token := [2]byte{0xAB, 0xCD}
	tails := [][2]byte{{0x11, 0x22}, {0x33, 0x44}}
	page := buildFixupPage(t, 2, 512, token, tails)

	page[1022] = 0x99

	err := ApplyFixup(page, 512)
	require.ErrorIs(t, err, ErrTornPage)
}

func TestApplyFixupRejectsShortPage(t *testing.T) {
	err := ApplyFixup(make([]byte, 4), 512)
	require.ErrorIs(t, err, ErrInvalidPageSize)
}
