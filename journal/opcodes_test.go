package journal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpcodeStringKnown(t *testing.T) {
	require.Equal(t, "CommitTransaction", OpCommitTransaction.String())
}

func TestOpcodeStringUnknown(t *testing.T) {
	require.Equal(t, "Unknown(0xFF)", Opcode(0xFF).String())
}
