package journal

import "fmt"

// Opcode identifies the NTFS log record operation encoded in a client
// record's redo/undo operation fields. The numeric values and names are
// fixed by the on-disk format.
type Opcode uint16

const (
	OpNoop                              Opcode = 0x00
	OpCompensationLogRecord             Opcode = 0x01
	OpInitializeFileRecordSegment       Opcode = 0x02
	OpDeallocateFileRecordSegment       Opcode = 0x03
	OpWriteEndOfFileRecordSegment       Opcode = 0x04
	OpCreateAttribute                   Opcode = 0x05
	OpDeleteAttribute                   Opcode = 0x06
	OpUpdateResidentValue               Opcode = 0x07
	OpUpdateNonresidentValue            Opcode = 0x08
	OpUpdateMappingPairs                Opcode = 0x09
	OpDeleteDirtyClusters               Opcode = 0x0A
	OpSetNewAttributeSizes              Opcode = 0x0B
	OpAddIndexEntryRoot                 Opcode = 0x0C
	OpDeleteIndexEntryRoot              Opcode = 0x0D
	OpAddIndexEntryAllocation           Opcode = 0x0E
	OpDeleteIndexEntryAllocation        Opcode = 0x0F
	OpWriteEndOfIndexBuffer             Opcode = 0x10
	OpSetIndexEntryVcnRoot              Opcode = 0x11
	OpSetIndexEntryVcnAllocation        Opcode = 0x12
	OpUpdateFileNameRoot                Opcode = 0x13
	OpUpdateFileNameAllocation          Opcode = 0x14
	OpSetBitsInNonresidentBitMap        Opcode = 0x15
	OpClearBitsInNonresidentBitMap      Opcode = 0x16
	OpHotFix                            Opcode = 0x17
	OpEndTopLevelAction                 Opcode = 0x18
	OpPrepareTransaction                Opcode = 0x19
	OpCommitTransaction                 Opcode = 0x1A
	OpForgetTransaction                 Opcode = 0x1B
	OpOpenNonresidentAttribute          Opcode = 0x1C
	OpOpenAttributeTableDump            Opcode = 0x1D
	OpAttributeNamesDump                Opcode = 0x1E
	OpDirtyPageTableDump                Opcode = 0x1F
	OpTransactionTableDump              Opcode = 0x20
	OpUpdateRecordDataRoot              Opcode = 0x21
	OpUpdateRecordDataAllocation        Opcode = 0x22
)

var opcodeNames = map[Opcode]string{
	OpNoop:                         "Noop",
	OpCompensationLogRecord:        "CompensationLogRecord",
	OpInitializeFileRecordSegment:  "InitializeFileRecordSegment",
	OpDeallocateFileRecordSegment:  "DeallocateFileRecordSegment",
	OpWriteEndOfFileRecordSegment:  "WriteEndOfFileRecordSegment",
	OpCreateAttribute:              "CreateAttribute",
	OpDeleteAttribute:              "DeleteAttribute",
	OpUpdateResidentValue:          "UpdateResidentValue",
	OpUpdateNonresidentValue:       "UpdateNonresidentValue",
	OpUpdateMappingPairs:           "UpdateMappingPairs",
	OpDeleteDirtyClusters:          "DeleteDirtyClusters",
	OpSetNewAttributeSizes:         "SetNewAttributeSizes",
	OpAddIndexEntryRoot:            "AddIndexEntryRoot",
	OpDeleteIndexEntryRoot:         "DeleteIndexEntryRoot",
	OpAddIndexEntryAllocation:      "AddIndexEntryAllocation",
	OpDeleteIndexEntryAllocation:   "DeleteIndexEntryAllocation",
	OpWriteEndOfIndexBuffer:        "WriteEndOfIndexBuffer",
	OpSetIndexEntryVcnRoot:         "SetIndexEntryVcnRoot",
	OpSetIndexEntryVcnAllocation:   "SetIndexEntryVcnAllocation",
	OpUpdateFileNameRoot:           "UpdateFileNameRoot",
	OpUpdateFileNameAllocation:     "UpdateFileNameAllocation",
	OpSetBitsInNonresidentBitMap:   "SetBitsInNonresidentBitMap",
	OpClearBitsInNonresidentBitMap: "ClearBitsInNonresidentBitMap",
	OpHotFix:                       "HotFix",
	OpEndTopLevelAction:            "EndTopLevelAction",
	OpPrepareTransaction:           "PrepareTransaction",
	OpCommitTransaction:            "CommitTransaction",
	OpForgetTransaction:            "ForgetTransaction",
	OpOpenNonresidentAttribute:     "OpenNonresidentAttribute",
	OpOpenAttributeTableDump:       "OpenAttributeTableDump",
	OpAttributeNamesDump:           "AttributeNamesDump",
	OpDirtyPageTableDump:           "DirtyPageTableDump",
	OpTransactionTableDump:         "TransactionTableDump",
	OpUpdateRecordDataRoot:         "UpdateRecordDataRoot",
	OpUpdateRecordDataAllocation:   "UpdateRecordDataAllocation",
}

// String renders the opcode's canonical name, or a hex fallback for values
// outside the known 0x00-0x22 range.
func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%02X)", uint16(o))
}
