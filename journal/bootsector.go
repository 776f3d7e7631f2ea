package journal

import "encoding/binary"

// BootSector holds the fields of the NTFS boot sector needed to locate the
// MFT and interpret cluster-relative offsets. Fields the parser never
// consults (OEM ID, volume serial, boot code) are not modeled.
type BootSector struct {
	BytesPerSector       uint16
	SectorsPerCluster    uint8
	MFTLCN               int64
	MFTMirrorLCN         int64
	ClustersPerMFTRecord int8
}

// DecodeBootSector reads the fixed fields of an NTFS boot sector from its
// first 0x48 bytes. data must be at least that long.
func DecodeBootSector(data []byte) BootSector {
	return BootSector{
		BytesPerSector:       binary.LittleEndian.Uint16(data[0x0B:0x0D]),
		SectorsPerCluster:    data[0x0D],
		MFTLCN:               int64(binary.LittleEndian.Uint64(data[0x30:0x38])),
		MFTMirrorLCN:         int64(binary.LittleEndian.Uint64(data[0x38:0x40])),
		ClustersPerMFTRecord: int8(data[0x40]),
	}
}

// ClusterSize returns the volume's cluster size in bytes.
func (b BootSector) ClusterSize() int64 {
	return int64(b.BytesPerSector) * int64(b.SectorsPerCluster)
}

// FileRecordSize returns the size in bytes of one MFT file record. A
// negative ClustersPerMFTRecord encodes log2 of the record size directly,
// per the NTFS convention for sizes smaller than one cluster.
func (b BootSector) FileRecordSize() int64 {
	if b.ClustersPerMFTRecord < 0 {
		return int64(1) << uint(-b.ClustersPerMFTRecord)
	}
	return int64(b.ClustersPerMFTRecord) * b.ClusterSize()
}

// MFTOffset returns the byte offset of the MFT's first file record.
func (b BootSector) MFTOffset() int64 {
	return b.MFTLCN * b.ClusterSize()
}
