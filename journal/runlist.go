package journal

// Extent is one run of an NTFS mapping-pairs runlist: Length clusters
// starting at logical cluster LCN, holding the data for VCNs
// [VCN, VCN+Length). LCN is nil for a sparse run.
type Extent struct {
	VCN    int64
	LCN    *int64
	Length int64
}

// DecodeRunlist decodes an NTFS mapping-pairs array into a sequence of
// extents. startVCN is the attribute's LowestVCN (usually 0); offset is
// the byte offset of the mapping pairs within data (the attribute
// record's MappingPairsOffset). Decoding stops at the first zero size
// byte, which terminates every runlist.
func DecodeRunlist(data []byte, startVCN int64, offset int) []Extent {
	var extents []Extent
	vcn := startVCN
	var lcn int64
	pos := offset

	for pos < len(data) && data[pos] != 0 {
		sizeByte := data[pos]
		pos++

		lengthWidth := int(sizeByte & 0x0F)
		lcnWidth := int((sizeByte & 0xF0) >> 4)

		if pos+lengthWidth > len(data) {
			break
		}
		length := readUnsignedLE(data[pos : pos+lengthWidth])
		pos += lengthWidth

		var lcnPtr *int64
		if lcnWidth > 0 {
			if pos+lcnWidth > len(data) {
				break
			}
			delta := readSignedLE(data[pos : pos+lcnWidth])
			lcn += delta
			v := lcn
			lcnPtr = &v
			pos += lcnWidth
		}

		extents = append(extents, Extent{VCN: vcn, LCN: lcnPtr, Length: length})
		vcn += length
	}
	return extents
}

// readUnsignedLE interprets b as an unsigned little-endian integer of
// b's width (up to 8 bytes).
func readUnsignedLE(b []byte) int64 {
	var v uint64
	for i, by := range b {
		v |= uint64(by) << uint(8*i)
	}
	return int64(v)
}

// readSignedLE interprets b as a two's-complement little-endian integer
// of b's width, sign-extending from the top bit of the last byte. This is
// the "signed nibble-width" decode NTFS runlists use for LCN deltas.
func readSignedLE(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}
	var v uint64
	for i, by := range b {
		v |= uint64(by) << uint(8*i)
	}
	signBit := uint64(1) << uint(8*len(b)-1)
	if v&signBit != 0 {
		v -= uint64(1) << uint(8*len(b))
	}
	return int64(v)
}
