package journal

import "encoding/binary"

// maxV2TailPages bounds the dynamic tail-zone scan for journal v2.0+,
// matching the format's own "up to 32 pages" ceiling.
const maxV2TailPages = 32

// FlushResult carries the outcome of FlushTailPages: the offset of the
// first real logging-area page (the wraparound point for the record
// iterator), and, when the byte source isn't writable, the overlay of
// patched pages the record iterator must consult before falling back to
// the source itself.
type FlushResult struct {
	FirstLogPage int64
	Overlay      map[int64][]byte
}

// FlushTailPages reconciles $LogFile's buffer (tail) zone against its
// logging area: for each page parked in the tail that is newer than the
// logging-area page it belongs over, it writes the tail copy back to its
// destination, normalizing the pre-2.0 last_lsn/last_end_lsn relationship
// first. See the tailflush.go entry in DESIGN.md for how the newer-than
// comparison was chosen; this is a direct translation of the original tool's
// flush_buffer_area/get_buffer_pages pair.
//
// majorVersion is the governing restart block's format major version: < 2
// selects the fixed 2-page v1.x tail zone, >= 2 the dynamic v2.0+ scan.
func FlushTailPages(src ByteSource, cb ControlBlock, majorVersion uint16) (FlushResult, error) {
	type tailPage struct {
		offset int64
		data   []byte
		header RecordPageHeader
		isV2   bool
	}

	writable, canWriteInPlace := src.(WritableByteSource)

	var pages []tailPage
	offset := 2 * cb.SystemPageSize
	maxPages := maxV2TailPages
	if majorVersion < 2 {
		maxPages = 2
	}

	for i := 0; i < maxPages; i++ {
		if offset+cb.SystemPageSize > src.Size() {
			break
		}
		buf := make([]byte, cb.SystemPageSize)
		if _, err := src.ReadAt(buf, offset); err != nil {
			return FlushResult{}, err
		}
		if err := ApplyFixup(buf, DefaultSectorSize); err != nil {
			return FlushResult{}, err
		}
		header := DecodeRecordPageHeader(buf)

		isV2 := cb.LogPageMask()&int64(header.Copy) != 0
		if isV2 {
			destPage := cb.LSNPage(header.Copy)
			if destPage == offset {
				break
			}
		}

		pages = append(pages, tailPage{offset: offset, data: buf, header: header, isV2: isV2})
		offset += cb.SystemPageSize
	}

	result := FlushResult{
		FirstLogPage: 2*cb.SystemPageSize + int64(len(pages))*cb.LogPageSize,
	}
	if !canWriteInPlace {
		result.Overlay = make(map[int64][]byte, len(pages))
	}

	for _, tp := range pages {
		var destOffset int64
		if tp.isV2 {
			destOffset = cb.LSNPage(tp.header.Copy)
		} else {
			destOffset = int64(tp.header.Copy)
		}

		destBuf := make([]byte, len(tp.data))
		if _, err := src.ReadAt(destBuf, destOffset); err != nil {
			return FlushResult{}, err
		}
		destHeader := DecodeRecordPageHeader(destBuf)

		tailLastLSN := tp.header.LastEndLSN
		if tp.isV2 {
			tailLastLSN = tp.header.Copy
		}

		if tailLastLSN > destHeader.Copy {
			patched := make([]byte, len(tp.data))
			copy(patched, tp.data)
			if !tp.isV2 {
				binary.LittleEndian.PutUint64(patched[8:16], tp.header.LastEndLSN)
			}

			if canWriteInPlace {
				if _, err := writable.WriteAt(patched, destOffset); err != nil {
					return FlushResult{}, err
				}
			} else {
				result.Overlay[destOffset] = patched
			}

			logger.Debug("flushed tail page", "tail_offset", tp.offset, "dest_offset", destOffset)
		}
	}

	return result, nil
}
