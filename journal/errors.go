package journal

import "errors"

var (
	// ErrInvalidPageSize is returned by ApplyFixup when the sector size is
	// not positive, the page is shorter than its multi-sector header, or
	// the update sequence array or the sectors it covers run past the end
	// of the page.
	ErrInvalidPageSize = errors.New("journal: invalid page size")

	// ErrTornPage is returned by ApplyFixup when a sector's replaced tail
	// bytes do not match the update-sequence token recorded for the page,
	// meaning the page was only partially written before the journal was
	// captured.
	ErrTornPage = errors.New("journal: torn page detected")

	// ErrNoValidRestart is returned when neither the primary nor the
	// backup restart page carries a usable restart area.
	ErrNoValidRestart = errors.New("journal: no valid restart block found")

	// ErrUnknownClient is returned by FindClient when no logging client in
	// the restart block's client array has the requested name.
	ErrUnknownClient = errors.New("journal: unknown logging client")

	// ErrLsnMismatch is a fatal, non-recoverable error raised by the
	// record iterator when a log record's embedded ThisLsn does not match
	// the LSN the iterator computed for its position. It signals journal
	// corruption rather than a clean end of sequence.
	ErrLsnMismatch = errors.New("journal: lsn mismatch")

	// ErrEndOfJournal is the sentinel "error" returned by RecordIterator.Next
	// to signal the clean, expected end of the record sequence. Callers
	// should compare with errors.Is, mirroring io.EOF.
	ErrEndOfJournal = errors.New("journal: end of journal")

	// ErrNoDataAttribute is returned when $LogFile's non-resident $DATA
	// attribute cannot be located in its MFT file record.
	ErrNoDataAttribute = errors.New("journal: $DATA attribute not found")

	// ErrSourceNotWritable is returned when the tail flusher needs to
	// write back patched pages but the supplied ByteSource does not
	// implement io.WriterAt and no overlay was requested.
	ErrSourceNotWritable = errors.New("journal: source does not support writes")
)
