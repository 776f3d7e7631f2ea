package journal

import "fmt"

// ClientRestartContext is one logging client's fully decoded restart
// context: its restart area and the four restart tables it references.
type ClientRestartContext struct {
	Client     ClientRecord
	Area       RestartArea
	OpenAttrs  []OpenAttributeEntry
	AttrNames  []AttributeNameEntry
	DirtyPages []DirtyPageEntry
	Transactions []TransactionEntry
}

// readRecordAt fetches the single log record whose LSN is exactly lsn, by
// constructing a one-shot RecordIterator over it. Restart-type records
// (a client's restart area and its four tables) are each addressed this
// way rather than through the general sequence iterator.
func readRecordAt(lf *LogFile, lsn uint64) ([]byte, error) {
	it := lf.Records(lsn)
	record, data, err := it.Next()
	if err != nil {
		return nil, fmt.Errorf("journal: reading record at lsn 0x%x: %w", lsn, err)
	}
	if record.ThisLSN != lsn {
		return nil, fmt.Errorf("%w: expected lsn 0x%x, got 0x%x", ErrLsnMismatch, lsn, record.ThisLSN)
	}
	return data, nil
}

// ReadClientRestartContext resolves a single logging client's full
// restart context: its restart area (at client.ClientRestartLSN) and the
// four restart tables the area points at.
func ReadClientRestartContext(lf *LogFile, client ClientRecord) (ClientRestartContext, error) {
	areaData, err := readRecordAt(lf, client.ClientRestartLSN)
	if err != nil {
		return ClientRestartContext{}, err
	}
	if len(areaData) < RestartAreaSize {
		return ClientRestartContext{}, fmt.Errorf("journal: short restart area for client %q", client.Name)
	}
	area := DecodeRestartArea(areaData)

	ctx := ClientRestartContext{Client: client, Area: area}

	if area.OpenAttrTableLSN != 0 {
		data, err := readRecordAt(lf, area.OpenAttrTableLSN)
		if err != nil {
			return ClientRestartContext{}, err
		}
		header, tableData := LocateRestartTable(data)
		for _, e := range header.Entries(tableData) {
			ctx.OpenAttrs = append(ctx.OpenAttrs, DecodeOpenAttributeEntry(e, header.EntrySize))
		}
	}

	if area.AttrNamesLSN != 0 {
		data, err := readRecordAt(lf, area.AttrNamesLSN)
		if err != nil {
			return ClientRestartContext{}, err
		}
		ctx.AttrNames = DecodeAttributeNameEntries(data)
	}

	if area.DirtyPagesTableLSN != 0 {
		data, err := readRecordAt(lf, area.DirtyPagesTableLSN)
		if err != nil {
			return ClientRestartContext{}, err
		}
		header, tableData := LocateRestartTable(data)
		for _, e := range header.Entries(tableData) {
			ctx.DirtyPages = append(ctx.DirtyPages, DecodeDirtyPageEntry(e, header.EntrySize))
		}
	}

	if area.TransactionTableLSN != 0 {
		data, err := readRecordAt(lf, area.TransactionTableLSN)
		if err != nil {
			return ClientRestartContext{}, err
		}
		header, tableData := LocateRestartTable(data)
		for _, e := range header.Entries(tableData) {
			ctx.Transactions = append(ctx.Transactions, DecodeTransactionEntry(e))
		}
	}

	return ctx, nil
}

// FindClient looks up a logging client by name (case-sensitive, matching
// the on-disk UTF-16LE name exactly) in a restart block's client array.
func FindClient(block RestartBlock, name string) (ClientRecord, error) {
	for _, c := range block.Clients {
		if c.Name == name {
			return c, nil
		}
	}
	return ClientRecord{}, ErrUnknownClient
}
