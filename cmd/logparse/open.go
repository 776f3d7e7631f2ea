package main

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"github.com/ntfsforensics/logparse/journal"
	"github.com/ntfsforensics/logparse/volsource"
)

// openLogFile opens an already-extracted $LogFile stream (not a raw
// volume - see journal.ExtractLogFile for that entry point), selects its
// authoritative restart block, and runs the tail-page flusher. It holds
// an exclusive file lock for the duration of that mutating step, then
// releases it; the returned *journal.LogFile continues to hold its own
// read handle on the file.
//
// useBackup forces the selection of the backup restart block instead of
// the higher-current_lsn one, mirroring the reference CLI's documented
// (if surprising) default.
func openLogFile(path string, useBackup bool) (*journal.LogFile, func() error, error) {
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, nil, fmt.Errorf("logparse: locking %s: %w", path, err)
	}
	if !locked {
		return nil, nil, fmt.Errorf("logparse: %s is locked by another process", path)
	}

	src, err := volsource.OpenReaderAtSource(path, true)
	if err != nil {
		_ = lock.Unlock()
		return nil, nil, err
	}

	blocks, err := readRestartBlocksFromSource(src)
	if err != nil {
		_ = src.Close()
		_ = lock.Unlock()
		return nil, nil, err
	}

	block, err := chooseRestartBlock(blocks, useBackup)
	if err != nil {
		_ = src.Close()
		_ = lock.Unlock()
		return nil, nil, err
	}

	lf, err := journal.Open(src, block)
	_ = lock.Unlock()
	if err != nil {
		_ = src.Close()
		return nil, nil, err
	}

	closeFn := func() error {
		return src.Close()
	}
	return lf, closeFn, nil
}

func readRestartBlocksFromSource(src *volsource.ReaderAtSource) ([]journal.RestartBlock, error) {
	buf := make([]byte, src.Size())
	if _, err := src.ReadAt(buf, 0); err != nil {
		return nil, err
	}
	return journal.ReadRestartBlocks(buf)
}

// chooseRestartBlock applies spec.md's selection rule (higher current_lsn
// wins) unless useBackup asks for the non-selected block explicitly, per
// the "ambiguous source" note: the reference CLI builds its LogFile from
// the backup block.
func chooseRestartBlock(blocks []journal.RestartBlock, useBackup bool) (journal.RestartBlock, error) {
	if !useBackup || len(blocks) < 2 {
		return journal.SelectRestartBlock(blocks)
	}
	valid, err := journal.SelectRestartBlock(blocks)
	if err != nil {
		return journal.RestartBlock{}, err
	}
	for _, b := range blocks {
		if b.PageOffset != valid.PageOffset {
			return b, nil
		}
	}
	return valid, nil
}

func mustExist(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	return nil
}
