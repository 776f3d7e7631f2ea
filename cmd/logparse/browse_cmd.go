package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/ntfsforensics/logparse/journal"
	"github.com/spf13/cobra"
)

var (
	browseRed        = color.New(color.FgRed)
	browseGreen      = color.New(color.FgGreen)
	browseCyanBold   = color.New(color.FgCyan, color.Bold)
	browseYellowBold = color.New(color.FgYellow, color.Bold)
)

var browseCmd = &cobra.Command{
	Use:   "browse <path>",
	Short: "Interactive REPL over the record iterator",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowseCmd,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func browseHistoryPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".logparse_history"
	}
	path := filepath.Join(configDir, "logparse", "browse_history")
	_ = os.MkdirAll(filepath.Dir(path), os.ModePerm)
	return path
}

func runBrowseCmd(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("logparse: browse must be run in a terminal")
	}

	lf, closeFn, err := openLogFile(args[0], false)
	if err != nil {
		return err
	}
	defer closeFn()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "logfile> ",
		HistoryFile: browseHistoryPath(),
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("seek"),
			readline.PcItem("next"),
			readline.PcItem("info"),
			readline.PcItem("help"),
			readline.PcItem("exit"),
		),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	var it *journal.RecordIterator
	lsn := lf.Restart.Area.CurrentLSN

	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help", "":
			_, _ = browseYellowBold.Println("Available commands:")
			fmt.Println("  seek <lsn>  - start iterating from a given LSN (hex or decimal)")
			fmt.Println("  next [n]    - print the next n records (default 1)")
			fmt.Println("  info        - print the journal's restart summary")
			fmt.Println("  exit        - leave the REPL")

		case "info":
			_, _ = browseCyanBold.Printf("system_page_size=%d log_page_size=%d current_lsn=0x%x\n",
				lf.Restart.Header.SystemPageSize, lf.Restart.Header.LogPageSize, lf.Restart.Area.CurrentLSN)

		case "seek":
			if len(fields) < 2 {
				_, _ = browseRed.Println("usage: seek <lsn>")
				continue
			}
			v, err := strconv.ParseUint(fields[1], 0, 64)
			if err != nil {
				_, _ = browseRed.Printf("invalid lsn: %v\n", err)
				continue
			}
			lsn = v
			it = lf.Records(lsn)
			_, _ = browseGreen.Printf("seeked to 0x%x\n", lsn)

		case "next":
			if it == nil {
				it = lf.Records(lsn)
			}
			n := 1
			if len(fields) > 1 {
				if parsed, err := strconv.Atoi(fields[1]); err == nil {
					n = parsed
				}
			}
			for i := 0; i < n; i++ {
				record, data, err := it.Next()
				if err != nil {
					if errors.Is(err, journal.ErrEndOfJournal) {
						_, _ = browseYellowBold.Println("end of journal")
					} else {
						_, _ = browseRed.Printf("error: %v\n", err)
					}
					break
				}
				printBrowseRecord(record, data)
			}

		case "exit", "quit":
			return nil

		default:
			_, _ = browseRed.Printf("unknown command: %s (try 'help')\n", fields[0])
		}
	}
	return nil
}

func printBrowseRecord(record journal.LogRecordHeader, data []byte) {
	opDesc := ""
	if record.RecordType == journal.RecordTypeClient && len(data) >= journal.ClientLogHeaderSize {
		hdr := journal.DecodeClientLogHeader(data)
		opDesc = fmt.Sprintf(" redo=%s undo=%s", hdr.RedoOperation, hdr.UndoOperation)
	}
	fmt.Printf("lsn=0x%x prev=0x%x undo_next=0x%x txn=%d len=%d%s\n",
		record.ThisLSN, record.ClientPreviousLSN, record.ClientUndoNextLSN,
		record.TransactionID, record.ClientDataLength, opDesc)
}
