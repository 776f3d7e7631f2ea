package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/neilotoole/jsoncolor"
	"github.com/ntfsforensics/logparse/journal"
	"github.com/spf13/cobra"
)

var restartJSON bool

var restartCmd = &cobra.Command{
	Use:   "restart <path>",
	Short: "Print the $LogFile restart summary (both blocks, all clients)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestartCmd,
}

func init() {
	restartCmd.Flags().BoolVar(&restartJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(restartCmd)
}

type restartClientSummary struct {
	Name             string `json:"name"`
	ClientRestartLSN string `json:"client_restart_lsn"`
	SeqNumber        uint16 `json:"seq_number"`
}

type restartBlockSummary struct {
	PageOffset     int64                  `json:"page_offset"`
	MajorVersion   uint16                 `json:"major_version"`
	MinorVersion   uint16                 `json:"minor_version"`
	SystemPageSize uint32                 `json:"system_page_size"`
	LogPageSize    uint32                 `json:"log_page_size"`
	CurrentLSN     string                 `json:"current_lsn"`
	Clients        []restartClientSummary `json:"clients"`
}

type restartSummary struct {
	Path    string                `json:"path"`
	Valid   restartBlockSummary   `json:"valid"`
	Backup  *restartBlockSummary  `json:"backup,omitempty"`
}

func summarizeBlock(b journal.RestartBlock) restartBlockSummary {
	s := restartBlockSummary{
		PageOffset:     b.PageOffset,
		MajorVersion:   b.Header.MajorVersion,
		MinorVersion:   b.Header.MinorVersion,
		SystemPageSize: b.Header.SystemPageSize,
		LogPageSize:    b.Header.LogPageSize,
		CurrentLSN:     fmt.Sprintf("0x%x", b.Area.CurrentLSN),
	}
	for _, c := range b.Clients {
		s.Clients = append(s.Clients, restartClientSummary{
			Name:             c.Name,
			ClientRestartLSN: fmt.Sprintf("0x%x", c.ClientRestartLSN),
			SeqNumber:        c.SeqNumber,
		})
	}
	return s
}

func runRestartCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := mustExist(path); err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	blocks, err := journal.ReadRestartBlocks(raw)
	if err != nil {
		return err
	}
	valid, err := journal.SelectRestartBlock(blocks)
	if err != nil {
		return err
	}

	summary := restartSummary{Path: path, Valid: summarizeBlock(valid)}
	for _, b := range blocks {
		if b.PageOffset != valid.PageOffset {
			backup := summarizeBlock(b)
			summary.Backup = &backup
		}
	}

	if restartJSON {
		return printRestartJSON(summary)
	}
	printRestartHuman(summary)
	return nil
}

func printRestartHuman(s restartSummary) {
	bold := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgWhite)
	value := color.New(color.FgGreen)

	printBlock := func(title string, b restartBlockSummary) {
		_, _ = bold.Printf("%s (page offset 0x%x)\n", title, b.PageOffset)
		_, _ = label.Print("  version:     ")
		_, _ = value.Printf("%d.%d\n", b.MajorVersion, b.MinorVersion)
		_, _ = label.Print("  page sizes:  ")
		_, _ = value.Printf("system=%d log=%d\n", b.SystemPageSize, b.LogPageSize)
		_, _ = label.Print("  current_lsn: ")
		_, _ = value.Println(b.CurrentLSN)
		for _, c := range b.Clients {
			_, _ = label.Printf("  client %q: restart_lsn=%s seq=%d\n", c.Name, c.ClientRestartLSN, c.SeqNumber)
		}
	}

	printBlock("valid block", s.Valid)
	if s.Backup != nil {
		printBlock("backup block", *s.Backup)
	}
}

func printRestartJSON(s restartSummary) error {
	var out = colorable.NewColorableStdout()
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return json.NewEncoder(os.Stdout).Encode(s)
	}
	enc := jsoncolor.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
