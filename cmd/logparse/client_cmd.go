package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/neilotoole/jsoncolor"
	"github.com/ntfsforensics/logparse/journal"
	"github.com/spf13/cobra"
)

var clientName string

var clientCmd = &cobra.Command{
	Use:   "client <path>",
	Short: "Dump one logging client's restart context (checkpoint + 4 tables) as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientCmd,
}

func init() {
	clientCmd.Flags().StringVar(&clientName, "name", "NTFS", "logging client name")
	rootCmd.AddCommand(clientCmd)
}

func runClientCmd(cmd *cobra.Command, args []string) error {
	lf, closeFn, err := openLogFile(args[0], false)
	if err != nil {
		return err
	}
	defer closeFn()

	client, err := journal.FindClient(lf.Restart, clientName)
	if err != nil {
		return fmt.Errorf("logparse: client %q: %w", clientName, err)
	}

	ctx, err := journal.ReadClientRestartContext(lf, client)
	if err != nil {
		return err
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ctx)
	}
	enc := jsoncolor.NewEncoder(colorable.NewColorableStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(ctx)
}
