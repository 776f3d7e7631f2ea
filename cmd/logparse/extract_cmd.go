package main

import (
	"fmt"
	"os"

	"github.com/OneOfOne/xxhash"
	"github.com/ntfsforensics/logparse/journal"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <volume-path> <out-path>",
	Short: "Extract $LogFile's data stream from a raw NTFS volume image",
	Args:  cobra.ExactArgs(2),
	RunE:  runExtractCmd,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtractCmd(cmd *cobra.Command, args []string) error {
	volumePath, outPath := args[0], args[1]
	if err := mustExist(volumePath); err != nil {
		return err
	}

	vol, err := os.Open(volumePath)
	if err != nil {
		return err
	}
	defer vol.Close()

	data, err := journal.ExtractLogFile(vol)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}

	sum := xxhash.Checksum64(data)
	fmt.Printf("extracted %d bytes to %s (xxhash64=%016x)\n", len(data), outPath, sum)
	return nil
}
