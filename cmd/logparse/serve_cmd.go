package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveCfgFile string

var serveCmd = &cobra.Command{
	Use:   "serve <path>",
	Short: "Serve a read-only HTTP snapshot of an already-extracted $LogFile",
	Args:  cobra.ExactArgs(1),
	RunE:  runServeCmd,
}

func init() {
	serveCmd.Flags().StringVar(&serveCfgFile, "config", "", "config file (TOML)")
	rootCmd.AddCommand(serveCmd)
}

func runServeCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := mustExist(path); err != nil {
		return err
	}

	cfg, err := loadConfig(serveCfgFile)
	if err != nil {
		return fmt.Errorf("logparse: loading config: %w", err)
	}

	logger := createLogger(cfg.Serve.LogLevel)
	printBanner()
	printSystemInfo(logger)

	lf, closeFn, err := openLogFile(path, false)
	if err != nil {
		return fmt.Errorf("logparse: opening %s: %w", path, err)
	}
	defer closeFn()

	srv, err := newServer(cfg.Serve, logger, lf)
	if err != nil {
		return fmt.Errorf("logparse: building snapshot: %w", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("failed to start HTTP server", "error", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down...")

	if err := srv.Stop(); err != nil {
		logger.Error("failed to stop HTTP server", "error", err)
	}
	logger.Info("shutdown complete")
	return nil
}
