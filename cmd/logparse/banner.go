package main

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

var (
	pastelColor = color.RGB(95, 175, 255)
	grayColor   = color.RGB(138, 138, 138)
	lightGreen  = color.RGB(197, 255, 167)
)

func printBanner() {
	_, _ = pastelColor.Printf("logparse %s - NTFS $LogFile journal server\n", version)
}

func printSystemInfo(logger *slog.Logger) {
	arch, err := host.Info()
	if err != nil {
		logger.Warn("could not read host info", "error", err)
		return
	}
	cores, _ := cpu.Counts(false)
	threads, _ := cpu.Counts(true)
	vmem, _ := mem.VirtualMemory()
	cwd, _ := os.Getwd()
	usage, _ := disk.Usage(cwd)

	_, _ = grayColor.Println()
	_, _ = grayColor.Printf("Arch: %s | Cores: %d | Threads: %d\n", pastelColor.Sprint(arch.KernelArch), cores, threads)
	_, _ = grayColor.Printf("Mem:  %s total / %s free\n",
		pastelColor.Sprintf("%.1fGB", float64(vmem.Total)/1e9),
		lightGreen.Sprintf("%.1fGB", float64(vmem.Free)/1e9))
	_, _ = grayColor.Printf("Disk: %s total / %s free @ %s\n\n",
		pastelColor.Sprintf("%.1fGB", float64(usage.Total)/1e9),
		lightGreen.Sprintf("%.1fGB", float64(usage.Free)/1e9), pastelColor.Sprint(cwd))
}
