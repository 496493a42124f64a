package interpreter

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/doeshing/termsim/internal/domain"
)

func (in *Interpreter) ps([]string) (domain.Result, error) {
	procs, err := in.probe.Processes(in.processLimit)
	if err != nil {
		return probeFailure("processes", err), nil
	}
	if len(procs) > in.processLimit {
		procs = procs[:in.processLimit]
	}

	lines := make([]string, 0, len(procs))
	for _, p := range procs {
		lines = append(lines, fmt.Sprintf("%6d %-20s %s", p.PID, p.Name, p.Status))
	}
	return domain.OK(strings.Join(lines, "\n")), nil
}

func (in *Interpreter) cpu([]string) (domain.Result, error) {
	stats, err := in.probe.CPU(in.cpuInterval)
	if err != nil {
		return probeFailure("CPU info", err), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CPU Usage: %.1f%%\n", stats.UsagePercent)
	fmt.Fprintf(&b, "CPU Cores: %d\n", stats.LogicalCores)
	if stats.FrequencyMHz > 0 {
		fmt.Fprintf(&b, "CPU Frequency: %.2f MHz", stats.FrequencyMHz)
	}
	return domain.OK(b.String()), nil
}

func (in *Interpreter) mem([]string) (domain.Result, error) {
	stats, err := in.probe.Memory()
	if err != nil {
		return probeFailure("memory info", err), nil
	}

	lines := []string{
		fmt.Sprintf("Total Memory: %.2f GB", gib(stats.Total)),
		fmt.Sprintf("Available Memory: %.2f GB", gib(stats.Available)),
		fmt.Sprintf("Used Memory: %.2f GB", gib(stats.Used)),
		fmt.Sprintf("Memory Usage: %.1f%%", stats.UsagePercent),
	}
	return domain.OK(strings.Join(lines, "\n")), nil
}

func gib(bytes uint64) float64 {
	return float64(bytes) / domain.BytesPerGiB
}

func (in *Interpreter) sysinfo([]string) (domain.Result, error) {
	info, err := in.probe.Platform()
	if err != nil {
		return probeFailure("system info", err), nil
	}

	lines := []string{
		"=== System Information ===",
		"Platform: " + info.Platform,
		"Processor: " + info.Processor,
		"Go Version: " + runtime.Version(),
		"Current Directory: " + in.workingDirectory,
	}
	return domain.OK(strings.Join(lines, "\n")), nil
}

// unavailableProbe stands in until a real probe is wired.
type unavailableProbe struct{}

func (unavailableProbe) Processes(int) ([]domain.ProcessInfo, error) {
	return nil, errProbeUnavailable
}

func (unavailableProbe) CPU(time.Duration) (domain.CPUStats, error) {
	return domain.CPUStats{}, errProbeUnavailable
}

func (unavailableProbe) Memory() (domain.MemoryStats, error) {
	return domain.MemoryStats{}, errProbeUnavailable
}

func (unavailableProbe) Platform() (domain.PlatformInfo, error) {
	return domain.PlatformInfo{}, errProbeUnavailable
}
