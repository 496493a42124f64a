// Package system reports host process and metric data through gopsutil.
package system

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/doeshing/termsim/internal/domain"
	"github.com/doeshing/termsim/internal/ports"
)

// Probe implements ports.SystemProbe against the running host.
type Probe struct{}

// NewProbe returns a host probe.
func NewProbe() *Probe {
	return &Probe{}
}

// Processes returns up to limit processes in enumeration order. Processes
// that exit while being inspected are skipped.
func (p *Probe) Processes(limit int) ([]domain.ProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	out := make([]domain.ProcessInfo, 0, limit)
	for _, proc := range procs {
		if limit > 0 && len(out) == limit {
			break
		}
		name, err := proc.Name()
		if err != nil {
			if errors.Is(err, process.ErrorProcessNotRunning) {
				continue
			}
			name = ""
		}
		status := ""
		if states, err := proc.Status(); err == nil {
			status = strings.Join(states, ",")
		}
		out = append(out, domain.ProcessInfo{PID: proc.Pid, Name: name, Status: status})
	}
	return out, nil
}

// CPU samples utilization over interval, then reads core count and the
// current frequency when the platform exposes it.
func (p *Probe) CPU(interval time.Duration) (domain.CPUStats, error) {
	percents, err := cpu.Percent(interval, false)
	if err != nil {
		return domain.CPUStats{}, err
	}
	if len(percents) == 0 {
		return domain.CPUStats{}, fmt.Errorf("no cpu samples")
	}
	cores, err := cpu.Counts(true)
	if err != nil {
		return domain.CPUStats{}, err
	}

	stats := domain.CPUStats{UsagePercent: percents[0], LogicalCores: cores}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		stats.FrequencyMHz = infos[0].Mhz
	}
	return stats, nil
}

// Memory returns virtual memory totals.
func (p *Probe) Memory() (domain.MemoryStats, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return domain.MemoryStats{}, err
	}
	return domain.MemoryStats{
		Total:        vm.Total,
		Available:    vm.Available,
		Used:         vm.Used,
		UsagePercent: vm.UsedPercent,
	}, nil
}

// Platform describes the OS and processor.
func (p *Probe) Platform() (domain.PlatformInfo, error) {
	info, err := host.Info()
	if err != nil {
		return domain.PlatformInfo{}, err
	}
	return domain.PlatformInfo{
		Platform:  platformString(info),
		Processor: processorName(info),
	}, nil
}

func platformString(info *host.InfoStat) string {
	parts := []string{info.OS}
	if info.Platform != "" && info.Platform != info.OS {
		parts = append(parts, info.Platform)
	}
	for _, part := range []string{info.PlatformVersion, info.KernelVersion, info.KernelArch} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "-")
}

func processorName(info *host.InfoStat) string {
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 && infos[0].ModelName != "" {
		return infos[0].ModelName
	}
	if info.KernelArch != "" {
		return info.KernelArch
	}
	return runtime.GOARCH
}

var _ ports.SystemProbe = (*Probe)(nil)
