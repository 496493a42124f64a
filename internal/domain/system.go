package domain

// ProcessInfo is one row in the process listing.
type ProcessInfo struct {
	PID    int32
	Name   string
	Status string
}

// CPUStats holds a sampled CPU reading.
type CPUStats struct {
	UsagePercent float64
	LogicalCores int
	// FrequencyMHz is zero when the host does not report a clock speed.
	FrequencyMHz float64
}

// MemoryStats holds virtual memory figures in bytes.
type MemoryStats struct {
	Total        uint64
	Available    uint64
	Used         uint64
	UsagePercent float64
}

// PlatformInfo identifies the host.
type PlatformInfo struct {
	Platform  string
	Processor string
}
