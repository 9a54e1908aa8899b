package system

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStats is a snapshot of this process's resource usage.
type ProcessStats struct {
	RSS        uint64
	CPUPercent float64
	Threads    int32
	Elapsed    time.Duration
}

// CollectStats samples the current process. started is when the measured work began.
func CollectStats(started time.Time) (ProcessStats, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ProcessStats{}, fmt.Errorf("open process: %w", err)
	}
	stats := ProcessStats{Elapsed: time.Since(started)}
	if mem, err := p.MemoryInfo(); err == nil {
		stats.RSS = mem.RSS
	}
	if cpu, err := p.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	}
	if n, err := p.NumThreads(); err == nil {
		stats.Threads = n
	}
	return stats, nil
}

// Report renders the stats block printed by the CLI.
func (s ProcessStats) Report(build string) string {
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"RSS: %.1f MiB\n"+
			"CPU: %.1f%%\n"+
			"Threads: %d\n"+
			"----------------------------\n",
		build, s.Elapsed.Seconds(), float64(s.RSS)/(1<<20), s.CPUPercent, s.Threads,
	)
}
