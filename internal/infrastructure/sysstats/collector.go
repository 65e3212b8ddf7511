// Package sysstats samples host and process figures for the health endpoint.
package sysstats

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

type HostStats struct {
	Hostname string  `json:"hostname"`
	OS       string  `json:"os"`
	Platform string  `json:"platform"`
	Uptime   uint64  `json:"uptime_seconds"`
	CPUUsage float64 `json:"cpu_usage"`
	RAMUsage float64 `json:"ram_usage"`
	RAMTotal uint64  `json:"ram_total"`
	RAMUsed  uint64  `json:"ram_used"`
}

type ProcessStats struct {
	PID        int32  `json:"pid"`
	RSS        uint64 `json:"rss_bytes"`
	Goroutines int    `json:"goroutines"`
	Uptime     int64  `json:"uptime_seconds"`
}

type Snapshot struct {
	Host        HostStats    `json:"host"`
	Process     ProcessStats `json:"process"`
	CollectedAt time.Time    `json:"collected_at"`
}

type Collector struct {
	startedAt time.Time
	pid       int32
}

func NewCollector() *Collector {
	return &Collector{startedAt: time.Now(), pid: int32(os.Getpid())}
}

// Collect gathers what it can. Sources that fail leave their fields zero;
// a health check should not fail because one probe is unsupported.
func (c *Collector) Collect(ctx context.Context) *Snapshot {
	snap := &Snapshot{CollectedAt: time.Now()}

	// Interval 0 compares against the previous call.
	if cpuPercent, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(cpuPercent) > 0 {
		snap.Host.CPUUsage = cpuPercent[0]
	}

	if memInfo, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		snap.Host.RAMUsage = memInfo.UsedPercent
		snap.Host.RAMTotal = memInfo.Total
		snap.Host.RAMUsed = memInfo.Used
	}

	if hostInfo, err := host.InfoWithContext(ctx); err == nil {
		snap.Host.Uptime = hostInfo.Uptime
		snap.Host.Hostname = hostInfo.Hostname
		snap.Host.OS = hostInfo.OS
		snap.Host.Platform = hostInfo.Platform
	}

	snap.Process.PID = c.pid
	snap.Process.Goroutines = runtime.NumGoroutine()
	snap.Process.Uptime = int64(time.Since(c.startedAt).Seconds())
	if proc, err := process.NewProcessWithContext(ctx, c.pid); err == nil {
		if memInfo, err := proc.MemoryInfoWithContext(ctx); err == nil {
			snap.Process.RSS = memInfo.RSS
		}
	}

	return snap
}
