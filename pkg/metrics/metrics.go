// Package metrics defines the canonical data model shared by the process
// supervisor, the log readers and the aggregator. Every optional numeric
// field is a pointer: nil means the source tool did not provide the value,
// which must never be conflated with a measured zero.
package metrics

// Sample is one timestamped snapshot of host-wide resource counters taken
// while a supervised command runs. Samples are appended in strictly
// increasing TSec order; the cumulative byte counters are monotonic
// non-decreasing within one run.
type Sample struct {
	TSec           float64
	CPUPercent     float64
	MemUsedMB      float64
	MemPercent     float64
	DiskReadBytes  uint64
	DiskWriteBytes uint64
	NetSentBytes   uint64
	NetRecvBytes   uint64
}

// RunSummary is the terminal record of one supervised run. It is created
// exactly once, at child process exit, and never mutated afterwards.
type RunSummary struct {
	System              string   `json:"system"`
	Dataset             string   `json:"dataset"`
	StartEpoch          float64  `json:"start_epoch"`
	EndEpoch            float64  `json:"end_epoch"`
	ElapsedSec          float64  `json:"elapsed_sec"`
	AvgCPUPercent       *float64 `json:"avg_cpu_percent"`
	PeakCPUPercent      float64  `json:"peak_cpu_percent"`
	MaxMemUsedMB        float64  `json:"max_mem_used_mb"`
	DiskReadDeltaBytes  int64    `json:"disk_read_delta_bytes"`
	DiskWriteDeltaBytes int64    `json:"disk_write_delta_bytes"`
	NetSentDeltaBytes   int64    `json:"net_sent_delta_bytes"`
	NetRecvDeltaBytes   int64    `json:"net_recv_delta_bytes"`
	Samples             int      `json:"samples"`
	Cmd                 []string `json:"cmd"`
}

// ToolMetrics holds the values extracted from a resource-usage report
// (GNU time -v and friends). Each field is independently optional.
type ToolMetrics struct {
	ElapsedSeconds *float64
	UserCPUSeconds *float64
	SysCPUSeconds  *float64
	MaxRSSKB       *int64
}

// MonitorAverages holds up to six run-duration averages derived from a
// system-monitor log or its historical-report fallback. A nil field means
// the source column could not be located or no samples existed.
type MonitorAverages struct {
	AvgCPUUtil     *float64
	AvgMemUsedMB   *float64
	AvgDskReadKBps *float64
	AvgDskWritKBps *float64
	AvgNetRecvKBps *float64
	AvgNetSendKBps *float64
}

// Empty reports whether none of the six averages carries a value. The
// aggregator uses it to decide whether the historical-report fallback
// should be consulted.
func (m MonitorAverages) Empty() bool {
	return m.AvgCPUUtil == nil &&
		m.AvgMemUsedMB == nil &&
		m.AvgDskReadKBps == nil &&
		m.AvgDskWritKBps == nil &&
		m.AvgNetRecvKBps == nil &&
		m.AvgNetSendKBps == nil
}

// Key uniquely identifies one benchmarked run in the aggregated table.
// Phase cardinality differs by framework; the aggregator never forces
// symmetry between engines.
type Key struct {
	Framework string
	Dataset   string
	Phase     string
}

// Less imposes the lexicographic (framework, dataset, phase) order used
// for table output.
func (k Key) Less(other Key) bool {
	if k.Framework != other.Framework {
		return k.Framework < other.Framework
	}
	if k.Dataset != other.Dataset {
		return k.Dataset < other.Dataset
	}
	return k.Phase < other.Phase
}

// Record is the canonical join of one triple with its tool-report values
// and monitor averages.
type Record struct {
	Key
	Tool     ToolMetrics
	Averages MonitorAverages
}

// Float is a helper returning a pointer to v. It keeps record literals in
// tests and callers readable.
func Float(v float64) *float64 {
	return &v
}

// Int is a pointer helper for optional integer fields.
func Int(v int64) *int64 {
	return &v
}
