package supervisor

import (
	"os"
	"path/filepath"
	"time"

	"github.com/lahirumanulanka/bigdata-graph-project/pkg/executor"
	"github.com/lahirumanulanka/bigdata-graph-project/pkg/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultInterval is the sampling period used when none is configured.
	DefaultInterval = 1 * time.Second
	// MinInterval is the floor applied to any configured sampling period.
	MinInterval = 200 * time.Millisecond

	timeSeriesFileName = "timeseries.csv"
	summaryFileName    = "summary.json"
)

// Config holds identification and placement for a supervised run.
type Config struct {
	// System names the engine under measurement.
	System string
	// Dataset names the input the engine runs against.
	Dataset string
	// OutRoot is the directory under which per-run artifacts are placed,
	// as <OutRoot>/<System>/<Dataset>/.
	OutRoot string
	// Interval is the sampling period. Zero selects DefaultInterval;
	// values below MinInterval are raised to MinInterval.
	Interval time.Duration
}

// Supervisor launches a command, samples host counters while it runs and
// writes a time series plus a run summary when it exits.
type Supervisor struct {
	config   Config
	executor executor.Executor
	probe    Probe
}

// New returns a Supervisor running commands locally and sampling the
// local host.
func New(config Config) Supervisor {
	return NewWithBackends(config, executor.NewLocal(), NewHostProbe())
}

// NewWithBackends returns a Supervisor with explicit launch and probe
// backends.
func NewWithBackends(config Config, exec executor.Executor, probe Probe) Supervisor {
	if config.Interval == 0 {
		config.Interval = DefaultInterval
	}
	if config.Interval < MinInterval {
		config.Interval = MinInterval
	}
	return Supervisor{
		config:   config,
		executor: exec,
		probe:    probe,
	}
}

// OutDir returns the directory this Supervisor writes artifacts into.
func (s Supervisor) OutDir() string {
	return filepath.Join(s.config.OutRoot, s.config.System, s.config.Dataset)
}

// Run launches command, samples counters once per interval until the
// command exits, takes a final sample after exit and writes
// timeseries.csv and summary.json into OutDir. A launch failure returns
// an error and leaves no artifact behind.
func (s Supervisor) Run(command string) (metrics.RunSummary, error) {
	outDir := s.OutDir()
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return metrics.RunSummary{}, errors.Wrapf(err, "could not create output directory %q", outDir)
	}

	// Prime the CPU measurement and take counter baselines before the
	// child starts so that deltas cover the whole run.
	s.probe.CPUPercent()
	baseRead, baseWrite := s.probe.DiskCounters()
	baseSent, baseRecv := s.probe.NetCounters()

	start := time.Now()
	handle, err := s.executor.Execute(command)
	if err != nil {
		return metrics.RunSummary{}, errors.Wrapf(err, "could not launch %q", command)
	}

	writer, err := newTimeSeriesWriter(filepath.Join(outDir, timeSeriesFileName))
	if err != nil {
		handle.Stop()
		handle.Clean()
		handle.EraseOutput()
		return metrics.RunSummary{}, err
	}

	summary := metrics.RunSummary{
		System:     s.config.System,
		Dataset:    s.config.Dataset,
		StartEpoch: float64(start.UnixNano()) / 1e9,
		Cmd:        []string{"sh", "-c", command},
	}

	for {
		state := handle.Status()
		sample := s.takeSample(start)
		if err := writer.Append(sample); err != nil {
			writer.Close()
			handle.Stop()
			handle.Clean()
			handle.EraseOutput()
			return metrics.RunSummary{}, err
		}
		summary.Samples++
		if sample.CPUPercent > summary.PeakCPUPercent {
			summary.PeakCPUPercent = sample.CPUPercent
		}
		if sample.MemUsedMB > summary.MaxMemUsedMB {
			summary.MaxMemUsedMB = sample.MemUsedMB
		}
		if state == executor.TERMINATED {
			break
		}
		time.Sleep(s.config.Interval)
	}
	if err := writer.Close(); err != nil {
		handle.Clean()
		handle.EraseOutput()
		return metrics.RunSummary{}, err
	}

	end := time.Now()
	endRead, endWrite := s.probe.DiskCounters()
	endSent, endRecv := s.probe.NetCounters()

	summary.EndEpoch = float64(end.UnixNano()) / 1e9
	summary.ElapsedSec = time.Since(start).Seconds()
	summary.DiskReadDeltaBytes = int64(endRead) - int64(baseRead)
	summary.DiskWriteDeltaBytes = int64(endWrite) - int64(baseWrite)
	summary.NetSentDeltaBytes = int64(endSent) - int64(baseSent)
	summary.NetRecvDeltaBytes = int64(endRecv) - int64(baseRecv)

	if exitCode, err := handle.ExitCode(); err == nil {
		log.Debugf("command %q exited with code %d", command, exitCode)
	}
	handle.Clean()
	handle.EraseOutput()

	if err := writeSummary(filepath.Join(outDir, summaryFileName), summary); err != nil {
		return metrics.RunSummary{}, err
	}
	return summary, nil
}

func (s Supervisor) takeSample(start time.Time) metrics.Sample {
	cpuPercent := s.probe.CPUPercent()
	usedMB, memPercent := s.probe.MemoryUsage()
	readBytes, writeBytes := s.probe.DiskCounters()
	sentBytes, recvBytes := s.probe.NetCounters()
	return metrics.Sample{
		TSec:           time.Since(start).Seconds(),
		CPUPercent:     cpuPercent,
		MemUsedMB:      usedMB,
		MemPercent:     memPercent,
		DiskReadBytes:  readBytes,
		DiskWriteBytes: writeBytes,
		NetSentBytes:   sentBytes,
		NetRecvBytes:   recvBytes,
	}
}
