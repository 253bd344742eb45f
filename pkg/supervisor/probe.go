package supervisor

import (
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	log "github.com/sirupsen/logrus"
)

// Probe reads host-wide resource counters. Implementations must be
// non-blocking; a counter source that is unavailable on the platform
// reports a zero-default so that sampling can continue.
type Probe interface {
	// CPUPercent returns host CPU utilization percent accumulated since
	// the previous call. The first call primes the measurement.
	CPUPercent() float64
	// MemoryUsage returns used memory (total minus available) in MB and
	// the used percentage.
	MemoryUsage() (usedMB float64, percent float64)
	// DiskCounters returns cumulative read and write bytes across all
	// block devices.
	DiskCounters() (readBytes uint64, writeBytes uint64)
	// NetCounters returns cumulative sent and received bytes across all
	// network interfaces.
	NetCounters() (sentBytes uint64, recvBytes uint64)
}

// hostProbe implements Probe on top of gopsutil.
type hostProbe struct {
}

// NewHostProbe returns a Probe reading the local host's counters.
func NewHostProbe() Probe {
	return &hostProbe{}
}

func (p *hostProbe) CPUPercent() float64 {
	percents, err := cpu.Percent(0, false)
	if err != nil || len(percents) == 0 {
		log.Debug("cpu counters unavailable: ", err)
		return 0.0
	}
	return percents[0]
}

func (p *hostProbe) MemoryUsage() (float64, float64) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Debug("memory counters unavailable: ", err)
		return 0.0, 0.0
	}
	usedMB := float64(vm.Total-vm.Available) / (1024.0 * 1024.0)
	return usedMB, vm.UsedPercent
}

func (p *hostProbe) DiskCounters() (uint64, uint64) {
	counters, err := disk.IOCounters()
	if err != nil {
		log.Debug("disk counters unavailable: ", err)
		return 0, 0
	}
	var readBytes, writeBytes uint64
	for _, device := range counters {
		readBytes += device.ReadBytes
		writeBytes += device.WriteBytes
	}
	return readBytes, writeBytes
}

func (p *hostProbe) NetCounters() (uint64, uint64) {
	counters, err := net.IOCounters(false)
	if err != nil || len(counters) == 0 {
		log.Debug("network counters unavailable: ", err)
		return 0, 0
	}
	return counters[0].BytesSent, counters[0].BytesRecv
}
