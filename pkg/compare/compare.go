// Package compare condenses an aggregated summary table into
// per-dataset head-to-head results for two engines. One engine runs in
// multiple phases whose rows are combined per dataset; the other
// produces a single row per dataset that is taken as-is.
package compare

import (
	"sort"

	"github.com/lahirumanulanka/bigdata-graph-project/pkg/metrics"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// Config names the two engines under comparison.
type Config struct {
	// PhasedFramework runs per-phase jobs; its rows are summed and
	// phase-averaged per dataset.
	PhasedFramework string
	// DirectFramework produces one row per dataset.
	DirectFramework string
}

// DefaultConfig compares a multi-phase hadoop run against a
// single-phase spark run.
func DefaultConfig() Config {
	return Config{
		PhasedFramework: "hadoop",
		DirectFramework: "spark",
	}
}

// Totals holds all comparable fields for one engine on one dataset.
// Absent source cells count as zero here.
type Totals struct {
	ElapsedSeconds float64
	MaxRSSKB       float64
	CPUUserSeconds float64
	CPUSysSeconds  float64
	AvgCPUUtil     float64
	AvgMemUsedMB   float64
	AvgDskReadKBps float64
	AvgDskWritKBps float64
	AvgNetRecvKBps float64
	AvgNetSendKBps float64
}

// DatasetComparison pairs both engines' totals for one dataset.
type DatasetComparison struct {
	Dataset         string
	PhasedFramework string
	DirectFramework string
	Phased          Totals
	Direct          Totals
}

// ElapsedDiff returns phased minus direct elapsed seconds with two
// decimal places, so a positive diff means the direct engine finished
// first.
func (c DatasetComparison) ElapsedDiff() decimal.Decimal {
	phased := decimal.NewFromFloat(c.Phased.ElapsedSeconds)
	direct := decimal.NewFromFloat(c.Direct.ElapsedSeconds)
	return phased.Sub(direct).Round(2)
}

// ElapsedVerdict names the engine with the smaller elapsed total.
func (c DatasetComparison) ElapsedVerdict() string {
	switch c.ElapsedDiff().Sign() {
	case 1:
		return c.DirectFramework + " faster"
	case -1:
		return c.PhasedFramework + " faster"
	}
	return "Tie"
}

func floatOrZero(value *float64) float64 {
	if value == nil {
		return 0.0
	}
	return *value
}

func intOrZero(value *int64) float64 {
	if value == nil {
		return 0.0
	}
	return float64(*value)
}

// phaseAccumulator sums the per-phase fields and collects the non-zero
// average fields for a later phase mean.
type phaseAccumulator struct {
	sums    Totals
	cpuUtil []float64
	memUsed []float64
	dskRead []float64
	dskWrit []float64
	netRecv []float64
	netSend []float64
}

func appendPresent(values []float64, value float64) []float64 {
	if value == 0.0 {
		return values
	}
	return append(values, value)
}

func (a *phaseAccumulator) add(totals Totals) {
	a.sums.ElapsedSeconds += totals.ElapsedSeconds
	a.sums.MaxRSSKB += totals.MaxRSSKB
	a.sums.CPUUserSeconds += totals.CPUUserSeconds
	a.sums.CPUSysSeconds += totals.CPUSysSeconds
	a.cpuUtil = appendPresent(a.cpuUtil, totals.AvgCPUUtil)
	a.memUsed = appendPresent(a.memUsed, totals.AvgMemUsedMB)
	a.dskRead = appendPresent(a.dskRead, totals.AvgDskReadKBps)
	a.dskWrit = appendPresent(a.dskWrit, totals.AvgDskWritKBps)
	a.netRecv = appendPresent(a.netRecv, totals.AvgNetRecvKBps)
	a.netSend = appendPresent(a.netSend, totals.AvgNetSendKBps)
}

func meanOrZero(values []float64) float64 {
	mean, err := stats.Mean(values)
	if err != nil {
		return 0.0
	}
	return mean
}

func (a *phaseAccumulator) finalize() Totals {
	totals := a.sums
	totals.AvgCPUUtil = meanOrZero(a.cpuUtil)
	totals.AvgMemUsedMB = meanOrZero(a.memUsed)
	totals.AvgDskReadKBps = meanOrZero(a.dskRead)
	totals.AvgDskWritKBps = meanOrZero(a.dskWrit)
	totals.AvgNetRecvKBps = meanOrZero(a.netRecv)
	totals.AvgNetSendKBps = meanOrZero(a.netSend)
	return totals
}

func recordTotals(record metrics.Record) Totals {
	return Totals{
		ElapsedSeconds: floatOrZero(record.Tool.ElapsedSeconds),
		MaxRSSKB:       intOrZero(record.Tool.MaxRSSKB),
		CPUUserSeconds: floatOrZero(record.Tool.UserCPUSeconds),
		CPUSysSeconds:  floatOrZero(record.Tool.SysCPUSeconds),
		AvgCPUUtil:     floatOrZero(record.Averages.AvgCPUUtil),
		AvgMemUsedMB:   floatOrZero(record.Averages.AvgMemUsedMB),
		AvgDskReadKBps: floatOrZero(record.Averages.AvgDskReadKBps),
		AvgDskWritKBps: floatOrZero(record.Averages.AvgDskWritKBps),
		AvgNetRecvKBps: floatOrZero(record.Averages.AvgNetRecvKBps),
		AvgNetSendKBps: floatOrZero(record.Averages.AvgNetSendKBps),
	}
}

// Build pairs both engines per dataset. Datasets covered by only one
// engine are skipped; phased rows combine across phases, direct rows
// take the last row per dataset.
func Build(records []metrics.Record, config Config) []DatasetComparison {
	phased := map[string]*phaseAccumulator{}
	direct := map[string]Totals{}

	for _, record := range records {
		switch record.Framework {
		case config.PhasedFramework:
			accumulator, ok := phased[record.Dataset]
			if !ok {
				accumulator = &phaseAccumulator{}
				phased[record.Dataset] = accumulator
			}
			accumulator.add(recordTotals(record))
		case config.DirectFramework:
			direct[record.Dataset] = recordTotals(record)
		}
	}

	datasets := []string{}
	for dataset := range phased {
		if _, ok := direct[dataset]; ok {
			datasets = append(datasets, dataset)
		}
	}
	sort.Strings(datasets)

	comparisons := make([]DatasetComparison, 0, len(datasets))
	for _, dataset := range datasets {
		comparisons = append(comparisons, DatasetComparison{
			Dataset:         dataset,
			PhasedFramework: config.PhasedFramework,
			DirectFramework: config.DirectFramework,
			Phased:          phased[dataset].finalize(),
			Direct:          direct[dataset],
		})
	}
	return comparisons
}
