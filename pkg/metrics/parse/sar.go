package parse

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/lahirumanulanka/bigdata-graph-project/pkg/metrics"
)

// The historical-report fallback parses four independent sar-style log
// variants (CPU, memory, disk, network). Each is a space-delimited
// columnar report with an optional trailing "Average:" summary row. The
// Average row is preferred; per-row averaging is the fallback. Any row
// that fails to parse is skipped, never the whole file.

const sarAveragePrefix = "Average:"

func readReportLines(path string) []string {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

// isSarDataRow filters out banners, headers and summary rows: lines
// without a percent-sign label, a "Linux" banner or an Average prefix are
// treated as data.
func isSarDataRow(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if strings.Contains(line, "%") {
		return false
	}
	if strings.HasPrefix(line, "Linux") {
		return false
	}
	if strings.HasPrefix(line, sarAveragePrefix) {
		return false
	}
	return true
}

func meanOrNil(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return nil
	}
	return metrics.Float(mean)
}

// SarCPU derives average CPU utilization (percent) from a sar CPU report.
// The Average row's idle percentage is preferred (100 - idle); otherwise
// 100 - idle is averaged across data rows.
func SarCPU(path string) *float64 {
	lines := readReportLines(path)
	if len(lines) == 0 {
		return nil
	}

	// Prefer the Average: summary row, scanning from the end.
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if !strings.HasPrefix(line, sarAveragePrefix) {
			continue
		}
		parts := strings.Fields(line)
		// Expected: Average: all %user %nice %system %iowait %steal %idle
		if len(parts) >= 8 {
			if idle, err := strconv.ParseFloat(parts[len(parts)-1], 64); err == nil {
				return metrics.Float(100.0 - idle)
			}
		}
		break
	}

	var values []float64
	for _, line := range lines {
		if !isSarDataRow(line) {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 8 {
			continue
		}
		idle, err := strconv.ParseFloat(parts[len(parts)-1], 64)
		if err != nil {
			continue
		}
		values = append(values, 100.0-idle)
	}
	return meanOrNil(values)
}

// SarMem derives average memory used (MB) from a sar memory report. The
// Average row's kbmemused column (index 3) is preferred.
func SarMem(path string) *float64 {
	lines := readReportLines(path)
	if len(lines) == 0 {
		return nil
	}

	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if !strings.HasPrefix(line, sarAveragePrefix) {
			continue
		}
		parts := strings.Fields(line)
		// Columns include kbmemfree kbmemused %memused ...
		if len(parts) >= 4 {
			if usedKB, err := strconv.ParseFloat(parts[3], 64); err == nil {
				return metrics.Float(usedKB / 1024.0)
			}
		}
		break
	}

	var values []float64
	for _, line := range lines {
		if !isSarDataRow(line) {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 4 {
			continue
		}
		usedKB, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			continue
		}
		values = append(values, usedKB/1024.0)
	}
	return meanOrNil(values)
}

// SarDisk derives average disk read/write throughput (KB/s) from a sar
// disk report. The Average row's last two columns are preferred.
func SarDisk(path string) (read *float64, write *float64) {
	lines := readReportLines(path)
	if len(lines) == 0 {
		return nil, nil
	}

	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if !strings.HasPrefix(line, sarAveragePrefix) {
			continue
		}
		parts := strings.Fields(line)
		// Expected: Average: tps rtps wtps bread/s bwrtn/s
		if len(parts) >= 6 {
			readKBps, errR := strconv.ParseFloat(parts[len(parts)-2], 64)
			writeKBps, errW := strconv.ParseFloat(parts[len(parts)-1], 64)
			if errR == nil && errW == nil {
				return metrics.Float(readKBps), metrics.Float(writeKBps)
			}
		}
		break
	}

	var readValues, writeValues []float64
	for _, line := range lines {
		if !isSarDataRow(line) {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 6 {
			continue
		}
		readKBps, errR := strconv.ParseFloat(parts[len(parts)-2], 64)
		writeKBps, errW := strconv.ParseFloat(parts[len(parts)-1], 64)
		if errR != nil || errW != nil {
			continue
		}
		readValues = append(readValues, readKBps)
		writeValues = append(writeValues, writeKBps)
	}
	return meanOrNil(readValues), meanOrNil(writeValues)
}

// SarNet derives average network receive/send throughput (KB/s) from a
// sar network device report. Average rows are summed across every
// interface except loopback. When no Average rows carry a usable
// per-interface total, raw data rows are grouped by timestamp, summed
// across non-loopback interfaces per timestamp and averaged across
// timestamps.
func SarNet(path string) (recv *float64, send *float64) {
	lines := readReportLines(path)
	if len(lines) == 0 {
		return nil, nil
	}

	totalRx, totalTx := 0.0, 0.0
	anyDevice := false
	for _, line := range lines {
		if !strings.HasPrefix(line, sarAveragePrefix) {
			continue
		}
		parts := strings.Fields(line)
		// Expected: Average: IFACE rxpck/s txpck/s rxkB/s txkB/s ...
		if len(parts) < 6 {
			continue
		}
		iface := parts[1]
		if strings.EqualFold(iface, "iface") || iface == "lo" {
			continue
		}
		rxKBps, errRx := strconv.ParseFloat(parts[4], 64)
		txKBps, errTx := strconv.ParseFloat(parts[5], 64)
		if errRx != nil || errTx != nil {
			continue
		}
		totalRx += rxKBps
		totalTx += txKBps
		anyDevice = true
	}
	if anyDevice {
		return metrics.Float(totalRx), metrics.Float(totalTx)
	}

	// Fallback: group by timestamp and sum non-loopback interfaces per
	// sample.
	type rxtx struct{ rx, tx float64 }
	samples := map[string]rxtx{}
	for _, line := range lines {
		if strings.Contains(line, "IFACE") || strings.TrimSpace(line) == "" ||
			strings.HasPrefix(line, "Linux") || strings.HasPrefix(line, sarAveragePrefix) {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 6 {
			continue
		}
		timeKey := parts[0]
		iface := parts[1]
		if iface == "lo" {
			continue
		}
		rxKBps, errRx := strconv.ParseFloat(parts[4], 64)
		txKBps, errTx := strconv.ParseFloat(parts[5], 64)
		if errRx != nil || errTx != nil {
			continue
		}
		sum := samples[timeKey]
		samples[timeKey] = rxtx{rx: sum.rx + rxKBps, tx: sum.tx + txKBps}
	}
	if len(samples) == 0 {
		return nil, nil
	}

	var rxValues, txValues []float64
	for _, sum := range samples {
		rxValues = append(rxValues, sum.rx)
		txValues = append(txValues, sum.tx)
	}
	return meanOrNil(rxValues), meanOrNil(txValues)
}
