package parse

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/lahirumanulanka/bigdata-graph-project/pkg/metrics"
)

// Column label candidates, matched as case-insensitive substrings against
// the header cells. dstat 0.7.x and 0.8.x label the same columns
// differently, hence the loose alternatives.
var (
	dstatCPUUserLabels  = []string{"usr"}
	dstatCPUSysLabels   = []string{"sys"}
	dstatCPUIdleLabels  = []string{"idl"}
	dstatMemUsedLabels  = []string{"used"}
	dstatDskReadLabels  = []string{"io/total read", "dsk/total read", "read"}
	dstatDskWritLabels  = []string{"io/total writ", "dsk/total writ", "writ"}
	dstatNetRecvLabels  = []string{"net/total recv", "recv"}
	dstatNetSendLabels  = []string{"net/total send", "send"}
	dstatHeaderFirstCol = "time"
)

// dstatColumns holds the column indices resolved from the active header
// block. -1 means the column could not be located, which is not an error.
type dstatColumns struct {
	cpuUser, cpuSys, cpuIdle int
	memUsed                  int
	dskRead, dskWrit         int
	netRecv, netSend         int
}

func resolveDstatColumns(header []string) dstatColumns {
	find := func(candidates []string) int {
		for i, cell := range header {
			lowered := strings.ToLower(strings.TrimSpace(cell))
			for _, candidate := range candidates {
				if strings.Contains(lowered, candidate) {
					return i
				}
			}
		}
		return -1
	}

	return dstatColumns{
		cpuUser: find(dstatCPUUserLabels),
		cpuSys:  find(dstatCPUSysLabels),
		cpuIdle: find(dstatCPUIdleLabels),
		memUsed: find(dstatMemUsedLabels),
		dskRead: find(dstatDskReadLabels),
		dskWrit: find(dstatDskWritLabels),
		netRecv: find(dstatNetRecvLabels),
		netSend: find(dstatNetSendLabels),
	}
}

func isDstatHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), dstatHeaderFirstCol)
}

// dstatSums accumulates per-column running sums over all data rows.
type dstatSums struct {
	samples          int
	usr, sys, idl    float64
	memUsed          float64
	dskRead, dskWrit float64
	netRecv, netSend float64
}

// accumulate adds one cell's contribution if the column is mapped and the
// cell parses. Unparsable cells are skipped without invalidating the row.
func accumulateCell(sum *float64, row []string, col int) {
	if col < 0 || col >= len(row) {
		return
	}
	cell := strings.TrimSpace(row[col])
	if cell == "" {
		return
	}
	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return
	}
	*sum += value
}

// DstatCSV parses the system-monitor CSV dialect. The file embeds zero or
// more header blocks (a row whose first cell equals "time") followed by
// data rows; successive collection intervals append further blocks. Rows
// before the first header are ignored and rows narrower than the active
// header are skipped.
//
// When a new header block appears mid-file, accumulation intentionally
// continues on the same running sums with the newly resolved column
// indices, producing one run-wide average rather than per-block averages.
// Multi-segment captures with differing schemas therefore skew towards
// the longer segment.
//
// A missing file yields all-absent averages and a nil error.
func DstatCSV(path string) (metrics.MonitorAverages, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return metrics.MonitorAverages{}, nil
		}
		return metrics.MonitorAverages{}, errors.Wrapf(err, "could not open dstat log %q", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	sums := dstatSums{}
	var columns dstatColumns
	headerWidth := 0
	seenHeader := false

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed record: skip the row, keep the file.
			continue
		}
		if len(row) == 0 {
			continue
		}

		if isDstatHeader(row) {
			columns = resolveDstatColumns(row)
			headerWidth = len(row)
			seenHeader = true
			continue
		}
		if !seenHeader {
			continue
		}
		if len(row) < headerWidth {
			// Truncated capture row.
			continue
		}

		sums.samples++
		accumulateCell(&sums.usr, row, columns.cpuUser)
		accumulateCell(&sums.sys, row, columns.cpuSys)
		accumulateCell(&sums.idl, row, columns.cpuIdle)
		accumulateCell(&sums.memUsed, row, columns.memUsed)
		accumulateCell(&sums.dskRead, row, columns.dskRead)
		accumulateCell(&sums.dskWrit, row, columns.dskWrit)
		accumulateCell(&sums.netRecv, row, columns.netRecv)
		accumulateCell(&sums.netSend, row, columns.netSend)
	}

	return sums.averages(), nil
}

// averages finalizes the run-wide averages. CPU utilization prefers the
// idle column (100 - mean idle); without idle data it falls back to
// mean(user + system). The dstat memory column is bytes, converted to
// MiB. Disk and network throughput sums of exactly zero are reported as
// absent rather than a genuine zero rate.
func (s dstatSums) averages() metrics.MonitorAverages {
	if s.samples == 0 {
		return metrics.MonitorAverages{}
	}

	result := metrics.MonitorAverages{}
	n := float64(s.samples)

	if s.idl > 0.0 {
		result.AvgCPUUtil = metrics.Float(100.0 - s.idl/n)
	} else if s.usr+s.sys > 0.0 {
		result.AvgCPUUtil = metrics.Float((s.usr + s.sys) / n)
	}

	if s.memUsed > 0.0 {
		result.AvgMemUsedMB = metrics.Float(s.memUsed / n / (1024.0 * 1024.0))
	}

	if s.dskRead != 0.0 {
		result.AvgDskReadKBps = metrics.Float(s.dskRead / n)
	}
	if s.dskWrit != 0.0 {
		result.AvgDskWritKBps = metrics.Float(s.dskWrit / n)
	}
	if s.netRecv != 0.0 {
		result.AvgNetRecvKBps = metrics.Float(s.netRecv / n)
	}
	if s.netSend != 0.0 {
		result.AvgNetSendKBps = metrics.Float(s.netSend / n)
	}

	return result
}
