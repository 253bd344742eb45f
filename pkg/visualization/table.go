package visualization

import (
	"fmt"
	"io"

	"github.com/lahirumanulanka/bigdata-graph-project/pkg/metrics"
	"github.com/olekukonko/tablewriter"
)

// Table is a model for data.
type Table struct {
	headers []string
	data    [][]string
}

// NewTable creates new model of data representation.
func NewTable(headers []string, data [][]string) *Table {
	return &Table{
		headers,
		data,
	}
}

// DrawTable draws a struct with headers and data rows.
func DrawTable(output io.Writer, table *Table) error {
	writer := tablewriter.NewWriter(output)
	writer.SetHeader(table.headers)
	for _, v := range table.data {
		writer.Append(v)
	}
	writer.Render()
	return nil
}

// Absent values render as a dash so that empty cells stand out from
// zero measurements.
const absentCell = "-"

func floatCell(value *float64) string {
	if value == nil {
		return absentCell
	}
	return fmt.Sprintf("%.2f", *value)
}

func intCell(value *int64) string {
	if value == nil {
		return absentCell
	}
	return fmt.Sprintf("%d", *value)
}

// RunSummaryTable builds a field/value table for one supervised run.
func RunSummaryTable(summary metrics.RunSummary) *Table {
	headers := []string{"field", "value"}
	data := [][]string{
		{"system", summary.System},
		{"dataset", summary.Dataset},
		{"elapsed (s)", fmt.Sprintf("%.3f", summary.ElapsedSec)},
		{"samples", fmt.Sprintf("%d", summary.Samples)},
		{"avg cpu (%)", floatCell(summary.AvgCPUPercent)},
		{"peak cpu (%)", fmt.Sprintf("%.2f", summary.PeakCPUPercent)},
		{"max mem used (mb)", fmt.Sprintf("%.2f", summary.MaxMemUsedMB)},
		{"disk read delta (bytes)", fmt.Sprintf("%d", summary.DiskReadDeltaBytes)},
		{"disk write delta (bytes)", fmt.Sprintf("%d", summary.DiskWriteDeltaBytes)},
		{"net sent delta (bytes)", fmt.Sprintf("%d", summary.NetSentDeltaBytes)},
		{"net recv delta (bytes)", fmt.Sprintf("%d", summary.NetRecvDeltaBytes)},
	}
	return NewTable(headers, data)
}

// SummaryTable builds a table holding one row per aggregated record.
func SummaryTable(records []metrics.Record) *Table {
	headers := []string{
		"framework", "dataset", "phase",
		"elapsed (s)", "max rss (kb)", "cpu user (s)", "cpu sys (s)",
		"cpu util (%)", "mem used (mb)",
		"dsk read (kb/s)", "dsk writ (kb/s)",
		"net recv (kb/s)", "net send (kb/s)",
	}

	data := [][]string{}
	for _, record := range records {
		data = append(data, []string{
			record.Framework,
			record.Dataset,
			record.Phase,
			floatCell(record.Tool.ElapsedSeconds),
			intCell(record.Tool.MaxRSSKB),
			floatCell(record.Tool.UserCPUSeconds),
			floatCell(record.Tool.SysCPUSeconds),
			floatCell(record.Averages.AvgCPUUtil),
			floatCell(record.Averages.AvgMemUsedMB),
			floatCell(record.Averages.AvgDskReadKBps),
			floatCell(record.Averages.AvgDskWritKBps),
			floatCell(record.Averages.AvgNetRecvKBps),
			floatCell(record.Averages.AvgNetSendKBps),
		})
	}
	return NewTable(headers, data)
}
