package visualization

import (
	"bytes"
	"testing"

	"github.com/lahirumanulanka/bigdata-graph-project/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRunSummaryTable(t *testing.T) {
	Convey("While rendering a run summary as a table", t, func() {
		summary := metrics.RunSummary{
			System:              "engineA",
			Dataset:             "ds1",
			ElapsedSec:          12.345,
			PeakCPUPercent:      80.5,
			MaxMemUsedMB:        2048.25,
			DiskReadDeltaBytes:  4096,
			DiskWriteDeltaBytes: 8192,
			Samples:             13,
		}

		var buffer bytes.Buffer
		err := DrawTable(&buffer, RunSummaryTable(summary))
		So(err, ShouldBeNil)

		rendered := buffer.String()
		So(rendered, ShouldContainSubstring, "engineA")
		So(rendered, ShouldContainSubstring, "12.345")
		So(rendered, ShouldContainSubstring, "80.50")
		So(rendered, ShouldContainSubstring, "2048.25")
		So(rendered, ShouldContainSubstring, "4096")
		So(rendered, ShouldContainSubstring, "13")

		Convey("An unset average should render as a dash", func() {
			So(rendered, ShouldContainSubstring, absentCell)
		})
	})
}

func TestSummaryTable(t *testing.T) {
	Convey("While rendering aggregated records as a table", t, func() {
		records := []metrics.Record{
			{
				Key: metrics.Key{Framework: "engineA", Dataset: "ds1", Phase: "load"},
				Tool: metrics.ToolMetrics{
					ElapsedSeconds: metrics.Float(3723.0),
					MaxRSSKB:       metrics.Int(123456),
				},
				Averages: metrics.MonitorAverages{
					AvgCPUUtil: metrics.Float(10.0),
				},
			},
		}

		var buffer bytes.Buffer
		err := DrawTable(&buffer, SummaryTable(records))
		So(err, ShouldBeNil)

		Convey("Present values should render with their row labels", func() {
			rendered := buffer.String()
			So(rendered, ShouldContainSubstring, "engineA")
			So(rendered, ShouldContainSubstring, "ds1")
			So(rendered, ShouldContainSubstring, "load")
			So(rendered, ShouldContainSubstring, "3723.00")
			So(rendered, ShouldContainSubstring, "123456")
		})

		Convey("Absent values should render as a dash", func() {
			So(buffer.String(), ShouldContainSubstring, "-")
		})
	})
}
