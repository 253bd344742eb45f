package compare

import (
	"bytes"
	"testing"

	"github.com/lahirumanulanka/bigdata-graph-project/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func phasedRecord(dataset, phase string, elapsed float64, cpuUtil *float64) metrics.Record {
	return metrics.Record{
		Key: metrics.Key{Framework: "hadoop", Dataset: dataset, Phase: phase},
		Tool: metrics.ToolMetrics{
			ElapsedSeconds: metrics.Float(elapsed),
			MaxRSSKB:       metrics.Int(1000),
			UserCPUSeconds: metrics.Float(2.0),
			SysCPUSeconds:  metrics.Float(1.0),
		},
		Averages: metrics.MonitorAverages{AvgCPUUtil: cpuUtil},
	}
}

func directRecord(dataset string, elapsed float64) metrics.Record {
	return metrics.Record{
		Key: metrics.Key{Framework: "spark", Dataset: dataset, Phase: "run"},
		Tool: metrics.ToolMetrics{
			ElapsedSeconds: metrics.Float(elapsed),
			MaxRSSKB:       metrics.Int(4000),
		},
		Averages: metrics.MonitorAverages{AvgCPUUtil: metrics.Float(55.0)},
	}
}

func TestBuild(t *testing.T) {
	Convey("While comparing a phased engine against a direct one", t, func() {
		records := []metrics.Record{
			phasedRecord("ds1", "load", 10.0, metrics.Float(20.0)),
			phasedRecord("ds1", "run", 20.0, metrics.Float(40.0)),
			phasedRecord("ds1", "export", 5.0, nil),
			directRecord("ds1", 25.0),
			phasedRecord("only-phased", "run", 7.0, nil),
			directRecord("only-direct", 3.0),
		}

		comparisons := Build(records, DefaultConfig())

		Convey("Only datasets covered by both engines should remain", func() {
			So(len(comparisons), ShouldEqual, 1)
			So(comparisons[0].Dataset, ShouldEqual, "ds1")
		})

		Convey("Per-phase fields should sum across phases", func() {
			So(comparisons[0].Phased.ElapsedSeconds, ShouldEqual, 35.0)
			So(comparisons[0].Phased.MaxRSSKB, ShouldEqual, 3000.0)
			So(comparisons[0].Phased.CPUUserSeconds, ShouldEqual, 6.0)
			So(comparisons[0].Phased.CPUSysSeconds, ShouldEqual, 3.0)
		})

		Convey("Average fields should mean only the present phases", func() {
			So(comparisons[0].Phased.AvgCPUUtil, ShouldEqual, 30.0)
		})

		Convey("The direct engine's row should pass through unchanged", func() {
			So(comparisons[0].Direct.ElapsedSeconds, ShouldEqual, 25.0)
			So(comparisons[0].Direct.MaxRSSKB, ShouldEqual, 4000.0)
			So(comparisons[0].Direct.AvgCPUUtil, ShouldEqual, 55.0)
		})

		Convey("The verdict should favor the smaller elapsed total", func() {
			So(comparisons[0].ElapsedVerdict(), ShouldEqual, "spark faster")
			So(comparisons[0].ElapsedDiff().StringFixed(2), ShouldEqual, "10.00")
		})
	})
}

func TestBuildVerdicts(t *testing.T) {
	Convey("While judging elapsed totals", t, func() {
		Convey("A slower direct engine should lose the verdict", func() {
			records := []metrics.Record{
				phasedRecord("ds1", "run", 10.0, nil),
				directRecord("ds1", 12.0),
			}
			comparisons := Build(records, DefaultConfig())
			So(comparisons[0].ElapsedVerdict(), ShouldEqual, "hadoop faster")
			So(comparisons[0].ElapsedDiff().StringFixed(2), ShouldEqual, "-2.00")
		})

		Convey("Equal totals should tie", func() {
			records := []metrics.Record{
				phasedRecord("ds1", "run", 25.0, nil),
				directRecord("ds1", 25.0),
			}
			comparisons := Build(records, DefaultConfig())
			So(comparisons[0].ElapsedVerdict(), ShouldEqual, "Tie")
		})
	})
}

func TestRender(t *testing.T) {
	Convey("While rendering a comparison", t, func() {
		records := []metrics.Record{
			phasedRecord("ds1", "load", 10.0, metrics.Float(20.0)),
			directRecord("ds1", 25.0),
		}
		comparisons := Build(records, DefaultConfig())

		var buffer bytes.Buffer
		So(Render(&buffer, comparisons), ShouldBeNil)

		rendered := buffer.String()
		So(rendered, ShouldContainSubstring, "ds1")
		So(rendered, ShouldContainSubstring, "spark")
		So(rendered, ShouldContainSubstring, "hadoop")
		So(rendered, ShouldContainSubstring, "elapsed (s)")
		So(rendered, ShouldContainSubstring, "25.00")
	})
}
