package main

import (
	"os"

	"github.com/lahirumanulanka/bigdata-graph-project/pkg/aggregator"
	"github.com/lahirumanulanka/bigdata-graph-project/pkg/compare"
	"github.com/lahirumanulanka/bigdata-graph-project/pkg/conf"
	"github.com/lahirumanulanka/bigdata-graph-project/pkg/utils/errutil"
	"github.com/sirupsen/logrus"
)

const defaultSummaryPath = "/data/metrics/summary.csv"

var (
	// A file flag so a mistyped path fails at parse time instead of as
	// an empty comparison. Unset falls back to defaultSummaryPath.
	summaryFlag = conf.NewFileFlag(
		"summary", "Path to the aggregated summary table. Defaults to "+defaultSummaryPath+".", "")
	phasedFlag = conf.NewStringFlag(
		"phased_framework", "Framework whose per-phase rows are combined per dataset.", "hadoop")
	directFlag = conf.NewStringFlag(
		"direct_framework", "Framework with one row per dataset.", "spark")
)

func main() {
	conf.SetAppName("compare")
	conf.SetHelp(`Compare reads an aggregated summary table and prints per-dataset head-to-head results for two engines.`)

	errutil.Check(conf.ParseFlags())
	logrus.SetLevel(conf.LogLevel())

	summaryPath := summaryFlag.Value()
	if summaryPath == "" {
		summaryPath = defaultSummaryPath
	}
	records, err := aggregator.ReadSummary(summaryPath)
	errutil.CheckWithContext(err, "summary load failed")

	comparisons := compare.Build(records, compare.Config{
		PhasedFramework: phasedFlag.Value(),
		DirectFramework: directFlag.Value(),
	})
	if len(comparisons) == 0 {
		logrus.Warn("no dataset is covered by both frameworks")
		return
	}
	errutil.Check(compare.Render(os.Stdout, comparisons))
}
