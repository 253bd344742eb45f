package main

import (
	"os"
	"strings"
	"time"

	"github.com/lahirumanulanka/bigdata-graph-project/pkg/conf"
	"github.com/lahirumanulanka/bigdata-graph-project/pkg/supervisor"
	"github.com/lahirumanulanka/bigdata-graph-project/pkg/utils/errutil"
	"github.com/lahirumanulanka/bigdata-graph-project/pkg/visualization"
	"github.com/sirupsen/logrus"
)

var (
	systemFlag = conf.NewStringFlag(
		"system", "Name of the engine under measurement.", "")
	datasetFlag = conf.NewStringFlag(
		"dataset", "Name of the dataset the engine runs against.", "")
	outRootFlag = conf.NewStringFlag(
		"out_root", "Directory run artifacts are placed under, as <out_root>/<system>/<dataset>/.", "/data/metrics")
	intervalFlag = conf.NewDurationFlag(
		"interval", "Sampling period. Values below 200ms are raised to 200ms.", time.Second)
)

// extractCommand splits the benchmark command off after the first "--"
// so that kingpin only sees the runner's own flags.
func extractCommand() string {
	for i, arg := range os.Args {
		if arg == "--" {
			command := strings.Join(os.Args[i+1:], " ")
			os.Args = os.Args[:i]
			return command
		}
	}
	return ""
}

func main() {
	conf.SetAppName("runner")
	conf.SetHelp(`Runner launches a benchmark command, samples host-wide CPU, memory, disk and network counters while it runs and writes a per-run time series plus a summary.
Usage: runner --system <name> --dataset <name> [--interval 1s] -- <command...>`)

	command := extractCommand()
	errutil.Check(conf.ParseFlags())
	logrus.SetLevel(conf.LogLevel())

	if systemFlag.Value() == "" || datasetFlag.Value() == "" || command == "" {
		logrus.Fatal("runner requires --system, --dataset and a command after --")
	}

	runSupervisor := supervisor.New(supervisor.Config{
		System:   systemFlag.Value(),
		Dataset:  datasetFlag.Value(),
		OutRoot:  outRootFlag.Value(),
		Interval: intervalFlag.Value(),
	})

	summary, err := runSupervisor.Run(command)
	errutil.CheckWithContext(err, "supervised run failed")

	errutil.Check(visualization.DrawTable(os.Stdout, visualization.RunSummaryTable(summary)))
	logrus.Infof("artifacts in %s", runSupervisor.OutDir())
}
