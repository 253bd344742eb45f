package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lahirumanulanka/bigdata-graph-project/pkg/aggregator"
	"github.com/lahirumanulanka/bigdata-graph-project/pkg/conf"
	"github.com/lahirumanulanka/bigdata-graph-project/pkg/metrics"
	"github.com/lahirumanulanka/bigdata-graph-project/pkg/metrics/uploaders"
	"github.com/lahirumanulanka/bigdata-graph-project/pkg/utils/errutil"
	"github.com/lahirumanulanka/bigdata-graph-project/pkg/visualization"
	"github.com/sirupsen/logrus"
	"gopkg.in/cheggaaa/pb.v1"
)

var (
	dataRootFlag = conf.NewStringFlag(
		"data_root", "Directory holding per-framework run artifacts.", "/data/metrics")
	outFlag = conf.NewStringFlag(
		"out", "Destination path for the summary table. Defaults to <data_root>/summary.csv.", "")
	tableFlag = conf.NewBoolFlag(
		"table", "Print the aggregated table to stdout.", true)
	cassandraHostFlag = conf.NewStringFlag(
		"cassandra_host", "Comma separated Cassandra hosts to upload the summary to. Empty disables upload.", "")
	cassandraKeySpaceFlag = conf.NewStringFlag(
		"cassandra_keyspace", "Cassandra keyspace for uploaded summaries.", "graphbench")
	cassandraPortFlag = conf.NewIntFlag(
		"cassandra_port", "Cassandra port. Zero selects the driver default.", 0)
	cassandraUserFlag = conf.NewStringFlag(
		"cassandra_username", "Cassandra username. Empty disables authentication.", "")
	cassandraPasswordFlag = conf.NewStringFlag(
		"cassandra_password", "Cassandra password.", "")
)

func main() {
	conf.SetAppName("aggregate")
	conf.SetHelp(`Aggregate walks <data_root>/<framework>/<dataset>/<phase>.time artifacts, parses timing reports and monitor captures and condenses them into one summary table.`)

	errutil.Check(conf.ParseFlags())
	logrus.SetLevel(conf.LogLevel())

	root := dataRootFlag.Value()
	keys, err := aggregator.Discover(root)
	errutil.CheckWithContext(err, "run discovery failed")

	bar := pb.StartNew(len(keys))
	records := make([]metrics.Record, 0, len(keys))
	for _, key := range keys {
		record, err := aggregator.Collect(root, key)
		errutil.CheckWithContext(err, "run collection failed")
		records = append(records, record)
		bar.Increment()
	}
	bar.Finish()

	destination := outFlag.Value()
	if destination == "" {
		destination = filepath.Join(root, "summary.csv")
	}
	landed, err := aggregator.WriteSummary(destination, records)
	errutil.CheckWithContext(err, "summary write failed")
	logrus.Infof("aggregated %d runs into %s", len(records), landed)

	if tableFlag.Value() {
		errutil.Check(visualization.DrawTable(os.Stdout, visualization.SummaryTable(records)))
	}

	if cassandraHostFlag.Value() != "" {
		uploader, err := uploaders.NewCassandra(uploaders.Config{
			Host:     strings.Split(cassandraHostFlag.Value(), ","),
			Port:     cassandraPortFlag.Value(),
			Username: cassandraUserFlag.Value(),
			Password: cassandraPasswordFlag.Value(),
			KeySpace: cassandraKeySpaceFlag.Value(),
		})
		errutil.CheckWithContext(err, "cassandra connection failed")
		errutil.CheckWithContext(uploader.SendRecords(records), "cassandra upload failed")
		logrus.Infof("uploaded %d records to keyspace %s", len(records), cassandraKeySpaceFlag.Value())
	}
}
