// Package aggregator walks a tree of run artifacts and condenses them
// into a single summary table. The tree is laid out as
// <root>/<framework>/<dataset>/<phase>.time with optional monitor
// captures beside each timing report.
package aggregator

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lahirumanulanka/bigdata-graph-project/pkg/metrics"
	"github.com/lahirumanulanka/bigdata-graph-project/pkg/metrics/parse"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const timeReportSuffix = ".time"

// Discover lists every (framework, dataset, phase) triple under root
// that carries a timing report, sorted lexicographically.
func Discover(root string) ([]metrics.Key, error) {
	frameworks, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "could not list run tree %q", root)
	}

	keys := []metrics.Key{}
	for _, framework := range frameworks {
		if !framework.IsDir() {
			continue
		}
		datasets, err := os.ReadDir(filepath.Join(root, framework.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "could not list framework directory %q", framework.Name())
		}
		for _, dataset := range datasets {
			if !dataset.IsDir() {
				continue
			}
			entries, err := os.ReadDir(filepath.Join(root, framework.Name(), dataset.Name()))
			if err != nil {
				return nil, errors.Wrapf(err, "could not list dataset directory %q", dataset.Name())
			}
			for _, entry := range entries {
				if entry.IsDir() || !strings.HasSuffix(entry.Name(), timeReportSuffix) {
					continue
				}
				keys = append(keys, metrics.Key{
					Framework: framework.Name(),
					Dataset:   dataset.Name(),
					Phase:     strings.TrimSuffix(entry.Name(), timeReportSuffix),
				})
			}
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys, nil
}

// Collect parses the timing report and monitor captures for one triple.
// The dstat capture is preferred; sar captures are consulted only when
// dstat yields nothing.
func Collect(root string, key metrics.Key) (metrics.Record, error) {
	dir := filepath.Join(root, key.Framework, key.Dataset)

	tool, err := parse.TimeReport(filepath.Join(dir, key.Phase+timeReportSuffix))
	if err != nil {
		return metrics.Record{}, err
	}

	averages, err := parse.DstatCSV(filepath.Join(dir, key.Phase+".dstat.csv"))
	if err != nil {
		return metrics.Record{}, err
	}
	if averages.Empty() {
		averages = collectSar(dir, key.Phase)
	}

	return metrics.Record{Key: key, Tool: tool, Averages: averages}, nil
}

func collectSar(dir, phase string) metrics.MonitorAverages {
	averages := metrics.MonitorAverages{}
	averages.AvgCPUUtil = parse.SarCPU(filepath.Join(dir, phase+".sar.cpu.txt"))
	averages.AvgMemUsedMB = parse.SarMem(filepath.Join(dir, phase+".sar.mem.txt"))
	averages.AvgDskReadKBps, averages.AvgDskWritKBps = parse.SarDisk(filepath.Join(dir, phase+".sar.dsk.txt"))
	averages.AvgNetRecvKBps, averages.AvgNetSendKBps = parse.SarNet(filepath.Join(dir, phase+".sar.net.txt"))
	return averages
}

// Aggregate discovers every run under root and returns one Record per
// triple, in lexicographic order.
func Aggregate(root string) ([]metrics.Record, error) {
	keys, err := Discover(root)
	if err != nil {
		return nil, err
	}

	records := make([]metrics.Record, 0, len(keys))
	for _, key := range keys {
		record, err := Collect(root, key)
		if err != nil {
			return nil, err
		}
		log.Debugf("collected %s/%s/%s", key.Framework, key.Dataset, key.Phase)
		records = append(records, record)
	}
	return records, nil
}
