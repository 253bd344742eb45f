package supervisor

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/lahirumanulanka/bigdata-graph-project/pkg/metrics"
	"github.com/pkg/errors"
)

var timeSeriesHeader = []string{
	"t_sec",
	"cpu_percent",
	"mem_used_mb",
	"mem_percent",
	"disk_read_bytes",
	"disk_write_bytes",
	"net_sent_bytes",
	"net_recv_bytes",
}

// timeSeriesWriter appends samples to a CSV file, one row per sample.
type timeSeriesWriter struct {
	file   *os.File
	writer *csv.Writer
}

func newTimeSeriesWriter(path string) (*timeSeriesWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create time series file %q", path)
	}
	writer := csv.NewWriter(file)
	if err := writer.Write(timeSeriesHeader); err != nil {
		file.Close()
		os.Remove(path)
		return nil, errors.Wrapf(err, "could not write time series header to %q", path)
	}
	return &timeSeriesWriter{file: file, writer: writer}, nil
}

func (w *timeSeriesWriter) Append(sample metrics.Sample) error {
	row := []string{
		fmt.Sprintf("%.3f", sample.TSec),
		fmt.Sprintf("%.2f", sample.CPUPercent),
		fmt.Sprintf("%.2f", sample.MemUsedMB),
		fmt.Sprintf("%.2f", sample.MemPercent),
		strconv.FormatUint(sample.DiskReadBytes, 10),
		strconv.FormatUint(sample.DiskWriteBytes, 10),
		strconv.FormatUint(sample.NetSentBytes, 10),
		strconv.FormatUint(sample.NetRecvBytes, 10),
	}
	if err := w.writer.Write(row); err != nil {
		return errors.Wrapf(err, "could not append sample to %q", w.file.Name())
	}
	return nil
}

func (w *timeSeriesWriter) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.file.Close()
		return errors.Wrapf(err, "could not flush time series file %q", w.file.Name())
	}
	if err := w.file.Close(); err != nil {
		return errors.Wrapf(err, "could not close time series file %q", w.file.Name())
	}
	return nil
}

func writeSummary(path string, summary metrics.RunSummary) error {
	body, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not encode run summary")
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		return errors.Wrapf(err, "could not write run summary to %q", path)
	}
	return nil
}

// ReadSummary loads a summary.json written by a previous run.
func ReadSummary(path string) (metrics.RunSummary, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return metrics.RunSummary{}, errors.Wrapf(err, "could not read run summary %q", path)
	}
	var summary metrics.RunSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return metrics.RunSummary{}, errors.Wrapf(err, "could not decode run summary %q", path)
	}
	return summary, nil
}

// ReadTimeSeries loads a timeseries.csv written by a previous run.
func ReadTimeSeries(path string) ([]metrics.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read time series %q", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse time series %q", path)
	}
	if len(records) == 0 {
		return nil, nil
	}

	samples := []metrics.Sample{}
	for _, record := range records[1:] {
		if len(record) < len(timeSeriesHeader) {
			continue
		}
		sample := metrics.Sample{}
		sample.TSec, _ = strconv.ParseFloat(record[0], 64)
		sample.CPUPercent, _ = strconv.ParseFloat(record[1], 64)
		sample.MemUsedMB, _ = strconv.ParseFloat(record[2], 64)
		sample.MemPercent, _ = strconv.ParseFloat(record[3], 64)
		sample.DiskReadBytes, _ = strconv.ParseUint(record[4], 10, 64)
		sample.DiskWriteBytes, _ = strconv.ParseUint(record[5], 10, 64)
		sample.NetSentBytes, _ = strconv.ParseUint(record[6], 10, 64)
		sample.NetRecvBytes, _ = strconv.ParseUint(record[7], 10, 64)
		samples = append(samples, sample)
	}
	return samples, nil
}
