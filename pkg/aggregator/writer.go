package aggregator

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lahirumanulanka/bigdata-graph-project/pkg/metrics"
	"github.com/lahirumanulanka/bigdata-graph-project/pkg/utils/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// AltFileName is the sibling destination used when the requested
// summary path cannot be written.
const AltFileName = "summary.alt.csv"

var summaryHeader = []string{
	"framework",
	"dataset",
	"phase",
	"elapsed_seconds",
	"max_rss_kb",
	"cpu_user_s",
	"cpu_sys_s",
	"avg_cpu_util",
	"avg_mem_used_mb",
	"avg_dsk_read_kbps",
	"avg_dsk_writ_kbps",
	"avg_net_recv_kbps",
	"avg_net_send_kbps",
}

func floatCell(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func intCell(value *int64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatInt(*value, 10)
}

func recordRow(record metrics.Record) []string {
	return []string{
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
	}
}

func writeCSV(path string, records []metrics.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create summary file %q", path)
	}

	writer := csv.NewWriter(file)
	writer.Write(summaryHeader)
	for _, record := range records {
		writer.Write(recordRow(record))
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		os.Remove(path)
		return errors.Wrapf(err, "could not write summary rows to %q", path)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return errors.Wrapf(err, "could not close summary file %q", path)
	}
	return nil
}

// WriteSummary writes records as CSV to destination. The file is
// staged under a temporary name in the destination directory and moved
// into place, so readers never observe a partial table. When the
// destination cannot be claimed the table lands at summary.alt.csv in
// the same directory instead. Returns the path the table landed at.
func WriteSummary(destination string, records []metrics.Record) (string, error) {
	dir := filepath.Dir(destination)
	tempPath := filepath.Join(dir, "."+uuid.New()+".csv")
	if err := writeCSV(tempPath, records); err != nil {
		return "", err
	}

	if err := os.Rename(tempPath, destination); err != nil {
		altPath := filepath.Join(dir, AltFileName)
		if altErr := os.Rename(tempPath, altPath); altErr != nil {
			os.Remove(tempPath)
			return "", errors.Wrapf(altErr, "could not place summary at %q nor %q", destination, altPath)
		}
		log.Warnf("could not write %q, summary landed at %q: %v", destination, altPath, err)
		return altPath, nil
	}
	return destination, nil
}

// ReadSummary loads a summary table produced by WriteSummary. Empty
// cells come back as absent values.
func ReadSummary(path string) ([]metrics.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read summary %q", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse summary %q", path)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := []metrics.Record{}
	for _, row := range rows[1:] {
		if len(row) < len(summaryHeader) {
			continue
		}
		record := metrics.Record{
			Key: metrics.Key{Framework: row[0], Dataset: row[1], Phase: row[2]},
		}
		record.Tool.ElapsedSeconds = parseFloatCell(row[3])
		record.Tool.MaxRSSKB = parseIntCell(row[4])
		record.Tool.UserCPUSeconds = parseFloatCell(row[5])
		record.Tool.SysCPUSeconds = parseFloatCell(row[6])
		record.Averages.AvgCPUUtil = parseFloatCell(row[7])
		record.Averages.AvgMemUsedMB = parseFloatCell(row[8])
		record.Averages.AvgDskReadKBps = parseFloatCell(row[9])
		record.Averages.AvgDskWritKBps = parseFloatCell(row[10])
		record.Averages.AvgNetRecvKBps = parseFloatCell(row[11])
		record.Averages.AvgNetSendKBps = parseFloatCell(row[12])
		records = append(records, record)
	}
	return records, nil
}

func parseFloatCell(cell string) *float64 {
	if cell == "" {
		return nil
	}
	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	return &value
}

func parseIntCell(cell string) *int64 {
	if cell == "" {
		return nil
	}
	value, err := strconv.ParseInt(cell, 10, 64)
	if err != nil {
		return nil
	}
	return &value
}
