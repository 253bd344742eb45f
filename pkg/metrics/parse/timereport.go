package parse

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/lahirumanulanka/bigdata-graph-project/pkg/metrics"
)

// Elapsed time appears in three phrasings depending on which time tool
// produced the report: GNU time -v, the fallback wrapper's raw-seconds
// line, and the shell builtin.
var elapsedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^Elapsed \(wall clock\) time .*: (.+)$`),
	regexp.MustCompile(`^elapsed_seconds:\s*(\d+(?:\.\d+)?)$`),
	regexp.MustCompile(`^real\s*(\d+\.\d+)$`),
}

var (
	userPattern   = regexp.MustCompile(`^User time \(seconds\):\s*(\d+(?:\.\d+)?)$`)
	sysPattern    = regexp.MustCompile(`^System time \(seconds\):\s*(\d+(?:\.\d+)?)$`)
	maxRSSPattern = regexp.MustCompile(`^Maximum resident set size \(kbytes\):\s*(\d+)$`)
)

// TimeReport scans a resource-usage report line by line, extracting
// elapsed time, user/system CPU seconds and peak resident memory in KB.
// All four fields are independently optional and the first match per
// field wins. A missing file yields all-absent values and a nil error.
func TimeReport(path string) (metrics.ToolMetrics, error) {
	result := metrics.ToolMetrics{}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, errors.Wrapf(err, "could not open time report %q", path)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if result.UserCPUSeconds == nil {
			if m := userPattern.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					result.UserCPUSeconds = metrics.Float(v)
				}
				continue
			}
		}
		if result.SysCPUSeconds == nil {
			if m := sysPattern.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					result.SysCPUSeconds = metrics.Float(v)
				}
				continue
			}
		}
		if result.MaxRSSKB == nil {
			if m := maxRSSPattern.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseInt(m[1], 10, 64); err == nil {
					result.MaxRSSKB = metrics.Int(v)
				}
				continue
			}
		}
		if result.ElapsedSeconds == nil {
			for _, pattern := range elapsedPatterns {
				if m := pattern.FindStringSubmatch(line); m != nil {
					result.ElapsedSeconds = metrics.Float(Duration(m[1]))
					break
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return result, errors.Wrapf(err, "could not read time report %q", path)
	}

	return result, nil
}
