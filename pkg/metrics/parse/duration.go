// Package parse turns heterogeneous profiler output - GNU time reports,
// dstat-style CSV logs and sar-style historical reports - into the typed
// records of pkg/metrics. Parsers fail at the finest possible granularity:
// a bad cell or line is skipped, never the surrounding file.
package parse

import (
	"strconv"
	"strings"
)

// Duration converts a time token to canonical seconds. It accepts
// `H:MM:SS[.fraction]`, `MM:SS[.fraction]` and bare decimal seconds.
// Any other input yields 0.0; downstream consumers of the historical
// tables rely on that permissive fallback.
func Duration(token string) float64 {
	trimmed := strings.TrimSpace(token)
	parts := strings.Split(trimmed, ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 3:
		hours, errH := strconv.Atoi(parts[0])
		minutes, errM := strconv.Atoi(parts[1])
		seconds, errS := strconv.ParseFloat(parts[2], 64)
		if errH != nil || errM != nil || errS != nil {
			return 0.0
		}
		return float64(hours)*3600 + float64(minutes)*60 + seconds
	case 2:
		minutes, errM := strconv.Atoi(parts[0])
		seconds, errS := strconv.ParseFloat(parts[1], 64)
		if errM != nil || errS != nil {
			return 0.0
		}
		return float64(minutes)*60 + seconds
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0.0
	}
	return value
}
