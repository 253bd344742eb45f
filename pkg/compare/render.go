package compare

import (
	"fmt"
	"io"

	"github.com/lahirumanulanka/bigdata-graph-project/pkg/visualization"
)

// Render writes one table per dataset, with the direct engine's totals
// beside the phased engine's combined totals.
func Render(output io.Writer, comparisons []DatasetComparison) error {
	fmt.Fprintf(output, "Performance comparison per dataset\n")
	for _, comparison := range comparisons {
		fmt.Fprintf(output, "\n- %s: %s (diff %ss)\n",
			comparison.Dataset, comparison.ElapsedVerdict(), comparison.ElapsedDiff().StringFixed(2))

		headers := []string{"metric", comparison.DirectFramework, comparison.PhasedFramework}
		data := [][]string{
			row("elapsed (s)", comparison.Direct.ElapsedSeconds, comparison.Phased.ElapsedSeconds),
			row("max rss (kb)", comparison.Direct.MaxRSSKB, comparison.Phased.MaxRSSKB),
			row("cpu user (s)", comparison.Direct.CPUUserSeconds, comparison.Phased.CPUUserSeconds),
			row("cpu sys (s)", comparison.Direct.CPUSysSeconds, comparison.Phased.CPUSysSeconds),
			row("avg cpu util (%)", comparison.Direct.AvgCPUUtil, comparison.Phased.AvgCPUUtil),
			row("avg mem used (mb)", comparison.Direct.AvgMemUsedMB, comparison.Phased.AvgMemUsedMB),
			row("avg dsk read (kb/s)", comparison.Direct.AvgDskReadKBps, comparison.Phased.AvgDskReadKBps),
			row("avg dsk writ (kb/s)", comparison.Direct.AvgDskWritKBps, comparison.Phased.AvgDskWritKBps),
			row("avg net recv (kb/s)", comparison.Direct.AvgNetRecvKBps, comparison.Phased.AvgNetRecvKBps),
			row("avg net send (kb/s)", comparison.Direct.AvgNetSendKBps, comparison.Phased.AvgNetSendKBps),
		}
		if err := visualization.DrawTable(output, visualization.NewTable(headers, data)); err != nil {
			return err
		}
	}
	return nil
}

func row(metric string, direct, phased float64) []string {
	return []string{
		metric,
		fmt.Sprintf("%.2f", direct),
		fmt.Sprintf("%.2f", phased),
	}
}
