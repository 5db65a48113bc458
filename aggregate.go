package dataset

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// seriesStats aggregates one scalar series into its mean and population
// standard deviation. An empty series aggregates to zeros.
func seriesStats(x []float64) SeriesStats {
	if len(x) == 0 {
		return SeriesStats{}
	}
	return SeriesStats{
		Mean: stat.Mean(x, nil),
		// Moment(2, ...) is the population central moment, matching the
		// per-image channel std convention.
		Std: math.Sqrt(stat.Moment(2, x, nil)),
	}
}

// summarize aggregates raw per-image measurement series into a SubsetSummary.
func summarize(series SubsetSeries) SubsetSummary {
	summary := SubsetSummary{
		Subset:    series.Subset,
		Count:     series.Count(),
		Width:     seriesStats(series.Widths),
		Height:    seriesStats(series.Heights),
		CacheHits: series.CacheHits,
		Failed:    series.Failed,
	}
	for i := 0; i < 3; i++ {
		summary.Mean[i] = seriesStats(series.Means[i])
		summary.Std[i] = seriesStats(series.Stds[i])
	}
	return summary
}
