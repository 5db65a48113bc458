package dataset

import (
	"math"
	"testing"
)

// directMean and directPopStd are the reference arithmetic the aggregates
// must reproduce.
func directMean(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

func directPopStd(x []float64) float64 {
	mean := directMean(x)
	sumSq := 0.0
	for _, v := range x {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(x)))
}

func TestSeriesStats(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
	}{
		{
			name:   "single value",
			series: []float64{42},
		},
		{
			name:   "two values",
			series: []float64{100, 200},
		},
		{
			name:   "dimension-like series",
			series: []float64{512, 768, 640, 512, 1024},
		},
		{
			name:   "channel-mean-like series",
			series: []float64{123.25, 110.5, 98.875, 140.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seriesStats(tt.series)

			wantMean := directMean(tt.series)
			wantStd := directPopStd(tt.series)

			if math.Abs(got.Mean-wantMean) > floatTol {
				t.Errorf("Mean = %v, want %v", got.Mean, wantMean)
			}
			if math.Abs(got.Std-wantStd) > floatTol {
				t.Errorf("Std = %v, want %v", got.Std, wantStd)
			}
		})
	}

	t.Run("empty series", func(t *testing.T) {
		got := seriesStats(nil)
		if got.Mean != 0 || got.Std != 0 {
			t.Errorf("seriesStats(nil) = %+v, want zeros", got)
		}
	})
}

func TestSummarize(t *testing.T) {
	series := SubsetSeries{
		Subset:    Subset{Name: "wikiart", Pattern: "wikiart"},
		Widths:    []float64{100, 200, 300},
		Heights:   []float64{50, 60, 70},
		CacheHits: 1,
		Failed:    []string{"wikiart/bad.jpg"},
	}
	for i := 0; i < 3; i++ {
		series.Means[i] = []float64{10 * float64(i+1), 20 * float64(i+1), 30 * float64(i+1)}
		series.Stds[i] = []float64{1, 2, 3}
	}

	summary := summarize(series)

	if summary.Subset != series.Subset {
		t.Errorf("Subset = %+v, want %+v", summary.Subset, series.Subset)
	}
	if summary.Count != 3 {
		t.Errorf("Count = %d, want 3", summary.Count)
	}
	if summary.CacheHits != 1 {
		t.Errorf("CacheHits = %d, want 1", summary.CacheHits)
	}
	if len(summary.Failed) != 1 || summary.Failed[0] != "wikiart/bad.jpg" {
		t.Errorf("Failed = %v, want [wikiart/bad.jpg]", summary.Failed)
	}

	if math.Abs(summary.Width.Mean-200) > floatTol {
		t.Errorf("Width.Mean = %v, want 200", summary.Width.Mean)
	}
	if math.Abs(summary.Height.Mean-60) > floatTol {
		t.Errorf("Height.Mean = %v, want 60", summary.Height.Mean)
	}

	for i := 0; i < 3; i++ {
		wantMean := directMean(series.Means[i])
		if math.Abs(summary.Mean[i].Mean-wantMean) > floatTol {
			t.Errorf("Mean[%d].Mean = %v, want %v", i, summary.Mean[i].Mean, wantMean)
		}
		wantStd := directPopStd(series.Stds[i])
		if math.Abs(summary.Std[i].Std-wantStd) > floatTol {
			t.Errorf("Std[%d].Std = %v, want %v", i, summary.Std[i].Std, wantStd)
		}
	}
}
