package dataset

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// histBins is the bin count for dimension histograms.
const histBins = 20

// renderPlots writes the exploratory charts for one subset into dir:
// a width histogram, a height histogram, and a per-channel mean bar chart.
// Returns the paths of the files written.
func renderPlots(series SubsetSeries, dir string) ([]string, error) {
	if series.Count() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatches, series.Subset)
	}

	var written []string

	widthPath := filepath.Join(dir, series.Subset.Name+"_width_hist.png")
	if err := renderHist(series.Widths, "Image width ("+series.Subset.Name+")", "Width (px)", widthPath); err != nil {
		return nil, err
	}
	written = append(written, widthPath)

	heightPath := filepath.Join(dir, series.Subset.Name+"_height_hist.png")
	if err := renderHist(series.Heights, "Image height ("+series.Subset.Name+")", "Height (px)", heightPath); err != nil {
		return nil, err
	}
	written = append(written, heightPath)

	meanPath := filepath.Join(dir, series.Subset.Name+"_channel_mean.png")
	if err := renderChannelMeans(series, meanPath); err != nil {
		return nil, err
	}
	written = append(written, meanPath)

	return written, nil
}

// renderHist writes a histogram of one scalar series to filename.
func renderHist(values []float64, title, xlabel, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(plotter.Values(values), histBins)
	if err != nil {
		return fmt.Errorf("building histogram: %w", err)
	}
	h.FillColor = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}
	return nil
}

// renderChannelMeans writes a bar chart of the aggregate per-channel color
// means of a subset.
func renderChannelMeans(series SubsetSeries, filename string) error {
	p := plot.New()
	p.Title.Text = "Channel mean (" + series.Subset.Name + ")"
	p.Y.Label.Text = "Mean (0-255)"

	values := make(plotter.Values, 3)
	for i := 0; i < 3; i++ {
		values[i] = seriesStats(series.Means[i]).Mean
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return fmt.Errorf("building bar chart: %w", err)
	}
	bars.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	p.Add(bars)
	p.NominalX("R", "G", "B")

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}
	return nil
}
