package report

import (
	"github.com/guptarohit/asciigraph"
)

const (
	chartHeight = 10
	chartWidth  = 80
)

// Chart plots one series with a caption.
func Chart(data []float64, caption string) string {
	if len(data) == 0 {
		return Subtle.Render("(no data: " + caption + ")")
	}
	return asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(caption),
	)
}

// MultiChart plots several series on shared axes, one color per series.
func MultiChart(series [][]float64, caption string) string {
	if len(series) == 0 {
		return Subtle.Render("(no data: " + caption + ")")
	}
	colors := []asciigraph.AnsiColor{
		asciigraph.Red, asciigraph.Green, asciigraph.Yellow, asciigraph.Blue, asciigraph.Magenta, asciigraph.Cyan,
	}
	seriesColors := make([]asciigraph.AnsiColor, len(series))
	for i := range series {
		seriesColors[i] = colors[i%len(colors)]
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(chartHeight*2),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(seriesColors...),
	)
}
