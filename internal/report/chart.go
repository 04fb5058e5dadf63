package report

import (
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	minSymbolSize = 4
	maxSymbolSize = 48
)

// Overview builds a bubble chart of every commit in the year buckets under
// dataDir: time on the x axis, test percentage on the y axis and bubble
// size from the number of changed lines.
func Overview(dataDir string) (*charts.Scatter, error) {
	buckets, err := loadYearBuckets(dataDir)
	if err != nil {
		return nil, err
	}

	title := "Commit bubbles"
	subtitle := ""
	var tested, untested []opts.ScatterData
	for _, yb := range buckets {
		if subtitle == "" {
			subtitle = yb.Bucket.Description
		}
		for _, c := range yb.Bucket.Commits {
			point := opts.ScatterData{
				Name:       c.ID,
				Value:      []any{c.When, c.Pct, c.All, c.Who},
				SymbolSize: symbolSize(c.All),
			}
			if c.Test > 0 {
				tested = append(tested, point)
			} else {
				untested = append(untested, point)
			}
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date", Type: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Test %", Type: "value", Min: 0, Max: 100}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", XAxisIndex: []int{0}}),
	)

	scatter.AddSeries("With tests", tested,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#2da44e", Opacity: opts.Float(0.6)}),
	)
	scatter.AddSeries("Without tests", untested,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#cf222e", Opacity: opts.Float(0.6)}),
	)
	return scatter, nil
}

// RenderOverview writes the overview chart page to w.
func RenderOverview(dataDir string, w io.Writer) error {
	scatter, err := Overview(dataDir)
	if err != nil {
		return err
	}
	return scatter.Render(w)
}

// RenderOverviewToFile writes the overview chart page to outputPath.
func RenderOverviewToFile(dataDir, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := RenderOverview(dataDir, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func symbolSize(lines int) int {
	size := int(math.Sqrt(float64(lines)) * 2)
	return max(minSymbolSize, min(size, maxSymbolSize))
}
