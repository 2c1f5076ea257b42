package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/piwi3910/MillPool/internal/engine"
	"github.com/piwi3910/MillPool/internal/model"
)

// RenderChart writes an HTML page with a stacked bar chart of used and
// wasted area for each sheet of the pool.
func RenderChart(w io.Writer, pool model.Pool, settings model.PoolSettings) error {
	bar, err := buildChart(pool, settings)
	if err != nil {
		return err
	}
	return bar.Render(w)
}

func buildChart(pool model.Pool, settings model.PoolSettings) (*charts.Bar, error) {
	if pool.Empty() {
		return nil, fmt.Errorf("no orders to chart: %w", model.ErrEmptyPool)
	}

	sheetArea := settings.SheetArea()
	util := engine.Report(pool, sheetArea)
	fills := engine.SheetFill(pool, sheetArea)

	labels := make([]string, 0, len(fills))
	used := make([]opts.BarData, 0, len(fills))
	waste := make([]opts.BarData, 0, len(fills))
	for i, fill := range fills {
		labels = append(labels, fmt.Sprintf("Sheet %d", i+1))
		used = append(used, opts.BarData{Value: model.RoundArea(fill)})
		waste = append(waste, opts.BarData{Value: model.RoundArea(sheetArea - fill)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Sheet utilization",
			Subtitle: fmt.Sprintf("%s m2 on %d sheets, efficiency %s%%", model.FormatArea(util.TotalArea), util.SheetsUsed, model.FormatPercent(util.EfficiencyPercent)),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "m2"}),
	)
	bar.SetXAxis(labels).
		AddSeries("Used", used, charts.WithBarChartOpts(opts.BarChart{Stack: "sheet"})).
		AddSeries("Waste", waste, charts.WithBarChartOpts(opts.BarChart{Stack: "sheet"}))
	return bar, nil
}
