package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/MillPool/internal/engine"
	"github.com/piwi3910/MillPool/internal/importer"
	"github.com/piwi3910/MillPool/internal/model"
)

// parseDay resolves the --date flag. Empty means today.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return model.Today(), nil
	}
	d, err := importer.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date: %w", err)
	}
	return d, nil
}

func poolCmd(e *env) *cobra.Command {
	var date string
	var format string
	var explain bool

	c := &cobra.Command{
		Use:   "pool",
		Short: "Show the pool to mill next",
		RunE: func(_ *cobra.Command, _ []string) error {
			today, err := parseDay(date)
			if err != nil {
				return err
			}
			orders := e.backlog.Orders()
			pool := e.selector.Select(orders, today)

			var results []engine.StrategyResult
			if explain {
				results = e.selector.ExplainPool(orders, today)
			}
			return printPool(os.Stdout, pool, e.selector.Settings, today, results, format)
		},
	}

	c.Flags().StringVar(&date, "date", "", "Plan for this day instead of today (YYYY-MM-DD)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().BoolVar(&explain, "explain", false, "Show every combination strategy considered")
	return c
}

type poolOutput struct {
	Date        string                        `json:"date"`
	Pool        model.Pool                    `json:"pool"`
	Utilization model.Utilization             `json:"utilization"`
	Urgency     map[string]model.OrderUrgency `json:"urgency"`
	Strategies  []engine.StrategyResult       `json:"strategies,omitempty"`
}

func printPool(w io.Writer, pool model.Pool, settings model.PoolSettings, today time.Time, results []engine.StrategyResult, format string) error {
	util := engine.Report(pool, settings.SheetArea())
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(poolOutput{
			Date:        today.Format("2006-01-02"),
			Pool:        pool,
			Utilization: util,
			Urgency:     engine.Urgency(pool.Orders, today, settings.UrgentDaysThreshold),
			Strategies:  results,
		})
	case "pretty", "":
		printPrettyPool(w, pool, settings, today, util, results)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyPool(w io.Writer, pool model.Pool, settings model.PoolSettings, today time.Time, util model.Utilization, results []engine.StrategyResult) {
	th := defaultTheme()

	fmt.Fprintln(w, th.Title.Render("Milling pool "+today.Format("2006-01-02")))
	if pool.Empty() {
		fmt.Fprintln(w, th.Faint.Render("(no orders to mill)"))
		return
	}

	path := string(pool.Path)
	if pool.Strategy != "" {
		path += " / " + pool.Strategy
	}
	fmt.Fprintf(w, "Path: %s\n\n", path)

	for i, o := range pool.Orders {
		days := engine.DaysLeft(o, today)
		line := fmt.Sprintf("%2d. %-10s %-24s %-8s %8s m2  due %s (%+d d)",
			i+1, o.Number, o.Client, o.FacadeType, model.FormatArea(o.Area), o.DueDate.Format("2006-01-02"), days)
		if days <= settings.UrgentDaysThreshold {
			line = th.Urgent.Render(line + "  URGENT")
		}
		fmt.Fprintln(w, line)
	}

	summary := strings.Join([]string{
		fmt.Sprintf("Area:       %s m2", model.FormatArea(util.TotalArea)),
		fmt.Sprintf("Sheets:     %d", util.SheetsUsed),
		fmt.Sprintf("Waste:      %s m2", model.FormatArea(util.WasteArea)),
		fmt.Sprintf("Efficiency: %s%%", model.FormatPercent(util.EfficiencyPercent)),
	}, "\n")
	fmt.Fprintln(w)
	fmt.Fprintln(w, th.Card.Render(summary))

	if len(results) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, th.Title.Render("Strategies"))
		for _, r := range results {
			mark := " "
			if r.Winner {
				mark = "*"
			}
			fmt.Fprintf(w, "%s %-14s %d orders  %s m2  %s\n",
				mark, r.Name, len(r.Orders), model.FormatArea(r.TotalArea), model.FormatPercent(r.Efficiency*100)+"%")
		}
	}
}
