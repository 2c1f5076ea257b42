package ui

import (
	"fmt"
	"time"

	"github.com/piwi3910/MillPool/internal/engine"
	"github.com/piwi3910/MillPool/internal/model"
)

var poolColumns = []string{"Order", "Client", "Facade", "Area m2", "Due", "Days left", "Urgent"}

// poolColumnWidths are in device-independent pixels.
var poolColumnWidths = []float32{90, 220, 90, 80, 100, 80, 70}

// poolRows renders the pool as table cells, one row per order.
func poolRows(pool model.Pool, today time.Time, threshold int) [][]string {
	rows := make([][]string, 0, len(pool.Orders))
	for _, o := range pool.Orders {
		days := engine.DaysLeft(o, today)
		urgent := ""
		if days <= threshold {
			urgent = "URGENT"
		}
		rows = append(rows, []string{
			o.Number,
			o.Client,
			o.FacadeType,
			model.FormatArea(o.Area),
			o.DueDate.Format("2006-01-02"),
			fmt.Sprintf("%d", days),
			urgent,
		})
	}
	return rows
}

// summaryText is the utilization line shown under the pool table.
func summaryText(pool model.Pool, util model.Utilization) string {
	if pool.Empty() {
		return "No orders to mill"
	}
	path := string(pool.Path)
	if pool.Strategy != "" {
		path += " / " + pool.Strategy
	}
	return fmt.Sprintf("%d orders | %s m2 | %d sheets | waste %s m2 | efficiency %s%% | %s",
		len(pool.Orders), model.FormatArea(util.TotalArea), util.SheetsUsed,
		model.FormatArea(util.WasteArea), model.FormatPercent(util.EfficiencyPercent), path)
}
