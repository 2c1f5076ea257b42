package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/MillPool/internal/engine"
	"github.com/piwi3910/MillPool/internal/model"
)

const poolSheet = "Pool"

var excelHeader = []interface{}{"#", "ID", "Order", "Client", "Facade", "Area m2", "Due", "Days left", "Urgent"}

// ExportExcel writes the pool as a spreadsheet with one row per order and a
// utilization summary below the table.
func ExportExcel(path string, pool model.Pool, settings model.PoolSettings, today time.Time) error {
	f, err := buildWorkbook(pool, settings, today)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func buildWorkbook(pool model.Pool, settings model.PoolSettings, today time.Time) (*excelize.File, error) {
	if pool.Empty() {
		return nil, fmt.Errorf("no orders to export: %w", model.ErrEmptyPool)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", poolSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E6E6E6"}},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	urgentStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "#C80000"}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	if err := f.SetSheetRow(poolSheet, "A1", &excelHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(excelHeader))
	_ = f.SetCellStyle(poolSheet, "A1", lastCol+"1", bold)

	for i, o := range pool.Orders {
		row := i + 2
		days := engine.DaysLeft(o, today)
		urgent := days <= settings.UrgentDaysThreshold
		values := []interface{}{
			i + 1, o.ID, o.Number, o.Client, o.FacadeType,
			model.RoundArea(o.Area), o.DueDate.Format("2006-01-02"), days, yesNo(urgent),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(poolSheet, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
		if urgent {
			end, _ := excelize.CoordinatesToCellName(len(values), row)
			_ = f.SetCellStyle(poolSheet, cell, end, urgentStyle)
		}
	}

	util := engine.Report(pool, settings.SheetArea())
	summary := [][]interface{}{
		{"Path", poolPathLabel(pool)},
		{"Urgent", yesNo(pool.Urgent)},
		{"Total area m2", model.RoundArea(util.TotalArea)},
		{"Sheets", util.SheetsUsed},
		{"Waste m2", model.RoundArea(util.WasteArea)},
		{"Efficiency %", model.RoundArea(util.EfficiencyPercent)},
		{"Date", today.Format("2006-01-02")},
	}
	start := len(pool.Orders) + 3
	for i, values := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, start+i)
		if err := f.SetSheetRow(poolSheet, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
		_ = f.SetCellStyle(poolSheet, cell, cell, bold)
	}

	_ = f.SetColWidth(poolSheet, "D", "D", 28)
	_ = f.SetColWidth(poolSheet, "B", "C", 12)
	return f, nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
