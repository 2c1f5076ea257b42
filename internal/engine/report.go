package engine

import (
	"math"

	"github.com/piwi3910/MillPool/internal/model"
)

// Report computes sheet usage, waste area and efficiency percentage for a
// finalized pool. An empty pool reports all zeros.
func Report(pool model.Pool, sheetArea float64) model.Utilization {
	if pool.Empty() || sheetArea <= 0 {
		return model.Utilization{}
	}

	total := pool.TotalArea()
	sheetsNeeded := total / sheetArea
	fullSheets := math.Floor(sheetsNeeded)
	partial := sheetsNeeded - fullSheets

	u := model.Utilization{
		TotalArea:    total,
		SheetsNeeded: sheetsNeeded,
		FullSheets:   int(fullSheets),
	}
	if partial > 0 {
		u.SheetsUsed = int(fullSheets) + 1
		u.WasteArea = sheetArea - (total - fullSheets*sheetArea)
		u.EfficiencyPercent = total / ((fullSheets + 1) * sheetArea) * 100
	} else {
		u.SheetsUsed = int(fullSheets)
		u.WasteArea = 0
		u.EfficiencyPercent = 100
	}
	return u
}

// SheetFill returns the used area of each opened sheet when the pool's total
// area is laid out sheet by sheet. Every sheet but the last is full.
func SheetFill(pool model.Pool, sheetArea float64) []float64 {
	u := Report(pool, sheetArea)
	fills := make([]float64, 0, u.SheetsUsed)
	for i := 0; i < u.FullSheets; i++ {
		fills = append(fills, sheetArea)
	}
	if u.SheetsUsed > u.FullSheets {
		fills = append(fills, sheetArea-u.WasteArea)
	}
	return fills
}
