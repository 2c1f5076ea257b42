package engine

import (
	"math"

	"github.com/piwi3910/MillPool/internal/model"
)

// Efficiency scores how well a combination tiles whole sheets.
// An empty combination scores 0 and an exact multiple of sheetArea scores 1.
// Otherwise the last, partially filled sheet counts as a fraction of a sheet
// out of the total number of sheets opened.
func Efficiency(combination []model.Order, sheetArea float64) float64 {
	if len(combination) == 0 {
		return 0
	}

	total := model.TotalArea(combination)
	sheetsNeeded := total / sheetArea
	fullSheets := math.Floor(sheetsNeeded)

	if sheetsNeeded == fullSheets {
		return 1.0
	}

	partial := (total - fullSheets*sheetArea) / sheetArea
	if fullSheets > 0 {
		return (fullSheets + partial) / (fullSheets + 1)
	}
	return partial
}

// leftover returns the unused area of the last sheet when total area is
// cut from whole sheets. It is exactly 0 when total is a multiple of sheetArea.
func leftover(total, sheetArea float64) float64 {
	sheetsNeeded := total / sheetArea
	fullSheets := math.Floor(sheetsNeeded)
	if sheetsNeeded == fullSheets {
		return 0
	}
	return sheetArea - (total - fullSheets*sheetArea)
}
