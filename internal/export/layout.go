// Package export renders milling pools into operator documents: a PDF work
// sheet, QR-coded order labels, an Excel pool sheet and a utilization chart.
package export

import (
	"github.com/piwi3910/MillPool/internal/model"
)

// Segment is the part of one order cut from one sheet.
type Segment struct {
	OrderIndex int // Index into the pool's orders
	Area       float64
}

// LayoutSheets distributes the pool's orders over consecutive sheets in pool
// order. An order that does not fit the rest of a sheet continues on the
// next one. The last sheet may be partially filled.
func LayoutSheets(pool model.Pool, sheetArea float64) [][]Segment {
	if pool.Empty() || sheetArea <= 0 {
		return nil
	}

	var sheets [][]Segment
	var current []Segment
	free := sheetArea
	const eps = 1e-9

	for i, o := range pool.Orders {
		remaining := o.Area
		for remaining > eps {
			take := remaining
			if take > free {
				take = free
			}
			current = append(current, Segment{OrderIndex: i, Area: take})
			remaining -= take
			free -= take
			if free <= eps {
				sheets = append(sheets, current)
				current = nil
				free = sheetArea
			}
		}
	}
	if len(current) > 0 {
		sheets = append(sheets, current)
	}
	return sheets
}
