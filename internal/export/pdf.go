package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/MillPool/internal/engine"
	"github.com/piwi3910/MillPool/internal/model"
)

// orderColor represents an RGB color for an order segment.
type orderColor struct {
	R, G, B int
}

// orderColors mirrors the color scheme used in the station window.
var orderColors = []orderColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 6.0
	sheetBarH    = 10.0
)

// tableColumn describes one column of the order table.
type tableColumn struct {
	title string
	width float64
	align string
}

var orderTable = []tableColumn{
	{"#", 10, "C"},
	{"Order", 30, "L"},
	{"Client", 70, "L"},
	{"Facade", 30, "L"},
	{"Area m2", 25, "R"},
	{"Due", 30, "C"},
	{"Days left", 25, "R"},
	{"Urgent", 20, "C"},
}

// ExportPDF writes the milling work sheet for a pool to path.
func ExportPDF(path string, pool model.Pool, settings model.PoolSettings, today time.Time) error {
	pdf, err := buildPDF(pool, settings, today)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WritePDF streams the milling work sheet for a pool to w.
func WritePDF(w io.Writer, pool model.Pool, settings model.PoolSettings, today time.Time) error {
	pdf, err := buildPDF(pool, settings, today)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildPDF(pool model.Pool, settings model.PoolSettings, today time.Time) (*fpdf.Fpdf, error) {
	if pool.Empty() {
		return nil, fmt.Errorf("no orders to export: %w", model.ErrEmptyPool)
	}

	sheetArea := settings.SheetArea()
	util := engine.Report(pool, sheetArea)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Milling pool %s", today.Format("2006-01-02"))
	if pool.Urgent {
		title += " (URGENT)"
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Orders: %d | Area: %s m2 | Sheets: %d x %.2f x %.2f m | Waste: %s m2 | Efficiency: %s%% | Path: %s",
		len(pool.Orders), model.FormatArea(util.TotalArea), util.SheetsUsed,
		settings.SheetWidth, settings.SheetHeight,
		model.FormatArea(util.WasteArea), model.FormatPercent(util.EfficiencyPercent), poolPathLabel(pool))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	y := drawOrderTable(pdf, pool, settings, today, marginTop+headerHeight+10)
	drawSheets(pdf, pool, sheetArea, y+8)

	return pdf, nil
}

func poolPathLabel(pool model.Pool) string {
	if pool.Strategy != "" {
		return fmt.Sprintf("%s/%s", pool.Path, pool.Strategy)
	}
	return string(pool.Path)
}

// drawOrderTable renders the order list and returns the Y position below it.
// Rows that do not fit the page continue on a new one.
func drawOrderTable(pdf *fpdf.Fpdf, pool model.Pool, settings model.PoolSettings, today time.Time, y float64) float64 {
	header := func(y float64) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		pdf.SetXY(marginLeft, y)
		for _, c := range orderTable {
			pdf.CellFormat(c.width, rowHeight, c.title, "1", 0, c.align, true, 0, "")
		}
	}

	header(y)
	y += rowHeight
	pdf.SetFont("Helvetica", "", 9)

	for i, o := range pool.Orders {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
			header(y)
			y += rowHeight
			pdf.SetFont("Helvetica", "", 9)
		}

		days := engine.DaysLeft(o, today)
		urgent := ""
		if days <= settings.UrgentDaysThreshold {
			urgent = "yes"
			pdf.SetTextColor(200, 0, 0)
		} else {
			pdf.SetTextColor(0, 0, 0)
		}

		col := orderColors[i%len(orderColors)]
		cells := []string{
			fmt.Sprintf("%d", i+1),
			o.Number,
			o.Client,
			o.FacadeType,
			model.FormatArea(o.Area),
			o.DueDate.Format("2006-01-02"),
			fmt.Sprintf("%d", days),
			urgent,
		}
		pdf.SetXY(marginLeft, y)
		for j, c := range orderTable {
			fill := false
			if j == 0 {
				pdf.SetFillColor(col.R, col.G, col.B)
				fill = true
			}
			pdf.CellFormat(c.width, rowHeight, truncate(pdf, cells[j], c.width-2), "1", 0, c.align, fill, 0, "")
		}
		y += rowHeight
	}

	pdf.SetTextColor(0, 0, 0)
	return y
}

// drawSheets renders every opened sheet as a horizontal bar filled with the
// colored order segments.
func drawSheets(pdf *fpdf.Fpdf, pool model.Pool, sheetArea, y float64) {
	sheets := LayoutSheets(pool, sheetArea)
	barW := pageWidth - marginLeft - marginRight - 25

	for i, segs := range sheets {
		if y+sheetBarH > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
		}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(25, sheetBarH, fmt.Sprintf("Sheet %d", i+1), "", 0, "L", false, 0, "")

		x := marginLeft + 25
		// Sheet background (MDF color)
		pdf.SetFillColor(210, 180, 140)
		pdf.SetDrawColor(100, 100, 100)
		pdf.SetLineWidth(0.4)
		pdf.Rect(x, y, barW, sheetBarH, "FD")

		pdf.SetLineWidth(0.2)
		pdf.SetDrawColor(30, 30, 30)
		for _, s := range segs {
			w := barW * s.Area / sheetArea
			col := orderColors[s.OrderIndex%len(orderColors)]
			pdf.SetFillColor(col.R, col.G, col.B)
			pdf.Rect(x, y, w, sheetBarH, "FD")
			if w > 12 {
				pdf.SetFont("Helvetica", "", 7)
				pdf.SetXY(x, y)
				pdf.CellFormat(w, sheetBarH, truncate(pdf, pool.Orders[s.OrderIndex].Number, w-1), "", 0, "C", false, 0, "")
			}
			x += w
		}
		y += sheetBarH + 3
	}
}

// truncate shortens s with an ellipsis until it fits width.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
