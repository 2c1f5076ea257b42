package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/MillPool/internal/model"
)

// LabelInfo holds the data encoded into each order label's QR code.
type LabelInfo struct {
	OrderID    string  `json:"id"`
	Number     string  `json:"number"`
	Client     string  `json:"client"`
	FacadeType string  `json:"facade"`
	Area       float64 `json:"area_m2"`
	DueDate    string  `json:"due"`
	Position   int     `json:"pool_position"`
	PoolSize   int     `json:"pool_size"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectLabelInfos extracts label information for every order in the pool.
func CollectLabelInfos(pool model.Pool) []LabelInfo {
	labels := make([]LabelInfo, 0, len(pool.Orders))
	for i, o := range pool.Orders {
		labels = append(labels, LabelInfo{
			OrderID:    o.ID,
			Number:     o.Number,
			Client:     o.Client,
			FacadeType: o.FacadeType,
			Area:       model.RoundArea(o.Area),
			DueDate:    o.DueDate.Format("2006-01-02"),
			Position:   i + 1,
			PoolSize:   len(pool.Orders),
		})
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded labels, one per pool order, laid
// out on a standard label sheet (Avery 5160, 3 columns x 10 rows on US Letter).
func ExportLabels(path string, pool model.Pool) error {
	if pool.Empty() {
		return fmt.Errorf("no orders to generate labels for: %w", model.ErrEmptyPool)
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range CollectLabelInfos(pool) {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Number, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.OrderID, info.Position)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Order number (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, "No. "+info.Number, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, truncate(pdf, info.Client, textW), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%s, %s m2", info.FacadeType, model.FormatArea(info.Area)), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+13)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Due %s | %d/%d", info.DueDate, info.Position, info.PoolSize), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}
