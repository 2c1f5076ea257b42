package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/piwi3910/MillPool/internal/model"
)

var testToday = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// buildTestPool creates a realistic optimized pool of milled facades.
func buildTestPool() model.Pool {
	return model.Pool{
		Orders: []model.Order{
			{ID: "a1", Number: "1001", Client: "Kitchen Studio", DueDate: testToday.AddDate(0, 0, 2), FacadeType: model.FacadeMilled, Area: 4.0},
			{ID: "b2", Number: "1002", Client: "Wardrobe Works", DueDate: testToday.AddDate(0, 0, 6), FacadeType: model.FacadeMilled, Area: 3.2},
			{ID: "c3", Number: "1003", Client: "A very long client name that will not fit into the table cell", DueDate: testToday.AddDate(0, 0, 9), FacadeType: model.FacadeMilled, Area: 1.5},
		},
		Path:     model.PathOptimized,
		Strategy: "due_date",
		Urgent:   true,
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pool.pdf")

	err := ExportPDF(path, buildTestPool(), model.DefaultPoolSettings(), testToday)
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyPool(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	err := ExportPDF(path, model.Pool{Path: model.PathNone}, model.DefaultPoolSettings(), testToday)
	if !errors.Is(err, model.ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("no file should be written for an empty pool")
	}
}

func TestExportPDF_ManyOrdersSpanPages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many.pdf")

	pool := model.Pool{Path: model.PathUrgent, Urgent: true}
	for i := 0; i < 60; i++ {
		pool.Orders = append(pool.Orders, model.NewOrder("N", "Client", testToday, model.FacadeFlat, 0.3))
	}

	if err := ExportPDF(path, pool, model.DefaultPoolSettings(), testToday); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}

func TestWritePDF_Stream(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, buildTestPool(), model.DefaultPoolSettings(), testToday); err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestExportPDF_OversizedSingleOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oversized.pdf")

	pool := model.Pool{
		Orders: []model.Order{{ID: "big", Number: "2001", Client: "Hotel", DueDate: testToday.AddDate(0, 0, 20), FacadeType: model.FacadeVeneer, Area: 30}},
		Path:   model.PathOversized,
	}
	if err := ExportPDF(path, pool, model.DefaultPoolSettings(), testToday); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
}
