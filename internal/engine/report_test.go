package engine

import (
	"testing"

	"github.com/piwi3910/MillPool/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_PartialSheet(t *testing.T) {
	sheet := model.DefaultPoolSettings().SheetArea()
	pool := model.Pool{Orders: []model.Order{{Area: 2.0}, {Area: 1.5}}}

	u := Report(pool, sheet)

	assert.InDelta(t, 3.5, u.TotalArea, 1e-9)
	assert.Equal(t, 0, u.FullSheets)
	assert.Equal(t, 1, u.SheetsUsed)
	assert.InDelta(t, 2.1375, u.WasteArea, 1e-9)
	assert.InDelta(t, 62.08, u.EfficiencyPercent, 0.01)
}

func TestReport_SeveralSheets(t *testing.T) {
	sheet := model.DefaultPoolSettings().SheetArea()

	u := Report(model.Pool{Orders: []model.Order{{Area: 7.0}}}, sheet)

	assert.Equal(t, 1, u.FullSheets)
	assert.Equal(t, 2, u.SheetsUsed)
	assert.InDelta(t, 4.275, u.WasteArea, 1e-9)
	assert.InDelta(t, 7.0/(2*5.6375)*100, u.EfficiencyPercent, 1e-9)
}

func TestReport_PerfectFill(t *testing.T) {
	sheet := model.DefaultPoolSettings().SheetArea()
	pool := model.Pool{Orders: []model.Order{{Area: sheet}, {Area: sheet}}}

	u := Report(pool, sheet)

	assert.Equal(t, 2, u.FullSheets)
	assert.Equal(t, 2, u.SheetsUsed)
	assert.Equal(t, 0.0, u.WasteArea)
	assert.Equal(t, 100.0, u.EfficiencyPercent)
}

func TestReport_Empty(t *testing.T) {
	u := Report(model.Pool{}, 5.6375)

	assert.Equal(t, 0.0, u.WasteArea)
	assert.Equal(t, 0.0, u.EfficiencyPercent)
}

func TestSheetFill(t *testing.T) {
	fills := SheetFill(model.Pool{Orders: []model.Order{{Area: 12}, {Area: 3}}}, 10)

	require.Len(t, fills, 2)
	assert.Equal(t, 10.0, fills[0])
	assert.InDelta(t, 5.0, fills[1], 1e-9)

	assert.Empty(t, SheetFill(model.Pool{}, 10))
}
