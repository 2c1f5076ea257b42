package model

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	due := time.Date(2025, 3, 14, 17, 45, 0, 0, time.UTC)
	o := NewOrder("A-101", "Ivanov", due, FacadeFlat, 2.5)

	assert.Len(t, o.ID, 8)
	assert.Equal(t, "A-101", o.Number)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), o.DueDate)
	assert.True(t, o.HasArea())
	assert.False(t, o.MillingDone)
	assert.False(t, o.Shipped)
}

func TestNewOrder_UniqueIDs(t *testing.T) {
	a := NewOrder("1", "", time.Now(), FacadeFlat, 1)
	b := NewOrder("2", "", time.Now(), FacadeFlat, 1)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestHasArea(t *testing.T) {
	assert.False(t, Order{Area: 0}.HasArea())
	assert.False(t, Order{Area: -1}.HasArea())
	assert.False(t, Order{Area: math.NaN()}.HasArea())
	assert.True(t, Order{Area: 0.01}.HasArea())
}

func TestSetStage(t *testing.T) {
	var o Order
	for _, st := range Stages {
		require.True(t, o.SetStage(st, true), "stage %s", st)
		assert.True(t, o.StageDone(st), "stage %s", st)
	}
	assert.True(t, o.MillingDone)
	assert.True(t, o.Shipped)

	assert.False(t, o.SetStage(Stage("painting"), true))
	assert.False(t, o.StageDone(Stage("painting")))
}

func TestParseStage(t *testing.T) {
	st, ok := ParseStage("polishing")
	assert.True(t, ok)
	assert.Equal(t, StagePolishing, st)

	_, ok = ParseStage("Polishing")
	assert.False(t, ok)
}

func TestDate(t *testing.T) {
	loc := time.FixedZone("MSK", 3*3600)
	in := time.Date(2025, 6, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Date(in))
}

func TestPoolHelpers(t *testing.T) {
	p := Pool{Orders: []Order{{ID: "a", Area: 1.5}, {ID: "b", Area: 2.0}}}

	assert.False(t, p.Empty())
	assert.InDelta(t, 3.5, p.TotalArea(), 1e-9)
	assert.Equal(t, []string{"a", "b"}, p.IDs())
	assert.True(t, p.Contains("b"))
	assert.False(t, p.Contains("c"))
	assert.True(t, Pool{}.Empty())
}

func TestDefaultPoolSettings(t *testing.T) {
	s := DefaultPoolSettings()

	assert.Equal(t, 3, s.UrgentDaysThreshold)
	assert.Equal(t, 4, s.MaxSheetsPerPool)
	assert.InDelta(t, 5.6375, s.SheetArea(), 1e-9)
	assert.InDelta(t, 22.55, s.LargeOrderThreshold(), 1e-9)
}

func TestPoolSettingsNormalize(t *testing.T) {
	s := PoolSettings{UrgentDaysThreshold: 0, SheetWidth: -1}.Normalize()

	assert.Equal(t, 0, s.UrgentDaysThreshold, "zero threshold is a valid setting")
	assert.Equal(t, 2.75, s.SheetWidth)
	assert.Equal(t, 2.05, s.SheetHeight)
	assert.Equal(t, 4, s.MaxSheetsPerPool)

	s = PoolSettings{UrgentDaysThreshold: -2}.Normalize()
	assert.Equal(t, 3, s.UrgentDaysThreshold, "negative threshold falls back to the default")
}

func TestAppConfigNormalize(t *testing.T) {
	c := AppConfig{Theme: "neon"}.Normalize()

	assert.Equal(t, "system", c.Theme)
	assert.Equal(t, ":8080", c.ListenAddr)
	assert.Equal(t, DefaultPoolSettings().MaxSheetsPerPool, c.Pool.MaxSheetsPerPool)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "3.50", FormatArea(3.5))
	assert.Equal(t, "2.14", FormatArea(2.1375))
	assert.Equal(t, "62.1", FormatPercent(62.0842))
	assert.Equal(t, 5.64, RoundArea(5.6375))
}

func TestOpError(t *testing.T) {
	err := &OpError{Op: "backlog.get", Kind: KindNotFound, Err: ErrNotFound}
	wrapped := fmt.Errorf("loading pool: %w", err)

	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindIO))
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, "backlog.get: not_found: not found", err.Error())

	withPath := &OpError{Op: "backlog.load", Kind: KindIO, Path: "/tmp/x.json"}
	assert.Equal(t, "backlog.load: io (path=/tmp/x.json)", withPath.Error())

	var nilErr *OpError
	assert.Equal(t, "<nil>", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}
