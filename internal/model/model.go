package model

import (
	"time"

	"github.com/google/uuid"
)

// Facade types known to the workshop. Orders may carry any other tag; the
// selector only compares tags for equality.
const (
	FacadeMilled = "milled"
	FacadeFlat   = "flat"
	FacadeVeneer = "veneer"
)

// FacadeTypes lists the built-in facade types in display order.
var FacadeTypes = []string{FacadeMilled, FacadeFlat, FacadeVeneer}

// Stage identifies one production step of an order.
type Stage string

const (
	StageMilling   Stage = "milling"
	StagePolishing Stage = "polishing"
	StagePackaging Stage = "packaging"
	StageShipment  Stage = "shipment"
	StagePaid      Stage = "paid"
)

// Stages lists every stage in production order.
var Stages = []Stage{StageMilling, StagePolishing, StagePackaging, StageShipment, StagePaid}

// ParseStage converts a stage name to a Stage. It returns false for unknown names.
func ParseStage(s string) (Stage, bool) {
	for _, st := range Stages {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Order is one facade order moving through the workshop.
type Order struct {
	ID         string    `json:"id" yaml:"id"`
	Number     string    `json:"number" yaml:"number"`
	Client     string    `json:"client" yaml:"client"`
	DueDate    time.Time `json:"due_date" yaml:"due_date"`
	FacadeType string    `json:"facade_type" yaml:"facade_type"`
	Area       float64   `json:"area" yaml:"area"` // m², zero when unknown

	MillingDone   bool `json:"milling" yaml:"milling"`
	PolishingDone bool `json:"polishing" yaml:"polishing"`
	PackagingDone bool `json:"packaging" yaml:"packaging"`
	Shipped       bool `json:"shipment" yaml:"shipment"`
	Paid          bool `json:"paid" yaml:"paid"`
}

// NewOrder creates an order with a fresh short ID. The due date is truncated
// to its calendar day.
func NewOrder(number, client string, due time.Time, facadeType string, area float64) Order {
	return Order{
		ID:         uuid.New().String()[:8],
		Number:     number,
		Client:     client,
		DueDate:    Date(due),
		FacadeType: facadeType,
		Area:       area,
	}
}

// HasArea reports whether the order has a usable material area.
func (o Order) HasArea() bool {
	return o.Area > 0
}

// StageDone reports whether the given stage is completed.
func (o Order) StageDone(st Stage) bool {
	switch st {
	case StageMilling:
		return o.MillingDone
	case StagePolishing:
		return o.PolishingDone
	case StagePackaging:
		return o.PackagingDone
	case StageShipment:
		return o.Shipped
	case StagePaid:
		return o.Paid
	}
	return false
}

// SetStage marks a stage as done or not done. Unknown stages are ignored and
// reported with false.
func (o *Order) SetStage(st Stage, done bool) bool {
	switch st {
	case StageMilling:
		o.MillingDone = done
	case StagePolishing:
		o.PolishingDone = done
	case StagePackaging:
		o.PackagingDone = done
	case StageShipment:
		o.Shipped = done
	case StagePaid:
		o.Paid = done
	default:
		return false
	}
	return true
}

// Date returns the calendar day of t as UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC calendar day.
func Today() time.Time {
	return Date(time.Now().UTC())
}

// PoolPath records which branch of the pool builder produced a pool.
type PoolPath string

const (
	PathNone      PoolPath = "none"      // No candidates
	PathUrgent    PoolPath = "urgent"    // Built from urgent orders, no optimization
	PathOversized PoolPath = "oversized" // Single order larger than the sheet cap
	PathOptimized PoolPath = "optimized" // Best combination search result
	PathFallback  PoolPath = "fallback"  // Search found nothing, earliest order alone
)

// Pool is the work selected for one milling cycle. It is recomputed on every
// call and never persisted.
type Pool struct {
	Orders   []Order  `json:"orders"`
	Path     PoolPath `json:"path"`
	Strategy string   `json:"strategy,omitempty"` // Winning strategy on the optimized path
	Urgent   bool     `json:"is_urgent"`          // At least one order is urgent
}

// Empty reports whether the pool has no work.
func (p Pool) Empty() bool {
	return len(p.Orders) == 0
}

// TotalArea returns the summed area of all orders in the pool.
func (p Pool) TotalArea() float64 {
	return TotalArea(p.Orders)
}

// IDs returns the order IDs in pool order.
func (p Pool) IDs() []string {
	ids := make([]string, 0, len(p.Orders))
	for _, o := range p.Orders {
		ids = append(ids, o.ID)
	}
	return ids
}

// Contains reports whether an order with the given ID is in the pool.
func (p Pool) Contains(id string) bool {
	for _, o := range p.Orders {
		if o.ID == id {
			return true
		}
	}
	return false
}

// TotalArea sums the areas of the given orders in slice order.
func TotalArea(orders []Order) float64 {
	var total float64
	for _, o := range orders {
		total += o.Area
	}
	return total
}

// Utilization summarises how a pool uses the raw material sheets.
type Utilization struct {
	TotalArea         float64 `json:"total_area"`
	SheetsNeeded      float64 `json:"sheets_needed"`
	FullSheets        int     `json:"full_sheets"`
	SheetsUsed        int     `json:"sheets"` // Full sheets plus the partially filled one
	WasteArea         float64 `json:"waste"`
	EfficiencyPercent float64 `json:"efficiency"`
}

// OrderUrgency is the per-order urgency shown on station screens.
type OrderUrgency struct {
	IsUrgent bool `json:"is_urgent"`
	DaysLeft int  `json:"days_left"`
}
