package engine

import (
	"time"

	"github.com/piwi3910/MillPool/internal/model"
)

// Selector builds the daily milling pool.
type Selector struct {
	Settings model.PoolSettings

	// search is the combination search used on the optimization path.
	// Nil means FindBestCombination.
	search func(orders []model.Order, sheetArea float64, maxSheets int) ([]model.Order, string)
}

// New creates a selector for the given settings, normalizing zero fields.
func New(settings model.PoolSettings) *Selector {
	return &Selector{
		Settings: settings.Normalize(),
		search:   FindBestCombination,
	}
}

// Select returns the pool to mill next from a backlog snapshot.
//
// With no candidates the pool is empty. If any candidate is urgent, the pool
// is built from urgent orders only and no waste optimization runs. Otherwise
// the best combination of orders sharing the facade type of the earliest
// deadline is chosen. An order whose area reaches the sheet cap on its own
// always forms a pool by itself.
func (s *Selector) Select(orders []model.Order, today time.Time) model.Pool {
	candidates := Candidates(orders)
	if len(candidates) == 0 {
		return model.Pool{Path: model.PathNone}
	}

	var pool model.Pool
	if urgent := urgentOrders(candidates, today, s.Settings.UrgentDaysThreshold); len(urgent) > 0 {
		pool = s.urgentPool(urgent)
	} else {
		pool = s.optimizedPool(candidates)
	}

	for _, o := range pool.Orders {
		if IsUrgent(o, today, s.Settings.UrgentDaysThreshold) {
			pool.Urgent = true
			break
		}
	}
	return pool
}

// urgentPool fills the pool from the most urgent order and urgent orders of
// the same facade type, in deadline order, until the next one would exceed
// the sheet cap.
func (s *Selector) urgentPool(urgent []model.Order) model.Pool {
	limit := s.Settings.LargeOrderThreshold()
	first := urgent[0]
	if first.Area >= limit {
		return model.Pool{Orders: []model.Order{first}, Path: model.PathOversized}
	}

	var selected []model.Order
	var total float64
	for _, o := range sameFacade(urgent, first.FacadeType) {
		if total+o.Area > limit {
			break
		}
		selected = append(selected, o)
		total += o.Area
	}
	return model.Pool{Orders: selected, Path: model.PathUrgent}
}

// optimizedPool searches the best sheet-filling combination among orders of
// the earliest deadline's facade type.
func (s *Selector) optimizedPool(candidates []model.Order) model.Pool {
	first := candidates[0]
	if first.Area >= s.Settings.LargeOrderThreshold() {
		return model.Pool{Orders: []model.Order{first}, Path: model.PathOversized}
	}

	search := s.search
	if search == nil {
		search = FindBestCombination
	}
	sameType := sameFacade(candidates, first.FacadeType)
	best, name := search(sameType, s.Settings.SheetArea(), s.Settings.MaxSheetsPerPool)
	if len(best) == 0 {
		return model.Pool{Orders: []model.Order{first}, Path: model.PathFallback}
	}
	return model.Pool{Orders: best, Path: model.PathOptimized, Strategy: name}
}
