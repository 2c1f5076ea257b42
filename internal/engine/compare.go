package engine

import (
	"time"

	"github.com/piwi3910/MillPool/internal/model"
)

// StrategyResult holds one packing strategy's combination and score.
type StrategyResult struct {
	Name       string        `json:"name"`
	Orders     []model.Order `json:"orders"`
	TotalArea  float64       `json:"total_area"`
	Efficiency float64       `json:"efficiency"`
	Winner     bool          `json:"winner"`
}

// CompareStrategies runs every packing strategy on the same orders and
// returns their results in evaluation order. The entry FindBestCombination
// would pick is marked as Winner.
func CompareStrategies(orders []model.Order, sheetArea float64, maxSheets int) []StrategyResult {
	maxArea := sheetArea * float64(maxSheets)
	results := make([]StrategyResult, 0, len(strategies))

	winner := -1
	bestEfficiency := 0.0
	for i, s := range strategies {
		combination := s.pack(orders, maxArea, sheetArea)
		eff := Efficiency(combination, sheetArea)
		if eff > bestEfficiency {
			bestEfficiency = eff
			winner = i
		}
		results = append(results, StrategyResult{
			Name:       s.name,
			Orders:     combination,
			TotalArea:  model.TotalArea(combination),
			Efficiency: eff,
		})
	}

	if winner >= 0 {
		results[winner].Winner = true
	}
	return results
}

// ExplainPool compares strategies over the orders the selector would search
// on the optimization path. It returns nil when the selector would not run
// the search: no candidates, an urgent order present, or an oversized
// earliest order.
func (s *Selector) ExplainPool(orders []model.Order, today time.Time) []StrategyResult {
	candidates := Candidates(orders)
	if len(candidates) == 0 {
		return nil
	}
	if len(urgentOrders(candidates, today, s.Settings.UrgentDaysThreshold)) > 0 {
		return nil
	}
	first := candidates[0]
	if first.Area >= s.Settings.LargeOrderThreshold() {
		return nil
	}
	sameType := sameFacade(candidates, first.FacadeType)
	return CompareStrategies(sameType, s.Settings.SheetArea(), s.Settings.MaxSheetsPerPool)
}
