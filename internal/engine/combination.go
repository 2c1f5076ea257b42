package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/MillPool/internal/model"
)

// Strategy names, in evaluation order.
const (
	StrategyAreaDesc      = "area_desc"
	StrategyDueDate       = "due_date"
	StrategyComplementary = "complementary"
)

// strategy packs orders into at most maxArea of material.
type strategy struct {
	name string
	pack func(orders []model.Order, maxArea, sheetArea float64) []model.Order
}

// strategies is evaluated in order; on equal efficiency the earlier entry wins.
var strategies = []strategy{
	{name: StrategyAreaDesc, pack: packByAreaDesc},
	{name: StrategyDueDate, pack: packByDueDate},
	{name: StrategyComplementary, pack: packComplementary},
}

// FindBestCombination runs every packing strategy over same-facade orders and
// returns the combination with the highest Efficiency together with the
// strategy name. A later strategy replaces the current best only when its
// score is strictly higher. An empty input yields a nil combination and an
// empty name.
func FindBestCombination(orders []model.Order, sheetArea float64, maxSheets int) ([]model.Order, string) {
	maxArea := sheetArea * float64(maxSheets)

	var best []model.Order
	var bestName string
	bestEfficiency := 0.0

	for _, s := range strategies {
		combination := s.pack(orders, maxArea, sheetArea)
		eff := Efficiency(combination, sheetArea)
		if eff > bestEfficiency {
			best = combination
			bestName = s.name
			bestEfficiency = eff
		}
	}

	return best, bestName
}

// packByAreaDesc adds orders largest first while they fit.
func packByAreaDesc(orders []model.Order, maxArea, _ float64) []model.Order {
	sorted := make([]model.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Area > sorted[j].Area
	})
	return packGreedy(sorted, maxArea)
}

// packByDueDate adds orders earliest deadline first while they fit.
func packByDueDate(orders []model.Order, maxArea, _ float64) []model.Order {
	sorted := make([]model.Order, len(orders))
	copy(sorted, orders)
	sortByDueDate(sorted)
	return packGreedy(sorted, maxArea)
}

// packGreedy takes each order in a single pass if it still fits under maxArea.
// Orders that do not fit are skipped and later smaller ones may still be taken.
func packGreedy(sorted []model.Order, maxArea float64) []model.Order {
	var combination []model.Order
	var total float64
	for _, o := range sorted {
		if total+o.Area <= maxArea {
			combination = append(combination, o)
			total += o.Area
		}
	}
	return combination
}

// packComplementary seeds the combination with the first order of the input
// and then repeatedly adds the remaining order that leaves the least unused
// area on the last opened sheet. Among equal leftovers the first one scanned
// wins. It stops when no remaining order fits under maxArea.
func packComplementary(orders []model.Order, maxArea, sheetArea float64) []model.Order {
	if len(orders) == 0 {
		return nil
	}

	combination := []model.Order{orders[0]}
	total := orders[0].Area
	remaining := make([]model.Order, len(orders)-1)
	copy(remaining, orders[1:])

	for len(remaining) > 0 && total < maxArea {
		bestIdx := -1
		bestWaste := math.Inf(1)

		for i, o := range remaining {
			if total+o.Area > maxArea {
				continue
			}
			waste := leftover(total+o.Area, sheetArea)
			if waste < bestWaste {
				bestWaste = waste
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			break
		}
		combination = append(combination, remaining[bestIdx])
		total += remaining[bestIdx].Area
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return combination
}
