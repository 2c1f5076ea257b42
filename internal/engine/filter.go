// Package engine selects the daily milling pool from an order backlog.
//
// Selection runs in four steps: candidate filtering, urgency classification,
// pool building (urgent or optimization path) and utilization reporting. All
// functions are pure; the caller supplies the backlog snapshot and "today".
package engine

import (
	"sort"

	"github.com/piwi3910/MillPool/internal/model"
)

// Candidates returns the orders eligible for milling: not milled, not
// shipped, with a positive area and a facade type. The result is sorted
// ascending by due date and callers may rely on the first element being the
// earliest deadline. Orders sharing a due date keep their input order. The
// input slice is not modified.
func Candidates(orders []model.Order) []model.Order {
	var out []model.Order
	for _, o := range orders {
		if o.MillingDone || o.Shipped {
			continue
		}
		if !o.HasArea() || o.FacadeType == "" {
			continue
		}
		out = append(out, o)
	}
	sortByDueDate(out)
	return out
}

// sortByDueDate sorts orders ascending by due date in place, keeping the
// relative order of equal dates.
func sortByDueDate(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].DueDate.Before(orders[j].DueDate)
	})
}

// sameFacade returns the orders whose facade type equals facadeType, in input order.
func sameFacade(orders []model.Order, facadeType string) []model.Order {
	var out []model.Order
	for _, o := range orders {
		if o.FacadeType == facadeType {
			out = append(out, o)
		}
	}
	return out
}
