package engine

import (
	"math"
	"time"

	"github.com/piwi3910/MillPool/internal/model"
)

// DaysLeft returns the number of whole calendar days from today to the
// order's due date. It is negative for overdue orders.
func DaysLeft(order model.Order, today time.Time) int {
	diff := model.Date(order.DueDate).Sub(model.Date(today))
	return int(math.Round(diff.Hours() / 24))
}

// IsUrgent reports whether the order is due within thresholdDays of today.
func IsUrgent(order model.Order, today time.Time, thresholdDays int) bool {
	return DaysLeft(order, today) <= thresholdDays
}

// Urgency returns the urgency of every order keyed by order ID.
func Urgency(orders []model.Order, today time.Time, thresholdDays int) map[string]model.OrderUrgency {
	out := make(map[string]model.OrderUrgency, len(orders))
	for _, o := range orders {
		days := DaysLeft(o, today)
		out[o.ID] = model.OrderUrgency{
			IsUrgent: days <= thresholdDays,
			DaysLeft: days,
		}
	}
	return out
}

// urgentOrders returns the urgent orders of a deadline-sorted slice, keeping its order.
func urgentOrders(orders []model.Order, today time.Time, thresholdDays int) []model.Order {
	var out []model.Order
	for _, o := range orders {
		if IsUrgent(o, today, thresholdDays) {
			out = append(out, o)
		}
	}
	return out
}
