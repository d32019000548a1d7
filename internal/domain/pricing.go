package domain

import "math"

// DiscountRate is the fixed event discount applied to every reservation.
const DiscountRate = 0.20

// RoundCents rounds a reais amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Subtotal sums quantity times unit price over the items.
func Subtotal(items []ReservationItem) float64 {
	var sum float64
	for _, it := range items {
		sum += float64(it.Quantity) * it.UnitPrice
	}
	return RoundCents(sum)
}

// Totals computes subtotal, discount and total for the items. The discount
// is subtotal times DiscountRate rounded to cents; the total is the
// remainder.
func Totals(items []ReservationItem) (subtotal, discount, total float64) {
	subtotal = Subtotal(items)
	discount = RoundCents(subtotal * DiscountRate)
	total = RoundCents(subtotal - discount)
	return subtotal, discount, total
}

// TotalQuantity sums the item quantities.
func TotalQuantity(items []ReservationItem) int {
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
