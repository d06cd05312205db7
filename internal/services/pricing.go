package services

// Price derivation for order rows. Prices are integer currency units and
// discount rates are fractions in [0,1]; derived values truncate toward zero,
// never round.

// DiscountedUnitPrice returns the unit price after the discount rate is
// applied. A zero rate returns the unit price untouched, so undiscounted
// orders stay exact integer arithmetic.
func DiscountedUnitPrice(unitPrice int64, discountRate float64) int64 {
	if discountRate == 0 {
		return unitPrice
	}
	return int64(float64(unitPrice) * (1 - discountRate))
}

// LineTotal returns the total for quantity units. Truncation applies to the
// final product, not to the discounted unit price first.
func LineTotal(unitPrice int64, discountRate float64, quantity int) int64 {
	if discountRate == 0 {
		return unitPrice * int64(quantity)
	}
	return int64(float64(unitPrice) * (1 - discountRate) * float64(quantity))
}

// DiscountPercent converts the stored fraction to the integer percent the
// admin views display.
func DiscountPercent(discountRate float64) int {
	return int(100 * discountRate)
}
