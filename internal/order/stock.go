package order

// CanDebit reports whether a stock debit of need units may proceed with have
// units on hand. The oversell policy lets counter sales drive stock negative;
// with it off the debit must be fully covered.
func CanDebit(have, need int, allowNegative bool) bool {
	return allowNegative || have >= need
}

// OutstandingQuantity is the portion of an ordered line still with the
// customer: the sold quantity less units already taken back by approved or
// completed returns. Cancellation restores exactly this amount and reopening
// a cancelled order debits it again.
func OutstandingQuantity(ordered, returned int) int {
	if returned >= ordered {
		return 0
	}
	return ordered - returned
}
