package models

// SimplifiedDebt is a suggested payment that helps clear a group's balances
// with the fewest transfers. Derived output, never persisted.
type SimplifiedDebt struct {
	// From is the member who should pay.
	From string

	// To is the member who should receive.
	To string

	// Amount is the suggested payment, rounded to the cent.
	Amount float64
}
