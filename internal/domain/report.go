package domain

// PatronReport aggregates a patron's standing: active loans, how many are
// out, every completed loan, and the total late fees accrued across the
// overdue active loans.
type PatronReport struct {
	CurrentBorrowed      []BorrowedBook `json:"current_borrowed"`
	CurrentBorrowedCount int32          `json:"current_borrowed_count"`
	TotalLateFeeCents    int32          `json:"total_late_fee_cents"`
	BorrowHistory        []ReturnedBook `json:"borrow_history"`
}
