package domain

import "time"

// LoanPeriodDays is the standard lending period. DueDate is always
// BorrowDate plus this many days.
const LoanPeriodDays = 14

// BorrowRecord tracks one loan of one book. A nil ReturnDate means the
// record is active (the book is still out).
type BorrowRecord struct {
	ID         int32      `json:"id"`
	PatronID   string     `json:"patron_id"`
	BookID     int32      `json:"book_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

// BorrowedBook is the store's view of an active loan, enriched with the
// book title and the overdue flag computed against the current time.
type BorrowedBook struct {
	BookID     int32     `json:"book_id"`
	Title      string    `json:"title"`
	BorrowDate time.Time `json:"borrow_date"`
	DueDate    time.Time `json:"due_date"`
	IsOverdue  bool      `json:"is_overdue"`
}

// ReturnedBook is the store's view of a completed loan.
type ReturnedBook struct {
	BookID     int32     `json:"book_id"`
	Title      string    `json:"title"`
	BorrowDate time.Time `json:"borrow_date"`
	DueDate    time.Time `json:"due_date"`
	ReturnDate time.Time `json:"return_date"`
}

// OverdueLoan is one row of the nightly overdue sweep, carrying the live
// fee at the time of the sweep.
type OverdueLoan struct {
	PatronID    string    `json:"patron_id"`
	BookID      int32     `json:"book_id"`
	Title       string    `json:"title"`
	DueDate     time.Time `json:"due_date"`
	DaysOverdue int       `json:"days_overdue"`
	FeeCents    int32     `json:"fee_cents"`
}
