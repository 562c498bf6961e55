package service

import (
	"context"

	"librarian-backend/internal/domain"
)

type CatalogService interface {
	AddBook(ctx context.Context, title, author, isbn string, totalCopies int) domain.Outcome
	Search(ctx context.Context, term, mode string) ([]domain.Book, error)
}

type LendingService interface {
	Borrow(ctx context.Context, patronID string, bookID int32) domain.Outcome
	Return(ctx context.Context, patronID string, bookID int32) domain.Outcome
}

type FeeService interface {
	LateFeeForBook(ctx context.Context, patronID string, bookID int32) (domain.FeeResult, error)
}

type PatronService interface {
	// StatusReport returns nil (no error) for a malformed patron ID.
	StatusReport(ctx context.Context, patronID string) (*domain.PatronReport, error)
}

type PaymentService interface {
	PayLateFees(ctx context.Context, patronID string, bookID int32) domain.PaymentOutcome
	RefundLateFeePayment(ctx context.Context, transactionID string, amountCents int32) domain.Outcome
}

// PaymentGateway is the external payment collaborator. A decline comes back
// as a confirmation with Approved=false; a transport failure is an error.
type PaymentGateway interface {
	ProcessPayment(ctx context.Context, patronID string, amountCents int32, description string) (*domain.PaymentConfirmation, error)
	RefundPayment(ctx context.Context, transactionID string, amountCents int32) (*domain.PaymentConfirmation, error)
}

type EmailService interface {
	SendOverdueSummary(ctx context.Context, overdue []domain.OverdueLoan) error
}

// validPatronID reports whether id is exactly 6 numeric digits.
func validPatronID(id string) bool {
	if len(id) != 6 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
