package service

import (
	"context"
	"fmt"
	"strings"

	"librarian-backend/internal/domain"
	"librarian-backend/internal/logger"
	"librarian-backend/internal/repository"
	"librarian-backend/internal/utils"
)

// Gateway transaction IDs carry a fixed prefix; refunds are format-checked
// client-side before the gateway is contacted.
const transactionIDPrefix = "txn_"

type paymentService struct {
	bookRepo repository.BookRepository
	feeSvc   FeeService
	gateway  PaymentGateway
}

func NewPaymentService(bookRepo repository.BookRepository, feeSvc FeeService, gateway PaymentGateway) PaymentService {
	return &paymentService{
		bookRepo: bookRepo,
		feeSvc:   feeSvc,
		gateway:  gateway,
	}
}

// PayLateFees charges the live late fee on one loan through the payment
// gateway. The gateway is never contacted unless there is a positive fee
// and the book exists.
func (s *paymentService) PayLateFees(ctx context.Context, patronID string, bookID int32) domain.PaymentOutcome {
	if !validPatronID(patronID) {
		return domain.PaymentOutcome{OK: false, Message: "Invalid patron ID. Must be exactly 6 digits."}
	}

	fee, err := s.feeSvc.LateFeeForBook(ctx, patronID, bookID)
	if err != nil {
		logger.Error("Failed to calculate late fee", "patron_id", patronID, "book_id", bookID, "error", err)
		return domain.PaymentOutcome{OK: false, Message: "Unable to calculate late fees."}
	}
	if fee.FeeCents <= 0 {
		return domain.PaymentOutcome{OK: false, Message: "No late fees to pay for this book."}
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		logger.Error("Failed to look up book", "book_id", bookID, "error", err)
		return domain.PaymentOutcome{OK: false, Message: "Book not found."}
	}
	if book == nil {
		return domain.PaymentOutcome{OK: false, Message: "Book not found."}
	}

	conf, err := s.gateway.ProcessPayment(ctx, patronID, fee.FeeCents, fmt.Sprintf("Late fees for '%s'", book.Title))
	if err != nil {
		// Transport failure, as opposed to an answered decline.
		return domain.PaymentOutcome{OK: false, Message: fmt.Sprintf("Payment processing error: %v", err)}
	}
	if !conf.Approved {
		return domain.PaymentOutcome{OK: false, Message: fmt.Sprintf("Payment failed: %s", conf.Message)}
	}

	return domain.PaymentOutcome{
		OK:            true,
		Message:       fmt.Sprintf("Payment successful! %s", conf.Message),
		TransactionID: conf.TransactionID,
	}
}

// RefundLateFeePayment refunds a previous late-fee charge. The amount can
// never exceed the per-book fee cap.
func (s *paymentService) RefundLateFeePayment(ctx context.Context, transactionID string, amountCents int32) domain.Outcome {
	if transactionID == "" || !strings.HasPrefix(transactionID, transactionIDPrefix) {
		return domain.Outcome{OK: false, Message: "Invalid transaction ID."}
	}
	if amountCents <= 0 {
		return domain.Outcome{OK: false, Message: "Refund amount must be greater than 0."}
	}
	if amountCents > utils.FeeCapCents {
		return domain.Outcome{OK: false, Message: "Refund amount exceeds maximum late fee."}
	}

	conf, err := s.gateway.RefundPayment(ctx, transactionID, amountCents)
	if err != nil {
		return domain.Outcome{OK: false, Message: fmt.Sprintf("Refund processing error: %v", err)}
	}
	if !conf.Approved {
		return domain.Outcome{OK: false, Message: fmt.Sprintf("Refund failed: %s", conf.Message)}
	}

	return domain.Outcome{OK: true, Message: conf.Message}
}
