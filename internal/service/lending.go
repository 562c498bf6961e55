package service

import (
	"context"
	"fmt"

	"librarian-backend/internal/domain"
	"librarian-backend/internal/logger"
	"librarian-backend/internal/repository"
	"librarian-backend/internal/utils"
)

const maxActiveLoans = 5

type lendingService struct {
	bookRepo   repository.BookRepository
	borrowRepo repository.BorrowRepository
	feeSvc     FeeService
	clock      Clock
}

func NewLendingService(bookRepo repository.BookRepository, borrowRepo repository.BorrowRepository, feeSvc FeeService) LendingService {
	return &lendingService{
		bookRepo:   bookRepo,
		borrowRepo: borrowRepo,
		feeSvc:     feeSvc,
		clock:      systemClock{},
	}
}

func (s *lendingService) Borrow(ctx context.Context, patronID string, bookID int32) domain.Outcome {
	if !validPatronID(patronID) {
		return domain.Outcome{OK: false, Message: "Invalid patron ID. Must be exactly 6 digits."}
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		logger.Error("Failed to look up book", "book_id", bookID, "error", err)
		return domain.Outcome{OK: false, Message: "Database error occurred while reading the catalog."}
	}
	if book == nil {
		return domain.Outcome{OK: false, Message: "Book not found."}
	}
	if book.AvailableCopies <= 0 {
		return domain.Outcome{OK: false, Message: "This book is currently not available."}
	}

	count, err := s.borrowRepo.CountActiveByPatron(ctx, patronID)
	if err != nil {
		logger.Error("Failed to count active loans", "patron_id", patronID, "error", err)
		return domain.Outcome{OK: false, Message: "Database error occurred while reading borrow records."}
	}
	if count >= maxActiveLoans {
		return domain.Outcome{OK: false, Message: "You have reached the maximum borrowing limit of 5 books."}
	}

	// A patron holds at most one active loan per book.
	active, err := s.borrowRepo.ListActiveByPatron(ctx, patronID)
	if err != nil {
		logger.Error("Failed to list active loans", "patron_id", patronID, "error", err)
		return domain.Outcome{OK: false, Message: "Database error occurred while reading borrow records."}
	}
	for _, loan := range active {
		if loan.BookID == bookID {
			return domain.Outcome{OK: false, Message: "You have already borrowed this book."}
		}
	}

	borrowDate := s.clock.Now()
	dueDate := borrowDate.AddDate(0, 0, domain.LoanPeriodDays)
	rec := &domain.BorrowRecord{
		PatronID:   patronID,
		BookID:     bookID,
		BorrowDate: borrowDate,
		DueDate:    dueDate,
	}

	// The two writes below are independent; a failure of the second is
	// reported without undoing the first (store stays authoritative about
	// partial state).
	if err := s.borrowRepo.Create(ctx, rec); err != nil {
		logger.Error("Failed to create borrow record", "patron_id", patronID, "book_id", bookID, "error", err)
		return domain.Outcome{OK: false, Message: "Database error occurred while creating borrow record."}
	}
	if err := s.bookRepo.UpdateAvailability(ctx, bookID, -1); err != nil {
		logger.Error("Failed to decrement availability", "book_id", bookID, "error", err)
		return domain.Outcome{OK: false, Message: "Database error occurred while updating book availability."}
	}

	return domain.Outcome{
		OK:      true,
		Message: fmt.Sprintf("Successfully borrowed %q. Due date: %s.", book.Title, dueDate.Format("2006-01-02")),
	}
}

func (s *lendingService) Return(ctx context.Context, patronID string, bookID int32) domain.Outcome {
	active, err := s.borrowRepo.ListActiveByPatron(ctx, patronID)
	if err != nil {
		logger.Error("Failed to list active loans", "patron_id", patronID, "error", err)
		return domain.Outcome{OK: false, Message: "Database error occurred while reading borrow records."}
	}
	if len(active) == 0 {
		return domain.Outcome{OK: false, Message: "Error, no active borrow record found for this patron."}
	}

	for _, loan := range active {
		if loan.BookID != bookID {
			continue
		}

		// Fee is computed before the record is closed; once return_date is
		// set the active record disappears from the fee lookup.
		fee, err := s.feeSvc.LateFeeForBook(ctx, patronID, bookID)
		if err != nil {
			logger.Error("Failed to calculate late fee", "patron_id", patronID, "book_id", bookID, "error", err)
			return domain.Outcome{OK: false, Message: "Database error occurred while reading borrow records."}
		}

		// Same independent-failure policy as Borrow: no rollback of the
		// return date if the availability update fails.
		if err := s.borrowRepo.SetReturnDate(ctx, patronID, bookID, s.clock.Now()); err != nil {
			logger.Error("Failed to set return date", "patron_id", patronID, "book_id", bookID, "error", err)
			return domain.Outcome{OK: false, Message: "Database error occurred while updating book return date."}
		}
		if err := s.bookRepo.UpdateAvailability(ctx, bookID, 1); err != nil {
			logger.Error("Failed to increment availability", "book_id", bookID, "error", err)
			return domain.Outcome{OK: false, Message: "Database error occurred while updating book availability."}
		}

		if fee.FeeCents > 0 {
			return domain.Outcome{
				OK:      true,
				Message: fmt.Sprintf("Book with id=%d successfully returned. Late fee $%s for being %d days overdue.", bookID, utils.FormatCents(fee.FeeCents), fee.DaysOverdue),
			}
		}
		return domain.Outcome{
			OK:      true,
			Message: fmt.Sprintf("Book with id=%d returned successfully. No late fees.", bookID),
		}
	}

	return domain.Outcome{OK: false, Message: fmt.Sprintf("No active borrow record found for this patron and book with id=%d.", bookID)}
}
