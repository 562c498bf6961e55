package service

import (
	"context"
	"fmt"

	"librarian-backend/internal/domain"
	"librarian-backend/internal/repository"
	"librarian-backend/internal/utils"
)

type feeService struct {
	borrowRepo repository.BorrowRepository
	clock      Clock
}

func NewFeeService(borrowRepo repository.BorrowRepository) FeeService {
	return &feeService{borrowRepo: borrowRepo, clock: systemClock{}}
}

// LateFeeForBook reports the live fee on the patron's active loan of the
// book. Absent loans and on-time loans both carry a zero fee; the status
// string says which. The error return is reserved for store failures.
func (s *feeService) LateFeeForBook(ctx context.Context, patronID string, bookID int32) (domain.FeeResult, error) {
	active, err := s.borrowRepo.ListActiveByPatron(ctx, patronID)
	if err != nil {
		return domain.FeeResult{}, err
	}

	for _, loan := range active {
		if loan.BookID != bookID {
			continue
		}
		if !loan.IsOverdue {
			return domain.FeeResult{FeeCents: 0, DaysOverdue: 0, Status: "Not overdue."}, nil
		}
		days := utils.DaysOverdue(loan.DueDate, s.clock.Now())
		fee := utils.LateFeeCents(days)
		return domain.FeeResult{
			FeeCents:    fee,
			DaysOverdue: days,
			Status:      fmt.Sprintf("Overdue. Late fee of $%s is currently applied.", utils.FormatCents(fee)),
		}, nil
	}

	return domain.FeeResult{FeeCents: 0, DaysOverdue: 0, Status: "No active borrow record found for this patron and book."}, nil
}
