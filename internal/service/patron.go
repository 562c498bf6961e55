package service

import (
	"context"

	"librarian-backend/internal/domain"
	"librarian-backend/internal/repository"
	"librarian-backend/internal/utils"
)

type patronService struct {
	borrowRepo repository.BorrowRepository
	clock      Clock
}

func NewPatronService(borrowRepo repository.BorrowRepository) PatronService {
	return &patronService{borrowRepo: borrowRepo, clock: systemClock{}}
}

// StatusReport assembles a patron's active loans, active count, history and
// total late fees. A malformed patron ID yields a nil report, not an error;
// callers distinguish by emptiness.
func (s *patronService) StatusReport(ctx context.Context, patronID string) (*domain.PatronReport, error) {
	if !validPatronID(patronID) {
		return nil, nil
	}

	active, err := s.borrowRepo.ListActiveByPatron(ctx, patronID)
	if err != nil {
		return nil, err
	}
	count, err := s.borrowRepo.CountActiveByPatron(ctx, patronID)
	if err != nil {
		return nil, err
	}
	history, err := s.borrowRepo.ListHistoryByPatron(ctx, patronID)
	if err != nil {
		return nil, err
	}

	// Summed in cents across all overdue active loans, so no per-entry
	// rounding loss.
	now := s.clock.Now()
	var totalFees int32
	for _, loan := range active {
		if loan.IsOverdue {
			totalFees += utils.LateFeeCents(utils.DaysOverdue(loan.DueDate, now))
		}
	}

	return &domain.PatronReport{
		CurrentBorrowed:      active,
		CurrentBorrowedCount: count,
		TotalLateFeeCents:    totalFees,
		BorrowHistory:        history,
	}, nil
}
