package jobs

import (
	"context"
	"time"

	"librarian-backend/internal/domain"
	"librarian-backend/internal/logger"
	"librarian-backend/internal/utils"
)

// SendOverdueNotices sweeps all active overdue loans, logs them with their
// live fees, and mails a summary to the configured librarian address.
func (jr *JobRunner) SendOverdueNotices() {
	jr.runWithRecovery("SendOverdueNotices", func() {
		ctx := context.Background()

		query := `
			SELECT br.patron_id, br.book_id, b.title, br.due_date
			FROM borrow_records br
			JOIN books b ON b.id = br.book_id
			WHERE br.return_date IS NULL
			  AND br.due_date < NOW()
			ORDER BY br.due_date
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to query overdue loans", "error", err)
			return
		}
		defer rows.Close()

		now := time.Now()
		var overdue []domain.OverdueLoan
		for rows.Next() {
			var loan domain.OverdueLoan
			if err := rows.Scan(&loan.PatronID, &loan.BookID, &loan.Title, &loan.DueDate); err != nil {
				logger.Error("Failed to scan overdue loan", "error", err)
				continue
			}
			loan.DaysOverdue = utils.DaysOverdue(loan.DueDate, now)
			loan.FeeCents = utils.LateFeeCents(loan.DaysOverdue)
			overdue = append(overdue, loan)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue loans", "error", err)
			return
		}

		if len(overdue) == 0 {
			logger.Info("No overdue loans found")
			return
		}

		logger.Info("Found overdue loans", "count", len(overdue))
		for _, loan := range overdue {
			logger.Debug("Overdue loan",
				"patron_id", loan.PatronID,
				"book_id", loan.BookID,
				"due_date", loan.DueDate.Format("2006-01-02"),
				"days_overdue", loan.DaysOverdue,
				"fee_cents", loan.FeeCents)
		}

		if err := jr.services.Email.SendOverdueSummary(ctx, overdue); err != nil {
			logger.Error("Failed to send overdue summary", "error", err)
			return
		}
		logger.Info("Overdue summary sent", "count", len(overdue))
	})
}
