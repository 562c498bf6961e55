package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"librarian-backend/internal/domain"
	"librarian-backend/internal/repository"
)

type borrowRepository struct {
	db *sql.DB
}

func NewBorrowRepository(db *sql.DB) repository.BorrowRepository {
	return &borrowRepository{db: db}
}

func (r *borrowRepository) Create(ctx context.Context, rec *domain.BorrowRecord) error {
	query := `INSERT INTO borrow_records (patron_id, book_id, borrow_date, due_date)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, rec.PatronID, rec.BookID, rec.BorrowDate, rec.DueDate).Scan(&rec.ID)
}

func (r *borrowRepository) SetReturnDate(ctx context.Context, patronID string, bookID int32, returnedAt time.Time) error {
	query := `UPDATE borrow_records
	          SET return_date = $3
	          WHERE patron_id = $1 AND book_id = $2 AND return_date IS NULL`
	res, err := r.db.ExecContext(ctx, query, patronID, bookID, returnedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("no active borrow record to close")
	}
	return nil
}

func (r *borrowRepository) CountActiveByPatron(ctx context.Context, patronID string) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM borrow_records WHERE patron_id = $1 AND return_date IS NULL`
	err := r.db.QueryRowContext(ctx, query, patronID).Scan(&count)
	return count, err
}

func (r *borrowRepository) ListActiveByPatron(ctx context.Context, patronID string) ([]domain.BorrowedBook, error) {
	query := `SELECT br.book_id, b.title, br.borrow_date, br.due_date, br.due_date < NOW() AS is_overdue
	          FROM borrow_records br
	          JOIN books b ON b.id = br.book_id
	          WHERE br.patron_id = $1 AND br.return_date IS NULL
	          ORDER BY br.borrow_date`
	rows, err := r.db.QueryContext(ctx, query, patronID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.BorrowedBook
	for rows.Next() {
		var bb domain.BorrowedBook
		if err := rows.Scan(&bb.BookID, &bb.Title, &bb.BorrowDate, &bb.DueDate, &bb.IsOverdue); err != nil {
			return nil, err
		}
		loans = append(loans, bb)
	}
	return loans, rows.Err()
}

func (r *borrowRepository) ListHistoryByPatron(ctx context.Context, patronID string) ([]domain.ReturnedBook, error) {
	query := `SELECT br.book_id, b.title, br.borrow_date, br.due_date, br.return_date
	          FROM borrow_records br
	          JOIN books b ON b.id = br.book_id
	          WHERE br.patron_id = $1 AND br.return_date IS NOT NULL
	          ORDER BY br.return_date DESC`
	rows, err := r.db.QueryContext(ctx, query, patronID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []domain.ReturnedBook
	for rows.Next() {
		var rb domain.ReturnedBook
		if err := rows.Scan(&rb.BookID, &rb.Title, &rb.BorrowDate, &rb.DueDate, &rb.ReturnDate); err != nil {
			return nil, err
		}
		history = append(history, rb)
	}
	return history, rows.Err()
}
