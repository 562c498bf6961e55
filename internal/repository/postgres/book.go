package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"librarian-backend/internal/domain"
	"librarian-backend/internal/repository"
)

type bookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	query := `INSERT INTO books (title, author, isbn, total_copies, available_copies, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, b.Title, b.Author, b.ISBN, b.TotalCopies, b.AvailableCopies, time.Now()).Scan(&b.ID)
}

func (r *bookRepository) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	b := &domain.Book{}
	query := `SELECT id, title, author, isbn, total_copies, available_copies FROM books WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.TotalCopies, &b.AvailableCopies)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookRepository) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	b := &domain.Book{}
	query := `SELECT id, title, author, isbn, total_copies, available_copies FROM books WHERE isbn = $1`
	err := r.db.QueryRowContext(ctx, query, isbn).Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.TotalCopies, &b.AvailableCopies)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookRepository) List(ctx context.Context) ([]domain.Book, error) {
	query := `SELECT id, title, author, isbn, total_copies, available_copies FROM books ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.TotalCopies, &b.AvailableCopies); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *bookRepository) UpdateAvailability(ctx context.Context, id int32, delta int32) error {
	// The WHERE clause keeps available_copies inside [0, total_copies];
	// an out-of-range adjustment matches no row and is reported as an error.
	query := `UPDATE books
	          SET available_copies = available_copies + $2
	          WHERE id = $1
	            AND available_copies + $2 >= 0
	            AND available_copies + $2 <= total_copies`
	res, err := r.db.ExecContext(ctx, query, id, delta)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("availability update rejected: book missing or copies out of range")
	}
	return nil
}
