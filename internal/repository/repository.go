package repository

import (
	"context"
	"time"

	"librarian-backend/internal/domain"
)

type BookRepository interface {
	// Create persists a new book and assigns its store ID.
	Create(ctx context.Context, book *domain.Book) error
	// GetByID returns (nil, nil) when no book has the given ID.
	GetByID(ctx context.Context, id int32) (*domain.Book, error)
	// GetByISBN returns (nil, nil) when no book has the given ISBN.
	GetByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	List(ctx context.Context) ([]domain.Book, error)
	// UpdateAvailability adjusts available_copies by delta. The update is
	// refused (error) when it would push the count below zero or above
	// total_copies.
	UpdateAvailability(ctx context.Context, id int32, delta int32) error
}

type BorrowRepository interface {
	// Create persists a new active borrow record and assigns its store ID.
	Create(ctx context.Context, rec *domain.BorrowRecord) error
	// SetReturnDate closes the patron's active record for the book.
	SetReturnDate(ctx context.Context, patronID string, bookID int32, returnedAt time.Time) error
	CountActiveByPatron(ctx context.Context, patronID string) (int32, error)
	ListActiveByPatron(ctx context.Context, patronID string) ([]domain.BorrowedBook, error)
	ListHistoryByPatron(ctx context.Context, patronID string) ([]domain.ReturnedBook, error)
}
