package postgres

import (
	"database/sql"

	"librarian-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookRepository
	repository.BorrowRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:               db,
		BookRepository:   NewBookRepository(db),
		BorrowRepository: NewBorrowRepository(db),
	}
}
