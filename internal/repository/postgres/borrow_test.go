package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"librarian-backend/internal/domain"
	"librarian-backend/internal/repository/postgres"
)

func TestBorrowRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBorrowRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rec := &domain.BorrowRecord{
			PatronID:   "666666",
			BookID:     1,
			BorrowDate: now,
			DueDate:    now.AddDate(0, 0, 14),
		}

		mock.ExpectQuery("INSERT INTO borrow_records").
			WithArgs(rec.PatronID, rec.BookID, rec.BorrowDate, rec.DueDate).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		err := repo.Create(ctx, rec)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), rec.ID)
	})
}

func TestBorrowRepository_SetReturnDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBorrowRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		returnedAt := time.Now()
		mock.ExpectExec("UPDATE borrow_records").
			WithArgs("666666", int32(1), returnedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetReturnDate(ctx, "666666", 1, returnedAt)
		assert.NoError(t, err)
	})

	t.Run("No active record to close", func(t *testing.T) {
		returnedAt := time.Now()
		mock.ExpectExec("UPDATE borrow_records").
			WithArgs("666666", int32(1), returnedAt).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetReturnDate(ctx, "666666", 1, returnedAt)
		assert.Error(t, err)
	})
}

func TestBorrowRepository_CountActiveByPatron(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBorrowRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM borrow_records").
			WithArgs("666666").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountActiveByPatron(ctx, "666666")
		assert.NoError(t, err)
		assert.Equal(t, int32(3), count)
	})
}

func TestBorrowRepository_ListActiveByPatron(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBorrowRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{"book_id", "title", "borrow_date", "due_date", "is_overdue"}).
			AddRow(1, "Dune", now.AddDate(0, 0, -20), now.AddDate(0, 0, -6), true).
			AddRow(2, "Hyperion", now.AddDate(0, 0, -3), now.AddDate(0, 0, 11), false)

		mock.ExpectQuery("SELECT (.+) FROM borrow_records br").
			WithArgs("666666").
			WillReturnRows(rows)

		loans, err := repo.ListActiveByPatron(ctx, "666666")
		assert.NoError(t, err)
		assert.Len(t, loans, 2)
		assert.Equal(t, "Dune", loans[0].Title)
		assert.True(t, loans[0].IsOverdue)
		assert.False(t, loans[1].IsOverdue)
	})
}

func TestBorrowRepository_ListHistoryByPatron(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBorrowRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{"book_id", "title", "borrow_date", "due_date", "return_date"}).
			AddRow(3, "Neuromancer", now.AddDate(0, 0, -40), now.AddDate(0, 0, -26), now.AddDate(0, 0, -25))

		mock.ExpectQuery("SELECT (.+) FROM borrow_records br").
			WithArgs("666666").
			WillReturnRows(rows)

		history, err := repo.ListHistoryByPatron(ctx, "666666")
		assert.NoError(t, err)
		assert.Len(t, history, 1)
		assert.Equal(t, "Neuromancer", history[0].Title)
		assert.Equal(t, int32(3), history[0].BookID)
	})
}
