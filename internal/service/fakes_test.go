package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"librarian-backend/internal/domain"
)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// fakeBookRepo is an in-memory BookRepository with scriptable failures.
type fakeBookRepo struct {
	books     map[int32]*domain.Book
	nextID    int32
	createErr error
	getErr    error
	listErr   error
	availErr  error
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[int32]*domain.Book{}, nextID: 1}
}

func (f *fakeBookRepo) add(title, author, isbn string, total, available int32) *domain.Book {
	b := &domain.Book{
		ID:              f.nextID,
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		TotalCopies:     total,
		AvailableCopies: available,
	}
	f.books[b.ID] = b
	f.nextID++
	return b
}

func (f *fakeBookRepo) Create(ctx context.Context, b *domain.Book) error {
	if f.createErr != nil {
		return f.createErr
	}
	b.ID = f.nextID
	f.nextID++
	stored := *b
	f.books[b.ID] = &stored
	return nil
}

func (f *fakeBookRepo) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b, ok := f.books[id]
	if !ok {
		return nil, nil
	}
	found := *b
	return &found, nil
}

func (f *fakeBookRepo) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, b := range f.books {
		if b.ISBN == isbn {
			found := *b
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeBookRepo) List(ctx context.Context) ([]domain.Book, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]int32, 0, len(f.books))
	for id := range f.books {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	books := make([]domain.Book, 0, len(ids))
	for _, id := range ids {
		books = append(books, *f.books[id])
	}
	return books, nil
}

func (f *fakeBookRepo) UpdateAvailability(ctx context.Context, id int32, delta int32) error {
	if f.availErr != nil {
		return f.availErr
	}
	b, ok := f.books[id]
	if !ok {
		return errors.New("availability update rejected: book missing or copies out of range")
	}
	next := b.AvailableCopies + delta
	if next < 0 || next > b.TotalCopies {
		return errors.New("availability update rejected: book missing or copies out of range")
	}
	b.AvailableCopies = next
	return nil
}

// fakeBorrowRepo is an in-memory BorrowRepository. Overdue flags are
// computed against the fake's fixed now, mirroring the SQL view.
type fakeBorrowRepo struct {
	records    []*domain.BorrowRecord
	books      *fakeBookRepo
	now        time.Time
	nextID     int32
	createErr  error
	returnErr  error
	countErr   error
	listErr    error
	historyErr error
}

func newFakeBorrowRepo(books *fakeBookRepo, now time.Time) *fakeBorrowRepo {
	return &fakeBorrowRepo{books: books, now: now, nextID: 1}
}

func (f *fakeBorrowRepo) addActive(patronID string, bookID int32, borrowDate, dueDate time.Time) {
	f.records = append(f.records, &domain.BorrowRecord{
		ID:         f.nextID,
		PatronID:   patronID,
		BookID:     bookID,
		BorrowDate: borrowDate,
		DueDate:    dueDate,
	})
	f.nextID++
}

func (f *fakeBorrowRepo) addReturned(patronID string, bookID int32, borrowDate, dueDate, returnDate time.Time) {
	f.records = append(f.records, &domain.BorrowRecord{
		ID:         f.nextID,
		PatronID:   patronID,
		BookID:     bookID,
		BorrowDate: borrowDate,
		DueDate:    dueDate,
		ReturnDate: &returnDate,
	})
	f.nextID++
}

func (f *fakeBorrowRepo) titleOf(bookID int32) string {
	if b, ok := f.books.books[bookID]; ok {
		return b.Title
	}
	return ""
}

func (f *fakeBorrowRepo) Create(ctx context.Context, rec *domain.BorrowRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	rec.ID = f.nextID
	f.nextID++
	stored := *rec
	f.records = append(f.records, &stored)
	return nil
}

func (f *fakeBorrowRepo) SetReturnDate(ctx context.Context, patronID string, bookID int32, returnedAt time.Time) error {
	if f.returnErr != nil {
		return f.returnErr
	}
	for _, rec := range f.records {
		if rec.PatronID == patronID && rec.BookID == bookID && rec.ReturnDate == nil {
			t := returnedAt
			rec.ReturnDate = &t
			return nil
		}
	}
	return errors.New("no active borrow record to close")
}

func (f *fakeBorrowRepo) CountActiveByPatron(ctx context.Context, patronID string) (int32, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	var count int32
	for _, rec := range f.records {
		if rec.PatronID == patronID && rec.ReturnDate == nil {
			count++
		}
	}
	return count, nil
}

func (f *fakeBorrowRepo) ListActiveByPatron(ctx context.Context, patronID string) ([]domain.BorrowedBook, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var loans []domain.BorrowedBook
	for _, rec := range f.records {
		if rec.PatronID == patronID && rec.ReturnDate == nil {
			loans = append(loans, domain.BorrowedBook{
				BookID:     rec.BookID,
				Title:      f.titleOf(rec.BookID),
				BorrowDate: rec.BorrowDate,
				DueDate:    rec.DueDate,
				IsOverdue:  rec.DueDate.Before(f.now),
			})
		}
	}
	return loans, nil
}

func (f *fakeBorrowRepo) ListHistoryByPatron(ctx context.Context, patronID string) ([]domain.ReturnedBook, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	var history []domain.ReturnedBook
	for _, rec := range f.records {
		if rec.PatronID == patronID && rec.ReturnDate != nil {
			history = append(history, domain.ReturnedBook{
				BookID:     rec.BookID,
				Title:      f.titleOf(rec.BookID),
				BorrowDate: rec.BorrowDate,
				DueDate:    rec.DueDate,
				ReturnDate: *rec.ReturnDate,
			})
		}
	}
	return history, nil
}

// mockGateway scripts one confirmation/error pair and records calls.
type mockGateway struct {
	conf *domain.PaymentConfirmation
	err  error

	processCalls    int
	refundCalls     int
	lastPatronID    string
	lastAmountCents int32
	lastDescription string
	lastTxnID       string
}

func (m *mockGateway) ProcessPayment(ctx context.Context, patronID string, amountCents int32, description string) (*domain.PaymentConfirmation, error) {
	m.processCalls++
	m.lastPatronID = patronID
	m.lastAmountCents = amountCents
	m.lastDescription = description
	return m.conf, m.err
}

func (m *mockGateway) RefundPayment(ctx context.Context, transactionID string, amountCents int32) (*domain.PaymentConfirmation, error) {
	m.refundCalls++
	m.lastTxnID = transactionID
	m.lastAmountCents = amountCents
	return m.conf, m.err
}
