package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"librarian-backend/internal/domain"
	"librarian-backend/internal/logger"
	"librarian-backend/internal/repository"
)

type catalogService struct {
	bookRepo repository.BookRepository
}

func NewCatalogService(bookRepo repository.BookRepository) CatalogService {
	return &catalogService{bookRepo: bookRepo}
}

// AddBook validates in a fixed order; the first failing check decides the
// message. Messages are contract literals.
func (s *catalogService) AddBook(ctx context.Context, title, author, isbn string, totalCopies int) domain.Outcome {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Outcome{OK: false, Message: "Title is required."}
	}
	if utf8.RuneCountInString(title) > 200 {
		return domain.Outcome{OK: false, Message: "Title must be less than 200 characters."}
	}

	author = strings.TrimSpace(author)
	if author == "" {
		return domain.Outcome{OK: false, Message: "Author is required."}
	}
	if utf8.RuneCountInString(author) > 100 {
		return domain.Outcome{OK: false, Message: "Author must be less than 100 characters."}
	}

	// Any non-digit, including signs and spaces, is rejected before the
	// length check.
	if !allDigits(isbn) {
		return domain.Outcome{OK: false, Message: "ISBN must be exactly 13 number-only digits."}
	}
	if len(isbn) != 13 {
		return domain.Outcome{OK: false, Message: "ISBN must be exactly 13 digits."}
	}

	if totalCopies <= 0 {
		return domain.Outcome{OK: false, Message: "Total copies must be a positive integer."}
	}

	existing, err := s.bookRepo.GetByISBN(ctx, isbn)
	if err != nil {
		logger.Error("Failed to check for existing ISBN", "isbn", isbn, "error", err)
		return domain.Outcome{OK: false, Message: "Database error occurred while adding the book."}
	}
	if existing != nil {
		return domain.Outcome{OK: false, Message: "A book with this ISBN already exists."}
	}

	book := &domain.Book{
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		TotalCopies:     int32(totalCopies),
		AvailableCopies: int32(totalCopies),
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		logger.Error("Failed to insert book", "isbn", isbn, "error", err)
		return domain.Outcome{OK: false, Message: "Database error occurred while adding the book."}
	}

	return domain.Outcome{OK: true, Message: fmt.Sprintf("Book %q has been successfully added to the catalog.", title)}
}

// Search supports three modes: "isbn" is an exact match on the trimmed
// term; "title" and "author" are case-insensitive substring matches. A
// blank term returns the whole catalog except in isbn mode. Unknown modes
// match nothing. Results keep store order.
func (s *catalogService) Search(ctx context.Context, term, mode string) ([]domain.Book, error) {
	q := strings.TrimSpace(term)

	if mode == "isbn" {
		book, err := s.bookRepo.GetByISBN(ctx, q)
		if err != nil {
			return nil, err
		}
		if book == nil {
			return []domain.Book{}, nil
		}
		return []domain.Book{*book}, nil
	}

	all, err := s.bookRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if q == "" {
		return all, nil
	}

	lower := strings.ToLower(q)
	var matches []domain.Book
	switch mode {
	case "title":
		for _, b := range all {
			if strings.Contains(strings.ToLower(b.Title), lower) {
				matches = append(matches, b)
			}
		}
	case "author":
		for _, b := range all {
			if strings.Contains(strings.ToLower(b.Author), lower) {
				matches = append(matches, b)
			}
		}
	default:
		return []domain.Book{}, nil
	}
	return matches, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
