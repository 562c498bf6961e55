package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"librarian-backend/internal/domain"
	"librarian-backend/internal/logger"
	"librarian-backend/internal/utils"
)

type emailService struct {
	apiKey         string
	fromEmail      string
	fromName       string
	librarianEmail string
}

func NewEmailService(apiKey, fromEmail, fromName, librarianEmail string) EmailService {
	return &emailService{
		apiKey:         apiKey,
		fromEmail:      fromEmail,
		fromName:       fromName,
		librarianEmail: librarianEmail,
	}
}

// SendOverdueSummary mails the nightly overdue sweep to the librarian
// address configured for this deployment.
func (s *emailService) SendOverdueSummary(ctx context.Context, overdue []domain.OverdueLoan) error {
	subject := fmt.Sprintf("Overdue loans report: %d outstanding", len(overdue))

	var plain strings.Builder
	var html strings.Builder
	plain.WriteString("Overdue loans:\n\n")
	html.WriteString("<html><body><h2>Overdue Loans</h2><table border=\"1\"><tr><th>Patron</th><th>Book</th><th>Due</th><th>Days overdue</th><th>Fee</th></tr>")
	for _, loan := range overdue {
		due := loan.DueDate.Format("2006-01-02")
		fee := utils.FormatCents(loan.FeeCents)
		fmt.Fprintf(&plain, "patron %s - %q (book id=%d), due %s, %d days overdue, fee $%s\n",
			loan.PatronID, loan.Title, loan.BookID, due, loan.DaysOverdue, fee)
		fmt.Fprintf(&html, "<tr><td>%s</td><td>%s (id=%d)</td><td>%s</td><td>%d</td><td>$%s</td></tr>",
			loan.PatronID, loan.Title, loan.BookID, due, loan.DaysOverdue, fee)
	}
	html.WriteString("</table></body></html>")

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("Librarian", s.librarianEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plain.String(), html.String())

	logger.ExternalServiceCall("sendgrid", "SendOverdueSummary", "recipient", s.librarianEmail, "overdue_count", len(overdue))
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "SendOverdueSummary", err)
		return fmt.Errorf("failed to send overdue summary: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "SendOverdueSummary", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "SendOverdueSummary", nil)
	return nil
}
