package services

import (
	"context"
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	fromName := os.Getenv("SENDGRID_FROM_NAME")

	client := sendgrid.NewSendClient(apiKey)

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// Verify checks that the service is configured well enough to attempt
// sends. It makes no network call; SendGrid has no cheap handshake, so a
// broken key only surfaces on the first real send.
func (s *EmailService) Verify() error {
	if s.fromEmail == "" {
		return fmt.Errorf("SENDGRID_FROM_EMAIL is not set")
	}
	if os.Getenv("SENDGRID_API_KEY") == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not set")
	}
	return nil
}

// Send delivers a single email. One attempt, no retry; the caller bounds
// the call with ctx.
func (s *EmailService) Send(ctx context.Context, toEmail, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", toEmail)

	plainContent := body
	htmlContent := fmt.Sprintf("<p>%s</p>", body)

	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email to %s: %d", toEmail, response.StatusCode)
	}

	return nil
}
