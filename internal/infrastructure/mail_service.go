package infrastructure

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers account lifecycle emails. Delivery is best-effort: callers
// log failures and never surface them to the client.
type Mailer interface {
	SendWelcome(ctx context.Context, email, name string) error
	SendCancelation(ctx context.Context, email, name string) error
}

type SendGridMailer struct {
	sender string
	client *sendgrid.Client
}

func NewSendGridMailer(apiKey, sender string) *SendGridMailer {
	return &SendGridMailer{
		sender: sender,
		client: sendgrid.NewSendClient(apiKey),
	}
}

func (m *SendGridMailer) SendWelcome(ctx context.Context, email, name string) error {
	subject := "Thanks for joining in!"
	body := fmt.Sprintf("Welcome to the app, %s. Let me know how you get along with the app.", name)
	return m.send(ctx, email, name, subject, body)
}

func (m *SendGridMailer) SendCancelation(ctx context.Context, email, name string) error {
	subject := "Sorry to see you go!"
	body := fmt.Sprintf("Goodbye, %s. I hope to see you back sometime soon.", name)
	return m.send(ctx, email, name, subject, body)
}

func (m *SendGridMailer) send(ctx context.Context, email, name, subject, body string) error {
	from := mail.NewEmail("Task App", m.sender)
	to := mail.NewEmail(name, email)
	message := mail.NewSingleEmail(from, subject, to, body, fmt.Sprintf("<p>%s</p>", body))

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}

// NoopMailer discards all mail. Used in tests and when no API key is set.
type NoopMailer struct{}

func (NoopMailer) SendWelcome(context.Context, string, string) error     { return nil }
func (NoopMailer) SendCancelation(context.Context, string, string) error { return nil }
