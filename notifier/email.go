package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailNotifier sends the report via the SendGrid API.
type EmailNotifier struct {
	APIKey    string
	FromEmail string
	FromName  string
	ToEmail   string
	ToName    string
}

// NewEmailNotifier creates an email notifier from environment variables.
func NewEmailNotifier() *EmailNotifier {
	return &EmailNotifier{
		APIKey:    os.Getenv("SENDGRID_API_KEY"),
		FromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		FromName:  getEnv("SENDGRID_FROM_NAME", "scrapemachine"),
		ToEmail:   os.Getenv("NOTIFY_TO_EMAIL"),
		ToName:    os.Getenv("NOTIFY_TO_NAME"),
	}
}

func (e *EmailNotifier) Channel() string {
	return "email"
}

// Send delivers the report as a single HTML email and logs the provider's
// message id on success.
func (e *EmailNotifier) Send(ctx context.Context, m *Message) error {
	if e.APIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY not set")
	}
	if e.FromEmail == "" || e.ToEmail == "" {
		return fmt.Errorf("sender or recipient address not set")
	}

	from := mail.NewEmail(e.FromName, e.FromEmail)
	to := mail.NewEmail(e.ToName, e.ToEmail)
	message := mail.NewSingleEmail(from, m.Subject, to, m.Summary, m.HTML)

	client := sendgrid.NewSendClient(e.APIKey)
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}

	messageID := ""
	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		messageID = ids[0]
	}
	slog.Info("email sent", "run", m.RunID, "to", e.ToEmail, "subject", m.Subject, "message_id", messageID)
	return nil
}
