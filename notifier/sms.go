package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSNotifier sends a one-line run summary over Twilio SMS. The full report
// stays on the email channel; this only carries the headline count.
type SMSNotifier struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	ToNumber   string
}

// NewSMSNotifier creates an SMS notifier from environment variables.
func NewSMSNotifier() *SMSNotifier {
	return &SMSNotifier{
		AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		FromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		ToNumber:   os.Getenv("NOTIFY_TO_NUMBER"),
	}
}

// Configured reports whether every Twilio credential is present.
func (s *SMSNotifier) Configured() bool {
	return s.AccountSID != "" && s.AuthToken != "" && s.FromNumber != "" && s.ToNumber != ""
}

func (s *SMSNotifier) Channel() string {
	return "sms"
}

func (s *SMSNotifier) Send(ctx context.Context, m *Message) error {
	if !s.Configured() {
		return fmt.Errorf("twilio credentials not fully configured")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: s.AccountSID,
		Password: s.AuthToken,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(s.ToNumber)
	params.SetFrom(s.FromNumber)
	params.SetBody(fmt.Sprintf("%s\n%s", m.Subject, m.Summary))

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	slog.Info("sms sent", "run", m.RunID, "to", s.ToNumber, "sid", sid)
	return nil
}
