package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
)

// SlackNotifier posts a run summary to a Slack incoming webhook.
type SlackNotifier struct {
	WebhookURL string
}

// NewSlackNotifier creates a Slack notifier from environment variables.
func NewSlackNotifier() *SlackNotifier {
	return &SlackNotifier{
		WebhookURL: os.Getenv("SLACK_WEBHOOK_URL"),
	}
}

func (s *SlackNotifier) Channel() string {
	return "slack"
}

func (s *SlackNotifier) Send(ctx context.Context, m *Message) error {
	if s.WebhookURL == "" {
		return fmt.Errorf("SLACK_WEBHOOK_URL not set")
	}

	payload := map[string]string{
		"text": fmt.Sprintf("*%s*\n%s", m.Subject, m.Summary),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("slack webhook status %d", resp.StatusCode)
	}
	slog.Info("slack notification sent", "run", m.RunID)
	return nil
}
