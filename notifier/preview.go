package notifier

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"os"
)

// previewLogLimit caps how much of the body lands in the log line.
const previewLogLimit = 200

// PreviewNotifier writes the report to a local file instead of sending it.
// Used in dry-run mode so a run can be inspected without network egress or
// mail credentials. The file is overwritten on every run.
type PreviewNotifier struct {
	Path string
}

// NewPreviewNotifier creates a preview sink at the given path.
func NewPreviewNotifier(path string) *PreviewNotifier {
	return &PreviewNotifier{Path: path}
}

func (p *PreviewNotifier) Channel() string {
	return "preview"
}

func (p *PreviewNotifier) Send(ctx context.Context, m *Message) error {
	framed := fmt.Sprintf("<!-- run %s -->\n<h1>%s</h1>\n%s", m.RunID, html.EscapeString(m.Subject), m.HTML)
	if err := os.WriteFile(p.Path, []byte(framed), 0644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}

	truncated := m.HTML
	if len(truncated) > previewLogLimit {
		truncated = truncated[:previewLogLimit] + "..."
	}
	slog.Info("preview written", "run", m.RunID, "path", p.Path, "subject", m.Subject, "body", truncated)
	return nil
}
