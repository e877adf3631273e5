package scrapemachine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alextrastero/scrapemachine/booking"
	"github.com/alextrastero/scrapemachine/ladder"
	"github.com/alextrastero/scrapemachine/notifier"
	"github.com/alextrastero/scrapemachine/report"
	"github.com/alextrastero/scrapemachine/slots"
)

// Runner wires the pipeline for one facility: fetch the window, filter free
// slots, aggregate, render, deliver.
type Runner struct {
	Config  Config
	Client  *booking.Client
	Ladder  *ladder.Scraper // nil when no ladder source is configured
	Manager *notifier.Manager
}

// RunReport summarizes one completed run.
type RunReport struct {
	RunID     string
	Dates     int
	Fetched   int
	Failed    int
	FreeSlots int
	Delivered bool
}

// NewRunner builds a runner from config. In dry-run mode the only delivery
// channel is the local preview file; otherwise email is always registered and
// SMS/Slack join in when their credentials are configured.
func NewRunner(cfg Config) *Runner {
	r := &Runner{
		Config:  cfg,
		Client:  booking.NewClient(cfg.BaseURL, cfg.FacilityID),
		Manager: notifier.NewManager(),
	}
	if cfg.LadderURL != "" {
		r.Ladder = ladder.NewScraper(cfg.LadderURL, cfg.LadderTableID)
	}

	if cfg.DryRun {
		path := cfg.PreviewPath
		if path == "" {
			path = PreviewPath
		}
		r.Manager.Register(notifier.NewPreviewNotifier(path))
		return r
	}

	r.Manager.Register(notifier.NewEmailNotifier())
	if sms := notifier.NewSMSNotifier(); sms.Configured() {
		r.Manager.Register(sms)
	}
	if sl := notifier.NewSlackNotifier(); sl.WebhookURL != "" {
		r.Manager.Register(sl)
	}
	return r
}

// Run executes one complete batch. Every stage degrades instead of failing:
// the worst case is a delivered report saying no data was available.
func (r *Runner) Run(ctx context.Context) RunReport {
	cfg := r.Config
	runID := uuid.New().String()
	log := slog.With("run", runID)

	dates := DateWindow(time.Now().In(cfg.Location), cfg.HorizonDays, cfg.SkipWeekends)
	log.Info("run started", "facility", cfg.FacilityID, "dates", len(dates), "dry_run", cfg.DryRun)

	days, outcomes := r.Client.FetchWindow(ctx, dates)
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	log.Info("fetch settled", "ok", len(days), "failed", failed)

	filter := slots.Filter{
		Courts:   cfg.Courts,
		Times:    cfg.Times,
		Bypass:   cfg.DryRun,
		Location: cfg.Location,
	}
	free, problems := filter.Apply(days)

	matrix, total := slots.BuildMatrix(free)

	ladderHTML := ""
	if r.Ladder != nil {
		ladderHTML = r.Ladder.Fetch(ctx)
	}

	html, err := report.Render(matrix, r.columns(matrix), total, ladderHTML, problems)
	if err != nil {
		// The template only fails on a broken Data shape; report the run anyway.
		log.Error("render failed", "error", err)
		html = fmt.Sprintf("<p>%s</p>", report.EmptyNotice)
	}

	msg := &notifier.Message{
		RunID:   runID,
		Subject: fmt.Sprintf(SubjectFormat, total),
		HTML:    html,
		Summary: fmt.Sprintf("%d free slots across %d queried days (%d fetches failed).", total, len(dates), failed),
	}

	delivered := false
	for _, res := range r.Manager.SendAll(ctx, msg) {
		if res.Err != nil {
			log.Warn("delivery failed", "channel", res.Channel, "error", res.Err)
			continue
		}
		delivered = true
	}

	rep := RunReport{
		RunID:     runID,
		Dates:     len(dates),
		Fetched:   len(days),
		Failed:    failed,
		FreeSlots: total,
		Delivered: delivered,
	}
	log.Info("run finished", "free_slots", total, "delivered", delivered)
	return rep
}

// columns fixes the report column order: the configured court list when it
// names the admitted courts, plus any court that slipped through outside it
// (deny polarity, dry-run bypass) appended in sorted order.
func (r *Runner) columns(m slots.Matrix) []string {
	var cols []string
	if r.Config.Courts.Polarity == slots.Allow {
		cols = append(cols, r.Config.Courts.Names...)
	}
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		seen[c] = true
	}
	for _, c := range m.Courts() {
		if !seen[c] {
			cols = append(cols, c)
		}
	}
	return cols
}
