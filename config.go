// Package scrapemachine fetches court availability for the days ahead,
// filters it against configured court and start-time lists, and mails the
// result as an HTML report.
package scrapemachine

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alextrastero/scrapemachine/slots"
)

// Config is the immutable per-run configuration. Components receive it at
// construction; nothing reads ambient state after startup.
type Config struct {
	BaseURL    string
	FacilityID string

	Courts slots.ListConfig // court filter; with Allow polarity its order also fixes report column order
	Times  slots.ListConfig // admitted start times, HH:MM 24-hour

	HorizonDays  int
	SkipWeekends bool
	Location     *time.Location

	DryRun      bool   // bypass filters and write a local preview instead of sending
	PreviewPath string // dry-run artifact, overwritten each run

	LadderURL     string // optional standings page; empty disables the section
	LadderTableID string
}

// LoadConfig assembles a Config from the environment. Mail and chat
// credentials are read by the notifier channels themselves.
func LoadConfig() (Config, error) {
	cfg := Config{
		BaseURL:       os.Getenv("BOOKING_API_URL"),
		FacilityID:    os.Getenv("BOOKING_FACILITY_ID"),
		HorizonDays:   DefaultHorizonDays,
		PreviewPath:   PreviewPath,
		LadderURL:     os.Getenv("LADDER_URL"),
		LadderTableID: os.Getenv("LADDER_TABLE_ID"),
	}
	if cfg.BaseURL == "" {
		return cfg, fmt.Errorf("BOOKING_API_URL not set")
	}
	if cfg.FacilityID == "" {
		return cfg, fmt.Errorf("BOOKING_FACILITY_ID not set")
	}

	courtPolarity, err := slots.ParsePolarity(os.Getenv("COURT_FILTER_MODE"))
	if err != nil {
		return cfg, err
	}
	timePolarity, err := slots.ParsePolarity(os.Getenv("TIME_FILTER_MODE"))
	if err != nil {
		return cfg, err
	}
	cfg.Courts = slots.ListConfig{Names: splitList(os.Getenv("COURTS")), Polarity: courtPolarity}
	cfg.Times = slots.ListConfig{Names: splitList(os.Getenv("TIMES")), Polarity: timePolarity}

	if v := os.Getenv("HORIZON_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, fmt.Errorf("invalid HORIZON_DAYS %q", v)
		}
		cfg.HorizonDays = n
	}
	cfg.SkipWeekends = boolEnv("SKIP_WEEKENDS")

	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return cfg, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
		}
		cfg.Location = loc
	} else {
		cfg.Location = time.Local
	}

	if cfg.LadderURL != "" && cfg.LadderTableID == "" {
		return cfg, fmt.Errorf("LADDER_TABLE_ID must be set when LADDER_URL is")
	}
	return cfg, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func boolEnv(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
