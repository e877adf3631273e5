package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/alextrastero/scrapemachine"
)

var (
	flagEnvFile  = flag.String("env", "", "path to an env file (defaults to .env when present)")
	flagDryRun   = flag.Bool("dry-run", false, "bypass filters and write the report to a local preview file instead of sending")
	flagDays     = flag.Int("days", 0, "override the query horizon in days")
	flagSchedule = flag.String("schedule", "", "cron expression; when set, run repeatedly on that schedule instead of once")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if *flagEnvFile != "" {
		if err := godotenv.Load(*flagEnvFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	} else {
		godotenv.Load()
	}

	cfg, err := scrapemachine.LoadConfig()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	cfg.DryRun = *flagDryRun
	if *flagDays > 0 {
		cfg.HorizonDays = *flagDays
	}

	runner := scrapemachine.NewRunner(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	if *flagSchedule == "" {
		rep := runner.Run(ctx)
		fmt.Printf("Run %s: %d free slots (%d/%d dates fetched)\n", rep.RunID, rep.FreeSlots, rep.Fetched, rep.Dates)
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(*flagSchedule, func() { runner.Run(ctx) }); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", *flagSchedule, err)
	}
	slog.Info("scheduler started", "schedule", *flagSchedule)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	slog.Info("scheduler stopped")
	return nil
}
