package booking

import (
	"context"
	"log/slog"
	"sync"
)

// FetchWindow issues one request per date, all launched at once, and waits
// for every request to settle before returning. A failed date is recorded in
// its outcome and absent from the results map; the remaining dates are
// unaffected. Each goroutine writes only its own slice index, so no result
// state is shared.
func (c *Client) FetchWindow(ctx context.Context, dates []string) (map[string]*DayResponse, []Outcome) {
	days := make([]*DayResponse, len(dates))
	errs := make([]error, len(dates))

	var wg sync.WaitGroup
	for i, date := range dates {
		wg.Add(1)
		go func(i int, date string) {
			defer wg.Done()
			days[i], errs[i] = c.FetchDay(ctx, date)
		}(i, date)
	}
	wg.Wait()

	results := make(map[string]*DayResponse, len(dates))
	outcomes := make([]Outcome, len(dates))
	for i, date := range dates {
		outcomes[i] = Outcome{Date: date, Err: errs[i]}
		if errs[i] != nil {
			slog.Warn("day fetch failed", "date", date, "error", errs[i])
			continue
		}
		results[date] = days[i]
	}
	return results, outcomes
}
