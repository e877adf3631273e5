package scrapemachine

import "time"

// DateWindow returns the ISO dates to query: today plus the following days up
// to the horizon. With skipWeekends set, Saturdays and Sundays are omitted
// rather than replaced, so the window may come back shorter than the horizon.
func DateWindow(now time.Time, horizonDays int, skipWeekends bool) []string {
	dates := make([]string, 0, horizonDays)
	for i := 0; i < horizonDays; i++ {
		d := now.AddDate(0, 0, i)
		if skipWeekends && (d.Weekday() == time.Saturday || d.Weekday() == time.Sunday) {
			continue
		}
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates
}
