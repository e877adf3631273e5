// Package slots filters raw booking-API payloads down to free slots and
// aggregates them into the date/time/court matrix the report is built from.
package slots

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alextrastero/scrapemachine/booking"
)

// Polarity controls whether a configured name-set admits or rejects its members.
type Polarity int

const (
	// Allow admits only names present in the set.
	Allow Polarity = iota
	// Deny admits only names absent from the set.
	Deny
)

// ParsePolarity maps a config string to a Polarity. Empty defaults to Allow.
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "allow", "allowlist", "whitelist":
		return Allow, nil
	case "deny", "denylist", "blacklist":
		return Deny, nil
	}
	return Allow, fmt.Errorf("unknown filter polarity %q", s)
}

// ListConfig pairs a name-set with an explicit polarity so the filter never
// has to guess whether the configured names are the admitted or the excluded.
type ListConfig struct {
	Names    []string
	Polarity Polarity
}

// Admits reports whether a name passes this list.
func (l ListConfig) Admits(name string) bool {
	member := false
	for _, n := range l.Names {
		if n == name {
			member = true
			break
		}
	}
	if l.Polarity == Deny {
		return !member
	}
	return member
}

// FreeSlot is one free piece that survived filtering.
// Date is derived from the piece's start instant, not the query date, so
// source data that crosses midnight lands on the right day.
type FreeSlot struct {
	Court        string
	Date         string // YYYY-MM-DD
	Start        string // HH:MM, 24-hour wall clock
	StartDisplay string // 12-hour form for rendering
	EndDisplay   string
}

// Filter holds the immutable per-run filter configuration.
type Filter struct {
	Courts   ListConfig
	Times    ListConfig // start times as HH:MM
	Bypass   bool       // dry-run: admit every court and time
	Location *time.Location
}

// Apply extracts the free slots from the fetched day payloads. Days are
// visited in date order so the output sequence is deterministic. Payload
// pieces that cannot be interpreted are reported as problems rather than
// aborting the run.
func (f Filter) Apply(days map[string]*booking.DayResponse) ([]FreeSlot, []string) {
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}

	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var out []FreeSlot
	var problems []string
	for _, date := range dates {
		day := days[date]
		if day == nil {
			continue
		}
		for _, col := range day.Columns {
			court := col.Facility.Name
			if !f.Bypass && !f.Courts.Admits(court) {
				continue
			}
			for _, piece := range col.Pieces {
				if piece.Mark != booking.MarkFree {
					continue
				}
				start, err := parseInstant(piece.Start, loc)
				if err != nil {
					problems = append(problems, fmt.Sprintf("%s %s: unreadable start %q", date, court, piece.Start))
					continue
				}
				hhmm := start.Format("15:04")
				if !f.Bypass && !f.Times.Admits(hhmm) {
					continue
				}
				slot := FreeSlot{
					Court:        court,
					Date:         start.Format("2006-01-02"),
					Start:        hhmm,
					StartDisplay: start.Format("3:04 PM"),
				}
				if end, err := parseInstant(piece.End, loc); err != nil {
					problems = append(problems, fmt.Sprintf("%s %s: unreadable end %q", date, court, piece.End))
				} else {
					slot.EndDisplay = end.Format("3:04 PM")
				}
				out = append(out, slot)
			}
		}
	}
	return out, problems
}

// parseInstant reads a piece instant. Zoned timestamps are converted to the
// local wall clock; bare timestamps are taken as already local.
func parseInstant(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized instant %q", s)
}
