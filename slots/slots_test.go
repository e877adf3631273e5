package slots

import (
	"testing"
	"time"

	"github.com/alextrastero/scrapemachine/booking"
)

func day(date string, cols ...booking.Column) *booking.DayResponse {
	return &booking.DayResponse{Date: date, Columns: cols}
}

func col(name string, pieces ...booking.Piece) booking.Column {
	return booking.Column{Facility: booking.Facility{Name: name}, Pieces: pieces}
}

func piece(start, end, mark string) booking.Piece {
	return booking.Piece{Start: start, End: end, Mark: mark}
}

func defaultFilter() Filter {
	return Filter{
		Courts:   ListConfig{Names: []string{"Court 1", "Court 2"}},
		Times:    ListConfig{Names: []string{"18:00", "19:00"}},
		Location: time.UTC,
	}
}

func TestFilterApply(t *testing.T) {
	t.Run("only FREE pieces survive", func(t *testing.T) {
		days := map[string]*booking.DayResponse{
			"2026-01-05": day("2026-01-05", col("Court 1",
				piece("2026-01-05T18:00:00", "2026-01-05T18:45:00", "FREE"),
				piece("2026-01-05T19:00:00", "2026-01-05T19:45:00", "TAKEN"),
			)),
		}
		free, problems := defaultFilter().Apply(days)
		if len(problems) != 0 {
			t.Fatalf("unexpected problems: %v", problems)
		}
		if len(free) != 1 {
			t.Fatalf("expected 1 slot, got %d", len(free))
		}
		if free[0].Court != "Court 1" || free[0].Start != "18:00" {
			t.Fatalf("unexpected slot: %+v", free[0])
		}
		if free[0].StartDisplay != "6:00 PM" || free[0].EndDisplay != "6:45 PM" {
			t.Fatalf("unexpected display strings: %+v", free[0])
		}
	})

	t.Run("court not in allow list is skipped", func(t *testing.T) {
		days := map[string]*booking.DayResponse{
			"2026-01-05": day("2026-01-05", col("Court 9",
				piece("2026-01-05T18:00:00", "2026-01-05T18:45:00", "FREE"),
			)),
		}
		free, _ := defaultFilter().Apply(days)
		if len(free) != 0 {
			t.Fatalf("expected no slots, got %d", len(free))
		}
	})

	t.Run("flipping polarity flips the outcome", func(t *testing.T) {
		days := map[string]*booking.DayResponse{
			"2026-01-05": day("2026-01-05",
				col("Court 1", piece("2026-01-05T18:00:00", "2026-01-05T18:45:00", "FREE")),
				col("Court 9", piece("2026-01-05T18:00:00", "2026-01-05T18:45:00", "FREE")),
			),
		}

		f := defaultFilter()
		f.Courts = ListConfig{Names: []string{"Court 1"}, Polarity: Allow}
		free, _ := f.Apply(days)
		if len(free) != 1 || free[0].Court != "Court 1" {
			t.Fatalf("allow polarity: expected only Court 1, got %+v", free)
		}

		f.Courts.Polarity = Deny
		free, _ = f.Apply(days)
		if len(free) != 1 || free[0].Court != "Court 9" {
			t.Fatalf("deny polarity: expected only Court 9, got %+v", free)
		}
	})

	t.Run("start time outside list is skipped", func(t *testing.T) {
		days := map[string]*booking.DayResponse{
			"2026-01-05": day("2026-01-05", col("Court 1",
				piece("2026-01-05T07:15:00", "2026-01-05T08:00:00", "FREE"),
			)),
		}
		free, _ := defaultFilter().Apply(days)
		if len(free) != 0 {
			t.Fatalf("expected no slots, got %d", len(free))
		}
	})

	t.Run("bypass admits everything marked FREE", func(t *testing.T) {
		days := map[string]*booking.DayResponse{
			"2026-01-05": day("2026-01-05", col("Court 9",
				piece("2026-01-05T07:15:00", "2026-01-05T08:00:00", "FREE"),
				piece("2026-01-05T08:00:00", "2026-01-05T08:45:00", "TAKEN"),
			)),
		}
		f := defaultFilter()
		f.Bypass = true
		free, _ := f.Apply(days)
		if len(free) != 1 {
			t.Fatalf("expected the FREE piece to survive bypass, got %d slots", len(free))
		}
	})

	t.Run("slot date comes from the start instant", func(t *testing.T) {
		// Zoned instant that lands on the next local day.
		days := map[string]*booking.DayResponse{
			"2026-01-05": day("2026-01-05", col("Court 1",
				piece("2026-01-05T23:00:00-01:00", "2026-01-06T00:45:00-01:00", "FREE"),
			)),
		}
		f := defaultFilter()
		f.Times = ListConfig{Names: []string{"00:00"}}
		free, _ := f.Apply(days)
		if len(free) != 1 {
			t.Fatalf("expected 1 slot, got %d", len(free))
		}
		if free[0].Date != "2026-01-06" {
			t.Fatalf("expected date derived from start instant, got %s", free[0].Date)
		}
	})

	t.Run("unreadable start becomes a problem not a crash", func(t *testing.T) {
		days := map[string]*booking.DayResponse{
			"2026-01-05": day("2026-01-05", col("Court 1",
				piece("garbage", "2026-01-05T18:45:00", "FREE"),
				piece("2026-01-05T18:00:00", "2026-01-05T18:45:00", "FREE"),
			)),
		}
		free, problems := defaultFilter().Apply(days)
		if len(problems) != 1 {
			t.Fatalf("expected 1 problem, got %v", problems)
		}
		if len(free) != 1 {
			t.Fatalf("expected the valid piece to survive, got %d", len(free))
		}
	})

	t.Run("output order follows date order", func(t *testing.T) {
		days := map[string]*booking.DayResponse{
			"2026-01-07": day("2026-01-07", col("Court 1", piece("2026-01-07T18:00:00", "2026-01-07T18:45:00", "FREE"))),
			"2026-01-05": day("2026-01-05", col("Court 1", piece("2026-01-05T18:00:00", "2026-01-05T18:45:00", "FREE"))),
		}
		free, _ := defaultFilter().Apply(days)
		if len(free) != 2 {
			t.Fatalf("expected 2 slots, got %d", len(free))
		}
		if free[0].Date != "2026-01-05" || free[1].Date != "2026-01-07" {
			t.Fatalf("slots not in date order: %+v", free)
		}
	})
}

func TestParsePolarity(t *testing.T) {
	cases := map[string]Polarity{
		"":          Allow,
		"allow":     Allow,
		"whitelist": Allow,
		"deny":      Deny,
		"Blacklist": Deny,
	}
	for in, want := range cases {
		got, err := ParsePolarity(in)
		if err != nil {
			t.Fatalf("ParsePolarity(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParsePolarity(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParsePolarity("sideways"); err == nil {
		t.Fatal("expected error for unknown polarity")
	}
}
