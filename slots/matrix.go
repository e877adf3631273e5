package slots

import "sort"

// Matrix maps date -> start time (HH:MM) -> set of court names with a free
// slot at that date and start. Cell membership is a set: the same
// (date, start, court) triple occupies a cell once no matter how many times
// it appeared upstream.
type Matrix map[string]map[string]map[string]bool

// BuildMatrix groups free slots by date and start time. The returned count is
// the number of surviving slots, duplicates included.
func BuildMatrix(free []FreeSlot) (Matrix, int) {
	m := make(Matrix)
	for _, s := range free {
		day, ok := m[s.Date]
		if !ok {
			day = make(map[string]map[string]bool)
			m[s.Date] = day
		}
		cell, ok := day[s.Start]
		if !ok {
			cell = make(map[string]bool)
			day[s.Start] = cell
		}
		cell[s.Court] = true
	}
	return m, len(free)
}

// Dates returns the matrix dates in ascending order.
func (m Matrix) Dates() []string {
	dates := make([]string, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Starts returns the start times present on a date in ascending order.
func (m Matrix) Starts(date string) []string {
	starts := make([]string, 0, len(m[date]))
	for s := range m[date] {
		starts = append(starts, s)
	}
	sort.Strings(starts)
	return starts
}

// Has reports whether a court has a free slot at the given date and start.
func (m Matrix) Has(date, start, court string) bool {
	return m[date][start][court]
}

// Courts returns every court name present anywhere in the matrix, sorted.
func (m Matrix) Courts() []string {
	seen := make(map[string]bool)
	for _, day := range m {
		for _, cell := range day {
			for court := range cell {
				seen[court] = true
			}
		}
	}
	courts := make([]string, 0, len(seen))
	for c := range seen {
		courts = append(courts, c)
	}
	sort.Strings(courts)
	return courts
}
