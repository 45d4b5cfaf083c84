package model

import "time"

// CookieLog is a single parsed row of the activity log.
// This is the logical view of a record, built by the cookielog reader
// and consumed by the analyzer; rows violating the invariants (empty
// cookie, timestamp without an explicit offset) never become one.
type CookieLog struct {
	Cookie    string
	Timestamp time.Time
}

// Analysis holds the outcome of one scan: per-cookie occurrence counts
// for the target date and the maximum count observed. Order records
// each cookie's first appearance so ties can be reported in scan order.
type Analysis struct {
	Counts   map[string]int
	Order    []string
	MaxCount int
}

// MostActive returns every cookie whose count equals MaxCount, in
// first-seen order. Empty when the scan matched nothing.
func (a Analysis) MostActive() []string {
	var out []string
	for _, c := range a.Order {
		if a.Counts[c] == a.MaxCount {
			out = append(out, c)
		}
	}
	return out
}
