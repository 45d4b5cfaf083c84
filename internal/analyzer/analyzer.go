package analyzer

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/yankh764/cookies-analyzer/internal/cookielog"
	"github.com/yankh764/cookies-analyzer/internal/model"
)

// Options tunes a scan.
type Options struct {
	// FullScan disables the sorted-input early-termination shortcut.
	// Set it when the log may not be sorted by timestamp descending.
	FullScan bool
}

// ParseDate parses a target date in strict YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date is not correctly formatted: %q (want YYYY-MM-DD)", s)
	}
	return day, nil
}

// MostActive scans r and returns every cookie tied for the highest
// occurrence count on day, in order of first appearance. An empty
// result with a nil error means no record matched day.
//
// The input contract is timestamp-descending order; under it the scan
// stops at the first record dated before day, since nothing after it
// can match. Set opts.FullScan to read the whole input instead.
func MostActive(r *cookielog.Reader, day time.Time, opts Options) ([]string, error) {
	a, err := Analyze(r, day, opts)
	if err != nil {
		return nil, err
	}
	return a.MostActive(), nil
}

// Analyze runs the scan behind MostActive and returns the full tally.
func Analyze(r *cookielog.Reader, day time.Time, opts Options) (model.Analysis, error) {
	target := dayOf(day)
	a := model.Analysis{Counts: make(map[string]int)}

	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return a, nil
		}
		if err != nil {
			return model.Analysis{}, err
		}

		d := dayOf(rec.Timestamp)
		if d.Before(target) {
			if !opts.FullScan {
				return a, nil
			}
			continue
		}
		if !d.Equal(target) {
			// Dated after the target; matching rows may still follow.
			continue
		}

		if _, seen := a.Counts[rec.Cookie]; !seen {
			a.Order = append(a.Order, rec.Cookie)
		}
		a.Counts[rec.Cookie]++
		if a.Counts[rec.Cookie] > a.MaxCount {
			a.MaxCount = a.Counts[rec.Cookie]
		}
	}
}

// dayOf truncates t to its UTC calendar date.
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
